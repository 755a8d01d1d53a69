package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in   string
		want SortKey
	}{
		{"name-asc", SortNameAsc},
		{"name", SortNameAsc},
		{"NAME-DESC", SortNameDesc},
		{"category", SortCategoryAsc},
		{"autonomy-rank", SortAutonomyRank},
		{" pricing ", SortPricingAsc},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortKey(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseSortKey("random")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sort key")
}

func TestSortKeyNextWraps(t *testing.T) {
	k := SortNameAsc
	for range SortKeys {
		k = k.Next()
	}
	assert.Equal(t, SortNameAsc, k)
	assert.Equal(t, SortNameAsc, SortKey("bogus").Next())
}

func TestCriteriaValidate(t *testing.T) {
	require.NoError(t, DefaultCriteria().Validate())
	assert.True(t, DefaultCriteria().IsDefault())

	c := DefaultCriteria()
	c.Sort = "bogus"
	assert.Error(t, c.Validate())

	c = DefaultCriteria()
	c.Category = " "
	assert.Error(t, c.Validate())
	assert.False(t, c.IsDefault())
}

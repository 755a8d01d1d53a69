package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/agentdeck/internal/catalog"
)

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the pills: categories, tags and interfaces with counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			cat, err := rootOpts.loadCatalog(cmd.Context(), f)
			if err != nil {
				return err
			}

			facets := catalog.Facets(cat.Records)
			return f.Result(formatFacets(facets), facets)
		},
	}
}

func formatFacets(facets []catalog.Facet) string {
	var cats, others strings.Builder
	for _, facet := range facets {
		b := &others
		if facet.Category {
			b = &cats
		}
		fmt.Fprintf(b, "  %s (%d)\n", facet.Key, facet.Count)
	}

	var out strings.Builder
	out.WriteString("Categories:\n")
	out.WriteString(orNone(cats.String()))
	out.WriteString("\nTags and interfaces:\n")
	out.WriteString(orNone(others.String()))
	return strings.TrimRight(out.String(), "\n")
}

func orNone(s string) string {
	if s == "" {
		return "  (none)\n"
	}
	return s
}

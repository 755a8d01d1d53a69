package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// DomainCatalog separates catalog digests from any other hash.
// The version suffix allows a future change of algorithm.
const DomainCatalog = "agentdeck/catalog/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest fingerprints a normalized record list. Identical records in
// identical order always produce the same digest, whatever the source format.
func Digest(records []Record) string {
	if records == nil {
		records = []Record{}
	}
	// encoding/json sorts map keys, so Links cannot perturb the output.
	data, err := json.Marshal(records)
	if err != nil {
		return ""
	}
	return hashWithDomain(DomainCatalog, data)
}

// ShortDigest returns the first 12 hex characters of a digest.
func ShortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}

// Facet is one pill the user can toggle, with the number of records it covers.
type Facet struct {
	Key      string `json:"key"`
	Category bool   `json:"category"`
	Count    int    `json:"count"`
}

// Facets lists the pill universe: categories first, then tags and
// interfaces. Each group is sorted. A key that is both a category and a
// tag appears once, as a category.
func Facets(records []Record) []Facet {
	categories := map[string]int{}
	others := map[string]int{}
	for _, r := range records {
		categories[r.Category]++
	}
	for _, r := range records {
		seen := map[string]bool{r.Category: true}
		for _, k := range append(append([]string{}, r.Tags...), r.Interfaces...) {
			if seen[k] {
				continue
			}
			seen[k] = true
			if _, isCategory := categories[k]; isCategory {
				categories[k]++
				continue
			}
			others[k]++
		}
	}

	facets := make([]Facet, 0, len(categories)+len(others))
	for _, k := range sortedKeys(categories) {
		facets = append(facets, Facet{Key: k, Category: true, Count: categories[k]})
	}
	for _, k := range sortedKeys(others) {
		facets = append(facets, Facet{Key: k, Count: others[k]})
	}
	return facets
}

// Categories returns the distinct categories in sorted order.
func Categories(records []Record) []string {
	set := map[string]int{}
	for _, r := range records {
		set[r.Category]++
	}
	return sortedKeys(set)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package catalog

import "strings"

// BrandTier buckets brands by provenance for merchandising.
type BrandTier string

const (
	TierMilitary BrandTier = "MILITARY"
	TierWorkwear BrandTier = "WORKWEAR"
	TierJapan    BrandTier = "JAPAN"
	TierHeritage BrandTier = "HERITAGE"
	TierBritish  BrandTier = "BRITISH"
	TierOther    BrandTier = "OTHER"
)

// BrandRegistryEntry is one row of the manual brand override registry.
// Entries boost or correct the automatic classification; they never replace
// it wholesale.
type BrandRegistryEntry struct {
	Name      string
	LocalName string
	Tier      BrandTier
	Aliases   []string
	Active    bool
}

// BrandRegistry is an in-memory, case-insensitive lookup over registry
// entries. It is immutable after construction.
type BrandRegistry struct {
	byKey map[string]*BrandRegistryEntry
}

// NewBrandRegistry builds a registry from entries. Inactive entries are kept
// out of the index entirely. Canonical names and aliases share one namespace;
// on collision the first entry wins.
func NewBrandRegistry(entries []BrandRegistryEntry) *BrandRegistry {
	r := &BrandRegistry{byKey: make(map[string]*BrandRegistryEntry)}
	for i := range entries {
		e := &entries[i]
		if !e.Active {
			continue
		}
		for _, key := range append([]string{e.Name, e.LocalName}, e.Aliases...) {
			key = strings.ToUpper(strings.TrimSpace(key))
			if key == "" {
				continue
			}
			if _, exists := r.byKey[key]; !exists {
				r.byKey[key] = e
			}
		}
	}
	return r
}

// Lookup finds the entry whose canonical name, localized name, or alias
// matches the given brand, case-insensitively.
func (r *BrandRegistry) Lookup(brand string) (*BrandRegistryEntry, bool) {
	e, ok := r.byKey[strings.ToUpper(strings.TrimSpace(brand))]
	return e, ok
}

// Len returns the number of indexed keys.
func (r *BrandRegistry) Len() int {
	return len(r.byKey)
}

package filter

import (
	"github.com/stwalsh4118/estates/internal/models"
)

// SearchMode controls how the search term combines with the other filters.
type SearchMode string

const (
	// SearchNarrows requires a search match in addition to every other active filter.
	SearchNarrows SearchMode = "narrow"
	// SearchOverrides returns the search match alone whenever a search term is
	// present, ignoring the other filters. The home page mini-filter behaved
	// this way; it is kept selectable for pages that still depend on it.
	SearchOverrides SearchMode = "override"
)

// CategoryField is an exact-match filter backed by one record attribute.
type CategoryField struct {
	Key     string // selection / facet key, e.g. "propertyType"
	Field   string // record attribute, e.g. "property_type"
	Numeric bool   // attribute holds numbers; facets sort numerically
}

// RangeField is a range filter over a free-text magnitude attribute.
type RangeField struct {
	Strategy BucketStrategy
	Key      string
	Field    string
}

// Profile describes the filters available on one listing page.
type Profile struct {
	Type         models.ListingType
	SearchMode   SearchMode
	Categories   []CategoryField
	Ranges       []RangeField
	SearchFields []string
}

// Profiles indexes profiles by listing type.
type Profiles map[models.ListingType]Profile

// Lookup returns the profile for t.
func (p Profiles) Lookup(t models.ListingType) (Profile, bool) {
	profile, ok := p[t]
	return profile, ok
}

// Price ranges are entered in lakhs ("₹50L - ₹75L").
var priceLadder = FixedLadder{Breakpoints: []int{25, 50, 75, 100}, Unit: "L"}

var defaultSearchFields = []string{"name", "location", "description"}

// DefaultProfiles returns the built-in profiles for every listing type.
func DefaultProfiles() Profiles {
	return Profiles{
		models.ListingTypePlot: {
			Type:       models.ListingTypePlot,
			SearchMode: SearchNarrows,
			Categories: []CategoryField{
				{Key: "location", Field: "location"},
				{Key: "facing", Field: "facing"},
				{Key: "status", Field: "status"},
				{Key: "plotSize", Field: "size_sqyds", Numeric: true},
			},
			Ranges: []RangeField{
				{Key: "plotArea", Field: "plot_area", Strategy: FixedLadder{Breakpoints: []int{200, 300, 500, 1000}, Unit: "sq.yds"}},
				{Key: "priceRange", Field: "price_range", Strategy: priceLadder},
			},
			SearchFields: defaultSearchFields,
		},
		models.ListingTypeBudgetHome: {
			Type:       models.ListingTypeBudgetHome,
			SearchMode: SearchNarrows,
			Categories: []CategoryField{
				{Key: "location", Field: "location"},
				{Key: "propertyType", Field: "property_type"},
				{Key: "facing", Field: "facing"},
				{Key: "status", Field: "status"},
			},
			Ranges: []RangeField{
				{Key: "builtUpArea", Field: "built_up_area", Strategy: FixedLadder{Breakpoints: []int{1000, 1500, 2000, 2500}, Unit: "sq.ft"}},
				{Key: "priceRange", Field: "price_range", Strategy: priceLadder},
			},
			SearchFields: defaultSearchFields,
		},
		models.ListingTypeProject: {
			Type:       models.ListingTypeProject,
			SearchMode: SearchNarrows,
			Categories: []CategoryField{
				{Key: "location", Field: "location"},
				{Key: "propertyType", Field: "property_type"},
				{Key: "status", Field: "status"},
			},
			Ranges: []RangeField{
				{Key: "builtUpArea", Field: "built_up_area", Strategy: DynamicSplit{Threshold: 500, Unit: "sq.ft"}},
				{Key: "priceRange", Field: "price_range", Strategy: priceLadder},
			},
			SearchFields: defaultSearchFields,
		},
	}
}

// Keys lists every selection key the profile understands, search included.
func (p Profile) Keys() []string {
	keys := make([]string, 0, len(p.Categories)+len(p.Ranges)+1)
	for _, c := range p.Categories {
		keys = append(keys, c.Key)
	}
	for _, r := range p.Ranges {
		keys = append(keys, r.Key)
	}
	return append(keys, SearchKey)
}

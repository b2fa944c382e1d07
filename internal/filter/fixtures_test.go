package filter

import (
	"github.com/stwalsh4118/estates/internal/models"
)

func listing(id string, attrs map[string]any) models.Listing {
	return models.Listing{ID: id, Attributes: attrs}
}

func ids(records []models.Listing) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func budgetHomes() []models.Listing {
	return []models.Listing{
		listing("bh-1", map[string]any{
			"name":          "Lake View Villa",
			"location":      "Hyderabad West",
			"property_type": "Villa",
			"facing":        "East",
			"status":        "Ready",
			"price_range":   "₹75L - ₹90L",
			"built_up_area": "1600 sq.ft",
			"description":   "Corner villa near the lake",
		}),
		listing("bh-2", map[string]any{
			"name":          "Green Meadows",
			"location":      "Kompally",
			"property_type": "Independent House",
			"facing":        "North",
			"status":        "Under Construction",
			"price_range":   "₹45L - ₹55L",
			"built_up_area": "1100 sq.ft",
			"description":   "Gated community",
		}),
		listing("bh-3", map[string]any{
			"name":          "Sunrise Homes",
			"location":      "Kompally",
			"property_type": "Villa",
			"facing":        "East",
			"status":        "Ready",
			"price_range":   "Price on request",
			"built_up_area": "2600 sq.ft",
			"description":   "Premium duplex",
		}),
		listing("bh-4", map[string]any{
			"name":          "Budget Nest",
			"location":      "",
			"property_type": "Apartment",
			"status":        "Ready",
			"price_range":   "₹30L",
			"description":   "Compact 2BHK",
		}),
	}
}

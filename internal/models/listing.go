package models

import (
	"fmt"
	"strconv"
	"time"
)

// ListingType identifies one family of listings shown on the site.
type ListingType string

// Supported listing types. The string values double as URL path segments.
const (
	ListingTypePlot       ListingType = "plots"
	ListingTypeBudgetHome ListingType = "budget-homes"
	ListingTypeProject    ListingType = "projects"
)

// ListingTypes returns every supported listing type in display order.
func ListingTypes() []ListingType {
	return []ListingType{ListingTypePlot, ListingTypeBudgetHome, ListingTypeProject}
}

// ParseListingType converts a path segment into a ListingType.
func ParseListingType(s string) (ListingType, error) {
	for _, t := range ListingTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown listing type %q", s)
}

// Listing is a loosely-typed listing record as stored by the content backend.
// Plots, budget homes and projects share this shape; their fields differ only
// in which attribute keys are populated (location, price_range, plot_area, ...).
//
// Filtering code treats a Listing as read-only.
type Listing struct {
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	Attributes map[string]any `json:"attributes"`
	ID         string         `json:"id"`
	Type       ListingType    `json:"type"`
	Images     []string       `json:"images"`
}

// Value returns the raw attribute stored under field, or nil when absent.
func (l *Listing) Value(field string) any {
	if l.Attributes == nil {
		return nil
	}
	return l.Attributes[field]
}

// Text returns the attribute under field rendered as a string.
// Missing and nil attributes render as the empty string; numbers use their
// shortest decimal form so 300 and "300" compare equal.
func (l *Listing) Text(field string) string {
	return FormatValue(l.Value(field))
}

// FormatValue renders a decoded JSON value as a string.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// IsEmptyValue reports whether v should be treated as "not set".
// Nil, empty strings, numeric zero and false all count as empty.
func IsEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case float64:
		return val == 0
	case float32:
		return val == 0
	case int:
		return val == 0
	case int32:
		return val == 0
	case int64:
		return val == 0
	case bool:
		return !val
	default:
		return false
	}
}

package filter

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/stwalsh4118/estates/internal/models"
)

// FacetSet holds the selectable options for one listing collection.
// Every key in the profile is present, mapped to an empty slice when the
// collection offers no options for it.
type FacetSet struct {
	Categories map[string][]string      `json:"categories"`
	Ranges     map[string][]RangeOption `json:"ranges"`
}

// DeriveFacets computes the facet options of records under profile.
func DeriveFacets(records []models.Listing, profile Profile) FacetSet {
	facets := FacetSet{
		Categories: make(map[string][]string, len(profile.Categories)),
		Ranges:     make(map[string][]RangeOption, len(profile.Ranges)),
	}

	for _, c := range profile.Categories {
		facets.Categories[c.Key] = CategoryValues(records, c)
	}
	for _, r := range profile.Ranges {
		facets.Ranges[r.Key] = RangeOptions(records, r)
	}

	return facets
}

// CategoryValues returns the distinct non-empty values of field c across
// records, sorted ascending.
func CategoryValues(records []models.Listing, c CategoryField) []string {
	seen := make(map[string]struct{})
	values := []string{}

	for i := range records {
		v := records[i].Value(c.Field)
		if models.IsEmptyValue(v) {
			continue
		}
		s := models.FormatValue(v)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		values = append(values, s)
	}

	if c.Numeric {
		sortNumeric(values)
	} else {
		sort.Strings(values)
	}
	return values
}

// sortNumeric orders numeric strings by value; non-numeric strings sort after
// them in string order.
func sortNumeric(values []string) {
	sort.SliceStable(values, func(i, j int) bool {
		a, errA := strconv.ParseFloat(values[i], 64)
		b, errB := strconv.ParseFloat(values[j], 64)
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return values[i] < values[j]
		}
	})
}

// MagnitudeBounds returns the smallest and largest magnitude parsed from
// field across records. ok is false when no record yields a magnitude.
// Values of the wrong type are skipped.
func MagnitudeBounds(records []models.Listing, field string) (min, max int, ok bool) {
	for i := range records {
		n, found, err := MagnitudeOf(records[i].Value(field))
		if err != nil || !found {
			continue
		}
		if !ok {
			min, max, ok = n, n, true
			continue
		}
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	return min, max, ok
}

// RangeOptions returns the buckets offered for range field r.
func RangeOptions(records []models.Listing, r RangeField) []RangeOption {
	min, max, ok := MagnitudeBounds(records, r.Field)
	if !ok || r.Strategy == nil {
		return []RangeOption{}
	}
	return r.Strategy.Buckets(min, max)
}

// FieldIssue describes a record whose magnitude field has the wrong type.
type FieldIssue struct {
	Err      error
	RecordID string
	Field    string
}

// Error implements error.
func (f FieldIssue) Error() string {
	return fmt.Sprintf("record %s field %s: %v", f.RecordID, f.Field, f.Err)
}

// Unwrap exposes the underlying error.
func (f FieldIssue) Unwrap() error {
	return f.Err
}

// ValidateRecords reports every magnitude field that does not hold text.
// Such fields are skipped by DeriveFacets and ApplyFilters; the report exists
// so callers can surface bad data instead of silently hiding it.
func ValidateRecords(records []models.Listing, profile Profile) []FieldIssue {
	var issues []FieldIssue
	for i := range records {
		for _, r := range profile.Ranges {
			_, _, err := MagnitudeOf(records[i].Value(r.Field))
			if errors.Is(err, ErrInvalidInput) {
				issues = append(issues, FieldIssue{RecordID: records[i].ID, Field: r.Field, Err: err})
			}
		}
	}
	return issues
}

package filter

import (
	"strings"

	"github.com/stwalsh4118/estates/internal/models"
)

// ApplyFilters returns the records matching sel, in their original order.
// The input slice and its records are not modified.
//
// Categorical keys require strict, case-sensitive equality. Range keys keep
// records whose parsed magnitude lies in the selected range; records without
// a magnitude are kept, and selections that do not parse impose nothing. The
// search term is a case-insensitive substring match over the profile's search
// fields, combined according to profile.SearchMode.
func ApplyFilters(records []models.Listing, sel Selection, profile Profile) []models.Listing {
	matched := make([]models.Listing, 0, len(records))
	for i := range records {
		if Matches(&records[i], sel, profile) {
			matched = append(matched, records[i])
		}
	}
	return matched
}

// Matches reports whether a single record satisfies sel.
func Matches(record *models.Listing, sel Selection, profile Profile) bool {
	// Surrounding blanks in a typed search term are noise
	if term := strings.TrimSpace(sel.Get(SearchKey)); term != "" {
		found := matchesSearch(record, term, profile.SearchFields)
		if profile.SearchMode == SearchOverrides || !found {
			return found
		}
	}

	for _, c := range profile.Categories {
		want := sel.Get(c.Key)
		if want == "" {
			continue
		}
		if record.Text(c.Field) != want {
			return false
		}
	}

	for _, r := range profile.Ranges {
		want := sel.Get(r.Key)
		if want == "" {
			continue
		}
		bounds, ok := ParseRangeSelection(want)
		if !ok {
			continue
		}
		n, found, err := MagnitudeOf(record.Value(r.Field))
		if err != nil || !found {
			continue
		}
		if !bounds.Contains(n) {
			return false
		}
	}

	return true
}

func matchesSearch(record *models.Listing, term string, fields []string) bool {
	needle := strings.ToLower(term)
	for _, f := range fields {
		v, ok := record.Value(f).(string)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

package filter

import (
	"strconv"
	"strings"
)

// SearchKey is the selection key holding the free-text search term.
const SearchKey = "searchTerm"

// Selection maps filter keys to the chosen value. An absent or empty value
// places no constraint on the results.
type Selection map[string]string

// Get returns the value for key exactly as selected. Category values are
// compared verbatim, so no trimming happens here.
func (s Selection) Get(key string) string {
	if s == nil {
		return ""
	}
	return s[key]
}

// Active reports whether any key carries a non-empty value.
func (s Selection) Active() bool {
	for k := range s {
		if s.Get(k) != "" {
			return true
		}
	}
	return false
}

// Range is a decoded range selection. Open ranges have no upper bound.
type Range struct {
	Min  int
	Max  int
	Open bool
}

// Contains reports whether n falls inside the range, bounds inclusive.
func (r Range) Contains(n int) bool {
	if n < r.Min {
		return false
	}
	return r.Open || n <= r.Max
}

// ParseRangeSelection decodes "min-max" and "min+" selection values.
// Anything else, including partial input such as "100-", reports false.
func ParseRangeSelection(s string) (Range, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, false
	}

	if strings.HasSuffix(s, "+") {
		min, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(s, "+")))
		if err != nil {
			return Range{}, false
		}
		return Range{Min: min, Open: true}, true
	}

	lo, hi, found := strings.Cut(s, "-")
	if !found {
		return Range{}, false
	}
	min, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return Range{}, false
	}
	max, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return Range{}, false
	}
	return Range{Min: min, Max: max}, true
}

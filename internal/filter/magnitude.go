// Package filter derives facet options from listing collections and applies
// the listing pages' filter selections to them.
//
// Everything here is pure and synchronous: functions read the records they are
// given, never modify them, and hold no state between calls.
package filter

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidInput is returned when a field expected to hold text holds
// something else (a number, a list, an object).
var ErrInvalidInput = errors.New("invalid input: expected text")

// ParseLeadingMagnitude returns the value of the first run of ASCII digits in
// text. Units are ignored: "₹50L - ₹75L" yields 50 and "1Cr" yields 1, so
// magnitudes are only comparable within a single field's convention.
// The boolean is false when text holds no digits or the run overflows int.
func ParseLeadingMagnitude(text string) (int, bool) {
	start := -1
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= '0' && c <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return atoi(text[start:i])
		}
	}
	if start < 0 {
		return 0, false
	}
	return atoi(text[start:])
}

func atoi(digits string) (int, bool) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MagnitudeOf parses a raw record value. Nil means "no value"; anything other
// than a string is ErrInvalidInput.
func MagnitudeOf(v any) (int, bool, error) {
	switch val := v.(type) {
	case nil:
		return 0, false, nil
	case string:
		n, ok := ParseLeadingMagnitude(val)
		return n, ok, nil
	default:
		return 0, false, fmt.Errorf("%w: got %T", ErrInvalidInput, v)
	}
}

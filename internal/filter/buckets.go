package filter

import (
	"fmt"
	"strings"
)

// RangeOption is one selectable bucket of a magnitude facet.
// Value uses the selection encoding understood by ParseRangeSelection.
type RangeOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// BucketStrategy turns the observed [min, max] of a magnitude field into
// selectable buckets.
type BucketStrategy interface {
	Buckets(min, max int) []RangeOption
}

// FixedLadder uses fixed breakpoints so bucket labels stay stable no matter
// which records are loaded.
type FixedLadder struct {
	Unit        string
	Breakpoints []int
}

// Buckets implements BucketStrategy.
func (f FixedLadder) Buckets(min, max int) []RangeOption {
	return FixedLadderBuckets(min, max, f.Breakpoints, f.Unit)
}

// DynamicSplit cuts the observed span into thirds, or halves when the span is
// no wider than Threshold.
type DynamicSplit struct {
	Unit      string
	Threshold int
}

// Buckets implements BucketStrategy.
func (d DynamicSplit) Buckets(min, max int) []RangeOption {
	return DynamicBuckets(min, max, d.Threshold, d.Unit)
}

// FixedLadderBuckets builds buckets from ascending breakpoints b0..bn:
//
//	"below b0"      included when min < b0
//	"b(i) - b(i+1)" included when max >= b(i)
//	"above bn"      included when max >= bn
//
// Breakpoints act as gates only; the ladder itself never moves with the data.
func FixedLadderBuckets(min, max int, breakpoints []int, unit string) []RangeOption {
	options := []RangeOption{}
	if len(breakpoints) == 0 {
		return options
	}

	first := breakpoints[0]
	if min < first {
		options = append(options, RangeOption{
			Label: withUnit(fmt.Sprintf("Below %d", first), unit),
			Value: closedRange(0, first),
		})
	}

	for i := 0; i < len(breakpoints)-1; i++ {
		lo, hi := breakpoints[i], breakpoints[i+1]
		if max >= lo {
			options = append(options, RangeOption{
				Label: withUnit(fmt.Sprintf("%d - %d", lo, hi), unit),
				Value: closedRange(lo, hi),
			})
		}
	}

	last := breakpoints[len(breakpoints)-1]
	if max >= last {
		options = append(options, RangeOption{
			Label: withUnit(fmt.Sprintf("Above %d", last), unit),
			Value: openRange(last),
		})
	}

	return options
}

// DynamicBuckets splits [min, max] into three segments when max-min exceeds
// threshold and into two otherwise. The last segment is open-ended so the
// record holding max always matches. A zero span yields one open bucket.
func DynamicBuckets(min, max, threshold int, unit string) []RangeOption {
	if max < min {
		min, max = max, min
	}
	span := max - min
	if span == 0 {
		return []RangeOption{{
			Label: withUnit(fmt.Sprintf("%d+", min), unit),
			Value: openRange(min),
		}}
	}

	segments := 2
	if span > threshold {
		segments = 3
	}
	step := span / segments
	if step == 0 {
		step = 1
	}

	options := make([]RangeOption, 0, segments)
	lo := min
	for i := 0; i < segments-1; i++ {
		hi := lo + step
		options = append(options, RangeOption{
			Label: withUnit(fmt.Sprintf("%d - %d", lo, hi), unit),
			Value: closedRange(lo, hi),
		})
		lo = hi
	}
	options = append(options, RangeOption{
		Label: withUnit(fmt.Sprintf("%d+", lo), unit),
		Value: openRange(lo),
	})
	return options
}

func closedRange(lo, hi int) string {
	return fmt.Sprintf("%d-%d", lo, hi)
}

func openRange(lo int) string {
	return fmt.Sprintf("%d+", lo)
}

func withUnit(label, unit string) string {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return label
	}
	return label + " " + unit
}

package infer

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"chartdata/dataset"
)

// ComputeStats summarizes the values of a number-typed column. Values are
// coerced to float64 (numbers pass through, strings are parsed); anything
// non-coercible or non-finite is discarded. Returns nil when no valid value
// remains, in which case the field keeps no stats at all.
//
// Sum is rounded to 2 decimals; Mean is computed from the unrounded total
// and then rounded to 2 decimals; Median is exact.
func ComputeStats(values []any) *dataset.FieldStats {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := toFloat(v); ok {
			nums = append(nums, f)
		}
	}
	if len(nums) == 0 {
		return nil
	}

	sorted := make([]float64, len(nums))
	copy(sorted, nums)
	sort.Float64s(sorted)

	total := 0.0
	for _, f := range nums {
		total += f
	}

	return &dataset.FieldStats{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   round2(total / float64(len(nums))),
		Median: median(sorted),
		Sum:    round2(total),
	}
}

// median expects a sorted slice: middle element for odd counts, average of
// the two middle elements for even counts.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// toFloat coerces a raw row value to a finite float64.
func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

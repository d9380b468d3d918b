// Package infer determines per-column semantic types, nullability,
// cardinality and numeric statistics for decoded row records. It is the only
// place that narrows the dynamic values carried in dataset.Row.
package infer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ohler55/ojg/oj"

	"chartdata/dataset"
)

const (
	// ClassifySampleSize bounds the rows used for the type vote. Nullability,
	// uniqueness and sample values still scan the full row set.
	ClassifySampleSize = 100

	// SampleValueLimit is the number of representative values kept per field.
	SampleValueLimit = 5
)

// fieldTypeVoteOrder fixes the tie-break of the majority vote: the first
// type to reach the maximum count in this order wins. Changing the order
// changes inference results for mixed columns.
var fieldTypeVoteOrder = [...]dataset.FieldType{
	dataset.FieldTypeString,
	dataset.FieldTypeNumber,
	dataset.FieldTypeBoolean,
	dataset.FieldTypeDate,
	dataset.FieldTypeObject,
}

// Fields infers the schema of every column using the default sample limits.
// The column set and order come from the header; rows with extra keys
// contribute nothing and rows with missing keys count as empty.
func Fields(header []string, rows []dataset.Row) []dataset.DataField {
	return FieldsWithLimits(header, rows, ClassifySampleSize, SampleValueLimit)
}

// FieldsWithLimits is Fields with explicit classification and sample-value
// limits.
func FieldsWithLimits(header []string, rows []dataset.Row, classifyLimit, sampleLimit int) []dataset.DataField {
	if classifyLimit <= 0 {
		classifyLimit = ClassifySampleSize
	}
	if sampleLimit <= 0 {
		sampleLimit = SampleValueLimit
	}

	classifyRows := len(rows)
	if classifyRows > classifyLimit {
		classifyRows = classifyLimit
	}

	fields := make([]dataset.DataField, 0, len(header))
	for idx, name := range header {
		votes := make(map[dataset.FieldType]int, len(fieldTypeVoteOrder))
		for _, row := range rows[:classifyRows] {
			if t, ok := classify(row[name]); ok {
				votes[t]++
			}
		}

		// First-seen maximum over the fixed enumeration order. A column with
		// zero classified values lands on string.
		best := fieldTypeVoteOrder[0]
		bestCount := votes[best]
		for _, t := range fieldTypeVoteOrder[1:] {
			if votes[t] > bestCount {
				best, bestCount = t, votes[t]
			}
		}

		nullable := false
		distinct := make(map[string]struct{})
		samples := make([]any, 0, sampleLimit)
		for _, row := range rows {
			v, present := row[name]
			if !present || isEmpty(v) {
				nullable = true
				continue
			}
			distinct[valueKey(v)] = struct{}{}
			if len(samples) < sampleLimit {
				samples = append(samples, v)
			}
		}

		fields = append(fields, dataset.DataField{
			Name:         name,
			Type:         best,
			Index:        idx,
			Nullable:     nullable,
			UniqueCount:  len(distinct),
			SampleValues: samples,
		})
	}

	return fields
}

// ColumnValues returns the non-empty values of one column in row order.
func ColumnValues(rows []dataset.Row, name string) []any {
	values := make([]any, 0, len(rows))
	for _, row := range rows {
		v, present := row[name]
		if !present || isEmpty(v) {
			continue
		}
		values = append(values, v)
	}
	return values
}

// classify places a single value into exactly one semantic type. Empty
// values are excluded from the vote entirely.
func classify(v any) (dataset.FieldType, bool) {
	if isEmpty(v) {
		return "", false
	}

	switch t := v.(type) {
	case bool:
		return dataset.FieldTypeBoolean, true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return dataset.FieldTypeNumber, true
	case time.Time:
		return dataset.FieldTypeDate, true
	case map[string]any:
		return dataset.FieldTypeObject, true
	case string:
		s := strings.TrimSpace(t)
		if s == "true" || s == "false" {
			return dataset.FieldTypeBoolean, true
		}
		if isNumericString(s) {
			return dataset.FieldTypeNumber, true
		}
		if isDateString(s) {
			return dataset.FieldTypeDate, true
		}
		return dataset.FieldTypeString, true
	default:
		// Arrays and anything else fall through to string.
		return dataset.FieldTypeString, true
	}
}

// isEmpty reports whether a value is missing for vote/sample purposes.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// isNumericString reports whether s converts losslessly to a finite number.
func isNumericString(s string) bool {
	if s == "" {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// valueKey converts a value to the string form used for distinctness.
// Nested objects and arrays are JSON-stringified so structurally equal
// values compare equal.
func valueKey(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any, []any:
		if b, err := oj.Marshal(t); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

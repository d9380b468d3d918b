package ingest

import (
	"strings"
)

// excelColumnName converts a 0-based index to an Excel-style column name.
// 0 -> A, 25 -> Z, 26 -> AA, 702 -> AAA.
func excelColumnName(index int) string {
	result := ""
	index++

	for index > 0 {
		index--
		result = string(rune('A'+index%26)) + result
		index /= 26
	}

	return result
}

// NormalizeHeaders replaces empty or whitespace-only column names with
// Excel-style placeholders (Unnamed_A, Unnamed_B, ...). All three decoders
// run their header row through this so downstream field names are never
// blank; non-empty names pass through untouched.
func NormalizeHeaders(header []string) []string {
	normalized := make([]string, len(header))
	emptyCount := 0

	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			normalized[i] = "Unnamed_" + excelColumnName(emptyCount)
			emptyCount++
		} else {
			normalized[i] = h
		}
	}

	return normalized
}

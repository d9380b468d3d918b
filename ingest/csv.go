package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"chartdata/dataset"
)

// DecodeCSV parses delimited text into row records. The first parsed row is
// taken as the header; subsequent rows become records keyed by header name.
// Rows where every cell is empty are skipped. Records shorter than the
// header are padded with empty strings so every record carries the full
// column set.
func DecodeCSV(data []byte) ([]string, []dataset.Row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	// Allow variable field counts to tolerate ragged or hand-edited files.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("CSV parse error: %w", err)
	}

	if len(records) < 2 {
		return nil, nil, fmt.Errorf("CSV file has insufficient data")
	}

	rawHeader := records[0]
	if len(rawHeader) == 0 || allCellsEmpty(rawHeader) {
		return nil, nil, fmt.Errorf("CSV file has no valid header")
	}
	header := NormalizeHeaders(rawHeader)

	rows := make([]dataset.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if allCellsEmpty(rec) {
			continue
		}
		row := make(dataset.Row, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("CSV file has insufficient data")
	}

	return header, rows, nil
}

func allCellsEmpty(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

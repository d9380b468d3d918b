package ingest

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"chartdata/dataset"
)

// Excel decoding for both the modern zip/XML format (xlsx, via excelize) and
// the legacy binary format (xls, via extrame/xls). Only the first sheet is
// read; sheet selection is deliberately out of scope for self-service
// uploads and must stay that way without a product decision.

// DecodeXLSX parses an xlsx workbook from memory. The first row of the first
// sheet becomes the header; a workbook with zero sheets is an error.
func DecodeXLSX(data []byte) ([]string, []dataset.Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("Excel parse failed: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("Excel workbook has no sheets")
	}

	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("Excel parse failed: %w", err)
	}

	return rowsFromGrid(grid)
}

// DecodeXLS parses a legacy binary workbook from memory.
func DecodeXLS(data []byte) ([]string, []dataset.Row, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, nil, fmt.Errorf("Excel parse failed: %w", err)
	}

	if wb.NumSheets() == 0 {
		return nil, nil, fmt.Errorf("Excel workbook has no sheets")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, nil, fmt.Errorf("Excel workbook has no sheets")
	}

	grid := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		grid = append(grid, cells)
	}

	return rowsFromGrid(grid)
}

// rowsFromGrid converts a sheet's cell grid into header + row records. The
// first row is the header; all-empty rows are skipped; short rows are padded
// with empty strings. All cell values stay strings here, type narrowing
// happens during inference.
func rowsFromGrid(grid [][]string) ([]string, []dataset.Row, error) {
	if len(grid) == 0 {
		return nil, nil, fmt.Errorf("Excel file has no data: %w", ErrNoData)
	}

	rawHeader := grid[0]
	if len(rawHeader) == 0 || allCellsEmpty(rawHeader) {
		return nil, nil, fmt.Errorf("Excel file has no valid header")
	}
	header := NormalizeHeaders(rawHeader)

	rows := make([]dataset.Row, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		if allCellsEmpty(cells) {
			continue
		}
		row := make(dataset.Row, len(header))
		for i, name := range header {
			if i < len(cells) {
				row[name] = cells[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("Excel file has no data: %w", ErrNoData)
	}

	return header, rows, nil
}

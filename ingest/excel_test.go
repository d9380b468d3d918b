package ingest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes the given grid to the first sheet of an in-memory
// xlsx workbook.
func buildWorkbook(t *testing.T, grid [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i := range grid {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &grid[i]); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeXLSX(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"name", "score"},
		{"alice", 10},
		{"bob", 20},
	})

	header, rows, err := DecodeXLSX(data)
	if err != nil {
		t.Fatalf("DecodeXLSX: %v", err)
	}
	if !reflect.DeepEqual(header, []string{"name", "score"}) {
		t.Errorf("header = %v", header)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	// Cell values arrive as strings; narrowing happens during inference.
	if rows[0]["name"] != "alice" || rows[0]["score"] != "10" {
		t.Errorf("row 0 = %v", rows[0])
	}
}

func TestDecodeXLSXHeaderOnly(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"name", "score"},
	})

	_, _, err := DecodeXLSX(data)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("DecodeXLSX = %v, want ErrNoData", err)
	}
}

func TestDecodeXLSXEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	_, _, err = DecodeXLSX(buf.Bytes())
	if !errors.Is(err, ErrNoData) {
		t.Errorf("DecodeXLSX = %v, want ErrNoData", err)
	}
}

func TestDecodeXLSXCorruptData(t *testing.T) {
	_, _, err := DecodeXLSX([]byte("this is not a zip archive"))
	if err == nil {
		t.Fatal("expected error for corrupt workbook")
	}
}

func TestDecodeXLSCorruptData(t *testing.T) {
	_, _, err := DecodeXLS([]byte("this is not a compound document"))
	if err == nil {
		t.Fatal("expected error for corrupt workbook")
	}
}

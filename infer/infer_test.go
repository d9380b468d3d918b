package infer

import (
	"fmt"
	"testing"
	"time"

	"chartdata/dataset"
)

// column builds single-column rows from the given values.
func column(name string, values ...any) []dataset.Row {
	rows := make([]dataset.Row, len(values))
	for i, v := range values {
		rows[i] = dataset.Row{name: v}
	}
	return rows
}

func inferOne(t *testing.T, values ...any) dataset.DataField {
	t.Helper()
	fields := Fields([]string{"col"}, column("col", values...))
	if len(fields) != 1 {
		t.Fatalf("fields = %d, want 1", len(fields))
	}
	return fields[0]
}

func TestFieldTypeVote(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   dataset.FieldType
	}{
		{"boolean strings", []any{"true", "false", "true"}, dataset.FieldTypeBoolean},
		{"native booleans", []any{true, false}, dataset.FieldTypeBoolean},
		{"iso dates", []any{"2024-01-01", "2024-02-15"}, dataset.FieldTypeDate},
		{"datetime strings", []any{"2024-01-01T10:30:00", "2024-06-30T23:59:59"}, dataset.FieldTypeDate},
		{"slash dates", []any{"2024/1/5", "2023/12/31"}, dataset.FieldTypeDate},
		{"numeric strings", []any{"30", "25", "-1.5"}, dataset.FieldTypeNumber},
		{"native numbers", []any{int64(1), 2.5, 3}, dataset.FieldTypeNumber},
		{"plain strings", []any{"alice", "bob"}, dataset.FieldTypeString},
		{"objects", []any{map[string]any{"k": "v"}, map[string]any{"k": "w"}}, dataset.FieldTypeObject},
		{"time values", []any{time.Now(), time.Now()}, dataset.FieldTypeDate},
		{"majority wins", []any{"1", "2", "3", "oops"}, dataset.FieldTypeNumber},
		{"invalid date stays string", []any{"2024-13-45", "2024-99-99"}, dataset.FieldTypeString},
		{"all empty defaults to string", []any{nil, "", nil}, dataset.FieldTypeString},
		{"arrays fall back to string", []any{[]any{1, 2}, []any{3}}, dataset.FieldTypeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := inferOne(t, tt.values...)
			if f.Type != tt.want {
				t.Errorf("type = %v, want %v", f.Type, tt.want)
			}
		})
	}
}

func TestFieldTypeTieBreak(t *testing.T) {
	// One string vote and one number vote: the fixed enumeration order
	// makes string win the tie.
	f := inferOne(t, "alice", "30")
	if f.Type != dataset.FieldTypeString {
		t.Errorf("tie type = %v, want string", f.Type)
	}

	// Number vs date tie: number is enumerated first.
	f = inferOne(t, "42", "2024-01-01")
	if f.Type != dataset.FieldTypeNumber {
		t.Errorf("tie type = %v, want number", f.Type)
	}
}

func TestNullability(t *testing.T) {
	f := inferOne(t, "a", "", "b")
	if !f.Nullable {
		t.Error("column with empty value should be nullable")
	}

	f = inferOne(t, "a", "b")
	if f.Nullable {
		t.Error("fully populated column should not be nullable")
	}

	// A key missing from a later row counts as empty.
	rows := []dataset.Row{
		{"a": "1", "b": "x"},
		{"a": "2"},
	}
	fields := Fields([]string{"a", "b"}, rows)
	if fields[0].Nullable {
		t.Error("column a should not be nullable")
	}
	if !fields[1].Nullable {
		t.Error("column b should be nullable")
	}
}

func TestUniqueCountAndSamples(t *testing.T) {
	f := inferOne(t, "x", "y", "x", "", "z", "x")
	if f.UniqueCount != 3 {
		t.Errorf("uniqueCount = %d, want 3", f.UniqueCount)
	}
	if len(f.SampleValues) != 5 {
		t.Errorf("samples = %d, want 5", len(f.SampleValues))
	}
	if f.SampleValues[0] != "x" || f.SampleValues[1] != "y" {
		t.Errorf("samples out of row order: %v", f.SampleValues)
	}
}

func TestSampleValuesBound(t *testing.T) {
	values := make([]any, 20)
	for i := range values {
		values[i] = fmt.Sprintf("v%d", i)
	}
	f := inferOne(t, values...)
	if len(f.SampleValues) != 5 {
		t.Errorf("samples = %d, want 5", len(f.SampleValues))
	}
	if f.UniqueCount != 20 {
		t.Errorf("uniqueCount = %d, want 20", f.UniqueCount)
	}
}

func TestClassificationSampleLimit(t *testing.T) {
	// First 100 rows are numeric; everything after is ignored by the vote
	// but still counted for uniqueness.
	values := make([]any, 150)
	for i := 0; i < 100; i++ {
		values[i] = fmt.Sprintf("%d", i)
	}
	for i := 100; i < 150; i++ {
		values[i] = "not a number"
	}

	f := inferOne(t, values...)
	if f.Type != dataset.FieldTypeNumber {
		t.Errorf("type = %v, want number (vote limited to first 100 rows)", f.Type)
	}
	if f.UniqueCount != 101 {
		t.Errorf("uniqueCount = %d, want 101 (full row set)", f.UniqueCount)
	}
}

func TestFieldOrderAndIndex(t *testing.T) {
	header := []string{"c", "a", "b"}
	rows := []dataset.Row{{"c": "1", "a": "2", "b": "3"}}

	fields := Fields(header, rows)
	for i, f := range fields {
		if f.Name != header[i] {
			t.Errorf("field %d = %s, want %s", i, f.Name, header[i])
		}
		if f.Index != i {
			t.Errorf("field %s index = %d, want %d", f.Name, f.Index, i)
		}
	}
}

func TestColumnValues(t *testing.T) {
	rows := []dataset.Row{
		{"a": "1"},
		{"a": ""},
		{"a": nil},
		{"b": "other"},
		{"a": "2"},
	}
	got := ColumnValues(rows, "a")
	if len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Errorf("ColumnValues = %v", got)
	}
}

func TestObjectDistinctness(t *testing.T) {
	// Structurally equal objects count once.
	f := inferOne(t,
		map[string]any{"k": "v"},
		map[string]any{"k": "v"},
		map[string]any{"k": "w"},
	)
	if f.UniqueCount != 2 {
		t.Errorf("uniqueCount = %d, want 2", f.UniqueCount)
	}
}

// Package dataset defines the canonical data model produced by the ingestion
// pipeline: source metadata, per-column field schemas, and the immutable
// parsed-data snapshot handed to the field-mapping and chart-building layers.
//
// JSON/YAML tags use camelCase for frontend compatibility.
package dataset

import "time"

// Row is one decoded data row, a mapping from column name to raw value.
// Values may be string, int64, float64, bool, time.Time, a nested object or
// nil depending on the source format. The infer package is the single place
// that narrows these; downstream code should treat rows as opaque.
type Row map[string]any

// FileType identifies the source format of an ingested file.
type FileType string

const (
	FileTypeXLSX FileType = "xlsx"
	FileTypeXLS  FileType = "xls"
	FileTypeCSV  FileType = "csv"
	FileTypeJSON FileType = "json"
)

// SourceType distinguishes file uploads from database connections.
// Database sources are a placeholder; only file ingestion is implemented.
type SourceType string

const (
	SourceTypeFile     SourceType = "file"
	SourceTypeDatabase SourceType = "database"
)

// DataSource carries the identity and provenance of one ingested dataset.
// It is created once per upload and never mutated afterwards.
type DataSource struct {
	ID               string     `json:"id" yaml:"id"`
	Name             string     `json:"name" yaml:"name"`
	Type             SourceType `json:"type" yaml:"type"`
	FileType         FileType   `json:"fileType,omitempty" yaml:"fileType,omitempty"`
	FileSize         int64      `json:"fileSize,omitempty" yaml:"fileSize,omitempty"`
	OriginalFileName string     `json:"originalFileName,omitempty" yaml:"originalFileName,omitempty"`
	CreatedAt        time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt" yaml:"updatedAt"`
}

// FieldType is the semantic type of a column, chosen by majority vote over
// the classification sample. The set is closed; no other values appear.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeDate    FieldType = "date"
	FieldTypeObject  FieldType = "object"
)

// FieldStats holds the numeric summary of a number-typed column.
// Mean and Sum are rounded to 2 decimal places; Median is exact.
type FieldStats struct {
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	Sum    float64 `json:"sum" yaml:"sum"`
}

// DataField is a single column's inferred schema.
type DataField struct {
	Name         string      `json:"name" yaml:"name"`
	Type         FieldType   `json:"type" yaml:"type"`
	Index        int         `json:"index" yaml:"index"`
	Nullable     bool        `json:"nullable" yaml:"nullable"`
	UniqueCount  int         `json:"uniqueCount" yaml:"uniqueCount"`
	SampleValues []any       `json:"sampleValues" yaml:"sampleValues"`
	// Stats is present exactly when Type is FieldTypeNumber and the column
	// held at least one coercible numeric value.
	Stats *FieldStats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// ParsedData is the complete result of running the pipeline on one upload.
// It is assembled once and treated as a read-only snapshot from then on.
type ParsedData struct {
	Source    DataSource  `json:"source" yaml:"source"`
	Fields    []DataField `json:"fields" yaml:"fields"`
	Rows      []Row       `json:"rows" yaml:"rows"`
	TotalRows int         `json:"totalRows" yaml:"totalRows"`
	ParsedAt  time.Time   `json:"parsedAt" yaml:"parsedAt"`
}

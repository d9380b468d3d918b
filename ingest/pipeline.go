// Package ingest turns uploaded files into chart-ready parsed data: it
// resolves the source format from the file name, validates size constraints,
// decodes Excel/CSV/JSON payloads into row records and assembles the
// canonical parsed-data snapshot with inferred field schemas.
package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"chartdata/dataset"
	"chartdata/infer"
)

// Options holds the tunable limits of the pipeline. The zero value is not
// usable; start from DefaultOptions.
type Options struct {
	// MaxFileSize caps the raw payload in bytes.
	MaxFileSize int64
	// ClassifySampleSize bounds the rows used for the type vote.
	ClassifySampleSize int
	// SampleValueCount is the number of representative values kept per field.
	SampleValueCount int
}

// DefaultOptions returns the standard pipeline limits.
func DefaultOptions() Options {
	return Options{
		MaxFileSize:        MaxFileSize,
		ClassifySampleSize: infer.ClassifySampleSize,
		SampleValueCount:   infer.SampleValueLimit,
	}
}

// Parse runs the full pipeline on an in-memory payload using default
// options: resolve format, validate size, decompress if needed, decode,
// infer fields and assemble. Failure at any stage aborts the whole file;
// partial results are never returned.
func Parse(ctx context.Context, name string, data []byte) (*dataset.ParsedData, error) {
	return ParseWithOptions(ctx, name, data, DefaultOptions())
}

// ParseWithOptions is Parse with explicit limits.
func ParseWithOptions(ctx context.Context, name string, data []byte, opts Options) (*dataset.ParsedData, error) {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = MaxFileSize
	}

	fileType, ok := ResolveFileType(name)
	if !ok {
		return nil, unsupportedFormatError(name)
	}

	if size := int64(len(data)); size <= 0 {
		return nil, ErrFileEmpty
	} else if size > opts.MaxFileSize {
		return nil, ErrFileTooLarge
	}
	originalSize := int64(len(data))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if ct := ResolveCompression(name, data); ct != CompressionNone {
		decompressed, err := Decompress(data, ct)
		if err != nil {
			return nil, err
		}
		data = decompressed
		if len(data) == 0 {
			return nil, ErrFileEmpty
		}
	}

	header, rows, err := decode(fileType, data)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields := infer.FieldsWithLimits(header, rows, opts.ClassifySampleSize, opts.SampleValueCount)
	for i := range fields {
		if fields[i].Type == dataset.FieldTypeNumber {
			fields[i].Stats = infer.ComputeStats(infer.ColumnValues(rows, fields[i].Name))
		}
	}

	source := NewSource(name, originalSize, fileType)
	return Assemble(source, fields, rows), nil
}

// ParseFile reads a file from disk and runs the pipeline on it. The size
// constraint is checked from file metadata before the contents are read.
func ParseFile(ctx context.Context, path string) (*dataset.ParsedData, error) {
	name := filepath.Base(path)
	if _, ok := ResolveFileType(name); !ok {
		return nil, unsupportedFormatError(name)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if err := ValidateSize(info.Size()); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(ctx, name, data)
}

func decode(fileType dataset.FileType, data []byte) ([]string, []dataset.Row, error) {
	switch fileType {
	case dataset.FileTypeXLSX:
		return DecodeXLSX(data)
	case dataset.FileTypeXLS:
		return DecodeXLS(data)
	case dataset.FileTypeCSV:
		return DecodeCSV(data)
	case dataset.FileTypeJSON:
		return DecodeJSON(data)
	default:
		return nil, nil, ErrUnsupportedFormat
	}
}

// NewSource builds the immutable source record for one upload. The display
// name is the file name minus its extension (and any compression suffix).
func NewSource(fileName string, size int64, fileType dataset.FileType) dataset.DataSource {
	base := stripCompressionSuffix(fileName)
	display := strings.TrimSuffix(base, filepath.Ext(base))
	if display == "" {
		display = fileName
	}

	now := time.Now()
	return dataset.DataSource{
		ID:               uuid.New().String(),
		Name:             display,
		Type:             dataset.SourceTypeFile,
		FileType:         fileType,
		FileSize:         size,
		OriginalFileName: fileName,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Assemble combines decoded rows, inferred fields and source metadata into
// the canonical parsed-data snapshot. Pure composition: no validation beyond
// what upstream stages already did, and no mutation of the inputs.
func Assemble(source dataset.DataSource, fields []dataset.DataField, rows []dataset.Row) *dataset.ParsedData {
	return &dataset.ParsedData{
		Source:    source,
		Fields:    fields,
		Rows:      rows,
		TotalRows: len(rows),
		ParsedAt:  time.Now(),
	}
}

package ingest

import (
	"errors"
	"fmt"
	"strings"

	"chartdata/dataset"
)

// MaxFileSize is the upper bound on ingested payloads. The whole file is
// materialized in memory before decoding, so the cap keeps that bounded.
const MaxFileSize int64 = 50 * 1024 * 1024

// Sentinel errors for the ingestion failure taxonomy. Callers distinguish
// "pick another file" (format/size) from "fix the file" (decode/no data)
// with errors.Is.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format, supported: xlsx, xls, csv, json")
	ErrFileEmpty         = errors.New("file is empty")
	ErrFileTooLarge      = errors.New("file size exceeds limit (max 50MB)")
	ErrNoData            = errors.New("no data")
)

var fileTypeByExtension = map[string]dataset.FileType{
	"xlsx": dataset.FileTypeXLSX,
	"xls":  dataset.FileTypeXLS,
	"csv":  dataset.FileTypeCSV,
	"json": dataset.FileTypeJSON,
}

// ResolveFileType maps a file name to its source format using the extension
// after the last dot, lower-cased. Compression suffixes (.gz, .bz2, .xz) are
// stripped first so data.csv.gz resolves to csv.
func ResolveFileType(name string) (dataset.FileType, bool) {
	ext := extensionOf(stripCompressionSuffix(name))
	ft, ok := fileTypeByExtension[ext]
	return ft, ok
}

// ValidateSize checks the empty and over-limit constraints. Both run before
// any decoding is attempted; a failure aborts the pipeline with no partial
// state retained.
func ValidateSize(size int64) error {
	if size <= 0 {
		return ErrFileEmpty
	}
	if size > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// extensionOf returns the substring after the last dot, lower-cased, or ""
// when the name has no dot.
func extensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// unsupportedFormatError tags the generic sentinel with the extension that
// failed to resolve.
func unsupportedFormatError(name string) error {
	ext := extensionOf(stripCompressionSuffix(name))
	if ext == "" {
		return ErrUnsupportedFormat
	}
	return fmt.Errorf("%w (got: %s)", ErrUnsupportedFormat, ext)
}

package ingest

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/ulikunitz/xz"
)

// CompressionType represents the compression wrapper of an uploaded payload.
type CompressionType int

const (
	CompressionNone CompressionType = iota
	CompressionGzip
	CompressionBzip2
	CompressionXZ
)

// String returns the string representation of CompressionType.
func (ct CompressionType) String() string {
	switch ct {
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	case CompressionXZ:
		return "xz"
	default:
		return "none"
	}
}

var compressionExtensions = map[string]CompressionType{
	".gz":  CompressionGzip,
	".bz2": CompressionBzip2,
	".xz":  CompressionXZ,
}

// Magic byte signatures for compression detection.
var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{0x42, 0x5a, 0x68}
	xzMagic    = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

// ResolveCompression determines the compression wrapper of a payload,
// preferring the file name's double extension (data.csv.gz) and falling back
// to magic bytes when the extension carries no compression suffix.
func ResolveCompression(name string, data []byte) CompressionType {
	lower := strings.ToLower(name)
	for ext, ct := range compressionExtensions {
		if strings.HasSuffix(lower, ext) {
			return ct
		}
	}
	return detectCompressionMagic(data)
}

// detectCompressionMagic inspects the first bytes of the payload.
func detectCompressionMagic(data []byte) CompressionType {
	if bytes.HasPrefix(data, gzipMagic) {
		return CompressionGzip
	}
	if bytes.HasPrefix(data, bzip2Magic) {
		return CompressionBzip2
	}
	if bytes.HasPrefix(data, xzMagic) {
		return CompressionXZ
	}
	return CompressionNone
}

// stripCompressionSuffix removes a trailing compression extension so the
// inner file type can be resolved from the remaining name.
func stripCompressionSuffix(name string) string {
	lower := strings.ToLower(name)
	for ext := range compressionExtensions {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// Decompress unwraps the payload. Unlike decoders there is no partial
// success: a mid-stream error aborts ingestion for the whole file.
func Decompress(data []byte, ct CompressionType) ([]byte, error) {
	if ct == CompressionNone {
		return data, nil
	}

	var reader io.Reader
	switch ct {
	case CompressionGzip:
		gzReader, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		reader = gzReader
	case CompressionBzip2:
		reader = bzip2.NewReader(bytes.NewReader(data))
	case CompressionXZ:
		xzReader, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		reader = xzReader
	default:
		return nil, fmt.Errorf("unsupported compression type: %v", ct)
	}

	out, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decompression failed: %w", err)
	}
	return out, nil
}

package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"chartdata/dataset"
)

// Directory batch ingestion: every supported file under a root that matches
// a glob pattern is parsed independently. Files whose extension does not
// resolve to a supported format are skipped rather than failing the batch;
// a decode failure on a matched supported file aborts the whole batch.

// ListDataFiles walks root and returns the relative paths of supported data
// files matching pattern, in walk order. Pattern syntax is doublestar glob
// ("**/*.csv" and friends); an empty pattern matches everything.
func ListDataFiles(root, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "**/*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid file pattern: %s", pattern)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if _, supported := ResolveFileType(d.Name()); supported {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ParseDirectory parses every matching data file under root. The result
// order follows the walk order of ListDataFiles.
func ParseDirectory(ctx context.Context, root, pattern string) ([]*dataset.ParsedData, error) {
	files, err := ListDataFiles(root, pattern)
	if err != nil {
		return nil, err
	}

	results := make([]*dataset.ParsedData, 0, len(files))
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		parsed, err := ParseFile(ctx, filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rel, err)
		}
		results = append(results, parsed)
	}
	return results, nil
}

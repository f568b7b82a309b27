package os

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ListFiles expands path into the regular files it denotes: path itself if
// it is a file, or every file below it if it is a directory. When exts is
// not empty, files found while walking a directory are kept only if their
// extension (case-insensitive, without the dot) is listed. An explicitly
// named file is always kept.
func ListFiles(path string, exts ...string) ([]string, error) {
	finfo, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !finfo.IsDir() {
		return []string{path}, nil
	}

	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(p), "."))
		if len(allowed) == 0 || allowed[ext] {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}
	return files, nil
}

// EnsureDir creates dir if it does not exist and reports whether it did.
func EnsureDir(dir string) (bool, error) {
	finfo, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}

	if !finfo.IsDir() {
		return false, fmt.Errorf("%s is not a directory", dir)
	}
	return false, nil
}

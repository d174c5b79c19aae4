// internal/docstore/docstore.go
//
// Document persistence. Reads load the whole file into memory; writes go
// through a temporary file in the same directory and an atomic rename, so a
// partially written README is never visible and the temporary artifact is
// removed on every failure path.

package docstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Read loads a document. exists is false (with no error) when the file is
// simply absent, which callers treat as "create from scratch".
func Read(path string) (content string, exists bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("docstore: read %s: %w", path, err)
	}
	return string(data), true, nil
}

// WriteAtomic replaces path with content in one visible step.
func WriteAtomic(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("docstore: create temp in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("docstore: write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("docstore: close %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("docstore: chmod %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("docstore: replace %s: %w", path, err)
	}
	return nil
}

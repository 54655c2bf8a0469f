// filepath: internal/storage/file.go
// Package storage provides functionality for storing and managing uploaded files.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// SaveFile saves file data from a reader to a specified path.
// It streams the file to avoid loading it entirely into memory. The destination
// is closed on every path; on failure the partial file is removed.
func SaveFile(fileData io.Reader, path string) (written int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("could not create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close file: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
			written = 0
		}
	}()

	written, err = io.Copy(f, fileData)
	if err != nil {
		return 0, fmt.Errorf("could not write file: %w", err)
	}
	if err = f.Sync(); err != nil {
		return 0, fmt.Errorf("could not flush file: %w", err)
	}
	return written, nil
}

// ErrObjectNotFound is returned when an upload does not exist in the backend.
var ErrObjectNotFound = errors.New("object not found")

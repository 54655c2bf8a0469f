// filepath: internal/storage/local.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
)

// LocalBackend keeps uploads as plain files in a single directory.
type LocalBackend struct {
	Root string
}

// NewLocalBackend creates root if needed.
func NewLocalBackend(root string) (*LocalBackend, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("could not create upload directory: %w", err)
	}
	return &LocalBackend{Root: root}, nil
}

func (b *LocalBackend) Save(_ context.Context, name string, r io.Reader, _ int64, _ string) (int64, error) {
	path, err := resolvePath(b.Root, name)
	if err != nil {
		return 0, err
	}
	return SaveFile(r, path)
}

func (b *LocalBackend) Open(_ context.Context, name string) (io.ReadCloser, ObjectInfo, error) {
	path, err := resolvePath(b.Root, name)
	if err != nil {
		return nil, ObjectInfo{}, ErrObjectNotFound
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ObjectInfo{}, ErrObjectNotFound
		}
		return nil, ObjectInfo{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, err
	}
	return f, ObjectInfo{
		Name:        name,
		Size:        st.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(name)),
		ModTime:     st.ModTime(),
	}, nil
}

func (b *LocalBackend) Delete(_ context.Context, name string) error {
	path, err := resolvePath(b.Root, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrObjectNotFound
		}
		return err
	}
	return nil
}

// List returns the regular files in Root. Subdirectories are ignored.
func (b *LocalBackend) List(_ context.Context) ([]ObjectInfo, error) {
	entries, err := os.ReadDir(b.Root)
	if err != nil {
		return nil, fmt.Errorf("could not read upload directory: %w", err)
	}

	objects := make([]ObjectInfo, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		objects = append(objects, ObjectInfo{
			Name:        e.Name(),
			Size:        info.Size(),
			ContentType: mime.TypeByExtension(filepath.Ext(e.Name())),
			ModTime:     info.ModTime(),
		})
	}
	return objects, nil
}

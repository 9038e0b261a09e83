// Package file implements the graph store on the local filesystem.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openpathway/pathmerge/pkg/bel"
	"github.com/openpathway/pathmerge/pkg/store"
)

// Store reads and writes graph archives under local paths. The zero value is
// usable.
type Store struct{}

// New creates a filesystem-backed graph store.
func New() *Store {
	return &Store{}
}

// Save writes the graph archive atomically: the bytes go to a temporary file
// in the target directory first and are renamed into place, so readers never
// observe a partial archive.
func (s *Store) Save(_ context.Context, graph *bel.Graph, path string) error {
	data, err := store.Encode(graph)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create archive directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary archive: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write archive %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close archive %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move archive into place: %w", err)
	}
	return nil
}

// Load reads one graph archive.
func (s *Store) Load(_ context.Context, path string) (*bel.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read archive %s: %w", path, err)
	}
	return store.Decode(data)
}

// List returns the archive paths directly under dir. Non-archive files are
// not filtered here; classification of unknown files is the caller's call.
func (s *Store) List(_ context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", dir, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to list archive directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// Package cas implements the per-target stamp storage.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/assemble/internal/core/domain"
	"go.trai.ch/assemble/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StampStore = (*StampStore)(nil)

// StampStore implements ports.StampStore with one JSON file per stamp, stored directly in
// the build directory.
type StampStore struct{}

// NewStampStore creates a new StampStore.
func NewStampStore() *StampStore {
	return &StampStore{}
}

func stampPath(buildDir, name string) string {
	return filepath.Join(filepath.Clean(buildDir), name)
}

// Get retrieves the stamp stored under name.
func (s *StampStore) Get(buildDir, name string) (*domain.Stamp, error) {
	path := stampPath(buildDir, name)

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStampReadFailed.Error()), "path", path)
	}

	var stamp domain.Stamp
	if err := json.Unmarshal(data, &stamp); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrStampCorrupt, err), "path", path)
	}
	if stamp.Name == "" {
		return nil, zerr.With(errors.Join(domain.ErrStampCorrupt, errors.New("stamp has no name")), "path", path)
	}

	return &stamp, nil
}

// Put stores the stamp under name, replacing any previous stamp atomically.
func (s *StampStore) Put(buildDir, name string, stamp *domain.Stamp) error {
	path := stampPath(buildDir, name)

	data, err := json.MarshalIndent(stamp, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStampMarshalFailed.Error())
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for stamp"), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".tmp*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStampWriteFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // Gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrStampWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStampWriteFailed.Error()), "path", path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStampWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStampWriteFailed.Error()), "path", path)
	}

	return nil
}

// Remove deletes the stamp stored under name.
func (s *StampStore) Remove(buildDir, name string) error {
	path := stampPath(buildDir, name)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", path)
	}
	return nil
}

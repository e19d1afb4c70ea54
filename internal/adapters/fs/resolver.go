package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/assemble/internal/core/domain"
	"go.trai.ch/assemble/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceResolver = (*Resolver)(nil)

// Resolver implements the SourceResolver interface by listing the parent directory of a glob.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve expands a single source pattern against env.
func (r *Resolver) Resolve(source domain.Source, env domain.Environment) ([]string, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}

	path := filepath.Clean(filepath.FromSlash(env.Expand(source.String())))
	if !source.IsGlob() {
		return []string{path}, nil
	}

	// Only the final segment is a pattern; the directory is taken literally.
	dir, glob := filepath.Split(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrGlobFailed.Error()), "pattern", source.String())
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		matched, matchErr := filepath.Match(glob, entry.Name())
		if matchErr != nil {
			return nil, zerr.With(zerr.Wrap(matchErr, domain.ErrGlobFailed.Error()), "pattern", source.String())
		}
		if !matched {
			continue
		}
		match := filepath.Join(dir, entry.Name())
		info, statErr := os.Stat(match)
		if statErr != nil || info.IsDir() {
			continue
		}
		files = append(files, match)
	}
	slices.Sort(files)

	return files, nil
}

// ResolveAll expands every source pattern in order, dropping paths already produced by an
// earlier pattern.
func (r *Resolver) ResolveAll(sources []domain.Source, env domain.Environment) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, source := range sources {
		paths, err := r.Resolve(source, env)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			if seen[p] {
				continue
			}
			seen[p] = true
			result = append(result, p)
		}
	}

	return result, nil
}

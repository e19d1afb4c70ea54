// Package fs provides file system adapters for resolving, walking and hashing files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files below root, skipping .git and ignored directories.
// Yielded paths start with root.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return w.walk(root, ignores, false)
}

// WalkDirs yields root and every directory below it, skipping .git and ignored directories.
func (w *Walker) WalkDirs(root string, ignores []string) iter.Seq[string] {
	return w.walk(root, ignores, true)
}

func (w *Walker) walk(root string, ignores []string, dirs bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if path != root && w.shouldSkip(path, d, ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() != dirs {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

// Excluded reports whether path, or any directory between root and path, is skipped when walking root.
// Paths outside root are always excluded.
func (w *Walker) Excluded(root, path string, ignores []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return true
	}
	if rel == "." {
		return false
	}

	current := root
	for _, name := range strings.Split(rel, string(filepath.Separator)) {
		current = filepath.Join(current, name)
		// Intermediate components are directories; the last one may be either.
		if w.skip(current, name, true, ignores) {
			return true
		}
	}
	return false
}

func (w *Walker) shouldSkip(path string, d fs.DirEntry, ignores []string) bool {
	return w.skip(path, d.Name(), d.IsDir(), ignores)
}

// skip reports whether an entry is excluded. Ignores match either the entry's base name
// or, for absolute ignores, the entry's full path.
func (w *Walker) skip(path, name string, isDir bool, ignores []string) bool {
	if isDir && (name == ".git" || name == ".jj") {
		return true
	}

	for _, ignore := range ignores {
		if filepath.IsAbs(ignore) {
			if path == filepath.Clean(ignore) {
				return true
			}
			continue
		}
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}

	return false
}

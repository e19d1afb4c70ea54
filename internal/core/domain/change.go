package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// ChangeType classifies why a resolved input differs from its previous build.
type ChangeType uint8

const (
	// ChangeAdded means the input was not part of the previous build.
	ChangeAdded ChangeType = iota + 1
	// ChangeModified means the input's content hash differs from the previous build.
	ChangeModified
	// ChangeRemoved means the input was part of the previous build but no longer resolves.
	ChangeRemoved
)

// String returns the lowercase name of the change.
func (c ChangeType) String() string {
	switch c {
	case ChangeAdded:
		return "added"
	case ChangeModified:
		return "modified"
	case ChangeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c ChangeType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ChangeType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "added":
		*c = ChangeAdded
	case "modified":
		*c = ChangeModified
	case "removed":
		*c = ChangeRemoved
	default:
		return zerr.With(zerr.New("unknown change type"), "value", string(text))
	}
	return nil
}

// ChangeSet maps absolute input paths to the reason they changed.
type ChangeSet map[string]ChangeType

// Paths returns the changed paths in sorted order.
func (c ChangeSet) Paths() []string {
	paths := make([]string, 0, len(c))
	for p := range c {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Count returns the number of paths with the given change type.
func (c ChangeSet) Count(kind ChangeType) int {
	n := 0
	for _, k := range c {
		if k == kind {
			n++
		}
	}
	return n
}

// DiffHashes compares the hashes of the previous build against the current ones.
// A nil previous map means there was no previous build, so every current path is added.
func DiffHashes(previous, current map[string]string) ChangeSet {
	changes := make(ChangeSet)
	for p, hash := range current {
		old, ok := previous[p]
		switch {
		case !ok:
			changes[p] = ChangeAdded
		case old != hash:
			changes[p] = ChangeModified
		}
	}
	for p := range previous {
		if _, ok := current[p]; !ok {
			changes[p] = ChangeRemoved
		}
	}
	return changes
}

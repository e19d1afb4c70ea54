package ports

import "go.trai.ch/assemble/internal/core/domain"

// StampStore defines the interface for storing and retrieving target stamps.
//
//go:generate go run go.uber.org/mock/mockgen -source=stamp_store.go -destination=mocks/mock_stamp_store.go -package=mocks
type StampStore interface {
	// Get retrieves the stamp stored under name in buildDir.
	// Returns nil, nil if not found. An undecodable stamp yields an error matching domain.ErrStampCorrupt.
	Get(buildDir, name string) (*domain.Stamp, error)

	// Put stores the stamp under name in buildDir.
	Put(buildDir, name string, stamp *domain.Stamp) error

	// Remove deletes the stamp stored under name. Removing a missing stamp is not an error.
	Remove(buildDir, name string) error
}

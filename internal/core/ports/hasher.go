package ports

import "go.trai.ch/assemble/internal/core/domain"

// Hasher defines the interface for computing hashes.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// HashFile computes the hex encoded content digest of the file at path.
	HashFile(path string) (string, error)

	// Fingerprint computes a digest of the target's declaration: its name, dependencies,
	// patterns, modes and, when available, the configuration of its action.
	Fingerprint(target *domain.Target) string
}

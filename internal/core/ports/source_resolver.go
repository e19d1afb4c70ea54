package ports

import "go.trai.ch/assemble/internal/core/domain"

// SourceResolver expands source patterns into concrete file paths.
//
//go:generate mockgen -destination=mocks/mock_source_resolver.go -package=mocks -source=source_resolver.go
type SourceResolver interface {
	// Resolve expands a single pattern against env into absolute, cleaned paths.
	// A glob resolves to the existing matching files in sorted order, possibly none.
	// A pattern without a recognized leading token yields a *domain.InvalidPatternError.
	Resolve(source domain.Source, env domain.Environment) ([]string, error)

	// ResolveAll expands every pattern in order and drops duplicate paths.
	ResolveAll(sources []domain.Source, env domain.Environment) ([]string, error)
}

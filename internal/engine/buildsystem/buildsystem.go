// Package buildsystem implements the incremental build orchestrator over a target graph.
package buildsystem

import (
	"context"
	"fmt"
	"path/filepath"

	"go.trai.ch/assemble/internal/core/domain"
	"go.trai.ch/assemble/internal/core/ports"
)

// BuildOptions tunes a single build request.
type BuildOptions struct {
	// Force ignores existing stamps, so every target in the closure runs.
	Force bool
	// Parallelism bounds how many targets run at once. Values below 1 mean 1.
	Parallelism int
}

// BuildSystem builds a target and its dependency closure, skipping targets whose
// resolved inputs are unchanged since their last successful run.
type BuildSystem struct {
	resolver  ports.SourceResolver
	caches    ports.FileCacheFactory
	stamps    ports.StampStore
	hasher    ports.Hasher
	verifier  ports.OutputVerifier
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new BuildSystem.
func New(
	resolver ports.SourceResolver,
	caches ports.FileCacheFactory,
	stamps ports.StampStore,
	hasher ports.Hasher,
	verifier ports.OutputVerifier,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *BuildSystem {
	return &BuildSystem{
		resolver:  resolver,
		caches:    caches,
		stamps:    stamps,
		hasher:    hasher,
		verifier:  verifier,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Build ensures the target called name and everything it depends on are up to date for env.
//
// Before any action runs, the closure is checked for cycles, mode compatibility, invalid
// patterns and conflicting outputs. Targets then run in dependency order, each at most once.
// Fatal conditions are returned as the typed errors of the domain package; an action's own
// error is returned as is.
func (b *BuildSystem) Build(
	ctx context.Context,
	graph *domain.Graph,
	name string,
	env domain.Environment,
	opts BuildOptions,
) (*domain.BuildResult, error) {
	root, err := graph.Resolve(name)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckCycles(root); err != nil {
		return nil, err
	}

	closure := make([]*domain.Target, 0, graph.Len())
	for t := range domain.Walk(root) {
		closure = append(closure, t)
	}

	if err := b.preflight(closure, env); err != nil {
		return nil, err
	}

	cache, err := b.caches.Open(env.BuildDir)
	if err != nil {
		return nil, err
	}

	state := b.newRunState(ctx, closure, cache, env, opts)
	runErr := state.run()

	if err := cache.Persist(); err != nil && runErr == nil {
		return state.result, err
	}
	return state.result, runErr
}

// preflight runs the checks that must pass before any action is invoked.
func (b *BuildSystem) preflight(closure []*domain.Target, env domain.Environment) error {
	for _, t := range closure {
		if !t.SupportsMode(env.Mode) {
			return &domain.InvalidBuildError{Target: t.Name, Mode: env.Mode, Allowed: t.Modes}
		}
		for _, s := range t.Inputs {
			if err := s.Validate(); err != nil {
				return err
			}
		}
		for _, s := range t.Outputs {
			if err := s.Validate(); err != nil {
				return err
			}
		}
	}
	return checkOutputConflicts(closure, env)
}

// checkOutputConflicts rejects two targets declaring the same output. Plain outputs are
// compared as resolved paths, globs as substituted patterns.
func checkOutputConflicts(closure []*domain.Target, env domain.Environment) error {
	owners := make(map[string]string)
	for _, t := range closure {
		for _, s := range t.Outputs {
			key := filepath.Clean(filepath.FromSlash(env.Expand(s.String())))
			if owner, ok := owners[key]; ok && owner != t.Name {
				return &domain.OutputConflictError{Path: key, Targets: [2]string{owner, t.Name}}
			}
			owners[key] = t.Name
		}
	}
	return nil
}

// Describe returns the declared shape of the target called name and its dependency closure,
// dependencies first.
func (b *BuildSystem) Describe(graph *domain.Graph, name string) ([]domain.TargetDescription, error) {
	root, err := graph.Resolve(name)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckCycles(root); err != nil {
		return nil, err
	}

	var descriptions []domain.TargetDescription
	for t := range domain.Walk(root) {
		descriptions = append(descriptions, t.Describe())
	}
	return descriptions, nil
}

// Clean removes the stamp of every target in graph for env and the file hash table,
// so the next build runs every target.
func (b *BuildSystem) Clean(graph *domain.Graph, env domain.Environment) error {
	for t := range graph.Targets() {
		if err := b.stamps.Remove(env.BuildDir, t.StampName(env)); err != nil {
			return err
		}
		b.logger.Debug(fmt.Sprintf("removed stamp of %s", t.Name))
	}
	return b.caches.Remove(env.BuildDir)
}

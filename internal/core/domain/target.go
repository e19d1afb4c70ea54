package domain

import (
	"context"
	"slices"
)

// Action is the side-effecting step a target performs when its inputs changed.
//
//go:generate go run go.uber.org/mock/mockgen -source=target.go -destination=../ports/mocks/mock_action.go -package=mocks
type Action interface {
	// Run performs the build step. changes holds every input that differs from the
	// previous successful run; it holds every input on the first run.
	Run(ctx context.Context, changes ChangeSet, env Environment) error
}

// ActionFunc adapts a function to the Action interface.
type ActionFunc func(ctx context.Context, changes ChangeSet, env Environment) error

// Run calls f.
func (f ActionFunc) Run(ctx context.Context, changes ChangeSet, env Environment) error {
	return f(ctx, changes, env)
}

// Target is a named build step. Targets are assembled once and not mutated afterwards;
// graph traversal relies on pointer identity of the Dependencies.
type Target struct {
	Name         string
	Inputs       []Source
	Outputs      []Source
	Dependencies []*Target
	// Modes restricts the build modes this target supports. Empty means all modes.
	Modes  []BuildMode
	Action Action
}

// SupportsMode reports whether the target may be built in mode.
func (t *Target) SupportsMode(mode BuildMode) bool {
	return len(t.Modes) == 0 || slices.Contains(t.Modes, mode)
}

// StampName returns the file name of the target's stamp for env.
func (t *Target) StampName(env Environment) string {
	return t.Name + "." + string(env.Mode) + "." + string(env.Platform) + "." + env.FlavorName()
}

// DependencyNames returns the names of the direct dependencies in declaration order.
func (t *Target) DependencyNames() []string {
	names := make([]string, len(t.Dependencies))
	for i, dep := range t.Dependencies {
		names[i] = dep.Name
	}
	return names
}

// TargetDescription is the introspectable form of a target.
type TargetDescription struct {
	Name         string   `json:"name"`
	Dependencies []string `json:"dependencies"`
	Inputs       []string `json:"inputs"`
	Outputs      []string `json:"outputs"`
	Modes        []string `json:"modes,omitempty"`
}

// Describe returns the declared shape of the target.
func (t *Target) Describe() TargetDescription {
	desc := TargetDescription{
		Name:         t.Name,
		Dependencies: t.DependencyNames(),
		Inputs:       sourceStrings(t.Inputs),
		Outputs:      sourceStrings(t.Outputs),
	}
	for _, m := range t.Modes {
		desc.Modes = append(desc.Modes, string(m))
	}
	return desc
}

func sourceStrings(sources []Source) []string {
	res := make([]string, len(sources))
	for i, s := range sources {
		res[i] = s.String()
	}
	return res
}

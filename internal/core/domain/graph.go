// Package domain contains the core domain models and business logic for the target dependency graph.
package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// Graph is an explicitly constructed registry of targets, keyed by name.
// Edges are the targets' Dependencies pointers.
type Graph struct {
	targets map[string]*Target
	order   []string
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		targets: make(map[string]*Target),
	}
}

// AddTarget registers a target under its name.
// It returns an error if a target with the same name already exists.
func (g *Graph) AddTarget(t *Target) error {
	if t == nil {
		return ErrNilTarget
	}
	if _, exists := g.targets[t.Name]; exists {
		return zerr.With(zerr.Wrap(ErrTargetAlreadyExists, "add target"), "target", t.Name)
	}
	g.targets[t.Name] = t
	g.order = append(g.order, t.Name)
	return nil
}

// Target returns the target registered under name.
func (g *Graph) Target(name string) (*Target, bool) {
	t, ok := g.targets[name]
	return t, ok
}

// Resolve returns the target registered under name or an *UnknownTargetError.
func (g *Graph) Resolve(name string) (*Target, error) {
	t, ok := g.targets[name]
	if !ok {
		return nil, &UnknownTargetError{Name: name}
	}
	return t, nil
}

// Len returns the number of registered targets.
func (g *Graph) Len() int {
	return len(g.targets)
}

// Targets yields the registered targets in registration order.
func (g *Graph) Targets() iter.Seq[*Target] {
	return func(yield func(*Target) bool) {
		for _, name := range g.order {
			if !yield(g.targets[name]) {
				return
			}
		}
	}
}

// Validate checks every registered target for reachable cycles.
func (g *Graph) Validate() error {
	state := make(map[*Target]int)
	for t := range g.Targets() {
		if err := checkCycles(t, state); err != nil {
			return err
		}
	}
	return nil
}

// CheckCycles walks everything reachable from root and returns a *CycleError
// if any target is reachable from itself.
func CheckCycles(root *Target) error {
	return checkCycles(root, make(map[*Target]int))
}

func checkCycles(root *Target, state map[*Target]int) error {
	const (
		visiting = 1
		done     = 2
	)
	var path []*Target

	var visit func(t *Target) error
	visit = func(t *Target) error {
		state[t] = visiting
		path = append(path, t)

		for _, dep := range t.Dependencies {
			if dep == nil {
				return zerr.With(zerr.Wrap(ErrNilTarget, "nil dependency"), "target", t.Name)
			}
			switch state[dep] {
			case visiting:
				return buildCycleError(path, dep)
			case done:
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		state[t] = done
		path = path[:len(path)-1]
		return nil
	}

	if root == nil {
		return ErrNilTarget
	}
	if state[root] == done {
		return nil
	}
	return visit(root)
}

// buildCycleError reports the portion of path starting at dep, closed by dep again.
func buildCycleError(path []*Target, dep *Target) error {
	start := 0
	for i, t := range path {
		if t == dep {
			start = i
			break
		}
	}
	names := make([]string, 0, len(path)-start+1)
	for _, t := range path[start:] {
		names = append(names, t.Name)
	}
	names = append(names, dep.Name)
	return &CycleError{Path: names}
}

// Walk yields root and everything it depends on in post-order: every target is
// yielded after all of its dependencies, and at most once.
// It assumes CheckCycles(root) returned nil.
func Walk(root *Target) iter.Seq[*Target] {
	return func(yield func(*Target) bool) {
		visited := make(map[*Target]bool)
		var visit func(t *Target) bool
		visit = func(t *Target) bool {
			if visited[t] {
				return true
			}
			visited[t] = true
			for _, dep := range t.Dependencies {
				if !visit(dep) {
					return false
				}
			}
			return yield(t)
		}
		visit(root)
	}
}

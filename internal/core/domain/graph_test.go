package domain_test

import (
	"errors"
	"testing"

	"go.trai.ch/assemble/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestGraph_AddTarget(t *testing.T) {
	g := domain.NewGraph()
	target := &domain.Target{Name: "target1"}

	if err := g.AddTarget(target); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := g.AddTarget(&domain.Target{Name: "target1"})
	if err == nil {
		t.Fatal("expected error when adding duplicate target, got nil")
	}
	if !errors.Is(err, domain.ErrTargetAlreadyExists) {
		t.Errorf("expected ErrTargetAlreadyExists, got %v", err)
	}

	var zErr *zerr.Error
	if !errors.As(err, &zErr) {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	if name, ok := zErr.Metadata()["target"].(string); !ok || name != "target1" {
		t.Errorf("expected metadata target=target1, got %v", zErr.Metadata()["target"])
	}

	if err := g.AddTarget(nil); !errors.Is(err, domain.ErrNilTarget) {
		t.Errorf("expected ErrNilTarget, got %v", err)
	}
	if g.Len() != 1 {
		t.Errorf("expected 1 target, got %d", g.Len())
	}
}

func TestGraph_Resolve(t *testing.T) {
	g := domain.NewGraph()
	a := &domain.Target{Name: "A"}
	if err := g.AddTarget(a); err != nil {
		t.Fatalf("failed to add target A: %v", err)
	}

	got, err := g.Resolve("A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != a {
		t.Errorf("expected the registered target, got %v", got)
	}

	_, err = g.Resolve("missing")
	var unknown *domain.UnknownTargetError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownTargetError, got %T", err)
	}
	if unknown.Name != "missing" {
		t.Errorf("expected name 'missing', got %q", unknown.Name)
	}
	if !errors.Is(err, domain.ErrTargetNotFound) {
		t.Errorf("expected error to match ErrTargetNotFound")
	}
}

func TestGraph_Targets_RegistrationOrder(t *testing.T) {
	g := domain.NewGraph()
	for _, name := range []string{"c", "a", "b"} {
		if err := g.AddTarget(&domain.Target{Name: name}); err != nil {
			t.Fatalf("failed to add target %s: %v", name, err)
		}
	}

	var names []string
	for target := range g.Targets() {
		names = append(names, target.Name)
	}
	if len(names) != 3 || names[0] != "c" || names[1] != "a" || names[2] != "b" {
		t.Errorf("unexpected order: %v", names)
	}
}

func TestCheckCycles(t *testing.T) {
	a := &domain.Target{Name: "A"}
	b := &domain.Target{Name: "B"}
	a.Dependencies = []*domain.Target{b}
	b.Dependencies = []*domain.Target{a}

	for _, root := range []*domain.Target{a, b} {
		err := domain.CheckCycles(root)
		var cycle *domain.CycleError
		if !errors.As(err, &cycle) {
			t.Fatalf("expected *CycleError from %s, got %v", root.Name, err)
		}
		if len(cycle.Path) != 3 {
			t.Fatalf("expected cycle path of 3 entries, got %v", cycle.Path)
		}
		if cycle.Path[0] != root.Name || cycle.Path[2] != root.Name {
			t.Errorf("expected cycle to start and end at %s, got %v", root.Name, cycle.Path)
		}
		if !errors.Is(err, domain.ErrCycleDetected) {
			t.Errorf("expected error to match ErrCycleDetected")
		}
	}
}

func TestCheckCycles_Deep(t *testing.T) {
	// root -> x -> y -> z -> x
	z := &domain.Target{Name: "z"}
	y := &domain.Target{Name: "y", Dependencies: []*domain.Target{z}}
	x := &domain.Target{Name: "x", Dependencies: []*domain.Target{y}}
	z.Dependencies = []*domain.Target{x}
	root := &domain.Target{Name: "root", Dependencies: []*domain.Target{x}}

	err := domain.CheckCycles(root)
	var cycle *domain.CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected *CycleError, got %v", err)
	}
	if got := cycle.Error(); got != "cycle detected: x -> y -> z -> x" {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestCheckCycles_Diamond(t *testing.T) {
	shared := &domain.Target{Name: "shared"}
	left := &domain.Target{Name: "left", Dependencies: []*domain.Target{shared}}
	right := &domain.Target{Name: "right", Dependencies: []*domain.Target{shared}}
	top := &domain.Target{Name: "top", Dependencies: []*domain.Target{left, right}}

	if err := domain.CheckCycles(top); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckCycles_NilDependency(t *testing.T) {
	a := &domain.Target{Name: "A", Dependencies: []*domain.Target{nil}}
	if err := domain.CheckCycles(a); !errors.Is(err, domain.ErrNilTarget) {
		t.Errorf("expected ErrNilTarget, got %v", err)
	}
}

func TestGraph_Validate_Cycle(t *testing.T) {
	g := domain.NewGraph()
	a := &domain.Target{Name: "A"}
	b := &domain.Target{Name: "B"}
	c := &domain.Target{Name: "C"}
	b.Dependencies = []*domain.Target{c}
	c.Dependencies = []*domain.Target{b}

	for _, target := range []*domain.Target{a, b, c} {
		if err := g.AddTarget(target); err != nil {
			t.Fatalf("failed to add target %s: %v", target.Name, err)
		}
	}

	if err := g.Validate(); !errors.Is(err, domain.ErrCycleDetected) {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestWalk(t *testing.T) {
	// A -> B -> C, A -> C
	// Execution order: C, B, A
	c := &domain.Target{Name: "C"}
	b := &domain.Target{Name: "B", Dependencies: []*domain.Target{c}}
	a := &domain.Target{Name: "A", Dependencies: []*domain.Target{b, c}}

	executed := make([]string, 0, 3)
	for target := range domain.Walk(a) {
		executed = append(executed, target.Name)
	}

	if len(executed) != 3 {
		t.Fatalf("expected 3 targets visited, got %d: %v", len(executed), executed)
	}
	if executed[0] != "C" || executed[1] != "B" || executed[2] != "A" {
		t.Errorf("unexpected execution order: %v", executed)
	}
}

func TestWalk_StopsEarly(t *testing.T) {
	c := &domain.Target{Name: "C"}
	b := &domain.Target{Name: "B", Dependencies: []*domain.Target{c}}
	a := &domain.Target{Name: "A", Dependencies: []*domain.Target{b}}

	var visited []string
	for target := range domain.Walk(a) {
		visited = append(visited, target.Name)
		break
	}
	if len(visited) != 1 || visited[0] != "C" {
		t.Errorf("unexpected visit: %v", visited)
	}
}

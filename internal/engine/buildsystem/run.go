package buildsystem

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.trai.ch/assemble/internal/core/domain"
	"go.trai.ch/assemble/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

type result struct {
	target *domain.Target
	err    error
}

// runState schedules the targets of one build closure. A target becomes ready once all of its
// dependencies completed successfully; among ready targets the one earliest in post-order runs
// first, so a sequential build visits targets in exact depth-first post-order.
type runState struct {
	b      *BuildSystem
	ctx    context.Context
	cache  ports.FileHashCache
	env    domain.Environment
	opts   BuildOptions
	result *domain.BuildResult

	order      map[*domain.Target]int
	inDegree   map[*domain.Target]int
	dependents map[*domain.Target][]*domain.Target
	ready      []*domain.Target
	active     int

	mu sync.Mutex
}

func (b *BuildSystem) newRunState(
	ctx context.Context,
	closure []*domain.Target,
	cache ports.FileHashCache,
	env domain.Environment,
	opts BuildOptions,
) *runState {
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}

	state := &runState{
		b:          b,
		ctx:        ctx,
		cache:      cache,
		env:        env,
		opts:       opts,
		result:     domain.NewBuildResult(),
		order:      make(map[*domain.Target]int, len(closure)),
		inDegree:   make(map[*domain.Target]int, len(closure)),
		dependents: make(map[*domain.Target][]*domain.Target, len(closure)),
	}

	for i, t := range closure {
		state.order[t] = i
		seen := make(map[*domain.Target]bool, len(t.Dependencies))
		for _, dep := range t.Dependencies {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			state.inDegree[t]++
			state.dependents[dep] = append(state.dependents[dep], t)
		}
		if state.inDegree[t] == 0 {
			state.ready = append(state.ready, t)
		}
	}
	return state
}

// run executes the closure and returns the first error. After a failure no further
// targets are started; targets already running are canceled and awaited.
func (s *runState) run() error {
	g, gctx := errgroup.WithContext(s.ctx)
	results := make(chan result, len(s.order))

	var failed bool
	for {
		for !failed && len(s.ready) > 0 && s.active < s.opts.Parallelism {
			t := s.ready[0]
			s.ready = s.ready[1:]
			s.active++

			g.Go(func() error {
				err := s.buildTarget(gctx, t)
				results <- result{target: t, err: err}
				return err
			})
		}

		if s.active == 0 {
			break
		}

		res := <-results
		s.active--
		if res.err != nil {
			failed = true
			continue
		}
		s.release(res.target)
	}

	return g.Wait()
}

// release marks the dependents of t whose dependencies are all complete as ready.
func (s *runState) release(t *domain.Target) {
	for _, dependent := range s.dependents[t] {
		s.inDegree[dependent]--
		if s.inDegree[dependent] == 0 {
			s.ready = append(s.ready, dependent)
		}
	}
	slices.SortFunc(s.ready, func(a, b *domain.Target) int {
		return s.order[a] - s.order[b]
	})
}

func (s *runState) record(t *domain.Target, invoked bool, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if invoked {
		s.result.Invoked = append(s.result.Invoked, t.Name)
	} else {
		s.result.Skipped = append(s.result.Skipped, t.Name)
	}
	s.result.Durations[t.Name] = elapsed
}

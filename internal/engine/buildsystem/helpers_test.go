package buildsystem_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/assemble/internal/adapters/cas"
	"go.trai.ch/assemble/internal/adapters/fs"
	"go.trai.ch/assemble/internal/adapters/telemetry"
	"go.trai.ch/assemble/internal/core/domain"
	"go.trai.ch/assemble/internal/core/ports"
	"go.trai.ch/assemble/internal/core/ports/mocks"
	"go.trai.ch/assemble/internal/engine/buildsystem"
	"go.uber.org/mock/gomock"
)

// recorder captures every action invocation of a test build.
type recorder struct {
	mu      sync.Mutex
	events  []string
	calls   map[string]int
	changes map[string][]domain.ChangeSet
}

func newRecorder() *recorder {
	return &recorder{
		calls:   make(map[string]int),
		changes: make(map[string][]domain.ChangeSet),
	}
}

// action returns an Action that records its invocation and then runs fn, if any.
func (r *recorder) action(name string, fn func(env domain.Environment) error) domain.Action {
	return domain.ActionFunc(func(_ context.Context, changes domain.ChangeSet, env domain.Environment) error {
		r.mu.Lock()
		r.events = append(r.events, "start:"+name)
		r.calls[name]++
		r.changes[name] = append(r.changes[name], changes)
		r.mu.Unlock()

		var err error
		if fn != nil {
			err = fn(env)
		}

		r.mu.Lock()
		r.events = append(r.events, "end:"+name)
		r.mu.Unlock()
		return err
	})
}

func (r *recorder) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[name]
}

// lastChanges returns the change set of the most recent invocation of name.
func (r *recorder) lastChanges(t *testing.T, name string) domain.ChangeSet {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.changes[name], "%s never ran", name)
	return r.changes[name][len(r.changes[name])-1]
}

func (r *recorder) started() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var names []string
	for _, e := range r.events {
		if len(e) > 6 && e[:6] == "start:" {
			names = append(names, e[6:])
		}
	}
	return names
}

type fixture struct {
	env domain.Environment
	bs  *buildsystem.BuildSystem
	rec *recorder
}

func permissiveLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	return log
}

func newEnvironment(t *testing.T, mode domain.BuildMode) domain.Environment {
	t.Helper()
	root := t.TempDir()
	env, err := domain.NewEnvironment(
		root,
		filepath.Join(root, "build"),
		filepath.Join(root, "cache"),
		domain.PlatformLinuxX64,
		mode,
		"",
	)
	require.NoError(t, err)
	return env
}

// newFixture wires a BuildSystem over the real file system adapters. A nil logger is permissive.
func newFixture(t *testing.T, log ports.Logger) *fixture {
	t.Helper()
	if log == nil {
		log = permissiveLogger(t)
	}
	hasher := fs.NewHasher()
	bs := buildsystem.New(
		fs.NewResolver(),
		fs.NewFileCacheFactory(hasher),
		cas.NewStampStore(),
		hasher,
		fs.NewVerifier(),
		telemetry.NewNoOpTelemetry(),
		log,
	)
	return &fixture{
		env: newEnvironment(t, domain.BuildModeDebug),
		bs:  bs,
		rec: newRecorder(),
	}
}

// write creates a file below the project directory and returns its absolute path.
func (f *fixture) write(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(f.env.ProjectDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (f *fixture) build(t *testing.T, g *domain.Graph, name string) (*domain.BuildResult, error) {
	t.Helper()
	return f.bs.Build(context.Background(), g, name, f.env, buildsystem.BuildOptions{})
}

func newGraph(t *testing.T, targets ...*domain.Target) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	for _, target := range targets {
		require.NoError(t, g.AddTarget(target))
	}
	return g
}

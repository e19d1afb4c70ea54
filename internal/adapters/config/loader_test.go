package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assemble/internal/adapters/config"
	"go.trai.ch/assemble/internal/adapters/shell"
	"go.trai.ch/assemble/internal/core/domain"
	"go.trai.ch/assemble/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger, mocks.NewMockExecutor(ctrl))
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, domain.ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_Success(t *testing.T) {
	content := `
version: "1"
targets:
  kernel_snapshot:
    inputs: ["{PROJECT_DIR}/lib/*.dart", "{PROJECT_DIR}/pubspec.yaml"]
    outputs: ["{BUILD_DIR}/app.dill"]
    dependsOn: ["unpack"]
    modes: [debug, profile]
    cmd: ["dart", "compile", "kernel", "{PROJECT_DIR}/lib/main.dart"]
    environment:
      FOO: bar
  unpack:
    inputs: ["{CACHE_DIR}/engine.zip"]
    outputs: ["{BUILD_DIR}/engine/*"]
`
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, content)

	project, err := newLoader(t).Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assert.Equal(t, tmpDir, project.Root)
	assert.Equal(t, filepath.Join(tmpDir, domain.DefaultBuildDir), project.BuildDir)
	assert.Equal(t, filepath.Join(tmpDir, domain.DefaultCacheDir), project.CacheDir)
	require.Equal(t, 2, project.Graph.Len())

	snapshot, ok := project.Graph.Target("kernel_snapshot")
	require.True(t, ok)
	unpack, ok := project.Graph.Target("unpack")
	require.True(t, ok)

	require.Len(t, snapshot.Dependencies, 1)
	assert.Same(t, unpack, snapshot.Dependencies[0])
	assert.Equal(t, domain.Sources("{PROJECT_DIR}/lib/*.dart", "{PROJECT_DIR}/pubspec.yaml"), snapshot.Inputs)
	assert.Equal(t, domain.Sources("{BUILD_DIR}/app.dill"), snapshot.Outputs)
	assert.Equal(t, []domain.BuildMode{domain.BuildModeDebug, domain.BuildModeProfile}, snapshot.Modes)

	action, ok := snapshot.Action.(*shell.CommandAction)
	require.True(t, ok, "cmd must produce a command action")
	assert.Equal(t, []string{"dart", "compile", "kernel", "{PROJECT_DIR}/lib/main.dart"}, action.Args)
	assert.Equal(t, map[string]string{"FOO": "bar"}, action.Environment)

	assert.Nil(t, unpack.Action, "targets without cmd have no action")
	assert.Empty(t, unpack.Modes)

	// Targets are registered in name order.
	var order []string
	for target := range project.Graph.Targets() {
		order = append(order, target.Name)
	}
	assert.Equal(t, []string{"kernel_snapshot", "unpack"}, order)
}

func TestLoad_CustomDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	absCache := filepath.Join(t.TempDir(), "shared-cache")
	writeConfig(t, tmpDir, `
version: "1"
buildDir: out/build
cacheDir: `+absCache+`
targets: {}
`)

	project, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "out", "build"), project.BuildDir)
	assert.Equal(t, absCache, project.CacheDir)
	assert.Equal(t, 0, project.Graph.Len())
}

func TestLoad_Discovery(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
version: "1"
targets:
  assets: {}
`)
	deep := filepath.Join(tmpDir, "lib", "src", "widgets")
	require.NoError(t, os.MkdirAll(deep, 0o750))

	project, err := newLoader(t).Load(deep)
	require.NoError(t, err)
	assert.Equal(t, tmpDir, project.Root)

	_, ok := project.Graph.Target("assets")
	assert.True(t, ok)
}

func TestLoad_ExplicitFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "ci.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "1"
targets:
  ci: {}
`), 0o600))

	project, err := newLoader(t).Load(path)
	require.NoError(t, err)
	assert.Equal(t, tmpDir, project.Root)
	_, ok := project.Graph.Target("ci")
	assert.True(t, ok)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := newLoader(t).Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIs  error
		wantAs  any
	}{
		{
			name:    "unsupported version",
			content: "version: \"2\"\ntargets: {}\n",
			wantIs:  domain.ErrUnsupportedVersion,
		},
		{
			name:    "missing version",
			content: "targets: {}\n",
			wantIs:  domain.ErrUnsupportedVersion,
		},
		{
			name: "missing dependency",
			content: `
version: "1"
targets:
  build:
    dependsOn: [codegen]
`,
			wantIs: domain.ErrMissingDependency,
		},
		{
			name: "invalid target name",
			content: `
version: "1"
targets:
  "build:all": {}
`,
			wantIs: domain.ErrInvalidTargetName,
		},
		{
			name: "invalid mode",
			content: `
version: "1"
targets:
  build:
    modes: [fast]
`,
			wantIs: domain.ErrInvalidBuildMode,
		},
		{
			name: "input without directory token",
			content: `
version: "1"
targets:
  build:
    inputs: ["lib/main.dart"]
`,
			wantIs: domain.ErrInvalidPattern,
			wantAs: new(*domain.InvalidPatternError),
		},
		{
			name: "glob outside final segment",
			content: `
version: "1"
targets:
  build:
    outputs: ["{BUILD_DIR}/*/app.dill"]
`,
			wantIs: domain.ErrInvalidPattern,
		},
		{
			name: "cycle",
			content: `
version: "1"
targets:
  a:
    dependsOn: [b]
  b:
    dependsOn: [a]
`,
			wantIs: domain.ErrCycleDetected,
			wantAs: new(*domain.CycleError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			writeConfig(t, tmpDir, tt.content)

			_, err := newLoader(t).Load(tmpDir)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.wantIs) {
				t.Errorf("expected %v, got %v", tt.wantIs, err)
			}
			if tt.wantAs != nil && !errors.As(err, tt.wantAs) {
				t.Errorf("expected error of type %T, got %v", tt.wantAs, err)
			}
		})
	}
}

func TestLoad_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "version: \"1\"\ntargets: [\n"},
		{name: "unknown field", content: "version: \"1\"\ntasks: {}\n"},
		{name: "empty file", content: ""},
		{name: "duplicate target", content: "version: \"1\"\ntargets:\n  a: {}\n  a: {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			writeConfig(t, tmpDir, tt.content)

			_, err := newLoader(t).Load(tmpDir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), domain.ErrConfigParseFailed.Error())
		})
	}
}

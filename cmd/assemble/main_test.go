package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/assemble/internal/app"
)

const configContent = `version: "1"
targets:
  gen:
    inputs: ["{PROJECT_DIR}/src/*.txt"]
    outputs: ["{BUILD_DIR}/gen.txt"]
    cmd: ["sh", "-c", "mkdir -p \"$BUILD_DIR\" && cat src/*.txt > \"$BUILD_DIR/gen.txt\""]
  all:
    dependsOn: [gen]
`

func TestRun(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		args         []string
		expectedExit int
	}{
		{name: "Build", args: []string{"assemble", "build", "all"}, expectedExit: 0},
		{name: "BuildWithPlatform", args: []string{"assemble", "build", "-p", "linux-x64", "-j", "2", "all"}, expectedExit: 0},
		{name: "Describe", args: []string{"assemble", "describe", "all"}, expectedExit: 0},
		{name: "Clean", args: []string{"assemble", "clean"}, expectedExit: 0},
		{name: "UnknownTarget", args: []string{"assemble", "build", "nope"}, expectedExit: 1},
		{name: "InvalidMode", args: []string{"assemble", "build", "-m", "fast", "all"}, expectedExit: 1},
		{name: "Version", args: []string{"assemble", "version"}, expectedExit: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			if err := os.WriteFile(filepath.Join(tmpDir, "assemble.yaml"), []byte(configContent), 0o600); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if err := os.MkdirAll(filepath.Join(tmpDir, "src"), 0o750); err != nil {
				t.Fatalf("failed to create src: %v", err)
			}
			if err := os.WriteFile(filepath.Join(tmpDir, "src", "a.txt"), []byte("hello\n"), 0o600); err != nil {
				t.Fatalf("failed to write input: %v", err)
			}

			t.Chdir(tmpDir)
			graft.ResetDefaultCache()

			os.Args = tt.args
			var out bytes.Buffer
			exitCode := run(func(a *app.App) {
				a.WithOutput(&out)
			})
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func TestRun_BuildProducesOutput(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "assemble.yaml"), []byte(configContent), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "src"), 0o750); err != nil {
		t.Fatalf("failed to create src: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "src", "a.txt"), []byte("hello\n"), 0o600); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	t.Chdir(tmpDir)
	graft.ResetDefaultCache()

	os.Args = []string{"assemble", "build", "all"}
	var out bytes.Buffer
	exitCode := run(func(a *app.App) {
		a.WithOutput(&out)
	})
	assert.Equal(t, 0, exitCode)

	data, err := os.ReadFile(filepath.Join(tmpDir, "build", "gen.txt"))
	if err != nil {
		t.Fatalf("expected generated output: %v", err)
	}
	assert.Equal(t, "hello\n", string(data))
	assert.Contains(t, out.String(), "2 built, 0 up to date")
}

func TestRun_MissingConfig(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	t.Chdir(t.TempDir())
	graft.ResetDefaultCache()
	os.Args = []string{"assemble", "build", "all"}
	assert.Equal(t, 1, run())
}

package shell_test

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/assemble/internal/adapters/shell"
	"go.trai.ch/assemble/internal/core/domain"
	"go.trai.ch/assemble/internal/core/ports"
	"go.trai.ch/assemble/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestExecutor_Execute_MultiLineOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	gomock.InOrder(
		mockLogger.EXPECT().Info("line1").Times(1),
		mockLogger.EXPECT().Info("line2").Times(1),
	)

	executor := shell.NewExecutor(mockLogger)

	cmd := domain.Command{
		Args:       []string{"sh", "-c", "echo line1; echo line2"},
		WorkingDir: t.TempDir(),
	}

	err := executor.Execute(context.Background(), cmd, nil)
	require.NoError(t, err)
}

func TestExecutor_Execute_FragmentedOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("part1part2").Times(1)

	executor := shell.NewExecutor(mockLogger)

	// The writer must buffer until the newline.
	cmd := domain.Command{
		Args:       []string{"sh", "-c", "printf part1; sleep 0.1; echo part2"},
		WorkingDir: t.TempDir(),
	}

	err := executor.Execute(context.Background(), cmd, nil)
	require.NoError(t, err)
}

func TestExecutor_Execute_TrailingPartialLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("no newline").Times(1)

	executor := shell.NewExecutor(mockLogger)

	cmd := domain.Command{
		Args:       []string{"sh", "-c", "printf 'no newline'"},
		WorkingDir: t.TempDir(),
	}

	err := executor.Execute(context.Background(), cmd, nil)
	require.NoError(t, err)
}

func TestExecutor_Execute_StderrLoggedAsWarning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("careful").Times(1)

	executor := shell.NewExecutor(mockLogger)

	cmd := domain.Command{
		Args:       []string{"sh", "-c", "echo careful >&2"},
		WorkingDir: t.TempDir(),
	}

	err := executor.Execute(context.Background(), cmd, nil)
	require.NoError(t, err)
}

func TestExecutor_Execute_EnvironmentVariables(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("test-value-123").Times(1)

	executor := shell.NewExecutor(mockLogger)

	cmd := domain.Command{
		Args: []string{"sh", "-c", "echo $MY_TEST_VAR"},
		Environment: map[string]string{
			"MY_TEST_VAR": "test-value-123",
		},
		WorkingDir: t.TempDir(),
	}

	err := executor.Execute(context.Background(), cmd, nil)
	require.NoError(t, err)
}

func TestExecutor_Execute_CommandEnvironmentOverridesBuildEnv(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("from-command").Times(1)

	executor := shell.NewExecutor(mockLogger)

	cmd := domain.Command{
		Args:        []string{"sh", "-c", "echo $BUILD_MODE"},
		Environment: map[string]string{"BUILD_MODE": "from-command"},
		WorkingDir:  t.TempDir(),
	}

	err := executor.Execute(context.Background(), cmd, []string{"BUILD_MODE=release"})
	require.NoError(t, err)
}

func TestExecutor_Execute_WithBuildEnv(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("release").Times(1)

	executor := shell.NewExecutor(mockLogger)

	cmd := domain.Command{
		Args:       []string{"sh", "-c", "echo $BUILD_MODE"},
		WorkingDir: t.TempDir(),
	}

	err := executor.Execute(context.Background(), cmd, []string{"BUILD_MODE=release"})
	require.NoError(t, err)
}

func TestExecutor_Execute_WorkingDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		// macOS temp dirs resolve through /private.
		if !strings.HasSuffix(msg, dir) {
			t.Errorf("pwd = %q, want suffix %q", msg, dir)
		}
	}).Times(1)

	executor := shell.NewExecutor(mockLogger)

	cmd := domain.Command{
		Args:       []string{"sh", "-c", "pwd"},
		WorkingDir: dir,
	}

	err := executor.Execute(context.Background(), cmd, nil)
	require.NoError(t, err)
}

func TestExecutor_Execute_InvalidCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	cmd := domain.Command{
		Args:       []string{"nonexistent-command-xyz123"},
		WorkingDir: t.TempDir(),
	}

	err := executor.Execute(context.Background(), cmd, nil)
	if err == nil {
		t.Fatal("Execute() expected error for invalid command")
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("Execute() error = %v, want exec.ErrNotFound", err)
	}
}

func TestExecutor_Execute_CommandFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	cmd := domain.Command{
		Args:       []string{"sh", "-c", "exit 42"},
		WorkingDir: t.TempDir(),
	}

	err := executor.Execute(context.Background(), cmd, nil)
	if err == nil {
		t.Fatal("Execute() expected error for failed command")
	}
	if !strings.Contains(err.Error(), "command failed") {
		t.Errorf("Execute() error should mention command failure: %v", err)
	}

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 42, exitErr.ExitCode())
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	cmd := domain.Command{WorkingDir: t.TempDir()}

	if err := executor.Execute(context.Background(), cmd, nil); err != nil {
		t.Errorf("Execute() unexpected error for empty command: %v", err)
	}
}

func TestExecutor_Execute_AbsolutePath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("test").Times(1)

	executor := shell.NewExecutor(mockLogger)

	cmd := domain.Command{
		Args:       []string{"/bin/sh", "-c", "echo test"},
		WorkingDir: t.TempDir(),
	}

	err := executor.Execute(context.Background(), cmd, nil)
	require.NoError(t, err)
}

func TestExecutor_Execute_WithVertex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The logger is not used while a vertex is recording.
	mockLogger := mocks.NewMockLogger(ctrl)
	mockVertex := mocks.NewMockVertex(ctrl)

	var stdoutBuf bytes.Buffer
	var stderrBuf bytes.Buffer
	mockVertex.EXPECT().Stdout().Return(&stdoutBuf).AnyTimes()
	mockVertex.EXPECT().Stderr().Return(&stderrBuf).AnyTimes()

	executor := shell.NewExecutor(mockLogger)

	cmd := domain.Command{
		Args:       []string{"sh", "-c", "echo hello to stdout; echo hello to stderr >&2"},
		WorkingDir: t.TempDir(),
	}

	ctx := ports.ContextWithVertex(context.Background(), mockVertex)

	err := executor.Execute(ctx, cmd, nil)
	require.NoError(t, err)

	require.Contains(t, stdoutBuf.String(), "hello to stdout")
	require.Contains(t, stderrBuf.String(), "hello to stderr")
}

func TestExecutor_Execute_ContextCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := domain.Command{
		Args:       []string{"sh", "-c", "sleep 5"},
		WorkingDir: t.TempDir(),
	}

	err := executor.Execute(ctx, cmd, nil)
	require.Error(t, err)
}

package shell

import (
	"context"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/assemble/internal/core/domain"
	"go.trai.ch/assemble/internal/core/ports"
)

// ChangedEnvVar names the variable listing the changed inputs, one path per line.
const ChangedEnvVar = "ASSEMBLE_CHANGED"

// CommandAction runs an external command as a target's action.
// Args, WorkingDir and Environment values may contain source tokens such as {BUILD_DIR}.
type CommandAction struct {
	Args        []string
	WorkingDir  string
	Environment map[string]string

	executor ports.Executor
}

// NewCommandAction creates a CommandAction that runs through executor.
func NewCommandAction(executor ports.Executor, args []string, workingDir string, environment map[string]string) *CommandAction {
	return &CommandAction{
		Args:        args,
		WorkingDir:  workingDir,
		Environment: environment,
		executor:    executor,
	}
}

// Run expands the command against env and executes it.
func (a *CommandAction) Run(ctx context.Context, changes domain.ChangeSet, env domain.Environment) error {
	return a.executor.Execute(ctx, a.Command(env), a.Variables(changes, env))
}

// Command returns the command with every token expanded against env.
// The working directory defaults to the project directory.
func (a *CommandAction) Command(env domain.Environment) domain.Command {
	args := make([]string, len(a.Args))
	for i, arg := range a.Args {
		args[i] = env.Expand(arg)
	}

	dir := env.ProjectDir
	if a.WorkingDir != "" {
		dir = env.Expand(a.WorkingDir)
	}

	var vars map[string]string
	if len(a.Environment) > 0 {
		vars = make(map[string]string, len(a.Environment))
		for k, v := range a.Environment {
			vars[k] = env.Expand(v)
		}
	}

	return domain.Command{Args: args, WorkingDir: dir, Environment: vars}
}

// Variables returns the build environment exported to the process.
func (a *CommandAction) Variables(changes domain.ChangeSet, env domain.Environment) []string {
	return append(env.Variables(), ChangedEnvVar+"="+strings.Join(changes.Paths(), "\n"))
}

// Fingerprint identifies the unexpanded command, so editing it invalidates the target's stamp.
func (a *CommandAction) Fingerprint() string {
	var b strings.Builder
	for _, arg := range a.Args {
		b.WriteString(arg)
		b.WriteByte(0)
	}
	b.WriteString("\x01")
	b.WriteString(a.WorkingDir)
	for _, k := range slices.Sorted(maps.Keys(a.Environment)) {
		b.WriteString("\x01")
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(a.Environment[k])
	}
	return b.String()
}

// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/assemble/internal/core/domain"
)

// Executor defines the interface for executing commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the given command with the specified environment.
	//
	// The env parameter contains environment variables in "KEY=VALUE" format
	// layered over the system environment and below cmd.Environment.
	//
	// Output is streamed to the Vertex found in ctx, or to the logger when there is none.
	// It returns an error if the command cannot be started or exits unsuccessfully.
	Execute(ctx context.Context, cmd domain.Command, env []string) error
}

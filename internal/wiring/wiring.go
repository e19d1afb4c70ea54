// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/assemble/internal/adapters/cas"
	_ "go.trai.ch/assemble/internal/adapters/config"
	_ "go.trai.ch/assemble/internal/adapters/fs"
	_ "go.trai.ch/assemble/internal/adapters/logger"
	_ "go.trai.ch/assemble/internal/adapters/shell"
	_ "go.trai.ch/assemble/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/assemble/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/assemble/internal/app"
	_ "go.trai.ch/assemble/internal/engine/buildsystem"
)

package ports

import "go.trai.ch/assemble/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration starting at the given working directory and returns the project
	// it declares, with every target linked into its graph. A path naming a file is loaded as is.
	Load(cwd string) (*domain.Project, error)
}

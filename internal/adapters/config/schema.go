package config

// SupportedVersion is the only configuration version understood by the loader.
const SupportedVersion = "1"

// Assemblefile represents the structure of the assemble.yaml configuration file.
type Assemblefile struct {
	Version  string                `yaml:"version"`
	BuildDir string                `yaml:"buildDir"`
	CacheDir string                `yaml:"cacheDir"`
	Targets  map[string]*TargetDTO `yaml:"targets"`
}

// TargetDTO represents a target definition in the configuration.
type TargetDTO struct {
	Inputs      []string          `yaml:"inputs"`
	Outputs     []string          `yaml:"outputs"`
	DependsOn   []string          `yaml:"dependsOn"`
	Modes       []string          `yaml:"modes"`
	Cmd         []string          `yaml:"cmd"`
	WorkingDir  string            `yaml:"workingDir"`
	Environment map[string]string `yaml:"environment"`
}

// Package config provides the configuration loader for assemble.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"go.trai.ch/assemble/internal/adapters/shell"
	"go.trai.ch/assemble/internal/core/domain"
	"go.trai.ch/assemble/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var validTargetNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger   ports.Logger
	Executor ports.Executor
}

// NewLoader creates a new Loader. Targets declaring a cmd run it through executor.
func NewLoader(logger ports.Logger, executor ports.Executor) *Loader {
	return &Loader{Logger: logger, Executor: executor}
}

// Load finds assemble.yaml in cwd or the nearest parent directory and returns the project it declares.
// If cwd names a file, that file is loaded instead.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}
	l.Logger.Debug("loading " + configPath)
	return l.LoadFile(configPath)
}

func findConfiguration(cwd string) (string, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}

	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		return abs, nil
	}

	currentDir := abs
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "find configuration"), "cwd", cwd)
}

// LoadFile reads the configuration file at configPath.
func (l *Loader) LoadFile(configPath string) (*domain.Project, error) {
	var file Assemblefile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, err
	}

	if file.Version != SupportedVersion {
		return nil, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrUnsupportedVersion, "load config"), "version", file.Version),
			"path", configPath,
		)
	}

	root := filepath.Dir(configPath)
	project := &domain.Project{
		Root:     root,
		BuildDir: resolveDir(root, file.BuildDir, domain.DefaultBuildDir),
		CacheDir: resolveDir(root, file.CacheDir, domain.DefaultCacheDir),
	}

	g, err := l.buildGraph(file.Targets)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	project.Graph = g
	return project, nil
}

// buildGraph creates every target first and links dependencies by pointer afterwards,
// so declaration order does not matter.
func (l *Loader) buildGraph(dtos map[string]*TargetDTO) (*domain.Graph, error) {
	names := make([]string, 0, len(dtos))
	for name := range dtos {
		names = append(names, name)
	}
	slices.Sort(names)

	targets := make(map[string]*domain.Target, len(names))
	g := domain.NewGraph()
	for _, name := range names {
		dto := dtos[name]
		if dto == nil {
			dto = &TargetDTO{}
		}
		target, err := l.buildTarget(name, dto)
		if err != nil {
			return nil, err
		}
		if err := g.AddTarget(target); err != nil {
			return nil, err
		}
		targets[name] = target
	}

	for _, name := range names {
		target := targets[name]
		for _, dep := range dtos[name].dependsOn() {
			resolved, ok := targets[dep]
			if !ok {
				return nil, zerr.With(
					zerr.With(zerr.Wrap(domain.ErrMissingDependency, "link dependencies"), "target", name),
					"missing_dependency", dep,
				)
			}
			target.Dependencies = append(target.Dependencies, resolved)
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (dto *TargetDTO) dependsOn() []string {
	if dto == nil {
		return nil
	}
	return dto.DependsOn
}

func (l *Loader) buildTarget(name string, dto *TargetDTO) (*domain.Target, error) {
	if !validTargetNameRegex.MatchString(name) {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidTargetName, "load target"), "target", name)
	}

	inputs, err := parseSources(name, dto.Inputs)
	if err != nil {
		return nil, err
	}
	outputs, err := parseSources(name, dto.Outputs)
	if err != nil {
		return nil, err
	}

	modes := make([]domain.BuildMode, 0, len(dto.Modes))
	for _, m := range dto.Modes {
		mode, err := domain.ParseBuildMode(m)
		if err != nil {
			return nil, zerr.With(err, "target", name)
		}
		if !slices.Contains(modes, mode) {
			modes = append(modes, mode)
		}
	}

	target := &domain.Target{
		Name:    name,
		Inputs:  inputs,
		Outputs: outputs,
	}
	if len(modes) > 0 {
		target.Modes = modes
	}
	if len(dto.Cmd) > 0 {
		target.Action = shell.NewCommandAction(l.Executor, dto.Cmd, dto.WorkingDir, dto.Environment)
	}
	return target, nil
}

func parseSources(target string, patterns []string) ([]domain.Source, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	sources := domain.Sources(patterns...)
	for _, s := range sources {
		if err := s.Validate(); err != nil {
			return nil, zerr.With(err, "target", target)
		}
	}
	return sources, nil
}

func resolveDir(root, dir, fallback string) string {
	if dir == "" {
		dir = fallback
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(root, dir)
}

func readAndUnmarshalYAML(path string, v any) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return nil
}

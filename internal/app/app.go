// Package app implements the application layer for assemble.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/assemble/internal/core/domain"
	"go.trai.ch/assemble/internal/core/ports"
	"go.trai.ch/assemble/internal/engine/buildsystem"
	"go.trai.ch/zerr"
)

// Options selects the project and the environment a command runs against.
type Options struct {
	// ConfigPath is a configuration file or a directory to search upwards from.
	// Empty means the current working directory.
	ConfigPath string
	Mode       string
	Platform   string
	Flavor     string
	// BuildDir and CacheDir override the directories of the configuration.
	BuildDir string
	CacheDir string
	// Jobs bounds the number of targets run in parallel. Values below 1 mean one at a time.
	Jobs  int
	Force bool
}

// levelSetter is implemented by loggers whose verbosity and format can change at runtime.
type levelSetter interface {
	SetLevel(level domain.LogLevel)
	SetJSON(enable bool)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	buildSystem  *buildsystem.BuildSystem
	watcher      ports.Watcher
	telemetry    ports.Telemetry
	logger       ports.Logger
	out          io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	buildSystem *buildsystem.BuildSystem,
	watcher ports.Watcher,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		buildSystem:  buildSystem,
		watcher:      watcher,
		telemetry:    telemetry,
		logger:       logger,
		out:          os.Stdout,
	}
}

// WithOutput sets the writer build summaries and descriptions are printed to.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// ConfigureLogging switches the logger to JSON output or debug verbosity, if it supports it.
func (a *App) ConfigureLogging(jsonOutput, verbose bool) {
	l, ok := a.logger.(levelSetter)
	if !ok {
		return
	}
	l.SetJSON(jsonOutput)
	if verbose {
		l.SetLevel(domain.LogLevelDebug)
	}
}

// Close flushes the progress recording.
func (a *App) Close() error {
	return a.telemetry.Close()
}

// Build brings every named target up to date, in order, and prints a summary.
func (a *App) Build(ctx context.Context, targets []string, opts Options) error {
	if len(targets) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	project, env, err := a.load(opts)
	if err != nil {
		return err
	}
	return a.build(ctx, project, env, targets, opts)
}

func (a *App) build(
	ctx context.Context,
	project *domain.Project,
	env domain.Environment,
	targets []string,
	opts Options,
) error {
	buildOpts := buildsystem.BuildOptions{
		Force:       opts.Force,
		Parallelism: opts.Jobs,
	}

	summary := newSummary()
	for _, name := range targets {
		res, err := a.buildSystem.Build(ctx, project.Graph, name, env, buildOpts)
		summary.add(res)
		if err != nil {
			summary.fail(name)
			summary.render(a.out)
			return zerr.With(zerr.Wrap(err, "build failed"), "target", name)
		}
	}
	summary.render(a.out)
	return nil
}

// Describe prints the dependency closure of every named target as JSON.
func (a *App) Describe(targets []string, opts Options) error {
	if len(targets) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	project, _, err := a.load(opts)
	if err != nil {
		return err
	}

	result := make(map[string][]domain.TargetDescription, len(targets))
	for _, name := range targets {
		descriptions, err := a.buildSystem.Describe(project.Graph, name)
		if err != nil {
			return err
		}
		result[name] = descriptions
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if len(targets) == 1 {
		return enc.Encode(result[targets[0]])
	}
	return enc.Encode(result)
}

// Clean removes the stamps of every declared target and the file hash table,
// so the next build in the same environment runs everything.
func (a *App) Clean(opts Options) error {
	project, env, err := a.load(opts)
	if err != nil {
		return err
	}
	if err := a.buildSystem.Clean(project.Graph, env); err != nil {
		return err
	}
	a.logger.Info("removed build state from " + env.BuildDir)
	return nil
}

// Watch builds the named targets, then rebuilds them whenever a file below the project
// changes until ctx is canceled. The configuration is reloaded before every rebuild.
// Build failures are logged and do not end the watch.
func (a *App) Watch(ctx context.Context, targets []string, opts Options) error {
	if len(targets) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	project, env, err := a.load(opts)
	if err != nil {
		return err
	}
	if err := a.build(ctx, project, env, targets, opts); err != nil {
		a.logger.Error(err)
	}

	ignore := []string{env.BuildDir, env.CacheDir}
	a.logger.Info("watching " + project.Root + " for changes")

	return a.watcher.Watch(ctx, project.Root, ignore, func(paths []string) {
		a.logger.Info(fmt.Sprintf("%d file(s) changed: %s", len(paths), strings.Join(relativeTo(project.Root, paths), ", ")))

		project, env, err := a.load(opts)
		if err != nil {
			a.logger.Error(err)
			return
		}
		if err := a.build(ctx, project, env, targets, opts); err != nil {
			a.logger.Error(err)
		}
	})
}

// load reads the configuration and derives the build environment from it and opts.
func (a *App) load(opts Options) (*domain.Project, domain.Environment, error) {
	location := opts.ConfigPath
	if location == "" {
		location = "."
	}

	project, err := a.configLoader.Load(location)
	if err != nil {
		return nil, domain.Environment{}, zerr.Wrap(err, "failed to load configuration")
	}

	env, err := environment(project, opts)
	if err != nil {
		return nil, domain.Environment{}, err
	}
	return project, env, nil
}

func environment(project *domain.Project, opts Options) (domain.Environment, error) {
	mode := domain.BuildModeDebug
	if opts.Mode != "" {
		parsed, err := domain.ParseBuildMode(opts.Mode)
		if err != nil {
			return domain.Environment{}, err
		}
		mode = parsed
	}

	platform := domain.HostPlatform()
	if opts.Platform != "" {
		parsed, err := domain.ParseTargetPlatform(opts.Platform)
		if err != nil {
			return domain.Environment{}, err
		}
		platform = parsed
	}

	buildDir := project.BuildDir
	if opts.BuildDir != "" {
		buildDir = opts.BuildDir
	}
	cacheDir := project.CacheDir
	if opts.CacheDir != "" {
		cacheDir = opts.CacheDir
	}

	return domain.NewEnvironment(project.Root, buildDir, cacheDir, platform, mode, opts.Flavor)
}

func relativeTo(root string, paths []string) []string {
	res := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = p
		}
		res[i] = filepath.ToSlash(rel)
	}
	return res
}

package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrTargetAlreadyExists is returned when attempting to add a target with a name that already exists.
	ErrTargetAlreadyExists = zerr.New("target already exists")

	// ErrTargetNotFound is returned when a requested target is not part of the graph.
	ErrTargetNotFound = zerr.New("unknown target")

	// ErrCycleDetected is returned when a cycle is detected in the target dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrInvalidPattern is returned when a source pattern does not start with a recognized directory token.
	ErrInvalidPattern = zerr.New("invalid source pattern")

	// ErrMissingInput is returned when a declared input does not exist on disk at build time.
	ErrMissingInput = zerr.New("missing input")

	// ErrInvalidBuild is returned when the environment is incompatible with a target's modes.
	ErrInvalidBuild = zerr.New("invalid build")

	// ErrOutputConflict is returned when two targets declare the same resolved output.
	ErrOutputConflict = zerr.New("conflicting outputs")

	// ErrNilTarget is returned when a nil target is added to a graph or listed as a dependency.
	ErrNilTarget = zerr.New("nil target")

	// ErrInvalidBuildMode is returned when a build mode string cannot be parsed.
	ErrInvalidBuildMode = zerr.New("invalid build mode, expected 'debug', 'profile' or 'release'")

	// ErrInvalidPlatform is returned when a target platform string cannot be parsed.
	ErrInvalidPlatform = zerr.New("invalid target platform")

	// ErrInvalidTargetName is returned when a target name contains invalid characters.
	ErrInvalidTargetName = zerr.New("invalid target name")

	// ErrMissingDependency is returned when a configured target depends on an undeclared target.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrNoTargetsSpecified is returned when no targets are specified for a build.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrStampCorrupt is returned when a stamp file exists but cannot be decoded.
	ErrStampCorrupt = zerr.New("corrupt stamp file")

	// ErrStampReadFailed is returned when a stamp file cannot be read.
	ErrStampReadFailed = zerr.New("failed to read stamp file")

	// ErrStampWriteFailed is returned when a stamp file cannot be written.
	ErrStampWriteFailed = zerr.New("failed to write stamp file")

	// ErrStampMarshalFailed is returned when a stamp cannot be encoded.
	ErrStampMarshalFailed = zerr.New("failed to marshal stamp")

	// ErrFileCacheWriteFailed is returned when the file cache cannot be persisted.
	ErrFileCacheWriteFailed = zerr.New("failed to persist file cache")

	// ErrFileCacheReadFailed is returned when the file cache exists but cannot be read.
	ErrFileCacheReadFailed = zerr.New("failed to read file cache")

	// ErrFileHashFailed is returned when hashing a file fails for a reason other than absence.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrGlobFailed is returned when listing the directory of a glob pattern fails.
	ErrGlobFailed = zerr.New("failed to expand glob")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when no config file is found.
	ErrConfigNotFound = zerr.New("could not find " + ConfigFileName)

	// ErrUnsupportedVersion is returned when the config file declares an unknown version.
	ErrUnsupportedVersion = zerr.New("unsupported config version")

	// ErrCommandFailed is returned when a target command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCleanFailed is returned when removing build state fails.
	ErrCleanFailed = zerr.New("failed to remove build state")
)

// InvalidPatternError reports a source pattern that lacks a recognized leading token
// or places a glob anywhere but the final path segment.
type InvalidPatternError struct {
	Pattern string
	Reason  string
}

func (e *InvalidPatternError) Error() string {
	return "invalid source pattern " + quote(e.Pattern) + ": " + e.Reason
}

// Unwrap returns ErrInvalidPattern.
func (e *InvalidPatternError) Unwrap() error { return ErrInvalidPattern }

// MissingInputError reports a declared input that does not exist when its target is built.
type MissingInputError struct {
	Target  string
	Pattern string
	Path    string
}

func (e *MissingInputError) Error() string {
	return "target " + quote(e.Target) + " is missing input " + e.Path + " (declared as " + quote(e.Pattern) + ")"
}

// Unwrap returns ErrMissingInput.
func (e *MissingInputError) Unwrap() error { return ErrMissingInput }

// InvalidBuildError reports a target that does not support the requested build mode.
type InvalidBuildError struct {
	Target  string
	Mode    BuildMode
	Allowed []BuildMode
}

func (e *InvalidBuildError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, m := range e.Allowed {
		allowed[i] = string(m)
	}
	return "target " + quote(e.Target) + " does not support build mode " + quote(string(e.Mode)) +
		" (supported: " + strings.Join(allowed, ", ") + ")"
}

// Unwrap returns ErrInvalidBuild.
func (e *InvalidBuildError) Unwrap() error { return ErrInvalidBuild }

// CycleError reports a dependency cycle. Path starts and ends with the same target.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "cycle detected: " + strings.Join(e.Path, " -> ")
}

// Unwrap returns ErrCycleDetected.
func (e *CycleError) Unwrap() error { return ErrCycleDetected }

// UnknownTargetError reports a target name that is not registered in the graph.
type UnknownTargetError struct {
	Name string
}

func (e *UnknownTargetError) Error() string {
	return "unknown target " + quote(e.Name)
}

// Unwrap returns ErrTargetNotFound.
func (e *UnknownTargetError) Unwrap() error { return ErrTargetNotFound }

// OutputConflictError reports two targets in one build closure declaring the same output.
type OutputConflictError struct {
	Path    string
	Targets [2]string
}

func (e *OutputConflictError) Error() string {
	return "targets " + quote(e.Targets[0]) + " and " + quote(e.Targets[1]) + " both produce " + e.Path
}

// Unwrap returns ErrOutputConflict.
func (e *OutputConflictError) Unwrap() error { return ErrOutputConflict }

func quote(s string) string {
	return "'" + s + "'"
}

package domain

import (
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// BuildMode is the build configuration a target is compiled for.
type BuildMode string

const (
	// BuildModeDebug builds with assertions and debugging support.
	BuildModeDebug BuildMode = "debug"
	// BuildModeProfile builds with optimizations but keeps profiling hooks.
	BuildModeProfile BuildMode = "profile"
	// BuildModeRelease builds fully optimized artifacts.
	BuildModeRelease BuildMode = "release"
)

// BuildModes lists every supported build mode.
var BuildModes = []BuildMode{BuildModeDebug, BuildModeProfile, BuildModeRelease}

// ParseBuildMode converts a user supplied string into a BuildMode.
func ParseBuildMode(s string) (BuildMode, error) {
	mode := BuildMode(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(BuildModes, mode) {
		return "", zerr.With(zerr.Wrap(ErrInvalidBuildMode, "parse build mode"), "mode", s)
	}
	return mode, nil
}

// TargetPlatform is the platform an artifact is built for. Its value is the slug
// substituted for {platform} in source patterns.
type TargetPlatform string

// Known target platforms.
const (
	PlatformAndroidArm    TargetPlatform = "android-arm"
	PlatformAndroidArm64  TargetPlatform = "android-arm64"
	PlatformAndroidX64    TargetPlatform = "android-x64"
	PlatformAndroidX86    TargetPlatform = "android-x86"
	PlatformIOS           TargetPlatform = "ios"
	PlatformDarwin        TargetPlatform = "darwin"
	PlatformLinuxX64      TargetPlatform = "linux-x64"
	PlatformLinuxArm64    TargetPlatform = "linux-arm64"
	PlatformWindowsX64    TargetPlatform = "windows-x64"
	PlatformWindowsArm64  TargetPlatform = "windows-arm64"
	PlatformFuchsiaArm64  TargetPlatform = "fuchsia-arm64"
	PlatformFuchsiaX64    TargetPlatform = "fuchsia-x64"
	PlatformTester        TargetPlatform = "tester"
	PlatformWebJavascript TargetPlatform = "web-javascript"
)

// TargetPlatforms lists every known target platform.
var TargetPlatforms = []TargetPlatform{
	PlatformAndroidArm, PlatformAndroidArm64, PlatformAndroidX64, PlatformAndroidX86,
	PlatformIOS, PlatformDarwin, PlatformLinuxX64, PlatformLinuxArm64,
	PlatformWindowsX64, PlatformWindowsArm64, PlatformFuchsiaArm64, PlatformFuchsiaX64,
	PlatformTester, PlatformWebJavascript,
}

// ParseTargetPlatform converts a user supplied string into a TargetPlatform.
func ParseTargetPlatform(s string) (TargetPlatform, error) {
	platform := TargetPlatform(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(TargetPlatforms, platform) {
		return "", zerr.With(zerr.Wrap(ErrInvalidPlatform, "parse target platform"), "platform", s)
	}
	return platform, nil
}

// HostPlatform returns the platform of the machine running the build.
func HostPlatform() TargetPlatform {
	switch runtime.GOOS {
	case "darwin":
		return PlatformDarwin
	case "windows":
		if runtime.GOARCH == "arm64" {
			return PlatformWindowsArm64
		}
		return PlatformWindowsX64
	default:
		if runtime.GOARCH == "arm64" {
			return PlatformLinuxArm64
		}
		return PlatformLinuxX64
	}
}

// Environment is the immutable configuration a single build runs against.
// It supplies the substitution values for source patterns.
type Environment struct {
	ProjectDir string
	BuildDir   string
	CacheDir   string
	Platform   TargetPlatform
	Mode       BuildMode
	Flavor     string
}

// NewEnvironment returns an Environment with absolute, cleaned directories.
func NewEnvironment(
	projectDir, buildDir, cacheDir string,
	platform TargetPlatform,
	mode BuildMode,
	flavor string,
) (Environment, error) {
	dirs := []*string{&projectDir, &buildDir, &cacheDir}
	for _, dir := range dirs {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return Environment{}, zerr.With(zerr.Wrap(err, "failed to resolve directory"), "dir", *dir)
		}
		*dir = abs
	}
	return Environment{
		ProjectDir: projectDir,
		BuildDir:   buildDir,
		CacheDir:   cacheDir,
		Platform:   platform,
		Mode:       mode,
		Flavor:     flavor,
	}, nil
}

// FlavorName returns the flavor, or "none" when no flavor is set.
func (e Environment) FlavorName() string {
	if e.Flavor == "" {
		return "none"
	}
	return e.Flavor
}

// Expand substitutes every directory and configuration token in s.
// {flavor} expands to FlavorName, so paths and stamp names agree when no flavor is set.
// Unknown brace sequences are left untouched.
func (e Environment) Expand(s string) string {
	return strings.NewReplacer(
		TokenProjectDir, e.ProjectDir,
		TokenBuildDir, e.BuildDir,
		TokenCacheDir, e.CacheDir,
		TokenMode, string(e.Mode),
		TokenFlavor, e.FlavorName(),
		TokenPlatform, string(e.Platform),
	).Replace(s)
}

// Variables returns the environment as KEY=VALUE pairs for child processes.
func (e Environment) Variables() []string {
	return []string{
		"PROJECT_DIR=" + e.ProjectDir,
		"BUILD_DIR=" + e.BuildDir,
		"CACHE_DIR=" + e.CacheDir,
		"BUILD_MODE=" + string(e.Mode),
		"TARGET_PLATFORM=" + string(e.Platform),
		"FLAVOR=" + e.Flavor,
	}
}

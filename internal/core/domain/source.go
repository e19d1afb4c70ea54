package domain

import (
	"path"
	"strings"
)

// Tokens recognized in source patterns.
const (
	TokenProjectDir = "{PROJECT_DIR}"
	TokenBuildDir   = "{BUILD_DIR}"
	TokenCacheDir   = "{CACHE_DIR}"
	TokenMode       = "{mode}"
	TokenFlavor     = "{flavor}"
	TokenPlatform   = "{platform}"
)

var directoryTokens = []string{TokenProjectDir, TokenBuildDir, TokenCacheDir}

// Source is a declarative path pattern such as "{PROJECT_DIR}/lib/*.dart".
// Segments are separated by forward slashes regardless of the host OS.
type Source string

func (s Source) String() string {
	return string(s)
}

// Validate checks that the pattern starts with a directory token and that a glob,
// if any, only appears in the final segment.
func (s Source) Validate() error {
	pattern := string(s)
	if !hasDirectoryToken(pattern) {
		return &InvalidPatternError{
			Pattern: pattern,
			Reason:  "must start with " + strings.Join(directoryTokens, ", "),
		}
	}

	dir, base := path.Split(pattern)
	if strings.ContainsAny(dir, "*?[") {
		return &InvalidPatternError{Pattern: pattern, Reason: "a glob is only allowed in the final path segment"}
	}
	if isGlob(base) {
		if _, err := path.Match(base, ""); err != nil {
			return &InvalidPatternError{Pattern: pattern, Reason: err.Error()}
		}
	}
	return nil
}

// IsGlob reports whether the final segment of the pattern is a glob.
func (s Source) IsGlob() bool {
	return isGlob(path.Base(string(s)))
}

// Sources converts a list of strings into a list of Sources.
func Sources(patterns ...string) []Source {
	res := make([]Source, len(patterns))
	for i, p := range patterns {
		res[i] = Source(p)
	}
	return res
}

func hasDirectoryToken(pattern string) bool {
	for _, token := range directoryTokens {
		if pattern == token || strings.HasPrefix(pattern, token+"/") {
			return true
		}
	}
	return false
}

func isGlob(segment string) bool {
	return strings.ContainsAny(segment, "*?[")
}

package domain

import "time"

// BuildResult summarizes a single top-level build request.
type BuildResult struct {
	// Invoked lists the targets whose action ran, in completion order.
	Invoked []string
	// Skipped lists the targets that were up to date, in completion order.
	Skipped []string
	// Durations records how long each visited target took, including hashing.
	Durations map[string]time.Duration
}

// NewBuildResult returns an empty BuildResult.
func NewBuildResult() *BuildResult {
	return &BuildResult{Durations: make(map[string]time.Duration)}
}

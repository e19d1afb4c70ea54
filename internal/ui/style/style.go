// Package style provides shared styling primitives for terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Iris   = lipgloss.Color("#8B5CF6")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
)

// Styles.
var (
	Invoked = lipgloss.NewStyle().Foreground(Green)
	Skipped = lipgloss.NewStyle().Foreground(Slate)
	Failed  = lipgloss.NewStyle().Foreground(Red)
	Heading = lipgloss.NewStyle().Foreground(Iris).Bold(true)
)

package app

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/assemble/internal/core/domain"
	"go.trai.ch/assemble/internal/ui/output"
	"go.trai.ch/assemble/internal/ui/style"
)

type summaryLine struct {
	name     string
	invoked  bool
	duration time.Duration
}

// summary collects the outcome of the targets of one command invocation.
type summary struct {
	lines  []summaryLine
	seen   map[string]bool
	failed string
}

func newSummary() *summary {
	return &summary{seen: make(map[string]bool)}
}

func (s *summary) add(res *domain.BuildResult) {
	if res == nil {
		return
	}
	appendLines := func(names []string, invoked bool) {
		for _, name := range names {
			if s.seen[name] {
				continue
			}
			s.seen[name] = true
			s.lines = append(s.lines, summaryLine{name: name, invoked: invoked, duration: res.Durations[name]})
		}
	}
	appendLines(res.Invoked, true)
	appendLines(res.Skipped, false)
}

func (s *summary) fail(name string) {
	s.failed = name
}

func (s *summary) render(w io.Writer) {
	lipgloss.SetColorProfile(output.New(w).Profile)

	var b strings.Builder
	invoked := 0
	for _, line := range s.lines {
		if line.invoked {
			invoked++
			b.WriteString(style.Invoked.Render(style.Check+" "+line.name) +
				style.Skipped.Render(" "+line.duration.Round(time.Millisecond).String()) + "\n")
			continue
		}
		b.WriteString(style.Skipped.Render(style.Tilde+" "+line.name+" (up to date)") + "\n")
	}
	if s.failed != "" {
		b.WriteString(style.Failed.Render(style.Cross+" "+s.failed) + "\n")
	}
	b.WriteString(style.Heading.Render(
		fmt.Sprintf("%d built, %d up to date", invoked, len(s.lines)-invoked),
	) + "\n")

	_, _ = io.WriteString(w, b.String())
}

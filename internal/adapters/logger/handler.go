package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/assemble/internal/ui/output"
	"go.trai.ch/assemble/internal/ui/style"
)

// PrettyHandler is a slog.Handler that writes one colored line per record, prefixed with
// the icon of its level. Continuation lines of multi-line messages, such as error chains,
// are indented under the first line instead of repeating the icon.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	attrs  []string
	prefix string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// levelStyle returns the icon and color of a level. Info has no icon.
func levelStyle(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow))
	case level < slog.LevelInfo:
		return style.Tilde, termenv.RGBColor(string(style.Slate))
	default:
		return "", nil
	}
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	icon, color := levelStyle(r.Level)
	lead, indent := "", ""
	if icon != "" {
		lead, indent = icon+" ", strings.Repeat(" ", len([]rune(icon))+1)
	}

	attrs := slices.Clip(h.attrs)
	r.Attrs(func(attr slog.Attr) bool {
		attrs = append(attrs, formatAttr(h.prefix, attr))
		return true
	})

	var b strings.Builder
	for i, line := range strings.Split(r.Message, "\n") {
		if i == 0 {
			line = lead + line
		} else if line != "" {
			line = indent + line
		}
		styled := h.out.String(line)
		if color != nil {
			styled = styled.Foreground(color)
		}
		b.WriteString(styled.String())
		if i == 0 && len(attrs) > 0 {
			b.WriteString(" " + h.out.String(strings.Join(attrs, " ")).Faint().String())
		}
		b.WriteByte('\n')
	}

	_, err := h.out.WriteString(b.String())
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	formatted := make([]string, len(h.attrs), len(h.attrs)+len(attrs))
	copy(formatted, h.attrs)
	for _, attr := range attrs {
		formatted = append(formatted, formatAttr(h.prefix, attr))
	}

	return &PrettyHandler{
		out:    h.out,
		level:  h.level,
		attrs:  formatted,
		prefix: h.prefix,
	}
}

// WithGroup returns a new Handler that qualifies later attribute keys with name.
// Nested groups are joined with dots.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &PrettyHandler{
		out:    h.out,
		level:  h.level,
		attrs:  h.attrs,
		prefix: h.prefix + name + ".",
	}
}

// formatAttr renders key=value. Group attributes are flattened into dotted keys.
func formatAttr(prefix string, attr slog.Attr) string {
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		parts := make([]string, 0, len(attr.Value.Group()))
		for _, member := range attr.Value.Group() {
			parts = append(parts, formatAttr(prefix+attr.Key+".", member))
		}
		return strings.Join(parts, " ")
	}
	return prefix + attr.Key + "=" + attr.Value.String()
}

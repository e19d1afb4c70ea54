package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/assemble/internal/adapters/logger"
)

func newPretty(t *testing.T, buf *bytes.Buffer) *slog.Logger {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	return slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestPrettyHandler_MultiLineMessage(t *testing.T) {
	var buf bytes.Buffer
	log := newPretty(t, &buf)

	log.Error("Error: build failed\n\n  Caused by:\n    → missing input")

	assert.Equal(t, "✗ Error: build failed\n\n    Caused by:\n      → missing input\n", buf.String())
}

func TestPrettyHandler_InfoHasNoIcon(t *testing.T) {
	var buf bytes.Buffer
	log := newPretty(t, &buf)

	log.Info("building app (2 changed)\nsecond line")

	assert.Equal(t, "building app (2 changed)\nsecond line\n", buf.String())
}

func TestPrettyHandler_Attributes(t *testing.T) {
	var buf bytes.Buffer
	log := newPretty(t, &buf).With("target", "kernel_snapshot")

	log.WithGroup("stamp").Warn("ignoring corrupt stamp", "path", "/b/a.debug", slog.Group("env", "mode", "debug"))

	assert.Equal(t,
		"! ignoring corrupt stamp target=kernel_snapshot stamp.path=/b/a.debug stamp.env.mode=debug\n",
		buf.String())
}

func TestPrettyHandler_AttributesDoNotLeakBetweenRecords(t *testing.T) {
	var buf bytes.Buffer
	log := newPretty(t, &buf).With("target", "a")

	log.Debug("first", "n", 1)
	log.Debug("second")

	assert.Equal(t, "~ first target=a n=1\n~ second target=a\n", buf.String())
}

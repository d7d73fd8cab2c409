package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("whatever"))
}

func TestNew(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(buf, "warn")
	l.Info("hidden")
	l.Warn("shown", "rule", "expr")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "rule=expr")
}

func TestOrDiscard(t *testing.T) {
	assert.Same(t, Discard(), OrDiscard(nil))
	l := slog.Default()
	assert.Same(t, l, OrDiscard(l))
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}

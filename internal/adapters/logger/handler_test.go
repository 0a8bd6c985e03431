package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/fairway/internal/adapters/logger"
)

func newHandler(t *testing.T, level slog.Level) (*logger.PrettyHandler, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: level}), buf
}

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		want  string
	}{
		{name: "info", level: slog.LevelInfo, want: "graph built\n"},
		{name: "warn", level: slog.LevelWarn, want: "! graph built\n"},
		{name: "error", level: slog.LevelError, want: "✗ graph built\n"},
		{name: "debug filtered", level: slog.LevelDebug, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, buf := newHandler(t, slog.LevelInfo)
			slog.New(h).Log(t.Context(), tt.level, "graph built")

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	h, buf := newHandler(t, slog.LevelInfo)
	lg := slog.New(h.WithAttrs([]slog.Attr{slog.String("region", "52.1,11.6,12")}))

	lg.Info("graph built", "nodes", 42)

	assert.Equal(t, "graph built region=52.1,11.6,12 nodes=42\n", buf.String())
}

func TestPrettyHandler_Group(t *testing.T) {
	h, buf := newHandler(t, slog.LevelInfo)
	lg := slog.New(h.WithGroup("tier"))

	lg.Info("done", "name", "graph_search")

	assert.Equal(t, "done tier.name=graph_search\n", buf.String())
}

func TestPrettyHandler_WithAttrsDoesNotShareState(t *testing.T) {
	h, buf := newHandler(t, slog.LevelInfo)
	a := slog.New(h.WithAttrs([]slog.Attr{slog.Int("a", 1)}))
	b := slog.New(h.WithAttrs([]slog.Attr{slog.Int("b", 2)}))

	a.Info("x")
	b.Info("y")

	assert.Equal(t, "x a=1\ny b=2\n", buf.String())
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h, _ := newHandler(t, slog.LevelWarn)

	assert.False(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, h.Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, h.Enabled(t.Context(), slog.LevelError))
}

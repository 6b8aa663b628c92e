package logger_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cppdeps/internal/adapters/logger"
)

func newPretty(t *testing.T) (*logger.PrettyHandler, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}), buf
}

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{name: "info level", level: slog.LevelInfo, msg: "info message", goldenName: "handler_info"},
		{name: "warn level", level: slog.LevelWarn, msg: "warning message", goldenName: "handler_warn"},
		{name: "error level", level: slog.LevelError, msg: "error message", goldenName: "handler_error"},
		{name: "debug level filtered", level: slog.LevelDebug, msg: "debug message", goldenName: "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, buf := newPretty(t)
			slog.New(handler).Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(h slog.Handler) slog.Handler
		msg        string
		args       []any
		goldenName string
	}{
		{
			name: "handler attribute",
			setup: func(h slog.Handler) slog.Handler {
				return h.WithAttrs([]slog.Attr{slog.String("consumer", "app")})
			},
			msg:        "linking",
			goldenName: "handler_attrs_single",
		},
		{
			name:       "record attributes",
			setup:      func(h slog.Handler) slog.Handler { return h },
			msg:        "resolved",
			args:       []any{"dependency", "fmt", "attempts", 2},
			goldenName: "handler_record_multi",
		},
		{
			name:       "group attribute",
			setup:      func(h slog.Handler) slog.Handler { return h },
			msg:        "probe",
			args:       []any{slog.Group("probe", slog.String("name", "fmt"), slog.Bool("found", true))},
			goldenName: "handler_attrs_group",
		},
		{
			name: "nested groups",
			setup: func(h slog.Handler) slog.Handler {
				return h.WithGroup("a").WithGroup("b")
			},
			msg:        "nested",
			args:       []any{"k", "v"},
			goldenName: "handler_group_nested",
		},
		{
			name: "handler attrs keep their group",
			setup: func(h slog.Handler) slog.Handler {
				return h.WithGroup("req").WithAttrs([]slog.Attr{slog.String("id", "123")})
			},
			msg:        "grouped",
			args:       []any{"extra", "data"},
			goldenName: "handler_combined_group",
		},
		{
			name:       "empty group name",
			setup:      func(h slog.Handler) slog.Handler { return h.WithGroup("") },
			msg:        "empty group",
			args:       []any{"key", "val"},
			goldenName: "handler_group_empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, buf := newPretty(t)
			slog.New(tt.setup(handler)).Info(tt.msg, tt.args...)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	tests := []struct {
		name         string
		handlerLevel slog.Level
		recordLevel  slog.Level
		want         bool
	}{
		{name: "debug below info", handlerLevel: slog.LevelInfo, recordLevel: slog.LevelDebug, want: false},
		{name: "info at info", handlerLevel: slog.LevelInfo, recordLevel: slog.LevelInfo, want: true},
		{name: "warn above info", handlerLevel: slog.LevelInfo, recordLevel: slog.LevelWarn, want: true},
		{name: "warn at error", handlerLevel: slog.LevelError, recordLevel: slog.LevelWarn, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: tt.handlerLevel})
			assert.Equal(t, tt.want, handler.Enabled(t.Context(), tt.recordLevel))
		})
	}
}

func TestPrettyHandler_NilWriter(t *testing.T) {
	require.NotPanics(t, func() {
		_ = logger.NewPrettyHandler(nil, nil)
	})
}

func TestPrettyHandler_Handle_ReturnsError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	handler := logger.NewPrettyHandler(&brokenWriter{}, nil)
	rec := slog.NewRecord(time.Time{}, slog.LevelInfo, "this will fail to write", 0)

	assert.ErrorIs(t, handler.Handle(t.Context(), rec), assert.AnError)
}

type brokenWriter struct{}

func (bw *brokenWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}

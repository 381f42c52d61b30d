package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	ts := time.Date(2026, 1, 15, 10, 30, 45, 123000000, time.UTC)
	r := slog.NewRecord(ts, slog.LevelInfo, "batch committed", 0)
	r.AddAttrs(slog.Int("rows", 500))

	require.NoError(t, h.Handle(context.Background(), r))

	output := buf.String()
	assert.Contains(t, output, "10:30:45.123")
	assert.Contains(t, output, "INF")
	assert.Contains(t, output, "batch committed")
	assert.Contains(t, output, "rows=")
	assert.Contains(t, output, "500")
	assert.True(t, strings.HasSuffix(output, "\n"))
}

func TestTerminalHandler_Levels(t *testing.T) {
	tests := []struct {
		level    slog.Level
		expected string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			var buf bytes.Buffer
			h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

			r := slog.NewRecord(time.Now(), tt.level, "msg", 0)
			require.NoError(t, h.Handle(context.Background(), r))
			assert.Contains(t, buf.String(), tt.expected)
		})
	}
}

func TestTerminalHandler_LayerPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTerminalHandler(&buf, nil))

	logger.Info("layer complete", "layer", "agents", "rows", 100)

	output := buf.String()
	assert.Contains(t, output, "[agents]")
	assert.NotContains(t, output, "layer=")
	assert.Less(t, strings.Index(output, "[agents]"), strings.Index(output, "layer complete"))
}

func TestTerminalHandler_WithAttrsLayerAndRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTerminalHandler(&buf, nil)).With("run_id", "r-1", "layer", "claims", "step", "claims.rows")

	logger.Info("inserted")

	output := buf.String()
	assert.Contains(t, output, "[claims]")
	assert.Contains(t, output, "step=")
	assert.NotContains(t, output, "r-1")
}

func TestTerminalHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTerminalHandler(&buf, nil)).WithGroup("db")

	logger.Info("pool", "open", 1, slog.Group("limits", slog.Int("max", 10)))

	output := buf.String()
	assert.Contains(t, output, "db.open=")
	assert.Contains(t, output, "db.limits.max=")
}

func TestTerminalHandler_Enabled(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestFormatAttrValue(t *testing.T) {
	assert.Equal(t, "plain", formatAttrValue(slog.StringValue("plain")))
	assert.Equal(t, `"two words"`, formatAttrValue(slog.StringValue("two words")))
	assert.Equal(t, "1.5s", formatAttrValue(slog.DurationValue(1500*time.Millisecond)))
	assert.Equal(t, "42", formatAttrValue(slog.IntValue(42)))
}

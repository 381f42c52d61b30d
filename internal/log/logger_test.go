package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/helixml/brokerseed/internal/config"
)

func TestNewLoggerWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.Info("seeded", "rows", 12)

	var data map[string]any
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if data["msg"] != "seeded" {
		t.Errorf("msg = %v, want seeded", data["msg"])
	}
	if data["rows"] != float64(12) {
		t.Errorf("rows = %v, want 12", data["rows"])
	}
}

func TestNewLoggerWithWriter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "INFO")

	logger.Info("seeded")

	if !strings.Contains(buf.String(), "INF") {
		t.Errorf("expected terminal output, got: %s", buf.String())
	}
	if json.Valid(buf.Bytes()) {
		t.Errorf("pretty output should not be JSON: %s", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.With("step", "clients.rows").Info("test message")

	var data map[string]any
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if data["step"] != "clients.rows" {
		t.Errorf("expected step=clients.rows, got %v", data["step"])
	}
}

func TestLogger_InfoContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	ctx := WithLayer(WithRunID(context.Background(), "run-123"), "policies")
	logger.InfoContext(ctx, "test message")

	var data map[string]any
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if data["run_id"] != "run-123" {
		t.Errorf("expected run_id=run-123, got %v", data["run_id"])
	}
	if data["layer"] != "policies" {
		t.Errorf("expected layer=policies, got %v", data["layer"])
	}
}

func TestLogger_WithContext_Empty(t *testing.T) {
	logger := NewLoggerWithWriter(&bytes.Buffer{}, config.LogFormatJSON, "INFO")
	if logger.WithContext(context.Background()) != logger {
		t.Error("WithContext() without values should return the same logger")
	}
}

func TestContextAttrs(t *testing.T) {
	ctx := context.Background()
	if got := ContextAttrs(ctx); len(got) != 0 {
		t.Errorf("ContextAttrs() = %v, want empty", got)
	}

	ctx = WithRunID(ctx, "abc")
	if RunID(ctx) != "abc" {
		t.Errorf("RunID() = %v, want abc", RunID(ctx))
	}
	if Layer(ctx) != "" {
		t.Errorf("Layer() = %v, want empty", Layer(ctx))
	}

	ctx = WithLayer(ctx, "claims")
	got := ContextAttrs(ctx)
	want := []any{"run_id", "abc", "layer", "claims"}
	if len(got) != len(want) {
		t.Fatalf("ContextAttrs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ContextAttrs()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DEBUG", "DEBUG"},
		{"debug", "DEBUG"},
		{"INFO", "INFO"},
		{"WARN", "WARN"},
		{"WARNING", "WARN"},
		{"error", "ERROR"},
		{"unknown", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level := parseLevel(tt.input)
			if level.String() != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, level.String(), tt.expected)
			}
		})
	}
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "WARN")

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}
}

func TestConfigure(t *testing.T) {
	cfg := config.NewAppConfigWithOptions(
		config.WithLogLevel("DEBUG"),
		config.WithLogFormat(config.LogFormatJSON),
	)

	logger := Configure(cfg)
	if logger == nil {
		t.Fatal("Configure() should not return nil")
	}
	if !logger.Slog().Enabled(context.Background(), parseLevel("DEBUG")) {
		t.Error("configured logger should enable DEBUG")
	}
}

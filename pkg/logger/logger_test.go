package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/pilipandr770/sekretar-sub004/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.LogConfig{Level: "info", Format: "json"}

	l := NewWithWriter(cfg, &buf)
	l.Info("test message", "key", "value")

	var entry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err, "output should be valid JSON")

	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Contains(t, entry, "time")
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.LogConfig{Level: "info", Format: "text"}

	l := NewWithWriter(cfg, &buf)
	l.Info("test message", "key", "value")

	out := buf.String()
	assert.Contains(t, out, "test message")
	assert.Contains(t, out, "key=value")
	assert.Contains(t, out, "level=INFO")
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logFunc     func(*slog.Logger)
		message     string
		shouldLog   bool
	}{
		{
			name:        "info level shows info messages",
			configLevel: "info",
			logFunc:     func(l *slog.Logger) { l.Info("info message") },
			message:     "info message",
			shouldLog:   true,
		},
		{
			name:        "info level hides debug messages",
			configLevel: "info",
			logFunc:     func(l *slog.Logger) { l.Debug("debug message") },
			message:     "debug message",
			shouldLog:   false,
		},
		{
			name:        "debug level shows debug messages",
			configLevel: "debug",
			logFunc:     func(l *slog.Logger) { l.Debug("debug message") },
			message:     "debug message",
			shouldLog:   true,
		},
		{
			name:        "warn level hides info messages",
			configLevel: "warn",
			logFunc:     func(l *slog.Logger) { l.Info("info message") },
			message:     "info message",
			shouldLog:   false,
		},
		{
			name:        "error level hides warn messages",
			configLevel: "error",
			logFunc:     func(l *slog.Logger) { l.Warn("warn message") },
			message:     "warn message",
			shouldLog:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := &config.LogConfig{Level: tt.configLevel, Format: "text"}

			l := NewWithWriter(cfg, &buf)
			tt.logFunc(l)

			if tt.shouldLog {
				assert.Contains(t, buf.String(), tt.message)
			} else {
				assert.NotContains(t, buf.String(), tt.message)
			}
		})
	}
}

func TestNewWithWriter_InvalidFormatDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.LogConfig{Level: "info", Format: "invalid"}

	l := NewWithWriter(cfg, &buf)
	l.Info("test message")

	var entry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &entry)
	assert.NoError(t, err, "invalid format should fall back to JSON")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"invalid", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

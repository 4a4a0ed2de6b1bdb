package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("xml"))
}

func TestNew(t *testing.T) {
	t.Run("JSON output respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Level: slog.LevelWarn, Format: FormatJSON, Output: &buf})

		logger.Info("skipped")
		logger.Warn("kept", "topic", "POST")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "kept", entry["msg"])
		assert.Equal(t, "POST", entry["topic"])
	})

	t.Run("Text output", func(t *testing.T) {
		var buf bytes.Buffer
		New(Config{Format: FormatText, Output: &buf}).Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("Nop discards", func(t *testing.T) {
		assert.NotPanics(t, func() { Nop().Error("nothing") })
	})
}

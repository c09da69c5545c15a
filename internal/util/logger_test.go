// internal/util/logger_test.go
package util

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestInitLogger(t *testing.T) {
	t.Run("JSONFormat", func(t *testing.T) {
		var buf bytes.Buffer
		l := initLogger(&buf, "info", "json")
		l.Info("hello", "key", "user_session")

		var m map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
		assert.Equal(t, "hello", m["msg"])
		assert.Equal(t, "user_session", m["key"])
		assert.NotContains(t, m, "source")
	})

	t.Run("TextFormatHasSource", func(t *testing.T) {
		var buf bytes.Buffer
		l := initLogger(&buf, "debug", "text")
		l.Debug("visible")
		assert.Contains(t, buf.String(), "source=")
		assert.Contains(t, buf.String(), "visible")
	})

	t.Run("LevelFilters", func(t *testing.T) {
		var buf bytes.Buffer
		l := initLogger(&buf, "error", "json")
		l.Info("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("SetsDefault", func(t *testing.T) {
		var buf bytes.Buffer
		l := initLogger(&buf, "info", "json")
		assert.Same(t, l, GetLogger())
		assert.Same(t, l, slog.Default())
	})
}

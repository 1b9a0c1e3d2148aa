package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"component": "catalog", "correlation_id": "abc"})
	log.Info("requery complete", "rows", 4)

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "requery complete", entry["message"])
	require.Equal(t, "catalog", entry["component"])
	require.Equal(t, "abc", entry["correlation_id"])
	require.EqualValues(t, 4, entry["rows"])
	require.Equal(t, "info", entry["level"])
}

func TestForComponentAddsCorrelationID(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	base, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	base.ForComponent("command.list").Info("first")
	base.ForComponent("command.list").Info("second")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	ids := make([]string, 0, 2)
	for _, line := range lines {
		var entry logEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		require.Equal(t, "command.list", entry["component"])
		id, ok := entry["correlation_id"].(string)
		require.True(t, ok)
		require.Len(t, id, 36)
		ids = append(ids, id)
	}
	require.NotEqual(t, ids[0], ids[1], "each call starts a new correlation")

	var nilLog *Logger
	require.Nil(t, nilLog.ForComponent("x"))
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log.Debug("this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log = log.With("theme", "dark")
	log.Error(errors.New("boom"), "failed to persist", "path", "/tmp/x")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "failed to persist", entry["message"])
	require.Equal(t, "dark", entry["theme"])
	require.Equal(t, "/tmp/x", entry["path"])
	require.Equal(t, "boom", entry["error"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

func TestNilLoggerIsSafe(t *testing.T) {
	t.Parallel()

	var log *Logger
	require.NotPanics(t, func() {
		log.Info("ignored")
		log.Warn("ignored", "k", "v")
		log.Error(errors.New("x"), "ignored")
		require.Nil(t, log.With("k", "v"))
	})
}

func TestPairsSkipsMalformedKeys(t *testing.T) {
	t.Parallel()

	fields := pairs([]any{"a", 1, 2, "b", "dangling"})
	require.Equal(t, map[string]any{"a": 1}, fields)
}

package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFlagValue(t *testing.T) {
	var l Level
	require.NoError(t, l.Set("debug"))
	assert.Equal(t, "debug", l.String())
	assert.Equal(t, "log-level", l.Type())
	assert.Error(t, l.Set("verbose"))
	assert.Equal(t, LevelDebug, l, "failed Set keeps previous value")

	var nilLevel *Level
	assert.Equal(t, "", nilLevel.String())
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn)
	log.Info("hidden")
	log.Warn("shown", "key", "value")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "value", rec["key"])
}

func TestSetupWritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "jast.log")
	log, closeFn := Setup(file, LevelInfo)
	log.Info("hello")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestSinkFallback(t *testing.T) {
	assert.Equal(t, io.Discard, Sink("", io.Discard))
}

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/vp9batch/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.File = ""
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	defer l.Close()
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Log.File = filepath.Join(dir, "logs", "vp9batch.log")
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	l.Info("to file")
	require.NoError(t, l.Close())

	b, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(b), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "to file", entry["message"])
}

func TestLogger_ErrorsGoToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.Log.Color = config.ColorNever
	l, err := newLogger(&cfg, &stdout, &stderr)
	require.NoError(t, err)

	l.Info("progress %d/%d", 1, 2)
	l.Error("boom")

	assert.Contains(t, stdout.String(), "progress 1/2")
	assert.NotContains(t, stdout.String(), "boom")
	assert.Contains(t, stderr.String(), "boom")
}

func TestLogger_LevelFiltersDebug(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.Log.Format = config.LogFormatJSON
	l, err := newLogger(&cfg, &stdout, &stderr)
	require.NoError(t, err)

	l.Debug("hidden")
	assert.Empty(t, stdout.String())

	cfg.Log.Level = "debug"
	l, err = newLogger(&cfg, &stdout, &stderr)
	require.NoError(t, err)
	l.Debug("shown")
	assert.Contains(t, stdout.String(), "shown")
}

func TestLogger_WithAddsField(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf).With("run_id", "abc")
	l.Success("done")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "abc", entry["run_id"])
	assert.Equal(t, "success", entry["status"])
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("ignored")
	assert.NoError(t, l.Close())
}

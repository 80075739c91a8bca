package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/config"
)

func TestBuild_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := build(zapcore.AddSync(&buf), nil, zapcore.InfoLevel)

	log.Debug("hidden")
	log.Info("lesson completed", zap.String("lesson", "py-1"))
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "lesson completed", entry["msg"])
	assert.Equal(t, "py-1", entry["lesson"])
	assert.Contains(t, entry, "time")
}

func TestBuild_ConsoleTee(t *testing.T) {
	var jsonBuf, consoleBuf bytes.Buffer
	log := build(zapcore.AddSync(&jsonBuf), zapcore.AddSync(&consoleBuf), zapcore.DebugLevel)

	log.Warn("fetch failed")
	require.NoError(t, log.Sync())

	assert.Contains(t, jsonBuf.String(), `"msg":"fetch failed"`)
	assert.Contains(t, consoleBuf.String(), "fetch failed")
	assert.NotContains(t, consoleBuf.String(), `"msg"`)
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nauka.log")
	cfg := config.Default().Log
	cfg.File = path
	cfg.Level = "debug"

	log, err := New(cfg, nil)
	require.NoError(t, err)
	log.Debug("hello")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestNew_BadLevel(t *testing.T) {
	cfg := config.Default().Log
	cfg.File = filepath.Join(t.TempDir(), "x.log")
	cfg.Level = "chatty"

	_, err := New(cfg, nil)
	assert.Error(t, err)
}

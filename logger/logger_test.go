package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	dir := t.TempDir()

	debug, err := New("debug", filepath.Join(dir, "debug.log"))
	require.NoError(t, err)
	assert.True(t, debug.Core().Enabled(zapcore.DebugLevel))

	fallback, err := New("chatty", filepath.Join(dir, "fallback.log"))
	require.NoError(t, err)
	assert.False(t, fallback.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, fallback.Core().Enabled(zapcore.InfoLevel))
}

func TestMessageKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	log, err := New("info", path)
	require.NoError(t, err)

	log.Info("book derived", zap.Int("levels", 3))
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(raw, &entry))
	assert.Equal(t, "book derived", entry["message"])
	assert.EqualValues(t, 3, entry["levels"])
}

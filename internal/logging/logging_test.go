package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "democat.log")

	logger, err := New(Options{File: path})
	require.NoError(t, err)

	logger.Debug("hidden at info level")
	logger.Info("catalog loaded", zap.Int("entries", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"catalog loaded"`)
	assert.Contains(t, out, `"entries":3`)
	assert.False(t, strings.Contains(out, "hidden at info level"))
}

func TestNew_Debug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "democat.log")

	logger, err := New(Options{File: path, Debug: true})
	require.NoError(t, err)

	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	logger.Debug("visible")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
}

func TestNew_Stderr(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

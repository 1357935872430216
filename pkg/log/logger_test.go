package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nerfgen.log")

	logger, err := NewLogger(false, false, path)
	require.NoError(t, err)

	logger.Named("dataset").With("split", "train").Infow("frame written", "frame", 3)
	logger.Debugw("hidden at info level")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `"msg":"frame written"`)
	assert.Contains(t, out, `"logger":"dataset"`)
	assert.Contains(t, out, `"split":"train"`)
	assert.Contains(t, out, `"frame":3`)
	assert.False(t, strings.Contains(out, "hidden at info level"))
}

func TestNewLogger_DebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	logger, err := NewLogger(false, true, path)
	require.NoError(t, err)
	logger.Debugw("render stats", "samples", 16)
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "render stats")
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	assert.NotPanics(t, func() {
		logger.Infow("ignored", "k", "v")
		_ = logger.Sync()
	})
}

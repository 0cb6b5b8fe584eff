package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log := New("production", FileConfig{Path: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	log.Info("click recorded")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"click recorded"`)
	assert.Contains(t, string(data), `"env":"production"`)
}

func TestNew_LocalEnablesDebug(t *testing.T) {
	log := New(envLocal, FileConfig{})
	assert.True(t, log.Core().Enabled(-1))

	prod := New("production", FileConfig{})
	assert.False(t, prod.Core().Enabled(-1))
}

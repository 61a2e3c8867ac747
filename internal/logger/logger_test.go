package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")

	log, err := New("prod", path)
	require.NoError(t, err)

	log.With("video_id", "abc123").Info("summary ready", "chunks", 3)
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "summary ready")
	assert.Contains(t, string(data), "abc123")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Debug("ignored")
	log.Warn("ignored", "k", "v")
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/state", "tubequiz", "tubequiz.log"), p)
}

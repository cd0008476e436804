package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureOutputAndLevel(t *testing.T) {
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Output: os.Stderr}) })

	var buf bytes.Buffer
	Configure(Config{Level: WarnLevel, Output: &buf})

	Info().Msg("hidden")
	Warn().Str("entity", "student").Msg("shown")
	scoped := WithField("requestID", "abc")
	scoped.Error().Msg("scoped")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"entity":"student"`)
	assert.Contains(t, out, `"requestID":"abc"`)
}

func TestConfigureFileSink(t *testing.T) {
	t.Cleanup(func() {
		Configure(Config{Level: InfoLevel, Output: os.Stderr})
		fileSink = nil
	})

	path := filepath.Join(t.TempDir(), "registry.log")
	Configure(Config{Level: DebugLevel, File: path})
	Debug().Msg("written to file")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

// openHandles counts the descriptors of this process that point at path
func openHandles(t *testing.T, path string) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	require.NoError(t, err)

	n := 0
	for _, e := range entries {
		target, err := os.Readlink(filepath.Join("/proc/self/fd", e.Name()))
		if err == nil && target == path {
			n++
		}
	}
	return n
}

func TestConfigureClosesPreviousFile(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("descriptor listing needs /proc")
	}
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Output: os.Stderr}) })

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	Configure(Config{Level: InfoLevel, File: first})
	Info().Msg("first")
	assert.Equal(t, 1, openHandles(t, first))

	Configure(Config{Level: InfoLevel, File: second})
	Info().Msg("second")
	assert.Zero(t, openHandles(t, first))
	assert.Equal(t, 1, openHandles(t, second))

	var buf bytes.Buffer
	Configure(Config{Level: InfoLevel, Output: &buf})
	assert.Zero(t, openHandles(t, second))
	assert.Nil(t, fileSink)
}

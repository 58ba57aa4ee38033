package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogFileWriter_TrimsToNewestBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tracker.log")

	w, file, err := newLogFileWriter(path)
	require.NoError(t, err)
	defer file.Close()
	w.maxSize = 100
	w.keep = 40

	_, err = w.Write(bytes.Repeat([]byte("a"), 90))
	require.NoError(t, err)
	_, err = w.Write(bytes.Repeat([]byte("b"), 20))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 40)
	require.Equal(t, append(bytes.Repeat([]byte("a"), 20), bytes.Repeat([]byte("b"), 20)...), data)

	_, err = w.Write([]byte("c"))
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 41)
}

func TestEnsureDBDir(t *testing.T) {
	require.NoError(t, ensureDBDir(":memory:"))
	require.NoError(t, ensureDBDir("issues.db"))

	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, ensureDBDir(filepath.Join(dir, "issues.db")))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, "DEBUG", parseLogLevel("debug").String())
	require.Equal(t, "INFO", parseLogLevel("verbose").String())
	require.Equal(t, "ERROR", parseLogLevel("error").String())
}

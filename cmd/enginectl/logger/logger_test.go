package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInit_DisabledDiscards(t *testing.T) {
	require.NoError(t, Init(Options{Enabled: false}))
	require.False(t, L.Enabled(t.Context(), slog.LevelError))
}

func TestInit_Stderr(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Level: slog.LevelDebug, Stderr: &buf}))
	t.Cleanup(func() { _ = Init(Options{}) })

	Debug("segment appended", "segment", 3)
	require.Contains(t, buf.String(), "segment appended")
	require.Contains(t, buf.String(), "segment=3")
}

func TestInit_FileAndRetention(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, logPrefix+"2001-01-01"+logSuffix)
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))
	require.NoError(t, os.WriteFile(other, []byte("keep"), 0644))

	require.NoError(t, Init(Options{Enabled: true, LogDir: dir, Level: slog.LevelInfo}))
	t.Cleanup(func() { _ = Init(Options{}) })
	Info("replay finished", "steps", 4)

	_, err := os.Stat(stale)
	require.True(t, os.IsNotExist(err), "stale log should be removed")
	_, err = os.Stat(other)
	require.NoError(t, err, "unrelated files are kept")

	today := filepath.Join(dir, logPrefix+time.Now().Format("2006-01-02")+logSuffix)
	data, err := os.ReadFile(today)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"replay finished"`)
}

func TestClose_ReleasesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(Options{Enabled: true, LogDir: dir, Level: slog.LevelInfo}))
	f := file
	require.NotNil(t, f)

	require.NoError(t, Close())
	require.Nil(t, file)
	require.False(t, L.Enabled(t.Context(), slog.LevelError))
	_, err := f.Write([]byte("x"))
	require.ErrorIs(t, err, os.ErrClosed)

	require.NoError(t, Close())
}

func TestInit_ClosesPreviousFile(t *testing.T) {
	require.NoError(t, Init(Options{Enabled: true, LogDir: t.TempDir(), Level: slog.LevelInfo}))
	f := file

	require.NoError(t, Init(Options{Enabled: false}))
	require.Nil(t, file)
	_, err := f.Write([]byte("x"))
	require.ErrorIs(t, err, os.ErrClosed)
}

func TestLevelFor(t *testing.T) {
	require.Equal(t, slog.LevelDebug, LevelFor(true))
	require.Equal(t, slog.LevelInfo, LevelFor(false))
}

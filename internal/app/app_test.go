package app

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/tunefetch/internal/config"
	"github.com/handiism/tunefetch/internal/model"
)

func fakeFFmpegDir(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a POSIX shell")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ffmpeg"), []byte("#!/bin/sh\nexit 0\n"), 0755))
	return dir
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)

	_, err := LoadSettings(path)
	var cfgErr *config.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, config.ErrNotFound)

	s := config.DefaultSettings()
	require.NoError(t, s.Save(path))
	_, err = LoadSettings(path)
	assert.ErrorAs(t, err, &cfgErr, "empty ffmpeg_location must be rejected")

	s.FFmpegLocation = fakeFFmpegDir(t)
	require.NoError(t, s.Save(path))
	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, s.FFmpegLocation, loaded.FFmpegLocation)
}

func TestNew(t *testing.T) {
	s := config.DefaultSettings()
	s.FFmpegLocation = fakeFFmpegDir(t)
	base := t.TempDir()

	var logs bytes.Buffer
	a, err := New(s, base, &logs, true, nil)
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(base, "Downloads"))
	assert.DirExists(t, filepath.Join(base, "Album Covers"))
	assert.NotNil(t, a.Acquirer)
	assert.Contains(t, logs.String(), "tunefetch ready")

	q := model.NewSearchQuery("Imagine", "John Lennon", "", "")
	assert.Equal(t, filepath.Join(base, "Downloads", "Imagine - John Lennon.mp3"), a.Pipeline.AudioPath(q))
	assert.Equal(t, filepath.Join(base, "Album Covers", "Imagine_John Lennon.jpg"), a.Pipeline.CoverPath(q))
}

func TestNew_BadFFmpeg(t *testing.T) {
	s := config.DefaultSettings()
	s.FFmpegLocation = filepath.Join(t.TempDir(), "missing")

	_, err := New(s, t.TempDir(), &bytes.Buffer{}, false, nil)
	var cfgErr *config.Error
	assert.ErrorAs(t, err, &cfgErr)
}

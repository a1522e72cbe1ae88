package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colors:\n  accent: \"#ff0000\"\n"), 0o600))

	th, err := Load(path)
	require.NoError(t, err)

	changed := make(chan struct{}, 4)
	w, err := Watch(th, path, func() { changed <- struct{}{} }, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("colors:\n  accent: \"#0000ff\"\n"), 0o600))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
	assert.Equal(t, color.NRGBA{B: 0xff, A: 0xff}, th.Color(Accent))
}

func TestWatcherKeepsThemeOnBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colors:\n  accent: \"#ff0000\"\n"), 0o600))

	th, err := Load(path)
	require.NoError(t, err)

	changed := make(chan struct{}, 4)
	w, err := Watch(th, path, func() { changed <- struct{}{} }, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("colors:\n  accent: nope\n"), 0o600))

	select {
	case <-changed:
		t.Fatal("onChange called for an invalid file")
	case <-time.After(300 * time.Millisecond):
	}
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, th.Color(Accent))
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colors: {}\n"), 0o600))

	changed := make(chan struct{}, 4)
	w, err := Watch(New(), path, func() { changed <- struct{}{} }, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o600))

	select {
	case <-changed:
		t.Fatal("onChange called for another file")
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWatchMissingDir(t *testing.T) {
	_, err := Watch(New(), filepath.Join(t.TempDir(), "nope", "theme.yaml"), nil)
	assert.Error(t, err)
}

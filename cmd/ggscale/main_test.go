package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ggscale"
	"github.com/gogpu/ggscale/host"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSession(t *testing.T) {
	path := writeTemp(t, "session.yaml", `
width: 320
height: 120
scale: 3
mode: direct
label: hello
events:
  - {type: scale, value: 4}
  - {type: hover, inside: true}
  - {type: mode, direct: false}
  - {type: resize, width: 100, height: 50}
  - {type: refresh}
  - {type: paint}
`)
	s, err := loadSession(path)
	require.NoError(t, err)
	assert.Equal(t, 320, s.Width)
	assert.Equal(t, 120, s.Height)
	assert.Equal(t, "hello", s.Label)

	st, err := s.State()
	require.NoError(t, err)
	assert.Equal(t, ggscale.State{ScaleFactor: 3}, st)

	events, err := s.HostEvents()
	require.NoError(t, err)
	assert.Equal(t, []host.Event{
		host.ScaleFactorEvent{Value: 4},
		host.HoverEvent{Inside: true},
		host.DrawModeEvent{Direct: false},
		host.ResizeEvent{Width: 100, Height: 50},
		host.RefreshEvent{},
		host.PaintEvent{},
	}, events)
}

func TestSessionDefaults(t *testing.T) {
	s, err := loadSession(writeTemp(t, "empty.yaml", "label: x\n"))
	require.NoError(t, err)
	assert.Equal(t, 200, s.Width)
	assert.Equal(t, ggscale.DefaultScaleFactor, s.Scale)

	st, err := s.State()
	require.NoError(t, err)
	assert.True(t, st.UseCachedImage)
}

func TestSessionErrors(t *testing.T) {
	_, err := loadSession(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Session{Mode: "sideways"}.State()
	assert.Error(t, err)

	_, err = Session{Events: []SessionEvent{{Type: "jump"}}}.HostEvents()
	assert.ErrorContains(t, err, "event 0")
}

func TestRunWritesFrames(t *testing.T) {
	out := t.TempDir()
	cfg := writeTemp(t, "session.yaml", `
width: 120
height: 60
events:
  - {type: hover, inside: true}
  - {type: scale, value: 3}
`)
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-config", cfg, "-out", out}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	for _, name := range []string{"frame-000.png", "frame-001.png", "frame-002.png"} {
		f, err := os.Open(filepath.Join(out, name))
		require.NoError(t, err)
		img, err := png.Decode(f)
		_ = f.Close()
		require.NoError(t, err)
		assert.Equal(t, 120, img.Bounds().Dx())
		assert.Equal(t, 60, img.Bounds().Dy())
	}
	assert.Contains(t, stdout.String(), "3 frames, 2 draws, 2 events, 0 errors")
}

func TestRunTrace(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(),
		[]string{"-out", t.TempDir(), "-trace", "-width", "80", "-height", "40", "-scale", "2"},
		&stdout, &stderr)
	require.NoError(t, err, stderr.String())

	trace := stdout.String()
	assert.Contains(t, trace, "frame 000")
	assert.Contains(t, trace, "Scale(0.5, 0.5)")
	assert.Contains(t, trace, "DrawImage(160x80, 0, 0)")
	assert.True(t, strings.Index(trace, "Scale(0.5, 0.5)") < strings.Index(trace, "DrawImage("))
}

func TestRunBadFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Error(t, run(context.Background(), []string{"-mode", "sideways"}, &stdout, &stderr))
	assert.Error(t, run(context.Background(), []string{"-nope"}, &stdout, &stderr))
}

func TestRunSurfaceBackend(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-out", t.TempDir(), "-surface", "record"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Contains(t, stdout.String(), "1 frames")

	err = run(context.Background(), []string{"-out", t.TempDir(), "-surface", "vulkan"}, &stdout, &stderr)
	assert.ErrorContains(t, err, "backend not found")
}

package host

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ggscale"
	"github.com/gogpu/ggscale/recording"
	"github.com/gogpu/ggscale/surface"
	"github.com/gogpu/ggscale/theme"
)

func newLoop(t *testing.T, opts ...Option) *Loop {
	t.Helper()
	l, err := New(200, 100, theme.New(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestNew(t *testing.T) {
	l := newLoop(t)
	assert.Equal(t, ggscale.DefaultState(), l.State())
	assert.Equal(t, surface.Sz(200, 100), l.Visible().Size())
	assert.Equal(t, Stats{}, l.Stats())
}

func TestNewErrors(t *testing.T) {
	_, err := New(0, 100, theme.New())
	assert.ErrorIs(t, err, surface.ErrInvalidSize)

	_, err = New(10, 10, nil)
	assert.Error(t, err)
}

func TestNewClampsState(t *testing.T) {
	l := newLoop(t, WithState(ggscale.State{ScaleFactor: 100}))
	assert.Equal(t, ggscale.MaxScaleFactor, l.State().ScaleFactor)
}

func TestStepPaints(t *testing.T) {
	var frames []*surface.RasterImage
	l := newLoop(t, WithOnFrame(func(img *surface.RasterImage) { frames = append(frames, img) }))

	require.NoError(t, l.Step(PaintEvent{}))

	require.Len(t, frames, 1)
	assert.Equal(t, surface.Sz(200, 100), frames[0].Size())
	assert.Equal(t, Stats{Events: 1, Paints: 1, Draws: 1}, l.Stats())
}

func TestStepScaleInvalidatesBeforePaint(t *testing.T) {
	l := newLoop(t)
	require.NoError(t, l.Step(PaintEvent{}))
	require.NoError(t, l.Step(ScaleFactorEvent{Value: 3}))

	rc := l.Renderer().Cache()
	assert.Equal(t, 3.0, rc.Entry().Scale)
	assert.Equal(t, 600, rc.Entry().Image.Width())
	assert.Equal(t, uint64(2), rc.Stats().Builds)
	assert.Equal(t, uint64(2), l.Stats().Draws)
}

func TestStepHoverKeepsCache(t *testing.T) {
	l := newLoop(t)
	require.NoError(t, l.Step(PaintEvent{}))
	require.NoError(t, l.Step(HoverEvent{Inside: true}))
	assert.True(t, l.State().HoverIndicatorVisible)
	require.NoError(t, l.Step(HoverEvent{Inside: false}))

	assert.Equal(t, uint64(1), l.Stats().Draws)
	assert.Equal(t, uint64(3), l.Stats().Paints)
}

func TestStepDrawModeAndRefresh(t *testing.T) {
	l := newLoop(t)
	require.NoError(t, l.Step(DrawModeEvent{Direct: true}))
	assert.False(t, l.State().UseCachedImage)
	assert.Equal(t, uint64(0), l.Renderer().Cache().Stats().Builds)

	require.NoError(t, l.Step(DrawModeEvent{Direct: false}))
	require.NoError(t, l.Step(RefreshEvent{}))
	assert.Equal(t, uint64(2), l.Renderer().Cache().Stats().Builds)
	assert.Equal(t, uint64(3), l.Stats().Draws)
}

func TestStepResize(t *testing.T) {
	var visibles []*recording.Recorder
	l := newLoop(t, WithAllocator(recording.Allocator(nil, func(r *recording.Recorder) {
		visibles = append(visibles, r)
	})))
	require.NoError(t, l.Step(PaintEvent{}))
	require.NoError(t, l.Step(ResizeEvent{Width: 300, Height: 150}))

	require.Len(t, visibles, 2)
	assert.True(t, visibles[0].Closed())
	assert.Equal(t, surface.Sz(300, 150), l.Visible().Size())
	assert.Equal(t, surface.Sz(300, 150), l.Renderer().Cache().Entry().Size)
	assert.Equal(t, uint64(2), l.Stats().Draws)

	// Same size: nothing to do.
	require.NoError(t, l.Step(ResizeEvent{Width: 300, Height: 150}))
	assert.Len(t, visibles, 2)
	assert.Equal(t, uint64(2), l.Stats().Paints)
}

func TestStepResizeFailure(t *testing.T) {
	var reported []*ggscale.Error
	l := newLoop(t, WithErrorHandler(func(err *ggscale.Error) { reported = append(reported, err) }))

	require.NoError(t, l.Step(ResizeEvent{Width: 0, Height: 10}))

	require.Len(t, reported, 1)
	assert.Equal(t, ggscale.KindConfiguration, reported[0].Kind)
	assert.Equal(t, surface.Sz(200, 100), l.Visible().Size())
	assert.Equal(t, uint64(1), l.Stats().Errors)
}

func TestStepAllocationFailureFallsBack(t *testing.T) {
	fail := func(w, h int) (surface.Surface, error) {
		return nil, &surface.AllocError{Width: w, Height: h}
	}
	var reported []*ggscale.Error
	l := newLoop(t,
		WithRendererOptions(ggscale.WithAllocator(fail)),
		WithErrorHandler(func(err *ggscale.Error) { reported = append(reported, err) }))

	require.NoError(t, l.Step(PaintEvent{}))

	require.Len(t, reported, 1)
	assert.Equal(t, ggscale.KindResource, reported[0].Kind)
	assert.Equal(t, Stats{Events: 1, Paints: 1, Draws: 1, Errors: 1}, l.Stats())
}

func TestStepInvalidScaleReported(t *testing.T) {
	l := newLoop(t)
	require.NoError(t, l.Step(ScaleFactorEvent{Value: 0}))
	assert.Equal(t, ggscale.MinScaleFactor, l.State().ScaleFactor)

	require.NoError(t, l.Step(ScaleFactorEvent{Value: 1e9}))
	assert.Equal(t, ggscale.MaxScaleFactor, l.State().ScaleFactor)
	assert.Zero(t, l.Stats().Errors)
}

func TestRunCoalescesQueuedEvents(t *testing.T) {
	var mu sync.Mutex
	frames := 0
	l := newLoop(t, WithOnFrame(func(*surface.RasterImage) {
		mu.Lock()
		frames++
		mu.Unlock()
	}))

	require.True(t, l.Post(ScaleFactorEvent{Value: 3}))
	require.True(t, l.Post(HoverEvent{Inside: true}))
	require.True(t, l.Post(RefreshEvent{}))

	errc := make(chan error, 1)
	go func() { errc <- l.Run(context.Background()) }()

	assert.Eventually(t, func() bool { return l.Stats().Paints == 1 }, 5*time.Second, 5*time.Millisecond)
	require.NoError(t, l.Close())

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Close")
	}

	st := l.Stats()
	assert.Equal(t, uint64(3), st.Events)
	assert.Equal(t, uint64(1), st.Paints)
	assert.Equal(t, uint64(1), st.Draws)
	mu.Lock()
	assert.Equal(t, 1, frames)
	mu.Unlock()
	assert.Equal(t, 3.0, l.State().ScaleFactor)
	assert.True(t, l.State().HoverIndicatorVisible)
}

func TestRunContextCancel(t *testing.T) {
	l := newLoop(t)
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()
	cancel()

	select {
	case err := <-errc:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func waitRun(t *testing.T, errc <-chan error) error {
	t.Helper()
	select {
	case err := <-errc:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestCloseFromFrameHook(t *testing.T) {
	var l *Loop
	l = newLoop(t, WithOnFrame(func(*surface.RasterImage) {
		assert.NoError(t, l.Close())
	}))

	errc := make(chan error, 1)
	go func() { errc <- l.Run(context.Background()) }()
	require.True(t, l.Post(PaintEvent{}))

	assert.ErrorIs(t, waitRun(t, errc), ErrClosed)
	assert.Equal(t, uint64(1), l.Stats().Paints)

	_, err := l.Visible().Snapshot()
	assert.ErrorIs(t, err, surface.ErrClosed, "Run releases the visible surface on the way out")
	assert.False(t, l.Post(PaintEvent{}))
}

func TestCloseFromErrorHandler(t *testing.T) {
	var l *Loop
	l = newLoop(t, WithErrorHandler(func(*ggscale.Error) {
		assert.NoError(t, l.Close())
	}))

	errc := make(chan error, 1)
	go func() { errc <- l.Run(context.Background()) }()
	require.True(t, l.Post(ScaleFactorEvent{Value: math.NaN()}))

	assert.ErrorIs(t, waitRun(t, errc), ErrClosed)
	assert.Equal(t, uint64(1), l.Stats().Errors)
	assert.Equal(t, uint64(0), l.Stats().Paints)
}

func TestCloseDuringRun(t *testing.T) {
	l := newLoop(t)

	errc := make(chan error, 1)
	go func() { errc <- l.Run(context.Background()) }()
	require.NoError(t, l.Close())

	assert.ErrorIs(t, waitRun(t, errc), ErrClosed)
	_, err := l.Visible().Snapshot()
	assert.ErrorIs(t, err, surface.ErrClosed)

	// A closed loop does not run again.
	assert.ErrorIs(t, l.Run(context.Background()), ErrClosed)
}

func TestRunTwice(t *testing.T) {
	painted := make(chan struct{}, 1)
	l := newLoop(t, WithOnFrame(func(*surface.RasterImage) {
		select {
		case painted <- struct{}{}:
		default:
		}
	}))

	errc := make(chan error, 1)
	go func() { errc <- l.Run(context.Background()) }()
	require.True(t, l.Post(PaintEvent{}))

	select {
	case <-painted:
	case <-time.After(5 * time.Second):
		t.Fatal("no frame painted")
	}
	assert.ErrorIs(t, l.Run(context.Background()), ErrRunning)

	require.NoError(t, l.Close())
	assert.ErrorIs(t, waitRun(t, errc), ErrClosed)
}

func TestPost(t *testing.T) {
	l := newLoop(t, WithQueueSize(1))

	assert.False(t, l.Post(nil))
	assert.True(t, l.Post(PaintEvent{}))
	assert.False(t, l.Post(PaintEvent{}))
	assert.Equal(t, uint64(1), l.Stats().Dropped)

	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
	assert.False(t, l.Post(PaintEvent{}))
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{ScaleFactorEvent{Value: 1.5}, "scale(1.5)"},
		{RefreshEvent{}, "refresh"},
		{HoverEvent{Inside: true}, "hover(enter)"},
		{HoverEvent{}, "hover(leave)"},
		{DrawModeEvent{Direct: true}, "mode(direct)"},
		{DrawModeEvent{}, "mode(cached)"},
		{ResizeEvent{Width: 3, Height: 4}, "resize(3x4)"},
		{PaintEvent{}, "paint"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ev.(interface{ String() string }).String())
	}
}

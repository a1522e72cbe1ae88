package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/ggscale"
	"github.com/gogpu/ggscale/surface"
)

var (
	// ErrClosed is returned by Run after Close.
	ErrClosed = errors.New("host: loop closed")

	// ErrRunning is returned by Run when another Run is active.
	ErrRunning = errors.New("host: loop already running")
)

// Stats holds loop counters.
type Stats struct {
	Events  uint64
	Dropped uint64
	Paints  uint64
	Draws   uint64
	Errors  uint64
}

// Loop is a single-threaded host for a Renderer.
type Loop struct {
	events chan Event
	done   chan struct{}
	once   sync.Once

	mu      sync.Mutex
	running bool
	closed  bool

	// Owned by the loop goroutine.
	state    ggscale.State
	ctrl     *ggscale.Controller
	renderer *ggscale.Renderer
	visible  surface.Surface
	alloc    surface.Allocator
	pending  bool

	onFrame func(*surface.RasterImage)
	onError func(*ggscale.Error)
	log     *slog.Logger

	nEvents  atomic.Uint64
	nDropped atomic.Uint64
	nPaints  atomic.Uint64
	nDraws   atomic.Uint64
	nErrors  atomic.Uint64
}

var (
	_ ggscale.Signals       = (*Loop)(nil)
	_ ggscale.Repainter     = (*Loop)(nil)
	_ ggscale.ErrorReporter = (*Loop)(nil)
)

// New allocates a visible surface of width x height and wires a
// Controller and Renderer to it.
func New(width, height int, theme ggscale.Theme, opts ...Option) (*Loop, error) {
	if theme == nil {
		return nil, fmt.Errorf("host: nil theme")
	}
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = ggscale.Logger()
	}

	visible, err := c.alloc(width, height)
	if err != nil {
		return nil, fmt.Errorf("host: allocate visible surface: %w", err)
	}

	l := &Loop{
		events:  make(chan Event, c.queueSize),
		done:    make(chan struct{}),
		state:   c.state,
		visible: visible,
		alloc:   c.alloc,
		onFrame: c.onFrame,
		onError: c.onError,
		log:     c.logger,
	}
	l.state.ScaleFactor = ggscale.ClampScaleFactor(l.state.ScaleFactor)

	ropts := append([]ggscale.Option{
		ggscale.WithErrorReporter(l),
		ggscale.WithLogger(c.logger),
	}, c.renderer...)
	l.renderer = ggscale.NewRenderer(theme, l, ropts...)
	l.ctrl = ggscale.NewController(&l.state, l.renderer.Cache(), l, ropts...)
	return l, nil
}

// Post queues ev for the loop goroutine. It never blocks; it returns
// false if the queue is full or the loop is closed.
func (l *Loop) Post(ev Event) bool {
	if ev == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.events <- ev:
		return true
	default:
		l.nDropped.Add(1)
		l.log.Warn("host: event dropped", slog.Any("event", ev))
		return false
	}
}

// Run processes events until ctx is done or Close is called.
// A paint in progress always completes. Close may be called from a hook
// running on the loop goroutine; Run returns once the current event has
// been serviced.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	switch {
	case l.closed:
		l.mu.Unlock()
		return ErrClosed
	case l.running:
		l.mu.Unlock()
		return ErrRunning
	}
	l.running = true
	l.mu.Unlock()
	defer l.stop()

	for {
		select {
		case <-l.done:
			return ErrClosed
		default:
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return ErrClosed
		case ev := <-l.events:
			l.handle(ev)
			l.drain()
			if err := l.service(); err != nil {
				l.log.Debug("host: paint skipped", slog.String("err", err.Error()))
			}
		}
	}
}

// drain handles the events already queued without blocking.
func (l *Loop) drain() {
	for {
		select {
		case ev := <-l.events:
			l.handle(ev)
		default:
			return
		}
	}
}

// Step handles ev and services the repaint it requested, synchronously.
// It must not be called while Run is running.
func (l *Loop) Step(ev Event) error {
	l.handle(ev)
	return l.service()
}

// Repaint paints the visible surface immediately.
// It must not be called while Run is running.
func (l *Loop) Repaint() error {
	l.pending = true
	return l.service()
}

func (l *Loop) handle(ev Event) {
	l.nEvents.Add(1)
	l.log.Debug("host: event", slog.Any("event", ev))

	switch e := ev.(type) {
	case ScaleFactorEvent:
		l.ctrl.OnScaleFactorChange(e.Value)
	case RefreshEvent:
		l.ctrl.OnRefreshRequested()
	case HoverEvent:
		if e.Inside {
			l.ctrl.OnHoverEnter()
		} else {
			l.ctrl.OnHoverLeave()
		}
	case DrawModeEvent:
		l.ctrl.OnDrawModeToggle(e.Direct)
	case ResizeEvent:
		l.resize(e.Width, e.Height)
	case PaintEvent:
		l.RequestRepaint()
	default:
		l.log.Warn("host: unknown event", slog.String("type", fmt.Sprintf("%T", ev)))
	}
}

// resize replaces the visible surface. On failure the old surface is
// kept and the error reported.
func (l *Loop) resize(width, height int) {
	if l.visible.Width() == width && l.visible.Height() == height {
		return
	}
	s, err := l.alloc(width, height)
	if err != nil {
		l.ReportError(&ggscale.Error{Op: "host.Resize", Kind: ggscale.KindOf(err), Err: err})
		return
	}
	_ = l.visible.Close()
	l.visible = s
	l.RequestRepaint()
}

// service runs the pending repaint, if any.
func (l *Loop) service() error {
	if !l.pending {
		return nil
	}
	l.pending = false

	if err := l.renderer.Paint(l.visible, l.state); err != nil {
		return err
	}
	if l.onFrame != nil {
		img, err := l.visible.Snapshot()
		if err != nil {
			l.ReportError(&ggscale.Error{Op: "host.Snapshot", Kind: ggscale.KindOf(err), Err: err})
			return err
		}
		l.onFrame(img)
	}
	return nil
}

// RequestRepaint implements ggscale.Repainter.
func (l *Loop) RequestRepaint() {
	l.pending = true
}

// PaintComplete implements ggscale.Signals.
func (l *Loop) PaintComplete() {
	l.nPaints.Add(1)
}

// DrawExecuted implements ggscale.Signals.
func (l *Loop) DrawExecuted() {
	l.nDraws.Add(1)
}

// ReportError implements ggscale.ErrorReporter.
func (l *Loop) ReportError(err *ggscale.Error) {
	l.nErrors.Add(1)
	l.log.Warn("host: error",
		slog.String("op", err.Op),
		slog.String("kind", err.Kind.String()),
		slog.String("err", fmt.Sprint(err.Err)))
	if l.onError != nil {
		l.onError(err)
	}
}

// State returns the current state. It must not be called while Run is
// running.
func (l *Loop) State() ggscale.State {
	return l.state
}

// Visible returns the visible surface. It must not be called while Run is
// running.
func (l *Loop) Visible() surface.Surface {
	return l.visible
}

// Renderer returns the renderer.
func (l *Loop) Renderer() *ggscale.Renderer {
	return l.renderer
}

// Stats returns a snapshot of the counters. It is safe to call from any
// goroutine.
func (l *Loop) Stats() Stats {
	return Stats{
		Events:  l.nEvents.Load(),
		Dropped: l.nDropped.Load(),
		Paints:  l.nPaints.Load(),
		Draws:   l.nDraws.Load(),
		Errors:  l.nErrors.Load(),
	}
}

// stop marks Run as returned and releases the visible surface if Close
// was called while it ran.
func (l *Loop) stop() {
	l.mu.Lock()
	l.running = false
	closed := l.closed
	l.mu.Unlock()
	if closed {
		if err := l.visible.Close(); err != nil {
			l.log.Warn("host: close visible surface", slog.String("err", err.Error()))
		}
	}
}

// Close stops Run and releases the visible surface. If Run is active,
// Close does not wait: Run finishes the event in progress, returns
// ErrClosed and releases the surface itself. Close is safe to call more
// than once and from any goroutine, including from WithOnFrame and
// WithErrorHandler hooks.
func (l *Loop) Close() error {
	var err error
	l.once.Do(func() {
		l.mu.Lock()
		l.closed = true
		running := l.running
		l.mu.Unlock()
		close(l.done)
		if !running {
			err = l.visible.Close()
		}
	})
	return err
}

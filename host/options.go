package host

import (
	"log/slog"

	"github.com/gogpu/ggscale"
	"github.com/gogpu/ggscale/surface"
)

// DefaultQueueSize is the capacity of the event queue.
const DefaultQueueSize = 64

// Option configures a Loop.
type Option func(*config)

type config struct {
	alloc     surface.Allocator
	state     ggscale.State
	queueSize int
	onFrame   func(*surface.RasterImage)
	onError   func(*ggscale.Error)
	logger    *slog.Logger
	renderer  []ggscale.Option
}

func defaultConfig() config {
	return config{
		alloc:     surface.DefaultAllocator,
		state:     ggscale.DefaultState(),
		queueSize: DefaultQueueSize,
	}
}

// WithAllocator sets the allocator for the visible surface.
func WithAllocator(a surface.Allocator) Option {
	return func(c *config) {
		if a != nil {
			c.alloc = a
		}
	}
}

// WithState sets the initial state. The scale factor is clamped.
func WithState(st ggscale.State) Option {
	return func(c *config) {
		c.state = st
	}
}

// WithQueueSize sets the event queue capacity.
func WithQueueSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.queueSize = n
		}
	}
}

// WithOnFrame sets a hook called with a snapshot of the visible surface
// after every paint.
func WithOnFrame(fn func(*surface.RasterImage)) Option {
	return func(c *config) {
		c.onFrame = fn
	}
}

// WithErrorHandler sets a hook called for every reported error.
func WithErrorHandler(fn func(*ggscale.Error)) Option {
	return func(c *config) {
		c.onError = fn
	}
}

// WithLogger sets the logger. The default is ggscale.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithRendererOptions passes options to the Renderer and Controller.
func WithRendererOptions(opts ...ggscale.Option) Option {
	return func(c *config) {
		c.renderer = append(c.renderer, opts...)
	}
}

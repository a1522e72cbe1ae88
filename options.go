package ggscale

import (
	"log/slog"

	"github.com/gogpu/ggscale/cache"
	"github.com/gogpu/ggscale/surface"
)

// DefaultLabel is the text DrawPanel writes.
const DefaultLabel = "ggscale"

// Option configures a Renderer or Controller.
//
// Example:
//
//	r := ggscale.NewRenderer(th, signals,
//	    ggscale.WithLabel("hello"),
//	    ggscale.WithErrorReporter(host))
type Option func(*options)

// options holds optional configuration.
type options struct {
	cache    *cache.Raster
	alloc    surface.Allocator
	reporter ErrorReporter
	label    string
	logger   *slog.Logger
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		alloc: surface.DefaultAllocator,
		label: DefaultLabel,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	if o.reporter == nil {
		o.reporter = logReporter{log: o.logger}
	}
	return o
}

// WithCache sets the raster cache. By default the Renderer creates one
// using the allocator.
func WithCache(c *cache.Raster) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithAllocator sets the off-screen allocator for the default cache.
// It is ignored when WithCache is given.
func WithAllocator(a surface.Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.alloc = a
		}
	}
}

// WithErrorReporter sets where recovered errors are reported.
// The default logs them at warn level.
func WithErrorReporter(r ErrorReporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// WithLabel sets the panel label.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithLogger sets the logger. The default is Logger() at construction.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

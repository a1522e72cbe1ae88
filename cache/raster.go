package cache

import (
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/gogpu/ggscale/surface"
)

// DrawFunc draws content in logical units onto an off-screen surface
// whose transform already carries the scale.
type DrawFunc func(s surface.Surface)

// Entry is the cached raster and the parameters it was built for.
// The zero Entry is empty.
type Entry struct {
	Image *surface.RasterImage
	Scale float64
	Size  surface.Size
}

// Valid reports whether the entry holds a raster built for size at scale.
func (e Entry) Valid(size surface.Size, scale float64) bool {
	return e.Image != nil && e.Scale == scale && e.Size == size
}

// Stats holds cache counters.
type Stats struct {
	Hits          uint64
	Misses        uint64
	Builds        uint64
	Invalidations uint64
}

// HitRate returns hits / (hits + misses), or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Option configures a Raster.
type Option func(*Raster)

// WithLogger sets the logger for cache diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Raster) {
		if l != nil {
			c.log = l
		}
	}
}

// Raster caches one upscaled raster.
type Raster struct {
	alloc surface.Allocator
	log   *slog.Logger
	entry Entry

	hits          atomic.Uint64
	misses        atomic.Uint64
	builds        atomic.Uint64
	invalidations atomic.Uint64
}

// New creates an empty Raster. A nil alloc uses surface.DefaultAllocator.
func New(alloc surface.Allocator, opts ...Option) *Raster {
	if alloc == nil {
		alloc = surface.DefaultAllocator
	}
	c := &Raster{
		alloc: alloc,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure returns the cached raster for (size, scale), building it first
// if the entry is empty or was built for other parameters.
//
// A build allocates an off-screen surface of size.Scaled(scale), applies
// Scale(scale, scale) once, calls draw, and snapshots the result. A
// non-positive size or scale returns a *surface.SizeError and leaves the
// entry untouched. An allocation error leaves the entry empty.
func (c *Raster) Ensure(size surface.Size, scale float64, draw DrawFunc) (*surface.RasterImage, error) {
	if size.Empty() || !(scale > 0) || math.IsInf(scale, 1) {
		return nil, &surface.SizeError{Width: size.W, Height: size.H, Scale: scale}
	}
	if c.entry.Valid(size, scale) {
		c.hits.Add(1)
		return c.entry.Image, nil
	}
	c.misses.Add(1)
	c.entry = Entry{}

	dev := size.Scaled(scale)
	if dev.Empty() {
		return nil, &surface.SizeError{Width: size.W, Height: size.H, Scale: scale}
	}
	off, err := c.alloc(dev.W, dev.H)
	if err != nil {
		return nil, err
	}
	defer func() { _ = off.Close() }()

	off.Scale(scale, scale)
	draw(off)

	img, err := off.Snapshot()
	if err != nil {
		return nil, err
	}
	c.entry = Entry{Image: img, Scale: scale, Size: size}
	c.builds.Add(1)
	c.log.Debug("cache: raster built",
		slog.String("size", size.String()),
		slog.Float64("scale", scale),
		slog.String("raster", dev.String()))
	return img, nil
}

// Invalidate drops the cached raster. It is safe to call on an empty cache.
func (c *Raster) Invalidate() {
	c.invalidations.Add(1)
	if c.entry.Image != nil {
		c.log.Debug("cache: invalidated", slog.Float64("scale", c.entry.Scale))
	}
	c.entry = Entry{}
}

// Entry returns the current entry.
func (c *Raster) Entry() Entry {
	return c.entry
}

// Valid reports whether Ensure(size, scale, ...) would hit.
func (c *Raster) Valid(size surface.Size, scale float64) bool {
	return c.entry.Valid(size, scale)
}

// Stats returns a snapshot of the counters.
func (c *Raster) Stats() Stats {
	return Stats{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Builds:        c.builds.Load(),
		Invalidations: c.invalidations.Load(),
	}
}

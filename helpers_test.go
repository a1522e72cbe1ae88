package ggscale

import (
	"github.com/gogpu/ggscale/cache"
	"github.com/gogpu/ggscale/recording"
	"github.com/gogpu/ggscale/surface"
)

// fakeHost counts signals, repaint requests and reported errors.
type fakeHost struct {
	paints   int
	draws    int
	repaints int
	errors   []*Error
}

func (h *fakeHost) PaintComplete()         { h.paints++ }
func (h *fakeHost) DrawExecuted()          { h.draws++ }
func (h *fakeHost) RequestRepaint()        { h.repaints++ }
func (h *fakeHost) ReportError(err *Error) { h.errors = append(h.errors, err) }

// offscreens records every off-screen surface the cache allocates.
type offscreens struct {
	recorders []*recording.Recorder
}

func (o *offscreens) add(r *recording.Recorder) {
	o.recorders = append(o.recorders, r)
}

// newTestRenderer returns a renderer whose cache allocates recorders.
func newTestRenderer(h *fakeHost, th Theme, opts ...Option) (*Renderer, *offscreens) {
	offs := &offscreens{}
	rc := cache.New(recording.Allocator(nil, offs.add))
	opts = append([]Option{WithCache(rc), WithErrorReporter(h)}, opts...)
	return NewRenderer(th, h, opts...), offs
}

func failingAllocator(w, h int) (surface.Surface, error) {
	return nil, &surface.AllocError{Width: w, Height: h}
}

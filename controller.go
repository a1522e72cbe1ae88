package ggscale

import (
	"fmt"
	"log/slog"
	"math"
)

// Controller applies host events to the State, invalidating the cache and
// requesting repaints. Every handler finishes invalidating before it
// requests the repaint.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	state    *State
	cache    Invalidator
	repaint  Repainter
	reporter ErrorReporter
	log      *slog.Logger
}

var _ EventHandler = (*Controller)(nil)

// NewController creates a Controller over state. A nil state starts from
// DefaultState.
func NewController(state *State, cache Invalidator, repaint Repainter, opts ...Option) *Controller {
	o := buildOptions(opts)
	if state == nil {
		s := DefaultState()
		state = &s
	}
	return &Controller{
		state:    state,
		cache:    cache,
		repaint:  repaint,
		reporter: o.reporter,
		log:      o.logger,
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return *c.state
}

// OnScaleFactorChange sets the scale factor, clamped to
// [MinScaleFactor, MaxScaleFactor]. NaN and infinite values are reported
// and ignored.
func (c *Controller) OnScaleFactorChange(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		c.report(&Error{
			Op:   "ggscale.OnScaleFactorChange",
			Kind: KindConfiguration,
			Err:  fmt.Errorf("%w: %v", ErrInvalidScale, v),
		})
		return
	}
	clamped := ClampScaleFactor(v)
	if clamped != v {
		c.log.Debug("ggscale: scale factor clamped",
			slog.Float64("requested", v),
			slog.Float64("scale", clamped))
	}
	c.state.ScaleFactor = clamped
	c.invalidate()
	c.requestRepaint()
}

// OnRefreshRequested discards the cached raster and repaints.
func (c *Controller) OnRefreshRequested() {
	c.invalidate()
	c.requestRepaint()
}

// OnHoverEnter shows the hover indicator. The cache stays valid.
func (c *Controller) OnHoverEnter() {
	c.state.HoverIndicatorVisible = true
	c.requestRepaint()
}

// OnHoverLeave hides the hover indicator. The cache stays valid.
func (c *Controller) OnHoverLeave() {
	c.state.HoverIndicatorVisible = false
	c.requestRepaint()
}

// OnDrawModeToggle selects direct drawing (useDirect) or cached mode.
func (c *Controller) OnDrawModeToggle(useDirect bool) {
	c.state.UseCachedImage = !useDirect
	c.invalidate()
	c.requestRepaint()
}

func (c *Controller) invalidate() {
	if c.cache != nil {
		c.cache.Invalidate()
	}
}

func (c *Controller) requestRepaint() {
	if c.repaint != nil {
		c.repaint.RequestRepaint()
	}
}

func (c *Controller) report(err *Error) {
	if c.reporter != nil {
		c.reporter.ReportError(err)
	}
}

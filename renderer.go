package ggscale

import (
	"log/slog"

	"github.com/gogpu/ggscale/cache"
	"github.com/gogpu/ggscale/surface"
)

// Hover indicator geometry in logical units.
const (
	hoverSize  = 10
	hoverInset = 4
)

// Renderer paints the panel onto a visible surface, directly or through
// its raster cache.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	theme    Theme
	signals  Signals
	cache    *cache.Raster
	reporter ErrorReporter
	label    string
	log      *slog.Logger
}

// NewRenderer creates a Renderer. A nil signals discards notifications.
func NewRenderer(theme Theme, signals Signals, opts ...Option) *Renderer {
	o := buildOptions(opts)
	if signals == nil {
		signals = NopSignals{}
	}
	rc := o.cache
	if rc == nil {
		rc = cache.New(o.alloc, cache.WithLogger(o.logger))
	}
	return &Renderer{
		theme:    theme,
		signals:  signals,
		cache:    rc,
		reporter: o.reporter,
		label:    o.label,
		log:      o.logger,
	}
}

// Cache returns the raster cache. Pass it to NewController as the
// Invalidator.
func (r *Renderer) Cache() *cache.Raster {
	return r.cache
}

// Label returns the panel label.
func (r *Renderer) Label() string {
	return r.label
}

// Paint renders one frame onto s.
//
// A surface with a non-positive dimension is reported as a configuration
// error and skipped; nothing is drawn and PaintComplete is not emitted.
// Otherwise the background is cleared and the panel is composited from
// the cache (cached mode) or drawn at 1x (direct mode). If the cache
// cannot be built, the error is reported and the panel is drawn directly
// for this frame. The transform of s is the same after Paint as before.
func (r *Renderer) Paint(s surface.Surface, st State) error {
	size := s.Size()
	if size.Empty() {
		err := &Error{
			Op:   "ggscale.Paint",
			Kind: KindConfiguration,
			Err:  &surface.SizeError{Width: size.W, Height: size.H},
		}
		r.report(err)
		return err
	}

	s.Clear(r.theme.Color(ColorBackground))

	if st.UseCachedImage {
		if err := r.composite(s, size, st.ScaleFactor); err != nil {
			r.report(wrapError("ggscale.Paint", err))
			r.log.Warn("ggscale: drawing directly", slog.String("size", size.String()))
			r.DrawPanel(s, size)
		}
	} else {
		r.DrawPanel(s, size)
	}

	if st.HoverIndicatorVisible {
		r.drawHoverIndicator(s, size)
	}

	r.signals.PaintComplete()
	return nil
}

// composite draws the cached raster for (size, scale) onto s at 1/scale.
func (r *Renderer) composite(s surface.Surface, size surface.Size, scale float64) error {
	img, err := r.cache.Ensure(size, scale, func(off surface.Surface) {
		r.DrawPanel(off, size)
	})
	if err != nil {
		return err
	}

	saved := s.Transform()
	s.Scale(1/scale, 1/scale)
	s.DrawRasterImage(img, 0, 0)
	s.SetTransform(saved)
	return nil
}

// DrawPanel draws the panel content in logical units. logical is the
// nominal size of the visible surface, not the size of s, which may be an
// upscaled off-screen surface.
func (r *Renderer) DrawPanel(s surface.Surface, logical surface.Size) {
	w, h := float64(logical.W), float64(logical.H)

	s.SetLineWidth(1)
	saved := s.Transform()
	s.Translate(1.5, 1.5)
	s.Rectangle(0, 0, w-3, h-3)
	s.SetColor(r.theme.Color(ColorBackground))
	s.FillPreserve()
	s.SetColor(r.theme.Color(ColorForeground))
	s.Stroke()
	s.SetTransform(saved)

	if r.label != "" {
		s.SetFont(r.theme.Font(FontLabel))
		_, th := s.MeasureText(r.label)
		s.SetColor(r.theme.Color(ColorSecondary))
		s.DrawText(r.label, 8, (h-th)/2)
	}

	r.signals.DrawExecuted()
}

// drawHoverIndicator fills a small square near the top-right corner
// under the current transform.
func (r *Renderer) drawHoverIndicator(s surface.Surface, size surface.Size) {
	s.Rectangle(float64(size.W)-hoverInset-hoverSize, hoverInset, hoverSize, hoverSize)
	s.SetColor(r.theme.Color(ColorAccent))
	s.Fill()
}

func (r *Renderer) report(err *Error) {
	if r.reporter != nil {
		r.reporter.ReportError(err)
	}
}

package ggscale

import (
	"image/color"

	"github.com/gogpu/ggscale/text"
)

// Names looked up in the Theme.
const (
	ColorBackground = "background"
	ColorForeground = "foreground"
	ColorSecondary  = "secondary"
	ColorAccent     = "accent"
	FontLabel       = "label"
)

// Theme resolves symbolic colors and fonts. It is consulted on every draw
// and never cached.
type Theme interface {
	Color(name string) color.Color
	Font(name string) text.Font
}

// Signals receives notifications emitted while painting.
type Signals interface {
	// PaintComplete is emitted at the end of every painted frame.
	PaintComplete()
	// DrawExecuted is emitted each time the panel content is drawn.
	DrawExecuted()
}

// Repainter schedules a repaint of the visible surface.
type Repainter interface {
	RequestRepaint()
}

// Invalidator discards cached content. *cache.Raster implements it.
type Invalidator interface {
	Invalidate()
}

// EventHandler handles the events a host delivers.
type EventHandler interface {
	OnScaleFactorChange(v float64)
	OnRefreshRequested()
	OnHoverEnter()
	OnHoverLeave()
	OnDrawModeToggle(useDirect bool)
}

// NopSignals ignores all signals.
type NopSignals struct{}

func (NopSignals) PaintComplete() {}
func (NopSignals) DrawExecuted()  {}

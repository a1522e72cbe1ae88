package host

import "fmt"

// Event is an inbound host event.
type Event interface {
	isEvent()
}

// ScaleFactorEvent sets the cache scale factor.
type ScaleFactorEvent struct {
	Value float64
}

// RefreshEvent discards the cached raster.
type RefreshEvent struct{}

// HoverEvent reports the pointer entering (Inside) or leaving the surface.
type HoverEvent struct {
	Inside bool
}

// DrawModeEvent switches between direct drawing and cached mode.
type DrawModeEvent struct {
	Direct bool
}

// ResizeEvent reallocates the visible surface.
type ResizeEvent struct {
	Width, Height int
}

// PaintEvent requests a repaint without changing anything.
type PaintEvent struct{}

func (ScaleFactorEvent) isEvent() {}
func (RefreshEvent) isEvent()     {}
func (HoverEvent) isEvent()       {}
func (DrawModeEvent) isEvent()    {}
func (ResizeEvent) isEvent()      {}
func (PaintEvent) isEvent()       {}

func (e ScaleFactorEvent) String() string { return fmt.Sprintf("scale(%g)", e.Value) }
func (RefreshEvent) String() string       { return "refresh" }
func (PaintEvent) String() string         { return "paint" }
func (e ResizeEvent) String() string      { return fmt.Sprintf("resize(%dx%d)", e.Width, e.Height) }

func (e HoverEvent) String() string {
	if e.Inside {
		return "hover(enter)"
	}
	return "hover(leave)"
}

func (e DrawModeEvent) String() string {
	if e.Direct {
		return "mode(direct)"
	}
	return "mode(cached)"
}

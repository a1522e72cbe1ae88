package ggscale

import "fmt"

// Scale factor bounds.
const (
	MinScaleFactor     = 0.125
	MaxScaleFactor     = 8.0
	DefaultScaleFactor = 2.0
)

// State is the rendering state. It is changed only by the Controller and
// read by Paint.
type State struct {
	// UseCachedImage selects cached mode. When false, Paint draws directly.
	UseCachedImage bool
	// ScaleFactor is the resolution multiplier of the cached raster, in
	// [MinScaleFactor, MaxScaleFactor].
	ScaleFactor float64
	// HoverIndicatorVisible shows the hover marker.
	HoverIndicatorVisible bool
}

// DefaultState returns cached mode at DefaultScaleFactor with the hover
// indicator hidden.
func DefaultState() State {
	return State{
		UseCachedImage: true,
		ScaleFactor:    DefaultScaleFactor,
	}
}

// ClampScaleFactor limits v to [MinScaleFactor, MaxScaleFactor].
// NaN is returned unchanged.
func ClampScaleFactor(v float64) float64 {
	switch {
	case v < MinScaleFactor:
		return MinScaleFactor
	case v > MaxScaleFactor:
		return MaxScaleFactor
	default:
		return v
	}
}

// Mode returns "cached" or "direct".
func (s State) Mode() string {
	if s.UseCachedImage {
		return "cached"
	}
	return "direct"
}

func (s State) String() string {
	return fmt.Sprintf("%s scale=%g hover=%t", s.Mode(), s.ScaleFactor, s.HoverIndicatorVisible)
}

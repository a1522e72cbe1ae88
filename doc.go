// Package ggscale renders a small UI panel through an upscaled raster
// cache.
//
// # Overview
//
// Content is drawn in logical units by one shared routine, DrawPanel. In
// cached mode the Renderer draws that content once into an off-screen
// surface at ScaleFactor times the logical size, keeps the snapshot, and
// on every repaint composites it back under Scale(1/ScaleFactor). The
// panel is only redrawn when the cache has been invalidated.
//
// # Quick Start
//
//	state := ggscale.DefaultState()
//	r := ggscale.NewRenderer(theme.New(), signals)
//	c := ggscale.NewController(&state, r.Cache(), repainter)
//
//	c.OnScaleFactorChange(3) // invalidates and requests a repaint
//	_ = r.Paint(visible, c.State())
//
// # Invalidation
//
// The Controller handles host events. Scale changes, refresh requests and
// draw-mode toggles clear the cache; hover changes only request a repaint.
// The cache also rebuilds when the logical size changes.
//
// # Threading
//
// Renderer and Controller are not safe for concurrent use. The host
// package runs them on one goroutine and accepts events from any.
package ggscale

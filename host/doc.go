// Package host runs the renderer on a single goroutine.
//
// A Loop owns the State, Controller, Renderer, raster cache and visible
// surface. Other goroutines talk to it only through Post:
//
//	loop, err := host.New(200, 100, theme.New(),
//	    host.WithOnFrame(func(img *surface.RasterImage) { ... }))
//	go loop.Run(ctx)
//
//	loop.Post(host.ScaleFactorEvent{Value: 3})
//	loop.Post(host.HoverEvent{Inside: true})
//
// Each event is handled to completion before any repaint it requested is
// serviced. Repaint requests raised by events that are already queued are
// coalesced into a single paint.
package host

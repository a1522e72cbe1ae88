// Package cache holds the upscaled raster cache.
//
// A Raster keeps at most one Entry: a snapshot of content drawn at
// logical size × scale. Ensure returns the entry while it matches the
// requested (size, scale) and rebuilds it otherwise:
//
//	rc := cache.New(surface.DefaultAllocator)
//	img, err := rc.Ensure(surface.Sz(200, 100), 2, drawPanel) // 400x200 raster
//
// Invalidate drops the entry; the next Ensure redraws.
//
// A Raster is owned by a single goroutine. Stats may be read from any
// goroutine.
package cache

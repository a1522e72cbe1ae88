// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the 2D drawing target used by ggscale.
//
// Surface is a rendering target with an affine transform and a current
// path, in the manner of Cairo. The same drawing code works against:
//
//   - CPU rendering to an *image.RGBA (ImageSurface)
//   - any surface returned by a registered Allocator
//
// # Surface Types
//
//   - ImageSurface: CPU rendering with golang.org/x/image/vector fills
//     and golang.org/x/image/draw resampling
//   - RasterImage: an immutable snapshot produced by Surface.Snapshot
//
// # Registry
//
// Allocators are registered by name and picked by priority:
//
//	surface.Register("mine", 50, func(w, h int) (surface.Surface, error) {
//	    return newMySurface(w, h)
//	}, nil)
//
//	// Later:
//	alloc, err := surface.AllocatorByName("mine")
//
// The "image" allocator is always registered.
//
// # Usage
//
//	s, err := surface.NewImageSurface(800, 600)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	s.Clear(color.White)
//	s.Scale(2, 2)
//	s.Rectangle(100, 100, 200, 100)
//	s.SetColor(color.RGBA{255, 0, 0, 255})
//	s.Fill()
//
//	img, err := s.Snapshot()
//
// # References
//
//   - Cairo: https://cairographics.org/manual/cairo-Image-Surfaces.html
package surface

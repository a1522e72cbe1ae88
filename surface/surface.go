// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image/color"

	"github.com/gogpu/ggscale/text"
)

// Surface is a 2D drawing target with an affine transform.
//
// Geometry passed to drawing methods is in user space and is mapped to
// device pixels by the current transform. Surfaces are NOT thread-safe.
// Each surface should be used from a single goroutine.
//
// Example usage:
//
//	s, err := surface.NewImageSurface(200, 100)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	s.Scale(2, 2)
//	s.Rectangle(10, 10, 50, 20)
//	s.SetColor(color.RGBA{255, 0, 0, 255})
//	s.Fill()
//	img, err := s.Snapshot()
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Size returns the surface size in pixels.
	Size() Size

	// Transform returns the current transform by value.
	Transform() Matrix

	// SetTransform replaces the current transform. Nothing else about
	// the drawing state changes.
	SetTransform(m Matrix)

	// Scale prepends a scale to the current transform.
	Scale(sx, sy float64)

	// Translate prepends a translation to the current transform.
	Translate(dx, dy float64)

	// SetColor sets the color used by Fill, Stroke and DrawText.
	SetColor(c color.Color)

	// SetLineWidth sets the stroke width in user units.
	SetLineWidth(w float64)

	// SetFont sets the font used by MeasureText and DrawText.
	SetFont(f text.Font)

	// Rectangle appends a closed rectangle to the current path.
	Rectangle(x, y, w, h float64)

	// Fill fills the current path and clears it.
	Fill()

	// FillPreserve fills the current path and keeps it.
	FillPreserve()

	// Stroke strokes the current path and clears it.
	Stroke()

	// Clear fills the whole pixel area with c, ignoring the transform.
	Clear(c color.Color)

	// MeasureText returns the extent of s in user units.
	MeasureText(s string) (w, h float64)

	// DrawText draws s with the top-left corner of its line box at
	// (x, y) in user space.
	DrawText(s string, x, y float64)

	// DrawRasterImage draws img at its native pixel size, with its
	// top-left corner at (x, y), under the current transform.
	DrawRasterImage(img *RasterImage, x, y float64)

	// Snapshot finalizes the drawn content into an immutable image.
	Snapshot() (*RasterImage, error)

	// Close releases all resources associated with the surface.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// Allocator creates a surface with the given pixel size.
// Implementations return *SizeError for non-positive sizes and
// *AllocError when the raster cannot be allocated.
type Allocator func(width, height int) (Surface, error)

// DefaultAllocator allocates CPU image surfaces.
func DefaultAllocator(width, height int) (Surface, error) {
	s, err := NewImageSurface(width, height)
	if err != nil {
		return nil, err
	}
	return s, nil
}

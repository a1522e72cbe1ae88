// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/png"
	"io"
)

// RasterImage is an immutable pixel snapshot of drawn content.
//
// A RasterImage is produced by Surface.Snapshot and owns its pixels
// exclusively; nothing writes to them after creation.
type RasterImage struct {
	img *image.RGBA
}

// NewRasterImage wraps img. Ownership of img transfers to the
// RasterImage; the caller must not modify it afterwards.
func NewRasterImage(img *image.RGBA) *RasterImage {
	return &RasterImage{img: img}
}

// Width returns the image width in pixels.
func (r *RasterImage) Width() int {
	return r.img.Bounds().Dx()
}

// Height returns the image height in pixels.
func (r *RasterImage) Height() int {
	return r.img.Bounds().Dy()
}

// Size returns the pixel size of the image.
func (r *RasterImage) Size() Size {
	return Size{W: r.Width(), H: r.Height()}
}

// Bounds returns the image bounds.
func (r *RasterImage) Bounds() image.Rectangle {
	return r.img.Bounds()
}

// Image returns a read-only view of the pixels.
func (r *RasterImage) Image() image.Image {
	return r.img
}

// RGBAAt returns the pixel at (x, y).
func (r *RasterImage) RGBAAt(x, y int) (red, green, blue, alpha uint8) {
	c := r.img.RGBAAt(x, y)
	return c.R, c.G, c.B, c.A
}

// EncodePNG writes the image to w in PNG format.
func (r *RasterImage) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

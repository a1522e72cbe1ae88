// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/ggscale/text"
)

// MaxPixels is the largest raster NewImageSurface will allocate.
// Larger requests fail with *AllocError instead of exhausting memory.
var MaxPixels int64 = 1 << 26

// maxDeviceCoord bounds coordinates handed to the rasterizer.
const maxDeviceCoord = 1 << 20

// ImageSurface is a CPU-based surface that renders to an *image.RGBA.
//
// Fills are rasterized with golang.org/x/image/vector, which gives
// analytic anti-aliasing. Strokes are expanded into filled outlines
// first. Raster images are resampled with golang.org/x/image/draw.
//
// Example:
//
//	s, _ := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.Clear(color.White)
//	s.Rectangle(100, 100, 200, 100)
//	s.SetColor(color.RGBA{255, 0, 0, 255})
//	s.Fill()
//
//	img, _ := s.Snapshot()
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA

	ctm       Matrix
	path      *Path
	color     color.Color
	lineWidth float64
	font      text.Font

	// z is created on first use and reset for every fill.
	z *vector.Rasterizer

	closed bool
}

// NewImageSurface creates a new CPU-based surface with the given dimensions.
//
// Non-positive dimensions return a *SizeError. Rasters larger than
// MaxPixels, or ones the runtime refuses to allocate, return an *AllocError.
func NewImageSurface(width, height int) (*ImageSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, &SizeError{Width: width, Height: height}
	}
	if px := int64(width) * int64(height); px > MaxPixels {
		return nil, &AllocError{
			Width:  width,
			Height: height,
			Err:    fmt.Errorf("%d pixels exceeds limit of %d", px, MaxPixels),
		}
	}

	img, err := allocRGBA(width, height)
	if err != nil {
		return nil, err
	}
	return newImageSurface(img), nil
}

func newImageSurface(img *image.RGBA) *ImageSurface {
	return &ImageSurface{
		width:     img.Bounds().Dx(),
		height:    img.Bounds().Dy(),
		img:       img,
		ctm:       Identity(),
		path:      NewPath(),
		color:     color.Black,
		lineWidth: 1,
		font:      text.Font{Source: text.Default(), Size: 12},
	}
}

func allocRGBA(w, h int) (img *image.RGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &AllocError{Width: w, Height: h, Err: fmt.Errorf("%v", r)}
		}
	}()
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Size returns the surface size.
func (s *ImageSurface) Size() Size {
	return Size{W: s.width, H: s.height}
}

// Transform returns the current transform.
func (s *ImageSurface) Transform() Matrix {
	return s.ctm
}

// SetTransform replaces the current transform.
func (s *ImageSurface) SetTransform(m Matrix) {
	s.ctm = m
}

// Scale prepends a scale to the current transform.
func (s *ImageSurface) Scale(sx, sy float64) {
	s.ctm = s.ctm.Multiply(ScaleMatrix(sx, sy))
}

// Translate prepends a translation to the current transform.
func (s *ImageSurface) Translate(dx, dy float64) {
	s.ctm = s.ctm.Multiply(TranslateMatrix(dx, dy))
}

// SetColor sets the current drawing color.
func (s *ImageSurface) SetColor(c color.Color) {
	if c == nil {
		c = color.Transparent
	}
	s.color = c
}

// SetLineWidth sets the line width for stroking.
func (s *ImageSurface) SetLineWidth(w float64) {
	s.lineWidth = w
}

// SetFont sets the current font.
func (s *ImageSurface) SetFont(f text.Font) {
	s.font = f
}

// Rectangle appends a closed rectangle to the current path.
func (s *ImageSurface) Rectangle(x, y, w, h float64) {
	s.path.Rectangle(x, y, w, h)
}

// Fill fills the current path using the nonzero rule and clears it.
func (s *ImageSurface) Fill() {
	s.fill()
	s.path.Clear()
}

// FillPreserve fills the current path without clearing it.
func (s *ImageSurface) FillPreserve() {
	s.fill()
}

// Stroke strokes the current path and clears it.
func (s *ImageSurface) Stroke() {
	defer s.path.Clear()
	if s.closed || s.path.IsEmpty() || !(s.lineWidth > 0) {
		return
	}

	s.resetRasterizer()
	n := 0
	for _, sp := range s.path.Subpaths() {
		expandStroke(sp, s.lineWidth/2, func(q [4]Point) {
			s.addPolygon(q[:])
			n++
		})
	}
	if n > 0 {
		s.paint()
	}
}

func (s *ImageSurface) fill() {
	if s.closed || s.path.IsEmpty() {
		return
	}

	s.resetRasterizer()
	n := 0
	for _, sp := range s.path.Subpaths() {
		if len(sp.Points) < 3 {
			continue
		}
		s.addPolygon(sp.Points)
		n++
	}
	if n > 0 {
		s.paint()
	}
}

func (s *ImageSurface) resetRasterizer() {
	if s.z == nil {
		s.z = vector.NewRasterizer(s.width, s.height)
	} else {
		s.z.Reset(s.width, s.height)
	}
	s.z.DrawOp = draw.Over
}

// addPolygon maps a closed user-space polygon to device space and adds
// it to the rasterizer.
func (s *ImageSurface) addPolygon(pts []Point) {
	p := s.ctm.TransformPoint(pts[0])
	s.z.MoveTo(deviceCoord(p.X), deviceCoord(p.Y))
	for _, pt := range pts[1:] {
		p = s.ctm.TransformPoint(pt)
		s.z.LineTo(deviceCoord(p.X), deviceCoord(p.Y))
	}
	s.z.ClosePath()
}

func (s *ImageSurface) paint() {
	s.z.Draw(s.img, s.img.Bounds(), image.NewUniform(s.color), image.Point{})
}

// Clear fills the entire surface with the given color.
func (s *ImageSurface) Clear(c color.Color) {
	if s.closed {
		return
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// MeasureText returns the extent of str in user units.
func (s *ImageSurface) MeasureText(str string) (w, h float64) {
	return s.font.Measure(str)
}

// DrawText draws str with its line box's top-left corner at (x, y).
//
// The font is rasterized at its size times the transform's scale, so
// text on an upscaled surface keeps full glyph detail. Axis-aligned
// uniform transforms draw directly; anything else goes through an
// intermediate image that is resampled with the full transform.
func (s *ImageSurface) DrawText(str string, x, y float64) {
	if s.closed || str == "" || !s.font.Valid() {
		return
	}
	k := s.ctm.ScaleFactor()
	if !(k > 0) {
		return
	}

	if s.ctm.IsAxisAligned() && s.ctm.A == s.ctm.E {
		p := s.ctm.TransformPoint(Pt(x, y))
		if err := s.font.Draw(s.img, str, p.X, p.Y, s.color, k); err != nil {
			return
		}
		return
	}

	w, h := s.font.Measure(str)
	tw, th := int(math.Ceil(w*k))+1, int(math.Ceil(h*k))+1
	tmp, err := allocRGBA(tw, th)
	if err != nil {
		return
	}
	if err := s.font.Draw(tmp, str, 0, 0, s.color, k); err != nil {
		return
	}
	m := s.ctm.Multiply(TranslateMatrix(x, y)).Multiply(ScaleMatrix(1/k, 1/k))
	xdraw.CatmullRom.Transform(s.img, m.Aff3(), tmp, tmp.Bounds(), xdraw.Over, nil)
}

// DrawRasterImage draws img at its native pixel size under the current
// transform.
func (s *ImageSurface) DrawRasterImage(img *RasterImage, x, y float64) {
	if s.closed || img == nil {
		return
	}
	src := img.Image()
	sr := src.Bounds()
	m := s.ctm.Multiply(TranslateMatrix(x, y))

	if m.IsIntegerTranslation() {
		dp := image.Pt(int(m.C), int(m.F))
		draw.Draw(s.img, sr.Sub(sr.Min).Add(dp), src, sr.Min, draw.Over)
		return
	}
	// The destination is not rounded: a ceil(w*k) raster drawn at 1/k
	// spans a fractional number of pixels.
	xdraw.CatmullRom.Transform(s.img, m.Aff3(), src, sr, xdraw.Over, nil)
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() (*RasterImage, error) {
	if s.closed {
		return nil, ErrClosed
	}
	dst, err := allocRGBA(s.width, s.height)
	if err != nil {
		return nil, err
	}
	copy(dst.Pix, s.img.Pix)
	return NewRasterImage(dst), nil
}

// Image returns the underlying image.RGBA.
// This is a direct reference, not a copy.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Close releases resources associated with the surface.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.img = nil
	s.z = nil
	s.path = NewPath()
	return nil
}

func deviceCoord(v float64) float32 {
	if v != v {
		return 0
	}
	return float32(max(-maxDeviceCoord, min(maxDeviceCoord, v)))
}

// Verify ImageSurface implements Surface interface.
var _ Surface = (*ImageSurface)(nil)

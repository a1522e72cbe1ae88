package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Font selects a FontSource at a size in user units.
// The zero Font is invalid; surfaces skip text drawn with it.
type Font struct {
	Source *FontSource
	Size   float64
}

// Valid reports whether f can measure and draw.
func (f Font) Valid() bool {
	return f.Source != nil && f.Size > 0 && !math.IsInf(f.Size, 1)
}

// Measure returns the advance width of s and the height of its line box
// (ascent plus descent), in user units.
func (f Font) Measure(s string) (w, h float64) {
	if !f.Valid() {
		return 0, 0
	}
	m, err := f.Source.metrics(f.Size)
	if err != nil {
		return 0, 0
	}
	return f.Source.advance(s, f.Size), m.Height()
}

// Metrics returns the font metrics in user units.
func (f Font) Metrics() Metrics {
	if !f.Valid() {
		return Metrics{}
	}
	m, err := f.Source.metrics(f.Size)
	if err != nil {
		return Metrics{}
	}
	return m
}

// Draw renders s into dst with glyphs of Size*scale pixels. (x, y) is the
// top-left corner of the line box in dst pixels.
func (f Font) Draw(dst draw.Image, s string, x, y float64, col color.Color, scale float64) error {
	if !f.Valid() || !(scale > 0) {
		return ErrNoFont
	}
	if s == "" {
		return nil
	}

	src := f.Source
	src.mu.Lock()
	defer src.mu.Unlock()

	face, err := src.face(f.Size * scale)
	if err != nil {
		return err
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: toFixed(x),
			Y: toFixed(y) + face.Metrics().Ascent,
		},
	}
	d.DrawString(s)
	return nil
}

func (f Font) String() string {
	if f.Source == nil {
		return "<no font>"
	}
	return fmt.Sprintf("%s %gpt", f.Source.Name(), f.Size)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"math"
)

// Point represents a 2D point with float64 coordinates.
type Point struct {
	X, Y float64
}

// Pt creates a Point from x, y coordinates.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Size is a pixel size. Hosts supply it for every paint; it may change
// between calls.
type Size struct {
	W, H int
}

// Sz creates a Size.
func Sz(w, h int) Size {
	return Size{W: w, H: h}
}

// Empty reports whether either dimension is non-positive.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Scaled returns the size multiplied by k, rounded up so no drawn sample
// falls outside the grid. A tiny tolerance absorbs float error, so
// 10*0.3 yields 3 rather than 4.
func (s Size) Scaled(k float64) Size {
	return Size{W: scaleDim(s.W, k), H: scaleDim(s.H, k)}
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

func scaleDim(v int, k float64) int {
	return int(math.Ceil(float64(v)*k - 1e-9))
}

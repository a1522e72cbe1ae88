// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// Matrix is a value type. Saving a transform is a plain copy and
// restoring it is an assignment; no operation mutates a Matrix in place.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// TranslateMatrix creates a translation matrix.
func TranslateMatrix(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// ScaleMatrix creates a scaling matrix.
func ScaleMatrix(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// RotateMatrix creates a rotation matrix (angle in radians).
func RotateMatrix(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Multiply returns m * other. Applied to a point, other acts first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse matrix and whether m was invertible.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Determinant()
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}

	invDet := 1.0 / det
	return Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}, true
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsAxisAligned reports whether the matrix is a scale plus translation
// with positive scale factors.
func (m Matrix) IsAxisAligned() bool {
	return m.B == 0 && m.D == 0 && m.A > 0 && m.E > 0
}

// IsIntegerTranslation reports whether the matrix only translates by
// whole pixels.
func (m Matrix) IsIntegerTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1 &&
		m.C == math.Trunc(m.C) && m.F == math.Trunc(m.F)
}

// ScaleFactor returns the average linear scale of the matrix,
// sqrt(|det|). Text and stroke quality decisions are based on it.
func (m Matrix) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}

// ApproxEqual reports whether every component of m and other differs by
// at most eps.
func (m Matrix) ApproxEqual(other Matrix, eps float64) bool {
	return math.Abs(m.A-other.A) <= eps && math.Abs(m.B-other.B) <= eps &&
		math.Abs(m.C-other.C) <= eps && math.Abs(m.D-other.D) <= eps &&
		math.Abs(m.E-other.E) <= eps && math.Abs(m.F-other.F) <= eps
}

// Aff3 converts the matrix to the source-to-destination form used by
// golang.org/x/image/draw.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}

func (m Matrix) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g]", m.A, m.B, m.C, m.D, m.E, m.F)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "math"

// zeroLength is the shortest segment that contributes to a stroke.
const zeroLength = 1e-10

// expandStroke turns every segment of sp into a filled quad of width
// 2*halfWidth and passes it to emit, in user space.
//
// Segment ends that meet another segment are extended by halfWidth
// along the segment, so joins are square: exact miters for right
// angles, slightly bevelled otherwise. Free ends of open subpaths get
// butt caps. All quads share one orientation, so their overlaps
// saturate instead of cancelling under the nonzero rule.
func expandStroke(sp Subpath, halfWidth float64, emit func(q [4]Point)) {
	pts := sp.Points
	n := len(pts)
	if n < 2 || !(halfWidth > 0) {
		return
	}

	segs := n - 1
	if sp.Closed && pts[0] != pts[n-1] {
		segs = n
	}

	for i := range segs {
		a, b := pts[i], pts[(i+1)%n]
		dx, dy := b.X-a.X, b.Y-a.Y
		length := math.Hypot(dx, dy)
		if length < zeroLength {
			continue
		}

		// tangent and normal, both halfWidth long
		tx, ty := dx/length*halfWidth, dy/length*halfWidth
		nx, ny := -ty, tx

		if sp.Closed || i > 0 {
			a = Point{X: a.X - tx, Y: a.Y - ty}
		}
		if sp.Closed || i < segs-1 {
			b = Point{X: b.X + tx, Y: b.Y + ty}
		}

		emit([4]Point{
			{X: a.X + nx, Y: a.Y + ny},
			{X: b.X + nx, Y: b.Y + ny},
			{X: b.X - nx, Y: b.Y - ny},
			{X: a.X - nx, Y: a.Y - ny},
		})
	}
}

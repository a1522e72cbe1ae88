// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "math"

// Path is a polyline path in user space. It is the current path of a
// Surface: Rectangle appends to it, Fill and Stroke consume it.
//
// Example:
//
//	p := surface.NewPath()
//	p.MoveTo(100, 100)
//	p.LineTo(200, 100)
//	p.LineTo(150, 200)
//	p.Close()
type Path struct {
	subpaths []Subpath
}

// Subpath is a connected run of points.
type Subpath struct {
	Points []Point
	Closed bool
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{subpaths: make([]Subpath, 0, 4)}
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float64) {
	p.subpaths = append(p.subpaths, Subpath{Points: []Point{{X: x, Y: y}}})
}

// LineTo adds a line to the current subpath.
// If there is no current subpath, this acts as MoveTo.
func (p *Path) LineTo(x, y float64) {
	if len(p.subpaths) == 0 || p.current().Closed {
		p.MoveTo(x, y)
		return
	}
	sp := p.current()
	sp.Points = append(sp.Points, Point{X: x, Y: y})
}

// Close closes the current subpath.
func (p *Path) Close() {
	if len(p.subpaths) == 0 {
		return
	}
	p.current().Closed = true
}

// Rectangle adds a closed rectangle subpath.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Clear removes all subpaths.
func (p *Path) Clear() {
	p.subpaths = p.subpaths[:0]
}

// IsEmpty reports whether the path has no drawable segment.
func (p *Path) IsEmpty() bool {
	for _, sp := range p.subpaths {
		if len(sp.Points) > 1 {
			return false
		}
	}
	return true
}

// Subpaths returns the subpaths. The slice must not be modified.
func (p *Path) Subpaths() []Subpath {
	return p.subpaths
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	c := &Path{subpaths: make([]Subpath, len(p.subpaths))}
	for i, sp := range p.subpaths {
		c.subpaths[i] = Subpath{
			Points: append([]Point(nil), sp.Points...),
			Closed: sp.Closed,
		}
	}
	return c
}

// Bounds returns the bounding box of all points.
// An empty path returns all zeros.
func (p *Path) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	n := 0
	for _, sp := range p.subpaths {
		for _, pt := range sp.Points {
			minX = min(minX, pt.X)
			minY = min(minY, pt.Y)
			maxX = max(maxX, pt.X)
			maxY = max(maxY, pt.Y)
			n++
		}
	}
	if n == 0 {
		return 0, 0, 0, 0
	}
	return minX, minY, maxX, maxY
}

func (p *Path) current() *Subpath {
	return &p.subpaths[len(p.subpaths)-1]
}

// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package curvepath builds the polyline that visualizes the control
// points of the hue curve, bridging the 0/360 seam with ghost copies
// of the end points so that the line reads as continuous across it.
package curvepath

import (
	"strconv"
	"strings"

	"cogentcore.org/huecurve/angle"
	"cogentcore.org/huecurve/anim"
	"cogentcore.org/huecurve/hue"
	"cogentcore.org/huecurve/mapping"
)

// Path is an open polyline: a MoveTo the first vertex followed by a
// LineTo each of the others. It is never closed.
type Path struct {
	Vertices []mapping.Point
}

// Empty returns whether the path has no vertices.
func (p Path) Empty() bool {
	return len(p.Vertices) == 0
}

// Len returns the number of vertices.
func (p Path) Len() int {
	return len(p.Vertices)
}

// SVG returns the path as SVG path data ("M x y L x y ...").
func (p Path) SVG() string {
	var b strings.Builder
	for i, v := range p.Vertices {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(strconv.FormatFloat(v.X, 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(v.Y, 'f', -1, 64))
	}
	return b.String()
}

// Vertices returns the evaluated points along the path, including the
// ghost copies: sorted ascending by normalized angle (stable), preceded
// by a copy of the last point at angle-360 when the seam must be bridged,
// and always followed by a copy of the first point at angle+360.
func Vertices(ps hue.Points, t anim.Time) []hue.Evaluated {
	sorted := ps.Sorted(t)
	n := len(sorted)
	if n == 0 {
		return nil
	}
	first, last := sorted[0], sorted[n-1]
	ext := make([]hue.Evaluated, 0, n+2)
	if angle.Normalize(first.Angle-last.Angle) > 0 {
		ghost := last
		ghost.Angle -= angle.Full
		ext = append(ext, ghost)
	}
	ext = append(ext, sorted...)
	ghost := first
	ghost.Angle += angle.Full
	return append(ext, ghost)
}

// Build returns the visualization path of the points at the given
// time, mapped onto the canvas in the given mode. Zero points give
// an empty path.
func Build(ps hue.Points, t anim.Time, mode mapping.Modes, c mapping.Canvas) Path {
	vs := Vertices(ps, t)
	if len(vs) == 0 {
		return Path{}
	}
	p := Path{Vertices: make([]mapping.Point, len(vs))}
	for i, v := range vs {
		p.Vertices[i] = mapping.Map(mode, v.Angle, v.Luminance, v.Saturation, v.HueShift, c)
	}
	return p
}

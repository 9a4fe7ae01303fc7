// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package drag computes the new baseline values of a control point
// that is dragged on the editor canvas, keeping the point between its
// circular neighbors on the hue circle.
package drag

import (
	"fmt"
	"math"

	"cogentcore.org/huecurve/angle"
	"cogentcore.org/huecurve/anim"
	"cogentcore.org/huecurve/hue"
	"cogentcore.org/huecurve/mapping"
)

// Input is a single drag step.
type Input struct {
	// Points is the current point set.
	Points hue.Points

	// ID identifies the dragged point.
	ID uint64

	// DX and DY are the pointer movement in pixels since the last step.
	DX, DY float64

	// Canvas is the editing area.
	Canvas mapping.Canvas

	// Mode selects the value moved by DY.
	Mode mapping.Modes

	// Time is the frame at which the point is shown.
	Time anim.Time
}

// Result holds the new baseline values of the dragged point.
type Result struct {
	// ID identifies the dragged point.
	ID uint64

	// Angle is the new baseline angle, constrained between the neighbors.
	Angle float64

	// Field is the field controlled by the mode.
	Field hue.Fields

	// Value is the new baseline value of Field.
	Value float64

	// Range is the neighbor range the angle was constrained to.
	Range angle.Range
}

// Solve computes the result of one drag step. It returns an error
// if the point is not in the set or the canvas is invalid, in which
// case the edit must be skipped.
func Solve(in Input) (Result, error) {
	if err := in.Canvas.Check(); err != nil {
		return Result{}, err
	}
	p := in.Points.ByID(in.ID)
	if p == nil {
		return Result{}, fmt.Errorf("drag: point %d not found", in.ID)
	}
	cur := angle.Normalize(in.Time.Eval(p.Angle))
	x := mapping.X(cur, in.Canvas) + in.DX
	x = math.Min(math.Max(x, 0), in.Canvas.Width)
	candidate := mapping.AngleAt(x, in.Canvas)

	rng := NeighborRange(in.Points, in.ID, in.Time)
	res := Result{ID: in.ID, Field: in.Mode.Field(), Range: rng}
	res.Angle = rng.Constrain(candidate)

	y := mapping.Y(in.Mode, p.Baseline(hue.Luminance), p.Baseline(hue.Saturation), p.Baseline(hue.HueShift), in.Canvas) + in.DY
	y = math.Min(math.Max(y, 0), in.Canvas.Height)
	res.Value = mapping.ValueAt(in.Mode, y, in.Canvas)
	return res, nil
}

// NeighborRange returns the range between the circular predecessor and
// successor of the point with the given ID, evaluated at the given time.
// With fewer than two other points there is nothing to stay between,
// and the full circle is returned.
func NeighborRange(ps hue.Points, id uint64, t anim.Time) angle.Range {
	if len(ps) < 3 {
		return angle.FullRange
	}
	sorted := ps.Sorted(t)
	idx := -1
	angles := make([]float64, len(sorted))
	for i, ev := range sorted {
		angles[i] = ev.Angle
		if ev.ID == id {
			idx = i
		}
	}
	if idx < 0 {
		return angle.FullRange
	}
	pred, succ := angle.Neighbors(angles, idx)
	return angle.Range{Min: pred, Max: succ}
}

// Apply returns a new point set in which the dragged point has the
// baseline values of the result, the value limited to the editing range
// of its curve. The baseline of each curve is moved;
// keys are never added. The set is returned unchanged if the point is gone.
func Apply(ps hue.Points, res Result) hue.Points {
	p := ps.ByID(res.ID)
	if p == nil {
		return ps
	}
	np := p.WithBaseline(hue.Angle, res.Angle)
	c := np.Curve(res.Field)
	c.SetBaseline(c.Clamp(res.Value))
	return ps.Replace(np)
}

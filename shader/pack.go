// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shader packs the animated state of the hue correction effect
// into the fixed-capacity parameter block of the GPU kernel, and
// provides the kernel resources themselves.
package shader

import (
	"log/slog"

	"cogentcore.org/huecurve/anim"
	"cogentcore.org/huecurve/hue"
	"github.com/chewxy/math32"
)

// Pack evaluates the snapshot at the given time and returns the
// parameter block. Points are sorted by normalized angle (stable) and
// only the first [MaxPoints] are kept; likewise only the first
// [MaxIgnoredColors] ignored colors are kept. Unused point slots are
// [NeutralPoint] and unused color slots are transparent.
func Pack(s *hue.Snapshot, t anim.Time) Params {
	var p Params
	for i := range p.Points {
		p.Points[i] = NeutralPoint
	}
	if s == nil {
		return p
	}

	evs := s.Points.Sorted(t)
	if n := len(evs); n > MaxPoints {
		slog.Debug("shader.Pack: control points beyond capacity are dropped", "count", n, "dropped", n-MaxPoints)
	}
	p.NumPoints = int32(min(len(evs), MaxPoints))
	for i := range int(p.NumPoints) {
		ev := &evs[i]
		p.Points[i] = Point{
			Angle:      float32(ev.Angle),
			HueShift:   float32(ev.HueShift),
			Saturation: nonNegative(ev.Saturation),
			Luminance:  nonNegative(ev.Luminance),
		}
	}

	p.Factor = unit(evalOr(s.Factor, t, 1))
	p.ColorTolerance = unit(evalOr(s.Tolerance, t, 0))

	ics := s.IgnoredColors
	if n := len(ics); n > MaxIgnoredColors {
		slog.Debug("shader.Pack: ignored colors beyond capacity are dropped", "count", n, "dropped", n-MaxIgnoredColors)
	}
	p.NumIgnoredColors = int32(min(len(ics), MaxIgnoredColors))
	for i := range int(p.NumIgnoredColors) {
		c := ics[i].Clamped()
		p.IgnoredColors[i] = [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
	}
	return p
}

// evalOr evaluates e at t, or returns def if e is nil.
func evalOr(e *anim.Curve, t anim.Time, def float64) float64 {
	if e == nil {
		return def
	}
	return t.Eval(e)
}

// nonNegative converts to float32 clamped to >= 0; NaN becomes 0.
func nonNegative(v float64) float32 {
	f := float32(v)
	if math32.IsNaN(f) {
		return 0
	}
	return math32.Max(f, 0)
}

// unit converts to float32 clamped to [0, 1]; NaN becomes 0.
func unit(v float64) float32 {
	f := float32(v)
	if math32.IsNaN(f) {
		return 0
	}
	return math32.Min(math32.Max(f, 0), 1)
}

// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mapping converts between the semantic values of a control
// point (angle and the value of the current mode) and 2D pixel
// coordinates on the editor canvas. Angle maps linearly onto x, and
// the mode value maps onto y around the vertical center, which is the
// neutral value (1 for luminance and saturation, 0 for hue shift).
package mapping

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned for malformed conversion input:
// non-finite values or a non-positive canvas size.
var ErrInvalidInput = errors.New("mapping: invalid conversion input")

// Point is a position on the canvas, in pixels.
type Point struct {
	X, Y float64
}

// Canvas is the size of the editing area, in pixels.
type Canvas struct {
	Width, Height float64
}

// Check returns [ErrInvalidInput] if the canvas cannot be mapped onto.
func (c Canvas) Check() error {
	if !finite(c.Width) || !finite(c.Height) || c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: canvas %gx%g", ErrInvalidInput, c.Width, c.Height)
	}
	return nil
}

// Center returns the y coordinate of the neutral value.
func (c Canvas) Center() float64 {
	return c.Height / 2
}

// Map returns the canvas position of a point with the given angle and
// values in the given mode. Only the value selected by the mode affects y.
// Malformed input yields the neutral zero [Point] rather than an error.
func Map(mode Modes, angle, luminance, saturation, hueShift float64, c Canvas) Point {
	if c.Check() != nil || !allFinite(angle, luminance, saturation, hueShift) {
		return Point{}
	}
	return Point{X: X(angle, c), Y: Y(mode, luminance, saturation, hueShift, c)}
}

// X returns the x coordinate of the given angle: angle / 360 * width.
// It is not clamped, so angles outside [0, 360] map off the canvas.
func X(angle float64, c Canvas) float64 {
	if c.Check() != nil || !finite(angle) {
		return 0
	}
	return angle / 360 * c.Width
}

// Y returns the y coordinate of the mode value, clamped to [0, height].
func Y(mode Modes, luminance, saturation, hueShift float64, c Canvas) float64 {
	if c.Check() != nil || !allFinite(luminance, saturation, hueShift) {
		return 0
	}
	center := c.Center()
	r := mode.offsetRatio(luminance, saturation, hueShift)
	return clamp(center-r*center, 0, c.Height)
}

// ValueY returns the y coordinate of a single value of the given mode.
func ValueY(mode Modes, value float64, c Canvas) float64 {
	return Y(mode, value, value, value, c)
}

// AngleAt returns the angle at the given x coordinate: x / width * 360.
func AngleAt(x float64, c Canvas) float64 {
	if c.Check() != nil || !finite(x) {
		return 0
	}
	return x / c.Width * 360
}

// ValueAt returns the value of the given mode at the given y coordinate,
// clamped to the valid range of the mode. It is the inverse of [Y] for
// values within that range.
func ValueAt(mode Modes, y float64, c Canvas) float64 {
	if c.Check() != nil || !finite(y) {
		return 0
	}
	center := c.Center()
	return mode.valueAt((center - y) / center)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func allFinite(vs ...float64) bool {
	for _, v := range vs {
		if !finite(v) {
			return false
		}
	}
	return true
}

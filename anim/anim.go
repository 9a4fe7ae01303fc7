// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package anim provides animated scalar values, evaluated at a frame
// of a timeline item. Consumers only rely on the [Evaluator] contract:
// a pure, deterministic function of (frame, length, fps).
package anim

import (
	"math"
	"slices"
	"strconv"

	"cogentcore.org/huecurve/base/errors"
	"github.com/jinzhu/copier"
)

// Evaluator is anything that yields a value at a given frame of an item
// of the given length (in frames) playing at the given frames per second.
// Evaluate must be pure and deterministic.
type Evaluator interface {
	Evaluate(frame, length, fps int) float64
}

// Time is a position on the timeline at which to evaluate curves.
type Time struct {
	// Frame is the current frame, relative to the start of the item.
	Frame int

	// Length is the total length of the item, in frames.
	Length int

	// FPS is the frame rate.
	FPS int
}

// Eval evaluates the given evaluator at this time.
func (t Time) Eval(e Evaluator) float64 {
	return e.Evaluate(t.Frame, t.Length, t.FPS)
}

// Progress returns the fraction of the item that has been played,
// which is 0 when Length is not positive.
func (t Time) Progress() float64 {
	if t.Length <= 0 {
		return 0
	}
	return float64(t.Frame) / float64(t.Length)
}

// Interps are the ways a [Curve] moves between its values.
type Interps int32

const (
	// Linear interpolates linearly between neighboring values.
	Linear Interps = iota

	// Constant holds each value until the next key.
	Constant
)

// String returns the name of the interpolation.
func (i Interps) String() string {
	switch i {
	case Linear:
		return "Linear"
	case Constant:
		return "Constant"
	}
	return "Interps(" + strconv.Itoa(int(i)) + ")"
}

// Curve is the default [Evaluator]: a baseline value plus optional
// keyed values. Values[0] is the baseline, sitting at frame 0.
// When there is more than one value, Values[1:len-1] sit at the
// frames listed in Keys, and the last value sits at the end of the item.
type Curve struct {

	// Values are the samples of the curve; Values[0] is the baseline.
	Values []float64 `json:"values" yaml:"values" toml:"values"`

	// Keys are the frames of the intermediate values, ascending.
	Keys []int `json:"keys,omitempty" yaml:"keys,omitempty" toml:"keys,omitempty"`

	// Interp is the interpolation between values.
	Interp Interps `json:"interp,omitempty" yaml:"interp,omitempty" toml:"interp,omitempty"`

	// Min is the lower end of the editing range for this value.
	Min float64 `json:"min" yaml:"min" toml:"min"`

	// Max is the upper end of the editing range for this value.
	Max float64 `json:"max" yaml:"max" toml:"max"`
}

// New returns a new constant [Curve] with the given baseline value
// and editing range.
func New(value, min, max float64) *Curve {
	return &Curve{Values: []float64{value}, Min: min, Max: max}
}

// Baseline returns the constant (frame 0) sample, used when unanimated.
func (c *Curve) Baseline() float64 {
	if c == nil || len(c.Values) == 0 {
		return 0
	}
	return c.Values[0]
}

// SetBaseline sets the baseline sample. It does not add a key.
func (c *Curve) SetBaseline(v float64) {
	if len(c.Values) == 0 {
		c.Values = []float64{v}
		return
	}
	c.Values[0] = v
}

// WithBaseline returns a deep copy of the curve with the baseline
// sample set to v.
func (c *Curve) WithBaseline(v float64) *Curve {
	nc := c.Clone()
	nc.SetBaseline(v)
	return nc
}

// IsAnimated returns whether the curve has more than one value.
func (c *Curve) IsAnimated() bool {
	return c != nil && len(c.Values) > 1
}

// Clamp returns v limited to the editing range of the curve.
func (c *Curve) Clamp(v float64) float64 {
	if c.Max <= c.Min {
		return v
	}
	return math.Min(math.Max(v, c.Min), c.Max)
}

// Clone returns a deep copy of the curve that shares no memory with it.
func (c *Curve) Clone() *Curve {
	if c == nil {
		return nil
	}
	nc := &Curve{}
	errors.Log(copier.CopyWithOption(nc, c, copier.Option{DeepCopy: true}))
	return nc
}

// Equal returns whether the two curves have the same content.
func (c *Curve) Equal(o *Curve) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.Interp == o.Interp && c.Min == o.Min && c.Max == o.Max &&
		slices.Equal(c.Values, o.Values) && slices.Equal(c.Keys, o.Keys)
}

// Evaluate implements [Evaluator]. Keys are frame indexed, so fps
// does not affect the result.
func (c *Curve) Evaluate(frame, length, fps int) float64 {
	n := len(c.Values)
	switch {
	case n == 0:
		return 0
	case n == 1:
		return c.Values[0]
	}
	pos := c.positions(length)
	f := float64(frame)
	if f <= pos[0] {
		return c.Values[0]
	}
	for i := 1; i < n; i++ {
		if f > pos[i] {
			continue
		}
		if c.Interp == Constant || pos[i] <= pos[i-1] {
			if f == pos[i] {
				return c.Values[i]
			}
			return c.Values[i-1]
		}
		t := (f - pos[i-1]) / (pos[i] - pos[i-1])
		return c.Values[i-1] + t*(c.Values[i]-c.Values[i-1])
	}
	return c.Values[n-1]
}

// positions returns the frame position of each value.
func (c *Curve) positions(length int) []float64 {
	n := len(c.Values)
	pos := make([]float64, n)
	end := float64(max(length-1, 0))
	for i := 1; i < n-1; i++ {
		if i-1 < len(c.Keys) {
			pos[i] = float64(c.Keys[i-1])
		} else {
			pos[i] = end * float64(i) / float64(n-1)
		}
	}
	pos[n-1] = end
	return pos
}

// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hue

import (
	"strconv"
	"sync/atomic"

	"cogentcore.org/huecurve/angle"
	"cogentcore.org/huecurve/anim"
)

// Fields are the animated scalars of a [ControlPoint].
type Fields int32

const (
	// Angle is the position of the point on the hue circle, in degrees.
	Angle Fields = iota

	// HueShift is the hue offset applied at the point, in degrees.
	HueShift

	// Saturation is the saturation multiplier applied at the point.
	Saturation

	// Luminance is the luminance multiplier applied at the point.
	Luminance

	// FieldsN is the number of fields.
	FieldsN
)

var fieldNames = [FieldsN]string{"Angle", "HueShift", "Saturation", "Luminance"}

// String returns the name of the field.
func (f Fields) String() string {
	if f < 0 || f >= FieldsN {
		return "Fields(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldNames[f]
}

// pointIDs is the source of unique [ControlPoint.ID]s.
var pointIDs atomic.Uint64

// ControlPoint is a user-placed anchor on the hue circle carrying
// hue-shift, saturation and luminance adjustments. Each of its four
// values is independently animated.
type ControlPoint struct {

	// ID identifies the point within a set for selection and editing.
	// It is assigned at construction, kept by Clone, and not persisted.
	ID uint64 `json:"-" yaml:"-" toml:"-" copier:"-"`

	// Angle is the hue position, in degrees [0, 360), wrapping.
	Angle *anim.Curve `json:"angle" yaml:"angle" toml:"angle"`

	// HueShift is the hue offset, in degrees [-180, 180].
	HueShift *anim.Curve `json:"hueShift" yaml:"hueShift" toml:"hueShift"`

	// Saturation is the saturation multiplier, in [0, 2].
	Saturation *anim.Curve `json:"saturation" yaml:"saturation" toml:"saturation"`

	// Luminance is the luminance multiplier, in [0, 2].
	Luminance *anim.Curve `json:"luminance" yaml:"luminance" toml:"luminance"`
}

// NewControlPoint returns a new unanimated control point with the
// given baseline values.
func NewControlPoint(angleDeg, hueShift, saturation, luminance float64) *ControlPoint {
	return &ControlPoint{
		ID:         pointIDs.Add(1),
		Angle:      anim.New(angleDeg, 0, 360),
		HueShift:   anim.New(hueShift, -180, 180),
		Saturation: anim.New(saturation, 0, 2),
		Luminance:  anim.New(luminance, 0, 2),
	}
}

// EnsureID assigns a fresh ID to the point if it has none,
// as is the case after loading from a file.
func (cp *ControlPoint) EnsureID() {
	if cp.ID == 0 {
		cp.ID = pointIDs.Add(1)
	}
}

// Curve returns the curve of the given field.
func (cp *ControlPoint) Curve(f Fields) *anim.Curve {
	switch f {
	case Angle:
		return cp.Angle
	case HueShift:
		return cp.HueShift
	case Saturation:
		return cp.Saturation
	case Luminance:
		return cp.Luminance
	}
	return nil
}

// Clone returns a deep copy of the point with the same ID;
// the copy owns independent curves.
func (cp *ControlPoint) Clone() *ControlPoint {
	return &ControlPoint{
		ID:         cp.ID,
		Angle:      cp.Angle.Clone(),
		HueShift:   cp.HueShift.Clone(),
		Saturation: cp.Saturation.Clone(),
		Luminance:  cp.Luminance.Clone(),
	}
}

// WithBaseline returns a deep copy of the point in which the baseline
// sample of the given field is set to v. Keys are never added.
func (cp *ControlPoint) WithBaseline(f Fields, v float64) *ControlPoint {
	np := cp.Clone()
	if c := np.Curve(f); c != nil {
		c.SetBaseline(v)
	}
	return np
}

// Baseline returns the baseline sample of the given field.
func (cp *ControlPoint) Baseline(f Fields) float64 {
	return cp.Curve(f).Baseline()
}

// Equal returns whether the two points have the same curves.
// IDs are not compared.
func (cp *ControlPoint) Equal(o *ControlPoint) bool {
	if cp == nil || o == nil {
		return cp == o
	}
	for f := Angle; f < FieldsN; f++ {
		if !cp.Curve(f).Equal(o.Curve(f)) {
			return false
		}
	}
	return true
}

// Evaluated holds the values of a [ControlPoint] at one frame.
type Evaluated struct {
	// ID is the ID of the source point.
	ID uint64

	// Index is the insertion index of the source point in its set.
	Index int

	// Angle is the normalized angle, in [0, 360).
	Angle float64

	HueShift   float64
	Saturation float64
	Luminance  float64
}

// Eval evaluates all four curves at the given time.
// The angle is normalized onto [0, 360).
func (cp *ControlPoint) Eval(t anim.Time) Evaluated {
	return Evaluated{
		ID:         cp.ID,
		Angle:      angle.Normalize(t.Eval(cp.Angle)),
		HueShift:   t.Eval(cp.HueShift),
		Saturation: t.Eval(cp.Saturation),
		Luminance:  t.Eval(cp.Luminance),
	}
}

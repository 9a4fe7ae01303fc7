// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapping

import (
	"fmt"
	"strings"

	"cogentcore.org/huecurve/hue"
)

// Modes are the editing modes, which select the value
// shown on the vertical axis of the editor.
type Modes int32

const (
	// Luminance edits the luminance multiplier, [0, 2].
	Luminance Modes = iota

	// Saturation edits the saturation multiplier, [0, 2].
	Saturation

	// Hue edits the hue shift, [-180, 180].
	Hue

	// ModesN is the number of modes.
	ModesN
)

var modeNames = [ModesN]string{"Luminance", "Saturation", "Hue"}

// AllModes returns all of the valid modes.
func AllModes() []Modes {
	return []Modes{Luminance, Saturation, Hue}
}

// String returns the name of the mode.
func (m Modes) String() string {
	if m < 0 || m >= ModesN {
		return fmt.Sprintf("Modes(%d)", int32(m))
	}
	return modeNames[m]
}

// SetString sets the mode from its name, case insensitive.
func (m *Modes) SetString(s string) error {
	for i, nm := range modeNames {
		if strings.EqualFold(nm, s) {
			*m = Modes(i)
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid value for type Modes", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (m Modes) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *Modes) UnmarshalText(text []byte) error {
	return m.SetString(string(text))
}

// Field returns the control point field edited in this mode.
func (m Modes) Field() hue.Fields {
	switch m {
	case Saturation:
		return hue.Saturation
	case Hue:
		return hue.HueShift
	}
	return hue.Luminance
}

// offsetRatio returns the signed offset of the value from the
// neutral center of the vertical axis, in [-1, 1] for valid values.
func (m Modes) offsetRatio(luminance, saturation, hueShift float64) float64 {
	switch m {
	case Saturation:
		return saturation - 1
	case Hue:
		return hueShift / 180
	}
	return luminance - 1
}

// valueAt is the inverse of offsetRatio.
func (m Modes) valueAt(ratio float64) float64 {
	if m == Hue {
		return clamp(ratio*180, -180, 180)
	}
	return clamp(1+ratio, 0, 2)
}

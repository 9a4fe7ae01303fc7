// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hue

import (
	"encoding/hex"
	"image/color"
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

// IgnoredColor is a color that is excluded from the hue transform,
// within the effect's tolerance. Channels are in [0, 1].
type IgnoredColor struct {
	R float64 `json:"r" yaml:"r" toml:"r"`
	G float64 `json:"g" yaml:"g" toml:"g"`
	B float64 `json:"b" yaml:"b" toml:"b"`
	A float64 `json:"a" yaml:"a" toml:"a"`
}

// White is the default color added to the ignored list.
var White = IgnoredColor{1, 1, 1, 1}

// IgnoredColorOf returns the [IgnoredColor] for the given color,
// un-premultiplying alpha.
func IgnoredColorOf(c color.Color) IgnoredColor {
	_, _, _, a := c.RGBA()
	if a == 0 {
		return IgnoredColor{}
	}
	cf, _ := colorful.MakeColor(c)
	return IgnoredColor{R: cf.R, G: cf.G, B: cf.B, A: float64(a) / 0xffff}
}

// Colorful returns the opaque color as a [colorful.Color].
func (ic IgnoredColor) Colorful() colorful.Color {
	return colorful.Color{R: ic.R, G: ic.G, B: ic.B}
}

// RGBA returns the non-premultiplied 8-bit color.
func (ic IgnoredColor) RGBA() color.NRGBA {
	c := ic.Clamped()
	return color.NRGBA{
		R: uint8(math.Round(c.R * 255)),
		G: uint8(math.Round(c.G * 255)),
		B: uint8(math.Round(c.B * 255)),
		A: uint8(math.Round(c.A * 255)),
	}
}

// Clamped returns the color with every channel limited to [0, 1].
func (ic IgnoredColor) Clamped() IgnoredColor {
	cl := func(v float64) float64 { return math.Min(math.Max(v, 0), 1) }
	return IgnoredColor{cl(ic.R), cl(ic.G), cl(ic.B), cl(ic.A)}
}

// Hex returns the color as a #rrggbbaa string.
func (ic IgnoredColor) Hex() string {
	c := ic.RGBA()
	return "#" + hex.EncodeToString([]byte{c.R, c.G, c.B, c.A})
}

// IgnoredColors is an ordered list of ignored colors. Insertion order
// is display and removal order. It may be empty, and is treated as
// immutable like [Points].
type IgnoredColors []IgnoredColor

// Add returns a new list with c appended.
func (ics IgnoredColors) Add(c IgnoredColor) IgnoredColors {
	return append(slices.Clip(ics), c)
}

// Remove returns a new list without the color at index i.
// Out of range indexes return the list unchanged.
func (ics IgnoredColors) Remove(i int) IgnoredColors {
	if i < 0 || i >= len(ics) {
		return ics
	}
	return slices.Delete(slices.Clone(ics), i, i+1)
}

// Set returns a new list with the color at index i replaced by c.
func (ics IgnoredColors) Set(i int, c IgnoredColor) IgnoredColors {
	if i < 0 || i >= len(ics) {
		return ics
	}
	n := slices.Clone(ics)
	n[i] = c
	return n
}

// Equal returns whether both lists hold the same colors in the same order.
func (ics IgnoredColors) Equal(o IgnoredColors) bool {
	return slices.Equal(ics, o)
}

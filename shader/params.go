// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

const (
	// MaxPoints is the number of control point slots in the parameter block.
	MaxPoints = 16

	// MaxIgnoredColors is the number of ignored color slots.
	MaxIgnoredColors = 16
)

// Point is one control point slot, as laid out in the parameter block.
type Point struct {
	Angle      float32
	HueShift   float32
	Saturation float32
	Luminance  float32
}

// NeutralPoint fills the unused control point slots.
var NeutralPoint = Point{Angle: 0, HueShift: 0, Saturation: 1, Luminance: 1}

// Params is the parameter block of the hue correction kernel.
// Field order and sizes match the uniform struct of the kernel
// exactly; every field is 4 bytes so there is no implicit padding.
type Params struct {
	NumPoints        int32
	Factor           float32
	ColorTolerance   float32
	NumIgnoredColors int32
	IgnoredColors    [MaxIgnoredColors][4]float32
	Points           [MaxPoints]Point
}

// Layouts are the memory layouts of [Params] understood by kernels.
type Layouts int32

const (
	// LayoutIgnoredColors is the full layout:
	// numPoints, factor, colorTolerance, numIgnoredColors,
	// ignoredColor[16], point[16]. It is 528 bytes.
	LayoutIgnoredColors Layouts = iota

	// LayoutPointsOnly is the layout of kernels without ignored color
	// support: numPoints, factor, 8 bytes of explicit padding so that
	// the points start on a 16 byte boundary, point[16]. It is 272 bytes.
	LayoutPointsOnly

	// LayoutsN is the number of layouts.
	LayoutsN
)

var layoutNames = [LayoutsN]string{"IgnoredColors", "PointsOnly"}

// String returns the name of the layout.
func (l Layouts) String() string {
	if l < 0 || l >= LayoutsN {
		return "Layouts(" + strconv.Itoa(int(l)) + ")"
	}
	return layoutNames[l]
}

// SetString sets the layout from its name.
func (l *Layouts) SetString(s string) error {
	for i, nm := range layoutNames {
		if nm == s {
			*l = Layouts(i)
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid value for type Layouts", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (l Layouts) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (l *Layouts) UnmarshalText(text []byte) error {
	return l.SetString(string(text))
}

const (
	headerSize     = 16
	vec4Size       = 16
	pointsSize     = MaxPoints * vec4Size
	ignoredSize    = MaxIgnoredColors * vec4Size
	sizeFull       = headerSize + ignoredSize + pointsSize
	sizePointsOnly = headerSize + pointsSize
)

// Size returns the size of the parameter block in bytes.
func (l Layouts) Size() int {
	if l == LayoutPointsOnly {
		return sizePointsOnly
	}
	return sizeFull
}

// Marshal returns the parameter block in the given layout,
// little endian, fields in declaration order.
func (p *Params) Marshal(l Layouts) []byte {
	b := make([]byte, 0, l.Size())
	le := binary.LittleEndian
	f32 := func(v float32) { b = le.AppendUint32(b, math.Float32bits(v)) }

	b = le.AppendUint32(b, uint32(p.NumPoints))
	f32(p.Factor)
	if l == LayoutPointsOnly {
		b = append(b, make([]byte, 8)...)
	} else {
		f32(p.ColorTolerance)
		b = le.AppendUint32(b, uint32(p.NumIgnoredColors))
		for _, c := range p.IgnoredColors {
			for _, v := range c {
				f32(v)
			}
		}
	}
	for _, pt := range p.Points {
		f32(pt.Angle)
		f32(pt.HueShift)
		f32(pt.Saturation)
		f32(pt.Luminance)
	}
	return b
}

// Unmarshal decodes a parameter block in the given layout.
func Unmarshal(l Layouts, b []byte) (Params, error) {
	var p Params
	if len(b) != l.Size() {
		return p, fmt.Errorf("shader.Unmarshal %v: size %d != expected %d", l, len(b), l.Size())
	}
	le := binary.LittleEndian
	off := 0
	u32 := func() uint32 {
		v := le.Uint32(b[off:])
		off += 4
		return v
	}
	f32 := func() float32 { return math.Float32frombits(u32()) }

	p.NumPoints = int32(u32())
	p.Factor = f32()
	if l == LayoutPointsOnly {
		off += 8
	} else {
		p.ColorTolerance = f32()
		p.NumIgnoredColors = int32(u32())
		for i := range p.IgnoredColors {
			for j := range p.IgnoredColors[i] {
				p.IgnoredColors[i][j] = f32()
			}
		}
	}
	for i := range p.Points {
		p.Points[i] = Point{Angle: f32(), HueShift: f32(), Saturation: f32(), Luminance: f32()}
	}
	return p, nil
}

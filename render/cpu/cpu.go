// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu is a software [render.Device] that applies the hue
// correction parameter block on the CPU, row-parallel. It is used
// for still images, tests and machines without a GPU.
package cpu

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"cogentcore.org/huecurve/base/errors"
	"cogentcore.org/huecurve/render"
	"cogentcore.org/huecurve/shader"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/parallel"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrNoInput is returned by Output when no input is bound.
	ErrNoInput = errors.New("cpu: no input bound")

	// ErrReleased is returned when using a released effect.
	ErrReleased = errors.New("cpu: effect released")
)

// Device is the software device. The zero value is ready to use.
type Device struct{}

// NewEffect implements [render.Device]. The kernel source is not
// compiled: the software effect implements the same transform.
func (d *Device) NewEffect(kernel []byte, layout shader.Layouts) (render.Effect, error) {
	if layout < 0 || layout >= shader.LayoutsN {
		return nil, fmt.Errorf("cpu: invalid layout %v", layout)
	}
	return &Effect{layout: layout}, nil
}

// Effect is the software effect.
type Effect struct {
	layout   shader.Layouts
	params   shader.Params
	input    image.Image
	released bool
}

// SetInput implements [render.Effect]. The image must be an [image.Image].
func (e *Effect) SetInput(img render.Image) error {
	if img == nil {
		e.input = nil
		return nil
	}
	if e.released {
		return ErrReleased
	}
	im, ok := img.(image.Image)
	if !ok {
		return fmt.Errorf("cpu: input %T is not an image.Image", img)
	}
	e.input = im
	return nil
}

// WriteParams implements [render.Effect].
func (e *Effect) WriteParams(b []byte) error {
	if e.released {
		return ErrReleased
	}
	p, err := shader.Unmarshal(e.layout, b)
	if err != nil {
		return err
	}
	e.params = p
	return nil
}

// Params returns the last parameter block written.
func (e *Effect) Params() shader.Params {
	return e.params
}

// Output implements [render.Effect]; it returns an [*image.RGBA].
func (e *Effect) Output() (render.Image, error) {
	if e.released {
		return nil, ErrReleased
	}
	if e.input == nil {
		return nil, ErrNoInput
	}
	return Apply(e.input, &e.params), nil
}

// ReleaseParams implements [render.Effect].
func (e *Effect) ReleaseParams() error {
	e.params = shader.Params{}
	return nil
}

// Release implements [render.Effect].
func (e *Effect) Release() error {
	e.released = true
	e.input = nil
	return nil
}

// Apply returns a corrected copy of img. Fully transparent pixels and
// pixels matching an ignored color within the tolerance are copied
// unchanged.
func Apply(img image.Image, p *shader.Params) *image.RGBA {
	dst := clone.AsRGBA(img)
	if p.NumPoints <= 0 {
		return dst
	}
	b := dst.Bounds()
	parallel.Line(b.Dy(), func(start, end int) {
		for y := b.Min.Y + start; y < b.Min.Y+end; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.SetRGBA(x, y, Pixel(dst.RGBAAt(x, y), p))
			}
		}
	})
	return dst
}

// Pixel returns the corrected premultiplied color c.
func Pixel(c color.RGBA, p *shader.Params) color.RGBA {
	if c.A == 0 || p.NumPoints <= 0 {
		return c
	}
	a := float64(c.A) / 255
	src := colorful.Color{
		R: float64(c.R) / 255 / a,
		G: float64(c.G) / 255 / a,
		B: float64(c.B) / 255 / a,
	}
	if ignored(src, p) {
		return c
	}
	h, s, l := src.Hsl()
	dh, ms, ml := Adjustment(p, h)
	h = math.Mod(h+dh, 360)
	if h < 0 {
		h += 360
	}
	out := colorful.Hsl(h, clamp01(s*ms), clamp01(l*ml))
	out = src.BlendRgb(out, float64(p.Factor)).Clamped()
	return color.RGBA{
		R: uint8(math.Round(out.R * a * 255)),
		G: uint8(math.Round(out.G * a * 255)),
		B: uint8(math.Round(out.B * a * 255)),
		A: c.A,
	}
}

// Adjustment returns the hue shift, saturation and luminance
// multipliers at hue h, interpolated linearly between the circular
// neighbors of h among the packed points.
func Adjustment(p *shader.Params, h float64) (hueShift, saturation, luminance float64) {
	n := int(min(p.NumPoints, shader.MaxPoints))
	if n <= 0 {
		return 0, 1, 1
	}
	vals := func(pt shader.Point) (float64, float64, float64) {
		return float64(pt.HueShift), float64(pt.Saturation), float64(pt.Luminance)
	}
	if n == 1 {
		return vals(p.Points[0])
	}
	hi := 0
	for hi < n && float64(p.Points[hi].Angle) <= h {
		hi++
	}
	lo, up := p.Points[(hi-1+n)%n], p.Points[hi%n]
	span := float64(up.Angle - lo.Angle)
	off := h - float64(lo.Angle)
	if span <= 0 {
		span += 360
	}
	if off < 0 {
		off += 360
	}
	t := clamp01(off / span)
	lh, ls, ll := vals(lo)
	uh, us, ul := vals(up)
	return lh + t*(uh-lh), ls + t*(us-ls), ll + t*(ul-ll)
}

func ignored(c colorful.Color, p *shader.Params) bool {
	tol := float64(p.ColorTolerance)
	for i := range int(min(p.NumIgnoredColors, shader.MaxIgnoredColors)) {
		ic := p.IgnoredColors[i]
		d := max(math.Abs(c.R-float64(ic[0])), math.Abs(c.G-float64(ic[1])), math.Abs(c.B-float64(ic[2])))
		if d <= tol {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

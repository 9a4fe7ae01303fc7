// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/lucasb-eyer/go-colorful"
)

// HueGradient returns the background image of the canvas: the hue
// circle along x, fully saturated in the top half and muted in the
// bottom half. Non-positive sizes default to 400x120.
func HueGradient(width, height int) *image.RGBA {
	if width <= 0 {
		width = 400
	}
	if height <= 0 {
		height = 120
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	top := make([]color.RGBA, width)
	bottom := make([]color.RGBA, width)
	for x := range width {
		h := float64(x) / float64(width) * 360
		top[x] = opaque(colorful.Hsl(h, 1, 0.5))
		bottom[x] = opaque(colorful.Hsl(h, 0.8, 0.35))
	}
	half := height / 2
	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			row := top
			if y >= half {
				row = bottom
			}
			for x, c := range row {
				img.SetRGBA(x, y, c)
			}
		}
	})
	return img
}

// Gradient returns the [HueGradient] for the current canvas.
func (ed *Editor) Gradient() *image.RGBA {
	return HueGradient(int(ed.Canvas.Width), int(ed.Canvas.Height))
}

func opaque(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"cogentcore.org/huecurve/render/cpu"
	"cogentcore.org/huecurve/shader"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// Preview prints two strips of the hue circle to the terminal:
// the original hues and the hues after correction at the given frame.
func Preview(c *Config, w io.Writer, stateFile string, f *Frame, width int) error {
	ef, err := loadEffect(stateFile)
	if err != nil {
		return err
	}
	if width <= 0 {
		width = 72
	}
	p := shader.Pack(ef.Snapshot(), f.Time(c))
	out := termenv.NewOutput(w)
	var before, after strings.Builder
	for x := range width {
		h := float64(x) / float64(width) * 360
		src := colorful.Hsl(h, 1, 0.5)
		r, g, b := src.RGB255()
		dst := cpu.Pixel(color.RGBA{r, g, b, 255}, &p)
		before.WriteString(out.String(" ").Background(out.Color(src.Hex())).String())
		after.WriteString(out.String(" ").Background(out.Color(hexOf(dst))).String())
	}
	_, err = fmt.Fprintf(w, "before %s\nafter  %s\n", before.String(), after.String())
	return err
}

func hexOf(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func previewCmd(c *Config) *cobra.Command {
	f := &Frame{}
	width := 0
	cmd := &cobra.Command{
		Use:   "preview <state>",
		Short: "Show the correction of the hue circle in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Preview(c, cmd.OutOrStdout(), args[0], f, width)
		},
	}
	f.flags(cmd)
	cmd.Flags().IntVar(&width, "width", 72, "number of columns")
	return cmd
}

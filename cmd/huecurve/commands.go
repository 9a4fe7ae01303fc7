// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"cogentcore.org/huecurve/anim"
	"cogentcore.org/huecurve/base/errors"
	"cogentcore.org/huecurve/curvepath"
	"cogentcore.org/huecurve/editor"
	"cogentcore.org/huecurve/hue"
	"cogentcore.org/huecurve/mapping"
	"cogentcore.org/huecurve/render"
	"cogentcore.org/huecurve/render/cpu"
	"cogentcore.org/huecurve/shader"
	"cogentcore.org/huecurve/state"
	"cogentcore.org/huecurve/watch"
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/h2non/filetype"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Frame selects the frame at which curves are evaluated.
type Frame struct {
	Frame  int
	Length int
	FPS    int
}

func (f *Frame) flags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.Frame, "frame", 0, "frame to evaluate")
	cmd.Flags().IntVar(&f.Length, "length", 0, "item length in frames (default from settings)")
	cmd.Flags().IntVar(&f.FPS, "fps", 0, "frame rate (default from settings)")
}

// Time returns the time of the frame, with defaults from the settings.
func (f *Frame) Time(c *Config) anim.Time {
	t := anim.Time{Frame: f.Frame, Length: f.Length, FPS: f.FPS}
	if t.Length <= 0 {
		t.Length = c.Settings.Preview.Length
	}
	if t.FPS <= 0 {
		t.FPS = c.Settings.Preview.FPS
	}
	return t
}

// loadEffect returns a new effect with the state of the given file.
func loadEffect(filename string) (*hue.Effect, error) {
	d, err := state.Open(filename)
	if err != nil {
		return nil, err
	}
	ef := hue.NewEffect()
	return ef, d.Apply(ef)
}

// kernelOptions returns the bridge options for the kernel setting,
// which is either an embedded kernel name or a file path.
func kernelOptions(c *Config) []render.Option {
	opts := []render.Option{render.WithLayout(c.Settings.Layout)}
	k := c.Settings.Kernel
	if _, err := os.Stat(k); err == nil {
		opts = append(opts, render.WithKernel(os.DirFS(filepath.Dir(k)), filepath.Base(k)))
	} else {
		opts = append(opts, render.WithKernel(shader.KernelsFS(), k))
	}
	return opts
}

// Init writes the default state to filename.
func Init(c *Config, filename string, force bool) error {
	if _, err := os.Stat(filename); err == nil && !force {
		return fmt.Errorf("%s already exists; use --force to overwrite", filename)
	}
	if err := state.Save(state.FromEffect(hue.NewEffect()), filename); err != nil {
		return err
	}
	slog.Info("wrote default state", "file", filename)
	return nil
}

func initCmd(c *Config) *cobra.Command {
	force := false
	cmd := &cobra.Command{
		Use:   "init <state.yaml|state.toml>",
		Short: "Write a default state file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Init(c, args[0], force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// Apply corrects the input image with the state file at the given
// frame, using the software device, and saves the result as PNG.
func Apply(c *Config, stateFile, in, out string, f *Frame) error {
	ef, err := loadEffect(stateFile)
	if err != nil {
		return err
	}
	if err := checkImage(in); err != nil {
		return err
	}
	img, err := imgio.Open(in)
	if err != nil {
		return err
	}
	b := render.NewBridge(&cpu.Device{}, ef, kernelOptions(c)...)
	defer b.Release()
	if err := b.Err(); err != nil {
		return err
	}
	res, ok := b.Render(img, f.Time(c)).(image.Image)
	if !ok || b.Stats().Passthrough > 0 {
		return fmt.Errorf("rendering %s failed; see the log", in)
	}
	if err := imgio.Save(out, res, imgio.PNGEncoder()); err != nil {
		return err
	}
	slog.Info("wrote corrected image", "file", out, "frame", f.Frame)
	return nil
}

// checkImage returns an error if the file at filename is not an image.
func checkImage(filename string) error {
	kind, err := filetype.MatchFile(filename)
	if err != nil {
		return err
	}
	if kind.MIME.Type != "image" {
		return fmt.Errorf("%s is not an image (detected %q)", filename, kind.MIME.Value)
	}
	return nil
}

func applyCmd(c *Config) *cobra.Command {
	f := &Frame{}
	cmd := &cobra.Command{
		Use:   "apply <state> <input image> <output.png>",
		Short: "Apply the correction to an image",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Apply(c, args[0], args[1], args[2], f)
		},
	}
	f.flags(cmd)
	return cmd
}

// Pack prints the parameter block of the state file at the given frame.
func Pack(c *Config, w io.Writer, stateFile string, f *Frame, dump bool) error {
	ef, err := loadEffect(stateFile)
	if err != nil {
		return err
	}
	p := shader.Pack(ef.Snapshot(), f.Time(c))
	if dump {
		_, err := fmt.Fprint(w, hex.Dump(p.Marshal(c.Settings.Layout)))
		return err
	}
	fmt.Fprintf(w, "layout\t%v (%d bytes)\n", c.Settings.Layout, c.Settings.Layout.Size())
	fmt.Fprintf(w, "numPoints\t%d\nfactor\t%g\n", p.NumPoints, p.Factor)
	if c.Settings.Layout == shader.LayoutIgnoredColors {
		fmt.Fprintf(w, "colorTolerance\t%g\nnumIgnoredColors\t%d\n", p.ColorTolerance, p.NumIgnoredColors)
		for i := range int(p.NumIgnoredColors) {
			fmt.Fprintf(w, "ignoredColor[%d]\t%v\n", i, p.IgnoredColors[i])
		}
	}
	for i := range int(p.NumPoints) {
		pt := p.Points[i]
		fmt.Fprintf(w, "point[%d]\tangle=%g hue=%g sat=%g lum=%g\n", i, pt.Angle, pt.HueShift, pt.Saturation, pt.Luminance)
	}
	return nil
}

func packCmd(c *Config) *cobra.Command {
	f := &Frame{}
	dump := false
	cmd := &cobra.Command{
		Use:   "pack <state>",
		Short: "Print the shader parameter block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Pack(c, cmd.OutOrStdout(), args[0], f, dump)
		},
	}
	f.flags(cmd)
	cmd.Flags().BoolVar(&dump, "hex", false, "print a hex dump of the encoded block")
	return cmd
}

// Path prints the SVG path data of the curve in the given mode.
func Path(c *Config, w io.Writer, stateFile string, mode mapping.Modes, f *Frame) error {
	ef, err := loadEffect(stateFile)
	if err != nil {
		return err
	}
	cv := mapping.Canvas{Width: c.Settings.Canvas.Width, Height: c.Settings.Canvas.Height}
	p := curvepath.Build(ef.Snapshot().Points, f.Time(c), mode, cv)
	_, err = fmt.Fprintln(w, p.SVG())
	return err
}

func pathCmd(c *Config) *cobra.Command {
	f := &Frame{}
	mode := ""
	cmd := &cobra.Command{
		Use:   "path <state>",
		Short: "Print the curve as SVG path data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMode(mode)
			if err != nil {
				return err
			}
			return Path(c, cmd.OutOrStdout(), args[0], m, f)
		},
	}
	f.flags(cmd)
	cmd.Flags().StringVar(&mode, "mode", mapping.Luminance.String(), "edit mode: Luminance, Saturation or Hue")
	return cmd
}

// parseMode parses an edit mode name, suggesting the closest
// mode when the name is not valid.
func parseMode(s string) (mapping.Modes, error) {
	var m mapping.Modes
	err := m.SetString(s)
	if err == nil {
		return m, nil
	}
	best, sim := mapping.Luminance, 0.0
	for _, md := range mapping.AllModes() {
		if v := strutil.Similarity(strings.ToLower(s), strings.ToLower(md.String()), metrics.NewLevenshtein()); v > sim {
			best, sim = md, v
		}
	}
	if sim >= 0.5 {
		return m, fmt.Errorf("%w; did you mean %v?", err, best)
	}
	return m, err
}

// Watch loads the state file and logs every change made to it
// on disk, until interrupted.
func Watch(c *Config, stateFile string) error {
	ef, err := loadEffect(stateFile)
	if err != nil {
		return err
	}
	loop := editor.NewLoop()
	ed := editor.New(loop, c.Settings.EditorOptions(), ef)
	defer ed.Close()
	w, err := watch.New(stateFile, loop, func(d *state.Document) {
		if err := d.Apply(ed.Primary()); err != nil {
			slog.Error("watch: applying state", "err", err)
			return
		}
		loop.Post(func() {
			slog.Info("state changed", "points", len(ed.Points), "ignoredColors", len(ed.IgnoredColors), "path", ed.Path.SVG())
		})
	})
	if err != nil {
		return err
	}
	defer w.Close()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	slog.Info("watching", "file", w.Path)
	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func watchCmd(c *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <state>",
		Short: "Reload the state file whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Watch(c, args[0])
		},
	}
}

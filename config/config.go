// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides the user settings of the hue curve tools,
// stored as TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"cogentcore.org/huecurve/base/errors"
	"cogentcore.org/huecurve/base/iox/tomlx"
	"cogentcore.org/huecurve/base/logx"
	"cogentcore.org/huecurve/editor"
	"cogentcore.org/huecurve/mapping"
	"cogentcore.org/huecurve/shader"
	"github.com/mitchellh/go-homedir"
)

// DefaultPath is the default location of the settings file.
const DefaultPath = "~/.config/huecurve/settings.toml"

// Canvas is the size of the editing area, in pixels.
type Canvas struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Preview is the item used to evaluate curves while editing.
type Preview struct {
	// Length is the length of the item, in frames.
	Length int `toml:"length"`

	// FPS is the frame rate of the item.
	FPS int `toml:"fps"`
}

// Settings are the user settings.
type Settings struct {
	Canvas  Canvas  `toml:"canvas"`
	Preview Preview `toml:"preview"`

	// GridDivisions is the number of grid cells along each axis.
	GridDivisions int `toml:"gridDivisions"`

	// Layout is the parameter block layout of the kernel.
	Layout shader.Layouts `toml:"layout"`

	// Kernel is the kernel name, or a path to a kernel file.
	Kernel string `toml:"kernel"`

	// LogLevel is the log level: debug, info, warn or error.
	LogLevel string `toml:"logLevel"`
}

// Defaults returns the default settings.
func Defaults() *Settings {
	return &Settings{
		Canvas:        Canvas{Width: 400, Height: 180},
		Preview:       Preview{Length: 100, FPS: 60},
		GridDivisions: 6,
		Layout:        shader.LayoutIgnoredColors,
		Kernel:        shader.DefaultKernel,
		LogLevel:      "info",
	}
}

// Validate returns an error describing every invalid setting.
func (s *Settings) Validate() error {
	var errs []error
	if err := (mapping.Canvas{Width: s.Canvas.Width, Height: s.Canvas.Height}).Check(); err != nil {
		errs = append(errs, err)
	}
	if s.Preview.Length < 0 || s.Preview.FPS <= 0 {
		errs = append(errs, fmt.Errorf("config: invalid preview %d frames at %d fps", s.Preview.Length, s.Preview.FPS))
	}
	if s.GridDivisions <= 0 {
		errs = append(errs, fmt.Errorf("config: invalid grid divisions %d", s.GridDivisions))
	}
	if s.Layout < 0 || s.Layout >= shader.LayoutsN {
		errs = append(errs, fmt.Errorf("config: invalid layout %v", s.Layout))
	}
	if s.Kernel == "" {
		errs = append(errs, errors.New("config: empty kernel name"))
	}
	return errors.Join(errs...)
}

// Open reads the settings from the given files over the defaults;
// later files override earlier ones, and "~" is expanded. A missing
// file is not an error. The result is validated and the log level
// applied.
func Open(filenames ...string) (*Settings, error) {
	s := Defaults()
	var errs []error
	for _, fn := range filenames {
		path, err := homedir.Expand(fn)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := tomlx.Open(s, path); err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", path, err))
		}
	}
	if err := s.Validate(); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, logx.SetLevel(s.LogLevel))
	return s, errors.Join(errs...)
}

// Save writes the settings to filename, creating its directory.
func (s *Settings) Save(filename string) error {
	path, err := homedir.Expand(filename)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return tomlx.Save(s, path)
}

// EditorOptions returns the editor options of the settings.
func (s *Settings) EditorOptions() editor.Options {
	return editor.Options{
		Canvas:        mapping.Canvas{Width: s.Canvas.Width, Height: s.Canvas.Height},
		PreviewLength: s.Preview.Length,
		PreviewFPS:    s.Preview.FPS,
		GridDivisions: s.GridDivisions,
	}
}

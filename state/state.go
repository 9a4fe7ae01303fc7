// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package state saves and loads the persisted state of a hue
// correction effect, as YAML or TOML depending on the file extension.
package state

import (
	"fmt"
	"path/filepath"
	"strings"

	"cogentcore.org/huecurve/anim"
	"cogentcore.org/huecurve/base/errors"
	"cogentcore.org/huecurve/base/iox/tomlx"
	"cogentcore.org/huecurve/base/iox/yamlx"
	"cogentcore.org/huecurve/hue"
	"github.com/Masterminds/semver/v3"
)

// Version is the document format version written by [FromSnapshot].
// Documents of any version with the same major version can be read;
// documents without a version are treated as compatible.
const Version = "1.0.0"

// compatible is the constraint on the version of documents read.
var compatible = errors.Must1(semver.NewConstraint("^1"))

// ErrUnknownFormat is returned for file extensions other than
// .yaml, .yml and .toml.
var ErrUnknownFormat = errors.New("state: unknown file format")

// ErrInvalid is returned when a document cannot be applied.
var ErrInvalid = errors.New("state: invalid document")

// Document is the persisted state of one effect: the ordered points,
// the ordered ignored colors and the factor and tolerance curves.
type Document struct {
	Version       string            `yaml:"version,omitempty" toml:"version,omitempty"`
	Points        hue.Points        `yaml:"points" toml:"points"`
	IgnoredColors hue.IgnoredColors `yaml:"ignoredColors" toml:"ignoredColors"`
	Factor        *anim.Curve       `yaml:"factor,omitempty" toml:"factor,omitempty"`
	Tolerance     *anim.Curve       `yaml:"tolerance,omitempty" toml:"tolerance,omitempty"`
}

// FromSnapshot returns a document holding a deep copy of s.
func FromSnapshot(s *hue.Snapshot) *Document {
	return &Document{
		Version:       Version,
		Points:        s.Points.Clone(),
		IgnoredColors: append(hue.IgnoredColors(nil), s.IgnoredColors...),
		Factor:        s.Factor.Clone(),
		Tolerance:     s.Tolerance.Clone(),
	}
}

// FromEffect returns a document of the current state of ef.
func FromEffect(ef *hue.Effect) *Document {
	return FromSnapshot(ef.Snapshot())
}

// Validate returns an error wrapping [ErrInvalid] if the document has
// an incompatible version, no points or a point missing a curve.
func (d *Document) Validate() error {
	if d.Version != "" {
		v, err := semver.NewVersion(d.Version)
		if err != nil {
			return fmt.Errorf("%w: version %q: %w", ErrInvalid, d.Version, err)
		}
		if !compatible.Check(v) {
			return fmt.Errorf("%w: version %v is not supported (want %v)", ErrInvalid, v, compatible)
		}
	}
	if len(d.Points) == 0 {
		return fmt.Errorf("%w: no control points", ErrInvalid)
	}
	for i, cp := range d.Points {
		if cp == nil {
			return fmt.Errorf("%w: point %d is empty", ErrInvalid, i)
		}
		for f := hue.Angle; f < hue.FieldsN; f++ {
			if cp.Curve(f) == nil {
				return fmt.Errorf("%w: point %d has no %v", ErrInvalid, i, f)
			}
		}
	}
	return nil
}

// Apply publishes the document on ef as a single snapshot.
// Points without an ID get fresh ones.
// Missing factor and tolerance curves leave the current ones.
func (d *Document) Apply(ef *hue.Effect) error {
	if err := d.Validate(); err != nil {
		return err
	}
	ps := d.Points.Clone()
	for _, cp := range ps {
		cp.EnsureID()
	}
	ef.SetState(ps, append(hue.IgnoredColors(nil), d.IgnoredColors...), d.Factor.Clone(), d.Tolerance.Clone())
	return nil
}

// Formats are the file formats of documents.
type Formats int32

const (
	// YAML is the YAML format.
	YAML Formats = iota

	// TOML is the TOML format.
	TOML
)

// FormatOf returns the format of the given filename from its extension.
func FormatOf(filename string) (Formats, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filename)
}

// Save writes d to filename.
func Save(d *Document, filename string) error {
	f, err := FormatOf(filename)
	if err != nil {
		return err
	}
	if f == TOML {
		return tomlx.Save(d, filename)
	}
	return yamlx.Save(d, filename)
}

// Open reads a document from filename.
func Open(filename string) (*Document, error) {
	f, err := FormatOf(filename)
	if err != nil {
		return nil, err
	}
	d := &Document{}
	if f == TOML {
		err = tomlx.Open(d, filename)
	} else {
		err = yamlx.Open(d, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("state: reading %s: %w", filename, err)
	}
	for _, cp := range d.Points {
		if cp != nil {
			cp.EnsureID()
		}
	}
	return d, nil
}

// Bytes returns d encoded in the given format.
func Bytes(d *Document, f Formats) ([]byte, error) {
	if f == TOML {
		return tomlx.WriteBytes(d)
	}
	return yamlx.WriteBytes(d)
}

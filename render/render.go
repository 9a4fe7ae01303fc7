// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render connects a [hue.Effect] to a device color-transform
// stage, once per output frame. The [Bridge] never blocks and never
// fails the caller: on any error it logs and passes the input through.
package render

import (
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"sync/atomic"

	"cogentcore.org/huecurve/anim"
	"cogentcore.org/huecurve/base/errors"
	"cogentcore.org/huecurve/hue"
	"cogentcore.org/huecurve/shader"
)

var (
	// ErrDeviceEffectCreation is returned when the device could not
	// create the effect object.
	ErrDeviceEffectCreation = errors.New("render: device effect creation failed")

	// ErrParameterUpdate is returned when packing or writing the
	// parameter block failed during a frame.
	ErrParameterUpdate = errors.New("render: parameter update failed")
)

// Image is a frame handled by a [Device]. Devices define the concrete type.
type Image interface {
	Bounds() image.Rectangle
}

// Device creates device effects from kernels.
type Device interface {
	// NewEffect compiles the given kernel into a new effect that takes
	// a parameter block in the given layout.
	NewEffect(kernel []byte, layout shader.Layouts) (Effect, error)
}

// Effect is a device color-transform stage owned by one [Bridge].
type Effect interface {
	// SetInput binds the input frame; nil detaches it.
	SetInput(img Image) error

	// WriteParams writes the parameter block synchronously.
	WriteParams(b []byte) error

	// Output returns the transformed frame for the bound input.
	Output() (Image, error)

	// ReleaseParams releases the parameter buffer.
	ReleaseParams() error

	// Release releases the effect itself.
	Release() error
}

// Options configure a [Bridge].
type Options struct {
	// Kernels is the file system the kernel is loaded from.
	Kernels fs.FS

	// Kernel is the name of the kernel in Kernels.
	Kernel string

	// Layout is the parameter block layout the kernel expects.
	Layout shader.Layouts
}

// Option is a functional option for [NewBridge].
type Option func(o *Options)

// WithKernel loads the named kernel from fsys instead of the embedded one.
func WithKernel(fsys fs.FS, name string) Option {
	return func(o *Options) {
		o.Kernels = fsys
		o.Kernel = name
	}
}

// WithLayout sets the parameter block layout.
func WithLayout(l shader.Layouts) Option {
	return func(o *Options) { o.Layout = l }
}

// Stats are diagnostic counters of a [Bridge].
type Stats struct {
	// Frames is the number of calls to Render.
	Frames uint64

	// Passthrough is the number of frames returned unmodified
	// because of an error.
	Passthrough uint64

	// ParamFailures is the number of failed parameter updates.
	ParamFailures uint64
}

// Bridge feeds the state of one [hue.Effect] to one device [Effect].
// Render is called from the render goroutine; Release must not be
// called concurrently with Render.
type Bridge struct {
	effect *hue.Effect
	opts   Options

	// dev is nil when construction failed; the bridge then passes
	// every frame through.
	dev Effect

	// err is the construction error, if any.
	err error

	frames        atomic.Uint64
	passthrough   atomic.Uint64
	paramFailures atomic.Uint64
}

// NewBridge loads the kernel and creates the device effect for ef.
// Failures are logged and leave the bridge in passthrough mode;
// they are available from [Bridge.Err].
func NewBridge(dev Device, ef *hue.Effect, opts ...Option) *Bridge {
	b := &Bridge{effect: ef}
	b.opts = Options{Kernels: shader.KernelsFS(), Kernel: shader.DefaultKernel}
	for _, o := range opts {
		o(&b.opts)
	}
	kernel, err := shader.Kernel(b.opts.Kernels, b.opts.Kernel)
	if err != nil {
		b.err = errors.Log(err)
		return b
	}
	if dev == nil {
		b.err = errors.Log(fmt.Errorf("%w: no device", ErrDeviceEffectCreation))
		return b
	}
	de, err := b.newEffect(dev, kernel)
	if err != nil {
		b.err = errors.Log(fmt.Errorf("%w: %w", ErrDeviceEffectCreation, err))
		return b
	}
	b.dev = de
	return b
}

func (b *Bridge) newEffect(dev Device, kernel []byte) (de Effect, err error) {
	defer errors.Recover(&err)
	de, err = dev.NewEffect(kernel, b.opts.Layout)
	if err == nil && de == nil {
		err = errors.New("nil effect")
	}
	return
}

// Err returns the construction error, or nil if the device effect
// is live.
func (b *Bridge) Err() error {
	return b.err
}

// Render transforms one frame at the given time. It records the
// render progress on the effect, packs a single snapshot, and returns
// the device output. On any failure the input is returned unchanged.
// When only the parameter update fails, the frame renders with the
// previous parameters.
func (b *Bridge) Render(input Image, t anim.Time) Image {
	b.frames.Add(1)
	b.effect.SetProgress(t)
	if b.dev == nil {
		b.passthrough.Add(1)
		return input
	}
	if err := b.update(t); err != nil {
		b.paramFailures.Add(1)
		errors.Log(err)
	}
	out, err := b.draw(input)
	if err != nil || out == nil {
		b.passthrough.Add(1)
		if err != nil {
			errors.Log(err)
		}
		return input
	}
	return out
}

// update packs the current snapshot and writes it to the device.
func (b *Bridge) update(t anim.Time) (err error) {
	defer func() {
		if err != nil && !errors.Is(err, ErrParameterUpdate) {
			err = fmt.Errorf("%w: %w", ErrParameterUpdate, err)
		}
	}()
	defer errors.Recover(&err)
	p := shader.Pack(b.effect.Snapshot(), t)
	if werr := b.dev.WriteParams(p.Marshal(b.opts.Layout)); werr != nil {
		return fmt.Errorf("%w: %w", ErrParameterUpdate, werr)
	}
	return nil
}

func (b *Bridge) draw(input Image) (out Image, err error) {
	defer errors.Recover(&err)
	if err = b.dev.SetInput(input); err != nil {
		return nil, fmt.Errorf("render: binding input: %w", err)
	}
	return b.dev.Output()
}

// Stats returns a snapshot of the diagnostic counters.
func (b *Bridge) Stats() Stats {
	return Stats{
		Frames:        b.frames.Load(),
		Passthrough:   b.passthrough.Load(),
		ParamFailures: b.paramFailures.Load(),
	}
}

// Release releases the parameter buffer, detaches the input and then
// releases the device effect, in that order. Errors are logged and
// joined. The bridge passes frames through afterwards.
func (b *Bridge) Release() error {
	de := b.dev
	if de == nil {
		return nil
	}
	b.dev = nil
	var errs []error
	if err := de.ReleaseParams(); err != nil {
		errs = append(errs, fmt.Errorf("render: releasing parameters: %w", err))
	}
	if err := de.SetInput(nil); err != nil {
		errs = append(errs, fmt.Errorf("render: detaching input: %w", err))
	}
	if err := de.Release(); err != nil {
		errs = append(errs, fmt.Errorf("render: releasing effect: %w", err))
	}
	err := errors.Join(errs...)
	if err != nil {
		slog.Error("render.Bridge.Release", "err", err)
	}
	return err
}

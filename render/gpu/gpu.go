// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu is a WebGPU [render.Device]. It compiles the WGSL kernel
// and owns the uniform parameter buffer of each effect; the render pass
// that draws a frame is supplied by the host as a [Drawer].
package gpu

import (
	"fmt"

	"cogentcore.org/huecurve/base/errors"
	"cogentcore.org/huecurve/render"
	"cogentcore.org/huecurve/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNoDevice is returned when the device has not been initialized
	// or has been released.
	ErrNoDevice = errors.New("gpu: no device")

	// ErrNoDrawer is returned by Output when the device has no [Drawer].
	ErrNoDrawer = errors.New("gpu: no drawer")

	// ErrReleased is returned when using a released effect.
	ErrReleased = errors.New("gpu: effect released")
)

// Drawer draws one frame with a compiled kernel. The parameter buffer
// is bound as the uniform at group 0, binding 0; the input texture and
// sampler at group 1. Drawer implementations are owned by the host,
// which knows its textures and surfaces.
type Drawer interface {
	Draw(module *wgpu.ShaderModule, params *wgpu.Buffer, input render.Image) (render.Image, error)
}

// Device is a WebGPU device with its queue.
type Device struct {
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue

	// Drawer draws frames for the effects of this device.
	Drawer Drawer

	// owned is whether Release also releases Device and friends.
	owned bool
}

// NewDevice requests a high performance adapter and a device from it.
func NewDevice(drawer Drawer) (*Device, error) {
	inst := wgpu.CreateInstance(nil)
	if inst == nil {
		return nil, fmt.Errorf("%w: could not create instance", ErrNoDevice)
	}
	adapter, err := inst.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		inst.Release()
		return nil, fmt.Errorf("gpu: requesting adapter: %w", err)
	}
	dev, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "huecurve"})
	if err != nil {
		adapter.Release()
		inst.Release()
		return nil, fmt.Errorf("gpu: requesting device: %w", err)
	}
	return &Device{
		Instance: inst,
		Adapter:  adapter,
		Device:   dev,
		Queue:    dev.GetQueue(),
		Drawer:   drawer,
		owned:    true,
	}, nil
}

// NewHostDevice wraps a device and queue owned by the host.
// Release does not release them.
func NewHostDevice(dev *wgpu.Device, queue *wgpu.Queue, drawer Drawer) *Device {
	return &Device{Device: dev, Queue: queue, Drawer: drawer}
}

// NewEffect implements [render.Device]: it compiles the WGSL kernel and
// creates the uniform buffer for the parameter block.
func (d *Device) NewEffect(kernel []byte, layout shader.Layouts) (render.Effect, error) {
	if d == nil || d.Device == nil || d.Queue == nil {
		return nil, ErrNoDevice
	}
	if layout < 0 || layout >= shader.LayoutsN {
		return nil, fmt.Errorf("gpu: invalid layout %v", layout)
	}
	module, err := d.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "huecorrect",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: string(kernel)},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: compiling kernel: %w", err)
	}
	buf, err := d.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "huecorrect.params",
		Size:  uint64(layout.Size()),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		module.Release()
		return nil, fmt.Errorf("gpu: creating parameter buffer: %w", err)
	}
	return &Effect{device: d, module: module, params: buf, layout: layout}, nil
}

// Release releases the device if it was created by [NewDevice].
func (d *Device) Release() {
	if d == nil || !d.owned {
		return
	}
	if d.Queue != nil {
		d.Queue.Release()
		d.Queue = nil
	}
	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}
	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}
	if d.Instance != nil {
		d.Instance.Release()
		d.Instance = nil
	}
}

// Effect is a compiled kernel with its parameter buffer.
type Effect struct {
	device *Device
	module *wgpu.ShaderModule
	params *wgpu.Buffer
	layout shader.Layouts
	input  render.Image
}

// SetInput implements [render.Effect]; nil detaches the input.
func (e *Effect) SetInput(img render.Image) error {
	if img != nil && e.module == nil {
		return ErrReleased
	}
	e.input = img
	return nil
}

// WriteParams implements [render.Effect]. The write is queued on the
// device queue and does not wait for the GPU.
func (e *Effect) WriteParams(b []byte) error {
	if e.params == nil {
		return ErrReleased
	}
	if len(b) != e.layout.Size() {
		return fmt.Errorf("gpu: parameter block of %d bytes, want %d", len(b), e.layout.Size())
	}
	return e.device.Queue.WriteBuffer(e.params, 0, b)
}

// Output implements [render.Effect].
func (e *Effect) Output() (render.Image, error) {
	if e.module == nil {
		return nil, ErrReleased
	}
	if e.device.Drawer == nil {
		return nil, ErrNoDrawer
	}
	if e.input == nil {
		return nil, errors.New("gpu: no input bound")
	}
	return e.device.Drawer.Draw(e.module, e.params, e.input)
}

// ReleaseParams implements [render.Effect].
func (e *Effect) ReleaseParams() error {
	if e.params != nil {
		e.params.Release()
		e.params = nil
	}
	return nil
}

// Release implements [render.Effect].
func (e *Effect) Release() error {
	if e.module != nil {
		e.module.Release()
		e.module = nil
	}
	return nil
}

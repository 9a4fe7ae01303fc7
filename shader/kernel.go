// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
)

// ErrResourceMissing is returned when the kernel cannot be found.
var ErrResourceMissing = errors.New("shader: kernel resource missing")

// DefaultKernel is the name of the kernel in [Kernels].
const DefaultKernel = "huecorrect.wgsl"

// Kernels holds the kernels shipped with this package.
//
//go:embed kernels/*.wgsl
var Kernels embed.FS

// KernelsFS returns [Kernels] rooted at the kernels directory.
func KernelsFS() fs.FS {
	sub, err := fs.Sub(Kernels, "kernels")
	if err != nil {
		panic(err) // the directory is embedded
	}
	return sub
}

// Kernel reads the named kernel from fsys. A missing or empty kernel
// returns an error wrapping [ErrResourceMissing].
func Kernel(fsys fs.FS, name string) ([]byte, error) {
	if fsys == nil {
		return nil, fmt.Errorf("%w: %q: no resource file system", ErrResourceMissing, name)
	}
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrResourceMissing, name, err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: %q is empty", ErrResourceMissing, name)
	}
	return b, nil
}

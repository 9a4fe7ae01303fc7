// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/huecurve/base/logx"
	"cogentcore.org/huecurve/editor"
	"cogentcore.org/huecurve/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := Defaults()
	require.NoError(t, s.Validate())
	assert.Equal(t, editor.DefaultOptions(), s.EditorOptions())
	assert.Equal(t, shader.DefaultKernel, s.Kernel)
}

func TestOpen(t *testing.T) {
	lv := logx.UserLevel.Level()
	defer logx.UserLevel.Set(lv)

	dir := t.TempDir()
	fn := filepath.Join(dir, "settings.toml")
	data := `gridDivisions = 8
layout = "PointsOnly"
logLevel = "debug"

[preview]
length = 250
fps = 30
`
	require.NoError(t, os.WriteFile(fn, []byte(data), 0666))

	s, err := Open(filepath.Join(dir, "missing.toml"), fn)
	require.NoError(t, err)
	assert.Equal(t, 8, s.GridDivisions)
	assert.Equal(t, shader.LayoutPointsOnly, s.Layout)
	assert.Equal(t, Preview{Length: 250, FPS: 30}, s.Preview)
	assert.Equal(t, Canvas{Width: 400, Height: 180}, s.Canvas)
	assert.Equal(t, slog.LevelDebug, logx.UserLevel.Level())
}

func TestOpenInvalid(t *testing.T) {
	lv := logx.UserLevel.Level()
	defer logx.UserLevel.Set(lv)

	fn := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(fn, []byte("gridDivisions = 0\nlayout = \"Compact\"\n"), 0666))
	_, err := Open(fn)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(fn, []byte("gridDivisions = 0\n"), 0666))
	s, err := Open(fn)
	assert.ErrorContains(t, err, "grid divisions")
	assert.Equal(t, 0, s.GridDivisions)
}

func TestSave(t *testing.T) {
	lv := logx.UserLevel.Level()
	defer logx.UserLevel.Set(lv)

	fn := filepath.Join(t.TempDir(), "sub", "settings.toml")
	s := Defaults()
	s.Kernel = "custom.wgsl"
	require.NoError(t, s.Save(fn))

	got, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

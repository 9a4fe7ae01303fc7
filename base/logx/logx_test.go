// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLevel(t *testing.T) {
	old := UserLevel.Level()
	defer UserLevel.Set(old)

	assert.NoError(t, SetLevel("debug"))
	assert.Equal(t, slog.LevelDebug, UserLevel.Level())
	assert.NoError(t, SetLevel("Warn"))
	assert.Equal(t, slog.LevelWarn, UserLevel.Level())
	assert.NoError(t, SetLevel(""))
	assert.Equal(t, slog.LevelWarn, UserLevel.Level())
	assert.Error(t, SetLevel("loud"))
}

func TestInit(t *testing.T) {
	old := UserLevel.Level()
	oldLogger := slog.Default()
	defer func() {
		UserLevel.Set(old)
		slog.SetDefault(oldLogger)
	}()

	var buf bytes.Buffer
	Init(&buf)
	UserLevel.Set(slog.LevelWarn)
	slog.Info("hidden")
	slog.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

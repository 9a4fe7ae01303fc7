// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errTest = New("test error")

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	assert.ErrorIs(t, Log(fmt.Errorf("wrapped: %w", errTest)), errTest)
}

func TestMust(t *testing.T) {
	assert.Equal(t, "x", Must1("x", nil))
	assert.Panics(t, func() { Must1(0, errTest) })
}

func TestWrappers(t *testing.T) {
	err := fmt.Errorf("outer: %w", errTest)
	assert.True(t, Is(err, errTest))
	j := Join(errTest, nil, New("other"))
	assert.True(t, Is(j, errTest))
	assert.Nil(t, Join(nil, nil))
}

func TestRecover(t *testing.T) {
	f := func() (err error) {
		defer Recover(&err)
		panic(errTest)
	}
	assert.ErrorIs(t, f(), errTest)

	g := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	assert.EqualError(t, g(), "panic: boom")

	h := func() (err error) {
		defer Recover(&err)
		return nil
	}
	assert.NoError(t, h())
}

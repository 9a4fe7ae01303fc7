// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstant(t *testing.T) {
	c := New(10, 0, 360)
	assert.False(t, c.IsAnimated())
	for f := 0; f < 100; f += 9 {
		assert.Equal(t, 10.0, c.Evaluate(f, 100, 60))
	}
	assert.Equal(t, 10.0, c.Baseline())
}

func TestLinear(t *testing.T) {
	c := &Curve{Values: []float64{0, 100}, Min: 0, Max: 100}
	assert.True(t, c.IsAnimated())
	assert.Equal(t, 0.0, c.Evaluate(0, 101, 30))
	assert.InDelta(t, 50.0, c.Evaluate(50, 101, 30), 1e-9)
	assert.Equal(t, 100.0, c.Evaluate(100, 101, 30))
	assert.Equal(t, 100.0, c.Evaluate(500, 101, 30))
	assert.Equal(t, 0.0, c.Evaluate(-5, 101, 30))
}

func TestKeys(t *testing.T) {
	c := &Curve{Values: []float64{0, 10, 0}, Keys: []int{10}}
	assert.InDelta(t, 5.0, c.Evaluate(5, 21, 60), 1e-9)
	assert.InDelta(t, 10.0, c.Evaluate(10, 21, 60), 1e-9)
	assert.InDelta(t, 5.0, c.Evaluate(15, 21, 60), 1e-9)

	c.Interp = Constant
	assert.Equal(t, 0.0, c.Evaluate(9, 21, 60))
	assert.Equal(t, 10.0, c.Evaluate(10, 21, 60))
	assert.Equal(t, 10.0, c.Evaluate(19, 21, 60))
	assert.Equal(t, 0.0, c.Evaluate(20, 21, 60))
}

func TestDeterministic(t *testing.T) {
	c := &Curve{Values: []float64{3, 7, -2, 5}, Keys: []int{4, 12}}
	for f := 0; f < 30; f++ {
		assert.Equal(t, c.Evaluate(f, 30, 24), c.Evaluate(f, 30, 24))
		assert.Equal(t, c.Evaluate(f, 30, 24), c.Evaluate(f, 30, 60))
	}
}

func TestClone(t *testing.T) {
	c := &Curve{Values: []float64{1, 2}, Keys: []int{5}, Min: 0, Max: 2}
	d := c.Clone()
	assert.True(t, c.Equal(d))
	d.Values[0] = 1.5
	d.Keys[0] = 7
	assert.Equal(t, 1.0, c.Values[0])
	assert.Equal(t, 5, c.Keys[0])
	assert.False(t, c.Equal(d))

	e := c.WithBaseline(0.25)
	assert.Equal(t, 0.25, e.Baseline())
	assert.Equal(t, 1.0, c.Baseline())
	assert.Equal(t, 2.0, e.Values[1])
}

func TestBaselineEmpty(t *testing.T) {
	var c Curve
	assert.Equal(t, 0.0, c.Baseline())
	assert.Equal(t, 0.0, c.Evaluate(3, 10, 30))
	c.SetBaseline(4)
	assert.Equal(t, []float64{4}, c.Values)
}

func TestClamp(t *testing.T) {
	c := New(1, 0, 2)
	assert.Equal(t, 2.0, c.Clamp(3))
	assert.Equal(t, 0.0, c.Clamp(-1))
	assert.Equal(t, 1.5, c.Clamp(1.5))
}

func TestTime(t *testing.T) {
	tm := Time{Frame: 25, Length: 100, FPS: 60}
	assert.Equal(t, 0.25, tm.Progress())
	assert.Equal(t, 0.0, Time{Frame: 3}.Progress())
	assert.Equal(t, 4.0, tm.Eval(New(4, 0, 10)))
	assert.Equal(t, "Constant", Constant.String())
}

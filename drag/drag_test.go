// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drag

import (
	"testing"

	"cogentcore.org/huecurve/angle"
	"cogentcore.org/huecurve/anim"
	"cogentcore.org/huecurve/hue"
	"cogentcore.org/huecurve/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a 360 pixel wide canvas maps one pixel to one degree.
var canvas = mapping.Canvas{Width: 360, Height: 180}

var t0 = anim.Time{Frame: 0, Length: 100, FPS: 60}

func threePoints() hue.Points {
	return hue.Points{
		hue.NewControlPoint(10, 0, 1, 1),
		hue.NewControlPoint(100, 0, 1, 1),
		hue.NewControlPoint(350, 0, 1, 1),
	}
}

func solve(t *testing.T, ps hue.Points, id uint64, dx, dy float64, mode mapping.Modes) Result {
	res, err := Solve(Input{Points: ps, ID: id, DX: dx, DY: dy, Canvas: canvas, Mode: mode, Time: t0})
	require.NoError(t, err)
	return res
}

func TestTwoPointsUnconstrained(t *testing.T) {
	ps := hue.DefaultPoints()
	res := solve(t, ps, ps[0].ID, 100, 0, mapping.Luminance)
	assert.InDelta(t, 110, res.Angle, 1e-9)
	assert.Equal(t, angle.FullRange, res.Range)

	res = solve(t, ps, ps[0].ID, 500, 0, mapping.Luminance)
	assert.Equal(t, 360.0, res.Angle)
}

func TestMiddlePointClamped(t *testing.T) {
	ps := threePoints()
	mid := ps[1].ID
	assert.Equal(t, 350.0, solve(t, ps, mid, 1000, 0, mapping.Hue).Angle)
	assert.Equal(t, 10.0, solve(t, ps, mid, -1000, 0, mapping.Hue).Angle)
	assert.InDelta(t, 150, solve(t, ps, mid, 50, 0, mapping.Hue).Angle, 1e-9)
}

func TestWrappedNeighbors(t *testing.T) {
	ps := threePoints()
	first := ps[0].ID
	res := solve(t, ps, first, 0, 0, mapping.Luminance)
	assert.Equal(t, angle.Range{Min: 350, Max: 100}, res.Range)
	assert.True(t, res.Range.Wrapped())

	// 355 lies on the valid arc from 350 through 0 to 100.
	assert.InDelta(t, 355, solve(t, ps, first, 345, 0, mapping.Luminance).Angle, 1e-9)
	// inside the forbidden gap (100, 350): snap to the nearer boundary.
	assert.Equal(t, 100.0, solve(t, ps, first, 190, 0, mapping.Luminance).Angle)
	assert.Equal(t, 350.0, solve(t, ps, first, 290, 0, mapping.Luminance).Angle)

	last := ps[2].ID
	res = solve(t, ps, last, -260, 0, mapping.Luminance)
	assert.Equal(t, angle.Range{Min: 100, Max: 10}, res.Range)
	assert.Equal(t, 100.0, res.Angle)
	assert.Equal(t, 10.0, solve(t, ps, last, -300, 0, mapping.Luminance).Angle)
	assert.InDelta(t, 5, solve(t, ps, last, -345, 0, mapping.Luminance).Angle, 1e-9)
}

func TestOvershootStaysValid(t *testing.T) {
	ps := hue.Points{
		hue.NewControlPoint(10, 0, 1, 1),
		hue.NewControlPoint(100, 0, 1, 1),
		hue.NewControlPoint(200, 0, 1, 1),
		hue.NewControlPoint(350, 0, 1, 1),
	}
	for _, p := range ps {
		for dx := -800.0; dx <= 800; dx += 13 {
			res := solve(t, ps, p.ID, dx, 0, mapping.Saturation)
			assert.False(t, res.Range.Forbidden(res.Angle), "point %v dx %v angle %v range %v",
				p.Baseline(hue.Angle), dx, res.Angle, res.Range)
		}
	}
}

func TestVertical(t *testing.T) {
	ps := threePoints()
	id := ps[1].ID
	res := solve(t, ps, id, 0, -45, mapping.Luminance)
	assert.Equal(t, hue.Luminance, res.Field)
	assert.InDelta(t, 1.5, res.Value, 1e-9)

	res = solve(t, ps, id, 0, 1000, mapping.Saturation)
	assert.Equal(t, hue.Saturation, res.Field)
	assert.Equal(t, 0.0, res.Value)

	res = solve(t, ps, id, 0, 90, mapping.Hue)
	assert.Equal(t, hue.HueShift, res.Field)
	assert.InDelta(t, -180, res.Value, 1e-9)

	res = solve(t, ps, id, 0, -1000, mapping.Hue)
	assert.InDelta(t, 180, res.Value, 1e-9)
}

func TestApply(t *testing.T) {
	ps := threePoints()
	ps[1].Angle.Values = append(ps[1].Angle.Values, 150)
	id := ps[1].ID
	res := solve(t, ps, id, 20, -45, mapping.Luminance)
	np := Apply(ps, res)

	p := np.ByID(id)
	require.NotNil(t, p)
	require.Len(t, p.Angle.Values, 2)
	assert.InDelta(t, 120, p.Angle.Values[0], 1e-9)
	assert.Equal(t, 150.0, p.Angle.Values[1])
	assert.InDelta(t, 1.5, p.Baseline(hue.Luminance), 1e-9)
	assert.Equal(t, 1.0, p.Baseline(hue.Saturation))
	assert.Equal(t, 100.0, ps[1].Baseline(hue.Angle), "original set is unchanged")
	assert.Equal(t, 1, np.Index(id))

	assert.Equal(t, ps, Apply(ps, Result{ID: 999999}))
}

func TestApplyCurveRange(t *testing.T) {
	ps := threePoints()
	ps[1].Luminance.Max = 1.2
	id := ps[1].ID
	res := solve(t, ps, id, 0, -90, mapping.Luminance)
	assert.InDelta(t, 2, res.Value, 1e-9)
	p := Apply(ps, res).ByID(id)
	assert.InDelta(t, 1.2, p.Baseline(hue.Luminance), 1e-9)
}

func TestErrors(t *testing.T) {
	ps := threePoints()
	_, err := Solve(Input{Points: ps, ID: 999999, Canvas: canvas, Time: t0})
	assert.Error(t, err)
	_, err = Solve(Input{Points: ps, ID: ps[0].ID, Canvas: mapping.Canvas{}, Time: t0})
	assert.ErrorIs(t, err, mapping.ErrInvalidInput)
}

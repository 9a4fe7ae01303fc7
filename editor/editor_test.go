// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"context"
	"image/color"
	"sync"
	"testing"
	"time"

	"cogentcore.org/huecurve/anim"
	"cogentcore.org/huecurve/hue"
	"cogentcore.org/huecurve/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditor(t *testing.T, angles ...float64) (*Editor, *hue.Effect, *hue.Effect) {
	t.Helper()
	primary, linked := hue.NewEffect(), hue.NewEffect()
	if len(angles) > 0 {
		var ps hue.Points
		for _, a := range angles {
			ps = ps.Add(hue.NewControlPoint(a, 0, 1, 1))
		}
		primary.SetPoints(ps)
	}
	opts := DefaultOptions()
	opts.Canvas = mapping.Canvas{Width: 360, Height: 180}
	ed := New(NewLoop(), opts, primary, linked)
	t.Cleanup(ed.Close)
	return ed, primary, linked
}

func sortedAngles(ps hue.Points) []float64 {
	var a []float64
	for _, ev := range ps.Sorted(anim.Time{}) {
		a = append(a, ev.Angle)
	}
	return a
}

func TestNew(t *testing.T) {
	ed := New(NewLoop(), DefaultOptions(), hue.NewEffect())
	defer ed.Close()
	require.Len(t, ed.Points, 2)
	assert.Equal(t, ed.Points[0].ID, ed.Selected)
	assert.Equal(t, mapping.Luminance, ed.Mode)
	assert.True(t, ed.ShowTimeline)
	assert.True(t, ed.ShowGrid)
	assert.Equal(t, -1, ed.SelectedIgnoredColor)

	require.Len(t, ed.VerticalGrid, 5)
	require.Len(t, ed.HorizontalGrid, 5)
	assert.InDelta(t, 400.0/6, ed.VerticalGrid[0], 1e-9)
	assert.InDelta(t, 150, ed.HorizontalGrid[4], 1e-9)

	require.Len(t, ed.DisplayPoints, 2)
	assert.InDelta(t, 10.0/360*400, ed.DisplayPoints[0].X, 1e-9)
	assert.InDelta(t, 90, ed.DisplayPoints[0].Y, 1e-9)
	assert.Equal(t, 4, ed.Path.Len())
}

func TestAddPointAcrossSeam(t *testing.T) {
	ed, primary, linked := newEditor(t, 350, 10)
	ed.SetClickAnchor(mapping.Point{X: 359, Y: 20})
	require.True(t, ed.AddPoint.Run())

	assert.Equal(t, []float64{10, 350, 359}, sortedAngles(ed.Points))
	assert.Equal(t, ed.Points[2].ID, ed.Selected)
	assert.Equal(t, 359.0, ed.SelectedPoint().Angle.Baseline())
	assert.True(t, primary.Snapshot().Points.Equal(ed.Points))
	assert.Len(t, linked.Snapshot().Points, 3)
	assert.Len(t, ed.DisplayPoints, 3)
}

func TestDeleteGuard(t *testing.T) {
	ed, primary, _ := newEditor(t, 10, 100, 200)
	assert.True(t, ed.DeleteSelectedPoint.Enabled())
	require.True(t, ed.DeleteSelectedPoint.Run())
	assert.Len(t, ed.Points, 2)
	assert.Equal(t, ed.Points[0].ID, ed.Selected)
	require.True(t, ed.DeleteSelectedPoint.Run())

	assert.Len(t, ed.Points, 1)
	assert.False(t, ed.DeleteSelectedPoint.Enabled())
	assert.False(t, ed.DeleteSelectedPoint.Run())
	assert.Len(t, primary.Snapshot().Points, 1)

	ed.Select(0)
	assert.False(t, ed.DeleteSelectedPoint.Enabled())
}

func TestDrag(t *testing.T) {
	ed, primary, linked := newEditor(t, 10, 100, 350)
	begins, ends := 0, 0
	ed.OnBeginEdit = func() { begins++ }
	ed.OnEndEdit = func() { ends++ }

	id := ed.Points[0].ID
	require.NoError(t, ed.BeginDrag(id))
	assert.True(t, ed.Dragging())
	require.NoError(t, ed.DragDelta(200, -45))
	ed.EndDrag()
	assert.False(t, ed.Dragging())
	assert.Equal(t, 1, begins)
	assert.Equal(t, 1, ends)

	cp := ed.Points.ByID(id)
	assert.InDelta(t, 100, cp.Angle.Baseline(), 1e-9)
	assert.InDelta(t, 1.5, cp.Luminance.Baseline(), 1e-9)

	pp := primary.Snapshot().Points.ByID(id)
	lp := linked.Snapshot().Points.ByID(id)
	require.NotNil(t, lp)
	assert.True(t, pp.Equal(lp))
	assert.NotSame(t, pp.Angle, lp.Angle)

	assert.Error(t, ed.DragDelta(1, 1))
	assert.Error(t, ed.BeginDrag(12345678))
}

func TestDragModes(t *testing.T) {
	ed, _, _ := newEditor(t, 10, 350)
	ed.SetHueMode.Run()
	assert.Equal(t, mapping.Hue, ed.Mode)
	id := ed.Points[1].ID
	require.NoError(t, ed.BeginDrag(id))
	require.NoError(t, ed.DragDelta(0, -45))
	ed.EndDrag()
	assert.InDelta(t, 90, ed.Points.ByID(id).HueShift.Baseline(), 1e-9)
	assert.InDelta(t, 45, ed.DisplayPoints[1].Y, 1e-9)

	ed.SetSaturationMode.Run()
	assert.Equal(t, mapping.Saturation, ed.Mode)
	assert.InDelta(t, 90, ed.DisplayPoints[1].Y, 1e-9)
	ed.SetLuminanceMode.Run()
	assert.Equal(t, mapping.Luminance, ed.Mode)
}

func TestChangeDiff(t *testing.T) {
	ed, primary, _ := newEditor(t, 10, 350)
	n := ed.Refreshes()

	primary.SetPoints(primary.Snapshot().Points.Clone())
	assert.Equal(t, 1, ed.Loop.Drain())
	assert.Equal(t, n, ed.Refreshes(), "same content does not refresh")

	ps := primary.Snapshot().Points.Add(hue.NewControlPoint(180, 0, 1, 1))
	primary.SetPoints(ps)
	assert.Equal(t, n, ed.Refreshes(), "changes are re-queued")
	ed.Loop.Drain()
	assert.Equal(t, n+1, ed.Refreshes())
	assert.Len(t, ed.Points, 3)

	primary.SetIgnoredColors(hue.IgnoredColors{hue.White})
	ed.Loop.Drain()
	assert.Equal(t, hue.IgnoredColors{hue.White}, ed.IgnoredColors)
}

func TestStateChange(t *testing.T) {
	ed, primary, _ := newEditor(t, 10, 350)
	n := ed.Refreshes()
	ps := hue.Points{hue.NewControlPoint(90, 0, 1, 1), hue.NewControlPoint(270, 0, 1, 1), hue.NewControlPoint(180, 0, 1, 1)}
	primary.SetState(ps, hue.IgnoredColors{hue.White}, nil, nil)
	assert.Equal(t, 1, ed.Loop.Drain())
	assert.Equal(t, n+1, ed.Refreshes())
	assert.Equal(t, []float64{90, 180, 270}, sortedAngles(ed.Points))
	assert.Equal(t, hue.IgnoredColors{hue.White}, ed.IgnoredColors)
}

func TestProgress(t *testing.T) {
	ed, primary, _ := newEditor(t)
	primary.SetProgress(anim.Time{Frame: 50, Length: 100, FPS: 60})
	ed.Loop.Drain()
	assert.Equal(t, 0.5, ed.TimeSlider)
	assert.InDelta(t, 180, ed.TimelineX, 1e-9)
	assert.Equal(t, 50, ed.Time().Frame)

	ed.SetShowTimeline(false)
	primary.SetProgress(anim.Time{Frame: 10, Length: 100, FPS: 60})
	ed.Loop.Drain()
	assert.Equal(t, 0.5, ed.TimeSlider)
}

func TestIgnoredColors(t *testing.T) {
	ed, primary, linked := newEditor(t)
	assert.False(t, ed.RemoveIgnoredColor.Enabled())
	require.True(t, ed.AddIgnoredColor.Run())
	assert.Equal(t, hue.IgnoredColors{hue.White}, primary.Snapshot().IgnoredColors)
	assert.Equal(t, hue.IgnoredColors{hue.White}, linked.Snapshot().IgnoredColors)

	require.NoError(t, ed.SetIgnoredColor(0, color.NRGBA{255, 0, 0, 255}))
	assert.Equal(t, "#ff0000ff", ed.IgnoredColors[0].Hex())
	assert.Error(t, ed.SetIgnoredColor(3, color.White))

	ed.SelectIgnoredColor(0)
	require.True(t, ed.RemoveIgnoredColor.Run())
	assert.Empty(t, primary.Snapshot().IgnoredColors)
	assert.Equal(t, -1, ed.SelectedIgnoredColor)
	assert.False(t, ed.RemoveIgnoredColor.Run())
}

func TestCanvas(t *testing.T) {
	ed, _, _ := newEditor(t, 180)
	ed.SetCanvas(mapping.Canvas{Width: 600, Height: 300})
	assert.InDelta(t, 100, ed.VerticalGrid[0], 1e-9)
	assert.InDelta(t, 300, ed.DisplayPoints[0].X, 1e-9)

	ed.SetCanvas(mapping.Canvas{})
	assert.Empty(t, ed.VerticalGrid)
	assert.False(t, ed.AddPoint.Enabled())
}

func TestPropagate(t *testing.T) {
	ed, primary, linked := newEditor(t, 30, 60)
	primary.SetPoints(primary.Snapshot().Points.Add(hue.NewControlPoint(90, 0, 1, 1)))
	ed.Propagate()
	assert.True(t, linked.Snapshot().Points.Equal(primary.Snapshot().Points))
	assert.Len(t, ed.Points, 3)
}

func TestGradient(t *testing.T) {
	img := HueGradient(0, 0)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(0, 0))
	c := img.RGBAAt(0, 119)
	assert.Greater(t, c.R, c.G)
	assert.Equal(t, c.G, c.B)

	ed, _, _ := newEditor(t)
	assert.Equal(t, 360, ed.Gradient().Bounds().Dx())
}

func TestLoopOrder(t *testing.T) {
	l := NewLoop()
	var got []int
	for i := range 5 {
		l.Post(func() { got = append(got, i) })
	}
	l.Post(nil)
	assert.Equal(t, 5, l.Len())
	assert.Equal(t, 5, l.Drain())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
	assert.Equal(t, 0, l.Drain())
}

func TestLoopPostWhileDraining(t *testing.T) {
	l := NewLoop()
	var got []string
	l.Post(func() {
		got = append(got, "a")
		l.Post(func() { got = append(got, "c") })
		assert.Equal(t, 2, l.Len())
	})
	l.Post(func() { got = append(got, "b") })
	assert.Equal(t, 3, l.Drain())
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, l.Len())

	l.Post(func() { got = append(got, "d") })
	assert.Equal(t, 1, l.Drain())
	assert.Equal(t, "d", got[3])
}

func TestLoopPerSourceOrder(t *testing.T) {
	l := NewLoop()
	const sources, each = 4, 100
	last := make([]int, sources)
	ok := true
	var wg sync.WaitGroup
	for s := range sources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range each {
				l.Post(func() {
					if i != last[s] {
						ok = false
					}
					last[s] = i + 1
				})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, sources*each, l.Drain())
	assert.True(t, ok)
}

func TestLoopRun(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- l.Run(ctx) }()

	ran := make(chan struct{})
	l.Post(func() { close(ran) })
	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("posted function did not run")
	}
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

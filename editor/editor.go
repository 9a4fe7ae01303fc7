// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package editor provides the interactive edit context of the hue curve:
// mode and canvas state, commands with guards, point dragging, and the
// display state (point positions, path, grid and timeline) derived from
// the edited effects. All methods of [Editor] must be called on the
// goroutine of its [Loop].
package editor

import (
	"log/slog"

	"cogentcore.org/huecurve/anim"
	"cogentcore.org/huecurve/curvepath"
	"cogentcore.org/huecurve/hue"
	"cogentcore.org/huecurve/mapping"
)

// Options configure an [Editor].
type Options struct {
	// Canvas is the initial canvas size.
	Canvas mapping.Canvas

	// PreviewLength is the item length in frames used to evaluate
	// curves in the editor.
	PreviewLength int

	// PreviewFPS is the frame rate used to evaluate curves in the editor.
	PreviewFPS int

	// GridDivisions is the number of grid cells along each axis.
	GridDivisions int
}

// DefaultOptions returns the default editor options.
func DefaultOptions() Options {
	return Options{
		Canvas:        mapping.Canvas{Width: 400, Height: 180},
		PreviewLength: 100,
		PreviewFPS:    60,
		GridDivisions: 6,
	}
}

// DisplayPoint is the canvas position of a control point.
type DisplayPoint struct {
	ID uint64
	mapping.Point
}

// Editor edits one primary effect and keeps any number of linked
// effects in sync with it. Linked effects receive deep copies.
type Editor struct {
	// Loop is the edit context.
	Loop *Loop

	// Mode is the value edited vertically.
	Mode mapping.Modes

	// Canvas is the size of the editing area.
	Canvas mapping.Canvas

	// TimeSlider is the preview position in [0, 1].
	TimeSlider float64

	// ShowTimeline is whether the timeline follows the render progress.
	ShowTimeline bool

	// ShowGrid is whether grid lines are shown.
	ShowGrid bool

	// TimelineX is the x position of the timeline.
	TimelineX float64

	// ClickAnchor is the position at which AddPoint inserts.
	ClickAnchor mapping.Point

	// Selected is the ID of the selected point, or 0.
	Selected uint64

	// SelectedIgnoredColor is the index of the selected ignored color, or -1.
	SelectedIgnoredColor int

	// Points is the point set last seen on the primary effect.
	Points hue.Points

	// IgnoredColors are the ignored colors last seen on the primary effect.
	IgnoredColors hue.IgnoredColors

	// DisplayPoints are the positions of Points, in the same order.
	DisplayPoints []DisplayPoint

	// Path is the curve through the points.
	Path curvepath.Path

	// VerticalGrid and HorizontalGrid are the grid line positions.
	VerticalGrid, HorizontalGrid []float64

	// OnBeginEdit and OnEndEdit are called around every user edit,
	// so that the host can group it into one undo step.
	OnBeginEdit, OnEndEdit func()

	// AddPoint and the other commands are the guarded user commands.
	AddPoint, DeleteSelectedPoint                   *Command
	AddIgnoredColor, RemoveIgnoredColor             *Command
	SetLuminanceMode, SetSaturationMode, SetHueMode *Command

	opts    Options
	effects []*hue.Effect
	unsubs  []func()
	dragID  uint64

	// refreshes counts display refreshes.
	refreshes int
}

// New returns an editor for the given effects, the first of which is
// the primary. Changes of the primary effect are re-queued on loop.
func New(loop *Loop, opts Options, primary *hue.Effect, linked ...*hue.Effect) *Editor {
	ed := &Editor{
		Loop:                 loop,
		Canvas:               opts.Canvas,
		ShowTimeline:         true,
		ShowGrid:             true,
		SelectedIgnoredColor: -1,
		opts:                 opts,
		effects:              append([]*hue.Effect{primary}, linked...),
	}
	if ed.opts.GridDivisions <= 0 {
		ed.opts.GridDivisions = DefaultOptions().GridDivisions
	}
	ed.initCommands()
	ed.unsubs = append(ed.unsubs, primary.Subscribe(func(ch hue.Change) {
		loop.Post(func() { ed.handleChange(ch) })
	}))
	snap := primary.Snapshot()
	ed.syncPoints(snap.Points)
	ed.syncIgnoredColors(snap.IgnoredColors)
	if ed.Selected == 0 && len(ed.Points) > 0 {
		ed.Selected = ed.Points[0].ID
	}
	ed.populateGrid()
	return ed
}

// Close stops listening to the primary effect.
func (ed *Editor) Close() {
	for _, u := range ed.unsubs {
		u()
	}
	ed.unsubs = nil
}

// Primary returns the primary effect.
func (ed *Editor) Primary() *hue.Effect {
	return ed.effects[0]
}

// Time returns the preview time of the time slider.
func (ed *Editor) Time() anim.Time {
	return anim.Time{
		Frame:  int(ed.TimeSlider * float64(ed.opts.PreviewLength)),
		Length: ed.opts.PreviewLength,
		FPS:    ed.opts.PreviewFPS,
	}
}

// Refreshes returns the number of display refreshes so far.
func (ed *Editor) Refreshes() int {
	return ed.refreshes
}

// SelectedPoint returns the selected point, or nil.
func (ed *Editor) SelectedPoint() *hue.ControlPoint {
	return ed.Points.ByID(ed.Selected)
}

// SetMode sets the edit mode.
func (ed *Editor) SetMode(m mapping.Modes) {
	if ed.Mode == m {
		return
	}
	ed.Mode = m
	ed.Refresh()
}

// SetCanvas sets the canvas size, as when the editor is resized.
func (ed *Editor) SetCanvas(c mapping.Canvas) {
	ed.Canvas = c
	ed.populateGrid()
	ed.Refresh()
}

// SetTimeSlider sets the preview position in [0, 1].
func (ed *Editor) SetTimeSlider(v float64) {
	v = min(max(v, 0), 1)
	if ed.TimeSlider == v {
		return
	}
	ed.TimeSlider = v
	ed.Refresh()
}

// SetShowTimeline sets whether the timeline follows render progress.
func (ed *Editor) SetShowTimeline(show bool) {
	if ed.ShowTimeline == show {
		return
	}
	ed.ShowTimeline = show
	ed.Refresh()
}

// SetShowGrid sets whether grid lines are shown.
func (ed *Editor) SetShowGrid(show bool) {
	if ed.ShowGrid == show {
		return
	}
	ed.ShowGrid = show
	ed.Refresh()
}

// SetClickAnchor records the position of a secondary click,
// where [Editor.AddPoint] inserts.
func (ed *Editor) SetClickAnchor(p mapping.Point) {
	ed.ClickAnchor = p
}

// Select selects the point with the given ID; unknown IDs clear
// the selection.
func (ed *Editor) Select(id uint64) {
	if ed.Points.Index(id) < 0 {
		id = 0
	}
	ed.Selected = id
}

// SelectIgnoredColor selects the ignored color at index i;
// out of range indexes clear the selection.
func (ed *Editor) SelectIgnoredColor(i int) {
	if i < 0 || i >= len(ed.IgnoredColors) {
		i = -1
	}
	ed.SelectedIgnoredColor = i
}

// Refresh recomputes the display state for the current time, mode and canvas.
func (ed *Editor) Refresh() {
	ed.refreshes++
	if ed.Canvas.Check() != nil {
		return
	}
	ed.TimelineX = ed.TimeSlider * ed.Canvas.Width
	t := ed.Time()
	ed.DisplayPoints = ed.DisplayPoints[:0]
	for _, cp := range ed.Points {
		ev := cp.Eval(t)
		ed.DisplayPoints = append(ed.DisplayPoints, DisplayPoint{
			ID:    cp.ID,
			Point: mapping.Map(ed.Mode, ev.Angle, ev.Luminance, ev.Saturation, ev.HueShift, ed.Canvas),
		})
	}
	ed.Path = curvepath.Build(ed.Points, t, ed.Mode, ed.Canvas)
}

func (ed *Editor) populateGrid() {
	ed.VerticalGrid = ed.VerticalGrid[:0]
	ed.HorizontalGrid = ed.HorizontalGrid[:0]
	if ed.Canvas.Check() != nil {
		return
	}
	n := ed.opts.GridDivisions
	sx, sy := ed.Canvas.Width/float64(n), ed.Canvas.Height/float64(n)
	for i := 1; i < n; i++ {
		ed.VerticalGrid = append(ed.VerticalGrid, float64(i)*sx)
		ed.HorizontalGrid = append(ed.HorizontalGrid, float64(i)*sy)
	}
}

// handleChange processes an effect notification on the edit goroutine.
func (ed *Editor) handleChange(ch hue.Change) {
	switch ch.Kind {
	case hue.PointsChanged:
		ed.syncPoints(ch.Snapshot.Points)
	case hue.IgnoredColorsChanged:
		ed.syncIgnoredColors(ch.Snapshot.IgnoredColors)
	case hue.StateChanged:
		ed.syncIgnoredColors(ch.Snapshot.IgnoredColors)
		ed.syncPoints(ch.Snapshot.Points)
	case hue.ProgressChanged:
		if ed.ShowTimeline {
			ed.SetTimeSlider(ch.Progress)
		}
	}
}

// syncPoints adopts ps as the displayed point set when its content
// differs from the current one.
func (ed *Editor) syncPoints(ps hue.Points) {
	if len(ps) == 0 || ps.Equal(ed.Points) {
		return
	}
	ed.Points = ps
	if ed.Selected != 0 && ps.Index(ed.Selected) < 0 {
		ed.Selected = ps[0].ID
	}
	ed.Refresh()
}

func (ed *Editor) syncIgnoredColors(ics hue.IgnoredColors) {
	if ics.Equal(ed.IgnoredColors) {
		return
	}
	ed.IgnoredColors = ics
	if ed.SelectedIgnoredColor >= len(ics) {
		ed.SelectedIgnoredColor = -1
	}
}

// publishPoints sets ps on every effect, each receiving its own deep
// copy, and adopts the primary's copy for display.
func (ed *Editor) publishPoints(ps hue.Points) {
	for _, ef := range ed.effects {
		ef.SetPoints(ps.Clone())
	}
	ed.syncPoints(ed.Primary().Snapshot().Points)
}

func (ed *Editor) publishIgnoredColors(ics hue.IgnoredColors) {
	for _, ef := range ed.effects {
		ef.SetIgnoredColors(ics)
	}
	ed.syncIgnoredColors(ed.Primary().Snapshot().IgnoredColors)
}

// Propagate copies the points of the primary effect to every linked
// effect, as after the primary was edited through its properties.
func (ed *Editor) Propagate() {
	ps := ed.Primary().Snapshot().Points
	for _, ef := range ed.effects[1:] {
		ef.SetPoints(ps.Clone())
	}
	ed.syncPoints(ps)
}

func (ed *Editor) beginEdit() {
	if ed.OnBeginEdit != nil {
		ed.OnBeginEdit()
	}
}

func (ed *Editor) endEdit() {
	if ed.OnEndEdit != nil {
		ed.OnEndEdit()
	}
}

// edit runs fn between the begin and end edit callbacks.
func (ed *Editor) edit(name string, fn func()) {
	slog.Debug("editor: edit", "command", name)
	ed.beginEdit()
	defer ed.endEdit()
	fn()
}

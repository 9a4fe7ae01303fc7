// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"fmt"
	"image/color"

	"cogentcore.org/huecurve/drag"
	"cogentcore.org/huecurve/hue"
	"cogentcore.org/huecurve/mapping"
)

// Command is a user command with a guard. A command whose guard is
// false is disabled and does nothing when run.
type Command struct {
	// Name is the name of the command.
	Name string

	can func() bool
	run func()
}

// Enabled returns whether the command can run.
func (c *Command) Enabled() bool {
	return c.can == nil || c.can()
}

// Run runs the command if it is enabled, and returns whether it ran.
func (c *Command) Run() bool {
	if !c.Enabled() {
		return false
	}
	c.run()
	return true
}

func (ed *Editor) initCommands() {
	always := func() bool { return true }
	ed.SetLuminanceMode = &Command{Name: "SetLuminanceMode", can: always, run: func() { ed.SetMode(mapping.Luminance) }}
	ed.SetSaturationMode = &Command{Name: "SetSaturationMode", can: always, run: func() { ed.SetMode(mapping.Saturation) }}
	ed.SetHueMode = &Command{Name: "SetHueMode", can: always, run: func() { ed.SetMode(mapping.Hue) }}

	ed.AddPoint = &Command{Name: "AddPoint", can: func() bool { return ed.Canvas.Check() == nil }, run: ed.addPoint}
	ed.DeleteSelectedPoint = &Command{
		Name: "DeleteSelectedPoint",
		can:  func() bool { return ed.Points.ByID(ed.Selected) != nil && ed.Points.CanRemove(ed.Selected) },
		run:  ed.deleteSelectedPoint,
	}
	ed.AddIgnoredColor = &Command{Name: "AddIgnoredColor", can: always, run: func() { ed.AddIgnoredColorOf(hue.White) }}
	ed.RemoveIgnoredColor = &Command{
		Name: "RemoveIgnoredColor",
		can:  func() bool { return ed.SelectedIgnoredColor >= 0 && ed.SelectedIgnoredColor < len(ed.IgnoredColors) },
		run:  ed.removeIgnoredColor,
	}
}

// addPoint inserts a neutral point at the angle of the click anchor
// and selects it.
func (ed *Editor) addPoint() {
	ed.edit("AddPoint", func() {
		a := mapping.AngleAt(ed.ClickAnchor.X, ed.Canvas)
		cp := hue.NewControlPoint(a, 0, 1, 1)
		ed.publishPoints(ed.Points.Add(cp))
		ed.Selected = cp.ID
	})
}

func (ed *Editor) deleteSelectedPoint() {
	ed.edit("DeleteSelectedPoint", func() {
		ps := ed.Points.Remove(ed.Selected)
		ed.publishPoints(ps)
		ed.Selected = ed.Points[0].ID
	})
}

// AddIgnoredColorOf appends c to the ignored colors.
func (ed *Editor) AddIgnoredColorOf(c hue.IgnoredColor) {
	ed.edit("AddIgnoredColor", func() {
		ed.publishIgnoredColors(ed.IgnoredColors.Add(c))
	})
}

func (ed *Editor) removeIgnoredColor() {
	ed.edit("RemoveIgnoredColor", func() {
		ed.publishIgnoredColors(ed.IgnoredColors.Remove(ed.SelectedIgnoredColor))
		ed.SelectedIgnoredColor = -1
	})
}

// SetIgnoredColor replaces the ignored color at index i.
func (ed *Editor) SetIgnoredColor(i int, c color.Color) error {
	if i < 0 || i >= len(ed.IgnoredColors) {
		return fmt.Errorf("editor: ignored color %d out of range [0, %d)", i, len(ed.IgnoredColors))
	}
	ed.edit("SetIgnoredColor", func() {
		ed.publishIgnoredColors(ed.IgnoredColors.Set(i, hue.IgnoredColorOf(c)))
	})
	return nil
}

// BeginDrag starts dragging the point with the given ID and selects it.
func (ed *Editor) BeginDrag(id uint64) error {
	if ed.Points.Index(id) < 0 {
		return fmt.Errorf("editor: point %d not found", id)
	}
	ed.Selected = id
	ed.dragID = id
	ed.beginEdit()
	return nil
}

// DragDelta moves the dragged point by the given pixel deltas,
// constrained between its circular neighbors, and publishes the
// result to every effect.
func (ed *Editor) DragDelta(dx, dy float64) error {
	if ed.dragID == 0 {
		return fmt.Errorf("editor: no drag in progress")
	}
	res, err := drag.Solve(drag.Input{
		Points: ed.Points,
		ID:     ed.dragID,
		DX:     dx,
		DY:     dy,
		Canvas: ed.Canvas,
		Mode:   ed.Mode,
		Time:   ed.Time(),
	})
	if err != nil {
		return err
	}
	ed.publishPoints(drag.Apply(ed.Points, res))
	return nil
}

// EndDrag ends the current drag.
func (ed *Editor) EndDrag() {
	if ed.dragID == 0 {
		return
	}
	ed.dragID = 0
	ed.endEdit()
}

// Dragging returns whether a drag is in progress.
func (ed *Editor) Dragging() bool {
	return ed.dragID != 0
}

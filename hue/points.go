// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hue

import (
	"slices"

	"cogentcore.org/huecurve/anim"
)

// Points is an ordered set of control points. Order is insertion order,
// which breaks ties between equal angles; it is not display order.
// Points is treated as immutable: every edit returns a new slice, and
// the points in it are never mutated once published.
type Points []*ControlPoint

// DefaultPoints returns the two points a new effect starts with,
// at 10° and 350°, with no adjustment.
func DefaultPoints() Points {
	return Points{
		NewControlPoint(10, 0, 1, 1),
		NewControlPoint(350, 0, 1, 1),
	}
}

// Index returns the insertion index of the point with the given ID, or -1.
func (ps Points) Index(id uint64) int {
	return slices.IndexFunc(ps, func(p *ControlPoint) bool { return p.ID == id })
}

// ByID returns the point with the given ID, or nil.
func (ps Points) ByID(id uint64) *ControlPoint {
	if i := ps.Index(id); i >= 0 {
		return ps[i]
	}
	return nil
}

// Add returns a new set with p appended.
func (ps Points) Add(p *ControlPoint) Points {
	return append(slices.Clip(ps), p)
}

// CanRemove returns whether the point with the given ID can be removed:
// it must exist and must not be the only remaining point.
func (ps Points) CanRemove(id uint64) bool {
	return len(ps) > 1 && ps.Index(id) >= 0
}

// Remove returns a new set without the point with the given ID.
// Removing the only remaining point (or an unknown one) is a no-op
// that returns the set unchanged, so the set never becomes empty.
func (ps Points) Remove(id uint64) Points {
	if !ps.CanRemove(id) {
		return ps
	}
	return slices.Delete(slices.Clone(ps), ps.Index(id), ps.Index(id)+1)
}

// Replace returns a new set where the point with p's ID is replaced by p,
// keeping its insertion position. It returns the set unchanged if there
// is no such point.
func (ps Points) Replace(p *ControlPoint) Points {
	i := ps.Index(p.ID)
	if i < 0 {
		return ps
	}
	np := slices.Clone(ps)
	np[i] = p
	return np
}

// Clone returns a deep copy of the set: every point and curve is copied,
// so the result shares nothing with ps.
func (ps Points) Clone() Points {
	if ps == nil {
		return nil
	}
	np := make(Points, len(ps))
	for i, p := range ps {
		np[i] = p.Clone()
	}
	return np
}

// Equal returns whether the two sets have the same points,
// with the same content, in the same order.
func (ps Points) Equal(o Points) bool {
	return slices.EqualFunc(ps, o, func(a, b *ControlPoint) bool {
		return a == b || (a.ID == b.ID && a.Equal(b))
	})
}

// Eval evaluates every point at the given time, in insertion order.
func (ps Points) Eval(t anim.Time) []Evaluated {
	evs := make([]Evaluated, len(ps))
	for i, p := range ps {
		evs[i] = p.Eval(t)
		evs[i].Index = i
	}
	return evs
}

// Sorted evaluates every point at the given time and returns them sorted
// ascending by normalized angle. The sort is stable: points with equal
// angles keep their insertion order.
func (ps Points) Sorted(t anim.Time) []Evaluated {
	evs := ps.Eval(t)
	SortEvaluated(evs)
	return evs
}

// SortEvaluated stable-sorts evaluated points ascending by angle.
func SortEvaluated(evs []Evaluated) {
	slices.SortStableFunc(evs, func(a, b Evaluated) int {
		switch {
		case a.Angle < b.Angle:
			return -1
		case a.Angle > b.Angle:
			return 1
		}
		return 0
	})
}

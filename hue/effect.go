// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hue provides the data model of the hue curve correction
// effect: control points on the hue circle, ignored colors, and the
// [Effect] that owns them and publishes immutable [Snapshot]s of its
// state for the editor and the renderer.
package hue

import (
	"math"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"cogentcore.org/huecurve/anim"
)

// Snapshot is an immutable view of the state of an [Effect].
// Nothing reachable from a snapshot is ever mutated after it is
// published, so it can be read from any goroutine without locks.
type Snapshot struct {

	// Version increases by one with every published snapshot.
	Version uint64

	// Points are the control points, in insertion order.
	Points Points

	// IgnoredColors are the colors excluded from the transform.
	IgnoredColors IgnoredColors

	// Factor is the blend between the original and corrected color, in [0, 1].
	Factor *anim.Curve

	// Tolerance is the match tolerance of the ignored colors, in [0, 1].
	Tolerance *anim.Curve
}

// Changes are the kinds of change an [Effect] notifies about.
type Changes int32

const (
	// PointsChanged is sent when the control points change.
	PointsChanged Changes = iota

	// IgnoredColorsChanged is sent when the ignored colors change.
	IgnoredColorsChanged

	// FactorChanged is sent when the factor curve changes.
	FactorChanged

	// ToleranceChanged is sent when the tolerance curve changes.
	ToleranceChanged

	// ProgressChanged is sent when the render progress changes.
	ProgressChanged

	// StateChanged is sent when several parts of the state are
	// replaced at once by [Effect.SetState].
	StateChanged
)

func (c Changes) String() string {
	switch c {
	case PointsChanged:
		return "PointsChanged"
	case IgnoredColorsChanged:
		return "IgnoredColorsChanged"
	case FactorChanged:
		return "FactorChanged"
	case ToleranceChanged:
		return "ToleranceChanged"
	case ProgressChanged:
		return "ProgressChanged"
	case StateChanged:
		return "StateChanged"
	}
	return "Changes(" + strconv.Itoa(int(c)) + ")"
}

// Change is a notification sent by an [Effect] to its subscribers.
type Change struct {
	// Kind is what changed.
	Kind Changes

	// Snapshot is the state after the change.
	Snapshot *Snapshot

	// Progress is the current render progress, for ProgressChanged.
	Progress float64
}

// Effect owns the state of one instance of the hue correction effect.
// Edits publish a new [Snapshot] atomically (copy on write); readers
// call [Effect.Snapshot] and never observe a partial edit.
type Effect struct {
	snap atomic.Pointer[Snapshot]

	// progress holds the float64 bits of the render progress.
	progress atomic.Uint64

	// subs is the copy-on-write subscriber list, so that notifying
	// from the render goroutine takes no lock.
	subs atomic.Pointer[[]subscriber]

	// mu serializes writers, including changes to subs.
	// It is never taken by the render path.
	mu      sync.Mutex
	nextSub int
}

type subscriber struct {
	id int
	fn func(Change)
}

// NewEffect returns a new effect with the default points, no ignored
// colors, a factor of 1 and a tolerance of 0.1.
func NewEffect() *Effect {
	ef := &Effect{}
	ef.snap.Store(&Snapshot{
		Version:   1,
		Points:    DefaultPoints(),
		Factor:    anim.New(1, 0, 1),
		Tolerance: anim.New(0.1, 0, 1),
	})
	return ef
}

// Snapshot returns the current immutable state.
func (ef *Effect) Snapshot() *Snapshot {
	return ef.snap.Load()
}

// Progress returns the last render progress set by [Effect.SetProgress].
func (ef *Effect) Progress() float64 {
	return math.Float64frombits(ef.progress.Load())
}

// Subscribe registers fn to be called after every change.
// fn is called on the goroutine that made the change, which may be
// the render goroutine; it must not block and should hand the change
// off to its own context. The returned function unsubscribes.
func (ef *Effect) Subscribe(fn func(Change)) (unsubscribe func()) {
	ef.mu.Lock()
	ef.nextSub++
	id := ef.nextSub
	subs := append(ef.subscribers(), subscriber{id: id, fn: fn})
	ef.subs.Store(&subs)
	ef.mu.Unlock()
	return func() {
		ef.mu.Lock()
		defer ef.mu.Unlock()
		subs := slices.DeleteFunc(ef.subscribers(), func(s subscriber) bool { return s.id == id })
		ef.subs.Store(&subs)
	}
}

// subscribers returns a copy of the current subscriber list.
func (ef *Effect) subscribers() []subscriber {
	if sp := ef.subs.Load(); sp != nil {
		return slices.Clone(*sp)
	}
	return nil
}

func (ef *Effect) notify(ch Change) {
	sp := ef.subs.Load()
	if sp == nil {
		return
	}
	for _, s := range *sp {
		s.fn(ch)
	}
}

// update publishes a new snapshot made by edit from a shallow copy
// of the current one, and notifies subscribers.
func (ef *Effect) update(kind Changes, edit func(s *Snapshot)) *Snapshot {
	ef.mu.Lock()
	ns := *ef.snap.Load()
	edit(&ns)
	ns.Version++
	ef.snap.Store(&ns)
	ef.mu.Unlock()
	ef.notify(Change{Kind: kind, Snapshot: &ns, Progress: ef.Progress()})
	return &ns
}

// SetPoints publishes the given points. An empty set is ignored,
// since an effect always has at least one point.
func (ef *Effect) SetPoints(ps Points) {
	if len(ps) == 0 {
		return
	}
	ef.update(PointsChanged, func(s *Snapshot) { s.Points = ps })
}

// SetIgnoredColors publishes the given ignored colors.
func (ef *Effect) SetIgnoredColors(ics IgnoredColors) {
	ef.update(IgnoredColorsChanged, func(s *Snapshot) { s.IgnoredColors = ics })
}

// SetFactor publishes the given factor curve.
func (ef *Effect) SetFactor(c *anim.Curve) {
	ef.update(FactorChanged, func(s *Snapshot) { s.Factor = c })
}

// SetTolerance publishes the given tolerance curve.
func (ef *Effect) SetTolerance(c *anim.Curve) {
	ef.update(ToleranceChanged, func(s *Snapshot) { s.Tolerance = c })
}

// SetState publishes points, ignored colors, factor and tolerance
// as one snapshot with a single StateChanged notification. Empty
// points and nil curves keep the current values.
func (ef *Effect) SetState(ps Points, ics IgnoredColors, factor, tolerance *anim.Curve) {
	ef.update(StateChanged, func(s *Snapshot) {
		if len(ps) > 0 {
			s.Points = ps
		}
		s.IgnoredColors = ics
		if factor != nil {
			s.Factor = factor
		}
		if tolerance != nil {
			s.Tolerance = tolerance
		}
	})
}

// SetProgress records the current render progress (frame / length,
// or 0 for an empty item) and notifies subscribers when it changes.
// It is called from the render goroutine and does not block on writers.
func (ef *Effect) SetProgress(t anim.Time) {
	p := t.Progress()
	old := ef.progress.Swap(math.Float64bits(p))
	if old == math.Float64bits(p) {
		return
	}
	ef.notify(Change{Kind: ProgressChanged, Snapshot: ef.Snapshot(), Progress: p})
}

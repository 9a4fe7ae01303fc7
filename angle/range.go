// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package angle

import "math"

// Range is the region a point may occupy between its predecessor (Min)
// and successor (Max) on the circle. When Max < Min the range crosses
// the 0/360 seam (it is wrapped), and the open interval (Max, Min) is
// forbidden while everything else is valid. Otherwise the valid region
// is the closed interval [Min, Max].
type Range struct {
	Min float64
	Max float64
}

// FullRange is the unconstrained range covering the whole circle.
var FullRange = Range{Min: 0, Max: Full}

// Wrapped returns whether the range crosses the 0/360 seam.
func (r Range) Wrapped() bool {
	return r.Max < r.Min
}

// Forbidden returns whether a lies in the forbidden region of the range.
func (r Range) Forbidden(a float64) bool {
	if r.Wrapped() {
		return a > r.Max && a < r.Min
	}
	return a < r.Min || a > r.Max
}

// Constrain returns the angle nearest to a that is valid in the range.
// For a wrapped range, a candidate inside the forbidden interval snaps
// to whichever boundary is numerically closer; ties snap to Min (the
// predecessor). For an unwrapped range it clamps to [Min, Max].
func (r Range) Constrain(a float64) float64 {
	if !r.Wrapped() {
		return math.Min(math.Max(a, r.Min), r.Max)
	}
	if !r.Forbidden(a) {
		return a
	}
	if math.Abs(a-r.Max) < math.Abs(a-r.Min) {
		return r.Max
	}
	return r.Min
}

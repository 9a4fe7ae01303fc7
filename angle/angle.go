// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package angle provides arithmetic on the circular hue domain [0, 360),
// where 360 wraps to 0: normalization, circular neighbors, and the
// valid / forbidden regions between two neighbors.
package angle

import "math"

// Full is the size of the circular domain, in degrees.
const Full = 360.0

// Normalize maps any angle onto [0, 360), as ((a mod 360) + 360) mod 360.
// It is idempotent.
// Non-finite inputs (NaN, ±Inf) map to 0.
func Normalize(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	n := math.Mod(a, Full)
	if n < 0 {
		n += Full
	}
	if n >= Full { // -tiny + 360 rounds up to 360
		return 0
	}
	return n
}

// Distance returns the shortest distance between two angles
// around the circle, in [0, 180].
func Distance(a, b float64) float64 {
	d := Normalize(a - b)
	if d > Full/2 {
		d = Full - d
	}
	return d
}

// Neighbors returns the predecessor and successor angles of the
// element at index i in the given ascending sorted angles,
// with wraparound: the predecessor of index 0 is the last element,
// and the successor of the last element is element 0.
// It returns (0, Full) if i is out of range.
func Neighbors(sorted []float64, i int) (pred, succ float64) {
	n := len(sorted)
	if i < 0 || i >= n {
		return 0, Full
	}
	pred = sorted[(i-1+n)%n]
	succ = sorted[(i+1)%n]
	return
}

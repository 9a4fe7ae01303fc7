// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import (
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/huecurve/anim"
	"cogentcore.org/huecurve/hue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEffect() *hue.Effect {
	ef := hue.NewEffect()
	cp := hue.NewControlPoint(120.5, -30, 1.25, 0.75)
	cp.Luminance = &anim.Curve{Values: []float64{0.75, 1.5, 1}, Keys: []int{40}, Interp: anim.Constant, Min: 0, Max: 2}
	ef.SetPoints(ef.Snapshot().Points.Add(cp).Add(hue.NewControlPoint(120.5, 10, 1, 1)))
	ef.SetIgnoredColors(hue.IgnoredColors{hue.White, {R: 0.2, G: 0.4, B: 0.6, A: 0.8}})
	ef.SetTolerance(anim.New(0.25, 0, 1))
	return ef
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"hue.yaml", "hue.yml", "hue.toml"} {
		t.Run(name, func(t *testing.T) {
			ef := testEffect()
			fn := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(FromEffect(ef), fn))

			d, err := Open(fn)
			require.NoError(t, err)
			want := ef.Snapshot()
			require.Len(t, d.Points, len(want.Points))
			for i, cp := range d.Points {
				assert.NotZero(t, cp.ID)
				assert.True(t, cp.Equal(want.Points[i]), "point %d", i)
			}
			assert.Equal(t, want.IgnoredColors, d.IgnoredColors)
			assert.True(t, want.Factor.Equal(d.Factor))
			assert.True(t, want.Tolerance.Equal(d.Tolerance))

			other := hue.NewEffect()
			require.NoError(t, d.Apply(other))
			got := other.Snapshot()
			require.Len(t, got.Points, 4)
			for i := range got.Points {
				assert.True(t, got.Points[i].Equal(want.Points[i]))
			}
			assert.Equal(t, 0.25, got.Tolerance.Baseline())
		})
	}
}

func TestFormat(t *testing.T) {
	f, err := FormatOf("a/b.TOML")
	require.NoError(t, err)
	assert.Equal(t, TOML, f)
	_, err = FormatOf("state.json")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.ErrorIs(t, Save(FromEffect(hue.NewEffect()), "x.txt"), ErrUnknownFormat)
	_, err = Open("x.txt")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestInvalid(t *testing.T) {
	ef := hue.NewEffect()
	assert.ErrorIs(t, (&Document{}).Apply(ef), ErrInvalid)
	assert.ErrorIs(t, (&Document{Points: hue.Points{{}}}).Apply(ef), ErrInvalid)
	assert.Equal(t, uint64(1), ef.Snapshot().Version)

	fn := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("points: [1, 2"), 0666))
	_, err := Open(fn)
	assert.Error(t, err)
}

func TestBytes(t *testing.T) {
	d := FromEffect(hue.NewEffect())
	b, err := Bytes(d, YAML)
	require.NoError(t, err)
	assert.Contains(t, string(b), "points:")
	b, err = Bytes(d, TOML)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[[points]]")
}

func TestFromSnapshotIsDeep(t *testing.T) {
	ef := hue.NewEffect()
	d := FromEffect(ef)
	d.Points[0].Angle.SetBaseline(99)
	assert.Equal(t, 10.0, ef.Snapshot().Points[0].Angle.Baseline())
}

func TestVersion(t *testing.T) {
	d := FromEffect(hue.NewEffect())
	assert.Equal(t, Version, d.Version)
	assert.NoError(t, d.Validate())

	d.Version = "1.4.2"
	assert.NoError(t, d.Validate())
	d.Version = ""
	assert.NoError(t, d.Validate())

	d.Version = "2.0.0"
	assert.ErrorIs(t, d.Validate(), ErrInvalid)
	d.Version = "one"
	assert.ErrorIs(t, d.Validate(), ErrInvalid)

	fn := filepath.Join(t.TempDir(), "future.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("version: 2.1.0\npoints:\n  - angle: {values: [10]}\n"), 0o644))
	od, err := Open(fn)
	require.NoError(t, err)
	assert.ErrorIs(t, od.Apply(hue.NewEffect()), ErrInvalid)
}

func TestApplyPublishesOnce(t *testing.T) {
	d := FromEffect(testEffect())
	ef := hue.NewEffect()
	v := ef.Snapshot().Version

	var got []hue.Change
	defer ef.Subscribe(func(c hue.Change) { got = append(got, c) })()
	require.NoError(t, d.Apply(ef))

	require.Len(t, got, 1)
	assert.Equal(t, hue.StateChanged, got[0].Kind)
	s := got[0].Snapshot
	assert.Equal(t, v+1, s.Version)
	assert.Len(t, s.Points, len(d.Points))
	assert.Equal(t, d.IgnoredColors, s.IgnoredColors)
	assert.Equal(t, 0.25, s.Tolerance.Baseline())
	assert.Same(t, s, ef.Snapshot())
}

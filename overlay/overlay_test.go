// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package overlay

import (
	"testing"

	"cogentcore.org/core/base/tolassert"
	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var square = []math32.Vector2{{X: 10, Y: 10}, {X: 30, Y: 10}, {X: 30, Y: 20}, {X: 10, Y: 20}}

func TestFitInsideAndCentered(t *testing.T) {
	vp := math32.Vec2(800, 600)
	tr := Fit(square, vp)
	// extent 20x10: x limits (800*0.8/20 = 32 vs 600*0.8/10 = 48)
	tolassert.Equal(t, 32, tr.Scale)

	out := tr.ApplyAll(square)
	for _, p := range out {
		assert.True(t, p.X >= 0 && p.X <= vp.X, "x inside viewport: %v", p)
		assert.True(t, p.Y >= 0 && p.Y <= vp.Y, "y inside viewport: %v", p)
	}
	bb := Bounds(out)
	c := bb.Center()
	tolassert.Equal(t, 400, c.X)
	tolassert.Equal(t, 300, c.Y)
	tolassert.Equal(t, 640, bb.Size().X)

	// aspect ratio preserved
	src := Bounds(square).Size()
	tolassert.Equal(t, src.X/src.Y, bb.Size().X/bb.Size().Y)
}

func TestFitTallExtent(t *testing.T) {
	pts := []math32.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 10}}
	tr := Fit(pts, math32.Vec2(100, 100))
	tolassert.Equal(t, 8, tr.Scale)
	bb := Bounds(tr.ApplyAll(pts))
	tolassert.Equal(t, 10, bb.Min.Y)
	tolassert.Equal(t, 90, bb.Max.Y)
	tolassert.Equal(t, 46, bb.Min.X)
}

func TestFitDegenerate(t *testing.T) {
	vp := math32.Vec2(200, 100)
	tr := Fit([]math32.Vector2{{X: 5, Y: 5}}, vp)
	assert.Equal(t, math32.Vec2(100, 50), tr.Apply(math32.Vec2(5, 5)))

	tr = Fit(nil, vp)
	assert.Equal(t, math32.Vec2(100, 50), tr.Offset)

	line := []math32.Vector2{{X: 0, Y: 3}, {X: 10, Y: 3}}
	tr = Fit(line, vp)
	tolassert.Equal(t, 16, tr.Scale)
	out := tr.ApplyAll(line)
	tolassert.Equal(t, 50, out[0].Y)
	tolassert.Equal(t, 20, out[0].X)
	tolassert.Equal(t, 180, out[1].X)
}

func TestContourMove(t *testing.T) {
	c := NewContour(square, math32.Vec2(800, 600))
	require.Equal(t, len(square), c.Len())
	before := c.Points()

	require.NoError(t, c.Move(2, math32.Vec2(-50, 1000)))
	after := c.Points()
	assert.Equal(t, len(before), len(after))
	for i := range before {
		if i == 2 {
			assert.Equal(t, math32.Vec2(-50, 1000), after[i])
			continue
		}
		assert.Equal(t, before[i], after[i])
	}

	assert.Error(t, c.Move(4, math32.Vector2{}))
	assert.Error(t, c.Move(-1, math32.Vector2{}))
	assert.Equal(t, len(square), c.Len())
}

func TestContourScale(t *testing.T) {
	c := NewContour(square, math32.Vec2(800, 600))
	layout := c.Points()

	c.SetScale(1)
	assert.Equal(t, layout, c.Screen())

	c.SetScale(5)
	tolassert.Equal(t, MaxScale, c.Scale)
	c.SetScale(0)
	tolassert.Equal(t, MinScale, c.Scale)

	c.SetScale(0.5)
	scr := c.Screen()
	for i, p := range layout {
		tolassert.Equal(t, p.X*0.5, scr[i].X)
		tolassert.Equal(t, p.Y*0.5, scr[i].Y)
	}
	assert.Equal(t, layout, c.Points(), "scale does not change stored points")

	sp := math32.Vec2(123, 45)
	back := c.ToScreen(c.FromScreen(sp))
	tolassert.Equal(t, sp.X, back.X)
	tolassert.Equal(t, sp.Y, back.Y)
}

func TestContourHandles(t *testing.T) {
	c := NewContour(square, math32.Vec2(800, 600))
	p1 := c.ToScreen(c.Point(1))
	assert.Equal(t, 1, c.HandleAt(p1.Add(math32.Vec2(2, 2)), HandleRadius))
	assert.Equal(t, -1, c.HandleAt(math32.Vec2(-100, -100), HandleRadius))

	c.Translate(math32.Vec2(10, 0))
	assert.Equal(t, -1, c.HandleAt(p1, HandleRadius))
	assert.Equal(t, 1, c.HandleAt(p1.Add(math32.Vec2(10, 0)), HandleRadius))

	require.NoError(t, c.MoveScreen(1, math32.Vec2(20, 30)))
	assert.Equal(t, math32.Vec2(10, 30), c.Point(1))
}

func TestContourRefit(t *testing.T) {
	c := NewContour(square, math32.Vec2(800, 600))
	require.NoError(t, c.Move(0, math32.Vector2{}))
	c.Refit(math32.Vec2(400, 300))
	assert.Equal(t, math32.Vec2(400, 300), c.Viewport())
	assert.Equal(t, Fit(square, c.Viewport()).ApplyAll(square), c.Points())
}

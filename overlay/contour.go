// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package overlay

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Scale limits for [Contour.SetScale].
const (
	MinScale = 0.1
	MaxScale = 2.0
)

// HandleRadius is the radius of the control point handles, in dots.
const HandleRadius = 5

// Contour is a closed polyline whose points are individually draggable.
// Points are stored in group space, which is the fitted viewport layout.
// The group as a whole has a presentation scale around its origin and a
// translation; neither changes the stored points.
type Contour struct {

	// Scale is the presentation scale in [MinScale, MaxScale].
	Scale float32

	// Offset is the translation of the group, in dots.
	Offset math32.Vector2

	source   []math32.Vector2
	viewport math32.Vector2
	fit      Transform
	points   []math32.Vector2
}

// NewContour returns a contour fitting the source points into the viewport.
// The source slice is not retained.
func NewContour(source []math32.Vector2, viewport math32.Vector2) *Contour {
	c := &Contour{Scale: 1, source: append([]math32.Vector2(nil), source...)}
	c.Refit(viewport)
	return c
}

// Refit recomputes the fitted layout for the given viewport from the
// source points, discarding any drags.
func (c *Contour) Refit(viewport math32.Vector2) {
	c.viewport = viewport
	c.fit = Fit(c.source, viewport)
	c.points = c.fit.ApplyAll(c.source)
}

// Viewport returns the viewport size of the last fit.
func (c *Contour) Viewport() math32.Vector2 {
	return c.viewport
}

// Fit returns the transform of the last fit.
func (c *Contour) Fit() Transform {
	return c.fit
}

// Len returns the number of points, which always equals the
// number of source points.
func (c *Contour) Len() int {
	return len(c.points)
}

// Points returns a copy of the points in group space.
func (c *Contour) Points() []math32.Vector2 {
	return append([]math32.Vector2(nil), c.points...)
}

// Point returns point i in group space.
func (c *Contour) Point(i int) math32.Vector2 {
	return c.points[i]
}

// Move sets point i to the given group space position.
// Only that point changes.
func (c *Contour) Move(i int, pos math32.Vector2) error {
	if i < 0 || i >= len(c.points) {
		return fmt.Errorf("overlay: point index %d out of range [0, %d)", i, len(c.points))
	}
	c.points[i] = pos
	return nil
}

// MoveScreen sets point i to the given screen position.
func (c *Contour) MoveScreen(i int, pos math32.Vector2) error {
	return c.Move(i, c.FromScreen(pos))
}

// Translate moves the whole group by the given screen delta.
func (c *Contour) Translate(delta math32.Vector2) {
	c.Offset = c.Offset.Add(delta)
}

// SetScale sets the presentation scale, clamped to [MinScale, MaxScale].
func (c *Contour) SetScale(s float32) {
	c.Scale = math32.Clamp(s, MinScale, MaxScale)
}

// ToScreen maps a group space position to the screen.
func (c *Contour) ToScreen(p math32.Vector2) math32.Vector2 {
	return p.MulScalar(c.Scale).Add(c.Offset)
}

// FromScreen maps a screen position to group space.
func (c *Contour) FromScreen(p math32.Vector2) math32.Vector2 {
	return p.Sub(c.Offset).DivScalar(c.Scale)
}

// Screen returns the points in screen space.
func (c *Contour) Screen() []math32.Vector2 {
	out := make([]math32.Vector2, len(c.points))
	for i, p := range c.points {
		out[i] = c.ToScreen(p)
	}
	return out
}

// HandleAt returns the index of the handle nearest to the given screen
// position within radius (in screen units), or -1.
func (c *Contour) HandleAt(pos math32.Vector2, radius float32) int {
	best := -1
	bestDist := radius
	for i, p := range c.points {
		d := c.ToScreen(p).DistanceTo(pos)
		if d <= bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package overlay maintains a 2D contour overlay: a closed polyline
// fitted into a viewport, with draggable control points and an
// independent presentation scale.
package overlay

import (
	"cogentcore.org/core/math32"
)

// FitMargin is the fraction of the viewport filled by fitted points
// along the limiting axis.
const FitMargin = 0.8

// Transform maps source points into viewport coordinates:
// screen = (p - Min) * Scale + Offset.
type Transform struct {
	Min    math32.Vector2
	Scale  float32
	Offset math32.Vector2
}

// Apply transforms one point.
func (tr Transform) Apply(p math32.Vector2) math32.Vector2 {
	return p.Sub(tr.Min).MulScalar(tr.Scale).Add(tr.Offset)
}

// ApplyAll transforms all points into a new slice.
func (tr Transform) ApplyAll(pts []math32.Vector2) []math32.Vector2 {
	out := make([]math32.Vector2, len(pts))
	for i, p := range pts {
		out[i] = tr.Apply(p)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the points.
func Bounds(pts []math32.Vector2) math32.Box2 {
	bb := math32.B2Empty()
	for _, p := range pts {
		bb.ExpandByPoint(p)
	}
	return bb
}

// Fit returns the uniform scale and centering transform that fits the
// bounding box of pts into FitMargin of the viewport. A zero extent along
// one axis is fitted using the other axis only; a single point (or no points)
// is mapped to the viewport center.
func Fit(pts []math32.Vector2, viewport math32.Vector2) Transform {
	if len(pts) == 0 {
		return Transform{Scale: 1, Offset: viewport.MulScalar(0.5)}
	}
	bb := Bounds(pts)
	ext := bb.Size()
	var scale float32
	switch {
	case ext.X > 0 && ext.Y > 0:
		scale = math32.Min(viewport.X*FitMargin/ext.X, viewport.Y*FitMargin/ext.Y)
	case ext.X > 0:
		scale = viewport.X * FitMargin / ext.X
	case ext.Y > 0:
		scale = viewport.Y * FitMargin / ext.Y
	default:
		scale = 1
	}
	off := viewport.Sub(ext.MulScalar(scale)).MulScalar(0.5)
	return Transform{Min: bb.Min, Scale: scale, Offset: off}
}

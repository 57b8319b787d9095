// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"github.com/laralab/heartanalyzer/overlay"
)

// handleSlop is added to the handle radius when picking a handle.
const handleSlop = 3

// drag tracks a slide gesture on the contour overlay. A gesture that
// starts on a handle moves that point; any other gesture moves the
// whole group.
type drag struct {
	contour *overlay.Contour
	handle  int
	last    math32.Vector2
	active  bool
}

// start begins a gesture at the given local position.
func (d *drag) start(c *overlay.Contour, pos math32.Vector2) {
	d.contour = c
	d.handle = c.HandleAt(pos, overlay.HandleRadius+handleSlop)
	d.last = pos
	d.active = true
}

// move continues the gesture to the given local position.
func (d *drag) move(pos math32.Vector2) {
	if !d.active || d.contour == nil {
		return
	}
	if d.handle >= 0 {
		errors.Log(d.contour.MoveScreen(d.handle, pos))
	} else {
		d.contour.Translate(pos.Sub(d.last))
	}
	d.last = pos
}

// stop ends the gesture.
func (d *drag) stop() {
	d.active = false
	d.handle = -1
}

// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/core"
	"cogentcore.org/core/events"
	"cogentcore.org/core/icons"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/paint"
	"cogentcore.org/core/styles"
	"cogentcore.org/core/styles/abilities"
	"cogentcore.org/core/styles/units"
	"cogentcore.org/core/xyz"
	"cogentcore.org/core/xyz/xyzcore"
	"github.com/laralab/heartanalyzer/analysis"
	"github.com/laralab/heartanalyzer/api"
	"github.com/laralab/heartanalyzer/gltfx"
	"github.com/laralab/heartanalyzer/overlay"
	"github.com/qmuntal/gltf"
)

// Layer size of the model view, in dp.
const (
	layerWidth  = 640
	layerHeight = 420
)

// Contour drawing style.
var (
	lineColor     = color.RGBA{255, 0, 0, 255}
	handleColor   = color.RGBA{0, 0, 255, 255}
	handleOutline = color.RGBA{255, 255, 255, 255}
)

const lineWidth = 3

// ModelView shows a glTF model in a 3D scene, layered with a canvas
// that draws the annulus contour with draggable handles.
type ModelView struct {
	v *Viewer

	// Attachment is the model attachment.
	Attachment *api.Attachment

	// Contour is the overlay contour, nil until its document is loaded.
	Contour *overlay.Contour

	layers *core.Frame
	editor *xyzcore.SceneEditor
	canvas *core.Canvas
	scale  *core.Text
	lights *Lights
	group  *xyz.Group
	bounds math32.Box3
	drag   drag

	// distance is the camera distance the view was last framed at.
	distance float32
}

func (v *Viewer) newModelView(fr *core.Frame, a *api.Attachment, source string) *ModelView {
	mv := v.makeModelView(fr, a)
	mv.loadModel()
	mv.loadOverlay(source)
	return mv
}

// makeModelView makes the widgets of a model view without loading
// its model or overlay.
func (v *Viewer) makeModelView(fr *core.Frame, a *api.Attachment) *ModelView {
	mv := &ModelView{v: v, Attachment: a, bounds: math32.B3Empty()}
	mv.drag.handle = -1

	tb := core.NewFrame(fr)
	tb.Styler(func(s *styles.Style) {
		s.Align.Items = styles.Center
	})
	core.NewButton(tb).SetText("Reorder layers").SetIcon(icons.Sort).
		SetTooltip("Swap the stacking order of the 3D scene and the overlay").
		OnClick(func(e events.Event) {
			mv.Reorder()
		})
	mv.scale = core.NewText(tb).SetText(scaleLabel(1))
	sl := core.NewSlider(tb)
	sl.SetMin(overlay.MinScale).SetMax(overlay.MaxScale).SetStep(0.01)
	sl.SetValue(1)
	sl.OnInput(func(e events.Event) {
		mv.SetScale(sl.Value)
	})

	mv.layers = core.NewFrame(fr)
	mv.layers.Styler(func(s *styles.Style) {
		s.Display = styles.Custom
		s.Min.Set(units.Dp(layerWidth), units.Dp(layerHeight))
	})

	mv.editor = xyzcore.NewSceneEditor(mv.layers)
	mv.editor.Styler(func(s *styles.Style) {
		s.Min.Set(units.Dp(layerWidth), units.Dp(layerHeight))
	})
	mv.editor.UpdateWidget()
	sc := mv.editor.SceneXYZ()
	mv.lights = NewLights(sc, &v.Settings)
	mv.group = xyz.NewGroup(sc)
	mv.group.SetName("model")
	v.Settings.Apply(sc, mv.lights)
	mv.frame()
	mv.editor.Animate(func(an *core.Animation) {
		if !v.Settings.Display.AutoRotate || mv.bounds.IsEmpty() {
			return
		}
		sc.Camera.Orbit(rotateStep(v.Settings.Display.RotateSpeed, an.Dt), 0)
		sc.SetNeedsUpdate()
		mv.editor.NeedsRender()
	})

	mv.canvas = core.NewCanvas(mv.layers).SetDraw(mv.draw)
	mv.canvas.Styler(func(s *styles.Style) {
		s.SetAbilities(true, abilities.Slideable)
		s.Min.Set(units.Dp(layerWidth), units.Dp(layerHeight))
	})
	mv.canvas.On(events.SlideStart, func(e events.Event) {
		if mv.Contour == nil {
			return
		}
		mv.drag.start(mv.Contour, mv.localPos(e))
	})
	mv.canvas.On(events.SlideMove, func(e events.Event) {
		mv.drag.move(mv.localPos(e))
		mv.canvas.NeedsRender()
	})
	mv.canvas.On(events.SlideStop, func(e events.Event) {
		mv.drag.move(mv.localPos(e))
		mv.drag.stop()
		mv.canvas.NeedsRender()
	})
	return mv
}

// rotateStep returns the orbit angle in degrees for an animation
// frame of dt milliseconds at speed degrees per second.
func rotateStep(speed, dt float32) float32 {
	return speed * dt / 1000
}

func scaleLabel(s float32) string {
	return fmt.Sprintf("Scale: %.2f", s)
}

// SetScale sets the presentation scale of the overlay.
func (mv *ModelView) SetScale(s float32) {
	if mv.Contour != nil {
		mv.Contour.SetScale(s)
		s = mv.Contour.Scale
	}
	mv.scale.SetText(scaleLabel(s)).UpdateRender()
	mv.canvas.NeedsRender()
}

// Reorder swaps the stacking order of the 3D scene and the overlay.
// The later child is drawn on top and receives the pointer events.
func (mv *ModelView) Reorder() {
	kids := mv.layers.Children
	if len(kids) < 2 {
		return
	}
	kids[0], kids[1] = kids[1], kids[0]
	mv.layers.NeedsLayout()
}

// OverlayOnTop returns whether the overlay canvas is drawn
// above the 3D scene.
func (mv *ModelView) OverlayOnTop() bool {
	kids := mv.layers.Children
	return len(kids) > 0 && kids[len(kids)-1] == mv.canvas.This
}

func (mv *ModelView) localPos(e events.Event) math32.Vector2 {
	pt := mv.canvas.PointToRelPos(e.Pos())
	return math32.Vec2(float32(pt.X), float32(pt.Y))
}

func (mv *ModelView) applySettings() {
	sc := mv.editor.SceneXYZ()
	mv.v.Settings.Apply(sc, mv.lights)
	if mv.v.Settings.Camera.Distance != mv.distance {
		mv.frame()
	}
	mv.editor.NeedsRender()
}

// frame places the camera to show the model bounds at the
// current camera distance.
func (mv *ModelView) frame() {
	sc := mv.editor.SceneXYZ()
	mv.v.Settings.Frame(sc, mv.bounds)
	mv.distance = mv.v.Settings.Camera.Distance
	sc.SetNeedsUpdate()
}

// loadModel fetches the glTF asset, publishes its vertex positions
// and adds its meshes to the scene.
func (mv *ModelView) loadModel() {
	href, err := mv.Attachment.DataLink()
	if err != nil {
		core.ErrorSnackbar(mv.editor, err, "Error loading "+mv.Attachment.Name)
		return
	}
	type model struct {
		doc *gltf.Document
		pts []math32.Vector3
	}
	async(mv.editor, func(ctx context.Context) (model, error) {
		doc, err := gltfx.Load(ctx, mv.v.Client, href)
		if err != nil {
			return model{}, err
		}
		pts, err := gltfx.ExtractPoints(doc)
		return model{doc, pts}, err
	}, func(m model, err error) {
		if err != nil {
			mv.loadError(err)
			return
		}
		mv.v.Points.Set(m.pts)
		mv.bounds = gltfx.Bounds(m.pts)
		sc := mv.editor.SceneXYZ()
		if _, err := gltfx.Build(sc, mv.group, m.doc); err != nil {
			mv.loadError(err)
			return
		}
		mv.frame()
		sc.Rebuild()
		sc.SetNeedsUpdate()
		mv.editor.NeedsRender()
	})
}

func (mv *ModelView) loadError(err error) {
	var le *gltfx.LoadError
	if !errors.As(err, &le) {
		core.ErrorSnackbar(mv.editor, err, "Error loading "+mv.Attachment.Name)
		return
	}
	slog.Error("loading model", "attachment", mv.Attachment.ID, "kind", le.Kind, "name", le.Name, "err", le.Err)
	core.MessageDialog(mv.editor, le.Message(), "Unable to load model")
}

// loadOverlay fetches the analysis document at href and makes the
// contour from its annulus spline.
func (mv *ModelView) loadOverlay(href string) {
	key := mv.v.Config.Overlay.SplineKey
	async(mv.canvas, func(ctx context.Context) ([]math32.Vector2, error) {
		pl, err := mv.v.Client.Data(ctx, href)
		if err != nil {
			return nil, err
		}
		doc, err := analysis.Parse(pl.Data)
		if err != nil {
			return nil, err
		}
		return doc.Spline(key)
	}, func(pts []math32.Vector2, err error) {
		if err != nil {
			core.ErrorSnackbar(mv.canvas, err, "Error loading overlay")
			return
		}
		mv.Contour = overlay.NewContour(pts, mv.canvas.Geom.Size.Actual.Content)
		mv.canvas.NeedsRender()
	})
}

// draw draws the contour. The painter uses coordinates normalized
// to the canvas size, so screen positions are divided by it.
func (mv *ModelView) draw(pc *paint.Painter) {
	c := mv.Contour
	if c == nil {
		return
	}
	sz := mv.canvas.Geom.Size.Actual.Content
	if sz.X <= 0 || sz.Y <= 0 {
		return
	}
	if sz != c.Viewport() {
		c.Refit(sz)
	}
	pts := c.Screen()
	if len(pts) == 0 {
		return
	}
	norm := func(p math32.Vector2) math32.Vector2 {
		return math32.Vec2(p.X/sz.X, p.Y/sz.Y)
	}

	pc.Fill.Color = nil
	pc.Stroke.Color = colors.Uniform(lineColor)
	pc.Stroke.Width.Dp(lineWidth)
	p0 := norm(pts[0])
	pc.MoveTo(p0.X, p0.Y)
	for _, p := range pts[1:] {
		np := norm(p)
		pc.LineTo(np.X, np.Y)
	}
	pc.LineTo(p0.X, p0.Y)
	pc.Draw()

	r := float32(overlay.HandleRadius)
	pc.Fill.Color = colors.Uniform(handleColor)
	pc.Stroke.Color = colors.Uniform(handleOutline)
	pc.Stroke.Width.Dp(1)
	for _, p := range pts {
		np := norm(p)
		pc.Ellipse(np.X, np.Y, r/sz.X, r/sz.Y)
		pc.Draw()
	}
}

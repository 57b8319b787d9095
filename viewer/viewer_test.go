// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"testing"

	"cogentcore.org/core/base/tolassert"
	"cogentcore.org/core/colors"
	"cogentcore.org/core/core"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
	"github.com/laralab/heartanalyzer/api"
	"github.com/laralab/heartanalyzer/config"
	"github.com/laralab/heartanalyzer/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	v := New(config.New())
	assert.Equal(t, "http://localhost:8000/patients/", v.Client.Resolve("/patients/"))
	assert.Equal(t, float32(30), v.Settings.Camera.FOV)
	assert.Equal(t, 0, v.Points.Len())
}

func TestSettingsApply(t *testing.T) {
	var s Settings
	s.Defaults()
	sc := xyz.NewScene()
	l := NewLights(sc, &s)
	require.NotNil(t, l.Ambient)
	require.NotNil(t, l.Direct)
	assert.Equal(t, s.Lighting.DirectPos, l.Direct.Pos)

	s.Display.Background = colors.Black
	s.Lighting.AmbientIntensity = 0.7
	s.Lighting.DirectColor = xyz.Overcast
	s.Camera.FOV = 45
	s.Apply(sc, l)
	assert.Equal(t, float32(45), sc.Camera.FOV)
	assert.Equal(t, float32(0.7), l.Ambient.Lumens)
	assert.Equal(t, xyz.LightColorMap[xyz.Overcast], l.Direct.Color)
	assert.Equal(t, colors.Uniform(colors.Black), sc.Background)
}

func TestSettingsFrame(t *testing.T) {
	var s Settings
	s.Defaults()
	sc := xyz.NewScene()

	bb := math32.B3Empty()
	bb.ExpandByPoint(math32.Vec3(-1, -1, -1))
	bb.ExpandByPoint(math32.Vec3(1, 3, 1))
	s.Frame(sc, bb)
	pos := sc.Camera.Pose.Pos
	tolassert.EqualTol(t, 0, pos.X, 1e-5)
	tolassert.EqualTol(t, 1, pos.Y, 1e-5)
	tolassert.EqualTol(t, 6, pos.Z, 1e-5)
	assert.Contains(t, sc.SavedCams, "default")

	s.Frame(sc, math32.B3Empty())
	tolassert.EqualTol(t, 1.5, sc.Camera.Pose.Pos.Z, 1e-5)
}

func TestRotateStep(t *testing.T) {
	tolassert.EqualTol(t, 20, rotateStep(20, 1000), 1e-5)
	tolassert.EqualTol(t, 0.32, rotateStep(20, 16), 1e-5)
	assert.Equal(t, float32(0), rotateStep(20, 0))
}

func newTestModelView(t *testing.T) *ModelView {
	t.Helper()
	v := New(config.New())
	b := core.NewBody()
	mv := v.makeModelView(core.NewFrame(b), &api.Attachment{Name: "model", MediaType: api.MediaGLTF})
	require.NotNil(t, mv.editor)
	require.NotNil(t, mv.canvas)
	return mv
}

func TestReorder(t *testing.T) {
	mv := newTestModelView(t)
	require.Len(t, mv.layers.Children, 2)
	assert.True(t, mv.OverlayOnTop())

	mv.Reorder()
	assert.False(t, mv.OverlayOnTop())
	assert.Equal(t, mv.canvas.This, mv.layers.Children[0])

	mv.Reorder()
	assert.True(t, mv.OverlayOnTop())
	assert.Equal(t, mv.canvas.This, mv.layers.Children[1])
}

func TestApplySettingsDistance(t *testing.T) {
	mv := newTestModelView(t)
	bb := math32.B3Empty()
	bb.ExpandByPoint(math32.Vec3(-1, -1, -1))
	bb.ExpandByPoint(math32.Vec3(1, 1, 1))
	mv.bounds = bb
	mv.frame()
	sc := mv.editor.SceneXYZ()
	tolassert.EqualTol(t, 3, sc.Camera.Pose.Pos.Z, 1e-5)

	mv.v.Settings.Camera.Distance = 4
	mv.applySettings()
	tolassert.EqualTol(t, 8, sc.Camera.Pose.Pos.Z, 1e-5)
	assert.Equal(t, float32(4), mv.distance)

	sc.Camera.Pose.Pos.Z = 20
	mv.v.Settings.Camera.FOV = 50
	mv.applySettings()
	assert.Equal(t, float32(20), sc.Camera.Pose.Pos.Z)
	assert.Equal(t, float32(50), sc.Camera.FOV)
}

var square = []math32.Vector2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

func TestDragHandle(t *testing.T) {
	c := overlay.NewContour(square, math32.Vec2(100, 100))
	p0 := c.ToScreen(c.Point(0))

	var d drag
	d.start(c, p0.Add(math32.Vec2(2, 2)))
	assert.Equal(t, 0, d.handle)
	d.move(math32.Vec2(5, 7))
	d.stop()
	assert.False(t, d.active)
	assert.Equal(t, math32.Vec2(5, 7), c.ToScreen(c.Point(0)))
	assert.Equal(t, math32.Vector2{}, c.Offset)

	d.move(math32.Vec2(50, 50))
	assert.Equal(t, math32.Vec2(5, 7), c.ToScreen(c.Point(0)))
}

func TestDragGroup(t *testing.T) {
	c := overlay.NewContour(square, math32.Vec2(100, 100))
	before := c.Points()

	var d drag
	ctr := c.ToScreen(c.Point(0).Add(c.Point(2)).MulScalar(0.5))
	d.start(c, ctr)
	assert.Equal(t, -1, d.handle)
	d.move(ctr.Add(math32.Vec2(10, 0)))
	d.move(ctr.Add(math32.Vec2(10, 5)))
	d.stop()

	assert.Equal(t, math32.Vec2(10, 5), c.Offset)
	assert.Equal(t, before, c.Points())
}

func TestRecordOf(t *testing.T) {
	p := &api.Patient{Sex: "F", AssignedPhysician: "Dr. Who", ClinicalNotes: "none"}
	p.DateOfBirth = "1970-01-01"
	r := RecordOf(p)
	assert.Equal(t, Record{DateOfBirth: "1970-01-01", Sex: "F", AssignedPhysician: "Dr. Who", ClinicalNotes: "none"}, r)
	assert.Equal(t, Record{}, RecordOf(nil))
}

func TestOverlaySource(t *testing.T) {
	const def = "/static/data/default.json"
	assert.Equal(t, def, overlaySource(nil, def))

	p := &api.Patient{}
	p.Attachments = []api.Attachment{
		{MediaType: api.MediaGLTF, Entity: api.Entity{Links: []api.Link{{Rel: "data", Href: "/static/data/m.gltf"}}}},
	}
	assert.Equal(t, def, overlaySource(p, def))

	p.Attachments = append(p.Attachments,
		api.Attachment{MediaType: api.MediaAnalysisPrimitives},
		api.Attachment{MediaType: api.MediaAnalysisPrimitives, Entity: api.Entity{Links: []api.Link{{Rel: "data", Href: "/static/data/a.json"}}}},
	)
	assert.Equal(t, "/static/data/a.json", overlaySource(p, def))
}

func TestAttachmentHeading(t *testing.T) {
	v := New(config.New())
	fr := core.NewFrame(core.NewBody())
	v.newAttachmentView(fr, nil, &api.Attachment{Name: "screenshot/mitral_annulus/area_3D", MediaType: "text/plain"})
	require.Len(t, fr.Children, 2)
	heading, ok := fr.Child(0).(*core.Text)
	require.True(t, ok)
	assert.Equal(t, "Screenshot | Mitral Annulus | Area 3D", heading.Text)
}

func TestScaleLabel(t *testing.T) {
	assert.Equal(t, "Scale: 1.00", scaleLabel(1))
	assert.Equal(t, "Scale: 0.25", scaleLabel(0.25))
}

func TestFilterPatients(t *testing.T) {
	ps := []api.PatientSummary{{Name: "John Doe"}, {Name: "Jane Doe"}}
	assert.Equal(t, []int{0, 1}, FilterPatients(ps, ""))
	assert.Equal(t, []int{0, 1}, FilterPatients(ps, "doe"))
	assert.Equal(t, []int{1}, FilterPatients(ps, " Jane "))
	assert.Equal(t, []int{0}, FilterPatients(ps, "jon"))
	assert.Equal(t, []int{}, FilterPatients(ps, "xyz"))
	assert.Equal(t, []int{}, FilterPatients(nil, "doe"))
}

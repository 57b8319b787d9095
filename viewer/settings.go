// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"image/color"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
)

// Settings are the live display settings of the 3D model view.
type Settings struct {

	// Display settings.
	Display Display `display:"add-fields"`

	// Lighting settings.
	Lighting Lighting `display:"add-fields"`

	// Camera settings.
	Camera Camera `display:"add-fields"`
}

// Display contains the scene display settings.
type Display struct {

	// Background is the scene background color.
	Background color.RGBA

	// AutoRotate orbits the camera around the model.
	AutoRotate bool

	// RotateSpeed is the auto rotation speed in degrees per second.
	RotateSpeed float32 `min:"1" max:"180" step:"1"`
}

// Lighting contains the scene light settings.
type Lighting struct {

	// AmbientIntensity is the brightness of the ambient light.
	AmbientIntensity float32 `min:"0" max:"1" step:"0.05"`

	// AmbientColor is the color of the ambient light.
	AmbientColor xyz.LightColors

	// DirectIntensity is the brightness of the directional light.
	DirectIntensity float32 `min:"0" max:"3" step:"0.05"`

	// DirectColor is the color of the directional light.
	DirectColor xyz.LightColors

	// DirectPos is the direction the directional light comes from.
	DirectPos math32.Vector3
}

// Camera contains the camera framing settings.
type Camera struct {

	// Distance is the camera distance from the model center,
	// as a multiple of the model size.
	Distance float32 `min:"0.5" max:"10" step:"0.1"`

	// FOV is the vertical field of view in degrees.
	FOV float32 `min:"10" max:"120" step:"1"`
}

// Defaults sets the default settings.
func (s *Settings) Defaults() {
	s.Display.Background = color.RGBA{240, 240, 245, 255}
	s.Display.RotateSpeed = 20
	s.Lighting.AmbientIntensity = 0.3
	s.Lighting.AmbientColor = xyz.DirectSun
	s.Lighting.DirectIntensity = 0.8 * math32.Pi
	s.Lighting.DirectColor = xyz.DirectSun
	s.Lighting.DirectPos = math32.Vec3(0.5, 0, 0.866)
	s.Camera.Distance = 1.5
	s.Camera.FOV = 30
}

// Lights are the lights of a model scene.
type Lights struct {
	Ambient *xyz.Ambient
	Direct  *xyz.Directional
}

// NewLights adds the lights for the given settings to the scene.
func NewLights(sc *xyz.Scene, s *Settings) *Lights {
	l := &Lights{
		Ambient: xyz.NewAmbient(sc, "ambient", s.Lighting.AmbientIntensity, s.Lighting.AmbientColor),
		Direct:  xyz.NewDirectional(sc, "direct", s.Lighting.DirectIntensity, s.Lighting.DirectColor),
	}
	l.Direct.Pos = s.Lighting.DirectPos
	return l
}

// Apply applies the display and lighting settings to the scene.
// A live scene is rebuilt so that its renderer picks up the new
// background and lights.
func (s *Settings) Apply(sc *xyz.Scene, l *Lights) {
	sc.Background = colors.Uniform(s.Display.Background)
	sc.Camera.FOV = s.Camera.FOV
	if l != nil {
		l.Ambient.Lumens = s.Lighting.AmbientIntensity
		l.Ambient.Color = xyz.LightColorMap[s.Lighting.AmbientColor]
		l.Direct.Lumens = s.Lighting.DirectIntensity
		l.Direct.Color = xyz.LightColorMap[s.Lighting.DirectColor]
		l.Direct.Pos = s.Lighting.DirectPos
	}
	sc.Rebuild()
	sc.SetNeedsUpdate()
}

// Frame points the camera at the center of the bounding box from the
// front, at the configured distance, and saves it as the "default" camera.
func (s *Settings) Frame(sc *xyz.Scene, bb math32.Box3) {
	ctr := math32.Vector3{}
	size := float32(1)
	if !bb.IsEmpty() {
		ctr = bb.Center()
		sz := bb.Size()
		size = max(sz.X, sz.Y, sz.Z)
		if size <= 0 {
			size = 1
		}
	}
	sc.Camera.Pose.Pos = ctr.Add(math32.Vec3(0, 0, s.Camera.Distance*size))
	sc.Camera.LookAt(ctr, math32.Vec3(0, 1, 0))
	sc.SaveCamera("default")
	sc.SetNeedsUpdate()
}

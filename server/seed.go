// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"cogentcore.org/core/base/iox/imagex"
	"cogentcore.org/core/base/iox/jsonx"
	"github.com/laralab/heartanalyzer/analysis"
	"github.com/laralab/heartanalyzer/api"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"golang.org/x/image/vector"
)

// SplinePoints is the number of points of the sample annulus contour.
const SplinePoints = 48

// Seed writes the payloads of the sample attachments into dir,
// skipping files that already exist.
func Seed(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	files := []struct {
		id        string
		mediaType string
		gen       func() ([]byte, error)
	}{
		{MeasurementsID.String(), api.MediaAnalysisPrimitives, SampleMeasurements},
		{ScreenshotID.String(), api.MediaJPEG, SampleScreenshot},
		{AnatomicalModelID.String(), api.MediaGLTF, SampleModel},
	}
	for _, f := range files {
		fn := filepath.Join(dir, f.id+"."+api.Extension(f.mediaType))
		if _, err := os.Stat(fn); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		b, err := f.gen()
		if err != nil {
			return fmt.Errorf("server: generating %s: %w", fn, err)
		}
		if err := os.WriteFile(fn, b, 0644); err != nil {
			return err
		}
		slog.Info("seeded sample data", "file", fn, "bytes", len(b))
	}
	return nil
}

// saddle returns point i of n on a saddle shaped annulus in millimeters:
// an ellipse in the xy plane with a height that rises twice per turn.
func saddle(i, n int) [3]float64 {
	t := 2 * math.Pi * float64(i) / float64(n)
	return [3]float64{
		60 + 18*math.Cos(t),
		50 + 14*math.Sin(t),
		4 * math.Cos(2*t),
	}
}

// SampleDocument returns the sample analysis-primitives document.
func SampleDocument() analysis.Document {
	spline := make([][]float64, SplinePoints)
	for i := range spline {
		p := saddle(i, SplinePoints)
		spline[i] = p[:]
	}
	scalar := func(v float64, unit string) *analysis.Primitive {
		return &analysis.Primitive{Type: analysis.TypeScalar, Value: v, Unit: unit}
	}
	return analysis.Document{
		analysis.DefaultSplineKey:                                 {Type: "ClosedSpline", Points: spline},
		"/mitral_annulus/from_leaflets/saddle_shape/height":       scalar(8.04, "mm"),
		"/mitral_annulus/from_leaflets/saddle_shape/perimeter":    scalar(101.37, "mm"),
		"/mitral_annulus/from_leaflets/saddle_shape/area_2d":      scalar(791.68, "mm²"),
		"/mitral_annulus/from_leaflets/anterior_posterior_length": scalar(28.11, "mm"),
		"/mitral_annulus/from_leaflets/commissural_width":         scalar(36.2, "mm"),
		"/mitral_annulus/from_leaflets/ellipticity":               scalar(1.29, ""),
	}
}

// SampleMeasurements returns the JSON of [SampleDocument].
func SampleMeasurements() ([]byte, error) {
	var buf bytes.Buffer
	if err := jsonx.WriteIndent(SampleDocument(), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SampleScreenshot returns a JPEG screenshot of the annulus contour
// in the xy plane, filled over a dark gradient.
func SampleScreenshot() ([]byte, error) {
	const w, h = 320, 240
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		g := uint8(20 + 40*y/h)
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{g, g, g + 10, 255})
		}
	}
	r := vector.NewRasterizer(w, h)
	for i := range SplinePoints {
		p := saddle(i, SplinePoints)
		x, y := float32(p[0]/120*w), float32(p[1]/100*h)
		if i == 0 {
			r.MoveTo(x, y)
		} else {
			r.LineTo(x, y)
		}
	}
	r.ClosePath()
	r.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{180, 40, 40, 200}), image.Point{})
	var buf bytes.Buffer
	if err := imagex.Write(img, &buf, imagex.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SampleModel returns a glTF model of two leaflets spanning the saddle
// shaped annulus, with embedded buffers.
func SampleModel() ([]byte, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "heartserver"
	doc.Materials = []*gltf.Material{
		{Name: "anterior", PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{0.85, 0.45, 0.45, 1}}},
		{Name: "posterior", PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{0.75, 0.55, 0.35, 1}}},
	}
	// each leaflet fans from the center to half of the annulus
	leaflet := func(first, mat int) *gltf.Mesh {
		n := SplinePoints / 2
		pos := [][3]float32{{60, 50, -6}}
		for i := 0; i <= n; i++ {
			p := saddle(first+i, SplinePoints)
			pos = append(pos, [3]float32{float32(p[0]), float32(p[1]), float32(p[2])})
		}
		var idx []uint16
		for i := 1; i <= n; i++ {
			idx = append(idx, 0, uint16(i), uint16(i+1))
		}
		return &gltf.Mesh{Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{gltf.POSITION: modeler.WritePosition(doc, pos)},
			Indices:    gltf.Index(modeler.WriteIndices(doc, idx)),
			Material:   gltf.Index(mat),
		}}}
	}
	doc.Meshes = []*gltf.Mesh{leaflet(0, 0), leaflet(SplinePoints/2, 1)}
	doc.Meshes[0].Name = "anterior-leaflet"
	doc.Meshes[1].Name = "posterior-leaflet"
	doc.Nodes = []*gltf.Node{
		{Name: "mitral-valve", Children: []int{1, 2}},
		{Name: "anterior", Mesh: gltf.Index(0)},
		{Name: "posterior", Mesh: gltf.Index(1)},
	}
	doc.Scenes[0].Nodes = []int{0}
	for _, b := range doc.Buffers {
		b.EmbeddedResource()
	}
	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = false
	enc.SetJSONIndent("", "\t")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

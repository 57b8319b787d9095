// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltfx

import (
	"fmt"
	"image/color"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/tree"
	"cogentcore.org/core/xyz"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// DefaultColor is the solid color used for primitives without a material.
var DefaultColor = color.RGBA{200, 120, 120, 255}

// Build adds the meshes of the default scene of doc to sc, with one
// [xyz.Solid] per primitive under parent. Vertices are baked into world
// space, so all solids have an identity pose. It returns the number of
// solids added.
func Build(sc *xyz.Scene, parent tree.Node, doc *gltf.Document) (int, error) {
	n := 0
	err := Walk(doc, func(idx int, node *gltf.Node, world *math32.Matrix4) error {
		if node.Mesh == nil {
			return nil
		}
		if *node.Mesh < 0 || *node.Mesh >= len(doc.Meshes) {
			return fmt.Errorf("gltfx: node %d: mesh index %d out of range", idx, *node.Mesh)
		}
		mesh := doc.Meshes[*node.Mesh]
		for pi, p := range mesh.Primitives {
			if p.Mode != gltf.PrimitiveTriangles {
				continue
			}
			ms, err := NewMesh(doc, p, world)
			if err != nil {
				return err
			}
			if ms == nil {
				continue
			}
			name := fmt.Sprintf("%s-%d-%d", nodeName(node, idx), *node.Mesh, pi)
			ms.Name = name
			sc.AddMeshUnique(ms)
			sld := xyz.NewSolid(parent)
			sld.SetName(name)
			sld.SetMesh(ms).SetColor(primitiveColor(doc, p))
			n++
		}
		return nil
	})
	if err != nil {
		return n, classify("scene", err)
	}
	return n, nil
}

func nodeName(n *gltf.Node, idx int) string {
	if n.Name != "" {
		return n.Name
	}
	return fmt.Sprintf("node%d", idx)
}

// NewMesh returns a world space mesh for a triangle primitive, or nil if
// it has no positions. Normals are computed from the triangles.
func NewMesh(doc *gltf.Document, p *gltf.Primitive, world *math32.Matrix4) (*xyz.GenMesh, error) {
	pos, err := Positions(doc, p)
	if err != nil || len(pos) == 0 {
		return nil, err
	}
	var idx []uint32
	if p.Indices != nil {
		if *p.Indices < 0 || *p.Indices >= len(doc.Accessors) {
			return nil, fmt.Errorf("gltfx: index accessor %d out of range", *p.Indices)
		}
		idx, err = modeler.ReadIndices(doc, doc.Accessors[*p.Indices], nil)
		if err != nil {
			return nil, err
		}
	} else {
		idx = make([]uint32, len(pos))
		for i := range idx {
			idx[i] = uint32(i)
		}
	}
	wp := make([]math32.Vector3, len(pos))
	for i, v := range pos {
		wp[i] = math32.Vec3(v[0], v[1], v[2]).MulMatrix4(world)
	}
	ms := &xyz.GenMesh{}
	ms.Vertex = make(math32.ArrayF32, 0, 3*len(wp))
	for _, v := range wp {
		ms.Vertex = append(ms.Vertex, v.X, v.Y, v.Z)
	}
	ms.Normal = vertexNormals(wp, idx)
	ms.TexCoord = make(math32.ArrayF32, 2*len(wp))
	ms.Index = idx
	return ms, nil
}

// vertexNormals returns area weighted, normalized vertex normals.
func vertexNormals(pos []math32.Vector3, idx []uint32) math32.ArrayF32 {
	acc := make([]math32.Vector3, len(pos))
	for t := 0; t+2 < len(idx); t += 3 {
		i0, i1, i2 := idx[t], idx[t+1], idx[t+2]
		if int(i0) >= len(pos) || int(i1) >= len(pos) || int(i2) >= len(pos) {
			continue
		}
		a, b, c := pos[i0], pos[i1], pos[i2]
		fn := b.Sub(a).Cross(c.Sub(a))
		acc[i0] = acc[i0].Add(fn)
		acc[i1] = acc[i1].Add(fn)
		acc[i2] = acc[i2].Add(fn)
	}
	norm := make(math32.ArrayF32, 0, 3*len(pos))
	for _, n := range acc {
		if n.Length() > 0 {
			n = n.Normal()
		} else {
			n = math32.Vec3(0, 1, 0)
		}
		norm = append(norm, n.X, n.Y, n.Z)
	}
	return norm
}

// primitiveColor returns the base color of the primitive's material.
func primitiveColor(doc *gltf.Document, p *gltf.Primitive) color.RGBA {
	if p.Material == nil || *p.Material < 0 || *p.Material >= len(doc.Materials) {
		return DefaultColor
	}
	m := doc.Materials[*p.Material]
	if m.PBRMetallicRoughness == nil || m.PBRMetallicRoughness.BaseColorFactor == nil {
		return DefaultColor
	}
	f := m.PBRMetallicRoughness.BaseColorFactor
	c := func(v float64) uint8 { return uint8(math32.Clamp(v, 0, 1)*255 + 0.5) }
	return color.RGBA{c(f[0]), c(f[1]), c(f[2]), c(f[3])}
}

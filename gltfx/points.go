// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltfx

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// SceneRoots returns the root nodes of the default scene, or of the first
// scene if no default is set. It returns nil if there are no scenes.
func SceneRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) == 0 {
		return nil
	}
	si := 0
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		si = *doc.Scene
	}
	return doc.Scenes[si].Nodes
}

// LocalMatrix returns the local transform of a node, from its matrix
// if set or else from its translation, rotation and scale.
func LocalMatrix(n *gltf.Node) math32.Matrix4 {
	var m math32.Matrix4
	if n.Matrix != [16]float64{} && n.Matrix != gltf.DefaultMatrix {
		// both are column-major
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}
	pos, q, sc := localTRS(n)
	m.SetTransform(pos, q, sc)
	return m
}

// localTRS returns the translation, rotation and scale of a node,
// with zero rotation and scale treated as unset.
func localTRS(n *gltf.Node) (math32.Vector3, math32.Quat, math32.Vector3) {
	t, r, s := n.Translation, n.Rotation, n.Scale
	pos := math32.Vec3(float32(t[0]), float32(t[1]), float32(t[2]))
	q := math32.NewQuat(0, 0, 0, 1)
	if r != [4]float64{} {
		q = math32.NewQuat(float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3]))
	}
	sc := math32.Vec3(1, 1, 1)
	if s != [3]float64{} {
		sc = math32.Vec3(float32(s[0]), float32(s[1]), float32(s[2]))
	}
	return pos, q, sc
}

// WalkFunc is called for each node in depth-first order with the node's
// accumulated world matrix.
type WalkFunc func(index int, node *gltf.Node, world *math32.Matrix4) error

// Walk traverses the default scene depth-first, visiting parents before
// children and children in declaration order. Nodes reachable more than
// once are visited only the first time.
func Walk(doc *gltf.Document, fun WalkFunc) error {
	visited := make(map[int]bool)
	var walk func(idx int, parent *math32.Matrix4) error
	walk = func(idx int, parent *math32.Matrix4) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return fmt.Errorf("gltfx: node index %d out of range", idx)
		}
		if visited[idx] {
			return nil
		}
		visited[idx] = true
		n := doc.Nodes[idx]
		local := LocalMatrix(n)
		world := parent.Mul(&local)
		if err := fun(idx, n, world); err != nil {
			return err
		}
		for _, c := range n.Children {
			if err := walk(c, world); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range SceneRoots(doc) {
		if err := walk(r, math32.Identity4()); err != nil {
			return err
		}
	}
	return nil
}

// Positions returns the POSITION vertices of a mesh primitive in local space.
func Positions(doc *gltf.Document, p *gltf.Primitive) ([][3]float32, error) {
	ai, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	if ai < 0 || ai >= len(doc.Accessors) {
		return nil, fmt.Errorf("gltfx: position accessor %d out of range", ai)
	}
	return modeler.ReadPosition(doc, doc.Accessors[ai], nil)
}

// ExtractPoints returns the world space positions of every vertex of
// every mesh in the default scene, in depth-first node order and then
// buffer order within each mesh. Shared vertices are not deduplicated.
func ExtractPoints(doc *gltf.Document) ([]math32.Vector3, error) {
	var pts []math32.Vector3
	err := Walk(doc, func(idx int, n *gltf.Node, world *math32.Matrix4) error {
		if n.Mesh == nil {
			return nil
		}
		if *n.Mesh < 0 || *n.Mesh >= len(doc.Meshes) {
			return fmt.Errorf("gltfx: node %d: mesh index %d out of range", idx, *n.Mesh)
		}
		for _, p := range doc.Meshes[*n.Mesh].Primitives {
			pos, err := Positions(doc, p)
			if err != nil {
				return err
			}
			for _, v := range pos {
				pts = append(pts, math32.Vec3(v[0], v[1], v[2]).MulMatrix4(world))
			}
		}
		return nil
	})
	if err != nil {
		return nil, classify("points", err)
	}
	return pts, nil
}

// Bounds returns the bounding box of the points.
func Bounds(pts []math32.Vector3) math32.Box3 {
	bb := math32.B3Empty()
	for _, p := range pts {
		bb.ExpandByPoint(p)
	}
	return bb
}

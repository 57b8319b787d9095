// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analysis reads analysis-primitives documents: JSON objects
// mapping primitive paths to scalar measurements, splines and other
// analysis results.
package analysis

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"cogentcore.org/core/base/iox/jsonx"
	"cogentcore.org/core/math32"
)

// DefaultSplineKey is the primitive holding the mitral annulus contour.
const DefaultSplineKey = "/mitral_annulus/from_leaflets/saddle_shape/closed_spline"

// Primitive types.
const (
	TypeScalar = "Scalar"
)

// ErrNoPrimitive is returned when a requested primitive is absent.
var ErrNoPrimitive = errors.New("analysis: no such primitive")

// Primitive is one analysis result. Only the fields relevant to
// its Type are set.
type Primitive struct {
	Type   string      `json:"type"`
	Value  float64     `json:"value"`
	Unit   string      `json:"unit"`
	Points [][]float64 `json:"points"`
}

// Document is a parsed analysis-primitives document, keyed by primitive path.
type Document map[string]*Primitive

// Parse parses a document from JSON bytes.
func Parse(b []byte) (Document, error) {
	var d Document
	if err := jsonx.ReadBytes(&d, b); err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	return d, nil
}

// Decode parses a document from the given reader.
func Decode(r io.Reader) (Document, error) {
	var d Document
	if err := jsonx.Read(&d, r); err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	return d, nil
}

// Keys returns the primitive keys in sorted order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Scalar is a scalar measurement.
type Scalar struct {

	// Key is the primitive path.
	Key string

	// Name is the human readable name derived from Key.
	Name string

	Value float64

	Unit string
}

// String formats the value with two decimals followed by the unit.
func (s Scalar) String() string {
	v := fmt.Sprintf("%.2f", s.Value)
	if s.Unit == "" {
		return v
	}
	return v + " " + s.Unit
}

// Scalars returns all scalar primitives sorted by key.
func (d Document) Scalars() []Scalar {
	var sc []Scalar
	for _, k := range d.Keys() {
		p := d[k]
		if p == nil || p.Type != TypeScalar {
			continue
		}
		sc = append(sc, Scalar{Key: k, Name: Beautify(strings.TrimPrefix(k, "/")), Value: p.Value, Unit: p.Unit})
	}
	return sc
}

// Row is one row of the measurement table.
type Row struct {
	Measurement string
	Value       string
}

// Rows returns the measurement table rows, one per scalar, sorted by key.
func (d Document) Rows() []Row {
	sc := d.Scalars()
	rows := make([]Row, len(sc))
	for i, s := range sc {
		rows[i] = Row{Measurement: s.Name, Value: s.String()}
	}
	return rows
}

// Spline returns the 2D points of the spline primitive with the given key,
// using the first two coordinates of each point.
func (d Document) Spline(key string) ([]math32.Vector2, error) {
	p, ok := d[key]
	if !ok || p == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoPrimitive, key)
	}
	pts := make([]math32.Vector2, len(p.Points))
	for i, c := range p.Points {
		if len(c) < 2 {
			return nil, fmt.Errorf("analysis: %s: point %d has %d coordinates", key, i, len(c))
		}
		pts[i] = math32.Vec2(float32(c[0]), float32(c[1]))
	}
	return pts, nil
}

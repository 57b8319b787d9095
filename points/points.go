// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package points provides a shared, observable list of 3D points.
package points

import (
	"io"
	"sync"

	"cogentcore.org/core/base/iox/jsonx"
	"cogentcore.org/core/math32"
)

// Store holds the current point set. It has a single writer (the model
// loader) and any number of readers, which may subscribe with [Store.OnChange].
type Store struct {
	mu        sync.Mutex
	points    []math32.Vector3
	listeners []func(pts []math32.Vector3)
}

// Set replaces the point set and notifies all listeners,
// in the order they were added.
func (s *Store) Set(pts []math32.Vector3) {
	s.mu.Lock()
	s.points = append([]math32.Vector3(nil), pts...)
	ls := append([]func([]math32.Vector3){}, s.listeners...)
	s.mu.Unlock()
	for _, f := range ls {
		f(s.Points())
	}
}

// Points returns a copy of the current points.
func (s *Store) Points() []math32.Vector3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]math32.Vector3(nil), s.points...)
}

// Len returns the number of points.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.points)
}

// OnChange adds a function called with a copy of the points after every Set.
func (s *Store) OnChange(f func(pts []math32.Vector3)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, f)
	s.mu.Unlock()
}

// WriteJSON writes the current points as an indented JSON array.
func (s *Store) WriteJSON(w io.Writer) error {
	pts := s.Points()
	if pts == nil {
		pts = []math32.Vector3{}
	}
	return jsonx.WriteIndent(pts, w)
}

// SaveJSON saves the current points to the given file.
func (s *Store) SaveJSON(filename string) error {
	pts := s.Points()
	if pts == nil {
		pts = []math32.Vector3{}
	}
	return jsonx.SaveIndent(pts, filename)
}

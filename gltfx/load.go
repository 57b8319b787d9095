// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gltfx loads glTF 2.0 models, extracts their world space vertex
// positions and builds them into an [xyz.Scene].
package gltfx

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/laralab/heartanalyzer/api"
	"github.com/qmuntal/gltf"
)

// IsAsset returns whether the file name is a glTF asset.
func IsAsset(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".gltf" || ext == ".glb"
}

// Open loads the glTF asset in the given file, resolving external
// buffers and images relative to its directory.
func Open(filename string) (*gltf.Document, error) {
	if !IsAsset(filename) {
		return nil, &LoadError{Kind: ErrNoAsset, Name: filename}
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, &LoadError{Kind: ErrNetwork, Name: filename, Err: err}
	}
	defer f.Close()
	return Read(filename, f, os.DirFS(filepath.Dir(filename)))
}

// Read decodes a glTF asset from r, resolving external resources in fsys.
// The name is used in errors.
func Read(name string, r io.Reader, fsys fs.FS) (*gltf.Document, error) {
	doc := &gltf.Document{}
	if err := gltf.NewDecoderFS(r, fsys).Decode(doc); err != nil {
		return nil, classify(name, err)
	}
	if err := checkImages(doc, fsys); err != nil {
		return nil, err
	}
	return doc, nil
}

// Load fetches the glTF asset at the given API href, with external
// resources fetched relative to it.
func Load(ctx context.Context, c *api.Client, href string) (*gltf.Document, error) {
	pl, err := c.Data(ctx, href)
	if err != nil {
		return nil, &LoadError{Kind: ErrNetwork, Name: href, Err: err}
	}
	doc, err := Read(href, bytes.NewReader(pl.Data), &HTTPFS{Ctx: ctx, Client: c, Base: path.Dir(href)})
	if err != nil {
		return nil, err
	}
	slog.Info("loaded model", "href", href, "nodes", len(doc.Nodes), "meshes", len(doc.Meshes))
	return doc, nil
}

// checkImages verifies that all external images exist.
func checkImages(doc *gltf.Document, fsys fs.FS) error {
	for _, im := range doc.Images {
		if im.URI == "" || im.IsEmbeddedResource() {
			continue
		}
		name := strings.TrimPrefix(im.URI, "./")
		if _, err := fs.Stat(fsys, name); err != nil {
			return &LoadError{Kind: ErrMissingTexture, Name: im.URI, Err: err}
		}
	}
	return nil
}

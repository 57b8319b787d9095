// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltfx

import (
	"bytes"
	"context"
	"io/fs"
	"path"
	"time"

	"github.com/laralab/heartanalyzer/api"
)

// HTTPFS is a read-only [fs.FS] whose files are fetched through an API
// client, relative to Base.
type HTTPFS struct {
	Ctx    context.Context
	Client *api.Client
	Base   string
}

// Open fetches the named file.
func (h *HTTPFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	ctx := h.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	pl, err := h.Client.Data(ctx, path.Join(h.Base, name))
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return &httpFile{Reader: bytes.NewReader(pl.Data), name: path.Base(name), size: int64(len(pl.Data))}, nil
}

type httpFile struct {
	*bytes.Reader
	name string
	size int64
}

func (f *httpFile) Stat() (fs.FileInfo, error) { return f, nil }
func (f *httpFile) Close() error               { return nil }
func (f *httpFile) Name() string               { return f.name }
func (f *httpFile) Size() int64                { return f.size }
func (f *httpFile) Mode() fs.FileMode          { return 0444 }
func (f *httpFile) ModTime() time.Time         { return time.Time{} }
func (f *httpFile) IsDir() bool                { return false }
func (f *httpFile) Sys() any                   { return nil }

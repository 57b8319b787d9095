// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltfx

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"path"

	"github.com/laralab/heartanalyzer/api"
)

// ErrorKinds classify model loading failures.
type ErrorKinds int32

const (
	// ErrNetwork means a file could not be retrieved.
	ErrNetwork ErrorKinds = iota

	// ErrParse means a file was retrieved but is not valid glTF.
	ErrParse

	// ErrMissingTexture means an image referenced by the model is missing.
	ErrMissingTexture

	// ErrNoAsset means no .gltf or .glb asset was given.
	ErrNoAsset
)

func (k ErrorKinds) String() string {
	switch k {
	case ErrNetwork:
		return "Network"
	case ErrParse:
		return "Parse"
	case ErrMissingTexture:
		return "MissingTexture"
	case ErrNoAsset:
		return "NoAsset"
	}
	return fmt.Sprintf("ErrorKinds(%d)", int32(k))
}

// LoadError is returned by all loading functions in this package.
type LoadError struct {
	Kind ErrorKinds

	// Name is the asset, or for ErrMissingTexture the image, concerned.
	Name string

	Err error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("gltfx: %s error loading %s", e.Kind, e.Name)
	}
	return fmt.Sprintf("gltfx: %s error loading %s: %v", e.Kind, e.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Message returns the text shown to the user.
func (e *LoadError) Message() string {
	switch e.Kind {
	case ErrNetwork:
		return "Unable to retrieve this file. Check the log output and the network connection."
	case ErrParse:
		return fmt.Sprintf("Unable to parse file content. Verify that this file is valid. Error: %q", e.errText())
	case ErrMissingTexture:
		return "Missing texture: " + path.Base(e.Name)
	case ErrNoAsset:
		return "No .gltf or .glb asset found."
	}
	return e.Error()
}

func (e *LoadError) errText() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// classify wraps err in a LoadError, deciding whether it comes from
// retrieving a file or from decoding it.
func classify(name string, err error) *LoadError {
	var le *LoadError
	if errors.As(err, &le) {
		return le
	}
	if isNetwork(err) {
		return &LoadError{Kind: ErrNetwork, Name: name, Err: err}
	}
	return &LoadError{Kind: ErrParse, Name: name, Err: err}
}

func isNetwork(err error) bool {
	var se *api.StatusError
	var ue *url.Error
	var ne net.Error
	var pe *fs.PathError
	return errors.As(err, &se) || errors.As(err, &ue) || errors.As(err, &ne) ||
		errors.As(err, &pe) || errors.Is(err, fs.ErrNotExist)
}

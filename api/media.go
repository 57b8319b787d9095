// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

// Media types understood by the viewer.
const (
	MediaAnalysisPrimitives = "application/com.laralab.analysis-primitives+json"
	MediaJPEG               = "image/jpeg"
	MediaGLTF               = "model/gltf+json"
)

// ViewKind is the kind of view used to render an attachment.
type ViewKind int32

const (
	// ViewNone is used for media types without a view.
	ViewNone ViewKind = iota

	// ViewMeasurements is the measurement table.
	ViewMeasurements

	// ViewImage is the screenshot image view.
	ViewImage

	// ViewModel is the 3D scene with the contour overlay.
	ViewModel
)

func (v ViewKind) String() string {
	switch v {
	case ViewMeasurements:
		return "Measurements"
	case ViewImage:
		return "Image"
	case ViewModel:
		return "Model"
	}
	return "None"
}

// ViewFor returns the one view that renders the given media type.
func ViewFor(mediaType string) ViewKind {
	switch mediaType {
	case MediaAnalysisPrimitives:
		return ViewMeasurements
	case MediaJPEG:
		return ViewImage
	case MediaGLTF:
		return ViewModel
	}
	return ViewNone
}

// Extension returns the file extension used to store payloads of
// the given media type, or "" if unknown.
func Extension(mediaType string) string {
	switch mediaType {
	case MediaAnalysisPrimitives:
		return "json"
	case MediaJPEG:
		return "jpeg"
	case MediaGLTF:
		return "gltf"
	}
	return ""
}

// MediaTypeForExtension is the inverse of [Extension]. It returns
// application/octet-stream for unknown extensions.
func MediaTypeForExtension(ext string) string {
	switch ext {
	case "json":
		return MediaAnalysisPrimitives
	case "jpeg", "jpg":
		return MediaJPEG
	case "gltf":
		return MediaGLTF
	}
	return "application/octet-stream"
}

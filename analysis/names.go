// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Beautify turns a path such as "mitral_annulus/saddle-shape" into
// "Mitral Annulus | Saddle Shape". Only the first letter of each word
// is changed, so "area_3D" becomes "Area 3D".
func Beautify(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		words := strings.FieldsFunc(part, func(r rune) bool {
			return r == '_' || r == '-'
		})
		for j, w := range words {
			words[j] = capitalize(w)
		}
		parts[i] = strings.Join(words, " ")
	}
	return strings.Join(parts, " | ")
}

// capitalize upper cases the first rune of s.
func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

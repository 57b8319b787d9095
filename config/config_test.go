// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/laralab/heartanalyzer/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, "http://localhost:8000", cfg.API)
	assert.Equal(t, analysis.DefaultSplineKey, cfg.Overlay.SplineKey)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.True(t, cfg.Server.Seed)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultsWithColons(t *testing.T) {
	cfg := New()
	assert.Equal(t, DefaultAPI, cfg.API)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, "/mitral_annulus/from_leaflets/saddle_shape/closed_spline", cfg.Overlay.SplineKey)
	assert.Equal(t, "static/data", cfg.Server.DataDir)
	assert.True(t, cfg.Server.Watch)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "heartview.toml")
	require.NoError(t, os.WriteFile(fn, []byte("API = \"https://api.example.com\"\n\n[Server]\nSeed = false\n"), 0644))

	cfg, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.API)
	assert.False(t, cfg.Server.Seed)
	assert.Equal(t, "static/data", cfg.Server.DataDir)

	cfg.Server.Addr = ":9000"
	require.NoError(t, cfg.Save(fn))
	cfg, err = Open(fn)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(fn, []byte("API = \n"), 0644))
	_, err := Open(fn)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(fn, []byte("API = \"ftp://host\"\n"), 0644))
	_, err = Open(fn)
	assert.ErrorContains(t, err, "http or https")

	_, err = Open(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

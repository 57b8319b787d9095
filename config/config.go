// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration
// structs for the heart analyzer commands.
package config

import (
	"errors"
	"fmt"
	"net/url"

	"cogentcore.org/core/base/iox/tomlx"
	"cogentcore.org/core/cli"
	"github.com/laralab/heartanalyzer/analysis"
	"github.com/pelletier/go-toml/v2"
)

// Config is the main config struct that contains all of the
// configuration options for the viewer and the development server.
type Config struct {

	// API is the root URL of the patient API.
	API string

	// Overlay configures the annulus contour overlay.
	Overlay Overlay `display:"add-fields"`

	// Server configures the development API server.
	Server Server `display:"add-fields"`

	// Debug enables debug logging.
	Debug bool `flag:"d,debug"`
}

// Overlay configures where the overlay contour comes from.
type Overlay struct {

	// Source is the API href of the analysis document the contour is
	// read from when the patient has no analysis attachment of its own.
	Source string `default:"/static/data/eb635c2c-d485-4f1f-af6f-64098f57010e.json"`

	// SplineKey is the primitive holding the contour points.
	SplineKey string `default:"/mitral_annulus/from_leaflets/saddle_shape/closed_spline"`
}

// Server configures the development API server.
type Server struct {

	// Addr is the address to listen on.
	Addr string

	// DataDir is the directory of attachment payloads served
	// under /static/data/.
	DataDir string `default:"static/data"`

	// Seed writes the sample payloads into DataDir on startup
	// if they are missing.
	Seed bool `default:"true"`

	// Patients is an optional YAML file of patient records served
	// instead of the sample patients.
	Patients string

	// Watch reloads changed payloads in DataDir without a restart.
	Watch bool `default:"true"`
}

// Defaults for the values that default tags cannot hold,
// since tag values are split on colons.
const (
	DefaultAPI  = "http://localhost:8000"
	DefaultAddr = ":8000"
)

// New returns a config with all default values set.
func New() *Config {
	cfg := &Config{}
	cli.SetFromDefaults(cfg)
	cfg.API = DefaultAPI
	cfg.Server.Addr = DefaultAddr
	return cfg
}

// Open returns the defaults overridden by the given TOML file.
// Decode errors include the line and column.
func Open(filename string) (*Config, error) {
	cfg := New()
	if err := tomlx.Open(cfg, filename); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("config: %s:%d:%d: %w", filename, row, col, err)
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Save writes the config to the given TOML file.
func (c *Config) Save(filename string) error {
	return tomlx.Save(c, filename)
}

// Validate returns an error for unusable values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API)
	if err != nil {
		return fmt.Errorf("config: API: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: API %q must be an http or https URL", c.API)
	}
	if c.Overlay.SplineKey == "" {
		c.Overlay.SplineKey = analysis.DefaultSplineKey
	}
	return nil
}

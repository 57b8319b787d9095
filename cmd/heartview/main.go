// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command heartview is the LARALAB Heart Analyzer patient viewer.
package main

import (
	"log/slog"

	"cogentcore.org/core/cli"
	"github.com/laralab/heartanalyzer/config"
	"github.com/laralab/heartanalyzer/viewer"
)

func main() {
	opts := cli.DefaultOptions("heartview", "The LARALAB Heart Analyzer patient viewer.")
	opts.DefaultFiles = []string{"heartview.toml"}
	cli.Run(opts, config.New(), &cli.Cmd[*config.Config]{
		Func: View,
		Name: "view",
		Doc:  "View opens the patient viewer window.",
		Root: true,
	})
}

// View opens the patient viewer window.
func View(c *config.Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	slog.Info("starting viewer", "api", c.API)
	viewer.New(c).ConfigGUI().RunMainWindow()
	return nil
}

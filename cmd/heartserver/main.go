// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command heartserver serves the sample patient API for development.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cogentcore.org/core/cli"
	"github.com/laralab/heartanalyzer/config"
	"github.com/laralab/heartanalyzer/server"
	"golang.org/x/sync/errgroup"
)

func main() {
	opts := cli.DefaultOptions("heartserver", "The LARALAB Heart Analyzer development API server.")
	opts.DefaultFiles = []string{"heartview.toml"}
	cli.Run(opts, config.New(), &cli.Cmd[*config.Config]{
		Func: Serve,
		Name: "serve",
		Doc:  "Serve serves the patients and their attachments.",
		Root: true,
	})
}

// Serve serves the patients and their attachments
// until it is interrupted.
func Serve(c *config.Config) error {
	if c.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	if c.Server.Seed {
		if err := server.Seed(c.Server.DataDir); err != nil {
			return err
		}
	}
	st := server.NewSampleStore()
	if c.Server.Patients != "" {
		var err error
		st, err = server.OpenStore(c.Server.Patients)
		if err != nil {
			return err
		}
	}
	s := server.New(st, c.Server.DataDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.ListenAndServe(ctx, c.Server.Addr)
	})
	if c.Server.Watch {
		g.Go(func() error {
			return s.Watch(ctx)
		})
	}
	return g.Wait()
}

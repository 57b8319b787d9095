// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// dataCache holds the payload files read from the data directory.
// Every drop or reset bumps the generation, and a read only stores
// its bytes if the generation is unchanged since its lookup, so a
// file read before a change is never cached after it.
type dataCache struct {
	mu    sync.Mutex
	files map[string][]byte
	gen   uint64
}

// read returns the named file in dir, reading it on first use.
func (c *dataCache) read(dir, name string) ([]byte, error) {
	b, gen, ok := c.lookup(name)
	if ok {
		return b, nil
	}
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	c.store(name, b, gen)
	return b, nil
}

// lookup returns the cached file and the current generation.
func (c *dataCache) lookup(name string) ([]byte, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.files[name]
	return b, c.gen, ok
}

// store caches b for name unless the cache changed since gen.
func (c *dataCache) store(name string, b []byte, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return
	}
	if c.files == nil {
		c.files = map[string][]byte{}
	}
	c.files[name] = b
}

// drop removes the named file from the cache.
func (c *dataCache) drop(name string) {
	c.mu.Lock()
	delete(c.files, name)
	c.gen++
	c.mu.Unlock()
}

// reset removes all files from the cache.
func (c *dataCache) reset() {
	c.mu.Lock()
	c.files = nil
	c.gen++
	c.mu.Unlock()
}

// len returns the number of cached files.
func (c *dataCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.files)
}

// Watch watches the data directory and drops changed payloads from
// the cache, so that edits are served without a restart. It returns
// when ctx is done.
func (s *Server) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(s.DataDir); err != nil {
		return err
	}
	s.cache.reset()
	s.watching.Store(true)
	defer func() {
		s.watching.Store(false)
		s.cache.reset()
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Base(ev.Name)
			s.cache.drop(name)
			slog.Debug("data file changed", "file", name, "op", ev.Op.String())
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("watching data directory", "dir", s.DataDir, "err", err)
		}
	}
}

// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// Package imagepool keeps the list of images in a directory current and
// picks one at random.
package imagepool

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hyprvis/visualizer/lib/clock"
)

// settleDelay is how long the directory must stay quiet before a
// rescan. Copying a folder of images is one rescan, not one per file.
const settleDelay = 100 * time.Millisecond

var extensions = []string{".gif", ".png", ".jpg", ".jpeg", ".webp"}

// Picker chooses an index below n.
type Picker interface {
	IntN(n int) int
}

// Pool is the set of images in one directory. It is safe for concurrent
// use.
type Pool struct {
	dir    string
	logger *slog.Logger

	mu     sync.Mutex
	images []string
}

// Open scans dir. The pool is empty, not an error, when dir is "".
func Open(dir string, logger *slog.Logger) (*Pool, error) {
	pool := &Pool{dir: dir, logger: logger}
	if dir == "" {
		return pool, nil
	}
	if err := pool.rescan(); err != nil {
		return nil, err
	}
	return pool, nil
}

// Dir returns the watched directory.
func (p *Pool) Dir() string { return p.dir }

// Len returns the number of images.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.images)
}

// Pick returns a random image path. ok is false when the pool is empty.
func (p *Pool) Pick(picker Picker) (path string, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.images) == 0 {
		return "", false
	}
	return p.images[picker.IntN(len(p.images))], true
}

func (p *Pool) rescan() error {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return fmt.Errorf("reading image directory: %w", err)
	}
	var images []string
	for _, entry := range entries {
		if entry.IsDir() || !slices.Contains(extensions, strings.ToLower(filepath.Ext(entry.Name()))) {
			continue
		}
		images = append(images, filepath.Join(p.dir, entry.Name()))
	}
	p.mu.Lock()
	p.images = images
	p.mu.Unlock()
	return nil
}

// Watch rescans the directory once its entries change and then stay
// unchanged for settleDelay on clk, until ctx ends. It returns once the
// watch is established. Watching an empty pool without a directory is a
// no-op.
func (p *Pool) Watch(ctx context.Context, clk clock.Clock) error {
	if p.dir == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating image watcher: %w", err)
	}
	if err := watcher.Add(p.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", p.dir, err)
	}
	// Catch changes made between Open and Add.
	if err := p.rescan(); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		// settled is nil while no rescan is due.
		var settled <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					settled = clk.After(settleDelay)
				}
			case <-settled:
				settled = nil
				if err := p.rescan(); err != nil {
					p.logger.Warn("rescanning images failed", "path", p.dir, "error", err)
					continue
				}
				p.logger.Debug("image pool updated", "path", p.dir, "images", p.Len())
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.logger.Warn("image watcher error", "path", p.dir, "error", err)
			}
		}
	}()
	return nil
}

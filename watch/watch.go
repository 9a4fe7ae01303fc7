// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package watch reloads a state file when it changes on disk, and
// hands the loaded document to the edit context.
package watch

import (
	"log/slog"
	"path/filepath"
	"sync"

	"cogentcore.org/huecurve/base/errors"
	"cogentcore.org/huecurve/state"
	"github.com/fsnotify/fsnotify"
)

// Poster queues work on the edit context, such as an editor.Loop.
type Poster interface {
	Post(fn func())
}

// Watcher watches one state file.
type Watcher struct {
	// Path is the watched file.
	Path string

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
	post    Poster
	apply   func(d *state.Document)
}

// New starts watching the state file at path. Each time it is written
// or replaced, it is loaded on the watcher goroutine, and apply is
// posted with the document, in the order of the changes.
// The directory is watched, so that files replaced by rename are seen.
func New(path string, post Poster, apply func(d *state.Document)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := state.FormatOf(abs); err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{Path: abs, watcher: fw, done: make(chan struct{}), post: post, apply: apply}
	w.wg.Add(1)
	go w.watch()
	return w, nil
}

func (w *Watcher) watch() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			errors.Log(err)
		}
	}
}

// reload loads the file and posts it. Files that do not load, as
// while being written, are logged at debug level and skipped.
func (w *Watcher) reload() {
	d, err := state.Open(w.Path)
	if err != nil {
		slog.Debug("watch: skipping unreadable state", "path", w.Path, "err", err)
		return
	}
	if err := d.Validate(); err != nil {
		slog.Warn("watch: invalid state", "path", w.Path, "err", err)
		return
	}
	w.post.Post(func() { w.apply(d) })
}

// Close stops watching and waits for the watcher goroutine to exit.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

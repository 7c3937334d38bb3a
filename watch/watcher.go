// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package watch is the host-facing file watcher: it invalidates Cache
// entries when the template source backing them changes on disk. It is
// a host integration layered onto leaf/cache, not a core component.
package watch

import (
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/oprisk/leaf-kit/cache"
)

// Watcher watches template source paths and removes the corresponding
// Cache entry when a watched path is written to.
type Watcher struct {
	watcher *fsnotify.Watcher
	cache   *cache.Cache

	// Errors receives watch errors for the host to drain.
	Errors chan error

	mu      sync.Mutex
	watched map[string]bool
	keys    map[string]cache.Key
}

// New starts a Watcher backed by c.
func New(c *cache.Cache) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		watcher: fw,
		cache:   c,
		Errors:  make(chan error),
		watched: map[string]bool{},
		keys:    map[string]cache.Key{},
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				w.invalidate(event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.Errors <- err
		}
	}
}

func (w *Watcher) invalidate(path string) {
	w.mu.Lock()
	key, ok := w.keys[path]
	w.mu.Unlock()
	if !ok {
		return
	}
	w.cache.Remove(key)
}

// Watch registers path for change notification, remembering key as the
// cache entry to remove when the file next changes. Calling Watch again
// for a path already being watched only updates the remembered key (the
// template at that path was recompiled under a new content fingerprint)
// without re-adding the fsnotify watch.
func (w *Watcher) Watch(path string, key cache.Key) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.keys[path] = key
	if w.watched[path] {
		return nil
	}
	if err := w.watcher.Add(path); err != nil {
		return err
	}
	w.watched[path] = true
	return nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

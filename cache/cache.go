// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"fmt"
	"sync"

	"github.com/oprisk/leaf-kit/ast"
)

// DrainThreshold is the touch-rotation threshold: once a key's
// accumulated Touch reaches this many renders, the next Retrieve
// atomically swaps it for an empty Touch and folds the drained values
// into the compiled template's Info. Kept a power of two for cheap
// masking if ever optimized.
const DrainThreshold = 128

// CompiledTemplate is a cached compiled AST paired with its drained
// usage Info.
type CompiledTemplate struct {
	Root ast.Parameter
	Info Info
}

// KeyExistsError is returned by Insert when key is already present and
// replace was not requested. It is a plain Go error, never wrapped as a
// Data value.
type KeyExistsError struct {
	Name string
}

func (e *KeyExistsError) Error() string {
	return fmt.Sprintf("leaf/cache: %q already exists", e.Name)
}

// Cache is the concurrent compiled-template store: two independent
// reader/writer locks guard the AST map and the Touch map respectively.
// Every operation that needs both locks acquires the cache lock first,
// never the reverse, so a caller holding only one lock can never
// deadlock against one holding both.
type Cache struct {
	cacheMu sync.RWMutex
	entries map[Key]*CompiledTemplate

	touchMu sync.RWMutex
	touches map[Key]Touch
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{
		entries: map[Key]*CompiledTemplate{},
		touches: map[Key]Touch{},
	}
}

// Insert stores tmpl under key. If key is already present and replace
// is false, Insert fails with a *KeyExistsError and leaves the existing
// entry untouched; otherwise it stores tmpl and (re)initializes key's
// Touch to empty.
func (c *Cache) Insert(name string, key Key, tmpl *CompiledTemplate, replace bool) error {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	if _, exists := c.entries[key]; exists && !replace {
		return &KeyExistsError{Name: name}
	}
	c.entries[key] = tmpl
	c.touchMu.Lock()
	c.touches[key] = Touch{}
	c.touchMu.Unlock()
	return nil
}

// Retrieve returns the compiled template stored under key, if any. When
// the accumulated Touch count has reached DrainThreshold, Retrieve
// atomically swaps it for empty and folds the drained values into the
// template's Info before returning.
func (c *Cache) Retrieve(key Key) (*CompiledTemplate, bool) {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()
	tmpl, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.touchMu.Lock()
	t := c.touches[key]
	if t.RenderCount >= DrainThreshold {
		c.touches[key] = Touch{}
		tmpl.Info.fold(t)
	}
	c.touchMu.Unlock()
	return tmpl, true
}

// Remove discards the entry under key and its Touch, without draining
// any pending telemetry into Info. It reports whether key was present.
// Like every other operation here, Remove acquires the cache lock before
// the touch lock: the ordering must hold across all operations for the
// deadlock-freedom argument to go through.
func (c *Cache) Remove(key Key) bool {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	if _, existed := c.entries[key]; !existed {
		return false
	}
	delete(c.entries, key)
	c.touchMu.Lock()
	delete(c.touches, key)
	c.touchMu.Unlock()
	return true
}

// TouchKey merges values into key's accumulated Touch. A key with no
// cached entry is silently ignored.
func (c *Cache) TouchKey(key Key, values Touch) {
	c.touchMu.Lock()
	defer c.touchMu.Unlock()
	if existing, ok := c.touches[key]; ok {
		c.touches[key] = existing.Merge(values)
	}
}

// Info returns the drained Info for key, folding in any pending Touch
// regardless of DrainThreshold: an info read always sees up-to-date
// statistics.
func (c *Cache) Info(key Key) (Info, bool) {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()
	tmpl, ok := c.entries[key]
	if !ok {
		return Info{}, false
	}
	c.touchMu.Lock()
	t := c.touches[key]
	if !t.IsEmpty() {
		c.touches[key] = Touch{}
		tmpl.Info.fold(t)
	}
	c.touchMu.Unlock()
	return tmpl.Info, true
}

// DropAll clears the cache and its touch telemetry, acquiring the cache
// lock then the touch lock.
func (c *Cache) DropAll() {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	c.touchMu.Lock()
	defer c.touchMu.Unlock()
	c.entries = map[Key]*CompiledTemplate{}
	c.touches = map[Key]Touch{}
}

// Count returns the number of cached templates.
func (c *Cache) Count() int {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()
	return len(c.entries)
}

// IsEmpty reports whether the cache holds no templates.
func (c *Cache) IsEmpty() bool { return c.Count() == 0 }

// Keys returns every cached key, in no particular order.
func (c *Cache) Keys() []Key {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()
	keys := make([]Key, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

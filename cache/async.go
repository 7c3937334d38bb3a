// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

// RunFunc schedules fn onto the host's event loop. The zero behavior
// (used when a nil RunFunc is supplied) runs fn on its own goroutine.
type RunFunc func(fn func())

// Async is the future-returning adapter over a Cache for external I/O
// clients: each method schedules the corresponding synchronous cache
// operation onto the caller-provided event loop and delivers the result
// through a buffered channel. It adds no locking of its own; the cache's
// critical sections stay short and bounded.
type Async struct {
	c   *Cache
	run RunFunc
}

// NewAsync wraps c. run schedules work onto the host's event loop; if
// nil, each operation runs on a fresh goroutine.
func NewAsync(c *Cache, run RunFunc) *Async {
	if run == nil {
		run = func(fn func()) { go fn() }
	}
	return &Async{c: c, run: run}
}

// RetrieveResult is the delivered value of an Async.Retrieve.
type RetrieveResult struct {
	Template *CompiledTemplate
	Found    bool
}

// InfoResult is the delivered value of an Async.Info.
type InfoResult struct {
	Info  Info
	Found bool
}

// Insert schedules Cache.Insert and returns a channel that delivers its
// error (nil on success) exactly once.
func (a *Async) Insert(name string, key Key, tmpl *CompiledTemplate, replace bool) <-chan error {
	ch := make(chan error, 1)
	a.run(func() { ch <- a.c.Insert(name, key, tmpl, replace) })
	return ch
}

// Retrieve schedules Cache.Retrieve.
func (a *Async) Retrieve(key Key) <-chan RetrieveResult {
	ch := make(chan RetrieveResult, 1)
	a.run(func() {
		tmpl, ok := a.c.Retrieve(key)
		ch <- RetrieveResult{Template: tmpl, Found: ok}
	})
	return ch
}

// Remove schedules Cache.Remove, delivering whether the key was present.
func (a *Async) Remove(key Key) <-chan bool {
	ch := make(chan bool, 1)
	a.run(func() { ch <- a.c.Remove(key) })
	return ch
}

// TouchKey schedules Cache.TouchKey, delivering completion.
func (a *Async) TouchKey(key Key, values Touch) <-chan struct{} {
	ch := make(chan struct{}, 1)
	a.run(func() {
		a.c.TouchKey(key, values)
		ch <- struct{}{}
	})
	return ch
}

// Info schedules Cache.Info.
func (a *Async) Info(key Key) <-chan InfoResult {
	ch := make(chan InfoResult, 1)
	a.run(func() {
		info, ok := a.c.Info(key)
		ch <- InfoResult{Info: info, Found: ok}
	})
	return ch
}

// DropAll schedules Cache.DropAll, delivering completion.
func (a *Async) DropAll() <-chan struct{} {
	ch := make(chan struct{}, 1)
	a.run(func() {
		a.c.DropAll()
		ch <- struct{}{}
	})
	return ch
}

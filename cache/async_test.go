// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import "testing"

func Test_Async_InsertRetrieveRemove(t *testing.T) {
	a := NewAsync(New(), nil)
	key := NewKey("t", []byte("a"))
	tmpl := &CompiledTemplate{}

	if err := <-a.Insert("t", key, tmpl, false); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := <-a.Insert("t", key, &CompiledTemplate{}, false); err == nil {
		t.Fatal("second Insert without replace should deliver an error")
	}

	got := <-a.Retrieve(key)
	if !got.Found || got.Template != tmpl {
		t.Error("Retrieve should deliver the inserted template")
	}

	if removed := <-a.Remove(key); !removed {
		t.Error("Remove should deliver true for a present key")
	}
	if got := <-a.Retrieve(key); got.Found {
		t.Error("Retrieve after Remove should deliver not-found")
	}
}

func Test_Async_TouchAndInfo(t *testing.T) {
	a := NewAsync(New(), nil)
	key := NewKey("t", []byte("a"))
	if err := <-a.Insert("t", key, &CompiledTemplate{}, false); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	<-a.TouchKey(key, Touch{RenderCount: 2})
	info := <-a.Info(key)
	if !info.Found {
		t.Fatal("Info should find the key")
	}
	if info.Info.DrainedRenderCount != 2 {
		t.Errorf("DrainedRenderCount = %d, want 2", info.Info.DrainedRenderCount)
	}
}

func Test_Async_CallerProvidedLoop(t *testing.T) {
	// A deliberately synchronous "event loop": the adapter must only
	// schedule, never run the operation inline itself.
	ran := 0
	loop := func(fn func()) { ran++; fn() }
	a := NewAsync(New(), loop)

	key := NewKey("t", []byte("a"))
	if err := <-a.Insert("t", key, &CompiledTemplate{}, false); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	<-a.DropAll()
	if ran != 2 {
		t.Errorf("event loop invoked %d times, want 2", ran)
	}
}

// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"sync"
	"testing"
	"time"
)

func templateFor(name string) *CompiledTemplate {
	return &CompiledTemplate{}
}

// insert(k,A); insert(k,B,replace=false); retrieve(k): the second insert
// fails with KeyExistsError and retrieve still returns A.
func Test_Cache_InsertWithoutReplace_KeepsOriginal(t *testing.T) {
	c := New()
	key := NewKey("t", []byte("a"))
	a := templateFor("a")
	b := templateFor("b")

	if err := c.Insert("t", key, a, false); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	err := c.Insert("t", key, b, false)
	if err == nil {
		t.Fatal("second Insert without replace should fail")
	}
	if _, ok := err.(*KeyExistsError); !ok {
		t.Fatalf("error type = %T, want *KeyExistsError", err)
	}

	got, ok := c.Retrieve(key)
	if !ok {
		t.Fatal("Retrieve should find the key")
	}
	if got != a {
		t.Error("Retrieve should still return the original entry A")
	}
}

func Test_Cache_InsertWithReplace_Overwrites(t *testing.T) {
	c := New()
	key := NewKey("t", []byte("a"))
	a := templateFor("a")
	b := templateFor("b")

	if err := c.Insert("t", key, a, false); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	if err := c.Insert("t", key, b, true); err != nil {
		t.Fatalf("replace Insert: %v", err)
	}
	got, ok := c.Retrieve(key)
	if !ok || got != b {
		t.Error("Retrieve should return the replacement entry B")
	}
}

// touch(k,t) x128 then retrieve(k): touches[k] becomes empty and the
// template's Info reflects the aggregated t x128.
func Test_Cache_Retrieve_DrainsAtThreshold(t *testing.T) {
	c := New()
	key := NewKey("t", []byte("a"))
	tmpl := templateFor("a")
	if err := c.Insert("t", key, tmpl, false); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	single := Touch{RenderCount: 1, ExecutionTime: time.Millisecond, SerializedSize: 10}
	for i := 0; i < DrainThreshold; i++ {
		c.TouchKey(key, single)
	}

	got, ok := c.Retrieve(key)
	if !ok {
		t.Fatal("Retrieve should find the key")
	}
	if got.Info.DrainedRenderCount != DrainThreshold {
		t.Errorf("DrainedRenderCount = %d, want %d", got.Info.DrainedRenderCount, DrainThreshold)
	}
	if got.Info.TotalExecutionTime != time.Duration(DrainThreshold)*time.Millisecond {
		t.Errorf("TotalExecutionTime = %v, want %v", got.Info.TotalExecutionTime, time.Duration(DrainThreshold)*time.Millisecond)
	}
	if got.Info.TotalSerializedSize != int64(DrainThreshold*10) {
		t.Errorf("TotalSerializedSize = %d, want %d", got.Info.TotalSerializedSize, DrainThreshold*10)
	}

	// A second retrieve, with nothing more touched, must not double-drain:
	// the pending touch was already swapped for empty.
	got2, _ := c.Retrieve(key)
	if got2.Info.DrainedRenderCount != DrainThreshold {
		t.Errorf("DrainedRenderCount after second Retrieve = %d, want unchanged %d", got2.Info.DrainedRenderCount, DrainThreshold)
	}
}

func Test_Cache_Retrieve_BelowThreshold_DoesNotDrain(t *testing.T) {
	c := New()
	key := NewKey("t", []byte("a"))
	tmpl := templateFor("a")
	if err := c.Insert("t", key, tmpl, false); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	c.TouchKey(key, Touch{RenderCount: 1})

	got, _ := c.Retrieve(key)
	if got.Info.DrainedRenderCount != 0 {
		t.Errorf("DrainedRenderCount = %d, want 0 (below threshold)", got.Info.DrainedRenderCount)
	}
}

func Test_Cache_Info_DrainsAnyNonEmptyTouch(t *testing.T) {
	c := New()
	key := NewKey("t", []byte("a"))
	tmpl := templateFor("a")
	if err := c.Insert("t", key, tmpl, false); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	c.TouchKey(key, Touch{RenderCount: 1})

	info, ok := c.Info(key)
	if !ok {
		t.Fatal("Info should find the key")
	}
	if info.DrainedRenderCount != 1 {
		t.Errorf("DrainedRenderCount = %d, want 1 (Info drains regardless of threshold)", info.DrainedRenderCount)
	}
}

func Test_Cache_TouchKey_IgnoresMissingKey(t *testing.T) {
	c := New()
	missing := NewKey("missing", nil)
	c.TouchKey(missing, Touch{RenderCount: 5}) // should not panic
	if _, ok := c.Info(missing); ok {
		t.Error("Info should report the key as absent")
	}
}

func Test_Cache_Remove(t *testing.T) {
	c := New()
	key := NewKey("t", []byte("a"))
	tmpl := templateFor("a")
	if err := c.Insert("t", key, tmpl, false); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if !c.Remove(key) {
		t.Fatal("Remove should report the key was present")
	}
	if c.Remove(key) {
		t.Error("a second Remove of the same key should report false")
	}
	if _, ok := c.Retrieve(key); ok {
		t.Error("a removed key should no longer be retrievable")
	}
}

func Test_Cache_DropAll(t *testing.T) {
	c := New()
	for i := 0; i < 3; i++ {
		key := NewKey("t", []byte{byte(i)})
		if err := c.Insert("t", key, templateFor("t"), false); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	if c.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", c.Count())
	}
	c.DropAll()
	if !c.IsEmpty() {
		t.Error("DropAll should empty the cache")
	}
	if len(c.Keys()) != 0 {
		t.Error("DropAll should clear all keys")
	}
}

// Concurrent interleavings of insert/retrieve/remove/touch must not
// deadlock, since every operation in this package that takes both locks
// takes cache-before-touch.
func Test_Cache_ConcurrentAccess_NoDeadlock(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	keys := make([]Key, 16)
	for i := range keys {
		keys[i] = NewKey("t", []byte{byte(i)})
	}

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				k := keys[(i+j)%len(keys)]
				switch j % 4 {
				case 0:
					_ = c.Insert("t", k, templateFor("t"), true)
				case 1:
					c.Retrieve(k)
				case 2:
					c.TouchKey(k, Touch{RenderCount: 1})
				case 3:
					c.Remove(k)
				}
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("concurrent cache access deadlocked")
	}
}

func Test_Key_StringAndEquality(t *testing.T) {
	k1 := NewKey("name", []byte("source"))
	k2 := NewKey("name", []byte("source"))
	k3 := NewKey("other", []byte("source"))
	if k1 != k2 {
		t.Error("identical name+source should produce identical keys")
	}
	if k1 == k3 {
		t.Error("different names should produce different keys even with the same source")
	}
	if k1.String() == "" {
		t.Error("String() should not be empty")
	}
}

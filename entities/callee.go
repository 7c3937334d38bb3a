// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entities

import "github.com/oprisk/leaf-kit"

// CallEnv is passed to a Callee's invocation functions. UnsafeObjects is
// non-nil only when the Callee is Unsafe and the render's Stack policy
// allows it; it is a snapshot of the host object map, never a live
// reference.
type CallEnv struct {
	UnsafeObjects map[string]interface{}
}

// CallFunc invokes a non-mutating function, method or operator.
type CallFunc func(env CallEnv, args []leaf.Data) (leaf.Data, error)

// MutatingCallFunc invokes a mutating method. It returns the updated
// receiver value (nil meaning "no mutation") and the call's return
// value.
type MutatingCallFunc func(env CallEnv, receiver leaf.Data, args []leaf.Data) (updated *leaf.Data, result leaf.Data, err error)

// Kind classifies a registered entity.
type Kind int

const (
	KindFunction Kind = iota
	KindMethod
	KindBlock
	KindRawBlock
	KindTypeConstructor
	KindOperator
)

// Callee is one registered overload of a named entity.
type Callee struct {
	Kind      Kind
	Name      string
	Mutating  bool // methods only
	Signature Signature
	// Invariant reports whether repeated calls with equal arguments
	// yield equal results.
	Invariant bool
	// Unsafe marks an entity that requires the host's unsafe object map
	// to be injected before invocation.
	Unsafe bool

	Call         CallFunc
	MutatingCall MutatingCallFunc
}

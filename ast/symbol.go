// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import (
	"github.com/oprisk/leaf-kit"
	"github.com/oprisk/leaf-kit/entities"
)

// Policy is the context policy record carried by a Stack: whether a
// missing variable propagates or decays to nil, and the object-mode
// flags governing unsafe entity invocation.
type Policy struct {
	// MissingVariableThrows selects the soft-error policy: true
	// propagates the first errored sub-result; false decays errors
	// (other than ones originating at the current node) to void-nil.
	MissingVariableThrows bool
	// Unsafe gates whether unsafe entities receive the host's unsafe
	// object map for this render; when it is false they are still
	// invoked, with a nil map.
	Unsafe bool
	// Contextualized reports whether host objects are resolved relative
	// to a per-render context rather than shared globally.
	Contextualized bool
}

// Stack is the lookup surface passed through resolve and evaluate. It is
// implemented by leaf/scope.Stack; this package depends only on the
// interface, never on the concrete implementation, to avoid an import
// cycle (leaf/scope depends on leaf/ast, not the reverse).
type Stack interface {
	// Match resolves v against the scoped databases of named values. A
	// missing variable yields an errored Data of kind
	// leaf.ErrMissingVariable; whether that error propagates or decays to
	// nil is governed by Policy().MissingVariableThrows, applied by the
	// caller (the Symbol implementations in this package), not by Match
	// itself.
	Match(v Variable) leaf.Data
	// Update applies d to v, as used by mutating methods. It returns an
	// error if v does not name an updatable cell (e.g. it is a literal).
	Update(v Variable, d leaf.Data) error
	// Policy returns the context policy record.
	Policy() Policy
	// UnsafeObjects returns the host-provided unsafe object map, or nil.
	// Implementations return a snapshot, never a live reference, so an
	// unsafe entity cannot alter what later invocations see.
	UnsafeObjects() map[string]interface{}
	// Registry returns the entity registry borrowed by this render.
	Registry() *entities.Registry
}

// Symbol is the uniform contract implemented by every AST node: a
// Parameter, an Expression, and a Tuple.
type Symbol interface {
	// Resolved reports whether the node is structurally complete: every
	// overload is bound and every subtree is resolved.
	Resolved() bool
	// Invariant reports whether the node's evaluation is independent of
	// external time/state.
	Invariant() bool
	// Symbols returns the set of Variable keys that must be bound before
	// full evaluation.
	Symbols() []Variable
}

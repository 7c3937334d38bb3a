// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import "github.com/oprisk/leaf-kit"

// ParameterKind discriminates the seven Parameter variants.
type ParameterKind int

const (
	KindValue ParameterKind = iota
	KindKeyword
	KindOperator
	KindVariable
	KindExpression
	KindTuple
	KindFunction
)

func (k ParameterKind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindKeyword:
		return "keyword"
	case KindOperator:
		return "operator"
	case KindVariable:
		return "variable"
	case KindExpression:
		return "expression"
	case KindTuple:
		return "tuple"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Parameter is the unit stored inside the AST: a discriminated container
// over {value, keyword, operator, variable, expression, tuple,
// function-call}. It satisfies Symbol, plus the structural queries the
// parser and renderer need to make decisions without forcing evaluation.
type Parameter interface {
	Symbol

	// ParamKind reports which of the seven variants this Parameter is.
	ParamKind() ParameterKind

	// IsLiteral reports whether this parameter is a value container whose
	// Data is invariant and not errored.
	IsLiteral() bool

	// IsValued reports whether this parameter may produce a value at
	// evaluation time.
	IsValued() bool

	// BaseType returns a statically-known stored type, when provable from
	// structure, and true; otherwise KindVoid and false.
	BaseType() (leaf.Kind, bool)

	// IsCollection reports whether this parameter must, must not, or
	// (Unknown) merely may evaluate to a collection.
	IsCollection() Tri

	// UnderestimatedSize is a cheap upper-bound hint used by a renderer
	// for output preallocation.
	UnderestimatedSize() int

	// Resolve returns a new parameter of the same kind, never weaker.
	Resolve(stack Stack) Parameter

	// Evaluate is the terminal reduction to a concrete Data.
	Evaluate(stack Stack) leaf.Data

	// String renders a short debugging form.
	String() string
}

// applySoftErrorPolicy applies the soft-error policy to a single
// sub-result d inherited from a subterm or from the lookup surface:
// under throwing policy the error propagates, otherwise it decays to
// the void-nil literal. Errors a node manufactures itself (an undefined
// define() reference, an overload failure) are returned directly and
// never pass through this helper, so they always propagate.
func applySoftErrorPolicy(stack Stack, d leaf.Data) leaf.Data {
	if !d.Errored() {
		return d
	}
	if stack.Policy().MissingVariableThrows {
		return d
	}
	return leaf.TrueNil()
}

// foldIfReady collapses an expression, tuple or function-call node that
// has become resolved and invariant to its evaluated literal value. Value, keyword, operator and
// variable nodes are exempt and are never passed through this helper
// (each returns itself, or something narrower, directly from Resolve).
// A node that errors or is not otherwise valued is returned unchanged.
func foldIfReady(p Parameter, stack Stack) Parameter {
	if !p.IsValued() || !p.Resolved() || !p.Invariant() {
		return p
	}
	d := p.Evaluate(stack)
	if d.Errored() {
		return p
	}
	return NewValueParam(d)
}

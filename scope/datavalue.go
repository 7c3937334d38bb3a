// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scope implements the Context/DataValue/ContextPublisher
// machinery and the concrete symbol stack that backs a render: scoped
// databases of named values, literal-flattening on scope lock, and the
// lookup surface the ast package's Stack interface requires.
package scope

import "github.com/oprisk/leaf-kit"

// DataGenerator produces the Data backing a variable cell. It is either
// immediate (already a Data) or lazy (invoked on demand).
type DataGenerator struct {
	isImmediate bool
	immediate   leaf.Data
	producer    func() leaf.Data
}

// Immediate wraps an already-known Data as a generator.
func Immediate(d leaf.Data) DataGenerator {
	return DataGenerator{isImmediate: true, immediate: d}
}

// Lazy wraps a deferred producer as a generator.
func Lazy(producer func() leaf.Data) DataGenerator {
	return DataGenerator{producer: producer}
}

func (g DataGenerator) produce() leaf.Data {
	if g.isImmediate {
		return g.immediate
	}
	return g.producer()
}

// cellKind discriminates the two DataValue shapes.
type cellKind int

const (
	cellLiteral cellKind = iota
	cellVariable
)

// DataValue is a context cell: either a fixed literal (which must never
// be downgraded to a generator-backed cell) or a generator-backed
// variable with an optional memoized refresh.
type DataValue struct {
	kind      cellKind
	literal   leaf.Data
	generator DataGenerator
	cached    *leaf.Data
}

// NewLiteralValue builds a literal cell.
func NewLiteralValue(d leaf.Data) *DataValue {
	return &DataValue{kind: cellLiteral, literal: d}
}

// NewVariableValue builds a generator-backed cell, uncached until the
// first Refresh or Evaluate.
func NewVariableValue(gen DataGenerator) *DataValue {
	return &DataValue{kind: cellVariable, generator: gen}
}

// IsLiteral reports whether dv is a fixed literal cell.
func (dv *DataValue) IsLiteral() bool { return dv.kind == cellLiteral }

// Cached reports whether dv is literal-non-lazy or variable-with-some-
// cache.
func (dv *DataValue) Cached() bool {
	if dv.kind == cellLiteral {
		return !dv.literal.IsLazy()
	}
	return dv.cached != nil
}

// Evaluate returns dv's current value, refreshing a variable cell that
// has never been cached.
func (dv *DataValue) Evaluate() leaf.Data {
	if dv.kind == cellLiteral {
		return dv.literal.Evaluate()
	}
	if dv.cached != nil {
		return *dv.cached
	}
	return dv.Refresh()
}

// Refresh re-invokes the generator and caches the result. Refreshing a
// literal cell is a no-op that returns the literal's value, since a
// literal carries no generator to re-invoke.
func (dv *DataValue) Refresh() leaf.Data {
	if dv.kind == cellLiteral {
		return dv.literal.Evaluate()
	}
	d := dv.generator.produce().Evaluate()
	dv.cached = &d
	return d
}

// Uncache drops the memoized Data, retaining the generator. It is a
// no-op on a literal cell.
func (dv *DataValue) Uncache() {
	if dv.kind == cellVariable {
		dv.cached = nil
	}
}

// Flatten forces dv to a literal, discarding generator identity. Once
// flattened a cell behaves as if constructed by NewLiteralValue.
func (dv *DataValue) Flatten() {
	d := dv.Evaluate()
	dv.kind = cellLiteral
	dv.literal = d
	dv.generator = DataGenerator{}
	dv.cached = nil
}

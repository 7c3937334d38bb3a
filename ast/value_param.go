// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import "github.com/oprisk/leaf-kit"

// valueParam is a literal or previously-folded value.
type valueParam struct {
	d leaf.Data
}

// NewValueParam builds a value parameter. resolved is always true;
// invariant follows d's own invariance (lazy values defer to their
// producer's declared invariance).
func NewValueParam(d leaf.Data) Parameter {
	return &valueParam{d: d}
}

func (p *valueParam) ParamKind() ParameterKind { return KindValue }

func (p *valueParam) Resolved() bool { return true }

func (p *valueParam) Invariant() bool { return p.d.Invariant() }

func (p *valueParam) Symbols() []Variable { return nil }

func (p *valueParam) IsLiteral() bool {
	return p.Invariant() && !p.d.Errored()
}

func (p *valueParam) IsValued() bool { return true }

func (p *valueParam) BaseType() (leaf.Kind, bool) {
	if p.d.Kind() == leaf.KindLazy {
		return leaf.KindVoid, false
	}
	return p.d.Kind(), true
}

func (p *valueParam) IsCollection() Tri {
	switch p.d.Kind() {
	case leaf.KindArray, leaf.KindDictionary:
		return True
	case leaf.KindLazy:
		return Unknown
	default:
		return False
	}
}

func (p *valueParam) UnderestimatedSize() int { return 16 }

// Resolve returns p unchanged: values are already fully reduced.
func (p *valueParam) Resolve(Stack) Parameter { return p }

// Evaluate forces any lazy wrapper and returns the concrete Data.
func (p *valueParam) Evaluate(Stack) leaf.Data { return p.d.Evaluate() }

func (p *valueParam) String() string { return p.d.String() }

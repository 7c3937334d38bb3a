// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import "github.com/oprisk/leaf-kit"

// variableParam is a name to look up in the stack.
type variableParam struct {
	v Variable
}

// NewVariableParam builds a variable parameter.
func NewVariableParam(v Variable) Parameter {
	return &variableParam{v: v}
}

func (p *variableParam) ParamKind() ParameterKind { return KindVariable }

func (p *variableParam) Resolved() bool { return false }

func (p *variableParam) Invariant() bool { return true }

func (p *variableParam) Symbols() []Variable { return p.v.Symbols() }

func (p *variableParam) IsLiteral() bool { return false }

func (p *variableParam) IsValued() bool { return true }

func (p *variableParam) BaseType() (leaf.Kind, bool) { return leaf.KindVoid, false }

func (p *variableParam) IsCollection() Tri { return p.v.IsCollection() }

func (p *variableParam) UnderestimatedSize() int { return 16 }

// Resolve looks up the variable in stack. A non-errored result folds this
// parameter to a value; an errored one leaves the variable in place, on
// the chance it succeeds on a later resolve pass.
func (p *variableParam) Resolve(stack Stack) Parameter {
	d := stack.Match(p.v)
	if d.Errored() {
		return p
	}
	return NewValueParam(d)
}

// Evaluate looks up the variable and applies the soft-error policy: a
// stack miss is a sub-result from the lookup surface, not an error
// originating at this node, so under non-throwing policy it decays to
// the void-nil literal.
func (p *variableParam) Evaluate(stack Stack) leaf.Data {
	d := stack.Match(p.v)
	return applySoftErrorPolicy(stack, d)
}

func (p *variableParam) String() string { return p.v.Short() }

// Variable returns the wrapped Variable.
func (p *variableParam) Variable() Variable { return p.v }

// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import "github.com/oprisk/leaf-kit"

// operatorParam is a parser-visible operator token, evaluable only inside
// an Expression.
type operatorParam struct {
	op OperatorType
}

// NewOperatorParam builds an operator parameter. Constructing OpSubOpen
// is legal (the parser needs to hold it transiently) but such a
// parameter must never be reachable from a finished AST.
func NewOperatorParam(op OperatorType) Parameter {
	return &operatorParam{op: op}
}

func (p *operatorParam) ParamKind() ParameterKind { return KindOperator }

func (p *operatorParam) Resolved() bool { return p.op != OpSubOpen }

func (p *operatorParam) Invariant() bool { return true }

func (p *operatorParam) Symbols() []Variable { return nil }

func (p *operatorParam) IsLiteral() bool { return false }

func (p *operatorParam) IsValued() bool { return false }

func (p *operatorParam) BaseType() (leaf.Kind, bool) { return leaf.KindVoid, false }

func (p *operatorParam) IsCollection() Tri { return False }

func (p *operatorParam) UnderestimatedSize() int { return 0 }

// Resolve returns p unchanged.
func (p *operatorParam) Resolve(Stack) Parameter { return p }

// Evaluate always fails: an operator parameter has no value outside an
// Expression. Reaching this point is a defect.
func (p *operatorParam) Evaluate(Stack) leaf.Data {
	return leaf.Erred(leaf.NewError(leaf.ErrInternalInvariant, "bare operator parameter reached evaluation"))
}

func (p *operatorParam) String() string { return p.op.String() }

// Operator returns the wrapped operator type.
func (p *operatorParam) Operator() OperatorType { return p.op }

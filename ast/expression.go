// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import (
	"fmt"

	"github.com/oprisk/leaf-kit"
	"github.com/oprisk/leaf-kit/entities"
)

// ExpressionForm distinguishes the shapes an Expression may take. Every
// form is 2-operand or 3-operand; there are no unary expression forms in
// this core (unary negation/"not" are ordinary function calls, outside
// core scope).
type ExpressionForm int

const (
	// FormBinary is an arithmetic, comparison or logical 2-operand form.
	FormBinary ExpressionForm = iota
	// FormSubscript is the 2-operand "a[b]" indexing form.
	FormSubscript
	// FormTernary is the 3-operand "cond ? a : b" form.
	FormTernary
	// FormCustom is a host-extended operator form resolved dynamically
	// through the entities registry, like a function call.
	FormCustom
)

// expressionParam is a constrained 2-3 operand expression tree.
type expressionParam struct {
	form       ExpressionForm
	op         OperatorType
	customName string
	operands   []Parameter

	resolved      bool
	invariant     bool
	symbols       []Variable
	baseType      leaf.Kind
	baseTypeKnown bool
}

// NewExpression builds an expression parameter. It fails if the operand
// count does not match the form (2 for binary/subscript, 3 for ternary).
// FormCustom is rejected here; custom expressions are built by
// NewCustomExpression.
func NewExpression(form ExpressionForm, op OperatorType, operands ...Parameter) (Parameter, error) {
	switch form {
	case FormBinary:
		if len(operands) != 2 {
			return nil, fmt.Errorf("leaf/ast: binary expression requires 2 operands, got %d", len(operands))
		}
		if op == OpSubOpen {
			return nil, fmt.Errorf("leaf/ast: open-subscript operator cannot appear in a finished expression")
		}
	case FormSubscript:
		if len(operands) != 2 {
			return nil, fmt.Errorf("leaf/ast: subscript expression requires 2 operands, got %d", len(operands))
		}
		op = OpSubscript
	case FormTernary:
		if len(operands) != 3 {
			return nil, fmt.Errorf("leaf/ast: ternary expression requires 3 operands, got %d", len(operands))
		}
		op = OpTernary
	default:
		return nil, fmt.Errorf("leaf/ast: unknown expression form %d", form)
	}
	return newExpressionParam(form, op, "", operands), nil
}

// NewCustomExpression builds a custom-form expression resolved by name
// through the entities registry's operator table.
func NewCustomExpression(name string, operands ...Parameter) (Parameter, error) {
	if len(operands) != 2 && len(operands) != 3 {
		return nil, fmt.Errorf("leaf/ast: custom expression requires 2 or 3 operands, got %d", len(operands))
	}
	return newExpressionParam(FormCustom, OpSubOpen, name, operands), nil
}

func newExpressionParam(form ExpressionForm, op OperatorType, name string, operands []Parameter) *expressionParam {
	e := &expressionParam{form: form, op: op, customName: name, operands: operands}
	e.recache()
	return e
}

// recache derives resolved, invariant, symbols and baseType from the
// current operands.
func (e *expressionParam) recache() {
	e.resolved = true
	e.invariant = true
	e.symbols = nil
	for _, o := range e.operands {
		if !o.Resolved() {
			e.resolved = false
		}
		if !o.Invariant() {
			e.invariant = false
		}
		e.symbols = append(e.symbols, o.Symbols()...)
	}
	e.baseType, e.baseTypeKnown = e.computeBaseType()
}

func (e *expressionParam) computeBaseType() (leaf.Kind, bool) {
	switch e.form {
	case FormBinary:
		switch e.op {
		case OpEq, OpNotEq, OpLess, OpLessEq, OpGreater, OpGreaterEq, OpAnd, OpOr, OpNot:
			return leaf.KindBool, true
		default:
			t1, ok1 := e.operands[0].BaseType()
			t2, ok2 := e.operands[1].BaseType()
			if ok1 && ok2 && t1 == t2 {
				return t1, true
			}
			return leaf.KindVoid, false
		}
	case FormTernary:
		t1, ok1 := e.operands[1].BaseType()
		t2, ok2 := e.operands[2].BaseType()
		if ok1 && ok2 && t1 == t2 {
			return t1, true
		}
		return leaf.KindVoid, false
	default: // subscript, custom
		return leaf.KindVoid, false
	}
}

func (e *expressionParam) ParamKind() ParameterKind { return KindExpression }

func (e *expressionParam) Resolved() bool { return e.resolved }

func (e *expressionParam) Invariant() bool { return e.invariant }

func (e *expressionParam) Symbols() []Variable { return e.symbols }

func (e *expressionParam) IsLiteral() bool { return false }

func (e *expressionParam) IsValued() bool { return e.form != FormCustom }

func (e *expressionParam) BaseType() (leaf.Kind, bool) { return e.baseType, e.baseTypeKnown }

func (e *expressionParam) IsCollection() Tri {
	if !e.baseTypeKnown {
		return Unknown
	}
	return FromBool(e.baseType == leaf.KindArray || e.baseType == leaf.KindDictionary)
}

// UnderestimatedSize has no per-operator heuristic; every expression
// returns the same fixed estimate of 8.
func (e *expressionParam) UnderestimatedSize() int { return 8 }

// Resolve resolves each operand and rebuilds the expression, then folds
// it to a value if it became resolved, invariant and valued.
func (e *expressionParam) Resolve(stack Stack) Parameter {
	resolvedOperands := make([]Parameter, len(e.operands))
	for i, o := range e.operands {
		resolvedOperands[i] = o.Resolve(stack)
	}
	rebuilt := newExpressionParam(e.form, e.op, e.customName, resolvedOperands)
	return foldIfReady(rebuilt, stack)
}

// Evaluate delegates operator semantics to the expression component: the
// built-in forms are evaluated directly; the custom form is dispatched
// through the entities registry, the same overload path a function call
// uses.
func (e *expressionParam) Evaluate(stack Stack) leaf.Data {
	switch e.form {
	case FormSubscript:
		return e.evalSubscript(stack)
	case FormTernary:
		return e.evalTernary(stack)
	case FormCustom:
		return e.evalCustom(stack)
	default:
		return e.evalBinary(stack)
	}
}

func (e *expressionParam) evalOperand(stack Stack, i int) leaf.Data {
	d := e.operands[i].Evaluate(stack)
	return applySoftErrorPolicy(stack, d)
}

func (e *expressionParam) evalTernary(stack Stack) leaf.Data {
	cond := e.evalOperand(stack, 0)
	if cond.Errored() {
		return cond
	}
	if cond.Evaluate().BoolValue() {
		return e.evalOperand(stack, 1)
	}
	return e.evalOperand(stack, 2)
}

func (e *expressionParam) evalSubscript(stack Stack) leaf.Data {
	base := e.evalOperand(stack, 0)
	if base.Errored() {
		return base
	}
	index := e.evalOperand(stack, 1)
	if index.Errored() {
		return index
	}
	base, index = base.Evaluate(), index.Evaluate()
	switch base.Kind() {
	case leaf.KindArray:
		items := base.ArrayValue()
		i := index.IntValue()
		if i < 0 || i >= int64(len(items)) {
			return leaf.Erred(leaf.NewError(leaf.ErrTypeMismatch, "index out of range"))
		}
		return items[i]
	case leaf.KindDictionary:
		v, ok := base.DictionaryValue()[index.StringValue()]
		if !ok {
			return leaf.TrueNil()
		}
		return v
	default:
		return leaf.Erred(leaf.NewError(leaf.ErrTypeMismatch, "cannot subscript a "+base.Kind().String()+" value"))
	}
}

func (e *expressionParam) evalBinary(stack Stack) leaf.Data {
	a := e.evalOperand(stack, 0)
	if a.Errored() {
		return a
	}
	b := e.evalOperand(stack, 1)
	if b.Errored() {
		return b
	}
	a, b = a.Evaluate(), b.Evaluate()
	switch e.op {
	case OpAnd:
		return leaf.Bool(a.BoolValue() && b.BoolValue())
	case OpOr:
		return leaf.Bool(a.BoolValue() || b.BoolValue())
	case OpEq:
		return leaf.Bool(a.Equal(b))
	case OpNotEq:
		return leaf.Bool(!a.Equal(b))
	}
	if af, bf, ok := numericOperands(a, b); ok {
		bothInt := a.Kind() == leaf.KindInt && b.Kind() == leaf.KindInt
		switch e.op {
		case OpLess:
			return leaf.Bool(af < bf)
		case OpLessEq:
			return leaf.Bool(af <= bf)
		case OpGreater:
			return leaf.Bool(af > bf)
		case OpGreaterEq:
			return leaf.Bool(af >= bf)
		case OpAdd:
			if bothInt {
				return leaf.Int(a.IntValue() + b.IntValue())
			}
			return leaf.Float(af + bf)
		case OpSub:
			if bothInt {
				return leaf.Int(a.IntValue() - b.IntValue())
			}
			return leaf.Float(af - bf)
		case OpMul:
			if bothInt {
				return leaf.Int(a.IntValue() * b.IntValue())
			}
			return leaf.Float(af * bf)
		case OpDiv:
			if bf == 0 {
				return leaf.Erred(leaf.NewError(leaf.ErrTypeMismatch, "division by zero"))
			}
			return leaf.Float(af / bf)
		case OpMod:
			if int64(bf) == 0 {
				return leaf.Erred(leaf.NewError(leaf.ErrTypeMismatch, "division by zero"))
			}
			return leaf.Int(int64(af) % int64(bf))
		}
	}
	if a.Kind() == leaf.KindString && b.Kind() == leaf.KindString && e.op == OpAdd {
		return leaf.String(a.StringValue() + b.StringValue())
	}
	return leaf.Erred(leaf.NewError(leaf.ErrTypeMismatch,
		fmt.Sprintf("invalid operation: %s %s %s", a.Kind(), e.op, b.Kind())))
}

// numericOperands reports whether a and b are both numeric (int or
// float), returning them widened to float64 for uniform arithmetic; the
// caller narrows back to int for the modulo operator.
func numericOperands(a, b leaf.Data) (float64, float64, bool) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	return af, bf, aok && bok
}

func asFloat(d leaf.Data) (float64, bool) {
	switch d.Kind() {
	case leaf.KindInt:
		return float64(d.IntValue()), true
	case leaf.KindFloat:
		return d.FloatValue(), true
	default:
		return 0, false
	}
}

func (e *expressionParam) evalCustom(stack Stack) leaf.Data {
	args := make([]leaf.Data, len(e.operands))
	for i := range e.operands {
		d := e.evalOperand(stack, i)
		if d.Errored() {
			return d
		}
		args[i] = d.Evaluate()
	}
	infos := make([]entities.ArgInfo, len(args))
	for i, a := range args {
		val := a
		infos[i] = entities.ArgInfo{Literal: &val, BaseType: a.Kind(), BaseTypeKnown: true}
	}
	candidates, err := stack.Registry().ValidateOperator(e.customName, infos)
	if err != nil {
		return leaf.Erred(leaf.NewError(leaf.ErrOverloadNone, err.Error()))
	}
	if len(candidates) > 1 {
		return leaf.Erred(leaf.NewError(leaf.ErrOverloadAmbiguous, "dynamic operator had too many matches at evaluation"))
	}
	result, callErr := candidates[0].Call(entities.CallEnv{}, args)
	if callErr != nil {
		return leaf.Erred(leaf.NewError(leaf.ErrTypeMismatch, callErr.Error()))
	}
	return result
}

func (e *expressionParam) String() string {
	switch e.form {
	case FormTernary:
		return fmt.Sprintf("(%s ? %s : %s)", e.operands[0], e.operands[1], e.operands[2])
	case FormSubscript:
		return fmt.Sprintf("%s[%s]", e.operands[0], e.operands[1])
	case FormCustom:
		return fmt.Sprintf("%s(%s, %s...)", e.customName, e.operands[0], e.operands[1:])
	default:
		return fmt.Sprintf("(%s %s %s)", e.operands[0], e.op, e.operands[1])
	}
}

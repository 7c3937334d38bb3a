// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import (
	"fmt"
	"strings"

	"github.com/oprisk/leaf-kit"
	"github.com/oprisk/leaf-kit/entities"
)

// MethodSlot is the function parameter's tri-state method discriminator.
type MethodSlot int

const (
	// MethodAbsent marks an ordinary function call.
	MethodAbsent MethodSlot = iota
	// MethodNonMutating marks a call on a receiver that is not updated.
	MethodNonMutating
	// MethodMutating marks a call whose result is applied back to the
	// receiver variable via the stack.
	MethodMutating
)

// functionParam is a call site: bound to a single resolved callee,
// dynamic with multiple candidates pending evaluation-time
// disambiguation, or a nullary reference to a named block definition
// (the built-in Evaluate form).
type functionParam struct {
	name   string
	args   []Parameter
	labels []string // nil, or len(labels) == len(args) with "" for positional slots

	method      MethodSlot
	receiver    Parameter
	receiverVar Variable

	isDefineRef bool
	defineName  string
	defaultVal  Parameter // only meaningful when isDefineRef

	pos    leaf.Position
	hasPos bool

	callee     *entities.Callee
	candidates []*entities.Callee // >1 entries means dynamic and pending

	resolved  bool
	invariant bool
	symbols   []Variable
}

// NewFunctionCall builds an unbound function-call parameter. Binding is
// attempted the first time Resolve queries the registry.
func NewFunctionCall(name string, args []Parameter, labels []string, pos leaf.Position) Parameter {
	f := &functionParam{name: name, args: args, labels: labels, pos: pos, hasPos: true}
	f.recache()
	return f
}

// NewMethodCall builds an unbound non-mutating method call on receiver.
func NewMethodCall(name string, receiver Parameter, args []Parameter, labels []string, pos leaf.Position) Parameter {
	f := &functionParam{name: name, args: args, labels: labels, method: MethodNonMutating, receiver: receiver, pos: pos, hasPos: true}
	f.recache()
	return f
}

// NewMutatingMethodCall builds an unbound mutating method call on the
// variable v, whose current value is the receiver.
func NewMutatingMethodCall(name string, v Variable, args []Parameter, labels []string, pos leaf.Position) Parameter {
	f := &functionParam{
		name: name, args: args, labels: labels,
		method: MethodMutating, receiver: NewVariableParam(v), receiverVar: v,
		pos: pos, hasPos: true,
	}
	f.recache()
	return f
}

// NewDefineRef builds the built-in reference-to-named-block-definition
// form: define(name), with an optional default parameter evaluated when
// the definition is missing and no literal value was bound in its place.
func NewDefineRef(name string, defaultVal Parameter) Parameter {
	f := &functionParam{isDefineRef: true, defineName: name, defaultVal: defaultVal}
	f.recache()
	return f
}

func (f *functionParam) recache() {
	if f.isDefineRef {
		f.resolved = f.defaultVal == nil || f.defaultVal.Resolved()
		f.invariant = f.defaultVal == nil || f.defaultVal.Invariant()
		f.symbols = append([]Variable{Define(f.defineName)}, defaultSymbols(f.defaultVal)...)
		return
	}
	f.resolved = f.callee != nil
	f.invariant = f.callee != nil && f.callee.Invariant
	f.symbols = nil
	if f.receiver != nil {
		if !f.receiver.Resolved() {
			f.resolved = false
		}
		if !f.receiver.Invariant() {
			f.invariant = false
		}
		f.symbols = append(f.symbols, f.receiver.Symbols()...)
	}
	for _, a := range f.args {
		if !a.Resolved() {
			f.resolved = false
		}
		if !a.Invariant() {
			f.invariant = false
		}
		f.symbols = append(f.symbols, a.Symbols()...)
	}
}

func defaultSymbols(p Parameter) []Variable {
	if p == nil {
		return nil
	}
	return p.Symbols()
}

func (f *functionParam) ParamKind() ParameterKind { return KindFunction }

func (f *functionParam) Resolved() bool { return f.resolved }

func (f *functionParam) Invariant() bool { return f.invariant }

func (f *functionParam) Symbols() []Variable { return f.symbols }

func (f *functionParam) IsLiteral() bool { return false }

func (f *functionParam) IsValued() bool { return true }

func (f *functionParam) BaseType() (leaf.Kind, bool) {
	if f.callee != nil && f.callee.Signature.ReturnKnown {
		return f.callee.Signature.ReturnType, true
	}
	return leaf.KindVoid, false
}

func (f *functionParam) IsCollection() Tri {
	t, ok := f.BaseType()
	if !ok {
		return Unknown
	}
	return FromBool(t == leaf.KindArray || t == leaf.KindDictionary)
}

func (f *functionParam) UnderestimatedSize() int { return 16 }

func (f *functionParam) argInfos() []entities.ArgInfo {
	infos := make([]entities.ArgInfo, len(f.args))
	for i, a := range f.args {
		label := ""
		if f.labels != nil {
			label = f.labels[i]
		}
		info := entities.ArgInfo{Label: label}
		if bt, ok := a.BaseType(); ok {
			info.BaseType, info.BaseTypeKnown = bt, true
		}
		if lp, ok := a.(*valueParam); ok {
			d := lp.d
			info.Literal = &d
		}
		infos[i] = info
	}
	return infos
}

func (f *functionParam) validate(stack Stack, infos []entities.ArgInfo) ([]*entities.Callee, error) {
	reg := stack.Registry()
	switch f.method {
	case MethodAbsent:
		return reg.ValidateFunction(f.name, infos)
	default:
		return reg.ValidateMethod(f.name, infos, f.method == MethodMutating)
	}
}

// Resolve resolves the receiver and every argument, then attempts
// binding against the entity registry: a single static match binds, a
// registry failure folds to an errored value, and an ambiguous match
// stays dynamic pending evaluation-time disambiguation.
func (f *functionParam) Resolve(stack Stack) Parameter {
	if f.isDefineRef {
		var resolvedDefault Parameter
		if f.defaultVal != nil {
			resolvedDefault = f.defaultVal.Resolve(stack)
		}
		rebuilt := &functionParam{isDefineRef: true, defineName: f.defineName, defaultVal: resolvedDefault}
		rebuilt.recache()
		return rebuilt
	}

	var resolvedReceiver Parameter
	if f.receiver != nil {
		resolvedReceiver = f.receiver.Resolve(stack)
	}
	resolvedArgs := make([]Parameter, len(f.args))
	for i, a := range f.args {
		resolvedArgs[i] = a.Resolve(stack)
	}

	rebuilt := &functionParam{
		name: f.name, args: resolvedArgs, labels: f.labels,
		method: f.method, receiver: resolvedReceiver, receiverVar: f.receiverVar,
		pos: f.pos, hasPos: f.hasPos,
		callee: f.callee, candidates: f.candidates,
	}

	if rebuilt.callee == nil {
		candidates, err := rebuilt.validate(stack, rebuilt.argInfos())
		if err != nil {
			return NewValueParam(leaf.Erred(f.diagnosticError(leaf.ErrOverloadNone, err.Error())))
		}
		if len(candidates) == 1 {
			rebuilt.callee = candidates[0]
			rebuilt.candidates = nil
		} else {
			rebuilt.candidates = candidates
		}
	}

	rebuilt.recache()
	return foldIfReady(rebuilt, stack)
}

func (f *functionParam) diagnosticError(kind leaf.ErrorKind, msg string) *leaf.DataError {
	if f.hasPos {
		return leaf.NewPositionedError(kind, f.name, msg, f.pos)
	}
	return leaf.NewError(kind, msg)
}

// Evaluate reduces the call to a concrete Data, special-casing the
// define() reference form.
func (f *functionParam) Evaluate(stack Stack) leaf.Data {
	if f.isDefineRef {
		return f.evalDefineRef(stack)
	}

	strict := stack.Policy().MissingVariableThrows

	var receiverVal leaf.Data
	if f.receiver != nil {
		receiverVal = applySoftErrorPolicy(stack, f.receiver.Evaluate(stack))
		if receiverVal.Errored() && strict {
			return receiverVal
		}
	}

	values := make([]leaf.Data, len(f.args))
	for i, a := range f.args {
		d := applySoftErrorPolicy(stack, a.Evaluate(stack))
		if d.Errored() {
			if strict {
				return d
			}
			d = leaf.TrueNil()
		}
		values[i] = d
	}

	callee := f.callee
	if callee == nil {
		infos := make([]entities.ArgInfo, len(values))
		for i, v := range values {
			label := ""
			if f.labels != nil {
				label = f.labels[i]
			}
			val := v
			infos[i] = entities.ArgInfo{Label: label, Literal: &val, BaseType: v.Kind(), BaseTypeKnown: true}
		}
		candidates, err := f.validate(stack, infos)
		if err != nil {
			return leaf.Erred(f.diagnosticError(leaf.ErrOverloadNone, err.Error()))
		}
		if len(candidates) > 1 {
			return leaf.Erred(f.diagnosticError(leaf.ErrOverloadAmbiguous, "dynamic call had too many matches at evaluation"))
		}
		callee = candidates[0]
	}

	for i, v := range values {
		label := ""
		if f.labels != nil {
			label = f.labels[i]
		}
		spec, ok := callee.Signature.ParamAt(i, label)
		if ok && !spec.Optional && v.IsVoid() {
			err := f.diagnosticError(leaf.ErrVoidArgument, argName(spec, i)+" returned void")
			if strict {
				return leaf.Erred(err)
			}
			values[i] = leaf.TrueNil()
		}
	}

	if !callee.Signature.Matches(argInfosFromValues(values, f.labels)) {
		return leaf.Erred(f.diagnosticError(leaf.ErrTypeMismatch,
			fmt.Sprintf("couldn't validate parameter types for %s(%s)", f.name, joinData(values))))
	}

	env := entities.CallEnv{}
	if callee.Unsafe {
		env.UnsafeObjects = stack.UnsafeObjects()
	}

	if f.method == MethodMutating {
		updated, result, err := callee.MutatingCall(env, receiverVal, values)
		if err != nil {
			return leaf.Erred(f.diagnosticError(leaf.ErrTypeMismatch, err.Error()))
		}
		if updated != nil {
			if uerr := stack.Update(f.receiverVar, *updated); uerr != nil {
				return leaf.Erred(f.diagnosticError(leaf.ErrInternalInvariant, uerr.Error()))
			}
		}
		return result
	}

	callArgs := values
	if f.receiver != nil {
		callArgs = append([]leaf.Data{receiverVal}, values...)
	}
	result, err := callee.Call(env, callArgs)
	if err != nil {
		return leaf.Erred(f.diagnosticError(leaf.ErrTypeMismatch, err.Error()))
	}
	return result
}

func (f *functionParam) evalDefineRef(stack Stack) leaf.Data {
	bound := stack.Match(Define(f.defineName))
	if !bound.Errored() {
		return bound.Evaluate()
	}
	if f.defaultVal != nil {
		return f.defaultVal.Evaluate(stack)
	}
	return leaf.Erred(leaf.NewPositionedError(leaf.ErrUndefinedEvaluate, "",
		f.defineName+" is undefined and has no default value", f.pos))
}

func argName(spec entities.ParamSpec, i int) string {
	if spec.Name != "" {
		return spec.Name
	}
	return fmt.Sprintf("arg%d", i)
}

func argInfosFromValues(values []leaf.Data, labels []string) []entities.ArgInfo {
	infos := make([]entities.ArgInfo, len(values))
	for i, v := range values {
		label := ""
		if labels != nil {
			label = labels[i]
		}
		val := v
		infos[i] = entities.ArgInfo{Label: label, Literal: &val, BaseType: v.Kind(), BaseTypeKnown: true}
	}
	return infos
}

func joinData(values []leaf.Data) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

func (f *functionParam) String() string {
	if f.isDefineRef {
		return "define(" + f.defineName + ")"
	}
	args := make([]string, len(f.args))
	for i, a := range f.args {
		if f.labels != nil && f.labels[i] != "" {
			args[i] = f.labels[i] + ": " + a.String()
		} else {
			args[i] = a.String()
		}
	}
	if f.receiver != nil {
		return fmt.Sprintf("%s.%s(%s)", f.receiver, f.name, strings.Join(args, ", "))
	}
	return fmt.Sprintf("%s(%s)", f.name, strings.Join(args, ", "))
}

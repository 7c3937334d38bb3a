// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package entities implements the global registry of functions, methods,
// blocks and operators queried by the AST during overload resolution.
package entities

import "github.com/oprisk/leaf-kit"

// ParamSpec describes one formal parameter of a Signature.
type ParamSpec struct {
	Name      string
	Type      leaf.Kind
	TypeKnown bool
	Optional  bool
}

// Signature is the formal shape of a callable entity.
type Signature struct {
	Params      []ParamSpec
	Variadic    bool
	ReturnType  leaf.Kind
	ReturnKnown bool
}

// ArgInfo is the static shape of one call-site argument, as seen at
// resolve time (before all arguments necessarily hold concrete values).
type ArgInfo struct {
	// Label is the argument's keyword, or "" for a positional argument.
	Label string
	// Literal is set when the argument parameter is already a literal
	// Data at resolve time.
	Literal *leaf.Data
	// BaseType is the argument's statically-known stored type, if any.
	BaseType leaf.Kind
	// BaseTypeKnown reports whether BaseType is meaningful.
	BaseTypeKnown bool
}

// accepts reports whether spec's declared type is compatible with arg's
// static shape. An unknown static type on either side is deferred to
// evaluation time and always accepted here.
func (spec ParamSpec) accepts(arg ArgInfo) bool {
	if !spec.TypeKnown || !arg.BaseTypeKnown {
		return true
	}
	return spec.Type == arg.BaseType
}

// arity reports whether n positional/labeled arguments satisfy sig's
// parameter count.
func (sig Signature) arity(n int) bool {
	required := 0
	for _, p := range sig.Params {
		if !p.Optional {
			required++
		}
	}
	if sig.Variadic {
		return n >= required
	}
	return n >= required && n <= len(sig.Params)
}

// matches reports whether args statically satisfy sig: arity, and every
// argument whose type is known is compatible with the corresponding
// parameter's known type. Labeled arguments are matched by name.
func (sig Signature) matches(args []ArgInfo) bool {
	if !sig.arity(len(args)) {
		return false
	}
	for i, a := range args {
		if a.Label != "" {
			spec, ok := sig.paramNamed(a.Label)
			if !ok || !spec.accepts(a) {
				return false
			}
			continue
		}
		if i >= len(sig.Params) {
			if !sig.Variadic {
				return false
			}
			continue
		}
		if !sig.Params[i].accepts(a) {
			return false
		}
	}
	return true
}

// Matches is the exported form of matches, usable by callers (the ast
// package) that need to re-check a bound callee's signature against
// concrete argument shapes at evaluation time.
func (sig Signature) Matches(args []ArgInfo) bool { return sig.matches(args) }

// ParamAt returns the formal parameter that the argument at position i
// (optionally named label) binds to, if the signature statically names
// one. A positional argument past the end of a variadic signature's
// declared parameters has no named spec and returns ok=false.
func (sig Signature) ParamAt(i int, label string) (ParamSpec, bool) {
	if label != "" {
		return sig.paramNamed(label)
	}
	if i < len(sig.Params) {
		return sig.Params[i], true
	}
	return ParamSpec{}, false
}

func (sig Signature) paramNamed(name string) (ParamSpec, bool) {
	for _, p := range sig.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}

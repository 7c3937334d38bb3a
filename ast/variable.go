// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import "strings"

// VariableForm distinguishes the two reserved variable shapes from an
// ordinary scoped lookup.
type VariableForm int

const (
	// FormNormal is an ordinary scope.base[.path...] lookup.
	FormNormal VariableForm = iota
	// FormSelf is the implicit current iteration target.
	FormSelf
	// FormDefine is a reference resolved against scoped block
	// definitions, e.g. define(name).
	FormDefine
)

// Segment is one step of a Variable's path: either a member access
// (".name") or a subscript ("[expr]"). Exactly one of Member or Subscript
// is set.
type Segment struct {
	Member    string
	Subscript Parameter // nil if this segment is a member access
}

// MemberSegment builds a member-access path segment.
func MemberSegment(name string) Segment { return Segment{Member: name} }

// SubscriptSegment builds a subscript path segment. index need not be a
// literal; it may be any resolved/resolvable Parameter.
func SubscriptSegment(index Parameter) Segment { return Segment{Subscript: index} }

// Variable is a path-structured key locating a value within a scoped
// Context: a scope name, a base identifier, and an ordered chain of
// member/subscript segments.
type Variable struct {
	Form  VariableForm
	Scope string
	Base  string
	Path  []Segment
}

// NewVariable builds an ordinary scope.base[.path...] variable.
func NewVariable(scope, base string, path ...Segment) Variable {
	return Variable{Form: FormNormal, Scope: scope, Base: base, Path: path}
}

// Self returns the reserved "self" variable: the implicit current
// iteration target.
func Self() Variable {
	return Variable{Form: FormSelf, Base: "self"}
}

// Define returns the reserved define(name) variable, resolved against
// scoped block definitions rather than an ordinary Context scope.
func Define(name string) Variable {
	return Variable{Form: FormDefine, Base: name}
}

// IsSelf reports whether v is the reserved self variable.
func (v Variable) IsSelf() bool { return v.Form == FormSelf }

// IsDefine reports whether v is a define(name) reference.
func (v Variable) IsDefine() bool { return v.Form == FormDefine }

// Symbols returns the prefix variables v transitively depends on: v
// itself, plus the symbols of any Parameter used as a subscript index
// along its path.
func (v Variable) Symbols() []Variable {
	out := []Variable{v}
	for _, seg := range v.Path {
		if seg.Subscript != nil {
			out = append(out, seg.Subscript.Symbols()...)
		}
	}
	return out
}

// IsCollection reports whether v's static shape forces it to be a
// collection. Ordinary variables carry no static type in this model, so
// this is always Unknown; self and define() references are opaque to the
// same degree.
func (v Variable) IsCollection() Tri { return Unknown }

// Short renders a compact dotted form, e.g. "scope.base.member[0]".
func (v Variable) Short() string {
	switch v.Form {
	case FormSelf:
		return "self"
	case FormDefine:
		return "define(" + v.Base + ")"
	}
	var b strings.Builder
	if v.Scope != "" {
		b.WriteString(v.Scope)
		b.WriteByte('.')
	}
	b.WriteString(v.Base)
	for _, seg := range v.Path {
		if seg.Subscript != nil {
			b.WriteByte('[')
			b.WriteString(seg.Subscript.String())
			b.WriteByte(']')
		} else {
			b.WriteByte('.')
			b.WriteString(seg.Member)
		}
	}
	return b.String()
}

// Description renders a verbose form suitable for diagnostics.
func (v Variable) Description() string {
	switch v.Form {
	case FormSelf:
		return "variable self"
	case FormDefine:
		return "block definition " + v.Base
	default:
		return "variable " + v.Short()
	}
}

// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import (
	"fmt"
	"strings"

	"github.com/oprisk/leaf-kit"
)

// tupleParam is an ordered, optionally labeled sequence of parameters. If
// labels are present it represents a dictionary literal; otherwise an
// array literal or an argument list.
type tupleParam struct {
	members []Parameter
	labels  []string // nil for unlabeled; else len(labels) == len(members)

	resolved      bool
	invariant     bool
	evaluable     bool
	symbols       []Variable
	baseType      leaf.Kind
	baseTypeKnown bool
}

// NewTuple builds a tuple parameter, performing the single-unlabeled-
// member collapse: a tuple with exactly one unlabeled member
// collapses to that member (transitively, since the member may itself be
// a once-collapsed tuple); an empty unlabeled tuple collapses to the
// void-nil literal. labels must be nil (unlabeled) or the same length as
// members with every entry non-empty (labeled, dictionary-shaped); any
// other shape is a construction error.
func NewTuple(members []Parameter, labels []string) (Parameter, error) {
	if labels != nil {
		if len(labels) != len(members) {
			return nil, fmt.Errorf("leaf/ast: tuple has %d members but %d labels", len(members), len(labels))
		}
		for _, l := range labels {
			if l == "" {
				return nil, fmt.Errorf("leaf/ast: tuple with labels must label every member")
			}
		}
	}
	if labels == nil {
		switch len(members) {
		case 0:
			return NewValueParam(leaf.TrueNil()), nil
		case 1:
			return members[0], nil
		}
	}
	t := &tupleParam{members: members, labels: labels}
	t.recache()
	return t, nil
}

func (t *tupleParam) recache() {
	t.resolved = true
	t.invariant = true
	t.evaluable = true
	t.symbols = nil
	var uniform leaf.Kind
	uniformKnown := true
	first := true
	for _, m := range t.members {
		if !m.Resolved() {
			t.resolved = false
		}
		if !m.Invariant() {
			t.invariant = false
		}
		if !m.IsValued() {
			t.evaluable = false
		}
		t.symbols = append(t.symbols, m.Symbols()...)
		bt, known := m.BaseType()
		if !known {
			uniformKnown = false
			continue
		}
		if first {
			uniform = bt
			first = false
		} else if bt != uniform {
			uniformKnown = false
		}
	}
	t.baseType, t.baseTypeKnown = uniform, uniformKnown && !first
}

// IsDictionary reports whether t represents a dictionary literal.
func (t *tupleParam) IsDictionary() bool { return t.labels != nil }

func (t *tupleParam) ParamKind() ParameterKind { return KindTuple }

func (t *tupleParam) Resolved() bool { return t.resolved }

func (t *tupleParam) Invariant() bool { return t.invariant }

func (t *tupleParam) Symbols() []Variable { return t.symbols }

func (t *tupleParam) IsLiteral() bool { return false }

func (t *tupleParam) IsValued() bool { return t.evaluable }

func (t *tupleParam) BaseType() (leaf.Kind, bool) { return t.baseType, t.baseTypeKnown }

func (t *tupleParam) IsCollection() Tri {
	if t.evaluable {
		return True
	}
	return Unknown
}

func (t *tupleParam) UnderestimatedSize() int { return 0 }

// Resolve resolves every member and rebuilds the tuple, then folds it to
// a value if it became resolved, invariant and evaluable. The member
// count is never reduced here: collapse only happens at construction.
func (t *tupleParam) Resolve(stack Stack) Parameter {
	resolvedMembers := make([]Parameter, len(t.members))
	for i, m := range t.members {
		resolvedMembers[i] = m.Resolve(stack)
	}
	rebuilt := &tupleParam{members: resolvedMembers, labels: t.labels}
	rebuilt.recache()
	return foldIfReady(rebuilt, stack)
}

// Evaluate evaluates every member and produces an array or a dictionary
// Data, per the tuple's shape. Reaching this on a non-evaluable tuple is
// a defect.
func (t *tupleParam) Evaluate(stack Stack) leaf.Data {
	if !t.evaluable {
		return leaf.Erred(leaf.NewError(leaf.ErrInternalInvariant, "non-evaluable tuple reached evaluation"))
	}
	if t.IsDictionary() {
		dict := make(map[string]leaf.Data, len(t.members))
		for i, m := range t.members {
			d := applySoftErrorPolicy(stack, m.Evaluate(stack))
			if d.Errored() {
				return d
			}
			dict[t.labels[i]] = d
		}
		return leaf.Dictionary(dict)
	}
	arr := make([]leaf.Data, len(t.members))
	for i, m := range t.members {
		d := applySoftErrorPolicy(stack, m.Evaluate(stack))
		if d.Errored() {
			return d
		}
		arr[i] = d
	}
	return leaf.Array(arr)
}

func (t *tupleParam) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, m := range t.members {
		if i > 0 {
			b.WriteString(", ")
		}
		if t.labels != nil {
			b.WriteString(t.labels[i])
			b.WriteString(": ")
		}
		b.WriteString(m.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import (
	"testing"

	"github.com/oprisk/leaf-kit"
)

// Any tuple with exactly one unlabeled member, arbitrarily nested,
// collapses through the factory to that member.
func Test_Tuple_SingleMemberCollapse(t *testing.T) {
	inner := NewValueParam(leaf.Int(42))
	one, err := NewTuple([]Parameter{inner}, nil)
	if err != nil {
		t.Fatalf("NewTuple: %v", err)
	}
	if one != inner {
		t.Fatalf("single-member tuple should collapse to the member itself")
	}

	nested, err := NewTuple([]Parameter{one}, nil)
	if err != nil {
		t.Fatalf("NewTuple: %v", err)
	}
	if nested != inner {
		t.Fatalf("nested single-member tuple should collapse transitively to the original member")
	}
}

func Test_Tuple_EmptyCollapsesToVoidNil(t *testing.T) {
	empty, err := NewTuple(nil, nil)
	if err != nil {
		t.Fatalf("NewTuple: %v", err)
	}
	v, ok := empty.(*valueParam)
	if !ok {
		t.Fatalf("empty tuple should collapse to a valueParam, got %T", empty)
	}
	if !v.d.IsVoid() {
		t.Errorf("empty tuple should collapse to the void-nil literal")
	}
}

func Test_Tuple_LabelMismatchRejected(t *testing.T) {
	members := []Parameter{NewValueParam(leaf.Int(1)), NewValueParam(leaf.Int(2))}
	if _, err := NewTuple(members, []string{"a"}); err == nil {
		t.Error("mismatched label count should be rejected")
	}
	if _, err := NewTuple(members, []string{"a", ""}); err == nil {
		t.Error("partially labeled tuple should be rejected")
	}
}

func Test_Tuple_ArrayLiteralEvaluation(t *testing.T) {
	members := []Parameter{NewValueParam(leaf.Int(1)), NewValueParam(leaf.Int(2)), NewValueParam(leaf.Int(3))}
	tup, err := NewTuple(members, nil)
	if err != nil {
		t.Fatalf("NewTuple: %v", err)
	}
	got := tup.Evaluate(newFakeStack(nil))
	if got.Kind() != leaf.KindArray {
		t.Fatalf("Kind() = %v, want KindArray", got.Kind())
	}
	if len(got.ArrayValue()) != 3 {
		t.Errorf("len(ArrayValue()) = %d, want 3", len(got.ArrayValue()))
	}
}

func Test_Tuple_DictionaryLiteralEvaluation(t *testing.T) {
	members := []Parameter{NewValueParam(leaf.String("a")), NewValueParam(leaf.String("b"))}
	labels := []string{"first", "second"}
	tup, err := NewTuple(members, labels)
	if err != nil {
		t.Fatalf("NewTuple: %v", err)
	}
	if !tup.(*tupleParam).IsDictionary() {
		t.Fatal("labeled tuple should report IsDictionary() true")
	}
	got := tup.Evaluate(newFakeStack(nil))
	if got.Kind() != leaf.KindDictionary {
		t.Fatalf("Kind() = %v, want KindDictionary", got.Kind())
	}
	if got.DictionaryValue()["first"].StringValue() != "a" {
		t.Errorf("dictionary[\"first\"] = %q, want %q", got.DictionaryValue()["first"].StringValue(), "a")
	}
}

func Test_Tuple_IsEvaluable_FalseWhenMemberNotValued(t *testing.T) {
	op := NewOperatorParam(OpAdd)
	members := []Parameter{NewValueParam(leaf.Int(1)), op}
	tup, err := NewTuple(members, nil)
	if err != nil {
		t.Fatalf("NewTuple: %v", err)
	}
	if tup.IsValued() {
		t.Error("a tuple containing a non-valued operator member should not be evaluable")
	}
}

func Test_Tuple_BaseType_UniformMembers(t *testing.T) {
	members := []Parameter{NewValueParam(leaf.Int(1)), NewValueParam(leaf.Int(2))}
	tup, err := NewTuple(members, nil)
	if err != nil {
		t.Fatalf("NewTuple: %v", err)
	}
	kind, ok := tup.BaseType()
	if !ok || kind != leaf.KindInt {
		t.Errorf("BaseType() = (%v, %v), want (KindInt, true)", kind, ok)
	}
}

func Test_Tuple_BaseType_MixedMembersUnknown(t *testing.T) {
	members := []Parameter{NewValueParam(leaf.Int(1)), NewValueParam(leaf.String("x"))}
	tup, err := NewTuple(members, nil)
	if err != nil {
		t.Fatalf("NewTuple: %v", err)
	}
	if _, ok := tup.BaseType(); ok {
		t.Error("mixed-type tuple should report BaseType unknown")
	}
}

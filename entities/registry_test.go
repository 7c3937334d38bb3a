// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entities

import (
	"testing"

	"github.com/oprisk/leaf-kit"
)

func stringCallee(name string) *Callee {
	return &Callee{
		Kind: KindFunction,
		Name: name,
		Signature: Signature{
			Params: []ParamSpec{{Name: "s", Type: leaf.KindString, TypeKnown: true}},
		},
		Call: func(env CallEnv, args []leaf.Data) (leaf.Data, error) { return args[0], nil },
	}
}

func intCallee(name string) *Callee {
	return &Callee{
		Kind: KindFunction,
		Name: name,
		Signature: Signature{
			Params: []ParamSpec{{Name: "n", Type: leaf.KindInt, TypeKnown: true}},
		},
		Call: func(env CallEnv, args []leaf.Data) (leaf.Data, error) { return args[0], nil },
	}
}

func Test_Registry_ValidateFunction_SingleMatch(t *testing.T) {
	r := New()
	if err := r.Register(stringCallee("f")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	candidates, err := r.ValidateFunction("f", []ArgInfo{{BaseType: leaf.KindString, BaseTypeKnown: true}})
	if err != nil {
		t.Fatalf("ValidateFunction: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("len(candidates) = %d, want 1", len(candidates))
	}
}

func Test_Registry_ValidateFunction_Overloaded_PicksMatchingType(t *testing.T) {
	r := New()
	if err := r.Register(stringCallee("f")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(intCallee("f")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	candidates, err := r.ValidateFunction("f", []ArgInfo{{BaseType: leaf.KindInt, BaseTypeKnown: true}})
	if err != nil {
		t.Fatalf("ValidateFunction: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Signature.Params[0].Type != leaf.KindInt {
		t.Fatalf("expected to statically narrow to the int overload, got %d candidates", len(candidates))
	}
}

func Test_Registry_ValidateFunction_UnknownType_StaysAmbiguous(t *testing.T) {
	r := New()
	if err := r.Register(stringCallee("f")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(intCallee("f")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	// An argument whose static type is not yet known matches both
	// overloads, leaving the call dynamic.
	candidates, err := r.ValidateFunction("f", []ArgInfo{{}})
	if err != nil {
		t.Fatalf("ValidateFunction: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2 (still ambiguous)", len(candidates))
	}
}

func Test_Registry_ValidateFunction_NoMatch(t *testing.T) {
	r := New()
	if err := r.Register(stringCallee("f")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := r.ValidateFunction("f", []ArgInfo{{BaseType: leaf.KindInt, BaseTypeKnown: true}})
	if err == nil {
		t.Fatal("an incompatible static type should fail overload resolution")
	}
}

func Test_Registry_ValidateFunction_UnknownName(t *testing.T) {
	r := New()
	_, err := r.ValidateFunction("nope", nil)
	if err == nil {
		t.Fatal("an unregistered function name should fail")
	}
}

func Test_Registry_ValidateMethod_FiltersOnMutating(t *testing.T) {
	r := New()
	mutating := &Callee{Kind: KindMethod, Name: "m", Mutating: true}
	nonMutating := &Callee{Kind: KindMethod, Name: "m", Mutating: false}
	if err := r.Register(mutating); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(nonMutating); err != nil {
		t.Fatalf("Register: %v", err)
	}
	candidates, err := r.ValidateMethod("m", nil, true)
	if err != nil {
		t.Fatalf("ValidateMethod: %v", err)
	}
	if len(candidates) != 1 || !candidates[0].Mutating {
		t.Fatalf("expected to filter down to the mutating overload, got %d candidates", len(candidates))
	}
}

func Test_Registry_Register_DuplicateSingleton(t *testing.T) {
	r := New()
	block := &Callee{Kind: KindBlock, Name: "b"}
	if err := r.Register(block); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := r.Register(&Callee{Kind: KindBlock, Name: "b"}); err == nil {
		t.Error("registering a second block under the same name should fail")
	}
}

func Test_Registry_BlockLookup(t *testing.T) {
	r := New()
	block := &Callee{Kind: KindBlock, Name: "header"}
	if err := r.Register(block); err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, ok := r.Block("header")
	if !ok || got != block {
		t.Error("Block should find the registered block by name")
	}
	if _, ok := r.Block("missing"); ok {
		t.Error("Block should report absence for an unregistered name")
	}
}

func Test_Signature_Matches_LabeledArguments(t *testing.T) {
	sig := Signature{
		Params: []ParamSpec{
			{Name: "a", Type: leaf.KindInt, TypeKnown: true},
			{Name: "b", Type: leaf.KindString, TypeKnown: true, Optional: true},
		},
	}
	if !sig.Matches([]ArgInfo{{Label: "a", BaseType: leaf.KindInt, BaseTypeKnown: true}}) {
		t.Error("a labeled call supplying only the required param should match")
	}
	if !sig.Matches([]ArgInfo{
		{Label: "b", BaseType: leaf.KindString, BaseTypeKnown: true},
		{Label: "a", BaseType: leaf.KindInt, BaseTypeKnown: true},
	}) {
		t.Error("labeled arguments in any order should match")
	}
	if sig.Matches([]ArgInfo{{Label: "c", BaseType: leaf.KindInt, BaseTypeKnown: true}}) {
		t.Error("an unknown label should not match")
	}
}

func Test_Signature_Matches_Variadic(t *testing.T) {
	sig := Signature{
		Params:   []ParamSpec{{Name: "first", Type: leaf.KindInt, TypeKnown: true}},
		Variadic: true,
	}
	if !sig.Matches([]ArgInfo{
		{BaseType: leaf.KindInt, BaseTypeKnown: true},
		{BaseType: leaf.KindInt, BaseTypeKnown: true},
		{BaseType: leaf.KindInt, BaseTypeKnown: true},
	}) {
		t.Error("a variadic signature should accept more arguments than declared params")
	}
	if sig.Matches(nil) {
		t.Error("a variadic signature with a required first param should reject zero arguments")
	}
}

func Test_Signature_ParamAt(t *testing.T) {
	sig := Signature{Params: []ParamSpec{{Name: "a"}, {Name: "b"}}}
	spec, ok := sig.ParamAt(1, "")
	if !ok || spec.Name != "b" {
		t.Errorf("ParamAt(1, \"\") = (%v, %v), want (\"b\", true)", spec.Name, ok)
	}
	spec, ok = sig.ParamAt(0, "a")
	if !ok || spec.Name != "a" {
		t.Errorf("ParamAt(0, \"a\") = (%v, %v), want (\"a\", true)", spec.Name, ok)
	}
	if _, ok := sig.ParamAt(5, ""); ok {
		t.Error("ParamAt past the declared params with no label should report false")
	}
}

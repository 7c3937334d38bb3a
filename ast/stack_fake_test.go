// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import (
	"fmt"

	"github.com/oprisk/leaf-kit"
	"github.com/oprisk/leaf-kit/entities"
)

// fakeStack is a minimal ast.Stack used by the tests in this package, so
// they do not need to depend on leaf/scope (which itself depends on
// leaf/ast, and would create an import cycle).
type fakeStack struct {
	values   map[string]leaf.Data
	policy   Policy
	registry *entities.Registry
	unsafe   map[string]interface{}
	updates  map[string]leaf.Data
}

func newFakeStack(values map[string]leaf.Data) *fakeStack {
	return &fakeStack{
		values:   values,
		registry: entities.New(),
		updates:  map[string]leaf.Data{},
	}
}

func (s *fakeStack) Match(v Variable) leaf.Data {
	if v.Form == FormDefine {
		d, ok := s.values["define("+v.Base+")"]
		if !ok {
			return leaf.Erred(leaf.NewError(leaf.ErrMissingVariable, "define("+v.Base+") is not defined"))
		}
		return d
	}
	d, ok := s.values[v.Base]
	if !ok {
		return leaf.Erred(leaf.NewError(leaf.ErrMissingVariable, "missing variable "+v.Short()))
	}
	return d
}

func (s *fakeStack) Update(v Variable, d leaf.Data) error {
	if _, ok := s.values[v.Base]; !ok {
		return fmt.Errorf("fakeStack: unknown variable %s", v.Short())
	}
	s.updates[v.Base] = d
	s.values[v.Base] = d
	return nil
}

func (s *fakeStack) Policy() Policy                        { return s.policy }
func (s *fakeStack) UnsafeObjects() map[string]interface{} { return s.unsafe }
func (s *fakeStack) Registry() *entities.Registry          { return s.registry }

// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scope

import (
	"fmt"

	"github.com/oprisk/leaf-kit"
	"github.com/oprisk/leaf-kit/ast"
	"github.com/oprisk/leaf-kit/entities"
)

// Stack is the concrete ast.Stack implementation: a Context plus an
// entity registry borrowed by reference for the render.
type Stack struct {
	ctx      *Context
	registry *entities.Registry
}

// NewStack builds a Stack over ctx, borrowing registry for the lifetime
// of the render.
func NewStack(ctx *Context, registry *entities.Registry) *Stack {
	return &Stack{ctx: ctx, registry: registry}
}

// Match implements ast.Stack. It resolves the base cell (an ordinary
// scoped lookup, or the flat definitions namespace for a define(name)
// reference), then walks any member/subscript path.
func (s *Stack) Match(v ast.Variable) leaf.Data {
	if v.Form == ast.FormDefine {
		dv, ok := s.ctx.definition(v.Base)
		if !ok {
			return leaf.Erred(leaf.NewError(leaf.ErrMissingVariable, "define("+v.Base+") is not defined"))
		}
		return dv.Evaluate()
	}
	dv, ok := s.ctx.cell(v.Scope, v.Base)
	if !ok {
		return leaf.Erred(leaf.NewError(leaf.ErrMissingVariable, "missing variable "+v.Short()))
	}
	d := dv.Evaluate()
	for _, seg := range v.Path {
		if d.Errored() {
			return d
		}
		d = s.step(d, seg)
	}
	return d
}

func (s *Stack) step(d leaf.Data, seg ast.Segment) leaf.Data {
	if seg.Subscript != nil {
		idx := seg.Subscript.Evaluate(s)
		if idx.Errored() {
			return idx
		}
		switch d.Kind() {
		case leaf.KindArray:
			items := d.ArrayValue()
			i := idx.IntValue()
			if i < 0 || i >= int64(len(items)) {
				return leaf.Erred(leaf.NewError(leaf.ErrTypeMismatch, "index out of range"))
			}
			return items[i]
		case leaf.KindDictionary:
			v, ok := d.DictionaryValue()[idx.StringValue()]
			if !ok {
				return leaf.TrueNil()
			}
			return v
		default:
			return leaf.Erred(leaf.NewError(leaf.ErrTypeMismatch, "cannot subscript a "+d.Kind().String()+" value"))
		}
	}
	if d.Kind() != leaf.KindDictionary {
		return leaf.Erred(leaf.NewError(leaf.ErrTypeMismatch, "cannot access member "+seg.Member+" of a "+d.Kind().String()+" value"))
	}
	v, ok := d.DictionaryValue()[seg.Member]
	if !ok {
		return leaf.TrueNil()
	}
	return v
}

// Update implements ast.Stack. Only a plain, path-free variable naming a
// generator-backed cell can be updated; anything else is an error, since
// there is no defined write-through for a path or a literal cell.
func (s *Stack) Update(v ast.Variable, d leaf.Data) error {
	if v.Form == ast.FormDefine {
		return fmt.Errorf("leaf/scope: cannot update a block definition reference")
	}
	if len(v.Path) != 0 {
		return fmt.Errorf("leaf/scope: cannot update a path-qualified variable %s", v.Short())
	}
	dv, ok := s.ctx.cell(v.Scope, v.Base)
	if !ok {
		return fmt.Errorf("leaf/scope: cannot update undefined variable %s", v.Short())
	}
	if dv.IsLiteral() {
		return fmt.Errorf("leaf/scope: cannot update literal variable %s", v.Short())
	}
	cached := d
	dv.cached = &cached
	return nil
}

// Policy implements ast.Stack.
func (s *Stack) Policy() ast.Policy { return s.ctx.Policy() }

// UnsafeObjects implements ast.Stack. It returns nil unless the
// context's policy has the Unsafe flag set, regardless of whether a map
// was installed via Context.SetUnsafeObjects. The returned map is a
// snapshot: an unsafe entity can read the host objects but cannot alter
// which objects later invocations see.
func (s *Stack) UnsafeObjects() map[string]interface{} {
	if !s.ctx.Policy().Unsafe {
		return nil
	}
	installed := s.ctx.unsafeObjects()
	if installed == nil {
		return nil
	}
	snapshot := make(map[string]interface{}, len(installed))
	for k, v := range installed {
		snapshot[k] = v
	}
	return snapshot
}

// Registry implements ast.Stack.
func (s *Stack) Registry() *entities.Registry { return s.registry }

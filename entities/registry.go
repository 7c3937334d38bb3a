// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entities

import (
	"sync"

	"github.com/oprisk/leaf-kit"
)

// Registry is the global registry of functions, methods, blocks, raw
// blocks, type constructors and custom operators. A render borrows a
// Registry by reference (via its Stack); a default, empty Registry is
// provided for convenience by New.
type Registry struct {
	mu        sync.RWMutex
	functions map[string][]*Callee
	methods   map[string][]*Callee
	blocks    map[string]*Callee
	rawBlocks map[string]*Callee
	types     map[string]*Callee
	operators map[string][]*Callee
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		functions: map[string][]*Callee{},
		methods:   map[string][]*Callee{},
		blocks:    map[string]*Callee{},
		rawBlocks: map[string]*Callee{},
		types:     map[string]*Callee{},
		operators: map[string][]*Callee{},
	}
}

// Register adds c to the registry. Functions, methods and custom
// operators may have multiple overloads under the same name; blocks, raw
// blocks and type constructors are singletons and Register returns an
// error if the name is already taken.
func (r *Registry) Register(c *Callee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch c.Kind {
	case KindFunction:
		r.functions[c.Name] = append(r.functions[c.Name], c)
	case KindMethod:
		r.methods[c.Name] = append(r.methods[c.Name], c)
	case KindOperator:
		r.operators[c.Name] = append(r.operators[c.Name], c)
	case KindBlock:
		if _, exists := r.blocks[c.Name]; exists {
			return leaf.NewError(leaf.ErrInternalInvariant, "block "+c.Name+" already registered")
		}
		r.blocks[c.Name] = c
	case KindRawBlock:
		if _, exists := r.rawBlocks[c.Name]; exists {
			return leaf.NewError(leaf.ErrInternalInvariant, "raw block "+c.Name+" already registered")
		}
		r.rawBlocks[c.Name] = c
	case KindTypeConstructor:
		if _, exists := r.types[c.Name]; exists {
			return leaf.NewError(leaf.ErrInternalInvariant, "type constructor "+c.Name+" already registered")
		}
		r.types[c.Name] = c
	}
	return nil
}

// ValidateFunction returns the candidate overloads of name whose static
// signature is compatible with args. It returns an error if name is not
// registered as a function or if no overload matches.
func (r *Registry) ValidateFunction(name string, args []ArgInfo) ([]*Callee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return matchCandidates(r.functions[name], args, func(*Callee) bool { return true })
}

// ValidateMethod is like ValidateFunction but additionally filters on the
// mutating flag.
func (r *Registry) ValidateMethod(name string, args []ArgInfo, mutating bool) ([]*Callee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return matchCandidates(r.methods[name], args, func(c *Callee) bool { return c.Mutating == mutating })
}

// ValidateOperator is ValidateFunction's counterpart for custom
// expression-form operators.
func (r *Registry) ValidateOperator(name string, args []ArgInfo) ([]*Callee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return matchCandidates(r.operators[name], args, func(*Callee) bool { return true })
}

func matchCandidates(pool []*Callee, args []ArgInfo, filter func(*Callee) bool) ([]*Callee, error) {
	var candidates []*Callee
	for _, c := range pool {
		if filter(c) && c.Signature.matches(args) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return nil, leaf.NewError(leaf.ErrOverloadNone, "no matching overload")
	}
	return candidates, nil
}

// Block looks up a registered block by name.
func (r *Registry) Block(name string) (*Callee, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.blocks[name]
	return c, ok
}

// RawBlock looks up a registered raw block by name.
func (r *Registry) RawBlock(name string) (*Callee, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.rawBlocks[name]
	return c, ok
}

// TypeConstructor looks up a registered type constructor by name.
func (r *Registry) TypeConstructor(name string) (*Callee, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.types[name]
	return c, ok
}

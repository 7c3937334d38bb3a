// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scope

import (
	"fmt"
	"sync"

	"github.com/oprisk/leaf-kit/ast"
)

// Context is a mapping from scope name to a mapping from identifier to
// DataValue, plus the policy record and the host's unsafe object map. It
// also carries the flat namespace of block definitions resolved by
// define(name) references.
type Context struct {
	mu          sync.RWMutex
	scopes      map[string]map[string]*DataValue
	locked      map[string]bool
	definitions map[string]*DataValue
	policy      ast.Policy
	unsafe      map[string]interface{}
	// order is the scope search order used to resolve an unscoped
	// Variable (one with Scope == ""); scopes not listed here are only
	// reachable by explicit name.
	order []string
}

// NewContext returns an empty Context governed by policy. searchOrder
// names the scopes consulted, in order, for a Variable with no explicit
// scope.
func NewContext(policy ast.Policy, searchOrder ...string) *Context {
	return &Context{
		scopes:      map[string]map[string]*DataValue{},
		locked:      map[string]bool{},
		definitions: map[string]*DataValue{},
		policy:      policy,
		order:       searchOrder,
	}
}

// SetUnsafeObjects installs the host object map consulted by unsafe
// entities. The map is stored as given; unsafe entities receive a
// snapshot of it at each invocation, never the stored map itself.
func (c *Context) SetUnsafeObjects(m map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unsafe = m
}

// Policy returns the context's policy record.
func (c *Context) Policy() ast.Policy {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.policy
}

// RegisterPublisher inserts pub's generators as new cells in scope. It
// fails if scope is locked.
func (c *Context) RegisterPublisher(scopeName string, pub ContextPublisher) error {
	return c.ExtendVariables(scopeName, pub.Generators())
}

// ExtendVariables adds additional generators to scope, as if they had
// been part of a publisher registered there. It fails if scope is
// locked.
func (c *Context) ExtendVariables(scopeName string, generators map[string]DataGenerator) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked[scopeName] {
		return fmt.Errorf("leaf/scope: scope %q is locked", scopeName)
	}
	dst, ok := c.scopes[scopeName]
	if !ok {
		dst = map[string]*DataValue{}
		c.scopes[scopeName] = dst
	}
	for name, gen := range generators {
		dst[name] = NewVariableValue(gen)
	}
	return nil
}

// RegisterLiteral inserts a single literal cell directly into scope,
// bypassing the generator indirection. It fails if scope is locked.
func (c *Context) RegisterLiteral(scopeName, name string, dv *DataValue) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked[scopeName] {
		return fmt.Errorf("leaf/scope: scope %q is locked", scopeName)
	}
	dst, ok := c.scopes[scopeName]
	if !ok {
		dst = map[string]*DataValue{}
		c.scopes[scopeName] = dst
	}
	dst[name] = dv
	return nil
}

// RegisterDefinition adds or replaces a block definition resolved by
// define(name) references. Definitions are not scoped: the namespace is
// flat.
func (c *Context) RegisterDefinition(name string, dv *DataValue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.definitions[name] = dv
}

// Lock flattens every DataValue in scope into a literal and marks the
// scope locked: its names behave as parse-time constants from then on.
// Locking an already-locked scope is a no-op. Locking a scope that has
// no cells yet still marks it locked, so later registrations into it
// fail.
func (c *Context) Lock(scopeName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked[scopeName] {
		return
	}
	for _, dv := range c.scopes[scopeName] {
		dv.Flatten()
	}
	c.locked[scopeName] = true
}

// Locked reports whether scope has been locked.
func (c *Context) Locked(scopeName string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.locked[scopeName]
}

func (c *Context) cell(scopeName, name string) (*DataValue, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if scopeName != "" {
		dv, ok := c.scopes[scopeName][name]
		return dv, ok
	}
	for _, s := range c.order {
		if dv, ok := c.scopes[s][name]; ok {
			return dv, ok
		}
	}
	return nil, false
}

func (c *Context) definition(name string) (*DataValue, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dv, ok := c.definitions[name]
	return dv, ok
}

func (c *Context) unsafeObjects() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.unsafe
}

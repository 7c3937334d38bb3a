// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builtins

import (
	"gopkg.in/yaml.v3"

	"github.com/oprisk/leaf-kit"
	"github.com/oprisk/leaf-kit/scope"
)

// YAMLPublisher is a scope.ContextPublisher backed by a parsed YAML
// document: every top-level key becomes an immediate generator, letting
// a host supply structured configuration data to a render Context
// without writing Go literals by hand.
type YAMLPublisher struct {
	values map[string]leaf.Data
}

// NewYAMLPublisher parses source as a YAML mapping document.
func NewYAMLPublisher(source []byte) (*YAMLPublisher, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(source, &raw); err != nil {
		return nil, err
	}
	values := make(map[string]leaf.Data, len(raw))
	for k, v := range raw {
		values[k] = leaf.FromGo(v)
	}
	return &YAMLPublisher{values: values}, nil
}

// Generators implements scope.ContextPublisher.
func (p *YAMLPublisher) Generators() map[string]scope.DataGenerator {
	gens := make(map[string]scope.DataGenerator, len(p.values))
	for k, v := range p.values {
		gens[k] = scope.Immediate(v)
	}
	return gens
}

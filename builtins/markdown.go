// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package builtins supplies optional entities and context publishers
// that a host may register into the core: a Markdown conversion
// function for the entities registry, and a YAML-backed context
// publisher.
package builtins

import (
	"bytes"

	"github.com/yuin/goldmark"

	"github.com/oprisk/leaf-kit"
	"github.com/oprisk/leaf-kit/entities"
)

// RegisterMarkdown adds a "markdown" function entity to reg, converting
// its single string argument to HTML via goldmark.
func RegisterMarkdown(reg *entities.Registry) error {
	return reg.Register(&entities.Callee{
		Kind: entities.KindFunction,
		Name: "markdown",
		Signature: entities.Signature{
			Params: []entities.ParamSpec{
				{Name: "source", Type: leaf.KindString, TypeKnown: true},
			},
			ReturnType:  leaf.KindString,
			ReturnKnown: true,
		},
		Invariant: true,
		Call: func(env entities.CallEnv, args []leaf.Data) (leaf.Data, error) {
			var out bytes.Buffer
			if err := goldmark.Convert([]byte(args[0].StringValue()), &out); err != nil {
				return leaf.Data{}, err
			}
			return leaf.String(out.String()), nil
		},
	})
}

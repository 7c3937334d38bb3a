// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scope

import (
	"github.com/oprisk/leaf-kit"
	"github.com/oprisk/leaf-kit/entities"
)

// StackFromConfig builds a Stack for a render, recovering the concrete
// *entities.Registry that cfg carries opaquely (cfg.Registry returns
// interface{} because the root leaf package cannot import entities).
// It returns an error rather than panicking if cfg has no registry set,
// or if the value it holds is not an *entities.Registry: a host that
// calls SetRegistry with the wrong type made a configuration mistake,
// not a runtime one, but detecting it here beats an unchecked type
// assertion at every render.
func StackFromConfig(cfg *leaf.Config, ctx *Context) (*Stack, error) {
	raw := cfg.Registry()
	if raw == nil {
		return nil, errNoRegistry
	}
	reg, ok := raw.(*entities.Registry)
	if !ok {
		return nil, errWrongRegistryType
	}
	return NewStack(ctx, reg), nil
}

type wiringError string

func (e wiringError) Error() string { return string(e) }

const (
	errNoRegistry        = wiringError("leaf/scope: config has no registry set")
	errWrongRegistryType = wiringError("leaf/scope: config registry is not a *entities.Registry")
)

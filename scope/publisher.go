// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scope

// ContextPublisher is any host-supplied object that exposes a named set
// of DataGenerators, registered into a Context scope.
type ContextPublisher interface {
	Generators() map[string]DataGenerator
}

// GeneratorMap adapts a plain map of generators to a ContextPublisher,
// for hosts that have no dedicated publisher type of their own.
type GeneratorMap map[string]DataGenerator

// Generators implements ContextPublisher.
func (m GeneratorMap) Generators() map[string]DataGenerator { return m }

// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package leaf implements the value model and runtime configuration of a
// sigil-driven template engine's expression/AST evaluation substrate.
//
// The engine itself is split across several packages:
//
//   - leaf (this package): Data, structured errors, sealed runtime
//     configuration.
//   - leaf/ast: Variable, Parameter and its variants, Expression, Tuple,
//     the Symbol contract and the Stack interface the AST resolves and
//     evaluates against.
//   - leaf/entities: the registry of functions, methods, blocks and
//     operators used to disambiguate overloaded calls.
//   - leaf/scope: Context, DataValue, ContextPublisher and the concrete
//     Stack implementation that backs a render.
//   - leaf/cache: the concurrent compiled-template cache with touch
//     telemetry.
//
// A lexer, parser and renderer are expected to sit on top of these
// packages; none of them are part of this module.
package leaf

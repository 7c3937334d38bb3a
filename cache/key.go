// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cache implements the concurrent compiled-template cache: a
// map from AST key to compiled AST, paired with a parallel map from key
// to usage Touch, under the "cache before touch" lock ordering.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Key is a content-and-name fingerprint of a compiled template: a
// SHA-256 digest over the template's name and source bytes, so two
// unrelated sources never collide on name reuse alone.
type Key [sha256.Size]byte

// NewKey computes the Key for a template named name with source bytes.
func NewKey(name string, source []byte) Key {
	h := sha256.New()
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write(source)
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// String renders k as a hex digest, for diagnostics.
func (k Key) String() string { return hex.EncodeToString(k[:]) }

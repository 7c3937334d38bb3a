// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package leaf

import "sync"

// Config holds the two process-wide values sealed at first render: the
// tag-sigil character and an opaque entity registry handle. Sealing is
// an explicit method a renderer calls at first use.
//
// The registry is stored as interface{} because leaf imports nothing from
// leaf/entities (entities imports leaf, not the other way around); callers
// type-assert it back to *entities.Registry.
type Config struct {
	mu       sync.Mutex
	sigil    rune
	registry interface{}
	sealed   bool

	sigilValidator func(rune) bool
}

// NewConfig returns a Config with the given default sigil. validator, if
// non-nil, is consulted by SetSigil; a predicate failure on the initial
// bind (this call) is fatal and panics.
func NewConfig(defaultSigil rune, validator func(rune) bool) *Config {
	if validator != nil && !validator(defaultSigil) {
		panic("leaf: default sigil rejected by validator")
	}
	return &Config{sigil: defaultSigil, sigilValidator: validator}
}

// Sigil returns the configured sigil character.
func (c *Config) Sigil() rune {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sigil
}

// SetSigil sets the sigil character. It returns an error if called after
// Seal, or if a validator was configured and rejects r. A post-seal call
// leaves the configuration untouched; whether the caller treats the
// returned error as an assertion failure or ignores it is its choice.
func (c *Config) SetSigil(r rune) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sealed {
		return errSealed
	}
	if c.sigilValidator != nil && !c.sigilValidator(r) {
		return errInvalidSigil
	}
	c.sigil = r
	return nil
}

// Registry returns the configured entity registry, or nil if none was set.
func (c *Config) Registry() interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry
}

// SetRegistry sets the entity registry. It returns an error if called
// after Seal.
func (c *Config) SetRegistry(registry interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sealed {
		return errSealed
	}
	c.registry = registry
	return nil
}

// Seal freezes the configuration. It is idempotent: sealing an
// already-sealed Config is a no-op. A renderer calls Seal at first use.
func (c *Config) Seal() {
	c.mu.Lock()
	c.sealed = true
	c.mu.Unlock()
}

// Sealed reports whether Seal has been called.
func (c *Config) Sealed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sealed
}

var (
	errSealed       = configError("leaf: configuration is sealed")
	errInvalidSigil = configError("leaf: sigil rejected by validator")
)

type configError string

func (e configError) Error() string { return string(e) }

// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package leaf

import (
	"fmt"
	"strconv"
)

// Kind is the stored type of a Data value. The entities package matches
// signatures by comparing kinds for equality; no ordering among kinds is
// used there.
type Kind int

const (
	KindVoid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindDictionary
	KindError
	KindLazy
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindDictionary:
		return "dictionary"
	case KindError:
		return "error"
	case KindLazy:
		return "lazy"
	default:
		return "unknown"
	}
}

// lazyValue wraps a deferred producer of Data.
type lazyValue struct {
	invariant bool
	produce   func() Data
}

// Data is a discriminated template value: boolean, integer, double,
// string, array, dictionary, void/nil, error, or a lazy generator. Errors
// propagate as values; they never unwind the call stack.
type Data struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Data
	dict map[string]Data
	err  *DataError
	lazy *lazyValue
}

// Bool returns a boolean Data value.
func Bool(b bool) Data { return Data{kind: KindBool, b: b} }

// Int returns an integer Data value.
func Int(i int64) Data { return Data{kind: KindInt, i: i} }

// Float returns a double Data value.
func Float(f float64) Data { return Data{kind: KindFloat, f: f} }

// String returns a string Data value.
func String(s string) Data { return Data{kind: KindString, s: s} }

// Array returns an array Data value. The slice is not copied.
func Array(items []Data) Data { return Data{kind: KindArray, arr: items} }

// Dictionary returns a dictionary Data value. The map is not copied.
func Dictionary(m map[string]Data) Data { return Data{kind: KindDictionary, dict: m} }

// TrueNil is the void/nil literal.
func TrueNil() Data { return Data{kind: KindVoid} }

// Erred returns an errored Data value wrapping err.
func Erred(err *DataError) Data { return Data{kind: KindError, err: err} }

// LazyOf returns a lazy Data value. invariant reports whether repeated
// forcing yields the same result; produce must return a concrete (non-lazy)
// Data, or an errored Data.
func LazyOf(invariant bool, produce func() Data) Data {
	return Data{kind: KindLazy, lazy: &lazyValue{invariant: invariant, produce: produce}}
}

// Kind returns the stored type of d. For a lazy value this is KindLazy;
// call Evaluate first to inspect the concrete kind.
func (d Data) Kind() Kind { return d.kind }

// Errored reports whether d is an errored value.
func (d Data) Errored() bool { return d.kind == KindError }

// IsLazy reports whether d wraps a deferred generator.
func (d Data) IsLazy() bool { return d.kind == KindLazy }

// IsCollection reports whether d is an array or a dictionary.
func (d Data) IsCollection() bool { return d.kind == KindArray || d.kind == KindDictionary }

// Invariant reports whether repeated evaluation of d yields an equal
// value. Non-lazy values are always invariant; a lazy value's invariance
// is whatever its producer declared.
func (d Data) Invariant() bool {
	if d.kind == KindLazy {
		return d.lazy.invariant
	}
	return true
}

// Evaluate forces d, returning a concrete (non-lazy) Data. It recurses
// through chains of lazy values. A lazy producer that returns an errored
// Data yields that error, unchanged.
func (d Data) Evaluate() Data {
	for d.kind == KindLazy {
		d = d.lazy.produce()
	}
	return d
}

// Err returns the wrapped error, or nil if d is not errored.
func (d Data) Err() *DataError {
	if d.kind != KindError {
		return nil
	}
	return d.err
}

// BoolValue returns the boolean payload of d, or false if d is not a bool.
func (d Data) BoolValue() bool { return d.b }

// IntValue returns the integer payload of d, or 0 if d is not an int.
func (d Data) IntValue() int64 { return d.i }

// FloatValue returns the float payload of d, or 0 if d is not a float.
func (d Data) FloatValue() float64 { return d.f }

// StringValue returns the string payload of d, or "" if d is not a string.
func (d Data) StringValue() string { return d.s }

// ArrayValue returns the array payload of d, or nil if d is not an array.
func (d Data) ArrayValue() []Data { return d.arr }

// DictionaryValue returns the dictionary payload of d, or nil if d is not
// a dictionary.
func (d Data) DictionaryValue() map[string]Data { return d.dict }

// IsVoid reports whether d is the void/nil literal.
func (d Data) IsVoid() bool { return d.kind == KindVoid }

// String formats d for diagnostics; it is not the template-rendering
// serialization, which belongs to the (out of scope) renderer.
func (d Data) String() string {
	switch d.kind {
	case KindVoid:
		return "nil"
	case KindBool:
		if d.b {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(d.i, 10)
	case KindFloat:
		return strconv.FormatFloat(d.f, 'g', -1, 64)
	case KindString:
		return d.s
	case KindArray:
		return fmt.Sprintf("%v", d.arr)
	case KindDictionary:
		return fmt.Sprintf("%v", d.dict)
	case KindError:
		return d.err.Error()
	case KindLazy:
		return "<lazy>"
	default:
		return "<invalid>"
	}
}

// Equal reports whether d and other have the same kind and payload. An
// errored Data never compares equal to anything, not even to another
// errored Data with the same kind and message.
func (d Data) Equal(other Data) bool {
	if d.kind == KindError || other.kind == KindError {
		return false
	}
	d, other = d.Evaluate(), other.Evaluate()
	if d.kind != other.kind {
		return false
	}
	switch d.kind {
	case KindVoid:
		return true
	case KindBool:
		return d.b == other.b
	case KindInt:
		return d.i == other.i
	case KindFloat:
		return d.f == other.f
	case KindString:
		return d.s == other.s
	case KindArray:
		if len(d.arr) != len(other.arr) {
			return false
		}
		for i := range d.arr {
			if !d.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindDictionary:
		if len(d.dict) != len(other.dict) {
			return false
		}
		for k, v := range d.dict {
			ov, ok := other.dict[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

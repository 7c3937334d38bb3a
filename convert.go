// Copyright 2024 The Leaf-Kit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package leaf

import (
	"fmt"
	"reflect"
)

// FromGo converts a native Go value into Data. It accepts nil, bool, the
// signed/unsigned integer kinds, float32/float64, string, slices and maps
// of convertible element types. Values it cannot convert become an
// errored Data of kind ErrInternalInvariant, naming the offending type —
// a defect upstream (a ContextPublisher offering an unsupported shape),
// not a template-author mistake.
func FromGo(v interface{}) Data {
	if v == nil {
		return TrueNil()
	}
	switch e := v.(type) {
	case Data:
		return e
	case bool:
		return Bool(e)
	case string:
		return String(e)
	case int:
		return Int(int64(e))
	case int8:
		return Int(int64(e))
	case int16:
		return Int(int64(e))
	case int32:
		return Int(int64(e))
	case int64:
		return Int(e)
	case uint:
		return Int(int64(e))
	case uint8:
		return Int(int64(e))
	case uint16:
		return Int(int64(e))
	case uint32:
		return Int(int64(e))
	case uint64:
		return Int(int64(e))
	case float32:
		return Float(float64(e))
	case float64:
		return Float(e)
	case []interface{}:
		items := make([]Data, len(e))
		for i, it := range e {
			items[i] = FromGo(it)
		}
		return Array(items)
	case map[string]interface{}:
		m := make(map[string]Data, len(e))
		for k, it := range e {
			m[k] = FromGo(it)
		}
		return Dictionary(m)
	}
	return fromGoReflect(v)
}

// fromGoReflect handles the shapes not covered by FromGo's type switch:
// defined types over a basic kind, and slices/maps with a non-interface{}
// element type.
func fromGoReflect(v interface{}) Data {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return String(rv.String())
	case reflect.Slice, reflect.Array:
		items := make([]Data, rv.Len())
		for i := range items {
			items[i] = FromGo(rv.Index(i).Interface())
		}
		return Array(items)
	case reflect.Map:
		m := make(map[string]Data, rv.Len())
		for _, key := range rv.MapKeys() {
			m[fmtMapKey(key)] = FromGo(rv.MapIndex(key).Interface())
		}
		return Dictionary(m)
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return TrueNil()
		}
		return FromGo(rv.Elem().Interface())
	default:
		return Erred(NewError(ErrInternalInvariant, "leaf: cannot convert value of type "+rv.Type().String()+" to Data"))
	}
}

func fmtMapKey(key reflect.Value) string {
	if key.Kind() == reflect.String {
		return key.String()
	}
	return fmt.Sprintf("%v", key.Interface())
}

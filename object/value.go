package object

import (
	"fmt"
	"reflect"
)

// Value is any value of the object model.
type Value = any

// Key is a property key.
type Key = string

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined is the marker returned for missing properties.
var Undefined Value = undefined{}

// IsUndefined reports whether v is the Undefined marker.
func IsUndefined(v Value) bool {
	_, ok := v.(undefined)
	return ok
}

// IsObject reports whether v has object identity.
func IsObject(v Value) bool {
	o, ok := v.(Object)
	return ok && o != nil
}

// IsCallable reports whether v can be invoked.
func IsCallable(v Value) bool {
	_, ok := v.(Invocable)
	return ok
}

// IsConstructor reports whether v supports construction.
func IsConstructor(v Value) bool {
	_, ok := v.(Constructible)
	return ok
}

// TypeName returns the dynamic type name of v as the host language spells it.
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "null"
	case undefined:
		return "undefined"
	case bool:
		return "boolean"
	case string:
		return "string"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case Invocable:
		return "function"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// ClassOf returns the class tag of an object ("Object", "Array", "Function").
func ClassOf(v Value) string {
	if c, ok := v.(interface{ Class() string }); ok {
		return c.Class()
	}
	if IsCallable(v) {
		return "Function"
	}
	return "Object"
}

// SameValue compares two values by identity for objects and by equality for
// primitives. Non-comparable Go values are never the same.
func SameValue(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// ToNumber converts numeric primitives to float64.
func ToNumber(v Value) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

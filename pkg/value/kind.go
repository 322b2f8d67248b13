// Package value classifies arbitrary Go values and renders them as indented,
// human-readable text for debug output.
package value

import (
	"math"
	"reflect"
)

// Kind is the semantic type of a value as seen by the renderer.
type Kind int

// Value kinds. The three non-finite float states are distinct from KindNumber.
const (
	KindUnsupported Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindArray
	KindObject
	KindFunction
	KindUndefined
	KindNull
	KindNaN
	KindInfinity
	KindNegativeInfinity
)

var kindNames = [...]string{
	KindUnsupported:      "Unsupported",
	KindString:           "String",
	KindNumber:           "Number",
	KindBoolean:          "Boolean",
	KindArray:            "Array",
	KindObject:           "Object",
	KindFunction:         "Function",
	KindUndefined:        "Undefined",
	KindNull:             "Null",
	KindNaN:              "NaN",
	KindInfinity:         "Infinity",
	KindNegativeInfinity: "-Infinity",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnsupported]
	}
	return kindNames[k]
}

// IsContainer reports whether k renders as a bracket block.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindObject
}

type undefined struct{}

// Undefined stands for an absent value. Go has no undefined, so callers that
// need to distinguish "missing" from nil pass this sentinel.
var Undefined any = undefined{}

var (
	undefinedType = reflect.TypeOf(undefined{})
	objectType    = reflect.TypeOf(Object{})
)

// Classify returns the kind of v. It is total and has no side effects.
//
// Pointers and interfaces are followed; a nil anywhere along the way is
// KindNull, as are nil slices, maps and funcs.
func Classify(v any) Kind {
	if v == nil {
		return KindNull
	}
	return classify(reflect.ValueOf(v))
}

func classify(rv reflect.Value) Kind {
	rv, ok := indirect(rv)
	if !ok {
		return KindNull
	}

	switch rv.Type() {
	case undefinedType:
		return KindUndefined
	case objectType:
		return KindObject
	}

	switch rv.Kind() {
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KindNumber
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		switch {
		case math.IsNaN(f):
			return KindNaN
		case math.IsInf(f, 1):
			return KindInfinity
		case math.IsInf(f, -1):
			return KindNegativeInfinity
		}
		return KindNumber
	case reflect.Slice:
		if rv.IsNil() {
			return KindNull
		}
		return KindArray
	case reflect.Array:
		return KindArray
	case reflect.Map:
		if rv.IsNil() {
			return KindNull
		}
		return KindObject
	case reflect.Struct:
		return KindObject
	case reflect.Func:
		if rv.IsNil() {
			return KindNull
		}
		return KindFunction
	default:
		return KindUnsupported
	}
}

// indirect follows pointers and interfaces. It reports false when it meets a nil.
func indirect(rv reflect.Value) (reflect.Value, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return rv, false
		}
		rv = rv.Elem()
	}
	return rv, rv.IsValid()
}

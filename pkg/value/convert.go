package value

import (
	"math"
	"reflect"
)

// ToInt returns v as an int when it is a Number, truncated toward zero and
// clamped to the int range, and 0 for every other kind. Dynamic callers use it to coerce level indexes: a
// non-numeric index deliberately means level 0.
func ToInt(v any) int {
	if Classify(v) != KindNumber {
		return 0
	}
	rv, _ := indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		f := math.Trunc(rv.Float())
		switch {
		case math.IsNaN(f):
			return 0
		case f >= math.MaxInt:
			return math.MaxInt
		case f <= math.MinInt:
			return math.MinInt
		}
		return int(f)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int(min(rv.Uint(), math.MaxInt))
	default:
		return int(rv.Int())
	}
}

// ToString returns v when it is a String and "" otherwise.
func ToString(v any) string {
	if Classify(v) != KindString {
		return ""
	}
	rv, _ := indirect(reflect.ValueOf(v))
	return rv.String()
}

// ToBool returns v when it is a Boolean and false otherwise.
func ToBool(v any) bool {
	if Classify(v) != KindBoolean {
		return false
	}
	rv, _ := indirect(reflect.ValueOf(v))
	return rv.Bool()
}

// ToFloat returns v as a float64 when it is a Number and 0 otherwise.
func ToFloat(v any) float64 {
	if Classify(v) != KindNumber {
		return 0
	}
	rv, _ := indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	default:
		return float64(rv.Int())
	}
}

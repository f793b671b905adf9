package validator

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// isEmptyString reports whether v is the empty string.
func isEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && s == ""
}

// isFalsy follows the usual loose notion of falsy values: nil, "", false, zero and NaN.
func isFalsy(v any) bool {
	if isNil(v) {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case bool:
		return !t
	}
	if f, ok := toFloat(v); ok {
		return f == 0 || math.IsNaN(f)
	}
	return false
}

func isNumeric(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(json.Number); ok {
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// toFloat converts numeric values of any kind to float64.
func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func isZero(v any) bool {
	f, ok := toFloat(v)
	return ok && f == 0
}

// TypeOf returns the category name used by Type: string, number, boolean,
// time, uuid, array, object or null. Anything else reports its Go type name.
func TypeOf(v any) string {
	if isNil(v) {
		return "null"
	}
	if isNumeric(v) {
		return "number"
	}
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case time.Time, *time.Time:
		return "time"
	case uuid.UUID:
		return "uuid"
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct, reflect.Pointer:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

func stringValue(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case fmt.Stringer:
		if isNil(v) {
			return "", false
		}
		return t.String(), true
	}
	return "", false
}

// lengthOf returns the rune count of strings and the element count of collections.
func lengthOf(v any) (n int, collection bool, ok bool) {
	if s, isStr := v.(string); isStr {
		return utf8.RuneCountInString(s), false, true
	}
	if isNil(v) {
		return 0, false, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true, true
	}
	return 0, false, false
}

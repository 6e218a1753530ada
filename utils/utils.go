package utils

import "reflect"

// Noop does nothing. It is the default for optional callbacks.
func Noop() {}

// Identity returns v unchanged.
func Identity[T any](v T) T {
	return v
}

// IsNonNullable reports whether v holds a usable value. It returns false for
// an untyped nil and for typed nils (nil pointers, maps, slices, channels,
// funcs and interfaces); zero values such as 0, "" or false are non-nullable.
func IsNonNullable[T any](v T) bool {
	a := any(v)
	if a == nil {
		return false
	}
	rv := reflect.ValueOf(a)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return !rv.IsNil()
	default:
		return true
	}
}

// Compact returns the elements of vs for which IsNonNullable holds, in order.
func Compact[T any](vs []T) []T {
	res := make([]T, 0, len(vs))
	for _, v := range vs {
		if IsNonNullable(v) {
			res = append(res, v)
		}
	}
	return res
}

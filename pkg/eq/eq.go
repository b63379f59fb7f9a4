// Package eq provides the value-equality rules used throughout weft.
//
// The rules are identity-preserving rather than IEEE-754 faithful: NaN is
// equal to itself (a dependency holding NaN must not re-trigger an effect
// on every render) and +0 and -0 are distinct (a state transition between
// them is observable). Reference types without structural meaning
// (functions, channels, pointers, and the slice/map headers themselves at
// the Same level) compare by identity.
package eq

import (
	"math"
	"reflect"
)

// Same reports whether a and b are the same value under weft's
// identity-preserving equality. Scalars compare by value with the NaN and
// signed-zero adjustments; functions, pointers, channels, maps and slices
// compare by reference identity.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return false
		}
		return sameFloat64(av, bv)
	case float32:
		bv, ok := b.(float32)
		if !ok {
			return false
		}
		return sameFloat64(float64(av), float64(bv))
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}

	switch ra.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Pointer, reflect.UnsafePointer:
		// Reference identity. Value.Pointer is stable for these kinds.
		return ra.Pointer() == rb.Pointer()
	}

	if ra.Type().Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// sameFloat64 implements the NaN/signed-zero adjustments.
func sameFloat64(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	if a == 0 && b == 0 {
		return math.Signbit(a) == math.Signbit(b)
	}
	return a == b
}

// Shallow compares a and b one level deep. Maps compare key-by-key and
// []any lists element-by-element, each entry compared with Same; anything
// else falls back to Same directly. It never recurses into nested maps or
// lists.
func Shallow(a, b any) bool {
	if am, ok := a.(map[string]any); ok {
		bm, ok := b.(map[string]any)
		if !ok {
			return false
		}
		return shallowMap(am, bm)
	}
	if al, ok := a.([]any); ok {
		bl, ok := b.([]any)
		if !ok {
			return false
		}
		return SameList(al, bl)
	}
	return Same(a, b)
}

// SameList compares two dependency lists element-wise with Same.
// Lists of different lengths are never equal.
func SameList(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Same(a[i], b[i]) {
			return false
		}
	}
	return true
}

func shallowMap(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !Same(av, bv) {
			return false
		}
	}
	return true
}

// Deep compares a and b recursively, applying the Same scalar rules at
// every leaf. Maps and lists are walked structurally to any depth.
func Deep(a, b any) bool {
	if am, ok := a.(map[string]any); ok {
		bm, ok := b.(map[string]any)
		if !ok || len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, ok := bm[k]
			if !ok || !Deep(av, bv) {
				return false
			}
		}
		return true
	}
	if al, ok := a.([]any); ok {
		bl, ok := b.([]any)
		if !ok || len(al) != len(bl) {
			return false
		}
		for i := range al {
			if !Deep(al[i], bl[i]) {
				return false
			}
		}
		return true
	}
	return Same(a, b)
}

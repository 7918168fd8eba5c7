// Package sanitize replaces values that JSON cannot represent with explicit nulls.
package sanitize

import "math"

// Finite reports whether f is neither NaN nor an infinity.
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Value returns v with every non-finite float replaced by nil.
// Maps and slices are rebuilt element by element and keep their shape;
// all other values are returned unchanged. Value is idempotent.
func Value(v any) any {
	switch x := v.(type) {
	case float64:
		if !Finite(x) {
			return nil
		}
		return x
	case float32:
		if !Finite(float64(x)) {
			return nil
		}
		return x
	case *float64:
		if x != nil && !Finite(*x) {
			return nil
		}
		return x
	case *float32:
		if x != nil && !Finite(float64(*x)) {
			return nil
		}
		return x
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = Value(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Value(e)
		}
		return out
	default:
		return v
	}
}

// Float returns nil when p is nil or points at a non-finite value.
func Float(p *float64) *float64 {
	if p == nil || !Finite(*p) {
		return nil
	}
	return p
}

package heuristic

import (
	"fmt"
	"math"
	"reflect"
	"unicode/utf8"
)

type scalarKind uint8

const (
	signedScalar scalarKind = iota
	unsignedScalar
	floatScalar
)

// scalar is a numeric value normalized out of whatever Go type the
// collaborator extracted. Integers keep their exact 64-bit representation
// so that comparisons never lose precision.
type scalar struct {
	kind scalarKind
	i    int64
	u    uint64
	f    float64
}

func intScalar(v int64) scalar { return scalar{kind: signedScalar, i: v} }
func uintScalar(v uint64) scalar { return scalar{kind: unsignedScalar, u: v} }
func floatScalarOf(v float64) scalar { return scalar{kind: floatScalar, f: v} }

func (s scalar) float() float64 {
	switch s.kind {
	case signedScalar:
		return float64(s.i)
	case unsignedScalar:
		return float64(s.u)
	}
	return s.f
}

func (s scalar) isNaN() bool {
	return s.kind == floatScalar && math.IsNaN(s.f)
}

// scalarOf normalizes a numeric value of any integer or float kind,
// including named types and pointers to them.
func scalarOf(v any) (scalar, bool) {
	switch x := v.(type) {
	case int:
		return intScalar(int64(x)), true
	case int64:
		return intScalar(x), true
	case int32:
		return intScalar(int64(x)), true
	case uint64:
		return uintScalar(x), true
	case float64:
		return floatScalarOf(x), true
	}
	rv, ok := deref(reflect.ValueOf(v))
	if !ok {
		return scalar{}, false
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intScalar(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return uintScalar(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return floatScalarOf(rv.Float()), true
	}
	return scalar{}, false
}

// compareScalars returns -1, 0 or +1. ok is false when either side is NaN,
// in which case the values are unordered.
func compareScalars(a, b scalar) (c int, ok bool) {
	if a.isNaN() || b.isNaN() {
		return 0, false
	}
	switch {
	case a.kind == signedScalar && b.kind == signedScalar:
		return cmp3(a.i < b.i, a.i > b.i), true
	case a.kind == unsignedScalar && b.kind == unsignedScalar:
		return cmp3(a.u < b.u, a.u > b.u), true
	case a.kind == signedScalar && b.kind == unsignedScalar:
		if a.i < 0 {
			return -1, true
		}
		return compareScalars(uintScalar(uint64(a.i)), b)
	case a.kind == unsignedScalar && b.kind == signedScalar:
		c, ok := compareScalars(b, a)
		return -c, ok
	case a.kind != floatScalar && b.kind == floatScalar:
		return compareMixed(a, b.f), true
	case a.kind == floatScalar && b.kind != floatScalar:
		return -compareMixed(b, a.f), true
	}
	af, bf := a.f, b.f
	return cmp3(af < bf, af > bf), true
}

// compareMixed orders the integer n against the non-NaN float f without
// rounding n through float64.
func compareMixed(n scalar, f float64) int {
	whole, frac, ok := splitFloat(f)
	if !ok {
		return cmp3(f > 0, f < 0)
	}
	if c, _ := compareScalars(n, whole); c != 0 {
		return c
	}
	return cmp3(frac > 0, frac < 0)
}

const (
	two63 = 1 << 63
	two64 = 1 << 64
)

// splitFloat decomposes f into its integer part, held exactly, and the
// remaining fraction, which carries the sign of f. ok is false when the
// integer part lies outside [-2^63, 2^64) or f is not finite.
func splitFloat(f float64) (whole scalar, frac float64, ok bool) {
	t := math.Trunc(f)
	switch {
	case t >= -two63 && t < two63:
		return intScalar(int64(t)), f - t, true
	case t >= two63 && t < two64:
		return uintScalar(uint64(t)), f - t, true
	}
	return scalar{}, 0, false
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}

// gap returns |a-b| without overflowing the operand domain. Distinct
// integers always have a gap of at least 1. The result is +Inf only for
// floats whose difference exceeds the float64 range, and NaN when either
// operand is NaN.
func gap(a, b scalar) float64 {
	c, ok := compareScalars(a, b)
	if !ok {
		return math.NaN()
	}
	if c < 0 {
		a, b = b, a
	}
	// a >= b from here.
	switch {
	case a.kind == signedScalar && b.kind == signedScalar:
		return float64(uint64(a.i) - uint64(b.i))
	case a.kind == unsignedScalar && b.kind == unsignedScalar:
		return float64(a.u - b.u)
	case a.kind == unsignedScalar && b.kind == signedScalar:
		if b.i >= 0 {
			return float64(a.u - uint64(b.i))
		}
		// Up to 2^64 - 1 + 2^63: only float64 can hold it.
		return float64(a.u) + float64(uint64(-(b.i+1))) + 1
	case a.kind == signedScalar && b.kind == unsignedScalar:
		// a >= b >= 0
		return float64(uint64(a.i) - b.u)
	case a.kind != floatScalar && b.kind == floatScalar:
		return mixedGap(a, b.f)
	case a.kind == floatScalar && b.kind != floatScalar:
		return mixedGap(b, a.f)
	}
	return math.Abs(a.f - b.f)
}

// mixedGap is |n-f| for an integer n and a non-NaN float f. The integer
// part of the distance is exact, so distinct values never yield 0.
func mixedGap(n scalar, f float64) float64 {
	whole, frac, ok := splitFloat(f)
	if !ok {
		// f is integral and out of every integer range: at least 1 apart.
		return math.Max(math.Abs(n.float()-f), 1)
	}
	k := gap(n, whole)
	switch c, _ := compareScalars(n, whole); {
	case c > 0:
		return k - frac
	case c < 0:
		return k + frac
	}
	return math.Abs(frac)
}

// sizer is implemented by custom collections that know their element count.
type sizer interface {
	Len() int
}

// sizeOf returns the element count of strings (in runes), slices, arrays,
// maps, channels and Len() implementers.
func sizeOf(v any) (int, bool) {
	if s, ok := v.(sizer); ok {
		return s.Len(), true
	}
	rv, ok := deref(reflect.ValueOf(v))
	if !ok {
		return 0, false
	}
	switch rv.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), true
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), true
	}
	if rv.CanInterface() {
		if s, ok := rv.Interface().(sizer); ok {
			return s.Len(), true
		}
	}
	return 0, false
}

// textOf extracts the text a pattern or blank check applies to.
func textOf(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	case fmt.Stringer:
		return x.String(), true
	}
	rv, ok := deref(reflect.ValueOf(v))
	if !ok {
		return "", false
	}
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return string(rv.Bytes()), true
	}
	return "", false
}

// boolOf extracts a boolean, including named bool types.
func boolOf(v any) (bool, bool) {
	rv, ok := deref(reflect.ValueOf(v))
	if !ok || rv.Kind() != reflect.Bool {
		return false, false
	}
	return rv.Bool(), true
}

// isAbsent reports whether v carries no value: untyped nil, or a nil
// pointer or interface. Nil slices and maps are present and empty.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	_, ok := deref(reflect.ValueOf(v))
	return !ok
}

// deref follows pointers and interfaces. ok is false when a nil is hit.
func deref(rv reflect.Value) (reflect.Value, bool) {
	for {
		if !rv.IsValid() {
			return rv, false
		}
		switch rv.Kind() {
		case reflect.Pointer, reflect.Interface:
			if rv.IsNil() {
				return rv, false
			}
			rv = rv.Elem()
		default:
			return rv, true
		}
	}
}

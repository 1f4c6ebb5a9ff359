package heuristic

import "fmt"

// Number is the set of scalar domains the distance primitives accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Operator names a branch comparison.
type Operator string

const (
	OpEqual       Operator = "Equality"
	OpLessThan    Operator = "LessThan"
	OpLessOrEqual Operator = "LessOrEqual"
)

// lessThanOffset keeps 1/(offset+gap) finite at gap 0 and below 1.
const lessThanOffset = 1.1

// Compare computes the truthness of "a op b" for an intercepted branch.
func Compare[N Number](op Operator, a, b N) (Truthness, error) {
	x, y := mustScalar(a), mustScalar(b)
	switch op {
	case OpEqual:
		return equality(x, y), nil
	case OpLessThan:
		return lessThan(x, y), nil
	case OpLessOrEqual:
		return lessOrEqual(x, y), nil
	}
	return Truthness{}, fmt.Errorf("%w: unsupported comparison operator %q", ErrInvalidInput, op)
}

// Equal returns the truthness of a == b.
//
//	OfTrue  = 1 - d/(d+1), d = |a-b|
//	OfFalse = 1 if a != b, else 0
func Equal[N Number](a, b N) Truthness {
	return equality(mustScalar(a), mustScalar(b))
}

// LessThan returns the truthness of a < b.
//
//	OfTrue  = 1 if a < b,  else 1/(1.1 + (a-b))
//	OfFalse = 1 if a >= b, else 1/(1.1 + (b-a))
func LessThan[N Number](a, b N) Truthness {
	return lessThan(mustScalar(a), mustScalar(b))
}

// LessOrEqual returns the truthness of a <= b, i.e. NOT(b < a).
func LessOrEqual[N Number](a, b N) Truthness {
	return lessOrEqual(mustScalar(a), mustScalar(b))
}

// NormalizedDistance maps a non-negative gap into [0,1): 0 at 0, and
// approaching 1 as the gap grows.
func NormalizedDistance(d float64) float64 {
	if d <= 0 {
		return 0
	}
	return d / (d + 1)
}

func equality(a, b scalar) Truthness {
	if c, ok := compareScalars(a, b); ok && c == 0 {
		return Truthness{OfTrue: 1, OfFalse: 0}
	}
	// 1 - d/(d+1) == 1/(d+1), which stays positive for every finite gap.
	return Truthness{OfTrue: positive(1 / (1 + gap(a, b))), OfFalse: 1}
}

func lessThan(a, b scalar) Truthness {
	c, ok := compareScalars(a, b)
	if !ok {
		// NaN is unordered: a < b is false.
		return Truthness{OfTrue: minDegree, OfFalse: 1}
	}
	miss := positive(1 / (lessThanOffset + gap(a, b)))
	if c < 0 {
		return Truthness{OfTrue: 1, OfFalse: miss}
	}
	return Truthness{OfTrue: miss, OfFalse: 1}
}

func lessOrEqual(a, b scalar) Truthness {
	if a.isNaN() || b.isNaN() {
		return Truthness{OfTrue: minDegree, OfFalse: 1}
	}
	return lessThan(b, a).Invert()
}

func mustScalar(v any) scalar {
	s, ok := scalarOf(v)
	if !ok {
		panic(fmt.Sprintf("heuristic: %T is not numeric", v))
	}
	return s
}

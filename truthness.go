package heuristic

import (
	"fmt"
	"math"
)

// Truthness is a pair of heuristic degrees in [0,1] describing how close a
// predicate is to being true (OfTrue) and to being false (OfFalse).
//
// The two degrees are computed independently and need not sum to 1. A
// degree equal to 1 means that outcome holds. Every degree produced by this
// package is strictly positive, with one exception: equality reports
// OfFalse == 0 when the compared values are identical.
type Truthness struct {
	OfTrue  float64
	OfFalse float64
}

// minDegree is the floor applied to computed degrees that would otherwise
// underflow to 0 (gaps near the float64 limits).
const minDegree = math.SmallestNonzeroFloat64

// belowOne is the largest float64 strictly less than 1.
var belowOne = math.Nextafter(1, 0)

// NewTruthness builds a Truthness, rejecting degrees outside [0,1] and NaN.
func NewTruthness(ofTrue, ofFalse float64) (Truthness, error) {
	if !validDegree(ofTrue) || !validDegree(ofFalse) {
		return Truthness{}, fmt.Errorf("%w: truthness degrees must lie in [0,1], got (%v, %v)",
			ErrInvalidInput, ofTrue, ofFalse)
	}
	return Truthness{OfTrue: ofTrue, OfFalse: ofFalse}, nil
}

// MustTruthness is like NewTruthness but panics on invalid degrees.
func MustTruthness(ofTrue, ofFalse float64) Truthness {
	t, err := NewTruthness(ofTrue, ofFalse)
	if err != nil {
		panic(err)
	}
	return t
}

func validDegree(d float64) bool {
	return d >= 0 && d <= 1
}

// IsTrue reports whether the predicate holds.
func (t Truthness) IsTrue() bool {
	return t.OfTrue == 1
}

// IsFalse reports whether the negated predicate holds.
func (t Truthness) IsFalse() bool {
	return t.OfFalse == 1
}

// Invert swaps the degrees: the truthness of NOT p.
func (t Truthness) Invert() Truthness {
	return Truthness{OfTrue: t.OfFalse, OfFalse: t.OfTrue}
}

// And is the conjunction of t and u: as true as the least true side, and
// false as soon as either side is.
func (t Truthness) And(u Truthness) Truthness {
	return Truthness{
		OfTrue:  math.Min(t.OfTrue, u.OfTrue),
		OfFalse: math.Max(t.OfFalse, u.OfFalse),
	}
}

// Or is the disjunction of t and u.
func (t Truthness) Or(u Truthness) Truthness {
	return Truthness{
		OfTrue:  math.Max(t.OfTrue, u.OfTrue),
		OfFalse: math.Min(t.OfFalse, u.OfFalse),
	}
}

func (t Truthness) String() string {
	return fmt.Sprintf("Truthness(ofTrue=%g, ofFalse=%g)", t.OfTrue, t.OfFalse)
}

// Average returns the arithmetic mean of OfTrue and, independently, of
// OfFalse across ts. It fails on an empty slice.
//
// The mean is exactly 1 only when every term is, and raising any single
// term from below 1 to 1 strictly raises the mean. Terms within
// ceilingMargin(len(ts)) of 1 are counted at that margin so the rise
// survives rounding. The sums are compensated and accumulated in slice
// order, so identical inputs always give bit-identical outputs.
func Average(ts ...Truthness) (Truthness, error) {
	if len(ts) == 0 {
		return Truthness{}, fmt.Errorf("%w: cannot average zero truthness values", ErrInvalidInput)
	}

	ceiling := 1 - ceilingMargin(len(ts))
	var ofTrue, ofFalse compensatedSum
	allTrue, allFalse := true, true
	for _, t := range ts {
		ofTrue.add(capBelow(t.OfTrue, ceiling))
		ofFalse.add(capBelow(t.OfFalse, ceiling))
		allTrue = allTrue && t.IsTrue()
		allFalse = allFalse && t.IsFalse()
	}

	n := float64(len(ts))
	avg := Truthness{OfTrue: ofTrue.value() / n, OfFalse: ofFalse.value() / n}
	avg.OfTrue = pinUnit(avg.OfTrue, allTrue)
	avg.OfFalse = pinUnit(avg.OfFalse, allFalse)
	return avg, nil
}

// ceilingMargin is how far below 1 a term must sit for a fix to 1 to move
// the mean of n terms by several ulps. The summation error grows with n.
func ceilingMargin(n int) float64 {
	return math.Min(float64(n)*0x1p-48, 0.5)
}

// capBelow leaves exact 1s alone and holds every other degree at or
// below ceiling.
func capBelow(d, ceiling float64) float64 {
	if d == 1 {
		return 1
	}
	return math.Min(d, ceiling)
}

// compensatedSum is a Neumaier running sum.
type compensatedSum struct {
	sum, c float64
}

func (s *compensatedSum) add(x float64) {
	t := s.sum + x
	if math.Abs(s.sum) >= math.Abs(x) {
		s.c += (s.sum - t) + x
	} else {
		s.c += (x - t) + s.sum
	}
	s.sum = t
}

func (s *compensatedSum) value() float64 {
	return s.sum + s.c
}

func pinUnit(d float64, all bool) float64 {
	switch {
	case all:
		return 1
	case d >= 1:
		return belowOne
	}
	return d
}

// binary maps a plain boolean outcome to a truthness, using miss for the
// degree of the outcome that did not happen.
func binary(ok bool, miss float64) Truthness {
	if ok {
		return Truthness{OfTrue: 1, OfFalse: miss}
	}
	return Truthness{OfTrue: miss, OfFalse: 1}
}

// positive clamps a computed degree into (0,1).
func positive(d float64) float64 {
	switch {
	case math.IsNaN(d) || d < minDegree:
		return minDegree
	case d >= 1:
		return belowOne
	}
	return d
}

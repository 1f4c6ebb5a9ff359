package heuristic

import (
	"errors"
	"math"
	"testing"
)

func objectTruthness(t *testing.T, set ConstraintSet) Truthness {
	t.Helper()
	tr, err := ObjectTruthness(set)
	if err != nil {
		t.Fatalf("ObjectTruthness failed: %v", err)
	}
	return tr
}

func TestObjectTruthness_EmptySet(t *testing.T) {
	for _, set := range []ConstraintSet{nil, {}} {
		if _, err := ObjectTruthness(set); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Empty set should fail with ErrInvalidInput, got %v", err)
		}
	}
}

func TestObjectTruthness_PropagatesInvalidConstraint(t *testing.T) {
	set := ConstraintSet{NotNull("a", 1), {Property: "b", Kind: "Unknown"}}
	if _, err := ObjectTruthness(set); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Unknown kind should fail with ErrInvalidInput, got %v", err)
	}
}

// TestObjectTruthness_SingleMin scores an object with one Min(1) property.
func TestObjectTruthness_SingleMin(t *testing.T) {
	score := func(x int) Truthness {
		return objectTruthness(t, ConstraintSet{Min("x", 1, x)})
	}

	t42 := score(42)
	if !t42.IsTrue() || t42.IsFalse() {
		t.Errorf("x=42: expected true and not false, got %v", t42)
	}

	tm5 := score(-5)
	if tm5.IsTrue() || !tm5.IsFalse() {
		t.Errorf("x=-5: expected false, got %v", tm5)
	}

	tm100 := score(-100)
	if tm100.IsTrue() || !tm100.IsFalse() {
		t.Errorf("x=-100: expected false, got %v", tm100)
	}

	if !(tm5.OfTrue > tm100.OfTrue) {
		t.Errorf("x=-5 should be closer than x=-100: %v vs %v", tm5, tm100)
	}

	t1 := score(1)
	if !t1.IsTrue() || t1.IsFalse() {
		t.Errorf("x=1: expected true and not false, got %v", t1)
	}

	t.Logf("✓ Min(1): x=-100 → %.4f, x=-5 → %.4f, x=1 → %.4f", tm100.OfTrue, tm5.OfTrue, t1.OfTrue)
}

func assertSameOfTrue(t *testing.T, want, got Truthness) {
	t.Helper()
	if math.Abs(want.OfTrue-got.OfTrue) > 1e-5 {
		t.Errorf("OfTrue mismatch: want %.8f, got %.8f", want.OfTrue, got.OfTrue)
	}
}

type intBean struct {
	a, b, c, d, f int
}

func (b intBean) constraints() ConstraintSet {
	return ConstraintSet{
		Min("a", 42, b.a),
		Max("b", 666, b.b),
		Range("c", -5, -2, true, true, b.c),
		Positive("d", b.d),
		Negative("f", b.f),
	}
}

func TestObjectTruthness_IntBean(t *testing.T) {
	var bean intBean

	t0 := objectTruthness(t, bean.constraints())
	AssertViolated(t, t0)

	bean.a = 50
	t1 := objectTruthness(t, bean.constraints())
	AssertViolated(t, t1)
	AssertImproves(t, t0, t1)

	bean.b = 1000 // over max 666
	t2 := objectTruthness(t, bean.constraints())
	AssertViolated(t, t2)
	AssertImproves(t, t2, t1)

	bean.b = 33
	bean.c = -3
	t3 := objectTruthness(t, bean.constraints())
	AssertViolated(t, t3)
	AssertImproves(t, t1, t3)

	bean.d = 1
	t4 := objectTruthness(t, bean.constraints())
	AssertViolated(t, t4)
	AssertImproves(t, t3, t4)

	bean.f = -1
	t5 := objectTruthness(t, bean.constraints())
	AssertHolds(t, t5)
	if t5.IsFalse() {
		t.Errorf("Valid bean should not be false: %v", t5)
	}
}

type stringBean struct {
	a, b, c, d, e, f any
	g, h, i, l       any
}

func (s stringBean) constraints() ConstraintSet {
	return ConstraintSet{
		NotNull("a", s.a),
		Null("b", s.b),
		NotNull("c", s.c),
		NotBlank("d", s.d),
		Pattern("e", `e+`, s.e),
		Size("f", 2, 5, s.f),
		Size("g", 2, -1, s.g),
		NotEmpty("h", s.h),
		NotEmpty("i", s.i),
		Size("l", 1, -1, s.l),
	}
}

func TestObjectTruthness_StringBean(t *testing.T) {
	cfg := AssertionConfig{Epsilon: 1e-5}
	var bean stringBean
	score := func() Truthness { return objectTruthness(t, bean.constraints()) }

	t0 := score()
	AssertViolated(t, t0)

	bean.a = "foo"
	t1 := score()
	AssertImproves(t, t0, t1)

	bean.b = "foo" // must be null
	t2 := score()
	AssertImproves(t, t2, t1)

	bean.b = nil
	bean.c = "    "
	t3 := score()
	AssertImproves(t, t1, t3)

	bean.d = "hello"
	t4 := score()
	AssertImproves(t, t3, t4)

	bean.d = "   "
	t5 := score()
	AssertImproves(t, t5, t4)

	bean.d = "hello"
	bean.e = "eeeee"
	t6 := score()
	AssertSame(t, t4, t6, cfg) // absent pattern value is valid

	bean.e = "eeeeehhhh"
	t7 := score()
	AssertImproves(t, t7, t6)

	bean.e = "ee"
	bean.f = "1"
	t8 := score()
	AssertImproves(t, t8, t6) // absent size value was valid

	bean.f = "123456789"
	t9 := score()
	AssertImproves(t, t9, t8) // farther from the range

	bean.f = "1234"
	t10 := score()
	assertSameOfTrue(t, t6, t10) // absent and valid size are equally satisfying

	bean.g = []string{"a"}
	t11 := score()
	AssertImproves(t, t11, t10)

	bean.g = []string{"a", "b"}
	t12 := score()
	assertSameOfTrue(t, t10, t12)

	bean.h = []string{}
	t13 := score()
	AssertImproves(t, t12, t13) // empty beats absent

	bean.h = []string{"a"}
	t14 := score()
	AssertImproves(t, t13, t14)

	bean.i = [1]string{"foo"}
	t15 := score()
	AssertImproves(t, t14, t15)

	bean.l = map[string]string{}
	t16 := score()
	AssertImproves(t, t16, t15)

	bean.l.(map[string]string)["A"] = "A"
	t17 := score()
	AssertImproves(t, t16, t17)
	AssertHolds(t, t17)

	t.Logf("✓ StringBean climbed from %.4f to %.4f", t0.OfTrue, t17.OfTrue)
}

// TestObjectTruthness_FixingOneViolationAlwaysImproves fixes violated
// constraints one at a time, in every position, and expects a strict rise
// regardless of how many others are still violated.
func TestObjectTruthness_FixingOneViolationAlwaysImproves(t *testing.T) {
	broken := ConstraintSet{
		Min("a", 10, -50),
		NotBlank("b", nil),
		Pattern("c", `\d{3}`, "abc"),
		Size("d", 3, 4, []int{1}),
		Positive("e", -1e12),
		Equals("f", 7, 8),
	}
	fixed := ConstraintSet{
		Min("a", 10, 10),
		NotBlank("b", "x"),
		Pattern("c", `\d{3}`, "123"),
		Size("d", 3, 4, []int{1, 2, 3}),
		Positive("e", 0.5),
		Equals("f", 7, 7),
	}

	for i := range broken {
		set := append(ConstraintSet(nil), broken...)
		before := objectTruthness(t, set)
		set[i] = fixed[i]
		after := objectTruthness(t, set)
		AssertImproves(t, before, after)
	}

	current := append(ConstraintSet(nil), broken...)
	prev := objectTruthness(t, current)
	for i := range current {
		current[i] = fixed[i]
		next := objectTruthness(t, current)
		AssertImproves(t, prev, next)
		prev = next
	}
	AssertHolds(t, prev)
}

// TestObjectTruthness_FixingNearMissImproves fixes a constraint violated
// by a single ulp, which the rounding of a plain mean would swallow.
func TestObjectTruthness_FixingNearMissImproves(t *testing.T) {
	set := ConstraintSet{
		Equals("f", 1.0, math.Nextafter(1, 2)),
		Pattern("a", "x", "y"),
		Min("b", 0, -1),
	}
	before := objectTruthness(t, set)
	set[0] = Equals("f", 1.0, 1.0)
	after := objectTruthness(t, set)
	AssertImproves(t, before, after)

	t.Logf("✓ near miss: %.17g → %.17g", before.OfTrue, after.OfTrue)
}

func TestObjectTruthness_CeilingRequiresEveryConstraint(t *testing.T) {
	set := ConstraintSet{
		NotNull("a", "x"),
		Range("b", 0, 10, true, true, 5),
		Pattern("c", `[a-z]+`, "abc"),
	}
	AssertHolds(t, objectTruthness(t, set))

	set[1] = Range("b", 0, 10, true, false, 10)
	if objectTruthness(t, set).IsTrue() {
		t.Errorf("One violated constraint must keep the object below 1")
	}
}

// TestObjectTruthness_FlatWeighting checks the mean is taken over
// constraints, not properties.
func TestObjectTruthness_FlatWeighting(t *testing.T) {
	set := ConstraintSet{
		Min("x", 10, 0),
		Max("x", 100, 0),
		NotNull("y", nil),
	}
	got := objectTruthness(t, set)

	minX := 1 / 11.1
	absent := DefaultConfig().AbsentTruthness
	flat := (minX + 1 + absent) / 3
	perProperty := ((minX+1)/2 + absent) / 2

	if math.Abs(got.OfTrue-flat) > 1e-12 {
		t.Errorf("Expected flat mean %.12f, got %.12f (per-property would be %.12f)",
			flat, got.OfTrue, perProperty)
	}
}

func TestEvaluateObject_Report(t *testing.T) {
	set := ConstraintSet{
		NotNull("id", "u-1"),
		Min("age", 18, 12),
		Pattern("zip", `\d{5}`, "1234"),
	}

	r, err := EvaluateObject(set)
	if err != nil {
		t.Fatalf("EvaluateObject failed: %v", err)
	}
	if len(r.Results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(r.Results))
	}
	for i, res := range r.Results {
		if res.Constraint.Property != set[i].Property {
			t.Errorf("Result %d out of declaration order: %s", i, res.Constraint.Property)
		}
	}

	v := r.Violations()
	if len(v) != 2 || v[0].Constraint.Property != "age" || v[1].Constraint.Property != "zip" {
		t.Errorf("Unexpected violations: %+v", v)
	}

	overall, _ := ObjectTruthness(set)
	if overall != r.Overall {
		t.Errorf("Report overall %v differs from ObjectTruthness %v", r.Overall, overall)
	}
}

package heuristic

import (
	"fmt"
	"testing"
)

// AssertionConfig contains tolerances for the heuristic laws.
type AssertionConfig struct {
	// Allow OfFalse == 0 (only legitimate for an exact equality match)
	AllowZeroOfFalse bool

	// Absolute tolerance for "same truthness" comparisons
	Epsilon float64
}

// DefaultAssertionConfig returns strict tolerances.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		AllowZeroOfFalse: false,
		Epsilon:          1e-9,
	}
}

// AssertHolds verifies the predicate behind tr is satisfied.
func AssertHolds(t *testing.T, tr Truthness) {
	t.Helper()

	if !tr.IsTrue() {
		t.Errorf("Expected predicate to hold, got %v", tr)
	}
}

// AssertViolated verifies the predicate behind tr is not satisfied while
// still exposing a gradient (OfTrue > 0).
func AssertViolated(t *testing.T, tr Truthness) {
	t.Helper()

	if tr.IsTrue() {
		t.Errorf("Expected predicate to be violated, got %v", tr)
	}
	if tr.OfTrue <= 0 {
		t.Errorf("Violated predicate has a flat gradient: %v", tr)
	}
}

// AssertDegrees verifies both degrees lie in (0,1].
//
// A zero degree is a fitness plateau the search cannot climb out of.
func AssertDegrees(t *testing.T, tr Truthness, cfg AssertionConfig) {
	t.Helper()

	if tr.OfTrue <= 0 || tr.OfTrue > 1 {
		t.Errorf("OfTrue out of (0,1]: %v", tr)
	}
	lowFalse := tr.OfFalse <= 0
	if cfg.AllowZeroOfFalse {
		lowFalse = tr.OfFalse < 0
	}
	if lowFalse || tr.OfFalse > 1 {
		t.Errorf("OfFalse out of range: %v", tr)
	}
}

// AssertImproves verifies after is strictly closer to true than before.
func AssertImproves(t *testing.T, before, after Truthness) {
	t.Helper()

	if !(after.OfTrue > before.OfTrue) {
		t.Errorf("No improvement: OfTrue %.12g → %.12g", before.OfTrue, after.OfTrue)
	}
}

// AssertSame verifies two truthness values match within cfg.Epsilon.
func AssertSame(t *testing.T, want, got Truthness, cfg AssertionConfig) {
	t.Helper()

	if diff(want.OfTrue, got.OfTrue) > cfg.Epsilon || diff(want.OfFalse, got.OfFalse) > cfg.Epsilon {
		t.Errorf("Truthness mismatch: want %v, got %v", want, got)
	}
}

// AssertMonotone verifies a sequence ordered from farthest to closest to
// satisfying the predicate never moves backwards:
//
//	OfTrue[i+1] ≥ OfTrue[i] and OfFalse[i+1] ≤ OfFalse[i]
func AssertMonotone(t *testing.T, seq []Truthness) {
	t.Helper()

	var failures []string
	for i := 1; i < len(seq); i++ {
		if seq[i].OfTrue < seq[i-1].OfTrue {
			failures = append(failures, fmt.Sprintf(
				"  step %d: OfTrue %.12g → %.12g", i, seq[i-1].OfTrue, seq[i].OfTrue))
		}
		if seq[i].OfFalse > seq[i-1].OfFalse {
			failures = append(failures, fmt.Sprintf(
				"  step %d: OfFalse %.12g → %.12g", i, seq[i-1].OfFalse, seq[i].OfFalse))
		}
	}

	if len(failures) > 0 {
		t.Errorf("Gradient not monotone:\n%s", failures)
	}
}

// AssertHeuristicLaws runs the degree-range and monotonicity assertions
// over a sequence ordered toward satisfaction.
func AssertHeuristicLaws(t *testing.T, seq []Truthness) {
	t.Helper()

	cfg := DefaultAssertionConfig()

	t.Run("Degrees", func(t *testing.T) {
		for _, tr := range seq {
			AssertDegrees(t, tr, cfg)
		}
	})

	t.Run("Monotone", func(t *testing.T) {
		AssertMonotone(t, seq)
	})

	t.Logf("✓ %d samples: degrees in (0,1], gradient monotone", len(seq))
}

func diff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

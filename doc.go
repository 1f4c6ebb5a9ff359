// Package heuristic computes branch-distance fitness for search-based test
// generation.
//
// # Overview
//
// A plain branch outcome is binary: the search either covered it or not,
// and a flat fitness landscape gives the search nothing to climb. heuristic
// converts a predicate into a Truthness: two continuous degrees describing
// how close the predicate is to being true and how close it is to being
// false.
//
// # Architecture
//
// The package components:
//
//   - truthness   - the Truthness value type and its combinators
//   - distance    - primitives over scalar comparisons (==, <, <=)
//   - evaluate    - validation-style constraints on object properties
//   - aggregate   - one truthness per object, the mean of its constraints
//   - batch       - concurrent scoring of a population of objects
//   - assertions  - test helpers for the heuristic laws
//
// # Branch Comparisons
//
// At an intercepted comparison, ask how close each branch came:
//
//	t, err := heuristic.Compare(heuristic.OpLessThan, a, b)
//	if err != nil {
//	    return err
//	}
//	fitness := t.OfTrue // 1.0 when a < b, shrinking as a exceeds b
//
// The distance functions:
//
//	Equal:    OfTrue  = 1 - d/(d+1),        d = |a-b|
//	LessThan: OfTrue  = 1/(1.1 + (a-b))    when a ≥ b
//	          OfFalse = 1/(1.1 + (b-a))    when a < b
//
// Integer gaps are computed exactly over the full int64 and uint64
// domains, so extreme operands never overflow.
//
// # Object Constraints
//
// A collaborator extracts the validation rules declared on an object and
// the values of its properties, then asks for the object's fitness:
//
//	set := heuristic.ConstraintSet{
//	    heuristic.Min("age", 18, user.Age),
//	    heuristic.NotBlank("name", user.Name),
//	    heuristic.Size("tags", 1, 5, user.Tags),
//	}
//
//	t, err := heuristic.ObjectTruthness(set)
//	if errors.Is(err, heuristic.ErrInvalidInput) {
//	    // empty set, unknown kind or malformed parameters
//	}
//
// A nil value is meaningful. NotNull, NotBlank and NotEmpty treat it as
// their worst case; every other kind treats it as satisfied, because shape
// rules only apply to values that are present.
//
// # Aggregation
//
// The object truthness is the flat mean over constraints:
//
//	OfTrue(object) = Σ OfTrue(cᵢ) / N
//
// Fixing any one violated constraint strictly raises the mean, no matter
// how many others still fail. A strict AND (minimum) would hide that
// progress.
//
// # Determinism
//
// Every function is pure. Identical inputs give bit-identical outputs, and
// nothing is cached or shared, so any number of search workers may
// evaluate concurrently.
package heuristic

package heuristic

import "fmt"

// Result pairs a constraint with the truthness it evaluated to.
type Result struct {
	Constraint Constraint
	Truthness  Truthness
}

// Report is the object-level outcome of evaluating a ConstraintSet.
type Report struct {
	Overall Truthness
	Results []Result // declaration order
}

// Violations returns the results whose constraint does not hold.
func (r Report) Violations() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Truthness.IsTrue() {
			out = append(out, res)
		}
	}
	return out
}

// ObjectTruthness scores a whole object with the default configuration.
func ObjectTruthness(set ConstraintSet) (Truthness, error) {
	return defaultEvaluator.ObjectTruthness(set)
}

// EvaluateObject is ObjectTruthness with the per-constraint breakdown.
func EvaluateObject(set ConstraintSet) (Report, error) {
	return defaultEvaluator.EvaluateObject(set)
}

// ObjectTruthness combines the truthness of every constraint of one object.
func (e *Evaluator) ObjectTruthness(set ConstraintSet) (Truthness, error) {
	r, err := e.EvaluateObject(set)
	if err != nil {
		return Truthness{}, err
	}
	return r.Overall, nil
}

// EvaluateObject evaluates every constraint in set and averages them.
//
// The mean is taken flat over constraints, not per property: a property
// with two constraints weighs twice. Averaging keeps the fitness climbing
// each time one violated constraint is fixed, even while others still
// fail. An empty set is caller misuse.
func (e *Evaluator) EvaluateObject(set ConstraintSet) (Report, error) {
	if len(set) == 0 {
		return Report{}, fmt.Errorf("%w: object has no constraints", ErrInvalidInput)
	}

	results := make([]Result, len(set))
	ts := make([]Truthness, len(set))
	for i, c := range set {
		t, err := e.Evaluate(c)
		if err != nil {
			return Report{}, err
		}
		results[i] = Result{Constraint: c, Truthness: t}
		ts[i] = t
	}

	overall, err := Average(ts...)
	if err != nil {
		return Report{}, err
	}
	return Report{Overall: overall, Results: results}, nil
}

package heuristic

import (
	"fmt"
	"reflect"
	"regexp"
	"unicode"
)

// Evaluator turns constraint descriptors into truthness values. It holds
// only its immutable Config and is safe for concurrent use.
type Evaluator struct {
	cfg Config
}

// NewEvaluator validates cfg and returns an Evaluator using it.
func NewEvaluator(cfg Config) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{cfg: cfg}, nil
}

var defaultEvaluator = &Evaluator{cfg: DefaultConfig()}

// Evaluate computes the truthness of c with the default configuration.
func Evaluate(c Constraint) (Truthness, error) {
	return defaultEvaluator.Evaluate(c)
}

// Evaluate computes the truthness of one constraint.
//
// An absent value violates NotNull, NotBlank and NotEmpty as badly as
// those kinds allow. For every other kind absence satisfies the
// constraint: shape rules only apply to present values, and presence is a
// separate constraint.
func (e *Evaluator) Evaluate(c Constraint) (Truthness, error) {
	if err := c.Validate(); err != nil {
		return Truthness{}, err
	}

	miss := e.cfg.MissTruthness
	if isAbsent(c.Value) {
		if c.Kind.assertsPresence() {
			return Truthness{OfTrue: e.cfg.AbsentTruthness, OfFalse: 1}, nil
		}
		return binary(true, miss), nil
	}

	switch c.Kind {
	case KindNotNull:
		return binary(true, miss), nil
	case KindNull:
		return binary(false, miss), nil
	case KindNotBlank:
		return notBlank(c)
	case KindNotEmpty:
		n, err := sizeFor(c)
		if err != nil {
			return Truthness{}, err
		}
		return atLeast(intScalar(int64(n)), intScalar(1)), nil
	case KindSize:
		return size(c)
	case KindPattern:
		return e.pattern(c)
	case KindPositive, KindPositiveOrZero, KindNegative, KindNegativeOrZero:
		return signed(c)
	case KindRange:
		return e.numericRange(c)
	case KindEquality:
		return e.equals(c)
	case KindLessThan:
		v, t, err := operands(c)
		if err != nil {
			return Truthness{}, err
		}
		return lessThan(v, t), nil
	case KindAssertTrue, KindAssertFalse:
		b, ok := boolOf(c.Value)
		if !ok {
			return Truthness{}, shapeError(c, "a boolean")
		}
		return binary(b == (c.Kind == KindAssertTrue), miss), nil
	}
	return Truthness{}, fmt.Errorf("%w: unsupported constraint kind %q", ErrInvalidInput, c.Kind)
}

func notBlank(c Constraint) (Truthness, error) {
	s, ok := textOf(c.Value)
	if !ok {
		return Truthness{}, shapeError(c, "text")
	}
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return atLeast(intScalar(int64(n)), intScalar(1)), nil
}

func size(c Constraint) (Truthness, error) {
	n, err := sizeFor(c)
	if err != nil {
		return Truthness{}, err
	}
	v := intScalar(int64(n))
	t := atLeast(v, intScalar(int64(c.Params.MinSize)))
	if c.Params.MaxSize >= 0 {
		t = t.And(atMost(v, intScalar(int64(c.Params.MaxSize))))
	}
	return t, nil
}

func (e *Evaluator) pattern(c Constraint) (Truthness, error) {
	s, ok := textOf(c.Value)
	if !ok {
		return Truthness{}, shapeError(c, "text")
	}
	re, err := regexp.Compile(`^(?:` + c.Params.Regexp + `)$`)
	if err != nil {
		return Truthness{}, fmt.Errorf("%w: constraint %q: bad pattern: %v", ErrInvalidInput, c.Property, err)
	}
	// No character-level distance: a miss is a flat small constant.
	return binary(re.MatchString(s), e.cfg.MissTruthness), nil
}

func (e *Evaluator) numericRange(c Constraint) (Truthness, error) {
	v, ok := scalarOf(c.Value)
	if !ok {
		return Truthness{}, shapeError(c, "a number")
	}

	t := binary(true, e.cfg.MissTruthness)
	bounded := false
	if c.Params.Min != nil {
		lo := mustScalar(c.Params.Min)
		if c.Params.MinInclusive {
			t = atLeast(v, lo)
		} else {
			t = lessThan(lo, v)
		}
		bounded = true
	}
	if c.Params.Max != nil {
		hi := mustScalar(c.Params.Max)
		var upper Truthness
		if c.Params.MaxInclusive {
			upper = atMost(v, hi)
		} else {
			upper = lessThan(v, hi)
		}
		if bounded {
			t = t.And(upper)
		} else {
			t = upper
		}
	}
	return t, nil
}

func (e *Evaluator) equals(c Constraint) (Truthness, error) {
	v, vok := scalarOf(c.Value)
	t, tok := scalarOf(c.Params.Target)
	if vok && tok {
		return equality(v, t), nil
	}
	if vok != tok {
		return Truthness{}, shapeError(c, "the same shape as the target")
	}
	if reflect.DeepEqual(indirect(c.Value), indirect(c.Params.Target)) {
		return Truthness{OfTrue: 1, OfFalse: 0}, nil
	}
	return Truthness{OfTrue: e.cfg.MissTruthness, OfFalse: 1}, nil
}

// signed reduces the sign kinds to a comparison against 0.
func signed(c Constraint) (Truthness, error) {
	v, ok := scalarOf(c.Value)
	if !ok {
		return Truthness{}, shapeError(c, "a number")
	}
	zero := intScalar(0)
	switch c.Kind {
	case KindPositive:
		return lessThan(zero, v), nil
	case KindPositiveOrZero:
		return lessOrEqual(zero, v), nil
	case KindNegative:
		return lessThan(v, zero), nil
	}
	return lessOrEqual(v, zero), nil
}

// atLeast is v >= bound, i.e. NOT(v < bound).
func atLeast(v, bound scalar) Truthness {
	return lessOrEqual(bound, v)
}

// atMost is v <= bound.
func atMost(v, bound scalar) Truthness {
	return lessOrEqual(v, bound)
}

func operands(c Constraint) (scalar, scalar, error) {
	v, ok := scalarOf(c.Value)
	if !ok {
		return scalar{}, scalar{}, shapeError(c, "a number")
	}
	t, ok := scalarOf(c.Params.Target)
	if !ok {
		return scalar{}, scalar{}, fmt.Errorf("%w: constraint %q: target %T is not a number",
			ErrInvalidInput, c.Property, c.Params.Target)
	}
	return v, t, nil
}

func sizeFor(c Constraint) (int, error) {
	n, ok := sizeOf(c.Value)
	if !ok {
		return 0, shapeError(c, "a sized value")
	}
	return n, nil
}

// indirect dereferences pointers so that equal pointees compare equal.
func indirect(v any) any {
	rv, ok := deref(reflect.ValueOf(v))
	if !ok {
		return nil
	}
	return rv.Interface()
}

func shapeError(c Constraint, want string) error {
	return fmt.Errorf("%w: constraint %q (%s) needs %s, got %T",
		ErrInvalidInput, c.Property, c.Kind, want, c.Value)
}

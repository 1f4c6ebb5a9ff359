package heuristic

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Kind identifies the rule a Constraint declares.
type Kind string

const (
	KindEquality       Kind = "Equality"
	KindLessThan       Kind = "LessThan"
	KindNotNull        Kind = "NotNull"
	KindNull           Kind = "Null"
	KindNotBlank       Kind = "NotBlank"
	KindNotEmpty       Kind = "NotEmpty"
	KindPattern        Kind = "Pattern"
	KindSize           Kind = "SizeRange"
	KindPositive       Kind = "Positive"
	KindPositiveOrZero Kind = "PositiveOrZero"
	KindNegative       Kind = "Negative"
	KindNegativeOrZero Kind = "NegativeOrZero"
	KindRange          Kind = "Range"
	KindAssertTrue     Kind = "AssertTrue"
	KindAssertFalse    Kind = "AssertFalse"
)

var knownKinds = map[Kind]bool{
	KindEquality: true, KindLessThan: true, KindNotNull: true, KindNull: true,
	KindNotBlank: true, KindNotEmpty: true, KindPattern: true, KindSize: true,
	KindPositive: true, KindPositiveOrZero: true, KindNegative: true,
	KindNegativeOrZero: true, KindRange: true, KindAssertTrue: true, KindAssertFalse: true,
}

// assertsPresence reports whether an absent value violates the kind.
func (k Kind) assertsPresence() bool {
	return k == KindNotNull || k == KindNotBlank || k == KindNotEmpty
}

// Params carries the kind-specific parameters of a Constraint. Only the
// fields relevant to the kind are read.
type Params struct {
	// Target is the right-hand operand of Equality and LessThan.
	Target any `validate:"-"`

	// Range bounds. A nil bound is unbounded on that side.
	Min          any `validate:"-"`
	Max          any `validate:"-"`
	MinInclusive bool
	MaxInclusive bool

	// Regexp is matched against the whole value for Pattern.
	Regexp string

	// SizeRange bounds. MaxSize < 0 means unbounded.
	MinSize int `validate:"gte=0"`
	MaxSize int
}

// Constraint is one declared rule on one named property, together with the
// value observed for that property. A nil Value means the property is
// absent, which is meaningful input rather than an error.
type Constraint struct {
	Property string `validate:"required"`
	Kind     Kind   `validate:"required,constraintkind"`
	Params   Params
	Value    any `validate:"-"`
}

// ConstraintSet holds every Constraint declared for one evaluated object.
// It is built immediately before evaluation and never mutated here.
type ConstraintSet []Constraint

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// descriptorValidator returns the shared validator. It is configured once
// and only read afterwards, so concurrent use is safe.
func descriptorValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("constraintkind", func(fl validator.FieldLevel) bool {
			return knownKinds[Kind(fl.Field().String())]
		})
		validate.RegisterStructValidation(validateParamsForKind, Constraint{})
	})
	return validate
}

func validateParamsForKind(sl validator.StructLevel) {
	c := sl.Current().Interface().(Constraint)
	switch c.Kind {
	case KindSize:
		if c.Params.MaxSize >= 0 && c.Params.MaxSize < c.Params.MinSize {
			sl.ReportError(c.Params.MaxSize, "MaxSize", "MaxSize", "gtefield", "MinSize")
		}
	case KindRange:
		if c.Params.Min != nil {
			if _, ok := scalarOf(c.Params.Min); !ok {
				sl.ReportError(c.Params.Min, "Min", "Min", "numeric", "")
			}
		}
		if c.Params.Max != nil {
			if _, ok := scalarOf(c.Params.Max); !ok {
				sl.ReportError(c.Params.Max, "Max", "Max", "numeric", "")
			}
		}
	case KindEquality, KindLessThan:
		if c.Params.Target == nil {
			sl.ReportError(c.Params.Target, "Target", "Target", "required", "")
		}
	}
}

// Validate checks the descriptor itself (not the observed value).
func (c Constraint) Validate() error {
	if err := descriptorValidator().Struct(c); err != nil {
		return fmt.Errorf("%w: constraint %q (%s): %v", ErrInvalidInput, c.Property, c.Kind, err)
	}
	return nil
}

// NotNull declares that property must be present.
func NotNull(property string, value any) Constraint {
	return Constraint{Property: property, Kind: KindNotNull, Value: value}
}

// Null declares that property must be absent.
func Null(property string, value any) Constraint {
	return Constraint{Property: property, Kind: KindNull, Value: value}
}

// NotBlank declares that property must hold at least one non-whitespace character.
func NotBlank(property string, value any) Constraint {
	return Constraint{Property: property, Kind: KindNotBlank, Value: value}
}

// NotEmpty declares that property must be present with size >= 1.
func NotEmpty(property string, value any) Constraint {
	return Constraint{Property: property, Kind: KindNotEmpty, Value: value}
}

// Pattern declares that property must fully match regexp.
func Pattern(property, regexp string, value any) Constraint {
	return Constraint{Property: property, Kind: KindPattern, Params: Params{Regexp: regexp}, Value: value}
}

// Size declares minSize <= size(property) <= maxSize. A negative maxSize is unbounded.
func Size(property string, minSize, maxSize int, value any) Constraint {
	return Constraint{Property: property, Kind: KindSize, Params: Params{MinSize: minSize, MaxSize: maxSize}, Value: value}
}

// Positive declares property > 0.
func Positive(property string, value any) Constraint {
	return Constraint{Property: property, Kind: KindPositive, Value: value}
}

// PositiveOrZero declares property >= 0.
func PositiveOrZero(property string, value any) Constraint {
	return Constraint{Property: property, Kind: KindPositiveOrZero, Value: value}
}

// Negative declares property < 0.
func Negative(property string, value any) Constraint {
	return Constraint{Property: property, Kind: KindNegative, Value: value}
}

// NegativeOrZero declares property <= 0.
func NegativeOrZero(property string, value any) Constraint {
	return Constraint{Property: property, Kind: KindNegativeOrZero, Value: value}
}

// Range declares a two-sided numeric bound. Either bound may be nil.
func Range(property string, lo, hi any, minInclusive, maxInclusive bool, value any) Constraint {
	return Constraint{
		Property: property,
		Kind:     KindRange,
		Params:   Params{Min: lo, Max: hi, MinInclusive: minInclusive, MaxInclusive: maxInclusive},
		Value:    value,
	}
}

// Min declares property >= bound.
func Min(property string, bound, value any) Constraint {
	return Range(property, bound, nil, true, false, value)
}

// Max declares property <= bound.
func Max(property string, bound, value any) Constraint {
	return Range(property, nil, bound, false, true, value)
}

// DecimalMin declares property >= bound, or > bound when inclusive is false.
func DecimalMin(property string, bound any, inclusive bool, value any) Constraint {
	return Range(property, bound, nil, inclusive, false, value)
}

// DecimalMax declares property <= bound, or < bound when inclusive is false.
func DecimalMax(property string, bound any, inclusive bool, value any) Constraint {
	return Range(property, nil, bound, false, inclusive, value)
}

// Equals declares property == target. Numbers compare by value across
// types; anything else compares structurally after dereferencing pointers.
func Equals(property string, target, value any) Constraint {
	return Constraint{Property: property, Kind: KindEquality, Params: Params{Target: target}, Value: value}
}

// Below declares property < target.
func Below(property string, target, value any) Constraint {
	return Constraint{Property: property, Kind: KindLessThan, Params: Params{Target: target}, Value: value}
}

// AssertTrue declares that a boolean property must be true.
func AssertTrue(property string, value any) Constraint {
	return Constraint{Property: property, Kind: KindAssertTrue, Value: value}
}

// AssertFalse declares that a boolean property must be false.
func AssertFalse(property string, value any) Constraint {
	return Constraint{Property: property, Kind: KindAssertFalse, Value: value}
}

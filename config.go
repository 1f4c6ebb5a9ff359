package heuristic

import (
	"fmt"
	"log/slog"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config tunes the constants of the constraint evaluator and the
// concurrency of batch scoring.
type Config struct {
	// MissTruthness is the degree reported for the outcome that did not
	// happen in a purely binary check (pattern, null, assert).
	MissTruthness float64 `yaml:"miss_truthness" validate:"gt=0,lt=1"`

	// AbsentTruthness is OfTrue for a presence-asserting constraint whose
	// value is absent. It sits below every distance a present value can
	// produce for the same kind.
	AbsentTruthness float64 `yaml:"absent_truthness" validate:"gt=0,ltefield=MissTruthness"`

	// Workers bounds the goroutines ScoreAll runs at once.
	Workers int `yaml:"workers" validate:"gte=1"`

	// Logger receives batch diagnostics. Nil means slog.Default().
	Logger *slog.Logger `yaml:"-" validate:"-"`
}

// DefaultConfig returns the constants the heuristics were calibrated with.
func DefaultConfig() Config {
	return Config{
		MissTruthness:   0.01,
		AbsentTruthness: 0.001,
		Workers:         runtime.NumCPU(),
	}
}

// ParseConfig reads a YAML document over DefaultConfig. Keys that are not
// present keep their default.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse config: %v", ErrInvalidInput, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the ranges of every tunable.
func (c Config) Validate() error {
	if err := descriptorValidator().Struct(c); err != nil {
		return fmt.Errorf("%w: config: %v", ErrInvalidInput, err)
	}
	// An absent value must score below the worst present NotEmpty/NotBlank
	// value, whose size gap to the bound 1 is exactly 1.
	if limit := 1 / (lessThanOffset + 1); c.AbsentTruthness >= limit {
		return fmt.Errorf("%w: config: absent_truthness %g must be below %g",
			ErrInvalidInput, c.AbsentTruthness, limit)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

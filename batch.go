package heuristic

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Score is the outcome of scoring one ConstraintSet in a batch.
type Score struct {
	Index     int       // position in the input slice
	Truthness Truthness // zero when Err is set
	Err       error     // per-set ErrInvalidInput, never a context error
}

// Statistics summarizes OfTrue across a scored population.
type Statistics struct {
	Count     int
	Satisfied int // sets whose overall truthness is true
	Errors    int
	Mean      float64
	Stddev    float64
	Min       float64
	Median    float64
	Max       float64
}

// ScoreAll scores every set with at most cfg.Workers goroutines.
//
// Sets are independent: a malformed set is recorded in its Score and does
// not stop the others. Only cancellation of ctx aborts the batch, in which
// case ctx.Err() is returned. Scores come back in input order.
func ScoreAll(ctx context.Context, sets []ConstraintSet, cfg Config) ([]Score, error) {
	e, err := NewEvaluator(cfg)
	if err != nil {
		return nil, err
	}
	log := cfg.logger()

	start := time.Now()
	scores := make([]Score, len(sets))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i, set := range sets {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			t, err := e.ObjectTruthness(set)
			scores[i] = Score{Index: i, Truthness: t, Err: err}
			if err != nil {
				log.DebugContext(gCtx, "constraint set rejected", "index", i, "error", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "batch scored",
		"sets", len(sets),
		"workers", cfg.Workers,
		"elapsed", time.Since(start))
	return scores, nil
}

// Summarize computes population statistics over the successful scores.
func Summarize(scores []Score) Statistics {
	var st Statistics
	values := make([]float64, 0, len(scores))
	for _, s := range scores {
		if s.Err != nil {
			st.Errors++
			continue
		}
		values = append(values, s.Truthness.OfTrue)
		if s.Truthness.IsTrue() {
			st.Satisfied++
		}
	}
	st.Count = len(values)
	if st.Count == 0 {
		return st
	}

	sort.Float64s(values)

	var sum float64
	for _, v := range values {
		sum += v
	}
	st.Mean = sum / float64(st.Count)

	var variance float64
	for _, v := range values {
		diff := v - st.Mean
		variance += diff * diff
	}
	st.Stddev = math.Sqrt(variance / float64(st.Count))

	st.Min = values[0]
	st.Max = values[len(values)-1]
	st.Median = values[len(values)/2]
	return st
}

// Errs joins the per-set errors of a batch, or returns nil.
func Errs(scores []Score) error {
	var errs []error
	for _, s := range scores {
		if s.Err != nil {
			errs = append(errs, s.Err)
		}
	}
	return errors.Join(errs...)
}

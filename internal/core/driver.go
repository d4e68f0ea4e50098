package core

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrStepBudgetExceeded is returned when a rule keeps changing the grid past
// the configured step budget.
var ErrStepBudgetExceeded = errors.New("step budget exceeded before reaching a fixed point")

// StepFunc applies one generation of a rule and reports whether any cell changed.
type StepFunc func() bool

// RunOptions tunes RunToFixedPoint.
type RunOptions struct {
	// MaxSteps bounds the number of step invocations, including the final
	// one that detects the fixed point. Zero means unbounded.
	MaxSteps int
	// Timed records wall-clock duration in Result.Elapsed.
	Timed bool
}

// Result summarizes a fixed-point run.
type Result struct {
	// Steps counts the invocations that changed the grid. The final no-op
	// invocation that detected the fixed point is not included.
	Steps   int
	Elapsed time.Duration
}

// RunToFixedPoint calls step until it reports no change. The context is
// checked before every step. On cancellation or an exhausted budget the
// partial Result is returned together with the error.
func RunToFixedPoint(ctx context.Context, step StepFunc, opts RunOptions) (Result, error) {
	var res Result
	var start time.Time
	if opts.Timed {
		start = time.Now()
	}
	finish := func() {
		if opts.Timed {
			res.Elapsed = time.Since(start)
		}
	}

	for calls := 0; ; calls++ {
		if err := ctx.Err(); err != nil {
			finish()
			return res, fmt.Errorf("fixed point interrupted after %d steps: %w", res.Steps, err)
		}
		if opts.MaxSteps > 0 && calls >= opts.MaxSteps {
			finish()
			return res, fmt.Errorf("%w: %d", ErrStepBudgetExceeded, opts.MaxSteps)
		}
		if !step() {
			finish()
			return res, nil
		}
		res.Steps++
	}
}

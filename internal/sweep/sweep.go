// Package sweep benchmarks cave generation over a grid of thresholds and
// seeds, one independent session per job.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"time"

	"cave-ca/internal/sims/cave"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Job identifies one run.
type Job struct {
	Thresh int
	Seed   int64
}

// Outcome is the result of one job. Err is set when the run did not reach a
// fixed point, for example because the step budget ran out.
type Outcome struct {
	Job
	Report    cave.Report
	RockShare float64
	Trees     int
	Err       error
}

// Converged reports whether both phases reached a fixed point.
func (o Outcome) Converged() bool { return o.Err == nil }

// String formats the outcome as one summary line. The seed is the job's, so
// runs that failed before producing a report still name it.
func (o Outcome) String() string {
	if !o.Converged() {
		return fmt.Sprintf("thresh=%d seed=%d did not converge: %v", o.Thresh, o.Seed, o.Err)
	}
	return fmt.Sprintf("thresh=%d seed=%d cave=%d steps/%s growth=%d steps/%s rock=%.1f%% trees=%d",
		o.Thresh, o.Seed, o.Report.CaveSteps, o.Report.CaveTime.Round(time.Microsecond),
		o.Report.GrowthSteps, o.Report.GrowthTime.Round(time.Microsecond), o.RockShare*100, o.Trees)
}

// Options configures a sweep.
type Options struct {
	Width    int
	Height   int
	MaxSteps int
	Workers  int
	Logger   *log.Logger
}

// Jobs returns the cross product of thresholds and seeds, thresholds outer.
func Jobs(threshes []int, seeds []int64) []Job {
	jobs := make([]Job, 0, len(threshes)*len(seeds))
	for _, t := range threshes {
		for _, s := range seeds {
			jobs = append(jobs, Job{Thresh: t, Seed: s})
		}
	}
	return jobs
}

// Run executes jobs on up to opts.Workers goroutines. Outcomes are returned in
// job order. Only cancellation of ctx aborts the sweep; per-job failures are
// recorded in the outcome.
func Run(ctx context.Context, opts Options, jobs []Job) ([]Outcome, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	out := make([]Outcome, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		g.Go(func() error {
			out[i] = runJob(gctx, opts, job)
			if err := out[i].Err; errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			logger.Debug("job done", "thresh", job.Thresh, "seed", job.Seed, "converged", out[i].Converged())
			return nil
		})
	}
	return out, g.Wait()
}

func runJob(ctx context.Context, opts Options, job Job) Outcome {
	cfg := cave.DefaultConfig()
	cfg.Width = opts.Width
	cfg.Height = opts.Height
	cfg.StepThresh = job.Thresh
	cfg.Seed = job.Seed
	cfg.MaxSteps = opts.MaxSteps

	sess, err := cave.New(cfg)
	if err != nil {
		return Outcome{Job: job, Err: err}
	}
	rep, err := sess.Benchmark(ctx)
	o := Outcome{Job: job, Report: rep, Err: err}
	grid := sess.Snapshot()
	total := grid.Width() * grid.Height()
	o.RockShare = float64(grid.Count(cave.Rock)) / float64(total)
	o.Trees = grid.Count(cave.TreeTop)
	return o
}

// Rank orders outcomes: converged runs first, then by fewer cave steps, then
// by shorter total time.
func Rank(outcomes []Outcome) {
	sort.SliceStable(outcomes, func(i, j int) bool {
		a, b := outcomes[i], outcomes[j]
		if a.Converged() != b.Converged() {
			return a.Converged()
		}
		if a.Report.CaveSteps != b.Report.CaveSteps {
			return a.Report.CaveSteps < b.Report.CaveSteps
		}
		return a.Report.Total() < b.Report.Total()
	})
}

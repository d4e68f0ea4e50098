package cave

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Report summarizes a generation run: the data an exporter needs to name and
// reproduce the picture, plus phase timings.
type Report struct {
	ID          uuid.UUID     `yaml:"id"`
	Seed        int64         `yaml:"seed"`
	Width       int           `yaml:"width"`
	Height      int           `yaml:"height"`
	StepThresh  int           `yaml:"step_thresh"`
	CaveSteps   int           `yaml:"cave_steps"`
	CaveTime    time.Duration `yaml:"cave_time"`
	GrowthSteps int           `yaml:"growth_steps"`
	GrowthTime  time.Duration `yaml:"growth_time"`
}

// Total returns the combined time of both phases.
func (r Report) Total() time.Duration { return r.CaveTime + r.GrowthTime }

// Filename returns the export name for the reported layout.
func (r Report) Filename() string {
	return fmt.Sprintf("%ds-%dcn-%dtn-%dw-%dh.png", r.Seed, r.CaveSteps, r.GrowthSteps, r.Width, r.Height)
}

// Report describes the current state of the session without timings.
func (s *Session) Report() Report {
	return Report{
		ID:          s.id,
		Seed:        s.seed,
		Width:       s.cfg.Width,
		Height:      s.cfg.Height,
		StepThresh:  s.cfg.StepThresh,
		CaveSteps:   s.caveSteps,
		GrowthSteps: s.growthSteps,
	}
}

// Filename returns the export name for the current layout.
func (s *Session) Filename() string { return s.Report().Filename() }

// Benchmark regenerates the initial layout from the session seed, then runs
// the cave and growth phases to their fixed points and times each one.
func (s *Session) Benchmark(ctx context.Context) (Report, error) {
	s.Reset(0)
	cave, err := s.RunCave(ctx)
	if err != nil {
		return s.Report(), fmt.Errorf("cave phase: %w", err)
	}
	growth, err := s.RunGrowth(ctx)
	if err != nil {
		r := s.Report()
		r.CaveTime = cave.Elapsed
		return r, fmt.Errorf("growth phase: %w", err)
	}
	r := s.Report()
	r.CaveTime = cave.Elapsed
	r.GrowthTime = growth.Elapsed
	s.logger.Info("benchmark finished",
		"seed", r.Seed,
		"size", fmt.Sprintf("%dx%d", r.Width, r.Height),
		"cave_steps", r.CaveSteps,
		"cave_time", r.CaveTime,
		"growth_steps", r.GrowthSteps,
		"growth_time", r.GrowthTime,
		"total", r.Total(),
	)
	return r, nil
}

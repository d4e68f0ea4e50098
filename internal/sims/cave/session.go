package cave

import (
	"context"
	"io"

	"cave-ca/internal/core"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Session owns one grid and its random source. It is not safe for concurrent
// use; readers should take a Snapshot between steps.
type Session struct {
	id     uuid.UUID
	cfg    Config
	seed   int64
	grid   *Grid
	rng    *core.RNG
	logger *log.Logger

	caveSteps   int
	growthSteps int
	caveDone    bool
}

// Option customizes a Session.
type Option func(*Session)

// WithLogger routes session diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.SetLogger(l) }
}

var _ core.IntParameterSetter = (*Session)(nil)

// New validates cfg, allocates the grid and fills it from the seed. When
// cfg.Seed is zero a fresh seed is drawn and Seed reports it afterwards;
// zero is therefore never used as a seed itself. Negative seeds are valid.
func New(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:     uuid.New(),
		cfg:    cfg,
		grid:   grid,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = core.NewSeed()
	}
	s.Reset(seed)
	s.logger.Debug("session created", "id", s.id, "seed", s.seed, "w", cfg.Width, "h", cfg.Height)
	return s, nil
}

// Name returns the simulation identifier.
func (s *Session) Name() string { return "cave" }

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Config returns the active configuration. Seed holds the effective seed.
func (s *Session) Config() Config {
	c := s.cfg
	c.Seed = s.seed
	return c
}

// Seed returns the seed the current layout was generated from.
func (s *Session) Seed() int64 { return s.seed }

// Size returns the grid dimensions.
func (s *Session) Size() core.Size { return s.mustGrid().Size() }

// Cells exposes the current grid buffer, row-major, one State per byte.
func (s *Session) Cells() []uint8 { return s.mustGrid().Cells() }

// CaveSteps returns the number of changing cave steps since the last reset.
func (s *Session) CaveSteps() int { return s.caveSteps }

// GrowthSteps returns the number of changing growth steps since the last reset.
func (s *Session) GrowthSteps() int { return s.growthSteps }

// Reset reseeds the random source and regenerates the layout. A zero seed
// reuses the session seed, reproducing the initial grid.
func (s *Session) Reset(seed int64) {
	g := s.mustGrid()
	if seed != 0 {
		s.seed = seed
	}
	s.rng = core.NewRNG(s.seed)
	Initialize(g, s.rng)
	s.clearCounters()
}

// Regenerate refills the grid with new coin flips drawn from the running
// random source, so consecutive calls give different layouts.
func (s *Session) Regenerate() {
	Initialize(s.mustGrid(), s.rng)
	s.clearCounters()
}

// StepCave applies one cave rule generation.
func (s *Session) StepCave() bool {
	changed := CaveStep(s.mustGrid(), s.cfg.StepThresh)
	if changed {
		s.caveSteps++
	}
	return changed
}

// StepGrowth applies one growth rule generation.
func (s *Session) StepGrowth() bool {
	changed := GrowthStep(s.mustGrid(), s.rng)
	if changed {
		s.growthSteps++
	}
	return changed
}

// Step advances the active phase: cave generations until the layout is
// stable, then growth generations.
func (s *Session) Step() bool {
	if !s.caveDone {
		if s.StepCave() {
			return true
		}
		s.caveDone = true
	}
	return s.StepGrowth()
}

// RunCave applies the cave rule until the grid stops changing.
func (s *Session) RunCave(ctx context.Context) (core.Result, error) {
	res, err := s.run(ctx, "cave", s.StepCave)
	if err == nil {
		s.caveDone = true
	}
	return res, err
}

// RunGrowth applies the growth rule until the grid stops changing.
func (s *Session) RunGrowth(ctx context.Context) (core.Result, error) {
	return s.run(ctx, "growth", s.StepGrowth)
}

func (s *Session) run(ctx context.Context, phase string, step core.StepFunc) (core.Result, error) {
	s.mustGrid()
	res, err := core.RunToFixedPoint(ctx, step, core.RunOptions{MaxSteps: s.cfg.MaxSteps, Timed: true})
	if err != nil {
		s.logger.Warn("fixed point not reached", "phase", phase, "steps", res.Steps, "err", err)
		return res, err
	}
	s.logger.Debug("fixed point reached", "phase", phase, "steps", res.Steps, "elapsed", res.Elapsed)
	return res, nil
}

// SetLogger replaces the diagnostics logger. A nil logger is ignored.
func (s *Session) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// At returns the state of the cell at (x, y).
func (s *Session) At(x, y int) (State, error) { return s.mustGrid().At(x, y) }

// Each visits every cell, x outer and y inner.
func (s *Session) Each(fn func(x, y int, st State)) { s.mustGrid().Each(fn) }

// Snapshot returns a copy of the grid that later steps do not touch.
func (s *Session) Snapshot() *Grid { return s.mustGrid().Clone() }

// SetIntParameter updates a rule parameter. Dimensions and seed are fixed
// for the lifetime of the session and cannot be changed here.
func (s *Session) SetIntParameter(key string, value int) bool {
	next := s.cfg
	switch key {
	case "step_thresh":
		next.StepThresh = value
	case "max_steps":
		next.MaxSteps = value
	default:
		return false
	}
	if next.Validate() != nil {
		return false
	}
	s.cfg = next
	s.caveDone = false
	return true
}

func (s *Session) clearCounters() {
	s.caveSteps = 0
	s.growthSteps = 0
	s.caveDone = false
}

func (s *Session) mustGrid() *Grid {
	if s == nil || s.grid == nil {
		panic("cave: session used before New")
	}
	return s.grid
}

func init() {
	core.Register("cave", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		s, err := New(c)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

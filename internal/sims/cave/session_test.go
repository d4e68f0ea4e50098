package cave

import (
	"context"
	"errors"
	"slices"
	"testing"

	"cave-ca/internal/core"
)

func smallConfig(seed int64) Config {
	cfg := DefaultConfig()
	cfg.Width = 48
	cfg.Height = 32
	cfg.Seed = seed
	return cfg
}

func TestNewDeterministic(t *testing.T) {
	for _, seed := range []int64{1, 2, 77, 88888888} {
		a, err := New(smallConfig(seed))
		if err != nil {
			t.Fatal(err)
		}
		b, err := New(smallConfig(seed))
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(a.Cells(), b.Cells()) {
			t.Fatalf("seed %d produced different initial grids", seed)
		}
		if a.ID() == b.ID() {
			t.Fatal("sessions must get distinct identifiers")
		}
	}
	a, _ := New(smallConfig(1))
	b, _ := New(smallConfig(2))
	if slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("different seeds should produce different grids")
	}
}

func TestNewAcceptsNegativeSeed(t *testing.T) {
	a, err := New(smallConfig(-7))
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(smallConfig(-7))
	if err != nil {
		t.Fatal(err)
	}
	if a.Seed() != -7 {
		t.Fatalf("Seed()=%d, want -7", a.Seed())
	}
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("seed -7 produced different initial grids")
	}
}

func TestNewDrawsSeedWhenAbsent(t *testing.T) {
	sess, err := New(smallConfig(0))
	if err != nil {
		t.Fatal(err)
	}
	seed := sess.Seed()
	if seed < core.MinSeed || seed > core.MaxSeed {
		t.Fatalf("drawn seed %d outside [%d,%d]", seed, core.MinSeed, core.MaxSeed)
	}
	if sess.Config().Seed != seed {
		t.Fatalf("Config().Seed=%d, want the drawn seed %d", sess.Config().Seed, seed)
	}
	replay, _ := New(smallConfig(seed))
	if !slices.Equal(sess.Cells(), replay.Cells()) {
		t.Fatal("the reported seed must reproduce the grid")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := smallConfig(1)
	cfg.StepThresh = 10
	if _, err := New(cfg); !errors.Is(err, ErrInvalidThreshold) {
		t.Fatalf("err=%v, want ErrInvalidThreshold", err)
	}
	cfg = smallConfig(1)
	cfg.Height = 0
	if _, err := New(cfg); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("err=%v, want ErrInvalidSize", err)
	}
}

func TestRunCaveIsIdempotentOnceConverged(t *testing.T) {
	sess, _ := New(smallConfig(9))
	res, err := sess.RunCave(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Steps == 0 {
		t.Fatal("a random layout should need at least one cave step")
	}
	if sess.CaveSteps() != res.Steps {
		t.Fatalf("CaveSteps()=%d, want %d", sess.CaveSteps(), res.Steps)
	}
	before := sess.Snapshot()
	if sess.StepCave() {
		t.Fatal("StepCave after convergence must report no change")
	}
	if !sess.Snapshot().Equal(before) {
		t.Fatal("StepCave after convergence modified the grid")
	}
}

func TestRunGrowthReachesFixedPoint(t *testing.T) {
	sess, _ := New(smallConfig(4))
	if _, err := sess.RunCave(context.Background()); err != nil {
		t.Fatal(err)
	}
	res, err := sess.RunGrowth(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sess.GrowthSteps() != res.Steps {
		t.Fatalf("GrowthSteps()=%d, want %d", sess.GrowthSteps(), res.Steps)
	}
	if sess.StepGrowth() {
		t.Fatal("growth must be stable after RunGrowth")
	}
	trees := 0
	sess.Each(func(_, _ int, s State) {
		if s == TreeStump || s == TreeMid || s == TreeTop {
			trees++
		}
	})
	if trees == 0 {
		t.Fatal("expected some vegetation on a 48x32 cave")
	}
}

func TestStepRunsCaveThenGrowth(t *testing.T) {
	stepped, _ := New(smallConfig(21))
	for stepped.Step() {
	}

	driven, _ := New(smallConfig(21))
	if _, err := driven.RunCave(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := driven.RunGrowth(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(stepped.Cells(), driven.Cells()) {
		t.Fatal("Step until stable must match RunCave followed by RunGrowth")
	}
	if stepped.CaveSteps() != driven.CaveSteps() || stepped.GrowthSteps() != driven.GrowthSteps() {
		t.Fatalf("counters differ: %d/%d vs %d/%d",
			stepped.CaveSteps(), stepped.GrowthSteps(), driven.CaveSteps(), driven.GrowthSteps())
	}
}

func TestResetRestoresInitialGrid(t *testing.T) {
	sess, _ := New(smallConfig(13))
	initial := append([]uint8(nil), sess.Cells()...)
	if _, err := sess.RunCave(context.Background()); err != nil {
		t.Fatal(err)
	}
	sess.Reset(0)
	if !slices.Equal(initial, sess.Cells()) {
		t.Fatal("Reset(0) must rebuild the grid from the session seed")
	}
	if sess.CaveSteps() != 0 || sess.GrowthSteps() != 0 {
		t.Fatal("Reset must clear the step counters")
	}

	sess.Reset(14)
	other, _ := New(smallConfig(14))
	if sess.Seed() != 14 || !slices.Equal(sess.Cells(), other.Cells()) {
		t.Fatal("Reset(seed) must switch the session to the new seed")
	}
}

func TestRegenerateDrawsNewLayout(t *testing.T) {
	sess, _ := New(smallConfig(13))
	first := append([]uint8(nil), sess.Cells()...)
	sess.Regenerate()
	if slices.Equal(first, sess.Cells()) {
		t.Fatal("Regenerate should continue the random sequence and give a new layout")
	}
	sess.Each(func(x, y int, s State) {
		if s != Rock && s != Free {
			t.Fatalf("(%d,%d)=%v after Regenerate", x, y, s)
		}
	})
}

func TestRunCaveStepBudget(t *testing.T) {
	cfg := smallConfig(3)
	cfg.MaxSteps = 1
	sess, _ := New(cfg)
	res, err := sess.RunCave(context.Background())
	if !errors.Is(err, core.ErrStepBudgetExceeded) {
		t.Fatalf("err=%v, want ErrStepBudgetExceeded", err)
	}
	if res.Steps != 1 {
		t.Fatalf("Steps=%d, want 1", res.Steps)
	}
}

func TestRunCaveCancelled(t *testing.T) {
	sess, _ := New(smallConfig(3))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sess.RunCave(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
	if sess.CaveSteps() != 0 {
		t.Fatal("a cancelled run must not step")
	}
}

func TestReadCell(t *testing.T) {
	sess, _ := New(smallConfig(8))
	s, err := sess.At(0, 0)
	if err != nil || !s.Valid() {
		t.Fatalf("At(0,0)=%v,%v", s, err)
	}
	if _, err := sess.At(48, 0); !errors.Is(err, core.ErrOutOfBounds) {
		t.Fatalf("err=%v, want ErrOutOfBounds", err)
	}
	n := 0
	sess.Each(func(x, y int, st State) {
		got, _ := sess.At(x, y)
		if got != st {
			t.Fatalf("Each and At disagree at (%d,%d)", x, y)
		}
		n++
	})
	if n != 48*32 {
		t.Fatalf("Each visited %d cells", n)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	sess, _ := New(smallConfig(8))
	snap := sess.Snapshot()
	if _, err := sess.RunCave(context.Background()); err != nil {
		t.Fatal(err)
	}
	fresh, _ := New(smallConfig(8))
	if !slices.Equal(snap.Cells(), fresh.Cells()) {
		t.Fatal("snapshot changed after the session stepped")
	}
}

func TestZeroSessionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("stepping a zero Session must panic")
		}
	}()
	var s Session
	s.StepCave()
}

func TestSetIntParameter(t *testing.T) {
	sess, _ := New(smallConfig(1))
	if !sess.SetIntParameter("step_thresh", 4) {
		t.Fatal("step_thresh should be adjustable")
	}
	if sess.Config().StepThresh != 4 {
		t.Fatalf("StepThresh=%d, want 4", sess.Config().StepThresh)
	}
	if sess.SetIntParameter("step_thresh", 12) {
		t.Fatal("out of range thresholds must be refused")
	}
	if sess.SetIntParameter("w", 10) {
		t.Fatal("dimensions are fixed for the session")
	}
	if p, ok := sess.Parameters().Lookup("step_thresh"); !ok || p.Value != "4" {
		t.Fatalf("snapshot step_thresh=%+v", p)
	}
}

func TestRegistered(t *testing.T) {
	sim, err := core.NewSim("cave", map[string]string{"w": "20", "h": "10", "seed": "5"})
	if err != nil {
		t.Fatal(err)
	}
	if sim.Name() != "cave" || sim.Size() != (core.Size{W: 20, H: 10}) {
		t.Fatalf("registry built %s %v", sim.Name(), sim.Size())
	}
	if _, err := core.NewSim("cave", map[string]string{"step_thresh": "11"}); !errors.Is(err, ErrInvalidThreshold) {
		t.Fatalf("err=%v, want ErrInvalidThreshold", err)
	}
}

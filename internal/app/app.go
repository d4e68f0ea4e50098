package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"cave-ca/internal/core"
	"cave-ca/internal/sims/cave"
	"cave-ca/internal/store"

	"github.com/charmbracelet/log"
)

// ErrUnsupportedSim is returned for registered sims that do not produce cave
// reports.
var ErrUnsupportedSim = errors.New("sim does not produce cave reports")

// Run creates a session from cfg, drives both phases to their fixed points
// and emits the requested outputs. Text dumps go to out, diagnostics to logger.
func Run(ctx context.Context, cfg *Config, fs *flag.FlagSet, out io.Writer, logger *log.Logger) (cave.Report, error) {
	cc, err := cfg.CaveConfig(fs)
	if err != nil {
		return cave.Report{}, err
	}
	sim, err := core.NewSim(cfg.Sim, cc.Map())
	if err != nil {
		return cave.Report{}, err
	}
	sess, ok := sim.(*cave.Session)
	if !ok {
		return cave.Report{}, fmt.Errorf("%w: %q", ErrUnsupportedSim, cfg.Sim)
	}
	sess.SetLogger(logger)
	logger.Info("session", "id", sess.ID(), "seed", sess.Seed(), "w", cc.Width, "h", cc.Height, "thresh", cc.StepThresh)
	logParameters(logger, sess.Parameters())

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	var rep cave.Report
	if cfg.Bench {
		rep, err = sess.Benchmark(ctx)
	} else {
		rep, err = generate(ctx, sess)
	}
	if err != nil {
		return rep, err
	}
	logger.Info("generated", "cave_steps", rep.CaveSteps, "growth_steps", rep.GrowthSteps, "file", rep.Filename())

	if cfg.Print {
		if err := sess.Snapshot().WriteText(out); err != nil {
			return rep, fmt.Errorf("write grid: %w", err)
		}
	}
	if cfg.Save {
		reports, err := store.Open(cfg.StoreApp)
		if err != nil {
			logger.Warn("report store unavailable, not saving", "err", err)
			reports = store.New(nil)
		}
		key, err := reports.Save(rep)
		if err != nil {
			return rep, err
		}
		logger.Info("report saved", "key", key, "persistent", reports.Persistent())
	}
	return rep, nil
}

func generate(ctx context.Context, sess *cave.Session) (cave.Report, error) {
	caveRes, err := sess.RunCave(ctx)
	if err != nil {
		return sess.Report(), fmt.Errorf("cave phase: %w", err)
	}
	growthRes, err := sess.RunGrowth(ctx)
	rep := sess.Report()
	rep.CaveTime = caveRes.Elapsed
	rep.GrowthTime = growthRes.Elapsed
	if err != nil {
		return rep, fmt.Errorf("growth phase: %w", err)
	}
	return rep, nil
}

func logParameters(logger *log.Logger, snap core.ParameterSnapshot) {
	for _, g := range snap.Groups {
		kv := make([]any, 0, 2*len(g.Params))
		for _, p := range g.Params {
			kv = append(kv, p.Key, p.Value)
		}
		logger.Debug(g.Name, kv...)
	}
}

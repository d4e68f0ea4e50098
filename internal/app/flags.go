package app

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"cave-ca/internal/core"
	"cave-ca/internal/sims/cave"

	"github.com/charmbracelet/log"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim        string
	ConfigPath string

	Width      int
	Height     int
	StepThresh int
	Seed       int64
	MaxSteps   int

	Timeout  time.Duration
	Bench    bool
	Print    bool
	Save     bool
	StoreApp string
	LogLevel string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	d := cave.DefaultConfig()
	return &Config{
		Sim:        "cave",
		Width:      d.Width,
		Height:     d.Height,
		StepThresh: d.StepThresh,
		Seed:       d.Seed,
		MaxSteps:   d.MaxSteps,
		StoreApp:   "cave-ca",
		LogLevel:   "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, fmt.Sprintf("simulation to run (%s)", strings.Join(core.Names(), ", ")))
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML file with width, height, step_thresh, seed, max_steps")
	fs.IntVar(&c.Width, "w", c.Width, "grid width")
	fs.IntVar(&c.Height, "h", c.Height, "grid height")
	fs.IntVar(&c.StepThresh, "thresh", c.StepThresh, "rock count (0-9) at which a cell becomes rock")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random source; 0 draws a random one, so 0 itself cannot be chosen")
	fs.IntVar(&c.MaxSteps, "max-steps", c.MaxSteps, "step budget per phase (0 is unbounded)")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "abort generation after this long (0 disables)")
	fs.BoolVar(&c.Bench, "bench", c.Bench, "regenerate from the seed and report phase timings")
	fs.BoolVar(&c.Print, "print", c.Print, "dump the final grid as text to stdout")
	fs.BoolVar(&c.Save, "save", c.Save, "store the run report in the user data directory")
	fs.StringVar(&c.StoreApp, "store-app", c.StoreApp, "application name for the report store")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// CaveConfig builds the session configuration. Values from the YAML file are
// used first; flags set explicitly on fs take precedence.
func (c *Config) CaveConfig(fs *flag.FlagSet) (cave.Config, error) {
	cc := cave.DefaultConfig()
	if c.ConfigPath != "" {
		loaded, err := cave.LoadConfig(c.ConfigPath)
		if err != nil {
			return cave.Config{}, err
		}
		cc = loaded
	}
	fromFile := c.ConfigPath != ""
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	override := func(name string) bool { return set[name] || !fromFile }

	if override("w") {
		cc.Width = c.Width
	}
	if override("h") {
		cc.Height = c.Height
	}
	if override("thresh") {
		cc.StepThresh = c.StepThresh
	}
	if override("seed") {
		cc.Seed = c.Seed
	}
	if override("max-steps") {
		cc.MaxSteps = c.MaxSteps
	}
	if err := cc.Validate(); err != nil {
		return cave.Config{}, err
	}
	return cc, nil
}

// Level parses the configured log level.
func (c *Config) Level() (log.Level, error) {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

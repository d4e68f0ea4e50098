package cave

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Configuration errors returned by Config.Validate.
var (
	ErrInvalidSize      = errors.New("width and height must be positive")
	ErrInvalidThreshold = errors.New("step_thresh must be within [0,9]")
	ErrInvalidBudget    = errors.New("max_steps must not be negative")
)

// MaxThreshold is the size of the 3x3 block counted by the cave rule.
const MaxThreshold = 9

// Config controls the cave session dimensions and rules.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// StepThresh is the rock count (out of 9) at which a cell becomes Rock.
	StepThresh int `yaml:"step_thresh"`

	// Seed for the random source; any value is accepted. Zero means a seed
	// is drawn when the session is created, so zero itself cannot be chosen.
	Seed int64 `yaml:"seed"`

	// MaxSteps bounds every fixed-point run. Zero means unbounded.
	MaxSteps int `yaml:"max_steps"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:      256,
		Height:     256,
		StepThresh: 5,
	}
}

// Validate rejects configurations the engine cannot run. Values are never clamped.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.StepThresh < 0 || c.StepThresh > MaxThreshold {
		return fmt.Errorf("%w: got %d", ErrInvalidThreshold, c.StepThresh)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBudget, c.MaxSteps)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unknown keys are ignored; malformed values are reported.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"w", &c.Width},
		{"h", &c.Height},
		{"step_thresh", &c.StepThresh},
		{"max_steps", &c.MaxSteps},
	}
	for _, f := range ints {
		v, ok := cfg[f.key]
		if !ok {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("parse %s: %w", f.key, err)
		}
		*f.dst = parsed
	}
	if v, ok := cfg["seed"]; ok {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, fmt.Errorf("parse seed: %w", err)
		}
		c.Seed = parsed
	}
	return c, c.Validate()
}

// Map renders the config as the key/value pairs FromMap accepts.
func (c Config) Map() map[string]string {
	return map[string]string{
		"w":           strconv.Itoa(c.Width),
		"h":           strconv.Itoa(c.Height),
		"step_thresh": strconv.Itoa(c.StepThresh),
		"max_steps":   strconv.Itoa(c.MaxSteps),
		"seed":        strconv.FormatInt(c.Seed, 10),
	}
}

// LoadConfig reads a YAML configuration file. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read cave config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration data on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse cave config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid cave config: %w", err)
	}
	return c, nil
}

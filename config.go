package ripple

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config tunes the engine. All values have working defaults; a zero
// Config field falls back to its default when the engine is built.
// Durations are expressed in milliseconds to keep the TOML flat.
type Config struct {
	Events EventsConfig `toml:"events"`
	Cells  CellsConfig  `toml:"cells"`
}

// EventsConfig tunes the EventManager.
type EventsConfig struct {
	// CoalesceDepth is how many trailing queue entries are eligible
	// for collapse on Post. The window is a short slice of the queue,
	// never the whole queue.
	CoalesceDepth int `toml:"coalesce_depth"`

	// CoalesceWindowMS bounds the age of a queued event that a new
	// post may still replace, in milliseconds.
	CoalesceWindowMS int `toml:"coalesce_window_ms"`

	// FrameBudgetMS is the default per-frame dispatch budget used by
	// Engine.Step when the caller passes no explicit budget.
	FrameBudgetMS int `toml:"frame_budget_ms"`
}

// CellsConfig tunes reactive cells.
type CellsConfig struct {
	// MaxSetDepth bounds re-entrant Link.Set calls made from change
	// callbacks before the callback chain is cut off.
	MaxSetDepth int `toml:"max_set_depth"`
}

// DefaultConfig returns the engine defaults: an 8-deep, 8 ms
// coalescing window, a 4 ms frame budget, and a 64-deep cell
// re-entrancy guard.
func DefaultConfig() Config {
	return Config{
		Events: EventsConfig{
			CoalesceDepth:    8,
			CoalesceWindowMS: 8,
			FrameBudgetMS:    4,
		},
		Cells: CellsConfig{
			MaxSetDepth: 64,
		},
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Events.CoalesceDepth <= 0 {
		c.Events.CoalesceDepth = def.Events.CoalesceDepth
	}
	if c.Events.CoalesceWindowMS <= 0 {
		c.Events.CoalesceWindowMS = def.Events.CoalesceWindowMS
	}
	if c.Events.FrameBudgetMS <= 0 {
		c.Events.FrameBudgetMS = def.Events.FrameBudgetMS
	}
	if c.Cells.MaxSetDepth <= 0 {
		c.Cells.MaxSetDepth = def.Cells.MaxSetDepth
	}
	return c
}

// CoalesceWindow returns the coalescing window as a duration.
func (e EventsConfig) CoalesceWindow() time.Duration {
	return time.Duration(e.CoalesceWindowMS) * time.Millisecond
}

// FrameBudget returns the default drain budget as a duration.
func (e EventsConfig) FrameBudget() time.Duration {
	return time.Duration(e.FrameBudgetMS) * time.Millisecond
}

// LoadConfig reads a TOML config file. Missing fields keep their
// defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg.withDefaults(), nil
}

// WriteFile writes the config as TOML.
func (c Config) WriteFile(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

package game

import "time"

// Simulation configuration constants
const (
	// Board
	DefaultRows = 48
	DefaultCols = 48

	// Snake
	DefaultInitialLength = 10 // starting body length, laid out along row 0

	// Game loop
	DefaultTickInterval = 100 * time.Millisecond

	// Scoring
	FoodBonus = 10 // points per food consumed
)

// Config holds per-session parameters. The zero value is usable:
// every zero field is replaced by its Default* constant.
type Config struct {
	Rows          int
	Cols          int
	InitialLength int
	TickInterval  time.Duration
	// Seed for the session's food RNG. 0 means seed from the clock;
	// a fixed seed gives a fully deterministic session.
	Seed int64
}

// DefaultConfig returns the standard 48x48 board configuration.
func DefaultConfig() Config {
	return Config{
		Rows:          DefaultRows,
		Cols:          DefaultCols,
		InitialLength: DefaultInitialLength,
		TickInterval:  DefaultTickInterval,
	}
}

// withDefaults fills zero fields with the default constants.
func (c Config) withDefaults() Config {
	if c.Rows <= 0 {
		c.Rows = DefaultRows
	}
	if c.Cols <= 0 {
		c.Cols = DefaultCols
	}
	if c.InitialLength <= 0 {
		c.InitialLength = DefaultInitialLength
	}
	if c.InitialLength > c.Cols {
		c.InitialLength = c.Cols
	}
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	return c
}

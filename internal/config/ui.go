package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/schach-go/internal/errors"
)

// UIConfig holds settings for the terminal front end.
type UIConfig struct {
	// TickInterval is how often input is processed and the board redrawn
	TickInterval Duration `json:"tickInterval"`

	// TicksPerSquare is how many ticks a moving piece needs per square
	TicksPerSquare int `json:"ticksPerSquare"`

	// Mouse enables picking squares with the mouse
	Mouse bool `json:"mouse"`
}

// NewUIConfig creates a UIConfig with default values.
func NewUIConfig() *UIConfig {
	return &UIConfig{
		TickInterval:   Duration(33 * time.Millisecond),
		TicksPerSquare: 3,
		Mouse:          true,
	}
}

// Validate checks that the UI configuration is valid.
func (u *UIConfig) Validate() error {
	if u.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v: %w", u.TickInterval, errors.ErrInvalidConfig)
	}
	if u.TicksPerSquare < 1 {
		return fmt.Errorf("ticks per square must be at least 1, got %d: %w", u.TicksPerSquare, errors.ErrInvalidConfig)
	}
	return nil
}

// Duration is a time.Duration that reads from JSON as either a string
// such as "50ms" or a number of nanoseconds.
type Duration time.Duration

// String returns the duration formatted like time.Duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalJSON encodes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts "50ms" style strings and plain numbers.
func (d *Duration) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		parsed, err := time.ParseDuration(s[1 : len(s)-1])
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if _, err := fmt.Sscan(s, &n); err != nil {
		return fmt.Errorf("invalid duration %s", s)
	}
	*d = Duration(n)
	return nil
}

// Package solver implements a late-acceptance local search over the room
// and slot assignments of a timetable problem: a greedy construction phase
// followed by an improvement loop of random reassign and swap moves.
package solver

import (
	"fmt"
	"time"
)

// Phase is the lifecycle stage of a solver run.
type Phase string

const (
	PhaseUnsolved     Phase = "UNSOLVED"
	PhaseConstructing Phase = "CONSTRUCTING"
	PhaseImproving    Phase = "IMPROVING"
	PhaseTerminated   Phase = "TERMINATED"
)

// Config bounds a solver run. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	TerminationMinutes int `json:"terminationMinutes" validate:"min=0"`
	TerminationSeconds int `json:"terminationSeconds" validate:"min=0"`

	// BestScoreLimit stops the run early once the best hard score reaches
	// the limit (hard scores are non-positive, so 0 means "first feasible").
	BestScoreLimit *int `json:"bestScoreLimit,omitempty"`

	// UnimprovedSecondsLimit stops the run after this long without a new
	// best solution. Nil disables the check.
	UnimprovedSecondsLimit *int `json:"unimprovedSecondsLimit,omitempty"`

	// LateAcceptanceSize is the length of the accepted-score history the
	// acceptance criterion compares against.
	LateAcceptanceSize int `json:"lateAcceptanceSize" validate:"min=1"`

	// Seed fixes the move-selection randomness for reproducible runs.
	// Zero seeds from the wall clock.
	Seed int64 `json:"seed,omitempty"`
}

// DefaultConfig mirrors the stock solver tuning: five minute budget, stop
// after two unimproved minutes.
func DefaultConfig() Config {
	unimproved := 120
	return Config{
		TerminationMinutes:     5,
		TerminationSeconds:     0,
		UnimprovedSecondsLimit: &unimproved,
		LateAcceptanceSize:     400,
	}
}

// Budget is the total wall-clock allowance of a run.
func (c Config) Budget() time.Duration {
	return time.Duration(c.TerminationMinutes)*time.Minute +
		time.Duration(c.TerminationSeconds)*time.Second
}

// Validate rejects configurations that could never terminate or never move.
func (c Config) Validate() error {
	if c.TerminationMinutes < 0 || c.TerminationSeconds < 0 {
		return fmt.Errorf("solver config: termination budget must be non-negative")
	}
	if c.Budget() <= 0 {
		return fmt.Errorf("solver config: termination budget must be positive")
	}
	if c.UnimprovedSecondsLimit != nil && *c.UnimprovedSecondsLimit <= 0 {
		return fmt.Errorf("solver config: unimproved seconds limit must be positive")
	}
	if c.LateAcceptanceSize < 1 {
		return fmt.Errorf("solver config: late acceptance size must be at least 1")
	}
	return nil
}

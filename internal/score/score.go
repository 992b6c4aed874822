// Package score implements the multi-tier constraint scoring of a timetable:
// a lexicographic (hard, soft) score summed over an enumerable catalog of
// independent constraint evaluators, with incremental delta evaluation for
// the solver's move loop.
package score

import "fmt"

// Score is a lexicographic (hard, soft) pair. Violations accumulate as
// negative values; rewards as positive. Any score with a hard total closer
// to zero dominates, regardless of soft.
type Score struct {
	Hard int `json:"hard"`
	Soft int `json:"soft"`
}

// Add returns s + other.
func (s Score) Add(other Score) Score {
	return Score{Hard: s.Hard + other.Hard, Soft: s.Soft + other.Soft}
}

// Sub returns s - other.
func (s Score) Sub(other Score) Score {
	return Score{Hard: s.Hard - other.Hard, Soft: s.Soft - other.Soft}
}

// Compare orders scores lexicographically: hard first, then soft. It returns
// a negative value when s is worse than other, zero when equal, positive
// when better.
func (s Score) Compare(other Score) int {
	if s.Hard != other.Hard {
		if s.Hard < other.Hard {
			return -1
		}
		return 1
	}
	if s.Soft != other.Soft {
		if s.Soft < other.Soft {
			return -1
		}
		return 1
	}
	return 0
}

// Feasible reports whether no hard constraint is violated.
func (s Score) Feasible() bool { return s.Hard == 0 }

func (s Score) String() string {
	return fmt.Sprintf("%dhard/%dsoft", s.Hard, s.Soft)
}

// Weight tiers. Hard tiers dwarf each other by an order of magnitude so a
// single critical violation always outweighs any pile of lower-tier ones.
const (
	WeightCritical = 10000
	WeightHigh     = 1000
	WeightMedium   = 100
	WeightLow      = 10

	WeightSoftHigh   = 50
	WeightSoftMedium = 20
	WeightSoftLow    = 5
)

func hardPenalty(weight, count int) Score { return Score{Hard: -weight * count} }
func softPenalty(weight, count int) Score { return Score{Soft: -weight * count} }
func softReward(weight, count int) Score  { return Score{Soft: weight * count} }

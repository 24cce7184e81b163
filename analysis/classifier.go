// Package analysis turns a baccarat outcome history into road views, pattern
// labels, probability estimates and a single aggregated prediction.
//
// Every function is pure: inputs are never mutated and nothing is cached
// between calls.
package analysis

import (
	"fmt"

	"github.com/louisuxu-sys/BC-LINE/models"
)

// Pure removes ties from a history, preserving order
func Pure(history []models.Outcome) []models.Outcome {
	pure := make([]models.Outcome, 0, len(history))
	for _, o := range history {
		if o.IsBinary() {
			pure = append(pure, o)
		}
	}
	return pure
}

// GroupRuns splits a sequence into maximal groups of equal consecutive values.
// It is used for the big road column list as well as for laying out derived roads.
func GroupRuns[T comparable](seq []T) [][]T {
	var groups [][]T
	for i, v := range seq {
		if i > 0 && seq[i-1] == v {
			groups[len(groups)-1] = append(groups[len(groups)-1], v)
			continue
		}
		groups = append(groups, []T{v})
	}
	return groups
}

// Runs returns the column list of a pure sequence.
// It panics if a tie or unknown outcome is present; callers must filter with Pure first.
func Runs(pure []models.Outcome) []models.Run {
	runs := make([]models.Run, 0, len(pure))
	for i, o := range pure {
		if !o.IsBinary() {
			panic(fmt.Sprintf("analysis: runs requires a pure sequence, got %q at index %d", o, i))
		}
		if n := len(runs); n > 0 && runs[n-1].Value == o {
			runs[n-1].Length++
			continue
		}
		runs = append(runs, models.Run{Value: o, Length: 1})
	}
	return runs
}

// CurrentStreak returns the length of the trailing run, or 0 for an empty sequence
func CurrentStreak(pure []models.Outcome) int {
	if len(pure) == 0 {
		return 0
	}
	last := pure[len(pure)-1]
	streak := 1
	for i := len(pure) - 2; i >= 0 && pure[i] == last; i-- {
		streak++
	}
	return streak
}

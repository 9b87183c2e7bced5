// Package rebalance implements the State-Counts Helper (spec §4.2) and the
// Rebalance Classifier (spec §4.3): pure functions comparing a partition's
// best-possible and current assignments against a state model.
package rebalance

import "github.com/Beaver-Company/helix/pkg/model"

// StateCounts tallies, for an instance->state map, how many instances
// occupy each state. Empty input yields an empty (non-nil) output; no
// returned count is ever zero.
func StateCounts(states model.StateMap) map[model.StateName]int {
	counts := make(map[model.StateName]int, len(states))
	for _, s := range states {
		counts[s]++
	}
	return counts
}

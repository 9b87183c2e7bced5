package rebalance

import "github.com/Beaver-Company/helix/pkg/model"

// Classify compares the best-possible assignment best against the current
// assignment current for one partition, under state model def, and returns
// which kind of rebalance the partition needs.
//
// Grounded on original_source's getRebalanceType: walk the state model's
// priority list; the first state that is present in only one of the two
// maps, or has fewer replicas in current than in best (and that isn't
// DROPPED, ERROR, or the model's initial state) forces RECOVERY_BALANCE. If no state triggers recovery but best != current,
// the partition needs LOAD_BALANCE.
func Classify(best, current model.StateMap, def model.StateModelDefinition) model.RebalanceType {
	if best.Equal(current) {
		return model.RebalanceNone
	}

	bestCounts := StateCounts(best)
	currentCounts := StateCounts(current)

	for _, s := range def.StatesPriorityList {
		bestCount, bestHas := bestCounts[s]
		currentCount, currentHas := currentCounts[s]

		switch {
		case !bestHas && !currentHas:
			continue
		case !bestHas || !currentHas || currentCount < bestCount:
			if !def.IsReserved(s) {
				return model.RebalanceRecover
			}
		}
	}
	return model.RebalanceLoad
}

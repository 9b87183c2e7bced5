// Package pending implements the Pending-Transition Accountant (spec §4.5):
// before any new admission decision, in-flight transitions are charged
// against the throttle ledger so fresh decisions respect true available
// budget.
package pending

import (
	"github.com/Beaver-Company/helix/pkg/model"
	"github.com/Beaver-Company/helix/pkg/throttle"
)

// ChargePendingTransitions walks resource's partitions in sorted order and,
// for each one with a non-empty pending map, charges the cluster and
// resource counters once and the instance counter for every instance whose
// pending state differs from its current state (including "current is
// absent" counting as a difference).
//
// classify must return the rebalance type recorded for a partition during
// classification (spec §4.3): RECOVERY_BALANCE, LOAD_BALANCE, or NONE. This
// determines which ledger the charge lands in.
//
// Calling this twice for the same invocation double-charges by design —
// callers must invoke it exactly once per resource per Compute call.
func ChargePendingTransitions(
	resource model.ResourceName,
	partitions []model.PartitionName,
	currentStateOutput *model.CurrentStateOutput,
	tc *throttle.Controller,
	classify func(model.PartitionName) model.RebalanceType,
) {
	sorted := append([]model.PartitionName(nil), partitions...)
	sortPartitionNames(sorted)

	for _, partition := range sorted {
		pendingMap := currentStateOutput.PendingStateMap(resource, partition)
		if len(pendingMap) == 0 {
			continue
		}
		rt := classify(partition)
		if rt == model.RebalanceNone {
			continue
		}

		tc.ChargeCluster(rt)
		tc.ChargeResource(rt, resource)

		currentMap := currentStateOutput.CurrentStateMap(resource, partition)
		for _, instance := range pendingMap.SortedInstances() {
			pendingState := pendingMap[instance]
			curState, ok := currentMap[instance]
			if !ok || curState != pendingState {
				tc.ChargeInstance(rt, instance)
			}
		}
	}
}

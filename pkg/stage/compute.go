package stage

import (
	"github.com/rs/zerolog"

	"github.com/Beaver-Company/helix/pkg/model"
	"github.com/Beaver-Company/helix/pkg/pending"
	"github.com/Beaver-Company/helix/pkg/rebalance"
	"github.com/Beaver-Company/helix/pkg/stageerr"
	"github.com/Beaver-Company/helix/pkg/throttle"
)

// Compute is the Intermediate Computer's entry point. It validates in, then
// runs one shared throttle.Controller across every resource, in sorted
// resource-name order, per spec §4.6.
func Compute(log zerolog.Logger, in Input) (model.IntermediateStateOutput, []ResourceSummary, error) {
	if err := validate(in); err != nil {
		return nil, nil, err
	}

	liveInstances := in.Cache.GetLiveInstances()
	clusterCfg := in.Cache.GetClusterConfig()

	resourceNames := make([]model.ResourceName, 0, len(in.Resources))
	for name := range in.Resources {
		resourceNames = append(resourceNames, name)
	}
	resourceNames = model.SortResourceNames(resourceNames)

	tc := throttle.New(resourceNames, clusterCfg.Throttle, liveInstances)

	output := make(model.IntermediateStateOutput, len(resourceNames))
	summaries := make([]ResourceSummary, 0, len(resourceNames))

	for _, name := range resourceNames {
		res := in.Resources[name]
		ideal, _ := in.Cache.GetIdealState(name)
		bestPossible := in.BestPossible[name]

		resLog := log.With().Str("resource", string(name)).Logger()
		resLog.Info().Msg("processing resource")

		intermediate, summary := computeResource(resLog, in.Cache, ideal, res, in.CurrentState, bestPossible, tc)
		output[name] = intermediate
		summaries = append(summaries, summary)

		resLog.Info().
			Int("needRecovery", summary.NeedRecovery).
			Int("needLoadBalance", summary.NeedLoadBalance).
			Int("loadBalanceThrottled", summary.LoadBalanceThrottled).
			Msg("done processing resource")
	}

	return output, summaries, nil
}

func validate(in Input) error {
	var missing []string
	if in.CurrentState == nil {
		missing = append(missing, "currentState")
	}
	if in.BestPossible == nil {
		missing = append(missing, "bestPossible")
	}
	if in.Resources == nil {
		missing = append(missing, "resources")
	}
	if in.Cache == nil {
		missing = append(missing, "cache")
	}
	if len(missing) > 0 {
		return stageerr.MissingInput(missing)
	}
	return nil
}

// computeResource implements spec §4.6 steps 1-6 for a single resource.
func computeResource(
	log zerolog.Logger,
	cache DataCache,
	ideal model.IdealState,
	res model.Resource,
	currentStateOutput *model.CurrentStateOutput,
	bestPossible model.PartitionStateMap,
	tc *throttle.Controller,
) (model.PartitionStateMap, ResourceSummary) {
	summary := ResourceSummary{Resource: res.Name}

	// Step 1: passthrough when throttling doesn't apply to this resource.
	if !tc.IsThrottleEnabled() || ideal.RebalanceMode != model.RebalanceModeFullAuto {
		return bestPossible.Clone(), summary
	}

	partitions := res.SortedPartitions()

	intermediate := make(model.PartitionStateMap, len(partitions))
	recoverySet := make(map[model.PartitionName]struct{})
	loadSet := make(map[model.PartitionName]struct{})
	partitionType := make(map[model.PartitionName]model.RebalanceType, len(partitions))

	stateModelDef, _ := cache.GetStateModelDef(ideal.StateModelDefRef)

	// Step 2: classify every partition.
	for _, partition := range partitions {
		currentMap := currentStateOutput.CurrentStateMap(res.Name, partition)
		bestMap := bestPossible[partition]

		rt := rebalance.Classify(bestMap, currentMap, stateModelDef)
		partitionType[partition] = rt

		switch rt {
		case model.RebalanceNone:
			intermediate[partition] = bestMap.Clone()
		case model.RebalanceRecover:
			recoverySet[partition] = struct{}{}
		case model.RebalanceLoad:
			loadSet[partition] = struct{}{}
		}
	}
	summary.NeedRecovery = len(recoverySet)
	summary.NeedLoadBalance = len(loadSet)

	// Step 3: pre-charge in-flight transitions before admitting anything new.
	pending.ChargePendingTransitions(res.Name, partitions, currentStateOutput, tc, func(p model.PartitionName) model.RebalanceType {
		return partitionType[p]
	})

	// Step 4: recovery admission, unconditional.
	admitRecovery(bestPossible, tc, intermediate, recoverySet)

	// Step 5/6: load-balance admission only if the resource needs no recovery.
	if len(recoverySet) == 0 {
		summary.LoadBalanceThrottled = admitLoadBalance(log, res.Name, currentStateOutput, bestPossible, tc, intermediate, loadSet)
	} else {
		for partition := range loadSet {
			intermediate[partition] = currentStateOutput.CurrentStateMap(res.Name, partition).Clone()
		}
	}

	return intermediate, summary
}

// admitRecovery sets every recovery-set partition's intermediate map to its
// best-possible assignment. Recovery is not throttled in this
// specification; tc is threaded through anyway so a future policy can
// consult it without changing this function's signature (spec §9).
func admitRecovery(
	bestPossible model.PartitionStateMap,
	tc *throttle.Controller,
	intermediate model.PartitionStateMap,
	recoverySet map[model.PartitionName]struct{},
) {
	_ = tc // reserved for a future throttled-recovery policy
	for partition := range recoverySet {
		intermediate[partition] = bestPossible[partition].Clone()
	}
}

// admitLoadBalance implements spec §4.6 step 5, returning the number of
// partitions that ended up throttled.
func admitLoadBalance(
	log zerolog.Logger,
	resource model.ResourceName,
	currentStateOutput *model.CurrentStateOutput,
	bestPossible model.PartitionStateMap,
	tc *throttle.Controller,
	intermediate model.PartitionStateMap,
	loadSet map[model.PartitionName]struct{},
) int {
	partitions := make([]model.PartitionName, 0, len(loadSet))
	for p := range loadSet {
		partitions = append(partitions, p)
	}
	sortPartitionNames(partitions)

	throttledCount := 0

	for _, partition := range partitions {
		currentMap := currentStateOutput.CurrentStateMap(resource, partition)
		bestMap := bestPossible[partition]

		allInstances := unionInstances(currentMap, bestMap)

		throttled := false
		if tc.ThrottleForResource(model.RebalanceLoad, resource) {
			throttled = true
			log.Debug().Str("partition", string(partition)).Msg("load balance throttled on resource")
		} else {
			for _, instance := range allInstances {
				bestState, hasBest := bestMap[instance]
				curState := currentMap[instance]
				if hasBest && bestState != curState {
					if tc.ThrottleForInstance(model.RebalanceLoad, instance) {
						throttled = true
						log.Debug().Str("partition", string(partition)).Str("instance", string(instance)).Msg("load balance throttled on instance")
					}
				}
			}
		}

		if !throttled {
			intermediate[partition] = bestMap.Clone()
			for _, instance := range allInstances {
				bestState, hasBest := bestMap[instance]
				curState := currentMap[instance]
				if hasBest && bestState != curState {
					tc.ChargeInstance(model.RebalanceLoad, instance)
				}
			}
			tc.ChargeResource(model.RebalanceLoad, resource)
			tc.ChargeCluster(model.RebalanceLoad)
		} else {
			intermediate[partition] = currentMap.Clone()
			throttledCount++
		}
	}

	return throttledCount
}

func unionInstances(a, b model.StateMap) []model.InstanceID {
	set := make(map[model.InstanceID]struct{}, len(a)+len(b))
	for id := range a {
		set[id] = struct{}{}
	}
	for id := range b {
		set[id] = struct{}{}
	}
	out := make([]model.InstanceID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sortInstanceIDs(out)
	return out
}

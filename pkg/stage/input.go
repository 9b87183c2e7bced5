// Package stage implements the Intermediate Computer (spec §4.6): the
// orchestration core that classifies each partition, pre-charges pending
// transitions, and admits recovery work ahead of load-balance work, subject
// to the throttle ledger.
package stage

import "github.com/Beaver-Company/helix/pkg/model"

// DataCache is the subset of the cluster metadata cache the Intermediate
// Computer needs (spec §6). Reading cluster metadata from the distributed
// store is out of scope for this module; DataCache is the seam an external
// collaborator implements. pkg/cache ships an in-memory reference
// implementation.
type DataCache interface {
	GetIdealState(resource model.ResourceName) (model.IdealState, bool)
	GetStateModelDef(name string) (model.StateModelDefinition, bool)
	GetLiveInstances() []model.InstanceID
	GetClusterConfig() model.ClusterConfig
}

// Input bundles exactly the fields spec §6 lists as consumed by the stage,
// replacing the original pipeline's string-keyed attribute bag with a typed
// record (spec.md §9's "pipeline coupling by attribute map is an
// anti-pattern" note).
type Input struct {
	CurrentState *model.CurrentStateOutput
	BestPossible model.BestPossibleStateOutput
	Resources    map[model.ResourceName]model.Resource
	Cache        DataCache
}

// ResourceSummary is the diagnostic decision summary emitted once per
// resource (spec §4.6, "Emitted decision summary"): counts only, never
// assignment data.
type ResourceSummary struct {
	Resource             model.ResourceName
	NeedRecovery         int
	NeedLoadBalance      int
	LoadBalanceThrottled int
}

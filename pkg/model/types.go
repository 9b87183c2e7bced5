// Package model holds the plain data types shared by the rebalance pipeline:
// instances, partitions, states, state models, and the various maps that
// flow between the compatibility gate and the intermediate computer.
package model

// InstanceID identifies a participant within a cluster. Opaque, unique
// within a cluster.
type InstanceID string

// ResourceName identifies a resource (a collection of partitions) within a
// cluster.
type ResourceName string

// PartitionName identifies a partition within a resource. (ResourceName,
// PartitionName) is unique.
type PartitionName string

// StateName is an opaque state label, e.g. "MASTER", "SLAVE", "OFFLINE".
type StateName string

// Reserved state names: never the cause of a RECOVERY_BALANCE classification.
const (
	StateDropped StateName = "DROPPED"
	StateError   StateName = "ERROR"
)

// RebalanceMode controls whether a resource is subject to throttling at all.
type RebalanceMode string

const (
	RebalanceModeFullAuto   RebalanceMode = "FULL_AUTO"
	RebalanceModeSemiAuto   RebalanceMode = "SEMI_AUTO"
	RebalanceModeCustomized RebalanceMode = "CUSTOMIZED"
	RebalanceModeUserDefine RebalanceMode = "USER_DEFINED"
)

// RebalanceType is the classification a partition receives during
// computation of the intermediate state.
type RebalanceType string

const (
	RebalanceNone    RebalanceType = "NONE"
	RebalanceRecover RebalanceType = "RECOVERY_BALANCE"
	RebalanceLoad    RebalanceType = "LOAD_BALANCE"
)

// StateMap is an instance -> state assignment for a single partition.
type StateMap map[InstanceID]StateName

// Clone returns a shallow copy of m; m may be nil, in which case an empty,
// non-nil map is returned.
func (m StateMap) Clone() StateMap {
	out := make(StateMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Equal reports whether m and other contain exactly the same instance/state
// pairs.
func (m StateMap) Equal(other StateMap) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// SortedInstances returns the instance IDs of m in ascending order, for
// deterministic iteration.
func (m StateMap) SortedInstances() []InstanceID {
	out := make([]InstanceID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sortInstanceIDs(out)
	return out
}

// PartitionStateMap maps a partition to its instance->state assignment.
type PartitionStateMap map[PartitionName]StateMap

// Clone returns a deep copy of m; m may be nil, in which case an empty,
// non-nil map is returned.
func (m PartitionStateMap) Clone() PartitionStateMap {
	out := make(PartitionStateMap, len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}

// SortedPartitions returns the partition names of m in ascending order.
func (m PartitionStateMap) SortedPartitions() []PartitionName {
	out := make([]PartitionName, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sortPartitionNames(out)
	return out
}

// BestPossibleStateOutput is the target assignment computed upstream, one
// PartitionStateMap per resource.
type BestPossibleStateOutput map[ResourceName]PartitionStateMap

// PartitionMap returns the best-possible assignment for (resource,
// partition), or an empty map if the resource or partition is unknown.
func (o BestPossibleStateOutput) PartitionMap(resource ResourceName, partition PartitionName) StateMap {
	if res, ok := o[resource]; ok {
		if pm, ok := res[partition]; ok {
			return pm
		}
	}
	return StateMap{}
}

// IntermediateStateOutput is the computed result: one PartitionStateMap per
// resource.
type IntermediateStateOutput map[ResourceName]PartitionStateMap

// StateModelDefinition declares the priority-ordered set of states a
// partition's replicas can occupy, and which of them is the initial state a
// replica starts in before any transition.
type StateModelDefinition struct {
	Name               string
	StatesPriorityList []StateName // highest priority first
	InitialState       StateName
}

// IsReserved reports whether s is DROPPED, ERROR, or the model's initial
// state — states whose deficits never trigger recovery.
func (d StateModelDefinition) IsReserved(s StateName) bool {
	return s == StateDropped || s == StateError || s == d.InitialState
}

// IdealState describes a resource's rebalance mode and which state model it
// follows.
type IdealState struct {
	Resource         ResourceName
	RebalanceMode    RebalanceMode
	StateModelDefRef string
}

// Resource is a resource name plus its ordered partition list.
type Resource struct {
	Name       ResourceName
	Partitions []PartitionName
}

// SortedPartitions returns r.Partitions sorted ascending, without mutating
// r.Partitions.
func (r Resource) SortedPartitions() []PartitionName {
	out := append([]PartitionName(nil), r.Partitions...)
	sortPartitionNames(out)
	return out
}

package model

// CurrentStateOutput reports, per (resource, partition), the most recently
// observed assignment and any transitions already issued but not yet
// acknowledged (pending). It is built once per invocation and treated as
// read-only by the rebalance pipeline.
type CurrentStateOutput struct {
	current map[ResourceName]PartitionStateMap
	pending map[ResourceName]PartitionStateMap
}

// NewCurrentStateOutput returns an empty, ready-to-populate
// CurrentStateOutput.
func NewCurrentStateOutput() *CurrentStateOutput {
	return &CurrentStateOutput{
		current: make(map[ResourceName]PartitionStateMap),
		pending: make(map[ResourceName]PartitionStateMap),
	}
}

// SetCurrentState records the observed assignment for (resource, partition).
func (o *CurrentStateOutput) SetCurrentState(resource ResourceName, partition PartitionName, states StateMap) {
	o.set(o.current, resource, partition, states)
}

// SetPendingState records an in-flight, not-yet-acknowledged assignment for
// (resource, partition).
func (o *CurrentStateOutput) SetPendingState(resource ResourceName, partition PartitionName, states StateMap) {
	o.set(o.pending, resource, partition, states)
}

func (o *CurrentStateOutput) set(dst map[ResourceName]PartitionStateMap, resource ResourceName, partition PartitionName, states StateMap) {
	res, ok := dst[resource]
	if !ok {
		res = make(PartitionStateMap)
		dst[resource] = res
	}
	res[partition] = states
}

// CurrentStateMap returns the observed assignment for (resource, partition),
// or an empty, non-nil map if none was recorded.
func (o *CurrentStateOutput) CurrentStateMap(resource ResourceName, partition PartitionName) StateMap {
	return get(o.current, resource, partition)
}

// PendingStateMap returns the pending assignment for (resource, partition),
// or an empty, non-nil map if none is in flight.
func (o *CurrentStateOutput) PendingStateMap(resource ResourceName, partition PartitionName) StateMap {
	return get(o.pending, resource, partition)
}

func get(src map[ResourceName]PartitionStateMap, resource ResourceName, partition PartitionName) StateMap {
	if res, ok := src[resource]; ok {
		if pm, ok := res[partition]; ok {
			return pm
		}
	}
	return StateMap{}
}

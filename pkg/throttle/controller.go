// Package throttle implements the Throttle Controller (spec §4.4): three
// quota ledgers (cluster, per-resource, per-instance) keyed by rebalance
// type, with charge/query operations. It is a plain value type with
// unsynchronized counters — callers (the Intermediate Computer and the
// Pending-Transition Accountant) run single-threaded per invocation, per
// spec §5, so no locking is needed.
package throttle

import "github.com/Beaver-Company/helix/pkg/model"

type resourceKey struct {
	t        model.RebalanceType
	resource model.ResourceName
}

type instanceKey struct {
	t        model.RebalanceType
	instance model.InstanceID
}

// Controller owns the three throttle ledgers for a single computation. A
// fresh Controller must be constructed for every invocation of the
// Intermediate Computer; it must never be reused across invocations or
// shared between concurrently-running ones.
type Controller struct {
	enabled bool
	cfg     model.ThrottleConfig

	liveInstances map[model.InstanceID]struct{}

	clusterCount  map[model.RebalanceType]int
	resourceCount map[resourceKey]int
	instanceCount map[instanceKey]int
}

// New constructs a Controller for the given resource set, cluster throttle
// configuration, and live-instance set. resources is currently unused by
// the ledger itself (limits are looked up per call) but is accepted, as the
// original API does, so a future policy keyed on the full resource set
// (e.g. proportional per-resource budgets) doesn't need a signature change.
func New(resources []model.ResourceName, cfg model.ThrottleConfig, liveInstances []model.InstanceID) *Controller {
	live := make(map[model.InstanceID]struct{}, len(liveInstances))
	for _, id := range liveInstances {
		live[id] = struct{}{}
	}
	return &Controller{
		enabled:       cfg.Enabled,
		cfg:           cfg,
		liveInstances: live,
		clusterCount:  make(map[model.RebalanceType]int),
		resourceCount: make(map[resourceKey]int),
		instanceCount: make(map[instanceKey]int),
	}
}

// IsThrottleEnabled reports whether throttling is active at all for this
// invocation. When false, every ThrottleFor* query returns false regardless
// of counters — throttling is bypassed entirely, not merely unlimited.
func (c *Controller) IsThrottleEnabled() bool {
	return c.enabled
}

// ThrottleForResource reports whether resource has reached its quota for t,
// or whether the cluster-wide quota for t is already exhausted (cluster
// scope short-circuits the resource check).
func (c *Controller) ThrottleForResource(t model.RebalanceType, resource model.ResourceName) bool {
	if !c.enabled {
		return false
	}
	if c.clusterThrottled(t) {
		return true
	}
	limit := c.cfg.Limits(t).Resource
	if limit == nil {
		return false
	}
	return c.resourceCount[resourceKey{t, resource}] >= *limit
}

// ThrottleForInstance reports whether instance has reached its quota for t,
// or whether the cluster-wide quota for t is already exhausted.
func (c *Controller) ThrottleForInstance(t model.RebalanceType, instance model.InstanceID) bool {
	if !c.enabled {
		return false
	}
	if c.clusterThrottled(t) {
		return true
	}
	limit := c.cfg.Limits(t).Instance
	if limit == nil {
		return false
	}
	return c.instanceCount[instanceKey{t, instance}] >= *limit
}

func (c *Controller) clusterThrottled(t model.RebalanceType) bool {
	limit := c.cfg.Limits(t).Cluster
	if limit == nil {
		return false
	}
	return c.clusterCount[t] >= *limit
}

// ChargeCluster increments the cluster-scope counter for t.
func (c *Controller) ChargeCluster(t model.RebalanceType) {
	c.clusterCount[t]++
}

// ChargeResource increments the resource-scope counter for (t, resource).
func (c *Controller) ChargeResource(t model.RebalanceType, resource model.ResourceName) {
	c.resourceCount[resourceKey{t, resource}]++
}

// ChargeInstance increments the instance-scope counter for (t, instance).
func (c *Controller) ChargeInstance(t model.RebalanceType, instance model.InstanceID) {
	c.instanceCount[instanceKey{t, instance}]++
}

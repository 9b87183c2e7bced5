// Package cache provides an in-memory, concurrency-safe reference
// implementation of stage.DataCache — the "read cluster metadata from the
// distributed store" collaborator the core treats as out of scope. It backs
// tests, the CLI demo, and simulations that need something other than a
// mock.
//
// Grounded on the teacher's registries in internal/scheduler/scheduler.go
// and internal/tracker/manager.go, which both back concurrent lookups with
// github.com/orcaman/concurrent-map/v2 rather than a mutex-guarded map.
package cache

import (
	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/Beaver-Company/helix/pkg/model"
)

// MemCache is a plain in-memory cluster data cache. Safe for concurrent use
// by multiple goroutines each running an independent stage.Compute
// invocation: it is backed by concurrent maps, and the methods stage.Compute
// calls are pure lookups.
type MemCache struct {
	idealStates   cmap.ConcurrentMap[string, model.IdealState]
	stateModels   cmap.ConcurrentMap[string, model.StateModelDefinition]
	liveInstances cmap.ConcurrentMap[string, string] // instance ID -> declared version ("" = unknown)
	clusterConfig model.ClusterConfig
}

// New returns an empty MemCache seeded with clusterConfig.
func New(clusterConfig model.ClusterConfig) *MemCache {
	return &MemCache{
		idealStates:   cmap.New[model.IdealState](),
		stateModels:   cmap.New[model.StateModelDefinition](),
		liveInstances: cmap.New[string](),
		clusterConfig: clusterConfig,
	}
}

// SetIdealState registers (or replaces) the ideal state for a resource.
func (c *MemCache) SetIdealState(is model.IdealState) {
	c.idealStates.Set(string(is.Resource), is)
}

// SetStateModelDef registers (or replaces) a state model definition.
func (c *MemCache) SetStateModelDef(def model.StateModelDefinition) {
	c.stateModels.Set(def.Name, def)
}

// SetLiveInstance marks instance as live, with an optional declared
// version (empty string means "no declared version").
func (c *MemCache) SetLiveInstance(instance model.InstanceID, version string) {
	c.liveInstances.Set(string(instance), version)
}

// RemoveLiveInstance marks instance as no longer live.
func (c *MemCache) RemoveLiveInstance(instance model.InstanceID) {
	c.liveInstances.Remove(string(instance))
}

// GetIdealState implements stage.DataCache.
func (c *MemCache) GetIdealState(resource model.ResourceName) (model.IdealState, bool) {
	return c.idealStates.Get(string(resource))
}

// GetStateModelDef implements stage.DataCache.
func (c *MemCache) GetStateModelDef(name string) (model.StateModelDefinition, bool) {
	return c.stateModels.Get(name)
}

// GetLiveInstances implements stage.DataCache.
func (c *MemCache) GetLiveInstances() []model.InstanceID {
	out := make([]model.InstanceID, 0, c.liveInstances.Count())
	for id := range c.liveInstances.Items() {
		out = append(out, model.InstanceID(id))
	}
	return out
}

// GetClusterConfig implements stage.DataCache.
func (c *MemCache) GetClusterConfig() model.ClusterConfig {
	return c.clusterConfig
}

// LiveInstanceVersions returns the declared version of every live instance,
// in the shape pkg/version.Check expects. An empty declared version becomes
// a nil *string (meaning "no declared version").
func (c *MemCache) LiveInstanceVersions() map[model.InstanceID]*string {
	out := make(map[model.InstanceID]*string, c.liveInstances.Count())
	for id, v := range c.liveInstances.Items() {
		v := v
		if v == "" {
			out[model.InstanceID(id)] = nil
			continue
		}
		out[model.InstanceID(id)] = &v
	}
	return out
}

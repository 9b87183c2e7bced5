package main

import (
	"os"

	"github.com/goccy/go-json"

	"github.com/Beaver-Company/helix/pkg/cache"
	"github.com/Beaver-Company/helix/pkg/model"
	"github.com/Beaver-Company/helix/pkg/stage"
)

// snapshotDoc is the on-disk shape of a cluster snapshot: enough of the
// distributed store's state to run one Compute invocation without a real
// cluster manager backing it.
type snapshotDoc struct {
	Cluster       string            `json:"cluster"`
	Resources     []resourceDoc     `json:"resources"`
	LiveInstances []liveInstanceDoc `json:"liveInstances"`
}

type resourceDoc struct {
	Name          string        `json:"name"`
	RebalanceMode string        `json:"rebalanceMode"`
	StateModel    stateModelDoc `json:"stateModel"`
	Partitions    []partitionDoc `json:"partitions"`
}

type stateModelDoc struct {
	Name               string   `json:"name"`
	StatesPriorityList []string `json:"statesPriorityList"`
	InitialState       string   `json:"initialState"`
}

type partitionDoc struct {
	Name         string            `json:"name"`
	Current      map[string]string `json:"current"`
	Pending      map[string]string `json:"pending"`
	BestPossible map[string]string `json:"bestPossible"`
}

type liveInstanceDoc struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

// loadSnapshot reads and parses a snapshot document from path.
func loadSnapshot(path string) (snapshotDoc, error) {
	var doc snapshotDoc
	raw, err := os.ReadFile(path)
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, err
	}
	return doc, nil
}

// buildInput materializes doc into a stage.Input backed by a fresh
// pkg/cache.MemCache, plus the MemCache itself (so the caller can also run
// the version compatibility gate against it).
func buildInput(doc snapshotDoc, cfg model.ClusterConfig) (stage.Input, *cache.MemCache) {
	if cfg.ClusterName == "" {
		cfg.ClusterName = doc.Cluster
	}
	mc := cache.New(cfg)

	currentState := model.NewCurrentStateOutput()
	bestPossible := make(model.BestPossibleStateOutput, len(doc.Resources))
	resources := make(map[model.ResourceName]model.Resource, len(doc.Resources))

	for _, r := range doc.Resources {
		name := model.ResourceName(r.Name)

		mc.SetStateModelDef(model.StateModelDefinition{
			Name:               r.StateModel.Name,
			StatesPriorityList: toStateNames(r.StateModel.StatesPriorityList),
			InitialState:       model.StateName(r.StateModel.InitialState),
		})
		mc.SetIdealState(model.IdealState{
			Resource:         name,
			RebalanceMode:    model.RebalanceMode(r.RebalanceMode),
			StateModelDefRef: r.StateModel.Name,
		})

		partitions := make([]model.PartitionName, 0, len(r.Partitions))
		bestForResource := make(model.PartitionStateMap, len(r.Partitions))

		for _, p := range r.Partitions {
			pname := model.PartitionName(p.Name)
			partitions = append(partitions, pname)
			currentState.SetCurrentState(name, pname, toStateMap(p.Current))
			currentState.SetPendingState(name, pname, toStateMap(p.Pending))
			bestForResource[pname] = toStateMap(p.BestPossible)
		}

		resources[name] = model.Resource{Name: name, Partitions: partitions}
		bestPossible[name] = bestForResource
	}

	for _, li := range doc.LiveInstances {
		mc.SetLiveInstance(model.InstanceID(li.ID), li.Version)
	}

	return stage.Input{
		CurrentState: currentState,
		BestPossible: bestPossible,
		Resources:    resources,
		Cache:        mc,
	}, mc
}

func toStateNames(ss []string) []model.StateName {
	out := make([]model.StateName, len(ss))
	for i, s := range ss {
		out[i] = model.StateName(s)
	}
	return out
}

func toStateMap(m map[string]string) model.StateMap {
	out := make(model.StateMap, len(m))
	for k, v := range m {
		out[model.InstanceID(k)] = model.StateName(v)
	}
	return out
}

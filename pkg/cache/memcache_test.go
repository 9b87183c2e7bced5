package cache

import (
	"testing"

	"github.com/Beaver-Company/helix/pkg/model"
)

func TestMemCache_IdealStateRoundTrip(t *testing.T) {
	c := New(model.ClusterConfig{ClusterName: "test"})
	is := model.IdealState{Resource: "r1", RebalanceMode: model.RebalanceModeFullAuto, StateModelDefRef: "MasterSlave"}
	c.SetIdealState(is)

	got, ok := c.GetIdealState("r1")
	if !ok {
		t.Fatal("expected ideal state to be found")
	}
	if got != is {
		t.Errorf("GetIdealState = %+v, want %+v", got, is)
	}
	if _, ok := c.GetIdealState("missing"); ok {
		t.Error("expected unknown resource to be absent")
	}
}

func TestMemCache_LiveInstanceVersions(t *testing.T) {
	c := New(model.ClusterConfig{})
	c.SetLiveInstance("i1", "0.6.1")
	c.SetLiveInstance("i2", "")

	versions := c.LiveInstanceVersions()
	if versions["i1"] == nil || *versions["i1"] != "0.6.1" {
		t.Errorf("versions[i1] = %v, want 0.6.1", versions["i1"])
	}
	if versions["i2"] != nil {
		t.Errorf("versions[i2] = %v, want nil for an unknown declared version", versions["i2"])
	}
}

func TestMemCache_RemoveLiveInstance(t *testing.T) {
	c := New(model.ClusterConfig{})
	c.SetLiveInstance("i1", "0.6.1")
	c.RemoveLiveInstance("i1")

	for _, id := range c.GetLiveInstances() {
		if id == "i1" {
			t.Fatal("expected i1 to be removed from live instances")
		}
	}
}

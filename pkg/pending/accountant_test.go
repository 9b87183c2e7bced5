package pending

import (
	"testing"

	"github.com/Beaver-Company/helix/pkg/model"
	"github.com/Beaver-Company/helix/pkg/throttle"
)

func limit(n int) *int { return &n }

func TestChargePendingTransitions_ChargesClusterResourceAndDiffInstances(t *testing.T) {
	cso := model.NewCurrentStateOutput()
	cso.SetCurrentState("r1", "p1", model.StateMap{"i1": "SLAVE", "i2": "MASTER"})
	cso.SetPendingState("r1", "p1", model.StateMap{"i1": "MASTER", "i2": "MASTER"})

	cfg := model.ThrottleConfig{
		Enabled:         true,
		RecoveryBalance: model.ScopeLimits{Cluster: limit(0), Resource: limit(0), Instance: limit(0)},
	}
	tc := throttle.New([]model.ResourceName{"r1"}, cfg, []model.InstanceID{"i1", "i2"})

	classify := func(model.PartitionName) model.RebalanceType { return model.RebalanceRecover }
	ChargePendingTransitions("r1", []model.PartitionName{"p1"}, cso, tc, classify)

	if !tc.ThrottleForResource(model.RebalanceRecover, "r1") {
		t.Error("expected the resource-scope counter to have been charged")
	}
	if !tc.ThrottleForInstance(model.RebalanceRecover, "i1") {
		t.Error("expected i1 to be charged (pending MASTER differs from current SLAVE)")
	}
	if tc.ThrottleForInstance(model.RebalanceRecover, "i2") {
		t.Error("expected i2 to not be charged (pending equals current)")
	}
}

func TestChargePendingTransitions_SkipsPartitionsWithNoPending(t *testing.T) {
	cso := model.NewCurrentStateOutput()
	cso.SetCurrentState("r1", "p1", model.StateMap{"i1": "MASTER"})

	cfg := model.ThrottleConfig{
		Enabled:         true,
		RecoveryBalance: model.ScopeLimits{Cluster: limit(0)},
	}
	tc := throttle.New([]model.ResourceName{"r1"}, cfg, []model.InstanceID{"i1"})

	classify := func(model.PartitionName) model.RebalanceType { return model.RebalanceRecover }
	ChargePendingTransitions("r1", []model.PartitionName{"p1"}, cso, tc, classify)

	if tc.ThrottleForResource(model.RebalanceRecover, "r1") {
		t.Error("expected no charge for a partition with no pending transitions")
	}
}

func TestChargePendingTransitions_SkipsNoneClassification(t *testing.T) {
	cso := model.NewCurrentStateOutput()
	cso.SetCurrentState("r1", "p1", model.StateMap{"i1": "MASTER"})
	cso.SetPendingState("r1", "p1", model.StateMap{"i1": "MASTER"})

	cfg := model.ThrottleConfig{
		Enabled: true,
		LoadBalance: model.ScopeLimits{Cluster: limit(0)},
	}
	tc := throttle.New([]model.ResourceName{"r1"}, cfg, []model.InstanceID{"i1"})

	classify := func(model.PartitionName) model.RebalanceType { return model.RebalanceNone }
	ChargePendingTransitions("r1", []model.PartitionName{"p1"}, cso, tc, classify)

	if tc.ThrottleForResource(model.RebalanceLoad, "r1") {
		t.Error("expected NONE-classified partitions to never be charged")
	}
}

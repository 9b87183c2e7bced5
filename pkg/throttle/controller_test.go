package throttle

import (
	"testing"

	"github.com/Beaver-Company/helix/pkg/model"
)

func limit(n int) *int { return &n }

func TestThrottle_DisabledNeverThrottles(t *testing.T) {
	cfg := model.ThrottleConfig{
		Enabled:     false,
		LoadBalance: model.ScopeLimits{Cluster: limit(0), Resource: limit(0), Instance: limit(0)},
	}
	c := New(nil, cfg, nil)
	if c.IsThrottleEnabled() {
		t.Fatal("expected throttling disabled")
	}
	if c.ThrottleForResource(model.RebalanceLoad, "r1") {
		t.Error("expected ThrottleForResource to always return false when disabled")
	}
	if c.ThrottleForInstance(model.RebalanceLoad, "i1") {
		t.Error("expected ThrottleForInstance to always return false when disabled")
	}
}

func TestThrottle_ClusterScopeShortCircuitsResourceScope(t *testing.T) {
	cfg := model.ThrottleConfig{
		Enabled:     true,
		LoadBalance: model.ScopeLimits{Cluster: limit(1), Resource: limit(100)},
	}
	c := New(nil, cfg, nil)
	c.ChargeCluster(model.RebalanceLoad)
	if !c.ThrottleForResource(model.RebalanceLoad, "r1") {
		t.Error("expected resource-scope query to be throttled once cluster quota is exhausted")
	}
}

func TestThrottle_ResourceScopeIndependentPerResource(t *testing.T) {
	cfg := model.ThrottleConfig{
		Enabled:     true,
		LoadBalance: model.ScopeLimits{Resource: limit(1)},
	}
	c := New(nil, cfg, nil)
	c.ChargeResource(model.RebalanceLoad, "r1")
	if !c.ThrottleForResource(model.RebalanceLoad, "r1") {
		t.Error("expected r1 to be throttled after reaching its quota")
	}
	if c.ThrottleForResource(model.RebalanceLoad, "r2") {
		t.Error("expected r2's quota to be independent of r1's")
	}
}

func TestThrottle_InstanceScopeIndependentPerInstance(t *testing.T) {
	cfg := model.ThrottleConfig{
		Enabled:     true,
		RecoveryBalance: model.ScopeLimits{Instance: limit(2)},
	}
	c := New(nil, cfg, nil)
	c.ChargeInstance(model.RebalanceRecover, "i1")
	if c.ThrottleForInstance(model.RebalanceRecover, "i1") {
		t.Error("expected i1 to still be under quota after one charge")
	}
	c.ChargeInstance(model.RebalanceRecover, "i1")
	if !c.ThrottleForInstance(model.RebalanceRecover, "i1") {
		t.Error("expected i1 to be throttled after reaching its quota")
	}
}

func TestThrottle_NoLimitMeansUnbounded(t *testing.T) {
	cfg := model.ThrottleConfig{Enabled: true}
	c := New(nil, cfg, nil)
	for i := 0; i < 1000; i++ {
		c.ChargeResource(model.RebalanceLoad, "r1")
	}
	if c.ThrottleForResource(model.RebalanceLoad, "r1") {
		t.Error("expected no limit to mean unbounded")
	}
}

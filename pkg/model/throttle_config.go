package model

import "google.golang.org/protobuf/types/known/structpb"

// ScopeLimits carries the optional per-scope quota for one rebalance type.
// A nil field means that scope is unbounded for that rebalance type.
type ScopeLimits struct {
	Cluster  *int `json:"cluster,omitempty" mapstructure:"cluster"`
	Resource *int `json:"resource,omitempty" mapstructure:"resource"`
	Instance *int `json:"instance,omitempty" mapstructure:"instance"`
}

// ThrottleConfig is the configuration surface described in spec §6: a
// global enable flag plus per-rebalance-type scope limits.
type ThrottleConfig struct {
	Enabled         bool        `json:"throttleEnabled" mapstructure:"throttleEnabled"`
	RecoveryBalance ScopeLimits `json:"recoveryBalance" mapstructure:"recoveryBalance"`
	LoadBalance     ScopeLimits `json:"loadBalance" mapstructure:"loadBalance"`
}

// Limits returns the ScopeLimits configured for t, or a zero-value
// (all-unbounded) ScopeLimits for any other rebalance type.
func (c ThrottleConfig) Limits(t RebalanceType) ScopeLimits {
	switch t {
	case RebalanceRecover:
		return c.RecoveryBalance
	case RebalanceLoad:
		return c.LoadBalance
	default:
		return ScopeLimits{}
	}
}

// ClusterConfig bundles the throttle configuration with the small amount of
// other cluster-scoped metadata the pipeline needs.
type ClusterConfig struct {
	ClusterName string
	Throttle    ThrottleConfig

	// Extra carries vendor- or deployment-specific config keys the pipeline
	// itself never reads, kept as a generic payload (rather than a second
	// typed struct per deployment) so pkg/config doesn't need to know about
	// them to round-trip a config document unchanged.
	Extra *structpb.Struct
}

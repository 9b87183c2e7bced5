// Package eventbus implements the optional Decision Feed (spec §2, §6): a
// place to publish the per-resource decision summary the Intermediate
// Computer produces, for observability. It never carries a state-transition
// payload — only counts — so it does not fall under the "dispatching the
// resulting state-transition messages" the core explicitly keeps out of
// scope.
package eventbus

import "context"

// Summary is the shape a Publisher sends: stage.ResourceSummary's counts
// plus invocation and cluster identifiers, and no assignment data, so a
// publisher implementation can't accidentally grow into a state-transition
// dispatcher.
type Summary struct {
	InvocationID         string `json:"invocationId"`
	Cluster              string `json:"cluster"`
	Resource             string `json:"resource"`
	NeedRecovery         int    `json:"needRecovery"`
	NeedLoadBalance      int    `json:"needLoadBalance"`
	LoadBalanceThrottled int    `json:"loadBalanceThrottled"`
}

// Publisher publishes decision summaries. Publish must not block the
// caller indefinitely; implementations should respect ctx's deadline.
type Publisher interface {
	Publish(ctx context.Context, summary Summary) error
}

// NopPublisher discards every summary. It is the default when no feed is
// configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Summary) error { return nil }

package eventbus

import (
	"context"
	"testing"
)

func TestNopPublisher_NeverErrors(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.Publish(context.Background(), Summary{Resource: "r1"}); err != nil {
		t.Errorf("expected NopPublisher to never error, got %v", err)
	}
}

package eventbus

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
)

// NatsPublisher publishes decision summaries as JSON messages on a NATS
// subject. Grounded on the teacher's server.go/internal/server/server.go,
// which both hold a *nats.Conn injected by the caller rather than dialing
// their own connection.
type NatsPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNatsPublisher wraps an already-connected *nats.Conn. subject is the
// NATS subject decision summaries are published to, e.g.
// "helix.decisions.<cluster>".
func NewNatsPublisher(conn *nats.Conn, subject string) *NatsPublisher {
	return &NatsPublisher{conn: conn, subject: subject}
}

// Publish marshals summary with goccy/go-json and publishes it. ctx is only
// consulted for cancellation before the call; nats.Conn.Publish itself is
// non-blocking (fire-and-forget over the client's outbound buffer).
func (p *NatsPublisher) Publish(ctx context.Context, summary Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal decision summary: %w", err)
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish decision summary: %w", err)
	}
	return nil
}

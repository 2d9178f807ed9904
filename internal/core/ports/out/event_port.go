package out

import "context"

// EventPublisherPort is fire-and-forget: Publish enqueues the message and
// returns; delivery outcome is observed asynchronously by the adapter and
// only logged, never surfaced to the caller.
type EventPublisherPort interface {
	Publish(ctx context.Context, topic string, key string, payload []byte)
}

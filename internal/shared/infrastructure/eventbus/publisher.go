// Package eventbus publishes domain events after state changes commit.
// Local mode dispatches synchronously in process; with a RabbitMQ URL
// configured, events also fan out to a topic exchange.
package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/followthru/followthru/internal/shared/domain"
)

// Publisher sends serialized domain events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}

// PublishDomainEvents marshals and publishes each event in order.
// Publishing is best-effort: a failed event is logged and skipped so a
// broker outage never blocks a local mutation.
func PublishDomainEvents(ctx context.Context, pub Publisher, logger *slog.Logger, events []domain.DomainEvent) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			logger.Error("failed to marshal domain event",
				"routing_key", event.RoutingKey(),
				"event_id", event.EventID(),
				"error", err,
			)
			continue
		}
		if err := pub.Publish(ctx, event.RoutingKey(), payload); err != nil {
			logger.Error("failed to publish domain event",
				"routing_key", event.RoutingKey(),
				"event_id", event.EventID(),
				"error", err,
			)
		}
	}
}

// NoopPublisher is a no-op publisher for testing/development.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates a publisher that does nothing.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

// Publish logs the message but doesn't actually publish.
func (p *NoopPublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.logger.Debug("noop publish",
		"routing_key", routingKey,
		"size", len(payload),
	)
	return nil
}

// Close is a no-op.
func (p *NoopPublisher) Close() error {
	return nil
}

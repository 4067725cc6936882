package eventbus

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Handler consumes a published event payload.
type Handler func(ctx context.Context, routingKey string, payload []byte) error

// InProcessBus delivers events synchronously to registered handlers.
// It is the default Publisher when no broker is configured.
type InProcessBus struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewInProcessBus creates a new in-process event bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		logger:   logger,
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers a handler for a routing key. The wildcard "#"
// receives every event.
func (b *InProcessBus) Subscribe(routingKey string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[routingKey] = append(b.handlers[routingKey], handler)
}

// Publish dispatches the event to all matching handlers. Handler
// failures are logged, not returned: a consumer error must not fail
// the publishing mutation.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[routingKey])+len(b.handlers["#"]))
	handlers = append(handlers, b.handlers[routingKey]...)
	handlers = append(handlers, b.handlers["#"]...)
	b.mu.RUnlock()

	start := time.Now()
	for _, h := range handlers {
		if err := h(ctx, routingKey, payload); err != nil {
			b.logger.Error("event handler failed",
				"routing_key", routingKey,
				"error", err,
			)
		}
	}

	b.logger.Debug("event dispatched",
		"routing_key", routingKey,
		"handlers", len(handlers),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessBus) Close() error {
	return nil
}

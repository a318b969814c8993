package events

import (
	"context"
	"log/slog"
)

// NoopEventPublisher drops events, logging them at debug level. Used
// when no broker is configured.
type NoopEventPublisher struct {
	logger *slog.Logger
}

func NewNoopEventPublisher(logger *slog.Logger) *NoopEventPublisher {
	return &NoopEventPublisher{logger: logger}
}

func (p *NoopEventPublisher) Publish(ctx context.Context, event *Event) error {
	p.logger.Debug("event dropped, no broker configured", "event_type", event.Type)
	return nil
}

func (p *NoopEventPublisher) Close() error { return nil }

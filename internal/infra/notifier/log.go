// Package notifier delivers session events to collaborators outside the
// process: the structured log, and an optional webhook.
package notifier

import (
	"context"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"
	"github.com/stellacofre/stellacofre-bfa-go/internal/port"

	"go.uber.org/zap"
)

// LogPublisher writes every event to the logger.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.Named("events")}
}

// Publish implements port.EventPublisher.
func (p *LogPublisher) Publish(_ context.Context, events ...domain.Event) error {
	for _, e := range events {
		fields := []zap.Field{
			zap.String("event_id", e.ID),
			zap.String("type", string(e.Type)),
			zap.String("session_id", e.SessionID),
		}
		if e.Destination != "" {
			fields = append(fields, zap.String("destination", e.Destination))
		}
		if e.Reason != "" {
			fields = append(fields, zap.String("reason", e.Reason))
		}
		if len(e.FieldErrors) > 0 {
			fields = append(fields, zap.String("form", e.Form), zap.Any("field_errors", e.FieldErrors))
		}
		if e.Profile != nil {
			fields = append(fields, zap.Any("profile", e.Profile))
		}
		if e.WalletID != "" {
			fields = append(fields, zap.String("wallet_id", e.WalletID))
		}
		if e.Goal != nil {
			fields = append(fields, zap.String("goal_id", e.Goal.ID), zap.String("category_id", e.Goal.CategoryID))
		}
		p.logger.Info("event", fields...)
	}
	return nil
}

// Multi fans events out to several publishers. Every publisher is tried;
// the first error is returned.
type Multi []port.EventPublisher

// Publish implements port.EventPublisher.
func (m Multi) Publish(ctx context.Context, events ...domain.Event) error {
	var first error
	for _, p := range m {
		if err := p.Publish(ctx, events...); err != nil && first == nil {
			first = err
		}
	}
	return first
}

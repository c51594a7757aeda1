package service

import (
	"time"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"

	"github.com/segmentio/ksuid"
)

// newEvent stamps an event with a sortable id and the emission time.
func newEvent(sessionID string, t domain.EventType, now time.Time) domain.Event {
	return domain.Event{
		ID:         ksuid.New().String(),
		Type:       t,
		SessionID:  sessionID,
		OccurredAt: now.UTC(),
	}
}

func toast(level domain.ToastLevel, title, description string) *domain.Toast {
	return &domain.Toast{Level: level, Title: title, Description: description}
}

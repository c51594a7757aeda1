// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"
)

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// SessionStore is a Cache that also refreshes idle deadlines and counts
// live entries.
type SessionStore[T any] interface {
	Cache[T]
	Touch(key string) bool
	Len() int
}

// EventPublisher hands emitted events to notification and navigation
// collaborators outside the process. Publish must not block on slow
// consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.Event) error
}

// ContentProvider serves the static landing page catalog.
type ContentProvider interface {
	Landing(ctx context.Context) (*domain.LandingContent, error)
}

// Package service orchestrates per-session state: the overlay
// controller, the signup form and the simulated auth, wallet and
// dashboard flows. Every state change produces events for the
// rendering layer and the configured publisher.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"
	"github.com/stellacofre/stellacofre-bfa-go/internal/flow"
	"github.com/stellacofre/stellacofre-bfa-go/internal/infra/observability"
	"github.com/stellacofre/stellacofre-bfa-go/internal/port"
	"github.com/stellacofre/stellacofre-bfa-go/internal/signup"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("service/session")

// Session is the server-side state of one visitor. All fields are
// guarded by mu; operations on a session run one at a time in arrival
// order.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu            sync.Mutex
	flow          *flow.Controller
	signup        *signup.Validator
	forgot        domain.ForgotPasswordView
	authenticated bool
	displayName   string
	goals         []domain.Goal
}

func newSession(id string, now time.Time, metrics *observability.Metrics) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: now,
		flow:      flow.NewController(),
		signup:    signup.New(),
	}
	s.flow.OnTransition(func(from, to domain.Overlay) {
		metrics.IncrTransition(from, to)
	})
	// Form state lives only while its overlay is visible.
	s.flow.OnTransition(func(from, _ domain.Overlay) {
		switch from {
		case domain.OverlaySignup:
			s.signup.Reset()
		case domain.OverlayForgotPassword:
			s.forgot = domain.ForgotPasswordView{}
		}
	})
	return s
}

// view builds the snapshot. Caller holds mu.
func (s *Session) view() *domain.SessionView {
	v := &domain.SessionView{
		SessionID:     s.ID,
		ActiveOverlay: s.flow.Active(),
		Authenticated: s.authenticated,
		DisplayName:   s.displayName,
	}
	switch v.ActiveOverlay {
	case domain.OverlaySignup:
		v.Signup = s.signup.View()
	case domain.OverlayForgotPassword:
		forgot := s.forgot
		v.ForgotPassword = &forgot
	}
	return v
}

// requireOverlay fails unless o is visible. Caller holds mu.
func (s *Session) requireOverlay(o domain.Overlay) error {
	if !s.flow.IsVisible(o) {
		return &domain.ErrOverlayInactive{Required: o, Active: s.flow.Active()}
	}
	return nil
}

// ============================================================
// SessionService
// ============================================================

// SessionService owns the session store and applies intents.
type SessionService struct {
	store     port.SessionStore[*Session]
	publisher port.EventPublisher
	tokens    *TokenIssuer
	metrics   *observability.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewSessionService creates a SessionService.
func NewSessionService(
	store port.SessionStore[*Session],
	publisher port.EventPublisher,
	tokens *TokenIssuer,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		store:     store,
		publisher: publisher,
		tokens:    tokens,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Create starts a new session with no overlay visible.
func (s *SessionService) Create(ctx context.Context) (*domain.CreateSessionResponse, error) {
	_, span := tracer.Start(ctx, "SessionService.Create")
	defer span.End()

	id := uuid.NewString()
	token, err := s.tokens.Sign(id)
	if err != nil {
		return nil, err
	}

	sess := newSession(id, s.now(), s.metrics)
	s.store.Set(id, sess)
	s.metrics.IncrSessionCreated()
	span.SetAttributes(attribute.String("session.id", id))
	s.logger.Info("session created", zap.String("session_id", id))

	sess.mu.Lock()
	view := sess.view()
	sess.mu.Unlock()

	return &domain.CreateSessionResponse{
		SessionID: id,
		Token:     token,
		ExpiresIn: int(s.tokens.TTL().Seconds()),
		Session:   view,
	}, nil
}

// Authenticate resolves a bearer token to a live session id.
func (s *SessionService) Authenticate(token string) (string, error) {
	id, err := s.tokens.Validate(token)
	if err != nil {
		return "", err
	}
	if !s.store.Touch(id) {
		s.metrics.IncrSessionLookup("miss")
		return "", &domain.ErrUnauthorized{Message: "Sessão expirada"}
	}
	return id, nil
}

// Get returns the current snapshot.
func (s *SessionService) Get(ctx context.Context, id string) (*domain.SessionView, error) {
	resp, err := s.apply(ctx, id, "SessionService.Get", func(*Session) ([]domain.Event, error) {
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return resp.Session, nil
}

// End discards the session. Ending an unknown session is not an error.
func (s *SessionService) End(ctx context.Context, id string) error {
	_, span := tracer.Start(ctx, "SessionService.End")
	defer span.End()

	s.store.Delete(id)
	s.logger.Info("session ended", zap.String("session_id", id))
	return nil
}

// ActiveSessions returns the number of live sessions.
func (s *SessionService) ActiveSessions() int {
	return s.store.Len()
}

// ApplyIntent executes a named overlay intent.
func (s *SessionService) ApplyIntent(ctx context.Context, id string, intent domain.Intent) (*domain.IntentResponse, error) {
	return s.apply(ctx, id, "SessionService.ApplyIntent", func(sess *Session) ([]domain.Event, error) {
		return nil, sess.flow.Apply(intent)
	})
}

// Overlay operations accepted by ChangeOverlay.
const (
	OverlayOpOpen   = "open"
	OverlayOpClose  = "close"
	OverlayOpSwitch = "switch"
)

// ChangeOverlay runs open, close or switch against o. Closing an overlay
// that is not visible succeeds without changing anything.
func (s *SessionService) ChangeOverlay(ctx context.Context, id, op string, o domain.Overlay) (*domain.IntentResponse, error) {
	return s.apply(ctx, id, "SessionService.ChangeOverlay", func(sess *Session) ([]domain.Event, error) {
		switch op {
		case OverlayOpOpen:
			return nil, sess.flow.Open(o)
		case OverlayOpSwitch:
			return nil, sess.flow.SwitchTo(o)
		case OverlayOpClose:
			if !o.Valid() || o == domain.OverlayNone {
				return nil, &domain.ErrValidation{Field: "overlay", Message: "unknown overlay " + string(o)}
			}
			sess.flow.Close(o)
			return nil, nil
		}
		return nil, &domain.ErrValidation{Field: "op", Message: "expected open, close or switch"}
	})
}

// apply looks up the session, runs fn under its lock and publishes the
// events fn produced, even when fn fails.
func (s *SessionService) apply(
	ctx context.Context,
	id, operation string,
	fn func(sess *Session) ([]domain.Event, error),
) (*domain.IntentResponse, error) {
	ctx, span := tracer.Start(ctx, operation)
	defer span.End()
	span.SetAttributes(attribute.String("session.id", id))

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration(operation, time.Since(start))
	}()

	sess, ok := s.store.Get(id)
	if !ok {
		s.metrics.IncrSessionLookup("miss")
		return nil, &domain.ErrNotFound{Resource: "session", ID: id}
	}
	s.metrics.IncrSessionLookup("hit")

	sess.mu.Lock()
	defer sess.mu.Unlock()

	events, err := fn(sess)
	s.publish(ctx, events)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if events == nil {
		events = []domain.Event{}
	}
	return &domain.IntentResponse{Session: sess.view(), Events: events}, nil
}

// publish hands events to the publisher. Delivery problems are logged
// and never fail the user's action.
func (s *SessionService) publish(ctx context.Context, events []domain.Event) {
	if len(events) == 0 {
		return
	}
	for _, e := range events {
		s.metrics.IncrEventPublished(e.Type)
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		var ext *domain.ErrExternalService
		if errors.As(err, &ext) {
			s.metrics.IncrExternalError(ext.Service)
		}
		s.logger.Warn("event publish failed", zap.Int("count", len(events)), zap.Error(err))
	}
}

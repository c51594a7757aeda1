package service

import (
	"context"
	"fmt"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"

	"go.uber.org/zap"
)

const formSignup = "signup"

// UpdateSignupField stores a typed value into the signup form.
func (s *SessionService) UpdateSignupField(ctx context.Context, id string, field domain.Field, value any) (*domain.IntentResponse, error) {
	return s.apply(ctx, id, "SessionService.UpdateSignupField", func(sess *Session) ([]domain.Event, error) {
		if err := sess.requireOverlay(domain.OverlaySignup); err != nil {
			return nil, err
		}
		return nil, sess.signup.UpdateField(field, value)
	})
}

// AdvanceSignup moves to the password step when the personal data is valid.
func (s *SessionService) AdvanceSignup(ctx context.Context, id string) (*domain.IntentResponse, error) {
	return s.apply(ctx, id, "SessionService.AdvanceSignup", func(sess *Session) ([]domain.Event, error) {
		if err := sess.requireOverlay(domain.OverlaySignup); err != nil {
			return nil, err
		}
		if errs, ok := sess.signup.Advance(); !ok {
			return s.validationFailed(sess.ID, formSignup, errs)
		}
		return nil, nil
	})
}

// RetreatSignup returns to the personal data step.
func (s *SessionService) RetreatSignup(ctx context.Context, id string) (*domain.IntentResponse, error) {
	return s.apply(ctx, id, "SessionService.RetreatSignup", func(sess *Session) ([]domain.Event, error) {
		if err := sess.requireOverlay(domain.OverlaySignup); err != nil {
			return nil, err
		}
		sess.signup.Retreat()
		return nil, nil
	})
}

// SubmitSignup validates the whole form. On success the overlay closes,
// which discards the form, and SignupSucceeded carries the profile
// without password fields.
func (s *SessionService) SubmitSignup(ctx context.Context, id string) (*domain.IntentResponse, error) {
	return s.apply(ctx, id, "SessionService.SubmitSignup", func(sess *Session) ([]domain.Event, error) {
		if err := sess.requireOverlay(domain.OverlaySignup); err != nil {
			return nil, err
		}

		if step := sess.signup.Step(); step != domain.StepPassword {
			return nil, &domain.ErrValidation{
				Field:   "step",
				Message: fmt.Sprintf("submit is only allowed on step %d, form is on step %d", domain.StepPassword, step),
			}
		}

		profile, errs, ok := sess.signup.Submit()
		if !ok {
			s.metrics.IncrSignup("rejected")
			return s.validationFailed(sess.ID, formSignup, errs)
		}

		s.metrics.IncrSignup("succeeded")
		s.logger.Info("signup succeeded",
			zap.String("session_id", sess.ID),
			zap.Any("profile", profile),
		)

		e := newEvent(sess.ID, domain.EventSignupSucceeded, s.now())
		e.Profile = profile
		e.Toast = toast(domain.ToastSuccess, "Conta criada com sucesso! 🎉", "Bem-vinda ao StellaCofre!")
		sess.flow.Close(domain.OverlaySignup)
		return []domain.Event{e}, nil
	})
}

// validationFailed builds the ValidationFailed event and the matching
// error for a form.
func (s *SessionService) validationFailed(sessionID, form string, errs domain.FieldErrors) ([]domain.Event, error) {
	e := newEvent(sessionID, domain.EventValidationFailed, s.now())
	e.Form = form
	e.FieldErrors = errs
	return []domain.Event{e}, &domain.ErrFieldValidation{Form: form, Errors: errs}
}

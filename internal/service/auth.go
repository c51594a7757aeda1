package service

import (
	"context"
	"strings"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"
	"github.com/stellacofre/stellacofre-bfa-go/internal/signup"

	"go.uber.org/zap"
)

// The single account accepted by the demo login.
const (
	adminEmail       = "admin@stellacofre.com"
	adminPassword    = "Admin@123"
	adminDisplayName = "Admin"

	// DashboardPath is where a successful login sends the visitor.
	DashboardPath = "/dashboard"
)

const (
	formLogin          = "login"
	formForgotPassword = "forgotPassword"

	msgEmailInvalid     = "E-mail inválido"
	msgPasswordRequired = "Senha obrigatória"
	reasonMismatch      = "credential_mismatch"
)

// CheckCredentials compares the pair against the demo account by exact
// string equality.
func CheckCredentials(email, password string) domain.AuthOutcome {
	if email == adminEmail && password == adminPassword {
		return domain.Authenticated
	}
	return domain.Rejected
}

// Login validates the login form and checks the credentials. A mismatch
// is not an error: it yields AuthFailed and the overlay stays open for
// another attempt.
func (s *SessionService) Login(ctx context.Context, id string, req *domain.LoginRequest) (*domain.IntentResponse, error) {
	return s.apply(ctx, id, "SessionService.Login", func(sess *Session) ([]domain.Event, error) {
		if err := sess.requireOverlay(domain.OverlayLogin); err != nil {
			return nil, err
		}

		email := strings.TrimSpace(req.Email)
		errs := domain.FieldErrors{}
		if !signup.IsEmail(email) {
			errs[domain.FieldEmail] = msgEmailInvalid
		}
		if req.Password == "" {
			errs[domain.FieldPassword] = msgPasswordRequired
		}
		if len(errs) > 0 {
			return s.validationFailed(sess.ID, formLogin, errs)
		}

		outcome := CheckCredentials(email, req.Password)
		s.metrics.IncrLogin(outcome)

		if outcome == domain.Rejected {
			s.logger.Info("login rejected", zap.String("session_id", sess.ID))
			e := newEvent(sess.ID, domain.EventAuthFailed, s.now())
			e.Reason = reasonMismatch
			e.Toast = toast(domain.ToastError, "Credenciais inválidas", "Verifique seu e-mail e senha")
			return []domain.Event{e}, nil
		}

		sess.authenticated = true
		sess.displayName = adminDisplayName
		sess.flow.Close(domain.OverlayLogin)
		s.logger.Info("login succeeded", zap.String("session_id", sess.ID))

		e := newEvent(sess.ID, domain.EventAuthSucceeded, s.now())
		e.Destination = DashboardPath
		e.Toast = toast(domain.ToastSuccess, "Login realizado com sucesso! 🎉", "Bem-vinda de volta ao StellaCofre!")
		return []domain.Event{e}, nil
	})
}

// GoogleLogin is not integrated; it only emits a notice.
func (s *SessionService) GoogleLogin(ctx context.Context, id string) (*domain.IntentResponse, error) {
	return s.apply(ctx, id, "SessionService.GoogleLogin", func(sess *Session) ([]domain.Event, error) {
		if err := sess.requireOverlay(domain.OverlayLogin); err != nil {
			return nil, err
		}
		e := newEvent(sess.ID, domain.EventNotice, s.now())
		e.Toast = toast(domain.ToastInfo, "Login com Google", "Integração em desenvolvimento")
		return []domain.Event{e}, nil
	})
}

// ForgotPassword records a simulated reset request. No message is sent;
// the dialog switches to its "e-mail sent" state.
func (s *SessionService) ForgotPassword(ctx context.Context, id string, req *domain.ForgotPasswordRequest) (*domain.IntentResponse, error) {
	return s.apply(ctx, id, "SessionService.ForgotPassword", func(sess *Session) ([]domain.Event, error) {
		if err := sess.requireOverlay(domain.OverlayForgotPassword); err != nil {
			return nil, err
		}

		email := strings.TrimSpace(req.Email)
		if !signup.IsEmail(email) {
			return s.validationFailed(sess.ID, formForgotPassword, domain.FieldErrors{domain.FieldEmail: msgEmailInvalid})
		}

		sess.forgot = domain.ForgotPasswordView{EmailSent: true, Email: email}
		e := newEvent(sess.ID, domain.EventPasswordResetRequested, s.now())
		e.Email = email
		return []domain.Event{e}, nil
	})
}

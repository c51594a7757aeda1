package domain

// ============================================================
// Auth: Request / Response types (matches frontend API contract)
// ============================================================

// AuthOutcome is the result of the fixed-credential check.
type AuthOutcome string

const (
	Authenticated AuthOutcome = "authenticated"
	Rejected      AuthOutcome = "rejected"
)

// LoginRequest is the body for POST /v1/session/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest is the body for POST /v1/session/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordView is the read model of the password recovery dialog.
type ForgotPasswordView struct {
	EmailSent bool   `json:"emailSent"`
	Email     string `json:"email,omitempty"`
}

// CreateSessionResponse is the body for 201 from POST /v1/sessions.
type CreateSessionResponse struct {
	SessionID string       `json:"sessionId"`
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn"`
	Session   *SessionView `json:"session"`
}

// SessionView is the full snapshot the rendering layer reads.
type SessionView struct {
	SessionID      string              `json:"sessionId"`
	ActiveOverlay  Overlay             `json:"activeOverlay"`
	Authenticated  bool                `json:"authenticated"`
	DisplayName    string              `json:"displayName,omitempty"`
	Signup         *SignupView         `json:"signup,omitempty"`
	ForgotPassword *ForgotPasswordView `json:"forgotPassword,omitempty"`
}

// IntentResponse is returned by every state-changing session route.
type IntentResponse struct {
	Session *SessionView `json:"session"`
	Events  []Event      `json:"events"`
}

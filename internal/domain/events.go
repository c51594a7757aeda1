package domain

import "time"

// ============================================================
// Events: consumed by navigation / notification collaborators
// ============================================================

// EventType names an emitted event.
type EventType string

const (
	EventAuthSucceeded          EventType = "AuthSucceeded"
	EventAuthFailed             EventType = "AuthFailed"
	EventValidationFailed       EventType = "ValidationFailed"
	EventSignupSucceeded        EventType = "SignupSucceeded"
	EventPasswordResetRequested EventType = "PasswordResetRequested"
	EventWalletConnectRequested EventType = "WalletConnectRequested"
	EventGoalCreated            EventType = "GoalCreated"
	EventCategoryCreated        EventType = "CategoryCreated"
	EventNotice                 EventType = "Notice"
)

// ToastLevel mirrors the notification styles of the web client.
type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastInfo    ToastLevel = "info"
)

// Toast is a transient notification suggested to the rendering layer.
type Toast struct {
	Level       ToastLevel `json:"level"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
}

// Event is a single emitted fact. Only the payload fields relevant to
// Type are set.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	SessionID  string    `json:"sessionId"`
	OccurredAt time.Time `json:"occurredAt"`
	Toast      *Toast    `json:"toast,omitempty"`

	// AuthSucceeded
	Destination string `json:"destination,omitempty"`
	// AuthFailed
	Reason string `json:"reason,omitempty"`
	// ValidationFailed
	Form        string      `json:"form,omitempty"`
	FieldErrors FieldErrors `json:"fieldErrors,omitempty"`
	// SignupSucceeded
	Profile *SignupProfile `json:"profile,omitempty"`
	// PasswordResetRequested
	Email string `json:"email,omitempty"`
	// WalletConnectRequested
	WalletID string `json:"walletId,omitempty"`
	// GoalCreated / CategoryCreated
	Goal         *Goal  `json:"goal,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
}

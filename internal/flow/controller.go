// Package flow holds the overlay state machine of the landing page.
// At most one overlay (signup, login, forgot password, wallet connect)
// is visible at any time; the controller owns which one.
package flow

import (
	"fmt"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"
)

// Listener is notified once per effective transition.
type Listener func(from, to domain.Overlay)

// Controller is the single owner of the active overlay.
// It is not safe for concurrent use; callers serialize access.
type Controller struct {
	active    domain.Overlay
	listeners []Listener
}

// NewController returns a controller with no overlay visible.
func NewController() *Controller {
	return &Controller{active: domain.OverlayNone}
}

// OnTransition registers l to be called after every effective transition.
func (c *Controller) OnTransition(l Listener) {
	c.listeners = append(c.listeners, l)
}

// Active returns the visible overlay, or OverlayNone.
func (c *Controller) Active() domain.Overlay {
	return c.active
}

// IsVisible reports whether o is the visible overlay.
func (c *Controller) IsVisible(o domain.Overlay) bool {
	return o != domain.OverlayNone && c.active == o
}

// Open makes o the visible overlay, replacing any other.
// Opening the overlay that is already visible changes nothing.
func (c *Controller) Open(o domain.Overlay) error {
	if err := checkTarget(o); err != nil {
		return err
	}
	c.set(o)
	return nil
}

// Close hides o if it is the visible overlay. It reports whether a
// transition happened; closing an overlay that is not visible is a no-op.
func (c *Controller) Close(o domain.Overlay) bool {
	if !c.IsVisible(o) {
		return false
	}
	c.set(domain.OverlayNone)
	return true
}

// SwitchTo replaces the visible overlay with o in a single transition.
// Observers never see an intermediate OverlayNone.
func (c *Controller) SwitchTo(o domain.Overlay) error {
	return c.Open(o)
}

// CloseAll hides whatever is visible.
func (c *Controller) CloseAll() {
	c.set(domain.OverlayNone)
}

// Apply executes a named intent.
func (c *Controller) Apply(intent domain.Intent) error {
	switch intent {
	case domain.IntentOpenSignup:
		return c.Open(domain.OverlaySignup)
	case domain.IntentOpenLogin:
		return c.Open(domain.OverlayLogin)
	case domain.IntentOpenWalletModal:
		return c.Open(domain.OverlayWalletConnect)
	case domain.IntentOpenForgotPassword:
		return c.Open(domain.OverlayForgotPassword)
	case domain.IntentSwitchToLogin:
		return c.SwitchTo(domain.OverlayLogin)
	case domain.IntentSwitchToSignup:
		return c.SwitchTo(domain.OverlaySignup)
	case domain.IntentSwitchToForgotPassword:
		return c.SwitchTo(domain.OverlayForgotPassword)
	case domain.IntentCloseAll:
		c.CloseAll()
		return nil
	default:
		return &domain.ErrValidation{Field: "intent", Message: fmt.Sprintf("unknown intent %q", intent)}
	}
}

func (c *Controller) set(to domain.Overlay) {
	from := c.active
	if from == to {
		return
	}
	c.active = to
	for _, l := range c.listeners {
		l(from, to)
	}
}

func checkTarget(o domain.Overlay) error {
	if o == domain.OverlayNone {
		return &domain.ErrValidation{Field: "overlay", Message: "use close or closeAll to hide overlays"}
	}
	if !o.Valid() {
		return &domain.ErrValidation{Field: "overlay", Message: fmt.Sprintf("unknown overlay %q", o)}
	}
	return nil
}

package flow_test

import (
	"errors"
	"testing"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"
	"github.com/stellacofre/stellacofre-bfa-go/internal/flow"
)

type transition struct {
	from, to domain.Overlay
}

func recordTransitions(c *flow.Controller) *[]transition {
	var got []transition
	c.OnTransition(func(from, to domain.Overlay) {
		got = append(got, transition{from, to})
	})
	return &got
}

func TestController_InitialState(t *testing.T) {
	c := flow.NewController()

	if c.Active() != domain.OverlayNone {
		t.Fatalf("expected none, got %s", c.Active())
	}
	for _, o := range domain.Overlays {
		if c.IsVisible(o) {
			t.Errorf("expected %s hidden", o)
		}
	}
}

func TestController_OpenShowsOnlyTarget(t *testing.T) {
	for _, target := range domain.Overlays {
		c := flow.NewController()
		_ = c.Open(domain.OverlayWalletConnect)

		if err := c.Open(target); err != nil {
			t.Fatalf("open %s: %v", target, err)
		}
		for _, o := range domain.Overlays {
			if c.IsVisible(o) != (o == target) {
				t.Errorf("after open(%s): visible(%s)=%v", target, o, c.IsVisible(o))
			}
		}
	}
}

func TestController_OpenIsIdempotent(t *testing.T) {
	c := flow.NewController()
	got := recordTransitions(c)

	_ = c.Open(domain.OverlaySignup)
	_ = c.Open(domain.OverlaySignup)

	if c.Active() != domain.OverlaySignup {
		t.Fatalf("expected signup, got %s", c.Active())
	}
	if len(*got) != 1 {
		t.Errorf("expected 1 transition, got %d", len(*got))
	}
}

func TestController_CloseNonMatchingIsNoOp(t *testing.T) {
	c := flow.NewController()
	_ = c.Open(domain.OverlayLogin)
	got := recordTransitions(c)

	if c.Close(domain.OverlaySignup) {
		t.Fatal("expected close of hidden overlay to report no transition")
	}
	if c.Active() != domain.OverlayLogin {
		t.Errorf("expected login to stay open, got %s", c.Active())
	}
	if len(*got) != 0 {
		t.Errorf("expected no transitions, got %v", *got)
	}
}

func TestController_CloseMatching(t *testing.T) {
	c := flow.NewController()
	_ = c.Open(domain.OverlayForgotPassword)

	if !c.Close(domain.OverlayForgotPassword) {
		t.Fatal("expected close to report a transition")
	}
	if c.Active() != domain.OverlayNone {
		t.Errorf("expected none, got %s", c.Active())
	}
}

func TestController_SwitchToIsSingleTransition(t *testing.T) {
	c := flow.NewController()
	_ = c.Open(domain.OverlaySignup)
	got := recordTransitions(c)

	if err := c.SwitchTo(domain.OverlayLogin); err != nil {
		t.Fatalf("switch: %v", err)
	}

	want := []transition{{domain.OverlaySignup, domain.OverlayLogin}}
	if len(*got) != 1 || (*got)[0] != want[0] {
		t.Errorf("expected %v, got %v", want, *got)
	}
	if c.Active() != domain.OverlayLogin {
		t.Errorf("expected login, got %s", c.Active())
	}
}

func TestController_SwitchMatchesCloseThenOpen(t *testing.T) {
	a := flow.NewController()
	b := flow.NewController()
	_ = a.Open(domain.OverlayLogin)
	_ = b.Open(domain.OverlayLogin)

	_ = a.SwitchTo(domain.OverlayForgotPassword)
	b.Close(domain.OverlayLogin)
	_ = b.Open(domain.OverlayForgotPassword)

	if a.Active() != b.Active() {
		t.Errorf("expected same final state, got %s vs %s", a.Active(), b.Active())
	}
}

func TestController_CloseAll(t *testing.T) {
	c := flow.NewController()
	_ = c.Open(domain.OverlayWalletConnect)
	got := recordTransitions(c)

	c.CloseAll()
	c.CloseAll()

	if c.Active() != domain.OverlayNone {
		t.Errorf("expected none, got %s", c.Active())
	}
	if len(*got) != 1 {
		t.Errorf("expected 1 transition, got %d", len(*got))
	}
}

func TestController_RejectsInvalidTargets(t *testing.T) {
	c := flow.NewController()

	for _, o := range []domain.Overlay{domain.OverlayNone, "dashboard"} {
		err := c.Open(o)
		var ve *domain.ErrValidation
		if !errors.As(err, &ve) {
			t.Errorf("open(%q): expected ErrValidation, got %v", o, err)
		}
	}
	if c.Active() != domain.OverlayNone {
		t.Errorf("expected state unchanged, got %s", c.Active())
	}
}

func TestController_ApplyIntents(t *testing.T) {
	tests := []struct {
		intent domain.Intent
		want   domain.Overlay
	}{
		{domain.IntentOpenSignup, domain.OverlaySignup},
		{domain.IntentOpenLogin, domain.OverlayLogin},
		{domain.IntentOpenWalletModal, domain.OverlayWalletConnect},
		{domain.IntentOpenForgotPassword, domain.OverlayForgotPassword},
		{domain.IntentSwitchToLogin, domain.OverlayLogin},
		{domain.IntentSwitchToSignup, domain.OverlaySignup},
		{domain.IntentSwitchToForgotPassword, domain.OverlayForgotPassword},
		{domain.IntentCloseAll, domain.OverlayNone},
	}

	for _, tt := range tests {
		t.Run(string(tt.intent), func(t *testing.T) {
			c := flow.NewController()
			_ = c.Open(domain.OverlayLogin)

			if err := c.Apply(tt.intent); err != nil {
				t.Fatalf("apply: %v", err)
			}
			if c.Active() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, c.Active())
			}
		})
	}
}

func TestController_ApplyUnknownIntent(t *testing.T) {
	c := flow.NewController()

	err := c.Apply("openDashboard")
	var ve *domain.ErrValidation
	if !errors.As(err, &ve) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

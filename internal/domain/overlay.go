package domain

// ============================================================
// Overlays: which modal dialog sits on top of the landing page
// ============================================================

// Overlay identifies the single auth-related dialog that may be visible.
type Overlay string

const (
	OverlayNone           Overlay = "none"
	OverlaySignup         Overlay = "signup"
	OverlayLogin          Overlay = "login"
	OverlayForgotPassword Overlay = "forgot_password"
	OverlayWalletConnect  Overlay = "wallet_connect"
)

// Overlays lists every visible overlay (None excluded).
var Overlays = []Overlay{OverlaySignup, OverlayLogin, OverlayForgotPassword, OverlayWalletConnect}

// Valid reports whether o is a known overlay value, None included.
func (o Overlay) Valid() bool {
	switch o {
	case OverlayNone, OverlaySignup, OverlayLogin, OverlayForgotPassword, OverlayWalletConnect:
		return true
	}
	return false
}

// Intent is a named transition request sent by the rendering layer.
type Intent string

const (
	IntentOpenSignup             Intent = "openSignup"
	IntentOpenLogin              Intent = "openLogin"
	IntentOpenWalletModal        Intent = "openWalletModal"
	IntentOpenForgotPassword     Intent = "openForgotPassword"
	IntentSwitchToLogin          Intent = "switchToLogin"
	IntentSwitchToSignup         Intent = "switchToSignup"
	IntentSwitchToForgotPassword Intent = "switchToForgotPassword"
	IntentCloseAll               Intent = "closeAll"
)

// OverlayRequest is the body for POST /v1/session/overlay/{op}.
type OverlayRequest struct {
	Overlay Overlay `json:"overlay"`
}

package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"
	"github.com/stellacofre/stellacofre-bfa-go/internal/handler"
	"github.com/stellacofre/stellacofre-bfa-go/internal/infra/cache"
	"github.com/stellacofre/stellacofre-bfa-go/internal/infra/content"
	"github.com/stellacofre/stellacofre-bfa-go/internal/infra/notifier"
	"github.com/stellacofre/stellacofre-bfa-go/internal/infra/observability"
	"github.com/stellacofre/stellacofre-bfa-go/internal/service"

	"go.uber.org/zap"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	store := cache.New[*service.Session](time.Minute)
	t.Cleanup(store.Close)

	catalog, err := content.Load()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}

	sessions := service.NewSessionService(
		store,
		notifier.NewLogPublisher(logger),
		service.NewTokenIssuer("test-secret", time.Hour),
		metrics,
		logger,
	)
	return handler.NewRouter(sessions, catalog, metrics, logger, nil)
}

// client drives the router as one browser tab.
type client struct {
	t      *testing.T
	router http.Handler
	token  string
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func newClient(t *testing.T) *client {
	t.Helper()
	c := &client{t: t, router: newRouter(t)}
	rec := c.do(http.MethodPost, "/v1/sessions", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d", rec.Code)
	}
	created := decode[domain.CreateSessionResponse](t, rec)
	if created.Token == "" || created.SessionID == "" {
		t.Fatalf("expected token and session id, got %+v", created)
	}
	c.token = created.Token
	return c
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d (body %s)", want, rec.Code, rec.Body.String())
	}
}

// --- Operational ---

func TestHealthz(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	expectStatus(t, rec, http.StatusOK)
	health := decode[domain.HealthStatus](t, rec)
	if health.Status != "healthy" {
		t.Errorf("expected healthy, got %s", health.Status)
	}
	if len(health.Services) != 3 {
		t.Errorf("expected 3 services, got %d", len(health.Services))
	}
}

func TestReadyz(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	expectStatus(t, rec, http.StatusOK)
}

func TestReadyz_NotReadyWithoutSessions(t *testing.T) {
	router := handler.NewRouter(nil, nil, observability.NewMetrics(), zap.NewNop(), nil)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	expectStatus(t, rec, http.StatusServiceUnavailable)
}

func TestMetrics(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "bff_sessions_created_total") {
		t.Errorf("expected session metrics in exposition")
	}
}

func TestCORS(t *testing.T) {
	router := handler.NewRouter(nil, nil, observability.NewMetrics(), zap.NewNop(), []string{"https://stellacofre.com"})

	req := httptest.NewRequest(http.MethodOptions, "/v1/sessions", nil)
	req.Header.Set("Origin", "https://stellacofre.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://stellacofre.com" {
		t.Errorf("expected allowed origin, got %q", got)
	}
}

// --- Public API ---

func TestContent(t *testing.T) {
	c := &client{t: t, router: newRouter(t)}

	rec := c.do(http.MethodGet, "/v1/content", "")
	expectStatus(t, rec, http.StatusOK)

	landing := decode[domain.LandingContent](t, rec)
	if landing.Brand.Name != "StellaCofre" {
		t.Errorf("expected brand StellaCofre, got %q", landing.Brand.Name)
	}
}

func TestWallets(t *testing.T) {
	c := &client{t: t, router: newRouter(t)}

	rec := c.do(http.MethodGet, "/v1/wallets", "")
	expectStatus(t, rec, http.StatusOK)

	wallets := decode[[]domain.Wallet](t, rec)
	if len(wallets) != 3 {
		t.Errorf("expected 3 wallets, got %d", len(wallets))
	}
}

func TestFormat(t *testing.T) {
	c := &client{t: t, router: newRouter(t)}

	tests := []struct {
		field  string
		value  string
		status int
		want   string
	}{
		{"cpf", "12345678901", http.StatusOK, "123.456.789-01"},
		{"phone", "11987654321", http.StatusOK, "(11) 98765-4321"},
		{"birthDate", "01011990", http.StatusOK, "01/01/1990"},
		{"email", "x", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			rec := c.do(http.MethodPost, "/v1/format/"+tt.field, `{"value":"`+tt.value+`"}`)
			expectStatus(t, rec, tt.status)
			if tt.status != http.StatusOK {
				return
			}
			resp := decode[domain.FormatResponse](t, rec)
			if resp.Formatted != tt.want {
				t.Errorf("expected %q, got %q", tt.want, resp.Formatted)
			}
		})
	}
}

// --- Session token ---

func TestSession_RequiresToken(t *testing.T) {
	c := &client{t: t, router: newRouter(t)}

	rec := c.do(http.MethodGet, "/v1/session", "")
	expectStatus(t, rec, http.StatusUnauthorized)

	c.token = "not-a-jwt"
	rec = c.do(http.MethodGet, "/v1/session", "")
	expectStatus(t, rec, http.StatusUnauthorized)
}

func TestSession_EndedTokenIsRejected(t *testing.T) {
	c := newClient(t)

	expectStatus(t, c.do(http.MethodDelete, "/v1/session", ""), http.StatusNoContent)
	expectStatus(t, c.do(http.MethodGet, "/v1/session", ""), http.StatusUnauthorized)
}

// --- Overlays ---

func TestIntents(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodPost, "/v1/session/intents/openSignup", "")
	expectStatus(t, rec, http.StatusOK)
	resp := decode[domain.IntentResponse](t, rec)
	if resp.Session.ActiveOverlay != domain.OverlaySignup {
		t.Fatalf("expected signup overlay, got %s", resp.Session.ActiveOverlay)
	}

	rec = c.do(http.MethodPost, "/v1/session/intents/switchToLogin", "")
	expectStatus(t, rec, http.StatusOK)
	resp = decode[domain.IntentResponse](t, rec)
	if resp.Session.ActiveOverlay != domain.OverlayLogin {
		t.Errorf("expected login overlay, got %s", resp.Session.ActiveOverlay)
	}

	expectStatus(t, c.do(http.MethodPost, "/v1/session/intents/fly", ""), http.StatusBadRequest)
}

func TestOverlay_CloseNonMatchingIsSilent(t *testing.T) {
	c := newClient(t)

	expectStatus(t, c.do(http.MethodPost, "/v1/session/overlay/open", `{"overlay":"login"}`), http.StatusOK)

	rec := c.do(http.MethodPost, "/v1/session/overlay/close", `{"overlay":"signup"}`)
	expectStatus(t, rec, http.StatusOK)
	resp := decode[domain.IntentResponse](t, rec)
	if resp.Session.ActiveOverlay != domain.OverlayLogin {
		t.Errorf("expected login still visible, got %s", resp.Session.ActiveOverlay)
	}

	expectStatus(t, c.do(http.MethodPost, "/v1/session/overlay/spin", `{"overlay":"login"}`), http.StatusBadRequest)
	expectStatus(t, c.do(http.MethodPost, "/v1/session/overlay/open", `{"overlay":"nope"}`), http.StatusBadRequest)
}

// --- Signup ---

func TestSignup_FullFlow(t *testing.T) {
	c := newClient(t)

	expectStatus(t, c.do(http.MethodPost, "/v1/session/intents/openSignup", ""), http.StatusOK)

	fields := []struct{ field, body string }{
		{"fullName", `{"value":"Maria Silva"}`},
		{"email", `{"value":"maria@exemplo.com"}`},
		{"cpf", `{"value":"12345678901"}`},
		{"phone", `{"value":"11987654321"}`},
		{"birthDate", `{"value":"01011990"}`},
	}
	for _, f := range fields {
		expectStatus(t, c.do(http.MethodPut, "/v1/session/signup/fields/"+f.field, f.body), http.StatusOK)
	}

	rec := c.do(http.MethodPost, "/v1/session/signup/advance", "")
	expectStatus(t, rec, http.StatusOK)
	resp := decode[domain.IntentResponse](t, rec)
	if resp.Session.Signup.Step != domain.StepPassword {
		t.Fatalf("expected step 2, got %d", resp.Session.Signup.Step)
	}
	if resp.Session.Signup.Fields.CPF != "123.456.789-01" {
		t.Errorf("expected masked cpf, got %q", resp.Session.Signup.Fields.CPF)
	}

	expectStatus(t, c.do(http.MethodPut, "/v1/session/signup/fields/password", `{"value":"Senha123"}`), http.StatusOK)
	expectStatus(t, c.do(http.MethodPut, "/v1/session/signup/fields/confirmPassword", `{"value":"Senha123"}`), http.StatusOK)
	rec = c.do(http.MethodPut, "/v1/session/signup/fields/acceptTerms", `{"value":true}`)
	expectStatus(t, rec, http.StatusOK)
	if strings.Contains(rec.Body.String(), "Senha123") {
		t.Fatalf("password echoed in snapshot: %s", rec.Body.String())
	}

	rec = c.do(http.MethodPost, "/v1/session/signup/submit", "")
	expectStatus(t, rec, http.StatusOK)
	resp = decode[domain.IntentResponse](t, rec)
	if resp.Session.ActiveOverlay != domain.OverlayNone {
		t.Errorf("expected overlay closed after signup, got %s", resp.Session.ActiveOverlay)
	}
	if len(resp.Events) != 1 || resp.Events[0].Type != domain.EventSignupSucceeded {
		t.Fatalf("expected SignupSucceeded, got %+v", resp.Events)
	}
	if resp.Events[0].Profile == nil || resp.Events[0].Profile.Email != "maria@exemplo.com" {
		t.Errorf("unexpected profile: %+v", resp.Events[0].Profile)
	}
}

func TestSignup_AdvanceWithEmptyFormIs422(t *testing.T) {
	c := newClient(t)

	expectStatus(t, c.do(http.MethodPost, "/v1/session/intents/openSignup", ""), http.StatusOK)

	rec := c.do(http.MethodPost, "/v1/session/signup/advance", "")
	expectStatus(t, rec, http.StatusUnprocessableEntity)

	var body struct {
		Form        string             `json:"form"`
		FieldErrors domain.FieldErrors `json:"fieldErrors"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Form != "signup" {
		t.Errorf("expected signup form, got %q", body.Form)
	}
	for _, f := range []domain.Field{domain.FieldFullName, domain.FieldEmail, domain.FieldCPF, domain.FieldPhone, domain.FieldBirthDate} {
		if body.FieldErrors[f] == "" {
			t.Errorf("expected error on %s", f)
		}
	}
}

func TestSignup_FieldsNeedVisibleOverlay(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodPut, "/v1/session/signup/fields/fullName", `{"value":"Maria"}`)
	expectStatus(t, rec, http.StatusConflict)
}

func TestSignup_UnknownFieldIs400(t *testing.T) {
	c := newClient(t)

	expectStatus(t, c.do(http.MethodPost, "/v1/session/intents/openSignup", ""), http.StatusOK)
	expectStatus(t, c.do(http.MethodPut, "/v1/session/signup/fields/nickname", `{"value":"x"}`), http.StatusBadRequest)
	expectStatus(t, c.do(http.MethodPut, "/v1/session/signup/fields/fullName", `{bad`), http.StatusBadRequest)
}

// --- Login ---

func TestLogin(t *testing.T) {
	c := newClient(t)

	expectStatus(t, c.do(http.MethodPost, "/v1/session/intents/openLogin", ""), http.StatusOK)

	rec := c.do(http.MethodPost, "/v1/session/login", `{"email":"admin@stellacofre.com","password":"errada"}`)
	expectStatus(t, rec, http.StatusOK)
	resp := decode[domain.IntentResponse](t, rec)
	if len(resp.Events) != 1 || resp.Events[0].Type != domain.EventAuthFailed {
		t.Fatalf("expected AuthFailed, got %+v", resp.Events)
	}
	if resp.Session.ActiveOverlay != domain.OverlayLogin {
		t.Errorf("expected login to stay open, got %s", resp.Session.ActiveOverlay)
	}

	rec = c.do(http.MethodPost, "/v1/session/login", `{"email":"admin@stellacofre.com","password":"Admin@123"}`)
	expectStatus(t, rec, http.StatusOK)
	resp = decode[domain.IntentResponse](t, rec)
	if len(resp.Events) != 1 || resp.Events[0].Type != domain.EventAuthSucceeded {
		t.Fatalf("expected AuthSucceeded, got %+v", resp.Events)
	}
	if resp.Events[0].Destination != service.DashboardPath {
		t.Errorf("expected destination %s, got %s", service.DashboardPath, resp.Events[0].Destination)
	}
	if !resp.Session.Authenticated {
		t.Errorf("expected authenticated session")
	}
}

func TestLogin_MalformedEmailIs422(t *testing.T) {
	c := newClient(t)

	expectStatus(t, c.do(http.MethodPost, "/v1/session/intents/openLogin", ""), http.StatusOK)
	expectStatus(t, c.do(http.MethodPost, "/v1/session/login", `{"email":"admin","password":"x"}`), http.StatusUnprocessableEntity)
}

func TestForgotPassword(t *testing.T) {
	c := newClient(t)

	expectStatus(t, c.do(http.MethodPost, "/v1/session/intents/openForgotPassword", ""), http.StatusOK)

	rec := c.do(http.MethodPost, "/v1/session/forgot-password", `{"email":"maria@exemplo.com"}`)
	expectStatus(t, rec, http.StatusOK)
	resp := decode[domain.IntentResponse](t, rec)
	if resp.Session.ForgotPassword == nil || !resp.Session.ForgotPassword.EmailSent {
		t.Errorf("expected email sent state, got %+v", resp.Session.ForgotPassword)
	}
}

// --- Wallet & dashboard ---

func TestWalletConnect(t *testing.T) {
	c := newClient(t)

	expectStatus(t, c.do(http.MethodPost, "/v1/session/intents/openWalletModal", ""), http.StatusOK)
	expectStatus(t, c.do(http.MethodPost, "/v1/session/wallet/connect", `{"walletId":"ledger"}`), http.StatusNotFound)

	rec := c.do(http.MethodPost, "/v1/session/wallet/connect", `{"walletId":"metamask"}`)
	expectStatus(t, rec, http.StatusOK)
	resp := decode[domain.IntentResponse](t, rec)
	if resp.Session.ActiveOverlay != domain.OverlayNone {
		t.Errorf("expected dialog closed, got %s", resp.Session.ActiveOverlay)
	}
}

func TestDashboard_Goals(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodPost, "/v1/session/dashboard/goals", `{"categoryId":"viagem","name":"Japão","targetAmount":"10000"}`)
	expectStatus(t, rec, http.StatusCreated)
	created := decode[domain.CreateGoalResponse](t, rec)
	if created.Goal == nil || created.Goal.TargetAmount != 10000 {
		t.Fatalf("unexpected goal: %+v", created.Goal)
	}

	expectStatus(t, c.do(http.MethodPost, "/v1/session/dashboard/goals", `{"categoryId":"viagem","name":"","targetAmount":""}`), http.StatusUnprocessableEntity)

	rec = c.do(http.MethodGet, "/v1/session/dashboard", "")
	expectStatus(t, rec, http.StatusOK)
	view := decode[domain.DashboardView](t, rec)
	if len(view.Goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(view.Goals))
	}
	if view.Goals[0].TargetLabel != "R$ 10.000" {
		t.Errorf("expected R$ 10.000, got %q", view.Goals[0].TargetLabel)
	}
}

func TestDashboard_Category(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodPost, "/v1/session/dashboard/categories", `{"name":"Carro"}`)
	expectStatus(t, rec, http.StatusOK)
	resp := decode[domain.EventsResponse](t, rec)
	if len(resp.Events) != 1 || resp.Events[0].Type != domain.EventCategoryCreated {
		t.Fatalf("expected CategoryCreated, got %+v", resp.Events)
	}
}

func TestFlowMetrics(t *testing.T) {
	c := newClient(t)

	expectStatus(t, c.do(http.MethodPost, "/v1/session/intents/openSignup", ""), http.StatusOK)

	rec := c.do(http.MethodGet, "/v1/metrics/flow", "")
	expectStatus(t, rec, http.StatusOK)
	snap := decode[domain.FlowMetrics](t, rec)
	if snap.ActiveSessions != 1 {
		t.Errorf("expected 1 active session, got %d", snap.ActiveSessions)
	}
	if snap.OverlayTransitions["none->signup"] != 1 {
		t.Errorf("expected one none->signup transition, got %v", snap.OverlayTransitions)
	}
}

func TestSignup_SubmitBeforeAdvanceIs400(t *testing.T) {
	c := newClient(t)

	expectStatus(t, c.do(http.MethodPost, "/v1/session/intents/openSignup", ""), http.StatusOK)
	expectStatus(t, c.do(http.MethodPost, "/v1/session/signup/submit", ""), http.StatusBadRequest)
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"
	"github.com/stellacofre/stellacofre-bfa-go/internal/infra/observability"
	"github.com/stellacofre/stellacofre-bfa-go/internal/port"
	"github.com/stellacofre/stellacofre-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
// corsOrigins enables CORS for the listed origins; empty disables it.
func NewRouter(
	sessions *service.SessionService,
	content port.ContentProvider,
	metrics *observability.Metrics,
	logger *zap.Logger,
	corsOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	if len(corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"X-Request-Id"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(sessions, content, logger))
	r.Get("/readyz", readyzHandler(sessions, content))
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// 1. Landing page
		// GET  /v1/content
		// GET  /v1/wallets
		// POST /v1/format/{field}
		// =============================================
		r.Get("/content", contentHandler(content, logger))
		r.Get("/wallets", walletsHandler())
		r.Post("/format/{field}", formatHandler(logger))

		// =============================================
		// 2. Métricas
		// GET /v1/metrics/flow
		// =============================================
		r.Get("/metrics/flow", flowMetricsHandler(sessions, metrics))

		// =============================================
		// 3. Sessão
		// POST /v1/sessions
		// =============================================
		r.Post("/sessions", createSessionHandler(sessions, logger))

		// Everything under /v1/session needs a session token.
		r.Route("/session", func(r chi.Router) {
			r.Use(SessionMiddleware(sessions, logger))

			r.Get("/", getSessionHandler(sessions, logger))
			r.Delete("/", endSessionHandler(sessions, logger))

			// =============================================
			// 4. Overlays
			// POST /v1/session/intents/{intent}
			// POST /v1/session/overlay/{op}
			// =============================================
			r.Post("/intents/{intent}", intentHandler(sessions, logger))
			r.Post("/overlay/{op}", overlayHandler(sessions, logger))

			// =============================================
			// 5. Cadastro
			// PUT  /v1/session/signup/fields/{field}
			// POST /v1/session/signup/advance
			// POST /v1/session/signup/retreat
			// POST /v1/session/signup/submit
			// =============================================
			r.Put("/signup/fields/{field}", signupFieldHandler(sessions, logger))
			r.Post("/signup/advance", signupAdvanceHandler(sessions, logger))
			r.Post("/signup/retreat", signupRetreatHandler(sessions, logger))
			r.Post("/signup/submit", signupSubmitHandler(sessions, logger))

			// =============================================
			// 6. Autenticação
			// POST /v1/session/login
			// POST /v1/session/login/google
			// POST /v1/session/forgot-password
			// =============================================
			r.Post("/login", loginHandler(sessions, logger))
			r.Post("/login/google", googleLoginHandler(sessions, logger))
			r.Post("/forgot-password", forgotPasswordHandler(sessions, logger))

			// =============================================
			// 7. Carteira Web3
			// POST /v1/session/wallet/connect
			// =============================================
			r.Post("/wallet/connect", walletConnectHandler(sessions, logger))

			// =============================================
			// 8. Dashboard
			// GET  /v1/session/dashboard
			// POST /v1/session/dashboard/goals
			// POST /v1/session/dashboard/categories
			// =============================================
			r.Get("/dashboard", dashboardHandler(sessions, logger))
			r.Post("/dashboard/goals", createGoalHandler(sessions, logger))
			r.Post("/dashboard/categories", createCategoryHandler(sessions, logger))
		})
	})

	return r
}

// ============================================================
// Health & Métricas
// ============================================================

func healthzHandler(sessions *service.SessionService, content port.ContentProvider, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "bfa-api", Status: "healthy", LastChecked: now},
		}

		if sessions != nil {
			services = append(services, domain.ServiceHealth{
				Name:        "session-store",
				Status:      "healthy",
				Detail:      strconv.Itoa(sessions.ActiveSessions()) + " active",
				LastChecked: now,
			})
		}

		if content != nil {
			status, detail := "healthy", ""
			if _, err := content.Landing(ctx); err != nil {
				logger.Warn("health: content unavailable", zap.Error(err))
				status, detail = "unhealthy", err.Error()
			}
			services = append(services, domain.ServiceHealth{
				Name: "content", Status: status, Detail: detail, LastChecked: now,
			})
		}

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overallStatus = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler(sessions *service.SessionService, content port.ContentProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil || content == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func flowMetricsHandler(sessions *service.SessionService, metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active := 0
		if sessions != nil {
			active = sessions.ActiveSessions()
		}
		writeJSON(w, http.StatusOK, metrics.FlowSnapshot(active))
	}
}

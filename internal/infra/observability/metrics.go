package observability

import (
	"time"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the BFF.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration    *prometheus.HistogramVec
	overlayTransitions *prometheus.CounterVec
	signupOutcomes     *prometheus.CounterVec
	loginAttempts      *prometheus.CounterVec
	eventsPublished    *prometheus.CounterVec
	eventsDropped      prometheus.Counter
	externalErrors     *prometheus.CounterVec
	sessionLookups     *prometheus.CounterVec
	sessionsCreated    prometheus.Counter
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bff_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		overlayTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bff_overlay_transitions_total",
				Help: "Effective overlay transitions.",
			},
			[]string{"from", "to"},
		),
		signupOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bff_signup_submissions_total",
				Help: "Signup submissions by outcome.",
			},
			[]string{"result"},
		),
		loginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bff_login_attempts_total",
				Help: "Login credential checks by outcome.",
			},
			[]string{"result"},
		),
		eventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bff_events_published_total",
				Help: "Events handed to publishers.",
			},
			[]string{"type"},
		),
		eventsDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "bff_events_dropped_total",
				Help: "Events dropped because the delivery queue was full.",
			},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bff_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		sessionLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bff_session_lookups_total",
				Help: "Session store lookups by result.",
			},
			[]string{"result"},
		),
		sessionsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "bff_sessions_created_total",
				Help: "Sessions created.",
			},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrTransition counts an effective overlay transition.
func (m *Metrics) IncrTransition(from, to domain.Overlay) {
	m.overlayTransitions.WithLabelValues(string(from), string(to)).Inc()
}

// IncrSignup counts a signup submission ("succeeded" or "rejected").
func (m *Metrics) IncrSignup(result string) {
	m.signupOutcomes.WithLabelValues(result).Inc()
}

// IncrLogin counts a credential check.
func (m *Metrics) IncrLogin(outcome domain.AuthOutcome) {
	m.loginAttempts.WithLabelValues(string(outcome)).Inc()
}

// IncrEventPublished counts an event handed to the publisher.
func (m *Metrics) IncrEventPublished(t domain.EventType) {
	m.eventsPublished.WithLabelValues(string(t)).Inc()
}

// IncrEventDropped counts an event the dispatcher could not queue.
func (m *Metrics) IncrEventDropped() {
	m.eventsDropped.Inc()
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrSessionLookup counts a session lookup ("hit" or "miss").
func (m *Metrics) IncrSessionLookup(result string) {
	m.sessionLookups.WithLabelValues(result).Inc()
}

// IncrSessionCreated counts a new session.
func (m *Metrics) IncrSessionCreated() {
	m.sessionsCreated.Inc()
}

// FlowSnapshot returns the counters behind GET /v1/metrics/flow.
// Prometheus counters are cumulative since process start.
func (m *Metrics) FlowSnapshot(activeSessions int) *domain.FlowMetrics {
	transitions := map[string]float64{}
	for _, from := range append([]domain.Overlay{domain.OverlayNone}, domain.Overlays...) {
		for _, to := range append([]domain.Overlay{domain.OverlayNone}, domain.Overlays...) {
			if from == to {
				continue
			}
			if v := getCounterValue(m.overlayTransitions, string(from), string(to)); v > 0 {
				transitions[string(from)+"->"+string(to)] = v
			}
		}
	}

	published := float64(0)
	for _, t := range []domain.EventType{
		domain.EventAuthSucceeded, domain.EventAuthFailed, domain.EventValidationFailed,
		domain.EventSignupSucceeded, domain.EventPasswordResetRequested,
		domain.EventWalletConnectRequested, domain.EventGoalCreated,
		domain.EventCategoryCreated, domain.EventNotice,
	} {
		published += getCounterValue(m.eventsPublished, string(t))
	}

	return &domain.FlowMetrics{
		ActiveSessions:     activeSessions,
		SessionsCreated:    readCounter(m.sessionsCreated),
		OverlayTransitions: transitions,
		SignupSucceeded:    getCounterValue(m.signupOutcomes, "succeeded"),
		SignupRejected:     getCounterValue(m.signupOutcomes, "rejected"),
		LoginAuthenticated: getCounterValue(m.loginAttempts, string(domain.Authenticated)),
		LoginRejected:      getCounterValue(m.loginAttempts, string(domain.Rejected)),
		EventsPublished:    published,
		EventsDropped:      readCounter(m.eventsDropped),
		WebhookErrors:      getCounterValue(m.externalErrors, "event-webhook"),
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for the given labels.
func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	return readCounter(cv.WithLabelValues(labels...))
}

func readCounter(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

package domain

// ============================================================
// Health & Metrics API Responses
// ============================================================

// HealthStatus is returned by GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"` // healthy, degraded, unhealthy
	Services []ServiceHealth `json:"services"`
}

// ServiceHealth represents the health of an individual dependency.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Detail      string `json:"detail,omitempty"`
	LastChecked string `json:"lastChecked"`
}

// FlowMetrics is returned by GET /v1/metrics/flow.
type FlowMetrics struct {
	ActiveSessions     int                `json:"activeSessions"`
	SessionsCreated    float64            `json:"sessionsCreated"`
	OverlayTransitions map[string]float64 `json:"overlayTransitions"`
	SignupSucceeded    float64            `json:"signupSucceeded"`
	SignupRejected     float64            `json:"signupRejected"`
	LoginAuthenticated float64            `json:"loginAuthenticated"`
	LoginRejected      float64            `json:"loginRejected"`
	EventsPublished    float64            `json:"eventsPublished"`
	EventsDropped      float64            `json:"eventsDropped"`
	WebhookErrors      float64            `json:"webhookErrors"`
}

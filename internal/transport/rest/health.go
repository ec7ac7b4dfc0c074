package rest

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"
)

// workspaceCounter reports the number of open workspaces.
type workspaceCounter interface {
	Len() int
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	workspaces workspaceCounter
	version    string
	// features maps optional collaborators to whether they are configured.
	features map[string]bool
	draining atomic.Bool
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(workspaces workspaceCounter, version string, features map[string]bool) *HealthHandler {
	return &HealthHandler{workspaces: workspaces, version: version, features: features}
}

// SetDraining makes the readiness probe fail so load balancers stop routing
// new browser sessions here during shutdown.
func (h *HealthHandler) SetDraining() { h.draining.Store(true) }

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 unless the server is draining.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.draining.Load() {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "draining",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check. Unconfigured optional collaborators are
// reported as degraded; the service keeps working without them.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := map[string]CompStatus{
		"workspaces": {Status: "ok", Detail: strconv.Itoa(h.workspaces.Len()) + " open"},
	}

	for name, configured := range h.features {
		if configured {
			components[name] = CompStatus{Status: "ok"}
		} else {
			components[name] = CompStatus{Status: "degraded", Detail: "not configured"}
		}
	}

	status, code := "ok", http.StatusOK
	if h.draining.Load() {
		status, code = "draining", http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/clusterdash/clusterdash-backend/internal/repository"
)

// HealthzHandler serves the unauthenticated probe endpoints.
type HealthzHandler struct {
	store repository.Store
}

// NewHealthzHandler creates a healthz handler.
func NewHealthzHandler(store repository.Store) *HealthzHandler {
	return &HealthzHandler{store: store}
}

// Ping handles GET /ping - fixed-literal liveness used by the UI.
func (h *HealthzHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

// Health handles GET /health - readiness probe (datastore reachable).
func (h *HealthzHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"reason": "database_unavailable",
			})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

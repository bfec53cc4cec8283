package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/clusterdash/clusterdash-backend/internal/config"
	"github.com/clusterdash/clusterdash-backend/internal/repository"
)

// Handler serves the authenticated data routes. It holds the shared
// store by reference; every request acquires a scoped connection from
// the store's pool and releases it on all exit paths.
type Handler struct {
	store repository.Store
	cfg   *config.Config
	log   *slog.Logger
}

// NewHandler creates the data-route handler.
func NewHandler(store repository.Store, cfg *config.Config, log *slog.Logger) *Handler {
	return &Handler{store: store, cfg: cfg, log: log}
}

// SetupRoutes registers the data routes (expects the /api prefix and the
// token gate already applied by the caller).
func SetupRoutes(router *mux.Router, h *Handler) {
	router.HandleFunc("/clusters", h.ListClusters).Methods("GET")
	router.HandleFunc("/cluster/{name}", h.GetCluster).Methods("GET")
	router.HandleFunc("/jobs", h.ListJobs).Methods("GET")
	router.HandleFunc("/job/{id}", h.GetJob).Methods("GET")
	router.HandleFunc("/user/{id}", h.GetUserEmail).Methods("GET")
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

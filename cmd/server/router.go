package main

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clusterdash/clusterdash-backend/internal/api/middleware"
	"github.com/clusterdash/clusterdash-backend/internal/api/rest"
	"github.com/clusterdash/clusterdash-backend/internal/config"
	"github.com/clusterdash/clusterdash-backend/internal/repository"
)

// newRouter wires the HTTP surface. The token gate is applied to the
// /api subrouter only: probes, metrics, and the static UI bundle (which
// includes the login page) are reachable without a token, exactly like
// the data routes are not.
func newRouter(cfg *config.Config, store repository.Store, log *slog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.StructuredLog)
	router.Use(middleware.Recover)

	healthz := rest.NewHealthzHandler(store)
	router.HandleFunc("/ping", healthz.Ping).Methods("GET")
	router.HandleFunc("/health", healthz.Health).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.Auth(cfg))
	rest.NewAuthHandler(store, cfg, log).RegisterRoutes(apiRouter)
	rest.SetupRoutes(apiRouter, rest.NewHandler(store, cfg, log))

	// Static UI bundle, when configured. Served ungated.
	if cfg.StaticDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return router
}

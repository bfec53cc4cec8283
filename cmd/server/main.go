package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/clusterdash/clusterdash-backend/internal/config"
	"github.com/clusterdash/clusterdash-backend/internal/pkg/logger"
	"github.com/clusterdash/clusterdash-backend/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.StdLogger(cfg.Environment)
	log.Info("clusterdash backend starting", "port", cfg.Port, "environment", cfg.Environment)

	// Datastore: one pool for the process lifetime, shared by reference.
	store, err := repository.NewPostgresStore(cfg.DSN())
	if err != nil {
		log.Error("failed to connect to database", "host", cfg.DBHost, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if sql, err := os.ReadFile("migrations/001_initial_schema.sql"); err == nil {
		if err := store.RunMigrations(string(sql)); err != nil {
			log.Warn("migrations failed", "error", err)
		}
	}

	router := newRouter(cfg, store, log)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		// Wildcard origins cannot be credentialed; browsers reject the pair.
		AllowCredentials: cfg.CORSAllowCredentials(),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      c.Handler(router),
		ReadTimeout:  time.Duration(cfg.RequestTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.RequestTimeoutSec) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("forced shutdown", "error", err)
	}
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/clusterdash/clusterdash-backend/internal/auth"
	"github.com/clusterdash/clusterdash-backend/internal/config"
	"github.com/clusterdash/clusterdash-backend/internal/metrics"
)

// Auth returns the token gate for the /api subrouter. Every data route
// requires a valid bearer token; on failure the request is
// short-circuited with 401 before any resource handler runs. On success
// the decoded claims are attached to the request context. Login is the
// only /api route that bypasses the gate; probes and the UI bundle are
// mounted outside it. Note the resource queries do not scope results by
// subject: any authenticated subject may read any cluster, job, or user
// row.
func Auth(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/login" {
				next.ServeHTTP(w, r)
				return
			}
			token := extractBearer(r)
			if token == "" {
				metrics.AuthTokenValidationsTotal.WithLabelValues("missing").Inc()
				unauthorized(w, "Authentication required")
				return
			}
			claims, err := auth.ValidateToken(cfg.JWTSecret, token)
			if err != nil {
				outcome := "invalid"
				msg := "Invalid token"
				if errors.Is(err, auth.ErrExpiredToken) {
					outcome = "expired"
					msg = "Token expired"
				}
				metrics.AuthTokenValidationsTotal.WithLabelValues(outcome).Inc()
				unauthorized(w, msg)
				return
			}
			metrics.AuthTokenValidationsTotal.WithLabelValues("success").Inc()
			setSubject(r.Context(), claims.Username)
			ctx := auth.WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}

func extractBearer(r *http.Request) string {
	s := r.Header.Get("Authorization")
	if s == "" {
		return ""
	}
	const prefix = "Bearer "
	if len(s) > len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return strings.TrimSpace(s[len(prefix):])
	}
	return ""
}

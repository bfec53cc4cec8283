package rest

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/clusterdash/clusterdash-backend/internal/auth"
	"github.com/clusterdash/clusterdash-backend/internal/config"
	"github.com/clusterdash/clusterdash-backend/internal/metrics"
	"github.com/clusterdash/clusterdash-backend/internal/pkg/logger"
	"github.com/clusterdash/clusterdash-backend/internal/repository"
)

const (
	loginRateLimit = 5 // per minute, per IP
	loginBurst     = 5

	// Bounds on the per-IP limiter map so it cannot grow without limit.
	maxLoginLimiters = 1024
	loginLimiterIdle = 15 * time.Minute
)

// limiterEntry pairs a per-IP limiter with its last use, so idle
// entries can be evicted.
type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// AuthHandler handles POST /api/login: credential verification and token
// issuance. Login is the only route that bypasses the token gate.
type AuthHandler struct {
	store repository.Store
	cfg   *config.Config
	log   *slog.Logger

	validate *validator.Validate

	loginLimiterMu sync.Mutex
	loginLimiters  map[string]*limiterEntry // per-IP
}

// NewAuthHandler creates the login handler.
func NewAuthHandler(store repository.Store, cfg *config.Config, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		store:         store,
		cfg:           cfg,
		log:           log,
		validate:      validator.New(),
		loginLimiters: make(map[string]*limiterEntry),
	}
}

// RegisterRoutes registers auth routes (expects the /api prefix already
// applied).
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/login", h.Login).Methods("POST")
}

// LoginRequest is the body for POST /api/login. The username must be an
// email address; that is checked before any datastore call.
type LoginRequest struct {
	Username *string `json:"username" validate:"required,email"`
	Password *string `json:"password"`
}

// Login verifies credentials and answers with the signed token as a
// plain-text body. Unknown user, wrong password, and (by policy) store
// failure all answer an indistinguishable 401: the status code must not
// leak which of them happened. Logs and metrics keep the distinction.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.cfg.JWTSecret == "" {
		respondError(w, http.StatusInternalServerError, "Server auth not configured")
		return
	}
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_body").Inc()
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// A missing field is a distinct failure from a malformed one.
	if req.Username == nil || req.Password == nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_body").Inc()
		respondError(w, http.StatusBadRequest, "Username and password required")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_body").Inc()
		respondError(w, http.StatusUnprocessableEntity, "Username must be an email address")
		return
	}
	username, password := *req.Username, *req.Password

	ctx := r.Context()
	ip := clientIP(r, h.cfg.TrustProxyHeaders)
	if !h.loginLimiter(ip).Allow() {
		metrics.LoginAttemptsTotal.WithLabelValues("rate_limited").Inc()
		h.log.Warn("login rate limit exceeded", "ip", ip)
		w.Header().Set("Retry-After", "60")
		respondError(w, http.StatusTooManyRequests, "Too many login attempts")
		return
	}

	ok, err := h.store.CheckCredentials(ctx, username, password)
	if err != nil {
		// Surfaced as 401 like a credential mismatch; the real kind is
		// preserved server-side.
		metrics.LoginAttemptsTotal.WithLabelValues("store_error").Inc()
		h.log.Error("login credential check failed",
			"request_id", logger.FromContext(ctx),
			"store_error", repository.IsStoreError(err),
			"error", err,
		)
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !ok {
		metrics.LoginAttemptsTotal.WithLabelValues("bad_credentials").Inc()
		h.log.Warn("login failed", "username", username, "ip", ip)
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.IssueToken(h.cfg.JWTSecret, username)
	if err != nil {
		h.log.Error("token issuance failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	h.log.Info("login succeeded", "username", username, "ip", ip)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(token))
}

// loginLimiter returns or creates the rate limiter for the given IP.
// The map is bounded: idle entries are swept when it fills, and the
// stalest entry is dropped if the sweep was not enough.
func (h *AuthHandler) loginLimiter(ip string) *rate.Limiter {
	h.loginLimiterMu.Lock()
	defer h.loginLimiterMu.Unlock()
	now := time.Now()
	if e, ok := h.loginLimiters[ip]; ok {
		e.lastSeen = now
		return e.limiter
	}
	if len(h.loginLimiters) >= maxLoginLimiters {
		for k, e := range h.loginLimiters {
			if now.Sub(e.lastSeen) > loginLimiterIdle {
				delete(h.loginLimiters, k)
			}
		}
		if len(h.loginLimiters) >= maxLoginLimiters {
			var stalest string
			var stalestSeen time.Time
			for k, e := range h.loginLimiters {
				if stalest == "" || e.lastSeen.Before(stalestSeen) {
					stalest, stalestSeen = k, e.lastSeen
				}
			}
			delete(h.loginLimiters, stalest)
		}
	}
	limiter := rate.NewLimiter(rate.Limit(loginRateLimit)/60, loginBurst)
	h.loginLimiters[ip] = &limiterEntry{limiter: limiter, lastSeen: now}
	return limiter
}

// clientIP extracts the client IP for rate limiting. Forwarding headers
// are client-supplied, so they are honored only when the deployment
// declares a trusted proxy in front; otherwise the transport peer
// address is the only IP that cannot be rotated per request.
func clientIP(r *http.Request, trustProxyHeaders bool) string {
	if trustProxyHeaders {
		if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
			parts := strings.Split(ip, ",")
			return strings.TrimSpace(parts[0])
		}
		if ip := r.Header.Get("X-Real-IP"); ip != "" {
			return ip
		}
	}
	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return host
}

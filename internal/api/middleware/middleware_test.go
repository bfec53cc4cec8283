package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clusterdash/clusterdash-backend/internal/pkg/logger"
)

func TestRequestID_Generated(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.FromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/api/clusters", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if seen == "" {
		t.Error("Expected a generated request ID in context")
	}
	if got := w.Header().Get(ResponseRequestIDHeader); got != seen {
		t.Errorf("Response header %q should match context ID %q", got, seen)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.FromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/api/clusters", nil)
	req.Header.Set(ResponseRequestIDHeader, "client-supplied-id")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if seen != "client-supplied-id" {
		t.Errorf("Expected client-supplied ID to be kept, got %q", seen)
	}
}

func TestRecover(t *testing.T) {
	handler := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest("GET", "/api/clusters", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500 after panic, got %d", w.Code)
	}
}

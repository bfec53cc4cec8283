package rest

import (
	"net/http"

	"github.com/clusterdash/clusterdash-backend/internal/pkg/logger"
	"github.com/clusterdash/clusterdash-backend/internal/repository"
)

// storeFailure answers a datastore failure on a data route. The original
// error kind is always logged server-side; the client sees either 503
// or, with legacy_error_compat, the historical 401. Raw driver text is
// never surfaced.
func (h *Handler) storeFailure(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("store query failed",
		"request_id", logger.FromContext(r.Context()),
		"path", r.URL.Path,
		"store_error", repository.IsStoreError(err),
		"error", err,
	)
	if h.cfg.LegacyErrorCompat {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	respondError(w, http.StatusServiceUnavailable, "Datastore unavailable")
}

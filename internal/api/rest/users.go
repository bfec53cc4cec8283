package rest

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/clusterdash/clusterdash-backend/internal/models"
	"github.com/clusterdash/clusterdash-backend/internal/repository"
)

// GetUserEmail handles GET /api/user/{id}: a single-field projection,
// collapsing. There is no ownership check against the requesting
// subject; any authenticated caller may resolve any user id. Flagged as
// an authorization gap pending a product decision.
func (h *Handler) GetUserEmail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	user, err := h.store.GetUserEmail(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeResult(w, NotFound[models.UserEmail]())
		return
	}
	if err != nil {
		h.storeFailure(w, r, err)
		return
	}
	writeResult(w, Single(*user))
}

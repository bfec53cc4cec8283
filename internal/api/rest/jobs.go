package rest

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/clusterdash/clusterdash-backend/internal/models"
	"github.com/clusterdash/clusterdash-backend/internal/repository"
)

// jobListQuery is the typed query surface of GET /api/jobs.
type jobListQuery struct {
	StatusPrefix  string
	ClusterPrefix string
}

func parseJobListQuery(r *http.Request) jobListQuery {
	q := r.URL.Query()
	return jobListQuery{
		StatusPrefix:  q.Get("status"),
		ClusterPrefix: q.Get("cluster"),
	}
}

// ListJobs handles GET /api/jobs. List-shaped; no ordering guarantee.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := parseJobListQuery(r)

	jobs, err := h.store.ListJobs(r.Context(), q.StatusPrefix, q.ClusterPrefix)
	if err != nil {
		h.storeFailure(w, r, err)
		return
	}
	writeResult(w, Normalize(jobs, true))
}

// GetJob handles GET /api/job/{id} (exact-key, collapsing).
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	job, err := h.store.GetJob(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeResult(w, NotFound[models.Job]())
		return
	}
	if err != nil {
		h.storeFailure(w, r, err)
		return
	}
	writeResult(w, Single(*job))
}

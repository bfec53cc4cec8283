package rest

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/clusterdash/clusterdash-backend/internal/models"
	"github.com/clusterdash/clusterdash-backend/internal/repository"
)

// clusterListQuery is the typed query surface of GET /api/clusters. Both
// filters are prefix matches; absence means match-all.
type clusterListQuery struct {
	StatusPrefix string
	NamePrefix   string
}

func parseClusterListQuery(r *http.Request) clusterListQuery {
	q := r.URL.Query()
	return clusterListQuery{
		StatusPrefix: q.Get("status"),
		NamePrefix:   q.Get("name"),
	}
}

// ListClusters handles GET /api/clusters. Always list-shaped, newest
// first; an empty match is a 404 like every other empty result.
func (h *Handler) ListClusters(w http.ResponseWriter, r *http.Request) {
	q := parseClusterListQuery(r)

	clusters, err := h.store.ListClusters(r.Context(), q.StatusPrefix, q.NamePrefix)
	if err != nil {
		h.storeFailure(w, r, err)
		return
	}
	writeResult(w, Normalize(clusters, true))
}

// GetCluster handles GET /api/cluster/{name} (exact-key, collapsing).
func (h *Handler) GetCluster(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	cluster, err := h.store.GetCluster(r.Context(), name)
	if errors.Is(err, repository.ErrNotFound) {
		writeResult(w, NotFound[models.Cluster]())
		return
	}
	if err != nil {
		h.storeFailure(w, r, err)
		return
	}
	writeResult(w, Single(*cluster))
}

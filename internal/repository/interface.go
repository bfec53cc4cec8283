package repository

import (
	"context"

	"github.com/clusterdash/clusterdash-backend/internal/models"
)

// Store defines the read-only data access the dashboard needs. All list
// filters are leading-substring (prefix) matches; the empty prefix
// matches everything. Results are never scoped to the requesting subject.
type Store interface {
	// ListClusters returns clusters whose status and name start with the
	// given prefixes, newest first.
	ListClusters(ctx context.Context, statusPrefix, namePrefix string) ([]models.Cluster, error)
	// GetCluster returns the cluster with the exact name, or ErrNotFound.
	GetCluster(ctx context.Context, name string) (*models.Cluster, error)
	// ListJobs returns jobs whose status and cluster name start with the
	// given prefixes. No ordering is guaranteed.
	ListJobs(ctx context.Context, statusPrefix, clusterPrefix string) ([]models.Job, error)
	// GetJob returns the job with the exact id, or ErrNotFound.
	GetJob(ctx context.Context, id string) (*models.Job, error)
	// GetUserEmail returns only the email of the user with the exact id,
	// or ErrNotFound.
	GetUserEmail(ctx context.Context, id string) (*models.UserEmail, error)
	// CheckCredentials reports whether a user row exists whose email and
	// password hash match the supplied credentials. A false return does
	// not distinguish unknown user from wrong password.
	CheckCredentials(ctx context.Context, email, password string) (bool, error)

	Ping(ctx context.Context) error
	Close() error
}

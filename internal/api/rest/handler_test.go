package rest

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/clusterdash/clusterdash-backend/internal/models"
	"github.com/clusterdash/clusterdash-backend/internal/repository"
)

// fakeStore implements repository.Store in memory for handler tests. It
// records query arguments and can be forced to fail.
type fakeStore struct {
	clusters []models.Cluster
	jobs     []models.Job
	emails   map[string]string // user id -> email
	password map[string]string // email -> password

	failWith error
	queries  int

	lastStatusPrefix  string
	lastNamePrefix    string
	lastClusterPrefix string
}

func (f *fakeStore) hasPrefix(v, prefix string) bool {
	return prefix == "" || strings.HasPrefix(v, prefix)
}

func (f *fakeStore) ListClusters(ctx context.Context, statusPrefix, namePrefix string) ([]models.Cluster, error) {
	f.queries++
	f.lastStatusPrefix, f.lastNamePrefix = statusPrefix, namePrefix
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []models.Cluster{}
	for _, c := range f.clusters {
		if f.hasPrefix(c.Status, statusPrefix) && f.hasPrefix(c.Name, namePrefix) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) GetCluster(ctx context.Context, name string) (*models.Cluster, error) {
	f.queries++
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, c := range f.clusters {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) ListJobs(ctx context.Context, statusPrefix, clusterPrefix string) ([]models.Job, error) {
	f.queries++
	f.lastStatusPrefix, f.lastClusterPrefix = statusPrefix, clusterPrefix
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []models.Job{}
	for _, j := range f.jobs {
		if f.hasPrefix(j.Status, statusPrefix) && f.hasPrefix(j.ClusterName, clusterPrefix) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeStore) GetJob(ctx context.Context, id string) (*models.Job, error) {
	f.queries++
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, j := range f.jobs {
		if strconv.Itoa(j.ID) == id {
			return &j, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) GetUserEmail(ctx context.Context, id string) (*models.UserEmail, error) {
	f.queries++
	if f.failWith != nil {
		return nil, f.failWith
	}
	if email, ok := f.emails[id]; ok {
		return &models.UserEmail{Email: email}, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) CheckCredentials(ctx context.Context, email, password string) (bool, error) {
	f.queries++
	if f.failWith != nil {
		return false, f.failWith
	}
	stored, ok := f.password[email]
	return ok && stored == password, nil
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.failWith }
func (f *fakeStore) Close() error                   { return nil }

var _ repository.Store = (*fakeStore)(nil)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

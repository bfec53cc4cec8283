package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/clusterdash/clusterdash-backend/internal/metrics"
	"github.com/clusterdash/clusterdash-backend/internal/models"
)

// PostgresStore implements Store against PostgreSQL. It owns a bounded
// connection pool for the process lifetime; handlers share it by
// reference and acquire scoped connections per query.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to PostgreSQL and verifies the connection
// with a ping. Call once at startup.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, &StoreError{Op: "connect", Err: err}
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresStore{db: db}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Ping checks datastore reachability (readiness probe).
func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &StoreError{Op: "ping", Err: err}
	}
	return nil
}

// RunMigrations applies the given schema SQL.
func (s *PostgresStore) RunMigrations(migrationSQL string) error {
	if _, err := s.db.Exec(migrationSQL); err != nil {
		return &StoreError{Op: "migrate", Err: err}
	}
	return nil
}

// likePrefix turns a user-supplied prefix into a LIKE pattern matching
// rows whose value starts with it. Wildcard characters in the input are
// escaped so they match literally; the empty prefix matches everything.
func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}

func (s *PostgresStore) ListClusters(ctx context.Context, statusPrefix, namePrefix string) ([]models.Cluster, error) {
	const op = "list_clusters"
	defer observe(op)()

	clusters := []models.Cluster{}
	query := `SELECT name, status, creationtimestamp, cost FROM cluster
		WHERE status LIKE $1 AND name LIKE $2
		ORDER BY creationtimestamp DESC`

	err := s.db.SelectContext(ctx, &clusters, query, likePrefix(statusPrefix), likePrefix(namePrefix))
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(op).Inc()
		return nil, &StoreError{Op: op, Err: err}
	}
	return clusters, nil
}

func (s *PostgresStore) GetCluster(ctx context.Context, name string) (*models.Cluster, error) {
	const op = "get_cluster"
	defer observe(op)()

	var cluster models.Cluster
	query := `SELECT name, status, creationtimestamp, cost FROM cluster WHERE name = $1`

	err := s.db.GetContext(ctx, &cluster, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(op).Inc()
		return nil, &StoreError{Op: op, Err: err}
	}
	return &cluster, nil
}

func (s *PostgresStore) ListJobs(ctx context.Context, statusPrefix, clusterPrefix string) ([]models.Job, error) {
	const op = "list_jobs"
	defer observe(op)()

	jobs := []models.Job{}
	query := `SELECT id, status, clustername, author, platformdependentid, executablepath
		FROM job WHERE status LIKE $1 AND clustername LIKE $2`

	err := s.db.SelectContext(ctx, &jobs, query, likePrefix(statusPrefix), likePrefix(clusterPrefix))
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(op).Inc()
		return nil, &StoreError{Op: op, Err: err}
	}
	return jobs, nil
}

func (s *PostgresStore) GetJob(ctx context.Context, id string) (*models.Job, error) {
	const op = "get_job"
	defer observe(op)()

	var job models.Job
	query := `SELECT id, status, clustername, author, platformdependentid, executablepath
		FROM job WHERE id = $1`

	err := s.db.GetContext(ctx, &job, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(op).Inc()
		return nil, &StoreError{Op: op, Err: err}
	}
	return &job, nil
}

func (s *PostgresStore) GetUserEmail(ctx context.Context, id string) (*models.UserEmail, error) {
	const op = "get_user_email"
	defer observe(op)()

	var user models.UserEmail
	query := `SELECT email FROM users WHERE id = $1`

	err := s.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(op).Inc()
		return nil, &StoreError{Op: op, Err: err}
	}
	return &user, nil
}

// CheckCredentials issues a single parameterized existence query; the
// supplied password is hashed with the stored per-row salt by pgcrypto's
// crypt() and compared against the stored hash. Bcrypt ($2a$) hashes
// written by cmd/useradd verify through the same path.
func (s *PostgresStore) CheckCredentials(ctx context.Context, email, password string) (bool, error) {
	const op = "check_credentials"
	defer observe(op)()

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND password = crypt($2, password))`

	err := s.db.GetContext(ctx, &exists, query, email, password)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(op).Inc()
		return false, &StoreError{Op: op, Err: err}
	}
	return exists, nil
}

// observe records query latency for the given operation.
func observe(op string) func() {
	start := time.Now()
	return func() {
		metrics.StoreQueryDurationSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

var _ Store = (*PostgresStore)(nil)

// CreateUser inserts a dashboard user. Used by cmd/useradd only; the
// serving path never writes.
func (s *PostgresStore) CreateUser(ctx context.Context, email, passwordHash string) (int, error) {
	const op = "create_user"

	var id int
	query := `INSERT INTO users (email, password) VALUES ($1, $2) RETURNING id`
	if err := s.db.GetContext(ctx, &id, query, email, passwordHash); err != nil {
		return 0, &StoreError{Op: op, Err: fmt.Errorf("insert user: %w", err)}
	}
	return id, nil
}

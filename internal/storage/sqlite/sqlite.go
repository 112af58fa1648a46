// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/garage/internal/metrics"
	"github.com/mmynk/garage/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithLogger sets the logger used by the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *SQLiteStore) {
		s.logger = logger
	}
}

// WithMetrics records every store operation on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *SQLiteStore) {
		s.metrics = r
	}
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories, enables foreign keys and creates the
// tables if they do not exist yet.
func New(dbPath string, opts ...Option) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// PRAGMA foreign_keys is per connection, and :memory: databases are per
	// connection too, so every statement must share one.
	db.SetMaxOpenConns(1)

	s := NewFromDB(db, opts...)
	ctx := context.Background()

	if err := s.EnableForeignKeys(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	s.logger.Info("SQLite store initialized", "path", dbPath)
	return s, nil
}

// NewFromDB wraps an already opened database handle.
// The schema is left untouched.
func NewFromDB(db *sql.DB, opts ...Option) *SQLiteStore {
	s := &SQLiteStore{db: db}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "store")
	return s
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// EnableForeignKeys turns on foreign key enforcement for the connection and
// verifies that the engine accepted it.
func (s *SQLiteStore) EnableForeignKeys(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	var enabled int
	if err := s.db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("failed to read foreign key setting: %w", err)
	}
	if enabled != 1 {
		return fmt.Errorf("foreign key enforcement is not available")
	}
	return nil
}

// observe is deferred by every operation with a pointer to its named error.
func (s *SQLiteStore) observe(entity, op string, start time.Time, err *error) {
	s.metrics.Observe(entity, op, start, *err)
	if *err != nil {
		s.logger.Debug("store operation failed", "entity", entity, "op", op, "error", *err)
	}
}

// dsn appends the foreign_keys pragma so that any connection the driver
// opens starts with enforcement on.
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

package sqlite

import (
	"context"
	"fmt"
	"time"
)

// Owners must exist before cars because of the foreign key.
const createOwnersTable = `
CREATE TABLE IF NOT EXISTS owners (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);
`

const createCarsTable = `
CREATE TABLE IF NOT EXISTS cars (
    id INTEGER PRIMARY KEY,
    make TEXT NOT NULL,
    model TEXT NOT NULL,
    year INTEGER NOT NULL,
    owner_id INTEGER NOT NULL,
    FOREIGN KEY (owner_id) REFERENCES owners(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_cars_owner_id ON cars(owner_id);
`

const (
	dropOwnersTable = `DROP TABLE IF EXISTS owners`
	dropCarsTable   = `DROP TABLE IF EXISTS cars`
)

// CreateOwnersTable creates the owners table if it does not exist.
func (s *SQLiteStore) CreateOwnersTable(ctx context.Context) (err error) {
	defer s.observe("schema", "create_owners", time.Now(), &err)
	if _, err = s.db.ExecContext(ctx, createOwnersTable); err != nil {
		return fmt.Errorf("failed to create owners table: %w", err)
	}
	return nil
}

// CreateCarsTable creates the cars table and its owner index if they do not exist.
func (s *SQLiteStore) CreateCarsTable(ctx context.Context) (err error) {
	defer s.observe("schema", "create_cars", time.Now(), &err)
	if _, err = s.db.ExecContext(ctx, createCarsTable); err != nil {
		return fmt.Errorf("failed to create cars table: %w", err)
	}
	return nil
}

// DropOwnersTable drops the owners table if it exists.
// With foreign keys on, dropping it deletes every car as well.
func (s *SQLiteStore) DropOwnersTable(ctx context.Context) (err error) {
	defer s.observe("schema", "drop_owners", time.Now(), &err)
	if _, err = s.db.ExecContext(ctx, dropOwnersTable); err != nil {
		return fmt.Errorf("failed to drop owners table: %w", err)
	}
	return nil
}

// DropCarsTable drops the cars table if it exists.
func (s *SQLiteStore) DropCarsTable(ctx context.Context) (err error) {
	defer s.observe("schema", "drop_cars", time.Now(), &err)
	if _, err = s.db.ExecContext(ctx, dropCarsTable); err != nil {
		return fmt.Errorf("failed to drop cars table: %w", err)
	}
	return nil
}

// EnsureSchema creates both tables.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	if err := s.CreateOwnersTable(ctx); err != nil {
		return err
	}
	return s.CreateCarsTable(ctx)
}

// Reset drops both tables and recreates them empty.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	if err := s.DropCarsTable(ctx); err != nil {
		return err
	}
	if err := s.DropOwnersTable(ctx); err != nil {
		return err
	}
	s.logger.Info("schema reset")
	return s.EnsureSchema(ctx)
}

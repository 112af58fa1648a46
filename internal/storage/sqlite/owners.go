package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/garage/internal/models"
	"github.com/mmynk/garage/internal/storage"
)

// CreateOwner inserts a new owner and assigns its ID.
func (s *SQLiteStore) CreateOwner(ctx context.Context, owner *models.Owner) (err error) {
	defer s.observe("owner", "create", time.Now(), &err)

	res, err := s.db.ExecContext(ctx, `INSERT INTO owners (name) VALUES (?)`, owner.Name)
	if err != nil {
		return fmt.Errorf("failed to insert owner: %w", classify(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read owner id: %w", err)
	}

	owner.ID = id
	s.logger.Debug("created owner", "id", id, "name", owner.Name)
	return nil
}

// UpdateOwner rewrites the owner's row.
func (s *SQLiteStore) UpdateOwner(ctx context.Context, owner *models.Owner) (err error) {
	defer s.observe("owner", "update", time.Now(), &err)

	res, err := s.db.ExecContext(ctx, `UPDATE owners SET name = ? WHERE id = ?`, owner.Name, owner.ID)
	if err != nil {
		return fmt.Errorf("failed to update owner: %w", classify(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("owner %d: %w", owner.ID, storage.ErrNotFound)
	}

	s.logger.Debug("updated owner", "id", owner.ID, "name", owner.Name)
	return nil
}

// DeleteOwner removes the owner row; its cars go with it.
func (s *SQLiteStore) DeleteOwner(ctx context.Context, id int64) (err error) {
	defer s.observe("owner", "delete", time.Now(), &err)

	if _, err = s.db.ExecContext(ctx, `DELETE FROM owners WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete owner: %w", classify(err))
	}

	s.logger.Debug("deleted owner", "id", id)
	return nil
}

// GetOwner retrieves an owner by ID.
func (s *SQLiteStore) GetOwner(ctx context.Context, id int64) (_ *models.Owner, err error) {
	defer s.observe("owner", "get", time.Now(), &err)

	owner := &models.Owner{}
	err = s.db.QueryRowContext(ctx,
		`SELECT id, name FROM owners WHERE id = ?`, id,
	).Scan(&owner.ID, &owner.Name)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Owner not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}

	return owner, nil
}

// GetOwnerByName retrieves an owner by exact name.
func (s *SQLiteStore) GetOwnerByName(ctx context.Context, name string) (_ *models.Owner, err error) {
	defer s.observe("owner", "get_by_name", time.Now(), &err)

	owner := &models.Owner{}
	err = s.db.QueryRowContext(ctx,
		`SELECT id, name FROM owners WHERE name = ?`, name,
	).Scan(&owner.ID, &owner.Name)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Owner not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get owner by name: %w", err)
	}

	return owner, nil
}

// ListOwners returns all owners ordered by name.
func (s *SQLiteStore) ListOwners(ctx context.Context) (_ []models.Owner, err error) {
	defer s.observe("owner", "list", time.Now(), &err)

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM owners ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	defer rows.Close()

	var owners []models.Owner
	for rows.Next() {
		var owner models.Owner
		if err := rows.Scan(&owner.ID, &owner.Name); err != nil {
			return nil, fmt.Errorf("failed to scan owner: %w", err)
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating owners: %w", err)
	}

	return owners, nil
}

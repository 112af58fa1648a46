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

const carColumns = `id, make, model, year, owner_id`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCar(row rowScanner) (*models.Car, error) {
	car := &models.Car{}
	if err := row.Scan(&car.ID, &car.Make, &car.Model, &car.Year, &car.OwnerID); err != nil {
		return nil, err
	}
	return car, nil
}

// CreateCar inserts a new car and assigns its ID.
func (s *SQLiteStore) CreateCar(ctx context.Context, car *models.Car) (err error) {
	defer s.observe("car", "create", time.Now(), &err)

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO cars (make, model, year, owner_id) VALUES (?, ?, ?, ?)`,
		car.Make, car.Model, car.Year, car.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert car: %w", classify(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read car id: %w", err)
	}

	car.ID = id
	s.logger.Debug("created car", "id", id, "owner_id", car.OwnerID)
	return nil
}

// UpdateCar rewrites the car's row.
func (s *SQLiteStore) UpdateCar(ctx context.Context, car *models.Car) (err error) {
	defer s.observe("car", "update", time.Now(), &err)

	res, err := s.db.ExecContext(ctx,
		`UPDATE cars SET make = ?, model = ?, year = ?, owner_id = ? WHERE id = ?`,
		car.Make, car.Model, car.Year, car.OwnerID, car.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update car: %w", classify(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("car %d: %w", car.ID, storage.ErrNotFound)
	}

	s.logger.Debug("updated car", "id", car.ID)
	return nil
}

// DeleteCar removes the car row.
func (s *SQLiteStore) DeleteCar(ctx context.Context, id int64) (err error) {
	defer s.observe("car", "delete", time.Now(), &err)

	if _, err = s.db.ExecContext(ctx, `DELETE FROM cars WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}

	s.logger.Debug("deleted car", "id", id)
	return nil
}

// GetCar retrieves a car by ID.
func (s *SQLiteStore) GetCar(ctx context.Context, id int64) (_ *models.Car, err error) {
	defer s.observe("car", "get", time.Now(), &err)

	car, err := scanCar(s.db.QueryRowContext(ctx,
		`SELECT `+carColumns+` FROM cars WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Car not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get car: %w", err)
	}

	return car, nil
}

// GetCarByModel retrieves the first car with the given model.
// No ORDER BY: which row comes first is up to SQLite.
func (s *SQLiteStore) GetCarByModel(ctx context.Context, model string) (_ *models.Car, err error) {
	defer s.observe("car", "get_by_model", time.Now(), &err)

	car, err := scanCar(s.db.QueryRowContext(ctx,
		`SELECT `+carColumns+` FROM cars WHERE model = ? LIMIT 1`, model,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Car not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get car by model: %w", err)
	}

	return car, nil
}

// ListCars returns all cars ordered by ID.
func (s *SQLiteStore) ListCars(ctx context.Context) (_ []models.Car, err error) {
	defer s.observe("car", "list", time.Now(), &err)

	return s.queryCars(ctx, `SELECT `+carColumns+` FROM cars ORDER BY id`)
}

// ListCarsByOwner returns the owner's cars ordered by ID.
func (s *SQLiteStore) ListCarsByOwner(ctx context.Context, ownerID int64) (_ []models.Car, err error) {
	defer s.observe("car", "list_by_owner", time.Now(), &err)

	return s.queryCars(ctx, `SELECT `+carColumns+` FROM cars WHERE owner_id = ? ORDER BY id`, ownerID)
}

func (s *SQLiteStore) queryCars(ctx context.Context, query string, args ...any) ([]models.Car, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	defer rows.Close()

	var cars []models.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan car: %w", err)
		}
		cars = append(cars, *car)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cars: %w", err)
	}

	return cars, nil
}

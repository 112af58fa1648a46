// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/garage/internal/models"
)

// OwnerStore defines persistence operations for owners.
type OwnerStore interface {
	// CreateOwner inserts a new owner row.
	// On success owner.ID is populated by the store; on failure it is left untouched.
	CreateOwner(ctx context.Context, owner *models.Owner) error

	// UpdateOwner rewrites the row with owner.ID.
	// Returns ErrNotFound if no such row exists.
	UpdateOwner(ctx context.Context, owner *models.Owner) error

	// DeleteOwner removes the row with the given ID. Dependent cars are
	// removed by the foreign key's ON DELETE CASCADE.
	DeleteOwner(ctx context.Context, id int64) error

	// GetOwner retrieves an owner by ID.
	// Returns nil, nil if the owner is not found.
	GetOwner(ctx context.Context, id int64) (*models.Owner, error)

	// GetOwnerByName retrieves an owner by exact name.
	// Returns nil, nil if the owner is not found.
	GetOwnerByName(ctx context.Context, name string) (*models.Owner, error)

	// ListOwners returns every owner ordered by name.
	ListOwners(ctx context.Context) ([]models.Owner, error)
}

// CarStore defines persistence operations for cars.
type CarStore interface {
	// CreateCar inserts a new car row.
	// On success car.ID is populated by the store; on failure it is left untouched.
	CreateCar(ctx context.Context, car *models.Car) error

	// UpdateCar rewrites the row with car.ID.
	// Returns ErrNotFound if no such row exists.
	UpdateCar(ctx context.Context, car *models.Car) error

	// DeleteCar removes the row with the given ID.
	DeleteCar(ctx context.Context, id int64) error

	// GetCar retrieves a car by ID.
	// Returns nil, nil if the car is not found.
	GetCar(ctx context.Context, id int64) (*models.Car, error)

	// GetCarByModel returns the first car with the given model, in whatever
	// order the database yields rows. Returns nil, nil if none match.
	GetCarByModel(ctx context.Context, model string) (*models.Car, error)

	// ListCars returns every car ordered by ID.
	ListCars(ctx context.Context) ([]models.Car, error)

	// ListCarsByOwner returns the cars referencing ownerID, ordered by ID.
	ListCarsByOwner(ctx context.Context, ownerID int64) ([]models.Car, error)
}

// SchemaManager creates and drops the tables backing the stores.
// Every operation is idempotent.
type SchemaManager interface {
	CreateOwnersTable(ctx context.Context) error
	CreateCarsTable(ctx context.Context) error
	DropOwnersTable(ctx context.Context) error
	DropCarsTable(ctx context.Context) error

	// EnsureSchema creates both tables, owners first.
	EnsureSchema(ctx context.Context) error

	// Reset drops both tables and recreates them empty.
	Reset(ctx context.Context) error
}

// Store combines all persistence operations.
// This abstraction allows the service layer to be tested against any backend
// without changing the callers.
type Store interface {
	OwnerStore
	CarStore
	SchemaManager

	// Close releases any resources held by the store.
	Close() error
}

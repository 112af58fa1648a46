package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mmynk/garage/internal/models"
	"github.com/mmynk/garage/internal/storage"
)

// OwnerService implements the owner lifecycle on top of a storage backend.
type OwnerService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewOwnerService creates a new OwnerService with the given storage backend.
// A nil logger falls back to slog.Default().
func NewOwnerService(store storage.Store, logger *slog.Logger) *OwnerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OwnerService{store: store, logger: logger.With("component", "owners")}
}

// Create builds a new owner from name and persists it.
func (s *OwnerService) Create(ctx context.Context, name string) (*models.Owner, error) {
	owner, err := models.NewOwner(name)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

// Save inserts the owner if it has no ID yet, otherwise updates its row.
// The owner is only modified once the store has accepted the write.
func (s *OwnerService) Save(ctx context.Context, owner *models.Owner) error {
	candidate := *owner
	candidate.Normalize()
	if err := candidate.Validate(); err != nil {
		return err
	}

	op := "update"
	var err error
	if candidate.Persisted() {
		err = s.store.UpdateOwner(ctx, &candidate)
	} else {
		op = "create"
		err = s.store.CreateOwner(ctx, &candidate)
	}
	if err != nil {
		s.logFailure(op, err, "name", candidate.Name)
		return err
	}

	*owner = candidate
	s.logger.Info("Owner saved", "op", op, "owner_id", owner.ID, "name", owner.Name)
	return nil
}

// Rename validates name and saves it. On failure the owner keeps its
// previous name.
func (s *OwnerService) Rename(ctx context.Context, owner *models.Owner, name string) error {
	renamed := *owner
	renamed.Name = name
	if err := s.Save(ctx, &renamed); err != nil {
		return err
	}
	*owner = renamed
	return nil
}

// Delete removes the owner and, through the foreign key, all of its cars.
// The owner's ID is reset to zero. Deleting a transient owner does nothing.
func (s *OwnerService) Delete(ctx context.Context, owner *models.Owner) error {
	if !owner.Persisted() {
		return nil
	}
	if err := s.store.DeleteOwner(ctx, owner.ID); err != nil {
		s.logFailure("delete", err, "owner_id", owner.ID)
		return err
	}
	s.logger.Info("Owner deleted", "owner_id", owner.ID, "name", owner.Name)
	owner.ID = 0
	return nil
}

// All returns every owner ordered by name.
func (s *OwnerService) All(ctx context.Context) ([]models.Owner, error) {
	return s.store.ListOwners(ctx)
}

// FindByID returns the owner with the given ID, or nil if there is none.
func (s *OwnerService) FindByID(ctx context.Context, id int64) (*models.Owner, error) {
	return s.store.GetOwner(ctx, id)
}

// FindByName returns the owner with the given name (after trimming), or nil.
func (s *OwnerService) FindByName(ctx context.Context, name string) (*models.Owner, error) {
	return s.store.GetOwnerByName(ctx, strings.TrimSpace(name))
}

// Cars queries the owner's cars. A transient owner has none.
func (s *OwnerService) Cars(ctx context.Context, owner *models.Owner) ([]models.Car, error) {
	if !owner.Persisted() {
		return nil, nil
	}
	return s.store.ListCarsByOwner(ctx, owner.ID)
}

func (s *OwnerService) logFailure(op string, err error, args ...any) {
	logFailure(s.logger, "owner", op, err, args...)
}

// logFailure logs expected rejections (constraints, vanished rows) at info
// and anything else at error.
func logFailure(logger *slog.Logger, entity, op string, err error, args ...any) {
	attrs := append([]any{"entity", entity, "op", op, "error", err}, args...)
	if errors.Is(err, storage.ErrConstraintViolation) || errors.Is(err, storage.ErrNotFound) {
		logger.Info("Write rejected", attrs...)
		return
	}
	logger.Error("Write failed", attrs...)
}

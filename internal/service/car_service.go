package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmynk/garage/internal/models"
	"github.com/mmynk/garage/internal/storage"
)

// CarService implements the car lifecycle on top of a storage backend.
type CarService struct {
	store  storage.Store
	years  models.YearRange
	logger *slog.Logger
}

// CarUpdate lists the fields to change on a car. Nil fields are kept.
type CarUpdate struct {
	Make  *string
	Model *string
	Year  *int
}

// NewCarService creates a new CarService that accepts model years within years.
// A nil logger falls back to slog.Default().
func NewCarService(store storage.Store, years models.YearRange, logger *slog.Logger) *CarService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CarService{store: store, years: years, logger: logger.With("component", "cars")}
}

// Years returns the accepted model year range.
func (s *CarService) Years() models.YearRange {
	return s.years
}

// Create builds a new car and persists it.
func (s *CarService) Create(ctx context.Context, carMake, model string, year int, ownerID int64) (*models.Car, error) {
	car, err := models.NewCar(carMake, model, year, ownerID, s.years)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

// Save inserts the car if it has no ID yet, otherwise updates its row.
// The car is only modified once the store has accepted the write.
func (s *CarService) Save(ctx context.Context, car *models.Car) error {
	candidate := *car
	candidate.Normalize()
	if err := candidate.Validate(s.years); err != nil {
		return err
	}

	op := "update"
	var err error
	if candidate.Persisted() {
		err = s.store.UpdateCar(ctx, &candidate)
	} else {
		op = "create"
		err = s.store.CreateCar(ctx, &candidate)
	}
	if err != nil {
		logFailure(s.logger, "car", op, err, "owner_id", candidate.OwnerID)
		return err
	}

	*car = candidate
	s.logger.Info("Car saved", "op", op, "car_id", car.ID, "owner_id", car.OwnerID)
	return nil
}

// Update applies the non-nil fields of u and saves the result. On failure
// the car is left as it was.
func (s *CarService) Update(ctx context.Context, car *models.Car, u CarUpdate) error {
	updated := *car
	if u.Make != nil {
		updated.Make = *u.Make
	}
	if u.Model != nil {
		updated.Model = *u.Model
	}
	if u.Year != nil {
		updated.Year = *u.Year
	}
	if err := s.Save(ctx, &updated); err != nil {
		return err
	}
	*car = updated
	return nil
}

// Delete removes the car and resets its ID to zero.
// Deleting a transient car does nothing.
func (s *CarService) Delete(ctx context.Context, car *models.Car) error {
	if !car.Persisted() {
		return nil
	}
	if err := s.store.DeleteCar(ctx, car.ID); err != nil {
		logFailure(s.logger, "car", "delete", err, "car_id", car.ID)
		return err
	}
	s.logger.Info("Car deleted", "car_id", car.ID)
	car.ID = 0
	return nil
}

// All returns every car ordered by ID.
func (s *CarService) All(ctx context.Context) ([]models.Car, error) {
	return s.store.ListCars(ctx)
}

// FindByID returns the car with the given ID, or nil if there is none.
func (s *CarService) FindByID(ctx context.Context, id int64) (*models.Car, error) {
	return s.store.GetCar(ctx, id)
}

// FindByModel returns the first car with the given model, or nil.
// Which car is first when several share a model is unspecified.
func (s *CarService) FindByModel(ctx context.Context, model string) (*models.Car, error) {
	return s.store.GetCarByModel(ctx, strings.TrimSpace(model))
}

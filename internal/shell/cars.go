package shell

import (
	"context"
	"errors"
	"strings"

	"github.com/mmynk/garage/internal/models"
	"github.com/mmynk/garage/internal/service"
)

func (s *Shell) carsMenu(ctx context.Context, owner *models.Owner) error {
	for {
		s.clear()
		s.view.title(owner.Name + "'s Cars")
		s.println("A. List cars")
		s.println("B. Add car")
		s.println("C. Update a car")
		s.println("D. Delete a car")
		s.println("BCK. Back")

		choice, err := s.prompt(ctx, "> ")
		if errors.Is(err, errCancelled) {
			continue
		}
		if err != nil {
			return err
		}

		switch strings.ToLower(choice) {
		case "a":
			err = s.listCars(ctx, owner)
		case "b":
			err = s.addCar(ctx, owner)
		case "c":
			err = s.updateCar(ctx, owner)
		case "d":
			err = s.deleteCar(ctx, owner)
		case "bck":
			return nil
		default:
			s.println("Invalid choice.")
			s.pause(ctx)
			continue
		}
		if err := s.handle(ctx, err); err != nil {
			return err
		}
	}
}

func (s *Shell) listCars(ctx context.Context, owner *models.Owner) error {
	cars, err := s.owners.Cars(ctx, owner)
	if err != nil {
		return err
	}
	if len(cars) == 0 {
		s.println("No cars for this owner.")
	} else {
		CarsTable(s.out, cars)
	}
	s.pause(ctx)
	return nil
}

func (s *Shell) addCar(ctx context.Context, owner *models.Owner) error {
	carMake, err := s.promptNonEmpty(ctx, "Make: ")
	if err != nil {
		return err
	}
	model, err := s.promptNonEmpty(ctx, "Model: ")
	if err != nil {
		return err
	}
	year, err := s.promptYear(ctx, "Year (e.g., 2020): ", false)
	if err != nil {
		return err
	}

	car, err := s.cars.Create(ctx, carMake, model, *year, owner.ID)
	if err != nil {
		return err
	}
	s.logger.Debug("Car created from shell", "car_id", car.ID, "owner_id", owner.ID)
	s.println("Car added.")
	s.pause(ctx)
	return nil
}

// pickCar lists the owner's cars and returns the chosen one, or nil.
func (s *Shell) pickCar(ctx context.Context, owner *models.Owner, title string) (*models.Car, error) {
	cars, err := s.owners.Cars(ctx, owner)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(cars))
	for i, c := range cars {
		labels[i] = c.Label()
	}
	idx, err := s.choose(ctx, title, labels)
	if err != nil || idx < 0 {
		return nil, err
	}
	return &cars[idx], nil
}

func (s *Shell) updateCar(ctx context.Context, owner *models.Owner) error {
	car, err := s.pickCar(ctx, owner, "Choose a car to update:")
	if err != nil || car == nil {
		return err
	}

	var u service.CarUpdate
	if u.Make, err = s.promptKeep(ctx, "New make (Enter to keep): "); err != nil {
		return err
	}
	if u.Model, err = s.promptKeep(ctx, "New model (Enter to keep): "); err != nil {
		return err
	}
	if u.Year, err = s.promptYear(ctx, "New year (Enter to keep): ", true); err != nil {
		return err
	}

	if err := s.cars.Update(ctx, car, u); err != nil {
		return err
	}
	s.println("Car updated.")
	s.pause(ctx)
	return nil
}

// promptKeep returns nil for a blank answer.
func (s *Shell) promptKeep(ctx context.Context, text string) (*string, error) {
	answer, err := s.prompt(ctx, text)
	if err != nil || answer == "" {
		return nil, err
	}
	return &answer, nil
}

func (s *Shell) deleteCar(ctx context.Context, owner *models.Owner) error {
	car, err := s.pickCar(ctx, owner, "Choose a car to delete:")
	if err != nil || car == nil {
		return err
	}
	ok, err := s.confirm(ctx, "Delete this car?")
	if err != nil || !ok {
		return err
	}
	if err := s.cars.Delete(ctx, car); err != nil {
		return err
	}
	s.println("Car deleted.")
	s.pause(ctx)
	return nil
}

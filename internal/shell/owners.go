package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/garage/internal/models"
)

func (s *Shell) ownersMenu(ctx context.Context) error {
	for {
		s.clear()
		s.view.title("Owners Menu")
		s.println("A. List owners")
		s.println("B. Create owner")
		s.println("C. Rename owner")
		s.println("D. Delete owner")
		s.println("E. Show owner's cars")
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
			err = s.listOwners(ctx)
		case "b":
			err = s.createOwner(ctx)
		case "c":
			err = s.renameOwner(ctx)
		case "d":
			err = s.deleteOwner(ctx)
		case "e":
			err = s.ownerCars(ctx)
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

func (s *Shell) listOwners(ctx context.Context) error {
	s.clear()
	owners, err := s.owners.All(ctx)
	if err != nil {
		return err
	}
	if len(owners) == 0 {
		s.println("No owners yet.")
	} else {
		OwnersTable(s.out, owners)
	}
	s.pause(ctx)
	return nil
}

func (s *Shell) createOwner(ctx context.Context) error {
	for {
		name, err := s.promptNonEmpty(ctx, "Owner name: ")
		if err != nil {
			return err
		}
		owner, err := s.owners.Create(ctx, name)
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			s.println(describe(err))
			continue
		}
		if err != nil {
			return err
		}
		s.logger.Debug("Owner created from shell", "owner_id", owner.ID)
		s.println("Owner created.")
		s.pause(ctx)
		return nil
	}
}

// pickOwner lists all owners and returns the chosen one, or nil.
func (s *Shell) pickOwner(ctx context.Context, title string) (*models.Owner, error) {
	owners, err := s.owners.All(ctx)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(owners))
	for i, o := range owners {
		labels[i] = o.Name
	}
	idx, err := s.choose(ctx, title, labels)
	if err != nil || idx < 0 {
		return nil, err
	}
	return &owners[idx], nil
}

func (s *Shell) renameOwner(ctx context.Context) error {
	owner, err := s.pickOwner(ctx, "Choose an owner to rename:")
	if err != nil || owner == nil {
		return err
	}
	for {
		name, err := s.promptNonEmpty(ctx, fmt.Sprintf("New name for %s: ", owner.Name))
		if err != nil {
			return err
		}
		err = s.owners.Rename(ctx, owner, name)
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			s.println(describe(err))
			continue
		}
		if err != nil {
			return err
		}
		s.println("Owner updated.")
		s.pause(ctx)
		return nil
	}
}

func (s *Shell) deleteOwner(ctx context.Context) error {
	owner, err := s.pickOwner(ctx, "Choose an owner to delete:")
	if err != nil || owner == nil {
		return err
	}
	ok, err := s.confirm(ctx, fmt.Sprintf("Delete '%s' and all their cars?", owner.Name))
	if err != nil || !ok {
		return err
	}
	if err := s.owners.Delete(ctx, owner); err != nil {
		return err
	}
	s.println("Owner deleted.")
	s.pause(ctx)
	return nil
}

func (s *Shell) ownerCars(ctx context.Context) error {
	owner, err := s.pickOwner(ctx, "Choose an owner:")
	if err != nil || owner == nil {
		return err
	}
	return s.carsMenu(ctx, owner)
}

package services

import (
	"context"

	"mechanic_shop/internal/apperrors"
	"mechanic_shop/internal/models"
	"mechanic_shop/internal/store"
)

func mechanicID(m models.Mechanic) uint { return m.ID }

func (s *Shop) CreateMechanic(ctx context.Context, in MechanicCreate) (*models.Mechanic, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	mechanic := &models.Mechanic{
		Name:   in.Name,
		Email:  in.Email,
		Phone:  in.Phone,
		Salary: *in.Salary,
	}
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		taken, err := emailTaken(uow, in.Email, 0, mechanicID)
		if err != nil {
			return err
		}
		if taken {
			return &apperrors.ConflictError{Field: "email", Value: in.Email}
		}
		return conflict(uow.Insert(mechanic), "email", in.Email)
	})
	if err != nil {
		return nil, err
	}
	return mechanic, nil
}

func (s *Shop) GetMechanic(ctx context.Context, id uint) (*models.Mechanic, error) {
	var mechanic *models.Mechanic
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		var err error
		mechanic, err = store.Get[models.Mechanic](uow, id)
		return notFound(err, "mechanic", id)
	})
	return mechanic, err
}

func (s *Shop) ListMechanics(ctx context.Context) ([]models.Mechanic, error) {
	var mechanics []models.Mechanic
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		var err error
		mechanics, err = store.All[models.Mechanic](uow)
		return err
	})
	return mechanics, err
}

func (s *Shop) UpdateMechanic(ctx context.Context, id uint, in MechanicUpdate) (*models.Mechanic, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	var mechanic *models.Mechanic
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		var err error
		mechanic, err = store.Get[models.Mechanic](uow, id)
		if err != nil {
			return notFound(err, "mechanic", id)
		}

		if in.Email != nil && *in.Email != mechanic.Email {
			taken, err := emailTaken(uow, *in.Email, id, mechanicID)
			if err != nil {
				return err
			}
			if taken {
				return &apperrors.ConflictError{Field: "email", Value: *in.Email}
			}
			mechanic.Email = *in.Email
		}
		if in.Name != nil {
			mechanic.Name = *in.Name
		}
		if in.Phone != nil {
			mechanic.Phone = *in.Phone
		}
		if in.Salary != nil {
			mechanic.Salary = *in.Salary
		}
		return conflict(uow.Update(mechanic), "email", mechanic.Email)
	})
	if err != nil {
		return nil, err
	}
	return mechanic, nil
}

// DeleteMechanic removes the mechanic from every ticket, then deletes it.
// The tickets themselves are kept.
func (s *Shop) DeleteMechanic(ctx context.Context, id uint) error {
	return s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		mechanic, err := store.Get[models.Mechanic](uow, id)
		if err != nil {
			return notFound(err, "mechanic", id)
		}
		if err := uow.RemoveMechanicEverywhere(id); err != nil {
			return err
		}
		return uow.Delete(mechanic)
	})
}

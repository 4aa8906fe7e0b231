package services

import (
	"context"
	"fmt"

	"mechanic_shop/internal/apperrors"
	"mechanic_shop/internal/models"
	"mechanic_shop/internal/store"
)

func nameTaken(uow *store.UnitOfWork, name string, selfID uint) (bool, error) {
	rows, err := store.FindBy[models.Inventory](uow, "name", name)
	if err != nil {
		return false, err
	}
	for _, r := range rows {
		if r.ID != selfID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Shop) CreateInventory(ctx context.Context, in InventoryCreate) (*models.Inventory, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	item := &models.Inventory{Name: in.Name, Price: *in.Price}
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		taken, err := nameTaken(uow, in.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return &apperrors.ConflictError{Field: "name", Value: in.Name}
		}
		return conflict(uow.Insert(item), "name", in.Name)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Shop) GetInventory(ctx context.Context, id uint) (*models.Inventory, error) {
	var item *models.Inventory
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		var err error
		item, err = store.Get[models.Inventory](uow, id)
		return notFound(err, "inventory", id)
	})
	return item, err
}

func (s *Shop) ListInventory(ctx context.Context) ([]models.Inventory, error) {
	var items []models.Inventory
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		var err error
		items, err = store.All[models.Inventory](uow)
		return err
	})
	return items, err
}

func (s *Shop) UpdateInventory(ctx context.Context, id uint, in InventoryUpdate) (*models.Inventory, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	var item *models.Inventory
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		var err error
		item, err = store.Get[models.Inventory](uow, id)
		if err != nil {
			return notFound(err, "inventory", id)
		}

		if in.Name != nil && *in.Name != item.Name {
			taken, err := nameTaken(uow, *in.Name, id)
			if err != nil {
				return err
			}
			if taken {
				return &apperrors.ConflictError{Field: "name", Value: *in.Name}
			}
			item.Name = *in.Name
		}
		if in.Price != nil {
			item.Price = *in.Price
		}
		return conflict(uow.Update(item), "name", item.Name)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteInventory refuses to remove an item that any ticket line still
// references.
func (s *Shop) DeleteInventory(ctx context.Context, id uint) error {
	return s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		item, err := store.Get[models.Inventory](uow, id)
		if err != nil {
			return notFound(err, "inventory", id)
		}
		n, err := uow.CountLinesForInventory(id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &apperrors.ConflictError{
				Field:   "inventory_id",
				Message: fmt.Sprintf("inventory %d is used by %d service ticket line(s)", id, n),
			}
		}
		return uow.Delete(item)
	})
}

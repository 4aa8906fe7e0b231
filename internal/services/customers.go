package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"mechanic_shop/internal/apperrors"
	"mechanic_shop/internal/models"
	"mechanic_shop/internal/store"
)

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// emailTaken reports whether another row of T already uses email. The
// unique index still decides under concurrency.
func emailTaken[T any](uow *store.UnitOfWork, email string, selfID uint, idOf func(T) uint) (bool, error) {
	rows, err := store.FindBy[T](uow, "email", email)
	if err != nil {
		return false, err
	}
	for _, r := range rows {
		if idOf(r) != selfID {
			return true, nil
		}
	}
	return false, nil
}

func customerID(c models.Customer) uint { return c.ID }

// Signup registers a customer. The password is stored as a bcrypt hash.
func (s *Shop) Signup(ctx context.Context, in CustomerSignup) (*models.Customer, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: hash,
	}
	err = s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		taken, err := emailTaken(uow, in.Email, 0, customerID)
		if err != nil {
			return err
		}
		if taken {
			return &apperrors.ConflictError{Field: "email", Value: in.Email}
		}
		return conflict(uow.Insert(customer), "email", in.Email)
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// Login checks the credentials and issues a bearer token for the customer.
func (s *Shop) Login(ctx context.Context, in LoginRequest) (string, error) {
	if err := validate(in); err != nil {
		return "", err
	}

	var customer *models.Customer
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		rows, err := store.FindBy[models.Customer](uow, "email", in.Email)
		if err != nil {
			return err
		}
		if len(rows) > 0 {
			customer = &rows[0]
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	invalid := &apperrors.AuthError{Reason: "Invalid email or password."}
	if customer == nil {
		return "", invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(in.Password)); err != nil {
		return "", invalid
	}
	return s.auth.IssueCredential(customer.ID)
}

func (s *Shop) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var customer *models.Customer
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		var err error
		customer, err = store.Get[models.Customer](uow, id)
		return notFound(err, "customer", id)
	})
	return customer, err
}

func (s *Shop) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		var err error
		customers, err = store.All[models.Customer](uow)
		return err
	})
	return customers, err
}

// UpdateCustomer applies the non-nil fields of in. A new password is hashed.
func (s *Shop) UpdateCustomer(ctx context.Context, id uint, in CustomerUpdate) (*models.Customer, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	var hash string
	if in.Password != nil {
		var err error
		if hash, err = hashPassword(*in.Password); err != nil {
			return nil, err
		}
	}

	var customer *models.Customer
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		var err error
		customer, err = store.Get[models.Customer](uow, id)
		if err != nil {
			return notFound(err, "customer", id)
		}

		if in.Email != nil && *in.Email != customer.Email {
			taken, err := emailTaken(uow, *in.Email, id, customerID)
			if err != nil {
				return err
			}
			if taken {
				return &apperrors.ConflictError{Field: "email", Value: *in.Email}
			}
			customer.Email = *in.Email
		}
		if in.Name != nil {
			customer.Name = *in.Name
		}
		if in.Phone != nil {
			customer.Phone = *in.Phone
		}
		if in.Password != nil {
			customer.Password = hash
		}
		return conflict(uow.Update(customer), "email", customer.Email)
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes the authenticated customer. A customer who still
// owns tickets cannot be deleted, so no ticket is ever orphaned.
func (s *Shop) DeleteCustomer(ctx context.Context, id uint) error {
	return s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		customer, err := store.Get[models.Customer](uow, id)
		if err != nil {
			return notFound(err, "customer", id)
		}
		n, err := uow.CountTicketsForCustomer(id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &apperrors.ConflictError{
				Field:   "customer_id",
				Message: fmt.Sprintf("customer %d still owns %d service ticket(s)", id, n),
			}
		}
		return uow.Delete(customer)
	})
}

// CustomerTickets lists the tickets owned by the customer.
func (s *Shop) CustomerTickets(ctx context.Context, id uint) ([]models.ServiceTicket, error) {
	var tickets []models.ServiceTicket
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		var err error
		tickets, err = uow.TicketsForCustomer(id)
		return err
	})
	return tickets, err
}

package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"mechanic_shop/internal/apperrors"
	"mechanic_shop/internal/models"
	"mechanic_shop/internal/store"
)

// AssembleTicket persists a ticket with its mechanics and inventory lines.
// Every referenced id must resolve: the first customer, mechanic or
// inventory id that does not is returned as a ReferenceError and, because
// the caller's unit of work then rolls back, nothing is persisted.
// req must already have passed validation.
func AssembleTicket(uow *store.UnitOfWork, req CreateTicketRequest) (*models.ServiceTicket, error) {
	date, err := parseDate("service_date", req.ServiceDate)
	if err != nil {
		return nil, err
	}

	ok, err := store.Exists[models.Customer](uow, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &apperrors.ReferenceError{Field: "customer_id", ID: req.CustomerID}
	}

	ticket := &models.ServiceTicket{
		VIN:         req.VIN,
		ServiceDate: date,
		ServiceDesc: req.ServiceDesc,
		CustomerID:  req.CustomerID,
	}
	if err := uow.Insert(ticket); err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(req.MechanicIDs))
	for _, id := range req.MechanicIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		ok, err := store.Exists[models.Mechanic](uow, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &apperrors.ReferenceError{Field: "mechanic_id", ID: id}
		}
		if err := uow.AddMember(ticket.ID, id); err != nil {
			return nil, err
		}
	}

	if err := addLines(uow, ticket.ID, req.Inventory); err != nil {
		return nil, err
	}

	return uow.LoadTicket(ticket.ID)
}

// addLines inserts one line per entry, in order. Lines are never merged.
func addLines(uow *store.UnitOfWork, ticketID uint, lines []InventoryLine) error {
	for _, line := range lines {
		ok, err := store.Exists[models.Inventory](uow, line.InventoryID)
		if err != nil {
			return err
		}
		if !ok {
			return &apperrors.ReferenceError{Field: "inventory_id", ID: line.InventoryID}
		}
		row := &models.ServiceInventory{
			TicketID:    ticketID,
			InventoryID: line.InventoryID,
			Quantity:    line.Quantity,
		}
		if err := uow.Insert(row); err != nil {
			return err
		}
	}
	return nil
}

// CreateTicket validates req and assembles the ticket in one unit of work.
func (s *Shop) CreateTicket(ctx context.Context, req CreateTicketRequest) (*models.ServiceTicket, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var ticket *models.ServiceTicket
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		var err error
		ticket, err = AssembleTicket(uow, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"ticket_id":   ticket.ID,
		"customer_id": ticket.CustomerID,
		"mechanics":   len(ticket.Mechanics),
		"lines":       len(ticket.ServiceInventory),
	}).Info("service ticket created")
	return ticket, nil
}

func (s *Shop) GetTicket(ctx context.Context, id uint) (*models.ServiceTicket, error) {
	var ticket *models.ServiceTicket
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		var err error
		ticket, err = uow.LoadTicket(id)
		return notFound(err, "service_ticket", id)
	})
	return ticket, err
}

// ListTickets returns every ticket with only its membership set loaded.
func (s *Shop) ListTickets(ctx context.Context) ([]models.ServiceTicket, error) {
	var tickets []models.ServiceTicket
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		var err error
		tickets, err = uow.ListTickets()
		return err
	})
	return tickets, err
}

// ListTicketAggregates returns every ticket with mechanics and lines.
func (s *Shop) ListTicketAggregates(ctx context.Context) ([]models.ServiceTicket, error) {
	var tickets []models.ServiceTicket
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		var err error
		tickets, err = uow.ListTicketAggregates()
		return err
	})
	return tickets, err
}

// UpdateTicket applies the non-nil fields of in. A new customer_id must
// reference an existing customer.
func (s *Shop) UpdateTicket(ctx context.Context, id uint, in TicketUpdate) (*models.ServiceTicket, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	var ticket *models.ServiceTicket
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		current, err := store.Get[models.ServiceTicket](uow, id)
		if err != nil {
			return notFound(err, "service_ticket", id)
		}

		if in.VIN != nil {
			current.VIN = *in.VIN
		}
		if in.ServiceDate != nil {
			date, err := parseDate("service_date", *in.ServiceDate)
			if err != nil {
				return err
			}
			current.ServiceDate = date
		}
		if in.ServiceDesc != nil {
			current.ServiceDesc = *in.ServiceDesc
		}
		if in.CustomerID != nil && *in.CustomerID != current.CustomerID {
			ok, err := store.Exists[models.Customer](uow, *in.CustomerID)
			if err != nil {
				return err
			}
			if !ok {
				return &apperrors.ReferenceError{Field: "customer_id", ID: *in.CustomerID}
			}
			current.CustomerID = *in.CustomerID
		}

		if err := uow.Update(current); err != nil {
			return err
		}
		ticket, err = uow.LoadTicket(id)
		return err
	})
	return ticket, err
}

// DeleteTicket removes the ticket together with its membership rows and
// inventory lines.
func (s *Shop) DeleteTicket(ctx context.Context, id uint) error {
	return s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		ticket, err := store.Get[models.ServiceTicket](uow, id)
		if err != nil {
			return notFound(err, "service_ticket", id)
		}
		if err := uow.ClearTicket(id); err != nil {
			return err
		}
		return uow.Delete(ticket)
	})
}

// AddInventory appends inventory lines to an existing ticket. Like ticket
// creation it is all-or-nothing: one unknown inventory id rejects the lot.
func (s *Shop) AddInventory(ctx context.Context, ticketID uint, req AddInventoryRequest) (*models.ServiceTicket, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var ticket *models.ServiceTicket
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		ok, err := store.Exists[models.ServiceTicket](uow, ticketID)
		if err != nil {
			return err
		}
		if !ok {
			return &apperrors.NotFoundError{Entity: "service_ticket", ID: ticketID}
		}
		if err := addLines(uow, ticketID, req.Items); err != nil {
			return err
		}
		ticket, err = uow.LoadTicket(ticketID)
		return err
	})
	return ticket, err
}

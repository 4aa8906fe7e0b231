package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"mechanic_shop/internal/apperrors"
	"mechanic_shop/internal/models"
	"mechanic_shop/internal/store"
)

// AddMechanics adds every id that names an existing mechanic not yet on the
// ticket. Unknown ids and current members are skipped, so repeating a call
// leaves the membership unchanged. Unlike AssembleTicket, an unknown id is
// not an error.
func AddMechanics(uow *store.UnitOfWork, ticketID uint, ids []uint) (*models.ServiceTicket, error) {
	members, err := membership(uow, ticketID)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		if members[id] {
			continue
		}
		ok, err := store.Exists[models.Mechanic](uow, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			logrus.WithFields(logrus.Fields{"ticket_id": ticketID, "mechanic_id": id}).
				Debug("assign mechanics: skipping unknown mechanic")
			continue
		}
		if err := uow.AddMember(ticketID, id); err != nil {
			return nil, err
		}
		members[id] = true
	}
	return uow.LoadTicket(ticketID)
}

// RemoveMechanics drops every id currently on the ticket; other ids are
// ignored.
func RemoveMechanics(uow *store.UnitOfWork, ticketID uint, ids []uint) (*models.ServiceTicket, error) {
	members, err := membership(uow, ticketID)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		if !members[id] {
			continue
		}
		if err := uow.RemoveMember(ticketID, id); err != nil {
			return nil, err
		}
		delete(members, id)
	}
	return uow.LoadTicket(ticketID)
}

func membership(uow *store.UnitOfWork, ticketID uint) (map[uint]bool, error) {
	ok, err := store.Exists[models.ServiceTicket](uow, ticketID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &apperrors.NotFoundError{Entity: "service_ticket", ID: ticketID}
	}
	ids, err := uow.MemberIDs(ticketID)
	if err != nil {
		return nil, err
	}
	members := make(map[uint]bool, len(ids))
	for _, id := range ids {
		members[id] = true
	}
	return members, nil
}

func (s *Shop) AssignMechanics(ctx context.Context, ticketID uint, req AssignMechanicsRequest) (*models.ServiceTicket, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var ticket *models.ServiceTicket
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		var err error
		ticket, err = AddMechanics(uow, ticketID, req.AddMechanicsIDs)
		return err
	})
	return ticket, err
}

func (s *Shop) UnassignMechanics(ctx context.Context, ticketID uint, req RemoveMechanicsRequest) (*models.ServiceTicket, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var ticket *models.ServiceTicket
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		var err error
		ticket, err = RemoveMechanics(uow, ticketID, req.RemoveMechanicsIDs)
		return err
	})
	return ticket, err
}

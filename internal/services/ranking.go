package services

import (
	"context"
	"sort"

	"mechanic_shop/internal/models"
	"mechanic_shop/internal/store"
)

type RankedMechanic struct {
	Mechanic    models.Mechanic
	TicketCount int
}

// TopMechanics orders every mechanic by descending ticket count. Mechanics
// with equal counts keep their id order.
func TopMechanics(uow *store.UnitOfWork) ([]RankedMechanic, error) {
	mechanics, err := store.All[models.Mechanic](uow)
	if err != nil {
		return nil, err
	}
	counts, err := uow.TicketCounts()
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedMechanic, 0, len(mechanics))
	for _, m := range mechanics {
		ranked = append(ranked, RankedMechanic{Mechanic: m, TicketCount: counts[m.ID]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TicketCount > ranked[j].TicketCount
	})
	return ranked, nil
}

func (s *Shop) TopMechanics(ctx context.Context) ([]RankedMechanic, error) {
	var ranked []RankedMechanic
	err := s.store.Do(ctx, func(uow *store.UnitOfWork) error {
		var err error
		ranked, err = TopMechanics(uow)
		return err
	})
	return ranked, err
}

package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"mechanic_shop/internal/models"
)

func orderByID(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".id")
	}
}

// LoadTicket loads the full aggregate: mechanics by id and inventory lines
// in insertion order with their inventory item.
func (u *UnitOfWork) LoadTicket(id uint) (*models.ServiceTicket, error) {
	var ticket models.ServiceTicket
	err := u.tx.
		Preload("Mechanics", orderByID("mechanics")).
		Preload("ServiceInventory", orderByID("service_inventory")).
		Preload("ServiceInventory.Inventory").
		First(&ticket, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load ticket %d: %w", id, err)
	}
	return &ticket, nil
}

// ListTickets returns every ticket with its membership set loaded.
func (u *UnitOfWork) ListTickets() ([]models.ServiceTicket, error) {
	return u.listTickets(u.tx, false)
}

// ListTicketAggregates returns every ticket with mechanics and lines loaded.
func (u *UnitOfWork) ListTicketAggregates() ([]models.ServiceTicket, error) {
	return u.listTickets(u.tx, true)
}

// TicketsForCustomer returns the tickets owned by customerID.
func (u *UnitOfWork) TicketsForCustomer(customerID uint) ([]models.ServiceTicket, error) {
	return u.listTickets(u.tx.Where("customer_id = ?", customerID), false)
}

func (u *UnitOfWork) listTickets(q *gorm.DB, withLines bool) ([]models.ServiceTicket, error) {
	q = q.Preload("Mechanics", orderByID("mechanics"))
	if withLines {
		q = q.Preload("ServiceInventory", orderByID("service_inventory")).
			Preload("ServiceInventory.Inventory")
	}
	var tickets []models.ServiceTicket
	if err := q.Order("id").Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// MemberIDs returns the mechanic ids currently assigned to ticketID.
func (u *UnitOfWork) MemberIDs(ticketID uint) ([]uint, error) {
	var ids []uint
	err := u.tx.Model(&models.ServiceMechanic{}).
		Where("ticket_id = ?", ticketID).
		Order("mechanic_id").
		Pluck("mechanic_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("members of ticket %d: %w", ticketID, err)
	}
	return ids, nil
}

// AddMember inserts one membership row.
func (u *UnitOfWork) AddMember(ticketID, mechanicID uint) error {
	row := models.ServiceMechanic{TicketID: ticketID, MechanicID: mechanicID}
	if err := u.tx.Create(&row).Error; err != nil {
		return translate(err)
	}
	return nil
}

// RemoveMember deletes one membership row. Missing rows are not an error.
func (u *UnitOfWork) RemoveMember(ticketID, mechanicID uint) error {
	err := u.tx.
		Where("ticket_id = ? AND mechanic_id = ?", ticketID, mechanicID).
		Delete(&models.ServiceMechanic{}).Error
	if err != nil {
		return fmt.Errorf("remove mechanic %d from ticket %d: %w", mechanicID, ticketID, err)
	}
	return nil
}

// RemoveMechanicEverywhere drops every membership row of mechanicID.
func (u *UnitOfWork) RemoveMechanicEverywhere(mechanicID uint) error {
	err := u.tx.Where("mechanic_id = ?", mechanicID).Delete(&models.ServiceMechanic{}).Error
	if err != nil {
		return fmt.Errorf("remove memberships of mechanic %d: %w", mechanicID, err)
	}
	return nil
}

// ClearTicket drops the membership rows and inventory lines of ticketID.
func (u *UnitOfWork) ClearTicket(ticketID uint) error {
	if err := u.tx.Where("ticket_id = ?", ticketID).Delete(&models.ServiceMechanic{}).Error; err != nil {
		return fmt.Errorf("clear memberships of ticket %d: %w", ticketID, err)
	}
	if err := u.tx.Where("ticket_id = ?", ticketID).Delete(&models.ServiceInventory{}).Error; err != nil {
		return fmt.Errorf("clear lines of ticket %d: %w", ticketID, err)
	}
	return nil
}

// CountLinesForInventory counts the inventory lines referencing inventoryID.
func (u *UnitOfWork) CountLinesForInventory(inventoryID uint) (int64, error) {
	var n int64
	err := u.tx.Model(&models.ServiceInventory{}).Where("inventory_id = ?", inventoryID).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count lines of inventory %d: %w", inventoryID, err)
	}
	return n, nil
}

// CountTicketsForCustomer counts the tickets owned by customerID.
func (u *UnitOfWork) CountTicketsForCustomer(customerID uint) (int64, error) {
	var n int64
	err := u.tx.Model(&models.ServiceTicket{}).Where("customer_id = ?", customerID).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count tickets of customer %d: %w", customerID, err)
	}
	return n, nil
}

// TicketCounts maps mechanic id to the number of tickets it belongs to.
// Mechanics without tickets are absent.
func (u *UnitOfWork) TicketCounts() (map[uint]int, error) {
	var rows []struct {
		MechanicID  uint
		TicketCount int
	}
	err := u.tx.Model(&models.ServiceMechanic{}).
		Select("mechanic_id, COUNT(*) AS ticket_count").
		Group("mechanic_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("ticket counts: %w", err)
	}
	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.MechanicID] = r.TicketCount
	}
	return counts, nil
}

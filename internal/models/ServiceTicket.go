package models

import (
	"time"

	"gorm.io/datatypes"
)

// ServiceTicket is a repair job for one customer's vehicle. Mechanics is the
// membership set, ServiceInventory the ordered list of consumed parts.
type ServiceTicket struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	VIN         string         `gorm:"column:vin;size:17;not null" json:"vin"`
	ServiceDate datatypes.Date `gorm:"not null" json:"service_date"`
	ServiceDesc string         `gorm:"size:255;not null" json:"service_desc"`
	CustomerID  uint           `gorm:"not null;index" json:"customer_id"`

	Customer         Customer           `gorm:"foreignKey:CustomerID" json:"-"`
	Mechanics        []Mechanic         `gorm:"many2many:service_mechanics;joinForeignKey:TicketID;joinReferences:MechanicID" json:"mechanics,omitempty"`
	ServiceInventory []ServiceInventory `gorm:"foreignKey:TicketID" json:"service_inventory,omitempty"`
}

// MechanicIDs lists the ids of the loaded membership set.
func (t *ServiceTicket) MechanicIDs() []uint {
	ids := make([]uint, 0, len(t.Mechanics))
	for _, m := range t.Mechanics {
		ids = append(ids, m.ID)
	}
	return ids
}

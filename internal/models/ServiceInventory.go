package models

// ServiceInventory is an inventory line: Quantity units of one Inventory item
// consumed by a ticket. The same item may appear on several lines.
type ServiceInventory struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	TicketID    uint `gorm:"not null;index" json:"ticket_id"`
	InventoryID uint `gorm:"not null;index" json:"inventory_id"`
	Quantity    int  `gorm:"not null" json:"quantity"`

	Inventory Inventory `gorm:"foreignKey:InventoryID" json:"inventory"`
}

func (ServiceInventory) TableName() string {
	return "service_inventory"
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&Customer{},
		&Mechanic{},
		&Inventory{},
		&ServiceTicket{},
		&ServiceMechanic{},
		&ServiceInventory{},
	}
}

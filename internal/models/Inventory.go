package models

import "time"

// Inventory is a part the shop can consume on a ticket.
type Inventory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name  string  `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Price float64 `gorm:"not null" json:"price"`
}

func (Inventory) TableName() string {
	return "inventory"
}

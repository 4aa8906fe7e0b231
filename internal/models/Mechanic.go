package models

import "time"

type Mechanic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name   string  `gorm:"size:255;not null" json:"name"`
	Email  string  `gorm:"size:360;not null;uniqueIndex" json:"email"`
	Phone  string  `gorm:"size:20;not null" json:"phone"`
	Salary float64 `gorm:"not null" json:"salary"`

	ServiceTickets []ServiceTicket `gorm:"many2many:service_mechanics;joinForeignKey:MechanicID;joinReferences:TicketID" json:"-"`
}

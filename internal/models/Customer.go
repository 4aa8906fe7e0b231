package models

import "time"

// Customer owns service tickets. Password holds a bcrypt hash and is never
// serialized.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"size:360;not null;uniqueIndex" json:"email"`
	Phone    string `gorm:"size:20;not null" json:"phone"`
	Password string `gorm:"size:255;not null" json:"-"`

	ServiceTickets []ServiceTicket `gorm:"foreignKey:CustomerID" json:"-"`
}

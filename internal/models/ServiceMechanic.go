package models

// ServiceMechanic is one membership row. The composite key makes the store
// reject a second row for the same ticket and mechanic.
type ServiceMechanic struct {
	TicketID   uint `gorm:"primaryKey;autoIncrement:false"`
	MechanicID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

func (ServiceMechanic) TableName() string {
	return "service_mechanics"
}

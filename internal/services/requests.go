package services

import (
	"time"

	"gorm.io/datatypes"

	"mechanic_shop/internal/apperrors"
	"mechanic_shop/internal/validation"
)

// DateLayout is the wire format of service_date.
const DateLayout = "2006-01-02"

type InventoryLine struct {
	InventoryID uint `json:"inventory_id" binding:"required"`
	Quantity    int  `json:"quantity" binding:"required,gt=0"`
}

type CreateTicketRequest struct {
	VIN         string          `json:"vin" binding:"required,max=17"`
	ServiceDate string          `json:"service_date" binding:"required,datetime=2006-01-02"`
	ServiceDesc string          `json:"service_desc" binding:"required,max=255"`
	CustomerID  uint            `json:"customer_id" binding:"required"`
	MechanicIDs []uint          `json:"mechanic_ids" binding:"omitempty,dive,gt=0"`
	Inventory   []InventoryLine `json:"inventory" binding:"omitempty,dive"`
}

type TicketUpdate struct {
	VIN         *string `json:"vin" binding:"omitempty,min=1,max=17"`
	ServiceDate *string `json:"service_date" binding:"omitempty,datetime=2006-01-02"`
	ServiceDesc *string `json:"service_desc" binding:"omitempty,min=1,max=255"`
	CustomerID  *uint   `json:"customer_id" binding:"omitempty,gt=0"`
}

type AssignMechanicsRequest struct {
	AddMechanicsIDs []uint `json:"add_mechanics_ids" binding:"required"`
}

type RemoveMechanicsRequest struct {
	RemoveMechanicsIDs []uint `json:"remove_mechanics_ids" binding:"required"`
}

type AddInventoryRequest struct {
	Items []InventoryLine `json:"add_inventory_items" binding:"required,min=1,dive"`
}

type CustomerSignup struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=360"`
	Phone    string `json:"phone" binding:"required,max=20"`
	Password string `json:"password" binding:"required"`
}

type CustomerUpdate struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=360"`
	Phone    *string `json:"phone" binding:"omitempty,min=1,max=20"`
	Password *string `json:"password" binding:"omitempty,min=1"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type MechanicCreate struct {
	Name   string   `json:"name" binding:"required,max=255"`
	Email  string   `json:"email" binding:"required,email,max=360"`
	Phone  string   `json:"phone" binding:"required,max=20"`
	Salary *float64 `json:"salary" binding:"required,gte=0"`
}

type MechanicUpdate struct {
	Name   *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Email  *string  `json:"email" binding:"omitempty,email,max=360"`
	Phone  *string  `json:"phone" binding:"omitempty,min=1,max=20"`
	Salary *float64 `json:"salary" binding:"omitempty,gte=0"`
}

type InventoryCreate struct {
	Name  string   `json:"name" binding:"required,max=255"`
	Price *float64 `json:"price" binding:"required,gte=0"`
}

type InventoryUpdate struct {
	Name  *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Price *float64 `json:"price" binding:"omitempty,gte=0"`
}

func parseDate(field, raw string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		verr := apperrors.NewValidationError()
		verr.Add(field, "must be a date in YYYY-MM-DD format")
		return datatypes.Date{}, verr
	}
	return datatypes.Date(t), nil
}

// validate runs the binding rules on req.
func validate(req interface{}) error {
	return validation.Struct(req)
}

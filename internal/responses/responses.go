// Package responses maps models to the JSON shapes the API returns. No
// response type carries a password field.
package responses

import (
	"time"

	"mechanic_shop/internal/models"
	"mechanic_shop/internal/services"
)

type MechanicRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type InventoryResponse struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type InventoryLineResponse struct {
	Inventory InventoryResponse `json:"inventory"`
	Quantity  int               `json:"quantity"`
}

// TicketResponse is the full ticket aggregate.
type TicketResponse struct {
	ID               uint                    `json:"id"`
	VIN              string                  `json:"vin"`
	ServiceDate      string                  `json:"service_date"`
	ServiceDesc      string                  `json:"service_desc"`
	CustomerID       uint                    `json:"customer_id"`
	MechanicIDs      []uint                  `json:"mechanic_ids"`
	Mechanics        []MechanicRef           `json:"mechanics"`
	ServiceInventory []InventoryLineResponse `json:"service_inventory"`
}

// TicketSummary is the list form: scalar fields and member ids only.
type TicketSummary struct {
	ID          uint   `json:"id"`
	VIN         string `json:"vin"`
	ServiceDate string `json:"service_date"`
	ServiceDesc string `json:"service_desc"`
	CustomerID  uint   `json:"customer_id"`
	MechanicIDs []uint `json:"mechanic_ids"`
}

type CustomerResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type MechanicResponse struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  string  `json:"phone"`
	Salary float64 `json:"salary"`
}

type RankedMechanicResponse struct {
	MechanicResponse
	TicketCount int `json:"ticket_count"`
}

func formatDate(t models.ServiceTicket) string {
	return time.Time(t.ServiceDate).Format(services.DateLayout)
}

func Inventory(i models.Inventory) InventoryResponse {
	return InventoryResponse{ID: i.ID, Name: i.Name, Price: i.Price}
}

func InventoryList(items []models.Inventory) []InventoryResponse {
	out := make([]InventoryResponse, 0, len(items))
	for _, i := range items {
		out = append(out, Inventory(i))
	}
	return out
}

func Ticket(t models.ServiceTicket) TicketResponse {
	resp := TicketResponse{
		ID:               t.ID,
		VIN:              t.VIN,
		ServiceDate:      formatDate(t),
		ServiceDesc:      t.ServiceDesc,
		CustomerID:       t.CustomerID,
		MechanicIDs:      t.MechanicIDs(),
		Mechanics:        make([]MechanicRef, 0, len(t.Mechanics)),
		ServiceInventory: make([]InventoryLineResponse, 0, len(t.ServiceInventory)),
	}
	for _, m := range t.Mechanics {
		resp.Mechanics = append(resp.Mechanics, MechanicRef{ID: m.ID, Name: m.Name})
	}
	for _, line := range t.ServiceInventory {
		resp.ServiceInventory = append(resp.ServiceInventory, InventoryLineResponse{
			Inventory: Inventory(line.Inventory),
			Quantity:  line.Quantity,
		})
	}
	return resp
}

func Summary(t models.ServiceTicket) TicketSummary {
	return TicketSummary{
		ID:          t.ID,
		VIN:         t.VIN,
		ServiceDate: formatDate(t),
		ServiceDesc: t.ServiceDesc,
		CustomerID:  t.CustomerID,
		MechanicIDs: t.MechanicIDs(),
	}
}

func Summaries(tickets []models.ServiceTicket) []TicketSummary {
	out := make([]TicketSummary, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, Summary(t))
	}
	return out
}

func Customer(c models.Customer) CustomerResponse {
	return CustomerResponse{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func Customers(customers []models.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, Customer(c))
	}
	return out
}

func Mechanic(m models.Mechanic) MechanicResponse {
	return MechanicResponse{ID: m.ID, Name: m.Name, Email: m.Email, Phone: m.Phone, Salary: m.Salary}
}

func Mechanics(mechanics []models.Mechanic) []MechanicResponse {
	out := make([]MechanicResponse, 0, len(mechanics))
	for _, m := range mechanics {
		out = append(out, Mechanic(m))
	}
	return out
}

func Ranked(ranked []services.RankedMechanic) []RankedMechanicResponse {
	out := make([]RankedMechanicResponse, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, RankedMechanicResponse{
			MechanicResponse: Mechanic(r.Mechanic),
			TicketCount:      r.TicketCount,
		})
	}
	return out
}

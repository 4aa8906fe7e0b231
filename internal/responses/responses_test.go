package responses

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"mechanic_shop/internal/models"
	"mechanic_shop/internal/services"
)

func TestCustomerNeverCarriesPassword(t *testing.T) {
	c := models.Customer{ID: 1, Name: "Ann", Email: "ann@example.com", Phone: "555", Password: "$2a$10$hash"}

	for _, v := range []interface{}{Customer(c), Customers([]models.Customer{c}), c} {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "password")
		assert.NotContains(t, string(raw), "$2a$10$hash")
	}
}

func TestTicketShape(t *testing.T) {
	ticket := models.ServiceTicket{
		ID:          3,
		VIN:         "1HGCM82633A004352",
		ServiceDate: datatypes.Date(time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)),
		ServiceDesc: "Brake job",
		CustomerID:  1,
		Mechanics:   []models.Mechanic{{ID: 1, Name: "Ann", Salary: 100}, {ID: 2, Name: "Bob"}},
		ServiceInventory: []models.ServiceInventory{
			{ID: 1, Quantity: 2, Inventory: models.Inventory{ID: 5, Name: "Oil", Price: 9.5}},
		},
	}

	raw, err := json.Marshal(Ticket(ticket))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 3,
		"vin": "1HGCM82633A004352",
		"service_date": "2025-04-10",
		"service_desc": "Brake job",
		"customer_id": 1,
		"mechanic_ids": [1, 2],
		"mechanics": [{"id": 1, "name": "Ann"}, {"id": 2, "name": "Bob"}],
		"service_inventory": [{"inventory": {"id": 5, "name": "Oil", "price": 9.5}, "quantity": 2}]
	}`, string(raw))

	raw, err = json.Marshal(Summary(ticket))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 3,
		"vin": "1HGCM82633A004352",
		"service_date": "2025-04-10",
		"service_desc": "Brake job",
		"customer_id": 1,
		"mechanic_ids": [1, 2]
	}`, string(raw))
}

func TestEmptyCollectionsRenderAsArrays(t *testing.T) {
	raw, err := json.Marshal(Ticket(models.ServiceTicket{ID: 1}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"mechanic_ids":[]`)
	assert.Contains(t, string(raw), `"mechanics":[]`)
	assert.Contains(t, string(raw), `"service_inventory":[]`)
}

func TestRankedFlattensMechanic(t *testing.T) {
	raw, err := json.Marshal(Ranked([]services.RankedMechanic{
		{Mechanic: models.Mechanic{ID: 4, Name: "Bea", Email: "bea@shop.test", Phone: "1", Salary: 10}, TicketCount: 2},
	}))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":4,"name":"Bea","email":"bea@shop.test","phone":"1","salary":10,"ticket_count":2}]`, string(raw))
}

package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mechanic_shop/internal/apperrors"
)

type line struct {
	InventoryID uint `json:"inventory_id" binding:"required"`
	Quantity    int  `json:"quantity" binding:"required,gt=0"`
}

type order struct {
	VIN   string `json:"vin" binding:"required,max=17"`
	Date  string `json:"service_date" binding:"required,datetime=2006-01-02"`
	Lines []line `json:"inventory" binding:"omitempty,dive"`
}

func fields(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestStructCollectsEveryField(t *testing.T) {
	err := Struct(order{
		VIN:   "012345678901234567890",
		Date:  "2025-13-01",
		Lines: []line{{InventoryID: 1, Quantity: 1}, {Quantity: -1}},
	})

	got := fields(t, err)
	assert.Contains(t, got, "vin")
	assert.Contains(t, got, "service_date")
	assert.Contains(t, got, "inventory[1].inventory_id")
	assert.Contains(t, got, "inventory[1].quantity")
	assert.NotContains(t, got, "inventory[0].quantity")
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(order{VIN: "V", Date: "2025-01-02"}))
}

func TestMessagesUseJSONNames(t *testing.T) {
	got := fields(t, Struct(order{Date: "2025-01-02"}))
	require.Len(t, got["vin"], 1)
	assert.Equal(t, "vin is a required field", got["vin"][0])
}

func TestTranslateDecodeErrors(t *testing.T) {
	var o order
	typeErr := json.Unmarshal([]byte(`{"vin": 12}`), &o)
	got := fields(t, Translate(typeErr))
	assert.Equal(t, []string{"must be of type string"}, got["vin"])

	syntaxErr := json.Unmarshal([]byte(`{"vin":`), &o)
	got = fields(t, Translate(syntaxErr))
	assert.Contains(t, got, "body")
}

func TestTranslatePassesValidationErrorThrough(t *testing.T) {
	in := apperrors.NewValidationError()
	in.Add("service_date", "bad")
	assert.Same(t, in, Translate(in))
}

package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mechanic_shop/internal/controllers"
	"mechanic_shop/internal/events"
	"mechanic_shop/internal/middleware"
	"mechanic_shop/internal/models"
	"mechanic_shop/internal/reports"
	"mechanic_shop/internal/routes"
	"mechanic_shop/internal/services"
	"mechanic_shop/internal/store"
	"mechanic_shop/internal/testutil"
	"mechanic_shop/internal/validation"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *middleware.JWTAuth
	hub    *events.Hub
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Setup()

	db := testutil.NewDB(t)
	st := store.New(db)
	auth := middleware.NewJWTAuth("test-secret", time.Hour)
	hub := events.NewHub(16)
	t.Cleanup(hub.Close)

	h := controllers.NewHandler(services.NewShop(st, auth), auth, hub, st)
	return &testServer{router: routes.SetupRouter(h, auth), db: db, auth: auth, hub: hub}
}

func (s *testServer) do(t *testing.T, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestCreateTicketWorkedExample(t *testing.T) {
	s := newServer(t)
	require.NoError(t, s.db.Create(&models.Customer{ID: 1, Name: "Ann", Email: "ann@example.com", Phone: "1", Password: "x"}).Error)
	require.NoError(t, s.db.Create(&models.Mechanic{ID: 5, Name: "Bob", Email: "bob@shop.test", Phone: "2", Salary: 1}).Error)
	require.NoError(t, s.db.Create(&models.Inventory{ID: 2, Name: "Oil Filter", Price: 12.5}).Error)

	w := s.do(t, http.MethodPost, "/service_tickets", `{
		"vin": "1HGCM82633A123456",
		"service_date": "2024-01-01",
		"service_desc": "Oil change",
		"customer_id": 1,
		"mechanic_ids": [5],
		"inventory": [{"inventory_id": 2, "quantity": 1}]
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	ticket := decode(t, w)["service_ticket"].(map[string]interface{})
	assert.Equal(t, "1HGCM82633A123456", ticket["vin"])
	assert.Equal(t, "2024-01-01", ticket["service_date"])
	assert.Equal(t, []interface{}{float64(5)}, ticket["mechanic_ids"])

	mechanics := ticket["mechanics"].([]interface{})
	require.Len(t, mechanics, 1)
	assert.Equal(t, float64(5), mechanics[0].(map[string]interface{})["id"])

	lines := ticket["service_inventory"].([]interface{})
	require.Len(t, lines, 1)
	line := lines[0].(map[string]interface{})
	assert.Equal(t, float64(1), line["quantity"])
	assert.Equal(t, float64(2), line["inventory"].(map[string]interface{})["id"])
}

func TestCreateTicketErrors(t *testing.T) {
	s := newServer(t)
	testutil.SeedCustomer(t, s.db, "ann@example.com")

	t.Run("validation collects every field", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/service_tickets", `{"service_date": "yesterday"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		errs := decode(t, w)["errors"].(map[string]interface{})
		for _, f := range []string{"vin", "service_date", "service_desc", "customer_id"} {
			assert.Contains(t, errs, f)
		}
	})

	t.Run("type errors do not hide other fields", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/service_tickets", `{"vin": 17, "customer_id": "abc"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		errs := decode(t, w)["errors"].(map[string]interface{})
		for _, f := range []string{"vin", "customer_id", "service_date", "service_desc"} {
			assert.Contains(t, errs, f)
		}
		assert.Equal(t, []interface{}{"must be of type string"}, errs["vin"])
		assert.Equal(t, []interface{}{"must be of type uint"}, errs["customer_id"])
	})

	t.Run("unknown inventory", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/service_tickets", `{
			"vin": "V", "service_date": "2024-01-01", "service_desc": "d", "customer_id": 1,
			"inventory": [{"inventory_id": 99, "quantity": 1}]
		}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "inventory_id", body["field"])
		assert.Equal(t, float64(99), body["id"])
		assert.EqualValues(t, 0, testutil.Count(t, s.db, &models.ServiceTicket{}))
	})
}

func TestTicketEndpoints(t *testing.T) {
	s := newServer(t)
	c := testutil.SeedCustomer(t, s.db, "ann@example.com")
	m1 := testutil.SeedMechanic(t, s.db, "Ann Wrench")
	m2 := testutil.SeedMechanic(t, s.db, "Bob Socket")
	oil := testutil.SeedInventory(t, s.db, "Oil", 10)

	body, _ := json.Marshal(map[string]interface{}{
		"vin": "V1", "service_date": "2024-03-04", "service_desc": "Tune", "customer_id": c.ID,
	})
	w := s.do(t, http.MethodPost, "/service_tickets", string(body))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := int(decode(t, w)["service_ticket"].(map[string]interface{})["id"].(float64))
	base := "/service_tickets/" + strconv.Itoa(id)

	w = s.do(t, http.MethodPut, base+"/assign_mechanics", `{"add_mechanics_ids": [`+strconv.Itoa(int(m1.ID))+`,`+strconv.Itoa(int(m2.ID))+`, 404]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode(t, w)["mechanic_ids"], 2)

	w = s.do(t, http.MethodPut, base+"/remove_mechanics", `{"remove_mechanics_ids": [`+strconv.Itoa(int(m1.ID))+`]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{float64(m2.ID)}, decode(t, w)["mechanic_ids"])

	w = s.do(t, http.MethodPut, base+"/add_inventory", `{"add_inventory_items": [{"inventory_id": `+strconv.Itoa(int(oil.ID))+`, "quantity": 3}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode(t, w)["service_inventory"], 1)

	w = s.do(t, http.MethodGet, "/service_tickets", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.NotContains(t, list[0], "mechanics")
	assert.Equal(t, []interface{}{float64(m2.ID)}, list[0]["mechanic_ids"])

	w = s.do(t, http.MethodGet, "/service_tickets/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, reports.XLSXContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

	w = s.do(t, http.MethodPut, base, `{"service_desc": "Tune and wash"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tune and wash", decode(t, w)["service_desc"])

	w = s.do(t, http.MethodDelete, base, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/service_tickets/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerFlow(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/customers", `{"name":"Ann","email":"ann@example.com","phone":"555","password":"pw"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")

	w = s.do(t, http.MethodPost, "/customers", `{"name":"Ann","email":"ann@example.com","phone":"555","password":"pw"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/customers/login", `{"email":"ann@example.com","password":"bad"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password.", decode(t, w)["message"])

	w = s.do(t, http.MethodPost, "/customers/login", `{"email":"ann@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code)
	login := decode(t, w)
	assert.Equal(t, "success", login["status"])
	token := login["token"].(string)

	w = s.do(t, http.MethodGet, "/customers/my-tickets", "", "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(t, http.MethodDelete, "/customers", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodDelete, "/customers", "", "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w)["message"], "successfully deleted")
}

func TestTopMechanicsEndpoint(t *testing.T) {
	s := newServer(t)
	c := testutil.SeedCustomer(t, s.db, "ann@example.com")
	idle := testutil.SeedMechanic(t, s.db, "Idle Ian")
	busy := testutil.SeedMechanic(t, s.db, "Busy Bea")
	require.NoError(t, s.db.Create(&models.ServiceTicket{VIN: "V", ServiceDesc: "d", CustomerID: c.ID}).Error)
	require.NoError(t, s.db.Create(&models.ServiceMechanic{TicketID: 1, MechanicID: busy.ID}).Error)

	for _, path := range []string{"/mechanics/top", "/mechanics/top_mechanics"} {
		t.Run(path, func(t *testing.T) {
			w := s.do(t, http.MethodGet, path, "")
			require.Equal(t, http.StatusOK, w.Code)
			var ranked []map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ranked))
			require.Len(t, ranked, 2)
			assert.Equal(t, float64(busy.ID), ranked[0]["id"])
			assert.Equal(t, float64(1), ranked[0]["ticket_count"])
			assert.Equal(t, float64(idle.ID), ranked[1]["id"])
		})
	}
}

func TestInventoryEndpoints(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/inventory", `{"name":"Wiper","price":7.5}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := strconv.Itoa(int(decode(t, w)["id"].(float64)))

	w = s.do(t, http.MethodPost, "/inventory", `{"name":"Wiper","price":1}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/inventory", `{"name":"Bad","price":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/inventory/"+id, `{"price":8}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(8), decode(t, w)["price"])

	w = s.do(t, http.MethodDelete, "/inventory/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/inventory/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	w := s.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTicketFeedRequiresToken(t *testing.T) {
	s := newServer(t)
	w := s.do(t, http.MethodGet, "/ws/service_tickets", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(t, http.MethodGet, "/ws/service_tickets?token=bogus", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/shopfront/internal/database"
	"github.com/matthieukhl/shopfront/internal/database/dbtest"
	"github.com/matthieukhl/shopfront/internal/models"
	"github.com/matthieukhl/shopfront/internal/service"
	"github.com/matthieukhl/shopfront/internal/validators"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func maxID(t *testing.T, db *database.DB, table string) int64 {
	t.Helper()
	var id int64
	require.NoError(t, db.QueryRow("SELECT MAX(id) FROM "+table).Scan(&id))
	return id
}

func TestShopOverHTTP(t *testing.T) {
	db := dbtest.Open(t)
	shop := service.NewShop(db, service.Rules{ReferenceScope: validators.ScopeCatalog}, zerolog.Nop())
	h := NewServer(testConfig(), db, shop, zerolog.Nop()).Handler()

	w := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	acme := `{"name":"Acme","address":"1 Main St","city":"Metropolis","country":"US"}`
	w = do(t, h, http.MethodPost, "/customers", acme)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Customer created", w.Body.String())

	w = do(t, h, http.MethodPost, "/customers", acme)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrDuplicateCustomer.Msg, errorBody(t, w))

	var customers []models.Customer
	w = do(t, h, http.MethodGet, "/customers", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customers))
	require.Len(t, customers, 1)
	customerID := customers[0].ID

	w = do(t, h, http.MethodPost, "/products", `{"product_name":"Widget"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, h, http.MethodPost, "/products", `{"product_name":"Widget"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	productID := maxID(t, db, "products")
	supplierID := dbtest.Supplier(t, db, "Arobaz")

	w = do(t, h, http.MethodPost, "/availability", `{"prod_id":`+itoa(productID)+`,"supp_id":`+itoa(supplierID)+`,"unit_price":-4}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrInvalidUnitPrice.Msg, errorBody(t, w))

	w = do(t, h, http.MethodPost, "/availability", `{"prod_id":`+itoa(productID)+`,"supp_id":`+itoa(supplierID)+`,"unit_price":9223372036854775808}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrInvalidUnitPrice.Msg, errorBody(t, w))

	w = do(t, h, http.MethodPost, "/availability", `{"prod_id":"`+itoa(productID)+`","supp_id":`+itoa(supplierID)+`,"unit_price":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrInvalidUnitPrice.Msg, errorBody(t, w))

	w = do(t, h, http.MethodPost, "/availability", `{"prod_id":1.5,"supp_id":`+itoa(supplierID)+`,"unit_price":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrMissingReference.Msg, errorBody(t, w))

	w = do(t, h, http.MethodPost, "/availability", `{"prod_id":`+itoa(productID)+`,"supp_id":`+itoa(supplierID)+`,"unit_price":15}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, h, http.MethodPost, "/customers/"+itoa(customerID)+"/orders", `{"order_date":"2024-03-01","order_reference":"ORD001"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, h, http.MethodPost, "/customers/4242/orders", `{"order_date":"2024-03-01","order_reference":"ORD002"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrCustomerNotFound.Msg, errorBody(t, w))

	orderID := maxID(t, db, "orders")
	dbtest.OrderItem(t, db, orderID, productID, supplierID, 3)

	var lines []map[string]any
	w = do(t, h, http.MethodGet, "/customers/"+itoa(customerID)+"/orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lines))
	require.Len(t, lines, 1)
	assert.Equal(t, "ORD001", lines[0]["order_reference"])
	assert.EqualValues(t, 15, lines[0]["unit_price"])
	assert.EqualValues(t, 3, lines[0]["quantity"])

	w = do(t, h, http.MethodDelete, "/customers/"+itoa(customerID), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrCustomerHasOrders.Msg, errorBody(t, w))

	w = do(t, h, http.MethodDelete, "/orders/"+itoa(orderID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, dbtest.Count(t, db, "order_items", "order_id = ?", orderID))

	w = do(t, h, http.MethodPut, "/customers/"+itoa(customerID), `{"name":"Acme Corp","address":"2 Side St","city":"Gotham","country":"US"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, dbtest.Count(t, db, "customers", "name = ? AND city = ?", "Acme Corp", "Gotham"))

	w = do(t, h, http.MethodDelete, "/customers/"+itoa(customerID), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/customers/"+itoa(customerID), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestDataAccessFailureOverHTTP(t *testing.T) {
	db := dbtest.Open(t)
	shop := service.NewShop(db, service.Rules{ReferenceScope: validators.ScopeCatalog}, zerolog.Nop())
	h := NewServer(testConfig(), db, shop, zerolog.Nop()).Handler()

	require.NoError(t, db.Close())

	w := do(t, h, http.MethodGet, "/customers", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, internalErrorMessage, errorBody(t, w))

	w = do(t, h, http.MethodPost, "/customers", `{"name":"Acme"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

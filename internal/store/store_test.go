package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/shopfront/internal/database/dbtest"
	"github.com/matthieukhl/shopfront/internal/models"
	"github.com/matthieukhl/shopfront/internal/store"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCustomers(t *testing.T) {
	db := dbtest.Open(t)
	s := store.New(db)
	ctx := context.Background()

	customers, err := s.ListCustomers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)

	id, err := s.InsertCustomer(ctx, models.Customer{Name: "Acme", Address: "1 Main St", City: "Metropolis", Country: "US"})
	require.NoError(t, err)

	// NULL columns come back as empty strings
	dbtest.Exec(t, db, "INSERT INTO customers (name) VALUES (?)", "Bare")

	customers, err = s.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, models.Customer{ID: id, Name: "Acme", Address: "1 Main St", City: "Metropolis", Country: "US"}, customers[0])
	assert.Equal(t, "Bare", customers[1].Name)
	assert.Empty(t, customers[1].City)

	require.NoError(t, s.UpdateCustomer(ctx, models.Customer{ID: id, Name: "Acme Corp", Address: "2 Side St", City: "Gotham", Country: "CA"}))
	byID, err := s.CustomersByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "Acme Corp", byID[0].Name)
	assert.Equal(t, "Gotham", byID[0].City)

	require.NoError(t, s.DeleteCustomer(ctx, id))
	byID, err = s.CustomersByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, byID)

	assert.NoError(t, s.DeleteCustomer(ctx, 9999))
}

func TestListSuppliers(t *testing.T) {
	db := dbtest.Open(t)
	s := store.New(db)

	first, err := s.InsertSupplier(context.Background(), models.Supplier{SupplierName: "Arobaz", Country: "UK"})
	require.NoError(t, err)
	dbtest.Supplier(t, db, "Taylor")

	suppliers, err := s.ListSuppliers(context.Background())
	require.NoError(t, err)
	require.Len(t, suppliers, 2)
	assert.Equal(t, models.Supplier{ID: first, SupplierName: "Arobaz", Country: "UK"}, suppliers[0])
}

func TestSearchProducts(t *testing.T) {
	db := dbtest.Open(t)
	s := store.New(db)
	ctx := context.Background()

	widget := dbtest.Product(t, db, "Widget")
	gadget := dbtest.Product(t, db, "Gadget")
	dbtest.Product(t, db, "Unlisted")
	arobaz := dbtest.Supplier(t, db, "Arobaz")
	taylor := dbtest.Supplier(t, db, "Taylor")
	dbtest.Availability(t, db, widget, arobaz, 10)
	dbtest.Availability(t, db, widget, taylor, 12)
	dbtest.Availability(t, db, gadget, taylor, 30)

	all, err := s.SearchProducts(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []models.ProductListing{
		{ProductName: "Gadget", SupplierName: "Taylor", UnitPrice: 30},
		{ProductName: "Widget", SupplierName: "Arobaz", UnitPrice: 10},
		{ProductName: "Widget", SupplierName: "Taylor", UnitPrice: 12},
	}, all)

	widgets, err := s.SearchProducts(ctx, "Widget")
	require.NoError(t, err)
	require.Len(t, widgets, 2)
	for _, l := range widgets {
		assert.Equal(t, "Widget", l.ProductName)
	}

	// the filter is a bound parameter, not part of the SQL text
	injected, err := s.SearchProducts(ctx, "x' OR '1'='1")
	require.NoError(t, err)
	assert.Empty(t, injected)

	partial, err := s.SearchProducts(ctx, "Widg")
	require.NoError(t, err)
	assert.Empty(t, partial)
}

func TestInsertProductAndAvailability(t *testing.T) {
	db := dbtest.Open(t)
	s := store.New(db)
	ctx := context.Background()

	productID, err := s.InsertProduct(ctx, models.Product{ProductName: "Lamp"})
	require.NoError(t, err)
	supplierID := dbtest.Supplier(t, db, "Arobaz")

	require.NoError(t, s.InsertAvailability(ctx, models.Availability{ProductID: productID, SupplierID: supplierID, UnitPrice: 25}))
	assert.Equal(t, 1, dbtest.Count(t, db, "product_availability", "prod_id = ? AND supp_id = ? AND unit_price = ?", productID, supplierID, 25))

	// (prod_id, supp_id) is the primary key
	err = s.InsertAvailability(ctx, models.Availability{ProductID: productID, SupplierID: supplierID, UnitPrice: 30})
	assert.ErrorContains(t, err, "failed to insert availability")
}

func TestOrders(t *testing.T) {
	db := dbtest.Open(t)
	s := store.New(db)
	ctx := context.Background()

	customerID := dbtest.Customer(t, db, "Acme")
	orderID, err := s.InsertOrder(ctx, models.Order{OrderDate: day(2024, 3, 1), OrderReference: "ORD001", CustomerID: customerID})
	require.NoError(t, err)

	orders, err := s.OrdersByID(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD001", orders[0].OrderReference)
	assert.Equal(t, customerID, orders[0].CustomerID)
	assert.Equal(t, "2024-03-01", orders[0].OrderDate.Format(models.DateLayout))

	productID, err := s.InsertProduct(ctx, models.Product{ProductName: "Widget"})
	require.NoError(t, err)
	supplierID, err := s.InsertSupplier(ctx, models.Supplier{SupplierName: "Arobaz", Country: "UK"})
	require.NoError(t, err)
	require.NoError(t, s.InsertAvailability(ctx, models.Availability{ProductID: productID, SupplierID: supplierID, UnitPrice: 10}))

	first, err := s.InsertOrderItem(ctx, models.OrderItem{OrderID: orderID, ProductID: productID, SupplierID: supplierID, Quantity: 2})
	require.NoError(t, err)
	_, err = s.InsertOrderItem(ctx, models.OrderItem{OrderID: orderID, ProductID: productID, SupplierID: supplierID, Quantity: 5})
	require.NoError(t, err)

	items, err := s.OrderItems(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.OrderItem{ID: first, OrderID: orderID, ProductID: productID, SupplierID: supplierID, Quantity: 2}, items[0])
	assert.Equal(t, 5, items[1].Quantity)

	require.NoError(t, s.DeleteOrderItems(ctx, orderID))
	items, err = s.OrderItems(ctx, orderID)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, s.DeleteOrder(ctx, orderID))
	orders, err = s.OrdersByID(ctx, orderID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCustomerOrderLines(t *testing.T) {
	db := dbtest.Open(t)
	s := store.New(db)
	ctx := context.Background()

	acme := dbtest.Customer(t, db, "Acme")
	other := dbtest.Customer(t, db, "Other")
	widget := dbtest.Product(t, db, "Widget")
	gadget := dbtest.Product(t, db, "Gadget")
	arobaz := dbtest.Supplier(t, db, "Arobaz")
	taylor := dbtest.Supplier(t, db, "Taylor")
	dbtest.Availability(t, db, widget, arobaz, 10)
	dbtest.Availability(t, db, gadget, arobaz, 40)
	dbtest.Availability(t, db, gadget, taylor, 30)

	later := dbtest.Order(t, db, acme, "ORD009", day(2024, 5, 2))
	earlier := dbtest.Order(t, db, acme, "ORD002", day(2024, 6, 9))
	foreign := dbtest.Order(t, db, other, "ORD001", day(2024, 1, 1))
	dbtest.OrderItem(t, db, later, widget, arobaz, 1)
	dbtest.OrderItem(t, db, earlier, gadget, taylor, 4)
	dbtest.OrderItem(t, db, foreign, widget, arobaz, 7)

	lines, err := s.CustomerOrderLines(ctx, acme)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "ORD002", lines[0].OrderReference)
	assert.Equal(t, acme, lines[0].CustomerID)
	assert.Equal(t, "Gadget", lines[0].ProductName)
	assert.Equal(t, "Taylor", lines[0].SupplierName)
	// the price of the supplier that fulfilled the item, not any supplier
	assert.EqualValues(t, 30, lines[0].UnitPrice)
	assert.Equal(t, 4, lines[0].Quantity)
	assert.Equal(t, "2024-06-09", lines[0].OrderDate.Format(models.DateLayout))

	assert.Equal(t, "ORD009", lines[1].OrderReference)
	assert.Equal(t, "Widget", lines[1].ProductName)

	none, err := s.CustomerOrderLines(ctx, 4242)
	require.NoError(t, err)
	assert.Empty(t, none)
}

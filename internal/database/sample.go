package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/matthieukhl/shopfront/internal/models"
	"github.com/matthieukhl/shopfront/internal/store"
)

// SampleCounts is how many rows SeedSample inserts into each table.
var SampleCounts = map[string]int{
	"customers":            len(sampleCustomers),
	"suppliers":            len(sampleSuppliers),
	"products":             len(sampleProducts),
	"product_availability": len(sampleAvailability),
	"orders":               len(sampleOrders),
	"order_items":          len(sampleOrderItems),
}

var sampleCustomers = []struct {
	name, address, city, country string
}{
	{"Guy Crawford", "770-2839 Ligula Road", "Paris", "France"},
	{"Hope Crosby", "P.O. Box 276, 4976 Sit Rd.", "Steyr", "United Kingdom"},
	{"Britney Cobb", "P.O. Box 256, 4735 Porttitor Street", "Lima", "Peru"},
	{"Amber Tran", "6967 Ac Road", "Villafranca Asti", "United States"},
	{"Edan Higgins", "Ap #840-3255 Tincidunt St.", "Arles", "Netherlands"},
	{"Quintessa Austin", "597-2737 Nunc Rd.", "Saint-Marc", "United Kingdom"},
}

var sampleSuppliers = []struct {
	name, country string
}{
	{"Amazon", "United States"},
	{"Taobao", "China"},
	{"Argos", "United Kingdom"},
	{"Sainsburys", "United Kingdom"},
	{"Sports Direct", "United Kingdom"},
}

var sampleProducts = []string{
	"Tee Shirt Olympic Games",
	"Mobile Phone X",
	"Javascript Book",
	"Le Petit Prince",
	"Super warm socks",
	"Coffee Cup",
	"Ball",
	"Tennis racket",
}

// Positions are 1-based indexes into the slices above.
var sampleAvailability = []struct {
	product, supplier int
	price             int64
}{
	{1, 4, 18}, {1, 2, 21}, {1, 3, 20},
	{2, 1, 299}, {2, 2, 249},
	{3, 1, 40}, {3, 2, 39}, {3, 4, 41},
	{4, 1, 10}, {4, 4, 10},
	{5, 3, 5}, {5, 2, 4}, {5, 4, 8},
	{6, 2, 5}, {6, 3, 4},
	{7, 5, 14}, {7, 1, 15},
	{8, 5, 20}, {8, 2, 13},
}

var sampleOrders = []struct {
	date      string
	reference string
	customer  int
}{
	{"2019-06-01", "ORD001", 1},
	{"2019-07-15", "ORD002", 1},
	{"2019-07-11", "ORD003", 1},
	{"2019-05-24", "ORD004", 2},
	{"2019-05-30", "ORD005", 3},
	{"2019-07-05", "ORD006", 4},
	{"2019-04-05", "ORD007", 4},
	{"2019-07-23", "ORD008", 5},
	{"2019-07-24", "ORD009", 5},
	{"2019-05-10", "ORD010", 5},
}

var sampleOrderItems = []struct {
	order, product, supplier, quantity int
}{
	{1, 3, 1, 1}, {1, 6, 3, 5},
	{2, 2, 2, 2}, {2, 8, 5, 1},
	{3, 5, 4, 10}, {3, 4, 4, 1},
	{4, 4, 1, 1}, {4, 7, 5, 1},
	{5, 1, 3, 3}, {5, 5, 2, 1},
	{6, 5, 2, 5}, {6, 2, 1, 1}, {6, 7, 1, 1},
	{7, 6, 2, 2}, {7, 8, 2, 1}, {7, 3, 4, 3},
	{8, 4, 1, 1}, {8, 1, 3, 2},
	{9, 6, 3, 3}, {9, 3, 1, 1},
	{10, 7, 5, 1}, {10, 5, 3, 2},
}

// SeedSample inserts a small catalog with customers and their orders. All rows
// go in through one transaction.
func (db *DB) SeedSample(ctx context.Context) error {
	return db.WithTx(ctx, func(tx *sql.Tx) error {
		st := store.New(tx)

		customerIDs := make([]int64, 0, len(sampleCustomers))
		for _, c := range sampleCustomers {
			id, err := st.InsertCustomer(ctx, models.Customer{Name: c.name, Address: c.address, City: c.city, Country: c.country})
			if err != nil {
				return err
			}
			customerIDs = append(customerIDs, id)
		}

		supplierIDs := make([]int64, 0, len(sampleSuppliers))
		for _, s := range sampleSuppliers {
			id, err := st.InsertSupplier(ctx, models.Supplier{SupplierName: s.name, Country: s.country})
			if err != nil {
				return err
			}
			supplierIDs = append(supplierIDs, id)
		}

		productIDs := make([]int64, 0, len(sampleProducts))
		for _, name := range sampleProducts {
			id, err := st.InsertProduct(ctx, models.Product{ProductName: name})
			if err != nil {
				return err
			}
			productIDs = append(productIDs, id)
		}

		for _, a := range sampleAvailability {
			err := st.InsertAvailability(ctx, models.Availability{
				ProductID:  productIDs[a.product-1],
				SupplierID: supplierIDs[a.supplier-1],
				UnitPrice:  a.price,
			})
			if err != nil {
				return err
			}
		}

		orderIDs := make([]int64, 0, len(sampleOrders))
		for _, o := range sampleOrders {
			date, err := time.Parse(models.DateLayout, o.date)
			if err != nil {
				return err
			}
			id, err := st.InsertOrder(ctx, models.Order{
				OrderDate:      date,
				OrderReference: o.reference,
				CustomerID:     customerIDs[o.customer-1],
			})
			if err != nil {
				return err
			}
			orderIDs = append(orderIDs, id)
		}

		for _, it := range sampleOrderItems {
			_, err := st.InsertOrderItem(ctx, models.OrderItem{
				OrderID:    orderIDs[it.order-1],
				ProductID:  productIDs[it.product-1],
				SupplierID: supplierIDs[it.supplier-1],
				Quantity:   it.quantity,
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
}

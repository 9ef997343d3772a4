// Package dbtest opens throwaway in-memory databases with the production schema.
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/shopfront/internal/config"
	"github.com/matthieukhl/shopfront/internal/database"
)

// Open returns an in-memory sqlite database with every table created. It is
// closed when the test ends.
func Open(t testing.TB) *database.DB {
	t.Helper()

	db, err := database.NewConnection(&config.DBConfig{
		Driver:    config.DriverSQLite,
		DSN:       ":memory:",
		Isolation: "default",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.SetupSchema(context.Background()))
	return db
}

// Exec runs a fixture statement and returns the last insert id.
func Exec(t testing.TB, db *database.DB, query string, args ...any) int64 {
	t.Helper()

	res, err := db.Exec(query, args...)
	require.NoError(t, err)

	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func Customer(t testing.TB, db *database.DB, name string) int64 {
	t.Helper()
	return Exec(t, db, "INSERT INTO customers (name, address, city, country) VALUES (?, ?, ?, ?)",
		name, "1 Main St", "Metropolis", "US")
}

func Supplier(t testing.TB, db *database.DB, name string) int64 {
	t.Helper()
	return Exec(t, db, "INSERT INTO suppliers (supplier_name, country) VALUES (?, ?)", name, "UK")
}

func Product(t testing.TB, db *database.DB, name string) int64 {
	t.Helper()
	return Exec(t, db, "INSERT INTO products (product_name) VALUES (?)", name)
}

func Availability(t testing.TB, db *database.DB, productID, supplierID int64, unitPrice int) {
	t.Helper()
	Exec(t, db, "INSERT INTO product_availability (prod_id, supp_id, unit_price) VALUES (?, ?, ?)",
		productID, supplierID, unitPrice)
}

func Order(t testing.TB, db *database.DB, customerID int64, reference string, date time.Time) int64 {
	t.Helper()
	return Exec(t, db, "INSERT INTO orders (order_date, order_reference, customer_id) VALUES (?, ?, ?)",
		date, reference, customerID)
}

func OrderItem(t testing.TB, db *database.DB, orderID, productID, supplierID int64, quantity int) int64 {
	t.Helper()
	return Exec(t, db, "INSERT INTO order_items (order_id, product_id, supplier_id, quantity) VALUES (?, ?, ?, ?)",
		orderID, productID, supplierID, quantity)
}

// Count returns the number of rows in table matching where.
func Count(t testing.TB, db *database.DB, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}

	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}

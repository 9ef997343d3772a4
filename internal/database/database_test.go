package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/shopfront/internal/config"
	"github.com/matthieukhl/shopfront/internal/database"
	"github.com/matthieukhl/shopfront/internal/database/dbtest"
)

func TestNewConnectionRejectsBadMySQLDSN(t *testing.T) {
	_, err := database.NewConnection(&config.DBConfig{Driver: config.DriverMySQL, DSN: "not a dsn"})
	assert.ErrorContains(t, err, "failed to parse mysql dsn")
}

func TestSetupSchemaIsIdempotent(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	require.NoError(t, db.SetupSchema(ctx))
	assert.Equal(t, config.DriverSQLite, db.Driver())
	assert.NoError(t, db.HealthCheck(ctx))

	counts, err := db.TableCounts(ctx)
	require.NoError(t, err)
	assert.Len(t, counts, len(database.Tables))
	for _, table := range database.Tables {
		assert.Zero(t, counts[table], table)
	}
}

func TestCleanupAndDrop(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	customerID := dbtest.Customer(t, db, "Acme")
	supplierID := dbtest.Supplier(t, db, "Supplies Ltd")
	productID := dbtest.Product(t, db, "Widget")
	dbtest.Availability(t, db, productID, supplierID, 12)
	orderID := dbtest.Order(t, db, customerID, "ORD001", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	dbtest.OrderItem(t, db, orderID, productID, supplierID, 3)

	counts, err := db.TableCounts(ctx)
	require.NoError(t, err)
	for _, table := range database.Tables {
		assert.EqualValues(t, 1, counts[table], table)
	}

	require.NoError(t, db.CleanupData(ctx))
	counts, err = db.TableCounts(ctx)
	require.NoError(t, err)
	for _, table := range database.Tables {
		assert.Zero(t, counts[table], table)
	}

	require.NoError(t, db.DropSchema(ctx))
	_, err = db.TableCounts(ctx)
	assert.Error(t, err)
}

func TestWithTx(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	t.Run("commits", func(t *testing.T) {
		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "INSERT INTO products (product_name) VALUES (?)", "Lamp")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 1, dbtest.Count(t, db, "products", "product_name = ?", "Lamp"))
	})

	t.Run("rolls back and returns the callback error", func(t *testing.T) {
		boom := errors.New("boom")
		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "INSERT INTO products (product_name) VALUES (?)", "Desk"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Zero(t, dbtest.Count(t, db, "products", "product_name = ?", "Desk"))
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = db.WithTx(ctx, func(tx *sql.Tx) error {
				_, _ = tx.ExecContext(ctx, "INSERT INTO products (product_name) VALUES (?)", "Chair")
				panic("boom")
			})
		})
		assert.Zero(t, dbtest.Count(t, db, "products", "product_name = ?", "Chair"))
	})
}

func TestSeedSample(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	require.NoError(t, db.SeedSample(ctx))

	counts, err := db.TableCounts(ctx)
	require.NoError(t, err)
	for table, want := range database.SampleCounts {
		assert.EqualValues(t, want, counts[table], table)
	}

	// every order item is offered by its supplier
	var orphans int
	require.NoError(t, db.QueryRow(`
		SELECT COUNT(*) FROM order_items o_i
		LEFT JOIN product_availability p_a
		  ON p_a.prod_id = o_i.product_id AND p_a.supp_id = o_i.supplier_id
		WHERE p_a.prod_id IS NULL`).Scan(&orphans))
	assert.Zero(t, orphans)

	// at least one customer can be deleted
	assert.Positive(t, dbtest.Count(t, db, "customers", "id NOT IN (SELECT customer_id FROM orders)"))
}

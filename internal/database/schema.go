package database

import (
	"context"
	"fmt"

	"github.com/matthieukhl/shopfront/internal/config"
)

// Tables in dependency order, parents first.
var Tables = []string{
	"customers",
	"suppliers",
	"products",
	"product_availability",
	"orders",
	"order_items",
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    name VARCHAR(50) NOT NULL,
	    address VARCHAR(120),
	    city VARCHAR(30),
	    country VARCHAR(20),
	    INDEX idx_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS suppliers (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    supplier_name VARCHAR(100) NOT NULL,
	    country VARCHAR(20) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS products (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    product_name VARCHAR(100) NOT NULL,
	    INDEX idx_product_name (product_name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS product_availability (
	    prod_id BIGINT NOT NULL,
	    supp_id BIGINT NOT NULL,
	    unit_price INT NOT NULL,
	    PRIMARY KEY (prod_id, supp_id),
	    FOREIGN KEY (prod_id) REFERENCES products(id),
	    FOREIGN KEY (supp_id) REFERENCES suppliers(id),
	    INDEX idx_supp_id (supp_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS orders (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    order_date DATE NOT NULL,
	    order_reference VARCHAR(10) NOT NULL,
	    customer_id BIGINT NOT NULL,
	    FOREIGN KEY (customer_id) REFERENCES customers(id),
	    INDEX idx_customer_id (customer_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS order_items (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    order_id BIGINT NOT NULL,
	    product_id BIGINT NOT NULL,
	    supplier_id BIGINT NOT NULL,
	    quantity INT NOT NULL,
	    FOREIGN KEY (order_id) REFERENCES orders(id),
	    FOREIGN KEY (product_id, supplier_id) REFERENCES product_availability(prod_id, supp_id),
	    INDEX idx_order_id (order_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
	    id INTEGER PRIMARY KEY AUTOINCREMENT,
	    name VARCHAR(50) NOT NULL,
	    address VARCHAR(120),
	    city VARCHAR(30),
	    country VARCHAR(20)
	)`,

	`CREATE TABLE IF NOT EXISTS suppliers (
	    id INTEGER PRIMARY KEY AUTOINCREMENT,
	    supplier_name VARCHAR(100) NOT NULL,
	    country VARCHAR(20) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS products (
	    id INTEGER PRIMARY KEY AUTOINCREMENT,
	    product_name VARCHAR(100) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS product_availability (
	    prod_id INTEGER NOT NULL REFERENCES products(id),
	    supp_id INTEGER NOT NULL REFERENCES suppliers(id),
	    unit_price INTEGER NOT NULL,
	    PRIMARY KEY (prod_id, supp_id)
	)`,

	`CREATE TABLE IF NOT EXISTS orders (
	    id INTEGER PRIMARY KEY AUTOINCREMENT,
	    order_date DATE NOT NULL,
	    order_reference VARCHAR(10) NOT NULL,
	    customer_id INTEGER NOT NULL REFERENCES customers(id)
	)`,

	`CREATE TABLE IF NOT EXISTS order_items (
	    id INTEGER PRIMARY KEY AUTOINCREMENT,
	    order_id INTEGER NOT NULL REFERENCES orders(id),
	    product_id INTEGER NOT NULL,
	    supplier_id INTEGER NOT NULL,
	    quantity INTEGER NOT NULL,
	    FOREIGN KEY (product_id, supplier_id) REFERENCES product_availability(prod_id, supp_id)
	)`,
}

func (db *DB) schema() ([]string, error) {
	switch db.driver {
	case config.DriverMySQL:
		return mysqlSchema, nil
	case config.DriverSQLite:
		return sqliteSchema, nil
	default:
		return nil, fmt.Errorf("no schema for driver %q", db.driver)
	}
}

// SetupSchema creates all tables that do not exist yet
func (db *DB) SetupSchema(ctx context.Context) error {
	statements, err := db.schema()
	if err != nil {
		return err
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// CleanupData removes all rows (but keeps schema)
func (db *DB) CleanupData(ctx context.Context) error {
	for i := len(Tables) - 1; i >= 0; i-- {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+Tables[i]); err != nil {
			return fmt.Errorf("failed to clean %s: %w", Tables[i], err)
		}
	}

	return nil
}

// DropSchema removes all tables, children first
func (db *DB) DropSchema(ctx context.Context) error {
	for i := len(Tables) - 1; i >= 0; i-- {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+Tables[i]); err != nil {
			return fmt.Errorf("failed to drop %s: %w", Tables[i], err)
		}
	}

	return nil
}

// TableCounts returns the number of rows per table, keyed by table name.
func (db *DB) TableCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(Tables))
	for _, table := range Tables {
		var n int64
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = n
	}

	return counts, nil
}

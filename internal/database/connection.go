package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/matthieukhl/shopfront/internal/config"
)

type DB struct {
	*sql.DB
	driver string
	txOpts *sql.TxOptions
}

// NewConnection creates a new database connection using the provided config
func NewConnection(cfg *config.DBConfig) (*DB, error) {
	dsn := cfg.DSN
	if cfg.Driver == config.DriverMySQL {
		var err error
		dsn, err = normalizeMySQLDSN(cfg.DSN)
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	if cfg.Driver == config.DriverSQLite {
		// sqlite serializes writers anyway and ":memory:" lives and dies
		// with its single connection
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return Wrap(db, cfg.Driver, isolationLevel(cfg.Isolation)), nil
}

// Wrap adopts an already open pool.
func Wrap(db *sql.DB, driver string, level sql.IsolationLevel) *DB {
	return &DB{DB: db, driver: driver, txOpts: &sql.TxOptions{Isolation: level}}
}

// Driver reports the driver name the pool was opened with.
func (db *DB) Driver() string {
	return db.driver
}

// HealthCheck performs a simple health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

// normalizeMySQLDSN makes DATE columns scan into time.Time.
func normalizeMySQLDSN(dsn string) (string, error) {
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse mysql dsn: %w", err)
	}
	mc.ParseTime = true
	return mc.FormatDSN(), nil
}

func isolationLevel(name string) sql.IsolationLevel {
	switch name {
	case "read-committed":
		return sql.LevelReadCommitted
	case "repeatable-read":
		return sql.LevelRepeatableRead
	case "serializable":
		return sql.LevelSerializable
	default:
		return sql.LevelDefault
	}
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/matthieukhl/shopfront/internal/models"
)

// ListSuppliers returns every supplier ordered by id
func (s *Store) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT id, supplier_name, country FROM suppliers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}

	suppliers, err := collect(rows, func(rows *sql.Rows, sup *models.Supplier) error {
		return rows.Scan(&sup.ID, &sup.SupplierName, &sup.Country)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan suppliers: %w", err)
	}
	return suppliers, nil
}

// InsertSupplier stores a new supplier and returns its generated id
func (s *Store) InsertSupplier(ctx context.Context, sup models.Supplier) (int64, error) {
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO suppliers (supplier_name, country) VALUES (?, ?)`,
		sup.SupplierName, sup.Country)
	if err != nil {
		return 0, fmt.Errorf("failed to insert supplier: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read supplier id: %w", err)
	}
	return id, nil
}

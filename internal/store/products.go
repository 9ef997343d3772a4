package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/matthieukhl/shopfront/internal/models"
)

const listingQuery = `
	SELECT p.product_name, sup.supplier_name, p_a.unit_price
	FROM products AS p
	INNER JOIN product_availability AS p_a ON p.id = p_a.prod_id
	INNER JOIN suppliers AS sup ON sup.id = p_a.supp_id`

// SearchProducts returns every product offer. A non-empty name keeps only
// products whose name is exactly name.
func (s *Store) SearchProducts(ctx context.Context, name string) ([]models.ProductListing, error) {
	query := listingQuery
	var args []any
	if name != "" {
		query += ` WHERE p.product_name = ?`
		args = append(args, name)
	}
	query += ` ORDER BY p.product_name, sup.supplier_name`

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	listings, err := collect(rows, func(rows *sql.Rows, l *models.ProductListing) error {
		return rows.Scan(&l.ProductName, &l.SupplierName, &l.UnitPrice)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}
	return listings, nil
}

// InsertProduct stores a new product and returns its generated id
func (s *Store) InsertProduct(ctx context.Context, p models.Product) (int64, error) {
	res, err := s.q.ExecContext(ctx, `INSERT INTO products (product_name) VALUES (?)`, p.ProductName)
	if err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read product id: %w", err)
	}
	return id, nil
}

// InsertAvailability stores the price at which a supplier offers a product
func (s *Store) InsertAvailability(ctx context.Context, a models.Availability) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO product_availability (prod_id, supp_id, unit_price) VALUES (?, ?, ?)`,
		a.ProductID, a.SupplierID, a.UnitPrice)
	if err != nil {
		return fmt.Errorf("failed to insert availability: %w", err)
	}
	return nil
}

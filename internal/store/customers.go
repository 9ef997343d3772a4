package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/matthieukhl/shopfront/internal/models"
)

const customerColumns = `id, name, COALESCE(address, '') AS address, COALESCE(city, '') AS city, COALESCE(country, '') AS country`

func scanCustomer(rows *sql.Rows, c *models.Customer) error {
	return rows.Scan(&c.ID, &c.Name, &c.Address, &c.City, &c.Country)
}

// ListCustomers returns every customer ordered by id
func (s *Store) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	customers, err := collect(rows, scanCustomer)
	if err != nil {
		return nil, fmt.Errorf("failed to scan customers: %w", err)
	}
	return customers, nil
}

// CustomersByID returns the customers with the given id: one row or none.
func (s *Store) CustomersByID(ctx context.Context, id int64) ([]models.Customer, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %d: %w", id, err)
	}

	customers, err := collect(rows, scanCustomer)
	if err != nil {
		return nil, fmt.Errorf("failed to scan customer %d: %w", id, err)
	}
	return customers, nil
}

// InsertCustomer stores a new customer and returns its generated id
func (s *Store) InsertCustomer(ctx context.Context, c models.Customer) (int64, error) {
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO customers (name, address, city, country) VALUES (?, ?, ?, ?)`,
		c.Name, c.Address, c.City, c.Country)
	if err != nil {
		return 0, fmt.Errorf("failed to insert customer: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read customer id: %w", err)
	}
	return id, nil
}

// UpdateCustomer overwrites name, address, city and country of customer c.ID
func (s *Store) UpdateCustomer(ctx context.Context, c models.Customer) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE customers SET name = ?, address = ?, city = ?, country = ? WHERE id = ?`,
		c.Name, c.Address, c.City, c.Country, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update customer %d: %w", c.ID, err)
	}
	return nil
}

// DeleteCustomer removes customer id. Deleting a missing customer is not an error.
func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete customer %d: %w", id, err)
	}
	return nil
}

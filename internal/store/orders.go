package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/matthieukhl/shopfront/internal/models"
)

// InsertOrder stores a new order for o.CustomerID and returns its generated id
func (s *Store) InsertOrder(ctx context.Context, o models.Order) (int64, error) {
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO orders (order_date, order_reference, customer_id) VALUES (?, ?, ?)`,
		o.OrderDate, o.OrderReference, o.CustomerID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read order id: %w", err)
	}
	return id, nil
}

// InsertOrderItem stores a line of an order and returns its generated id
func (s *Store) InsertOrderItem(ctx context.Context, it models.OrderItem) (int64, error) {
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO order_items (order_id, product_id, supplier_id, quantity) VALUES (?, ?, ?, ?)`,
		it.OrderID, it.ProductID, it.SupplierID, it.Quantity)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read order item id: %w", err)
	}
	return id, nil
}

// OrderItems returns the items of order orderID ordered by id
func (s *Store) OrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, order_id, product_id, supplier_id, quantity FROM order_items WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items of order %d: %w", orderID, err)
	}

	items, err := collect(rows, func(rows *sql.Rows, it *models.OrderItem) error {
		return rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.SupplierID, &it.Quantity)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan items of order %d: %w", orderID, err)
	}
	return items, nil
}

// DeleteOrderItems removes every item of order orderID
func (s *Store) DeleteOrderItems(ctx context.Context, orderID int64) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, orderID); err != nil {
		return fmt.Errorf("failed to delete items of order %d: %w", orderID, err)
	}
	return nil
}

// DeleteOrder removes order id. Its items must be deleted first.
func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}
	return nil
}

// OrdersByID returns the order with the given id: one row or none.
func (s *Store) OrdersByID(ctx context.Context, id int64) ([]models.Order, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, order_date, order_reference, customer_id FROM orders WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}

	orders, err := collect(rows, func(rows *sql.Rows, o *models.Order) error {
		return rows.Scan(&o.ID, &o.OrderDate, &o.OrderReference, &o.CustomerID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan order %d: %w", id, err)
	}
	return orders, nil
}

const customerOrdersQuery = `
	SELECT c.id, o.order_reference, o.order_date, p.product_name, p_a.unit_price, sup.supplier_name, o_i.quantity
	FROM order_items AS o_i
	INNER JOIN orders AS o ON o.id = o_i.order_id
	INNER JOIN products AS p ON p.id = o_i.product_id
	INNER JOIN product_availability AS p_a ON p_a.prod_id = o_i.product_id AND p_a.supp_id = o_i.supplier_id
	INNER JOIN suppliers AS sup ON sup.id = o_i.supplier_id
	INNER JOIN customers AS c ON c.id = o.customer_id
	WHERE c.id = ?
	ORDER BY o.order_reference ASC, o_i.id ASC`

// CustomerOrderLines returns every order item of customer customerID,
// ordered by order reference.
func (s *Store) CustomerOrderLines(ctx context.Context, customerID int64) ([]models.CustomerOrderLine, error) {
	rows, err := s.q.QueryContext(ctx, customerOrdersQuery, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders of customer %d: %w", customerID, err)
	}

	lines, err := collect(rows, func(rows *sql.Rows, l *models.CustomerOrderLine) error {
		return rows.Scan(&l.CustomerID, &l.OrderReference, &l.OrderDate, &l.ProductName,
			&l.UnitPrice, &l.SupplierName, &l.Quantity)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan orders of customer %d: %w", customerID, err)
	}
	return lines, nil
}

// Package validators answers the existence and dependency questions that
// gate writes. Each check runs exactly one read query and has no side effects.
package validators

import (
	"context"
	"fmt"

	"github.com/matthieukhl/shopfront/internal/store"
)

// Scope selects the table a product or supplier id is looked up in.
type Scope int

const (
	// ScopeCatalog looks ids up in products and suppliers.
	ScopeCatalog Scope = iota
	// ScopeAvailability only accepts ids that already appear in
	// product_availability, the rule of the first API version.
	ScopeAvailability
)

func (s Scope) String() string {
	switch s {
	case ScopeCatalog:
		return "catalog"
	case ScopeAvailability:
		return "availability"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

func exists(ctx context.Context, q store.Querier, query string, args ...any) (bool, error) {
	var n int
	if err := q.QueryRowContext(ctx, "SELECT EXISTS ("+query+")", args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// CustomerExists reports whether a customer with that id exists
func CustomerExists(ctx context.Context, q store.Querier, id int64) (bool, error) {
	ok, err := exists(ctx, q, `SELECT 1 FROM customers WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check customer %d: %w", id, err)
	}
	return ok, nil
}

// CustomerHasOrders reports whether at least one order references the customer
func CustomerHasOrders(ctx context.Context, q store.Querier, id int64) (bool, error) {
	ok, err := exists(ctx, q, `SELECT 1 FROM orders WHERE customer_id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check orders of customer %d: %w", id, err)
	}
	return ok, nil
}

// CustomerNameTaken reports whether a customer already uses name
func CustomerNameTaken(ctx context.Context, q store.Querier, name string) (bool, error) {
	ok, err := exists(ctx, q, `SELECT 1 FROM customers WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("failed to check customer name: %w", err)
	}
	return ok, nil
}

// ProductNameCount returns how many products are named name
func ProductNameCount(ctx context.Context, q store.Querier, name string) (int, error) {
	var n int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE product_name = ?`, name).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count products named %q: %w", name, err)
	}
	return n, nil
}

// ProductExists reports whether product id is known in the given scope
func ProductExists(ctx context.Context, q store.Querier, id int64, scope Scope) (bool, error) {
	query := `SELECT 1 FROM products WHERE id = ?`
	if scope == ScopeAvailability {
		query = `SELECT 1 FROM product_availability WHERE prod_id = ?`
	}

	ok, err := exists(ctx, q, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to check product %d: %w", id, err)
	}
	return ok, nil
}

// SupplierExists reports whether supplier id is known in the given scope
func SupplierExists(ctx context.Context, q store.Querier, id int64, scope Scope) (bool, error) {
	query := `SELECT 1 FROM suppliers WHERE id = ?`
	if scope == ScopeAvailability {
		query = `SELECT 1 FROM product_availability WHERE supp_id = ?`
	}

	ok, err := exists(ctx, q, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to check supplier %d: %w", id, err)
	}
	return ok, nil
}

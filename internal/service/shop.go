package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/matthieukhl/shopfront/internal/config"
	"github.com/matthieukhl/shopfront/internal/database"
	"github.com/matthieukhl/shopfront/internal/models"
	"github.com/matthieukhl/shopfront/internal/store"
	"github.com/matthieukhl/shopfront/internal/validators"
)

// Rules are the referential checks that changed between API versions.
type Rules struct {
	// ReferenceScope is where availability product and supplier ids are looked up.
	ReferenceScope validators.Scope
	// LegacyProductDuplicates lets one duplicate product name through.
	LegacyProductDuplicates bool
}

func RulesFromConfig(cfg config.CompatConfig) Rules {
	rules := Rules{ReferenceScope: validators.ScopeCatalog, LegacyProductDuplicates: cfg.LegacyProductDuplicates}
	if cfg.LegacyReferenceChecks {
		rules.ReferenceScope = validators.ScopeAvailability
	}
	return rules
}

type CustomerInput struct {
	Name    string
	Address string
	City    string
	Country string
}

type AvailabilityInput struct {
	// Zero means the id was not supplied.
	ProductID  int64
	SupplierID int64
	// UnitPrice is the JSON value as sent, see models.ParseUnitPrice.
	UnitPrice json.RawMessage
}

type OrderInput struct {
	OrderDate      time.Time
	OrderReference string
}

// Shop runs the checks and writes behind every endpoint. Each check-then-write
// sequence runs inside one transaction.
type Shop struct {
	db     *database.DB
	store  *store.Store
	rules  Rules
	logger zerolog.Logger
}

func NewShop(db *database.DB, rules Rules, logger zerolog.Logger) *Shop {
	return &Shop{
		db:     db,
		store:  store.New(db),
		rules:  rules,
		logger: logger.With().Str("component", "shop").Logger(),
	}
}

func (s *Shop) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.store.ListCustomers(ctx)
}

func (s *Shop) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return s.store.ListSuppliers(ctx)
}

// SearchProducts lists product offers, optionally only those named exactly name.
func (s *Shop) SearchProducts(ctx context.Context, name string) ([]models.ProductListing, error) {
	return s.store.SearchProducts(ctx, name)
}

// GetCustomer returns the matching customers, an empty slice when none.
func (s *Shop) GetCustomer(ctx context.Context, id int64) ([]models.Customer, error) {
	return s.store.CustomersByID(ctx, id)
}

// CustomerOrders returns every order line of a customer ordered by order reference.
func (s *Shop) CustomerOrders(ctx context.Context, customerID int64) ([]models.CustomerOrderLine, error) {
	return s.store.CustomerOrderLines(ctx, customerID)
}

// CreateCustomer inserts a customer unless the name is already used.
func (s *Shop) CreateCustomer(ctx context.Context, in CustomerInput) (int64, error) {
	var id int64
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		taken, err := validators.CustomerNameTaken(ctx, tx, in.Name)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateCustomer
		}

		id, err = store.New(tx).InsertCustomer(ctx, models.Customer{
			Name:    in.Name,
			Address: in.Address,
			City:    in.City,
			Country: in.Country,
		})
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("customer_id", id).Msg("customer created")
	return id, nil
}

// CreateProduct inserts a product unless its name is already used.
func (s *Shop) CreateProduct(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		n, err := validators.ProductNameCount(ctx, tx, name)
		if err != nil {
			return err
		}

		limit := 0
		if s.rules.LegacyProductDuplicates {
			limit = 1
		}
		if n > limit {
			return ErrDuplicateProduct
		}

		id, err = store.New(tx).InsertProduct(ctx, models.Product{ProductName: name})
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("product_id", id).Msg("product created")
	return id, nil
}

// CreateAvailability records the price at which a supplier offers a product.
// The local checks on price and ids run before any query; the product is
// checked before the supplier.
func (s *Shop) CreateAvailability(ctx context.Context, in AvailabilityInput) error {
	price, ok := models.ParseUnitPrice(in.UnitPrice)
	if !ok {
		return ErrInvalidUnitPrice
	}

	if in.ProductID == 0 || in.SupplierID == 0 {
		return ErrMissingReference
	}

	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		ok, err := validators.ProductExists(ctx, tx, in.ProductID, s.rules.ReferenceScope)
		if err != nil {
			return err
		}
		if !ok {
			return ErrProductNotFound
		}

		ok, err = validators.SupplierExists(ctx, tx, in.SupplierID, s.rules.ReferenceScope)
		if err != nil {
			return err
		}
		if !ok {
			return ErrSupplierNotFound
		}

		return store.New(tx).InsertAvailability(ctx, models.Availability{
			ProductID:  in.ProductID,
			SupplierID: in.SupplierID,
			UnitPrice:  price,
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("product_id", in.ProductID).Int64("supplier_id", in.SupplierID).Msg("availability created")
	return nil
}

// CreateOrder inserts an order for an existing customer.
func (s *Shop) CreateOrder(ctx context.Context, customerID int64, in OrderInput) (int64, error) {
	var id int64
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		ok, err := validators.CustomerExists(ctx, tx, customerID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCustomerNotFound
		}

		id, err = store.New(tx).InsertOrder(ctx, models.Order{
			OrderDate:      in.OrderDate,
			OrderReference: in.OrderReference,
			CustomerID:     customerID,
		})
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("order_id", id).Int64("customer_id", customerID).Msg("order created")
	return id, nil
}

// UpdateCustomer overwrites all four fields of an existing customer.
func (s *Shop) UpdateCustomer(ctx context.Context, id int64, in CustomerInput) error {
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		ok, err := validators.CustomerExists(ctx, tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCustomerNotFound
		}

		return store.New(tx).UpdateCustomer(ctx, models.Customer{
			ID:      id,
			Name:    in.Name,
			Address: in.Address,
			City:    in.City,
			Country: in.Country,
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("customer_id", id).Msg("customer updated")
	return nil
}

// DeleteOrder removes an order together with all its items. A missing order
// is not an error.
func (s *Shop) DeleteOrder(ctx context.Context, id int64) error {
	var items []models.OrderItem
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		st := store.New(tx)
		var err error
		if items, err = st.OrderItems(ctx, id); err != nil {
			return err
		}
		if err := st.DeleteOrderItems(ctx, id); err != nil {
			return err
		}
		return st.DeleteOrder(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("order_id", id).Int("items", len(items)).Msg("order deleted")
	return nil
}

// DeleteCustomer removes a customer that owns no orders.
func (s *Shop) DeleteCustomer(ctx context.Context, id int64) error {
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		busy, err := validators.CustomerHasOrders(ctx, tx, id)
		if err != nil {
			return err
		}
		if busy {
			return ErrCustomerHasOrders
		}

		return store.New(tx).DeleteCustomer(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("customer_id", id).Msg("customer deleted")
	return nil
}

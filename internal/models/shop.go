package models

import (
	"time"
)

// Customer represents a row of the customers table
type Customer struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Address string `json:"address" db:"address"`
	City    string `json:"city" db:"city"`
	Country string `json:"country" db:"country"`
}

// Supplier represents a row of the suppliers table
type Supplier struct {
	ID           int64  `json:"id" db:"id"`
	SupplierName string `json:"supplier_name" db:"supplier_name"`
	Country      string `json:"country" db:"country"`
}

// Product represents a row of the products table
type Product struct {
	ID          int64  `json:"id" db:"id"`
	ProductName string `json:"product_name" db:"product_name"`
}

// Availability is the price at which a supplier offers a product
type Availability struct {
	ProductID  int64 `json:"prod_id" db:"prod_id"`
	SupplierID int64 `json:"supp_id" db:"supp_id"`
	UnitPrice  int64 `json:"unit_price" db:"unit_price"`
}

// Order represents a row of the orders table
type Order struct {
	ID             int64     `json:"id" db:"id"`
	OrderDate      time.Time `json:"order_date" db:"order_date"`
	OrderReference string    `json:"order_reference" db:"order_reference"`
	CustomerID     int64     `json:"customer_id" db:"customer_id"`
}

// OrderItem is a line of an order
type OrderItem struct {
	ID         int64 `json:"id" db:"id"`
	OrderID    int64 `json:"order_id" db:"order_id"`
	ProductID  int64 `json:"product_id" db:"product_id"`
	SupplierID int64 `json:"supplier_id" db:"supplier_id"`
	Quantity   int   `json:"quantity" db:"quantity"`
}

// ProductListing is a product offered by one supplier, as returned by the
// product search.
type ProductListing struct {
	ProductName  string `json:"product_name" db:"product_name"`
	SupplierName string `json:"supplier_name" db:"supplier_name"`
	UnitPrice    int64  `json:"unit_price" db:"unit_price"`
}

// CustomerOrderLine is one order item of a customer joined with its order,
// product and supplier.
type CustomerOrderLine struct {
	CustomerID     int64     `json:"id" db:"id"`
	OrderReference string    `json:"order_reference" db:"order_reference"`
	OrderDate      time.Time `json:"order_date" db:"order_date"`
	ProductName    string    `json:"product_name" db:"product_name"`
	UnitPrice      int64     `json:"unit_price" db:"unit_price"`
	SupplierName   string    `json:"supplier_name" db:"supplier_name"`
	Quantity       int       `json:"quantity" db:"quantity"`
}

// DateLayout is the wire format of order dates in requests.
const DateLayout = "2006-01-02"

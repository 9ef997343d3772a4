package service

// ValidationError is a client error: the request is malformed or a business
// precondition does not hold. Anything else a Shop method returns is a
// data-access failure.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Invalid returns a ValidationError with message msg.
func Invalid(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

var (
	ErrDuplicateCustomer = Invalid("A customer name with the same name already exists!")
	ErrDuplicateProduct  = Invalid("A product name with the same name already exists!")
	ErrInvalidUnitPrice  = Invalid("Unit price should be positive integer")
	ErrMissingReference  = Invalid("Product Id or Supplier Id missing")
	ErrProductNotFound   = Invalid("The product does not exist!")
	ErrSupplierNotFound  = Invalid("The supplier ID does not exist!")
	ErrCustomerNotFound  = Invalid("Customer Id doesn't exist")
	ErrCustomerHasOrders = Invalid("Customer Id has some orders")
)

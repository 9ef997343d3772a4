package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matthieukhl/shopfront/internal/service"
)

// pathID parses the :id parameter. On failure it records a validation error
// and returns false.
func pathID(c *gin.Context, what string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		_ = c.Error(service.Invalid(fmt.Sprintf("Invalid %s id", what)))
		return 0, false
	}
	return id, true
}

func (s *Server) listCustomers(c *gin.Context) {
	customers, err := s.shop.ListCustomers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (s *Server) listSuppliers(c *gin.Context) {
	suppliers, err := s.shop.ListSuppliers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

// searchProducts lists every product with its suppliers and prices,
// optionally filtered by exact product name.
func (s *Server) searchProducts(c *gin.Context) {
	listings, err := s.shop.SearchProducts(c.Request.Context(), c.Query("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

func (s *Server) getCustomer(c *gin.Context) {
	id, ok := pathID(c, "customer")
	if !ok {
		return
	}

	customers, err := s.shop.GetCustomer(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (s *Server) createCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	if _, err := s.shop.CreateCustomer(c.Request.Context(), req.input()); err != nil {
		_ = c.Error(err)
		return
	}
	c.String(http.StatusOK, "Customer created")
}

func (s *Server) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	if _, err := s.shop.CreateProduct(c.Request.Context(), req.ProductName); err != nil {
		_ = c.Error(err)
		return
	}
	c.String(http.StatusOK, "New product created")
}

func (s *Server) createAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	if err := s.shop.CreateAvailability(c.Request.Context(), req.input()); err != nil {
		_ = c.Error(err)
		return
	}
	c.String(http.StatusOK, "New availability created")
}

func (s *Server) createOrder(c *gin.Context) {
	customerID, ok := pathID(c, "customer")
	if !ok {
		return
	}

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	if _, err := s.shop.CreateOrder(c.Request.Context(), customerID, req.input()); err != nil {
		_ = c.Error(err)
		return
	}
	c.String(http.StatusOK, "New order created")
}

func (s *Server) updateCustomer(c *gin.Context) {
	id, ok := pathID(c, "customer")
	if !ok {
		return
	}

	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	if err := s.shop.UpdateCustomer(c.Request.Context(), id, req.input()); err != nil {
		_ = c.Error(err)
		return
	}
	c.String(http.StatusOK, "Customer %d updated!", id)
}

func (s *Server) deleteOrder(c *gin.Context) {
	id, ok := pathID(c, "order")
	if !ok {
		return
	}

	if err := s.shop.DeleteOrder(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.String(http.StatusOK, "Order id=%d along with all the associated order items deleted.", id)
}

func (s *Server) deleteCustomer(c *gin.Context) {
	id, ok := pathID(c, "customer")
	if !ok {
		return
	}

	if err := s.shop.DeleteCustomer(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.String(http.StatusOK, "Customer id=%d deleted.", id)
}

func (s *Server) customerOrders(c *gin.Context) {
	id, ok := pathID(c, "customer")
	if !ok {
		return
	}

	lines, err := s.shop.CustomerOrders(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/matthieukhl/shopfront/internal/config"
	"github.com/matthieukhl/shopfront/internal/models"
	"github.com/matthieukhl/shopfront/internal/service"
)

// Shop is the set of operations behind the HTTP endpoints.
type Shop interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	SearchProducts(ctx context.Context, name string) ([]models.ProductListing, error)
	GetCustomer(ctx context.Context, id int64) ([]models.Customer, error)
	CreateCustomer(ctx context.Context, in service.CustomerInput) (int64, error)
	CreateProduct(ctx context.Context, name string) (int64, error)
	CreateAvailability(ctx context.Context, in service.AvailabilityInput) error
	CreateOrder(ctx context.Context, customerID int64, in service.OrderInput) (int64, error)
	UpdateCustomer(ctx context.Context, id int64, in service.CustomerInput) error
	DeleteOrder(ctx context.Context, id int64) error
	DeleteCustomer(ctx context.Context, id int64) error
	CustomerOrders(ctx context.Context, customerID int64) ([]models.CustomerOrderLine, error)
}

// HealthChecker reports whether the database answers.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Server struct {
	router *gin.Engine
	cfg    config.ServerConfig
	db     HealthChecker
	shop   Shop
	logger zerolog.Logger
}

// NewServer creates a new server instance
func NewServer(cfg config.ServerConfig, db HealthChecker, shop Shop, logger zerolog.Logger) *Server {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	registerValidations()

	router := gin.New()

	server := &Server{
		router: router,
		cfg:    cfg,
		db:     db,
		shop:   shop,
		logger: logger,
	}

	server.setupMiddleware()
	server.setupRoutes()
	return server
}

func (s *Server) setupMiddleware() {
	s.router.Use(
		requestID(),
		requestLogger(s.logger),
		gin.CustomRecoveryWithWriter(io.Discard, s.recoverPanic),
		corsMiddleware(s.cfg.CORS),
	)

	if s.cfg.RateLimit.RPS > 0 {
		limiter := newClientLimiter(s.cfg.RateLimit.RPS, s.cfg.RateLimit.Burst, s.cfg.RateLimit.ExpiresIn)
		s.router.Use(limiter.middleware())
	}

	s.router.Use(s.translateErrors())
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	s.router.GET("/customers", s.listCustomers)
	s.router.POST("/customers", s.createCustomer)
	s.router.GET("/customers/:id", s.getCustomer)
	s.router.PUT("/customers/:id", s.updateCustomer)
	s.router.DELETE("/customers/:id", s.deleteCustomer)
	s.router.GET("/customers/:id/orders", s.customerOrders)
	s.router.POST("/customers/:id/orders", s.createOrder)

	s.router.GET("/suppliers", s.listSuppliers)

	s.router.GET("/products", s.searchProducts)
	s.router.POST("/products", s.createProduct)
	s.router.POST("/availability", s.createAvailability)

	s.router.DELETE("/orders/:id", s.deleteOrder)
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	// Check database health
	if err := s.db.HealthCheck(c.Request.Context()); err != nil {
		loggerFor(c, s.logger).Error().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "database connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "shopfront",
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP on the configured address until ctx is cancelled, then
// shuts down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info().Msg("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}

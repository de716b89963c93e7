package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/stripe-invoicer/internal/billing"
	"github.com/rezonia/stripe-invoicer/internal/model"
	"github.com/rezonia/stripe-invoicer/internal/provider"
)

// Config holds server configuration
type Config struct {
	Address      string
	APIKey       string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config    *Config
	router    *gin.Engine
	customers *billing.CustomerManager
	invoices  *billing.InvoiceCreator
}

// Option configures the server
type Option func(*Server)

// WithProviderClient overrides the billing provider. Used by tests to
// substitute an in-memory provider.
func WithProviderClient(client provider.Client) Option {
	return func(s *Server) {
		s.customers = billing.NewCustomerManager(client)
		s.invoices = billing.NewInvoiceCreator(client)
	}
}

// NewServer creates a new API server
func NewServer(config *Config, opts ...Option) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config: config,
		router: router,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.customers == nil {
		client := provider.NewStripeClient(config.APIKey)
		s.customers = billing.NewCustomerManager(client)
		s.invoices = billing.NewInvoiceCreator(client)
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		// Invoice endpoints
		v1.POST("/invoices/quick", s.handleQuickInvoice)
		v1.POST("/invoices", s.handleCreateInvoice)
		v1.GET("/invoices", s.handleListInvoices)

		// Customer endpoints
		v1.POST("/customers", s.handleCreateCustomer)
		v1.GET("/customers", s.handleListCustomers)
		v1.GET("/customers/:id", s.handleGetCustomer)
		v1.PATCH("/customers/:id", s.handleUpdateCustomer)
		v1.DELETE("/customers/:id", s.handleDeleteCustomer)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// statusCode maps a result envelope onto an HTTP status.
func statusCode(st billing.Status) int {
	if st.Success {
		return http.StatusOK
	}
	switch st.ErrorKind {
	case billing.ErrorKindValidation:
		return http.StatusBadRequest
	case billing.ErrorKindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleQuickInvoice(c *gin.Context) {
	var req billing.QuickInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result := s.invoices.CreateQuickInvoice(c.Request.Context(), req)
	c.JSON(statusCode(result.Status), result)
}

func (s *Server) handleCreateInvoice(c *gin.Context) {
	var req billing.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result := s.invoices.CreateInvoice(c.Request.Context(), req)
	c.JSON(statusCode(result.Status), result)
}

func (s *Server) handleListInvoices(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query: " + err.Error()})
		return
	}

	result := s.invoices.ListInvoices(c.Request.Context(), query.CustomerID, query.Limit)
	c.JSON(statusCode(result.Status), result)
}

func (s *Server) handleCreateCustomer(c *gin.Context) {
	var req billing.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result := s.customers.CreateCustomer(c.Request.Context(), req)
	c.JSON(statusCode(result.Status), result)
}

func (s *Server) handleListCustomers(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query: " + err.Error()})
		return
	}

	result := s.customers.ListCustomers(c.Request.Context(), query.Limit, query.Email)
	c.JSON(statusCode(result.Status), result)
}

func (s *Server) handleGetCustomer(c *gin.Context) {
	result := s.customers.GetCustomer(c.Request.Context(), c.Param("id"))
	c.JSON(statusCode(result.Status), result)
}

func (s *Server) handleUpdateCustomer(c *gin.Context) {
	var update model.CustomerUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result := s.customers.UpdateCustomer(c.Request.Context(), c.Param("id"), update)
	c.JSON(statusCode(result.Status), result)
}

func (s *Server) handleDeleteCustomer(c *gin.Context) {
	result := s.customers.DeleteCustomer(c.Request.Context(), c.Param("id"))
	c.JSON(statusCode(result.Status), result)
}

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/stripe-invoicer/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server exposing the invoicing operations.

The API provides endpoints for:
  - POST   /api/v1/invoices/quick  - Invoice a flat amount by email
  - POST   /api/v1/invoices        - Create an itemized invoice
  - GET    /api/v1/invoices        - List invoices
  - POST   /api/v1/customers       - Create a customer
  - GET    /api/v1/customers       - List customers
  - GET    /api/v1/customers/:id   - Get a customer
  - PATCH  /api/v1/customers/:id   - Update a customer
  - DELETE /api/v1/customers/:id   - Delete a customer
  - GET    /health                 - Health check

Examples:
  # Start server on default port
  stripe-invoicer serve

  # Start on custom port
  stripe-invoicer serve --address :9090

  # Start in debug mode
  stripe-invoicer serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 2*time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	if apiKey == "" {
		return fmt.Errorf("no Stripe API key: pass --api-key or set STRIPE_RESTRICTED")
	}

	config := &server.Config{
		Address:      serverAddr,
		APIKey:       apiKey,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
	}

	srv := server.NewServer(config)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", serverAddr)
	return srv.Run()
}

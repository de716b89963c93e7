package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/stripe-invoicer/internal/billing"
	"github.com/rezonia/stripe-invoicer/internal/provider"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	apiKey       string
	llmAPIKey    string
	llmBaseURL   string
	llmModel     string
)

var rootCmd = &cobra.Command{
	Use:   "stripe-invoicer",
	Short: "Create and send Stripe invoices from the command line",
	Long: `Stripe Invoicer is a CLI tool for managing customers and invoices
through the Stripe API.

Amounts are given in dollars and converted to cents internally.
Invoices are emailed to the customer on creation unless --no-send is set.

Examples:
  # Invoice a customer for a flat amount
  stripe-invoicer create client@example.com 250.00 "Consulting services"

  # Convert a billing report into a detailed invoice
  stripe-invoicer report march.txt --email client@example.com --rate 85

  # List recent invoices
  stripe-invoicer list -f table

  # Manage customers
  stripe-invoicer customer create client@example.com --name "Acme Corp"`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Stripe API key (env: STRIPE_RESTRICTED)")
	rootCmd.PersistentFlags().StringVar(&llmAPIKey, "llm-api-key", "", "API key for LLM description enhancement (env: LLM_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&llmBaseURL, "llm-base-url", "", "LLM API base URL (env: LLM_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&llmModel, "llm-model", "", "LLM model for description enhancement (env: LLM_MODEL)")

	// Load from environment variables if not set via flags
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if apiKey == "" {
		apiKey = os.Getenv("STRIPE_RESTRICTED")
	}
	if llmAPIKey == "" {
		llmAPIKey = os.Getenv("LLM_API_KEY")
	}
	if llmBaseURL == "" {
		llmBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if llmModel == "" {
		llmModel = os.Getenv("LLM_MODEL")
	}
}

// newProviderClient builds the Stripe client from the global flags.
func newProviderClient() (provider.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("no Stripe API key: pass --api-key or set STRIPE_RESTRICTED")
	}
	return provider.NewStripeClient(apiKey), nil
}

func newFacades() (*billing.CustomerManager, *billing.InvoiceCreator, error) {
	client, err := newProviderClient()
	if err != nil {
		return nil, nil, err
	}
	return billing.NewCustomerManager(client), billing.NewInvoiceCreator(client), nil
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/stripe-invoicer/internal/billing"
	"github.com/rezonia/stripe-invoicer/internal/money"
)

var (
	createCustomerName string
	createInvoiceNum   string
	createDueDays      int64
	createNoSend       bool
	createTimeout      time.Duration
)

var createCmd = &cobra.Command{
	Use:   "create <email> <amount> <description>",
	Short: "Create and send an invoice for a flat amount",
	Long: `Create an invoice for a customer identified by email.

The customer is looked up by email and created if missing. The amount is
in dollars and is converted to cents internally; fractional cents round
to the nearest cent. The invoice is finalized and emailed unless
--no-send is set.

Examples:
  stripe-invoicer create client@example.com 250.00 "Consulting services"
  stripe-invoicer create client@example.com 99.95 "Retainer" --name "Acme Corp"
  stripe-invoicer create client@example.com 1200 "Q3 work" --no-send`,
	Args: cobra.ExactArgs(3),
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVar(&createCustomerName, "name", "", "Customer name when creating a new customer")
	createCmd.Flags().StringVar(&createInvoiceNum, "invoice-number", "", "Custom invoice number")
	createCmd.Flags().Int64Var(&createDueDays, "due-days", 0, "Days until the invoice is due (default 30)")
	createCmd.Flags().BoolVar(&createNoSend, "no-send", false, "Finalize the invoice without emailing it")
	createCmd.Flags().DurationVar(&createTimeout, "timeout", time.Minute, "Operation timeout")
}

func runCreate(cmd *cobra.Command, args []string) error {
	amount, err := money.ParseDollars(args[1])
	if err != nil {
		return err
	}

	_, invoices, err := newFacades()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), createTimeout)
	defer cancel()

	printVerbose("Creating invoice for %s: $%s\n", args[0], amount.StringFixed(2))

	result := invoices.CreateQuickInvoice(ctx, billing.QuickInvoiceRequest{
		CustomerEmail: args[0],
		AmountDollars: amount,
		Description:   args[2],
		CustomerName:  createCustomerName,
		InvoiceNumber: createInvoiceNum,
		DueDays:       createDueDays,
		NoSend:        createNoSend,
	})

	return emit(result, result.Status)
}

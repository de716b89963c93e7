package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var (
	listCustomerID string
	listLimit      int64
	listTimeout    time.Duration
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent invoices",
	Long: `List recent invoices, most recent first.

Examples:
  stripe-invoicer list
  stripe-invoicer list --limit 25 -f table
  stripe-invoicer list --customer cus_ABC123`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listCustomerID, "customer", "", "Filter by customer id")
	listCmd.Flags().Int64Var(&listLimit, "limit", 10, "Maximum number of invoices")
	listCmd.Flags().DurationVar(&listTimeout, "timeout", time.Minute, "Operation timeout")
}

func runList(cmd *cobra.Command, args []string) error {
	_, invoices, err := newFacades()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
	defer cancel()

	result := invoices.ListInvoices(ctx, listCustomerID, listLimit)
	return emit(result, result.Status)
}

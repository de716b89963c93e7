package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/stripe-invoicer/internal/billing"
	"github.com/rezonia/stripe-invoicer/internal/model"
)

var (
	customerName    string
	customerPhone   string
	customerEmail   string
	customerLimit   int64
	customerTimeout time.Duration
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customers",
	Long: `Create, inspect, update, and delete customers.

Examples:
  stripe-invoicer customer create client@example.com --name "Acme Corp"
  stripe-invoicer customer get cus_ABC123
  stripe-invoicer customer list --email client@example.com
  stripe-invoicer customer update cus_ABC123 --name "Acme Corporation"
  stripe-invoicer customer delete cus_ABC123`,
}

var customerCreateCmd = &cobra.Command{
	Use:   "create <email>",
	Short: "Create a customer",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomerCreate,
}

var customerGetCmd = &cobra.Command{
	Use:   "get <customer-id>",
	Short: "Retrieve a customer by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomerGet,
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers, optionally filtered by email",
	RunE:  runCustomerList,
}

var customerUpdateCmd = &cobra.Command{
	Use:   "update <customer-id>",
	Short: "Update customer fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomerUpdate,
}

var customerDeleteCmd = &cobra.Command{
	Use:   "delete <customer-id>",
	Short: "Delete a customer",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomerDelete,
}

func init() {
	rootCmd.AddCommand(customerCmd)
	customerCmd.AddCommand(customerCreateCmd, customerGetCmd, customerListCmd, customerUpdateCmd, customerDeleteCmd)

	customerCmd.PersistentFlags().DurationVar(&customerTimeout, "timeout", time.Minute, "Operation timeout")

	customerCreateCmd.Flags().StringVar(&customerName, "name", "", "Customer name")
	customerCreateCmd.Flags().StringVar(&customerPhone, "phone", "", "Customer phone number")

	customerListCmd.Flags().StringVar(&customerEmail, "email", "", "Filter by email")
	customerListCmd.Flags().Int64Var(&customerLimit, "limit", 10, "Maximum number of customers")

	customerUpdateCmd.Flags().StringVar(&customerEmail, "email", "", "New email")
	customerUpdateCmd.Flags().StringVar(&customerName, "name", "", "New name")
	customerUpdateCmd.Flags().StringVar(&customerPhone, "phone", "", "New phone number")
}

func customerContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), customerTimeout)
}

func runCustomerCreate(cmd *cobra.Command, args []string) error {
	customers, _, err := newFacades()
	if err != nil {
		return err
	}

	ctx, cancel := customerContext()
	defer cancel()

	result := customers.CreateCustomer(ctx, billing.CreateCustomerRequest{
		Email: args[0],
		Name:  customerName,
		Phone: customerPhone,
	})
	return emit(result, result.Status)
}

func runCustomerGet(cmd *cobra.Command, args []string) error {
	customers, _, err := newFacades()
	if err != nil {
		return err
	}

	ctx, cancel := customerContext()
	defer cancel()

	result := customers.GetCustomer(ctx, args[0])
	return emit(result, result.Status)
}

func runCustomerList(cmd *cobra.Command, args []string) error {
	customers, _, err := newFacades()
	if err != nil {
		return err
	}

	ctx, cancel := customerContext()
	defer cancel()

	result := customers.ListCustomers(ctx, customerLimit, customerEmail)
	return emit(result, result.Status)
}

func runCustomerUpdate(cmd *cobra.Command, args []string) error {
	customers, _, err := newFacades()
	if err != nil {
		return err
	}

	// Only flags the caller set become part of the update.
	var update model.CustomerUpdate
	if cmd.Flags().Changed("email") {
		update.Email = &customerEmail
	}
	if cmd.Flags().Changed("name") {
		update.Name = &customerName
	}
	if cmd.Flags().Changed("phone") {
		update.Phone = &customerPhone
	}

	ctx, cancel := customerContext()
	defer cancel()

	result := customers.UpdateCustomer(ctx, args[0], update)
	return emit(result, result.Status)
}

func runCustomerDelete(cmd *cobra.Command, args []string) error {
	customers, _, err := newFacades()
	if err != nil {
		return err
	}

	ctx, cancel := customerContext()
	defer cancel()

	result := customers.DeleteCustomer(ctx, args[0])
	return emit(result, result.Status)
}

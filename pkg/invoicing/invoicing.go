// Package invoicing provides a public API for creating Stripe customers
// and invoices.
//
// All operations return result envelopes instead of errors: check the
// Success field and inspect ErrorKind on failure.
//
// Example usage:
//
//	client := invoicing.New(os.Getenv("STRIPE_RESTRICTED"))
//	result := client.Invoices.CreateQuickInvoice(ctx, invoicing.QuickInvoiceRequest{
//	    CustomerEmail: "client@example.com",
//	    AmountDollars: decimal.NewFromFloat(250.00),
//	    Description:   "Consulting services",
//	})
//	if !result.Success {
//	    log.Fatal(result.Error)
//	}
//	fmt.Println(result.PaymentLink)
package invoicing

import (
	"github.com/rezonia/stripe-invoicer/internal/billing"
	"github.com/rezonia/stripe-invoicer/internal/model"
)

// Re-export core types for public API
type (
	Customer       = model.Customer
	CustomerUpdate = model.CustomerUpdate
	Address        = model.Address
	Invoice        = model.Invoice
	InvoiceStatus  = model.InvoiceStatus
	LineItem       = model.LineItem
	CustomField    = model.CustomField
)

// Re-export invoice statuses
const (
	StatusDraft         = model.StatusDraft
	StatusOpen          = model.StatusOpen
	StatusPaid          = model.StatusPaid
	StatusVoid          = model.StatusVoid
	StatusUncollectible = model.StatusUncollectible
)

// Re-export error types
type (
	ValidationError = model.ValidationError
	NotFoundError   = model.NotFoundError
	ProviderError   = model.ProviderError
)

// Re-export result envelopes and requests
type (
	Status                = billing.Status
	ErrorKind             = billing.ErrorKind
	CustomerResult        = billing.CustomerResult
	CustomerListResult    = billing.CustomerListResult
	InvoiceResult         = billing.InvoiceResult
	InvoiceListResult     = billing.InvoiceListResult
	InvoiceSummary        = billing.InvoiceSummary
	CreateCustomerRequest = billing.CreateCustomerRequest
	QuickInvoiceRequest   = billing.QuickInvoiceRequest
	InvoiceRequest        = billing.InvoiceRequest
)

// Re-export error kinds
const (
	ErrorKindValidation = billing.ErrorKindValidation
	ErrorKindNotFound   = billing.ErrorKindNotFound
	ErrorKindProvider   = billing.ErrorKindProvider
)

// Package provider defines the narrow surface of the external payment
// service used by the billing facades, and its Stripe implementation.
// Keeping the surface behind an interface lets tests run against a
// recording fake instead of the real API.
package provider

import (
	"context"

	"github.com/rezonia/stripe-invoicer/internal/model"
)

// CustomerParams carries the fields for creating a customer.
type CustomerParams struct {
	Email    string
	Name     string
	Phone    string
	Address  *model.Address
	Metadata map[string]string
}

// InvoiceParams carries the fields for drafting an invoice. The draft picks
// up the pending invoice items previously created for the customer.
type InvoiceParams struct {
	CustomerID   string
	Description  string
	DaysUntilDue int64
	Number       string
	CustomFields []model.CustomField
	Footer       string
	Metadata     map[string]string
}

// Client is the payment provider as seen by this system. Implementations
// return *model.NotFoundError for unknown resource ids and
// *model.ProviderError for transport failures and API rejections.
type Client interface {
	CreateCustomer(ctx context.Context, params CustomerParams) (*model.Customer, error)
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, id string, update model.CustomerUpdate) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id string) (*model.Customer, error)
	ListCustomers(ctx context.Context, limit int64, email string) ([]*model.Customer, error)

	CreateInvoiceItem(ctx context.Context, customerID string, item model.LineItem) error
	CreateInvoice(ctx context.Context, params InvoiceParams) (*model.Invoice, error)
	FinalizeInvoice(ctx context.Context, id string) (*model.Invoice, error)
	SendInvoice(ctx context.Context, id string) (*model.Invoice, error)
	ListInvoices(ctx context.Context, customerID string, limit int64) ([]*model.Invoice, error)
}

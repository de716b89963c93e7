package invoicing

import (
	"time"

	"github.com/rezonia/stripe-invoicer/internal/billing"
	"github.com/rezonia/stripe-invoicer/internal/provider"
)

// Client bundles the customer and invoice facades over one provider
// connection.
type Client struct {
	Customers *billing.CustomerManager
	Invoices  *billing.InvoiceCreator
}

// Option configures the client
type Option func(*options)

type options struct {
	providerOpts []provider.Option
}

// WithBaseURL points the client at a different API endpoint, such as a
// stripe-mock instance.
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.providerOpts = append(o.providerOpts, provider.WithBaseURL(url))
	}
}

// WithTimeout sets the HTTP timeout for provider calls.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.providerOpts = append(o.providerOpts, provider.WithTimeout(timeout))
	}
}

// New creates a client authenticated with the given Stripe API key.
func New(apiKey string, opts ...Option) *Client {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	p := provider.NewStripeClient(apiKey, o.providerOpts...)
	return &Client{
		Customers: billing.NewCustomerManager(p),
		Invoices:  billing.NewInvoiceCreator(p),
	}
}

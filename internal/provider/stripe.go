package provider

import (
	"context"
	"errors"
	"net/http"
	"time"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"

	"github.com/rezonia/stripe-invoicer/internal/model"
)

// DefaultTimeout bounds each HTTP request to the provider.
const DefaultTimeout = 30 * time.Second

// StripeClient implements Client on top of the official Stripe SDK.
type StripeClient struct {
	api *client.API
}

// Option configures the Stripe client
type Option func(*clientConfig)

type clientConfig struct {
	baseURL string
	timeout time.Duration
}

// WithBaseURL points the client at a different API host (e.g. stripe-mock)
func WithBaseURL(url string) Option {
	return func(cfg *clientConfig) {
		cfg.baseURL = url
	}
}

// WithTimeout sets a custom HTTP timeout
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.timeout = timeout
	}
}

// NewStripeClient creates a Stripe-backed provider client. Retries are
// disabled: invoice and line-item creation are not idempotent, so a retried
// write could double-bill.
func NewStripeClient(apiKey string, opts ...Option) *StripeClient {
	cfg := &clientConfig{
		baseURL: stripe.APIURL,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(cfg.baseURL),
		HTTPClient:        &http.Client{Timeout: cfg.timeout},
		MaxNetworkRetries: stripe.Int64(0),
	})

	api := &client.API{}
	api.Init(apiKey, &stripe.Backends{
		API:     backend,
		Uploads: backend,
		Connect: backend,
	})

	return &StripeClient{api: api}
}

func (s *StripeClient) CreateCustomer(ctx context.Context, params CustomerParams) (*model.Customer, error) {
	p := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Email:  stripe.String(params.Email),
	}
	if params.Name != "" {
		p.Name = stripe.String(params.Name)
	}
	if params.Phone != "" {
		p.Phone = stripe.String(params.Phone)
	}
	if params.Address != nil {
		p.Address = toAddressParams(params.Address)
	}
	for k, v := range params.Metadata {
		p.AddMetadata(k, v)
	}

	c, err := s.api.Customers.New(p)
	if err != nil {
		return nil, mapErr("customer.create", "customer", params.Email, err)
	}
	return toCustomer(c), nil
}

func (s *StripeClient) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	c, err := s.api.Customers.Get(id, &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, mapErr("customer.retrieve", "customer", id, err)
	}
	if c.Deleted {
		return nil, model.NewNotFoundError("customer", id)
	}
	return toCustomer(c), nil
}

func (s *StripeClient) UpdateCustomer(ctx context.Context, id string, update model.CustomerUpdate) (*model.Customer, error) {
	p := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
	}
	if update.Email != nil {
		p.Email = stripe.String(*update.Email)
	}
	if update.Name != nil {
		p.Name = stripe.String(*update.Name)
	}
	if update.Phone != nil {
		p.Phone = stripe.String(*update.Phone)
	}
	if update.Address != nil {
		p.Address = toAddressParams(update.Address)
	}
	for k, v := range update.Metadata {
		p.AddMetadata(k, v)
	}

	c, err := s.api.Customers.Update(id, p)
	if err != nil {
		return nil, mapErr("customer.update", "customer", id, err)
	}
	return toCustomer(c), nil
}

func (s *StripeClient) DeleteCustomer(ctx context.Context, id string) (*model.Customer, error) {
	c, err := s.api.Customers.Del(id, &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, mapErr("customer.delete", "customer", id, err)
	}
	return toCustomer(c), nil
}

func (s *StripeClient) ListCustomers(ctx context.Context, limit int64, email string) ([]*model.Customer, error) {
	p := &stripe.CustomerListParams{}
	p.Context = ctx
	if limit > 0 {
		p.Limit = stripe.Int64(limit)
	}
	if email != "" {
		p.Email = stripe.String(email)
	}

	var customers []*model.Customer
	iter := s.api.Customers.List(p)
	for iter.Next() {
		customers = append(customers, toCustomer(iter.Customer()))
	}
	if err := iter.Err(); err != nil {
		return nil, mapErr("customer.list", "customer", email, err)
	}
	return customers, nil
}

func (s *StripeClient) CreateInvoiceItem(ctx context.Context, customerID string, item model.LineItem) error {
	item = item.Normalize()

	p := &stripe.InvoiceItemParams{
		Params:      stripe.Params{Context: ctx},
		Customer:    stripe.String(customerID),
		Description: stripe.String(item.Description),
		Currency:    stripe.String(item.Currency),
	}
	// A bare amount for quantity 1, unit amount plus quantity otherwise.
	// Matches how the provider renders the line on the hosted invoice.
	if item.Quantity != 1 {
		p.UnitAmount = stripe.Int64(item.Amount)
		p.Quantity = stripe.Int64(item.Quantity)
	} else {
		p.Amount = stripe.Int64(item.Amount)
	}

	if _, err := s.api.InvoiceItems.New(p); err != nil {
		return mapErr("invoiceitem.create", "customer", customerID, err)
	}
	return nil
}

func (s *StripeClient) CreateInvoice(ctx context.Context, params InvoiceParams) (*model.Invoice, error) {
	p := &stripe.InvoiceParams{
		Params:           stripe.Params{Context: ctx},
		Customer:         stripe.String(params.CustomerID),
		CollectionMethod: stripe.String(string(stripe.InvoiceCollectionMethodSendInvoice)),
		AutoAdvance:      stripe.Bool(false),
		// Drafting must sweep the customer's pending line items.
		PendingInvoiceItemsBehavior: stripe.String("include"),
	}
	if params.Description != "" {
		p.Description = stripe.String(params.Description)
	}
	if params.DaysUntilDue > 0 {
		p.DaysUntilDue = stripe.Int64(params.DaysUntilDue)
	}
	if params.Footer != "" {
		p.Footer = stripe.String(params.Footer)
	}
	if params.Number != "" {
		// Custom numbering is not surfaced by this SDK version.
		p.AddExtra("number", params.Number)
	}
	for _, cf := range params.CustomFields {
		p.CustomFields = append(p.CustomFields, &stripe.InvoiceCustomFieldParams{
			Name:  stripe.String(cf.Name),
			Value: stripe.String(cf.Value),
		})
	}
	for k, v := range params.Metadata {
		p.AddMetadata(k, v)
	}

	inv, err := s.api.Invoices.New(p)
	if err != nil {
		return nil, mapErr("invoice.create", "customer", params.CustomerID, err)
	}
	return toInvoice(inv), nil
}

func (s *StripeClient) FinalizeInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	inv, err := s.api.Invoices.FinalizeInvoice(id, &stripe.InvoiceFinalizeParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, mapErr("invoice.finalize", "invoice", id, err)
	}
	return toInvoice(inv), nil
}

func (s *StripeClient) SendInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	inv, err := s.api.Invoices.SendInvoice(id, &stripe.InvoiceSendParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, mapErr("invoice.send", "invoice", id, err)
	}
	return toInvoice(inv), nil
}

func (s *StripeClient) ListInvoices(ctx context.Context, customerID string, limit int64) ([]*model.Invoice, error) {
	p := &stripe.InvoiceListParams{}
	p.Context = ctx
	if limit > 0 {
		p.Limit = stripe.Int64(limit)
	}
	if customerID != "" {
		p.Customer = stripe.String(customerID)
	}

	var invoices []*model.Invoice
	iter := s.api.Invoices.List(p)
	for iter.Next() {
		invoices = append(invoices, toInvoice(iter.Invoice()))
	}
	if err := iter.Err(); err != nil {
		return nil, mapErr("invoice.list", "invoice", customerID, err)
	}
	return invoices, nil
}

func toAddressParams(a *model.Address) *stripe.AddressParams {
	return &stripe.AddressParams{
		Line1:      stripe.String(a.Line1),
		Line2:      stripe.String(a.Line2),
		City:       stripe.String(a.City),
		State:      stripe.String(a.State),
		PostalCode: stripe.String(a.PostalCode),
		Country:    stripe.String(a.Country),
	}
}

func toCustomer(c *stripe.Customer) *model.Customer {
	out := &model.Customer{
		ID:       c.ID,
		Email:    c.Email,
		Name:     c.Name,
		Phone:    c.Phone,
		Metadata: c.Metadata,
	}
	if c.Created > 0 {
		out.Created = time.Unix(c.Created, 0).UTC()
	}
	if c.Address != (stripe.Address{}) {
		out.Address = &model.Address{
			Line1:      c.Address.Line1,
			Line2:      c.Address.Line2,
			City:       c.Address.City,
			State:      c.Address.State,
			PostalCode: c.Address.PostalCode,
			Country:    c.Address.Country,
		}
	}
	return out
}

func toInvoice(inv *stripe.Invoice) *model.Invoice {
	out := &model.Invoice{
		ID:          inv.ID,
		Number:      inv.Number,
		AmountDue:   inv.AmountDue,
		Currency:    string(inv.Currency),
		Status:      model.InvoiceStatus(inv.Status),
		PaymentLink: inv.HostedInvoiceURL,
		PDFLink:     inv.InvoicePDF,
		Description: inv.Description,
	}
	if inv.Customer != nil {
		out.CustomerID = inv.Customer.ID
		out.CustomerEmail = inv.Customer.Email
	}
	if inv.Created > 0 {
		out.Created = time.Unix(inv.Created, 0).UTC()
	}
	return out
}

// mapErr converts SDK errors to the local error taxonomy. Unknown resource
// ids become NotFoundError; everything else is a ProviderError.
func mapErr(op, resource, id string, err error) error {
	var serr *stripe.Error
	if errors.As(err, &serr) {
		if serr.Code == stripe.ErrorCodeResourceMissing {
			return model.NewNotFoundError(resource, id)
		}
		return model.NewProviderError(op, string(serr.Code), serr.Msg, err)
	}
	return model.NewProviderError(op, "", err.Error(), err)
}

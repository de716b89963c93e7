package billing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rezonia/stripe-invoicer/internal/model"
	"github.com/rezonia/stripe-invoicer/internal/money"
	"github.com/rezonia/stripe-invoicer/internal/provider"
)

// DefaultDueDays is the payment term applied when a request does not name
// one.
const DefaultDueDays = 30

// maxFooterLen is the provider's character limit on invoice footers.
const maxFooterLen = 5000

// InvoiceCreator assembles invoice requests, drives the provider's
// draft -> open -> sent pipeline, and extracts payment and PDF links. Like
// CustomerManager it is stateless beyond the provider client.
type InvoiceCreator struct {
	client provider.Client
}

// NewInvoiceCreator creates an invoice facade over the given provider.
func NewInvoiceCreator(client provider.Client) *InvoiceCreator {
	return &InvoiceCreator{client: client}
}

// QuickInvoiceRequest is the minimal-parameter invoice path: one flat
// dollar amount turned into a single line item for a customer identified by
// email. The invoice is emailed unless NoSend is set.
type QuickInvoiceRequest struct {
	CustomerEmail string          `json:"customer_email"`
	AmountDollars decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	CustomerName  string          `json:"customer_name,omitempty"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	DueDays       int64           `json:"due_days,omitempty"`
	NoSend        bool            `json:"no_send,omitempty"`
}

// InvoiceRequest is the multi-line-item invoice path for a known customer
// id. Item amounts are already in minor units; quantity defaults to 1.
type InvoiceRequest struct {
	CustomerID    string              `json:"customer_id"`
	Items         []model.LineItem    `json:"items"`
	Description   string              `json:"description,omitempty"`
	DueDays       int64               `json:"due_days,omitempty"`
	InvoiceNumber string              `json:"invoice_number,omitempty"`
	CustomFields  []model.CustomField `json:"custom_fields,omitempty"`
	Footer        string              `json:"footer,omitempty"`
	Metadata      map[string]string   `json:"metadata,omitempty"`
	NoSend        bool                `json:"no_send,omitempty"`
}

// CreateQuickInvoice resolves or creates the customer by email, converts
// the dollar amount to minor units by rounding, and runs the standard
// draft/finalize/send pipeline with a single quantity-1 line item.
func (c *InvoiceCreator) CreateQuickInvoice(ctx context.Context, req QuickInvoiceRequest) InvoiceResult {
	if err := validateEmail(req.CustomerEmail); err != nil {
		return invoiceFailure(err)
	}
	if !money.IsPositive(req.AmountDollars) {
		return invoiceFailure(model.NewValidationError("amount", req.AmountDollars.String(), "positive", "invoice amount must be positive"))
	}
	if req.Description == "" {
		return invoiceFailure(model.NewValidationError("description", nil, "required", "invoice description is empty"))
	}

	customer, err := c.resolveCustomer(ctx, req.CustomerEmail, req.CustomerName)
	if err != nil {
		return invoiceFailure(err)
	}

	items := []model.LineItem{{
		Description: req.Description,
		Amount:      money.ToMinorUnits(req.AmountDollars),
		Quantity:    1,
	}}

	dueDays := req.DueDays
	if dueDays <= 0 {
		dueDays = DefaultDueDays
	}

	res := c.createInvoice(ctx, provider.InvoiceParams{
		CustomerID:   customer.ID,
		Description:  fmt.Sprintf("Invoice for %s", req.CustomerEmail),
		DaysUntilDue: dueDays,
		Number:       req.InvoiceNumber,
	}, items, !req.NoSend)

	if res.Success && res.CustomerEmail == "" {
		res.CustomerEmail = customer.Email
	}
	return res
}

// CreateInvoice drafts an invoice with the given line items for an existing
// customer, finalizes it, and optionally requests email delivery. An empty
// item list fails before any provider call is issued.
func (c *InvoiceCreator) CreateInvoice(ctx context.Context, req InvoiceRequest) InvoiceResult {
	if req.CustomerID == "" {
		return invoiceFailure(model.NewValidationError("customer_id", nil, "required", "customer id is empty"))
	}
	if len(req.Items) == 0 {
		return invoiceFailure(model.NewValidationError("items", nil, "non-empty", "invoice has no line items"))
	}

	items := make([]model.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		item = item.Normalize()
		if err := item.Validate(); err != nil {
			return invoiceFailure(err)
		}
		items = append(items, item)
	}

	dueDays := req.DueDays
	if dueDays <= 0 {
		dueDays = DefaultDueDays
	}
	footer := truncateRunes(req.Footer, maxFooterLen)
	customFields := req.CustomFields
	if len(customFields) > model.MaxCustomFields {
		customFields = customFields[:model.MaxCustomFields]
	}

	res := c.createInvoice(ctx, provider.InvoiceParams{
		CustomerID:   req.CustomerID,
		Description:  req.Description,
		DaysUntilDue: dueDays,
		Number:       req.InvoiceNumber,
		CustomFields: customFields,
		Footer:       footer,
		Metadata:     req.Metadata,
	}, items, !req.NoSend)

	if res.Success && res.CustomerEmail == "" {
		// The draft response does not expand the customer; look the email
		// up separately, as a best effort.
		if cust, err := c.client.GetCustomer(ctx, req.CustomerID); err == nil {
			res.CustomerEmail = cust.Email
		}
	}
	return res
}

// ListInvoices returns up to limit invoice summaries, optionally filtered
// by customer id. Amounts are converted back to decimal dollars.
func (c *InvoiceCreator) ListInvoices(ctx context.Context, customerID string, limit int64) InvoiceListResult {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	invoices, err := c.client.ListInvoices(ctx, customerID, limit)
	if err != nil {
		return InvoiceListResult{Status: fail(err)}
	}

	summaries := make([]InvoiceSummary, 0, len(invoices))
	for _, inv := range invoices {
		summaries = append(summaries, InvoiceSummary{
			ID:            inv.ID,
			Number:        inv.Number,
			CustomerEmail: inv.CustomerEmail,
			Amount:        money.FromMinorUnits(inv.AmountDue),
			Status:        inv.Status,
			PaymentLink:   inv.PaymentLink,
			Created:       inv.Created,
		})
	}
	return InvoiceListResult{Status: ok(), Invoices: summaries}
}

// truncateRunes caps s at n runes. The provider's limits count characters,
// so slicing by bytes could split a multi-byte rune.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// resolveCustomer finds a customer by email or creates one. This mirrors
// CustomerManager.GetOrCreateCustomer but goes through the provider
// directly: the two facades share no state.
func (c *InvoiceCreator) resolveCustomer(ctx context.Context, email, name string) (*model.Customer, error) {
	matches, err := c.client.ListCustomers(ctx, 1, email)
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		return matches[0], nil
	}
	return c.client.CreateCustomer(ctx, provider.CustomerParams{Email: email, Name: name})
}

// createInvoice runs the shared pipeline: pending line items, draft,
// finalize, optional send, then envelope extraction.
func (c *InvoiceCreator) createInvoice(ctx context.Context, params provider.InvoiceParams, items []model.LineItem, send bool) InvoiceResult {
	for _, item := range items {
		if err := c.client.CreateInvoiceItem(ctx, params.CustomerID, item); err != nil {
			return invoiceFailure(err)
		}
	}

	draft, err := c.client.CreateInvoice(ctx, params)
	if err != nil {
		return invoiceFailure(err)
	}

	inv, err := c.client.FinalizeInvoice(ctx, draft.ID)
	if err != nil {
		return invoiceFailure(err)
	}

	if send {
		sent, err := c.client.SendInvoice(ctx, inv.ID)
		if err != nil {
			return invoiceFailure(err)
		}
		// Links are already set by finalization; sending only flips the
		// delivery flag, so keep whichever response is richer.
		if sent.PaymentLink != "" {
			inv = sent
		}
	}

	return InvoiceResult{
		Status:        ok(),
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.Number,
		AmountDue:     money.FromMinorUnits(inv.AmountDue),
		Currency:      inv.Currency,
		PaymentLink:   inv.PaymentLink,
		PDFLink:       inv.PDFLink,
		InvoiceStatus: inv.Status,
		CustomerEmail: inv.CustomerEmail,
		LineItemCount: len(items),
	}
}

package billing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/stripe-invoicer/internal/model"
)

// ErrorKind classifies a failed operation.
type ErrorKind string

const (
	// ErrorKindValidation is malformed caller input, caught before any
	// network call.
	ErrorKindValidation ErrorKind = "validation"
	// ErrorKindNotFound is a resource id unknown to the provider.
	ErrorKindNotFound ErrorKind = "not_found"
	// ErrorKindProvider is a transport failure or provider rejection.
	ErrorKindProvider ErrorKind = "provider"
)

// Status is the uniform envelope embedded in every operation result. No
// error ever propagates past a facade method; callers inspect Success.
type Status struct {
	Success   bool      `json:"success"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	Error     string    `json:"error,omitempty"`
}

func ok() Status {
	return Status{Success: true}
}

// Failure converts an error into a failed Status. It exists for packages
// that compose their own envelopes on top of the facades.
func Failure(err error) Status {
	return fail(err)
}

func fail(err error) Status {
	kind := ErrorKindProvider
	var verr *model.ValidationError
	var nferr *model.NotFoundError
	switch {
	case errors.As(err, &verr):
		kind = ErrorKindValidation
	case errors.As(err, &nferr):
		kind = ErrorKindNotFound
	}
	return Status{Success: false, ErrorKind: kind, Error: err.Error()}
}

// CustomerResult is the envelope for single-customer operations.
type CustomerResult struct {
	Status
	CustomerID string            `json:"customer_id,omitempty"`
	Email      string            `json:"email,omitempty"`
	Name       string            `json:"name,omitempty"`
	Phone      string            `json:"phone,omitempty"`
	Address    *model.Address    `json:"address,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Created    time.Time         `json:"created"`
	// Existing is set by GetOrCreateCustomer: true when the customer was
	// found rather than created.
	Existing bool `json:"existing,omitempty"`
	// Deleted is set by DeleteCustomer.
	Deleted bool `json:"deleted,omitempty"`
}

func customerResult(c *model.Customer) CustomerResult {
	return CustomerResult{
		Status:     ok(),
		CustomerID: c.ID,
		Email:      c.Email,
		Name:       c.Name,
		Phone:      c.Phone,
		Address:    c.Address,
		Metadata:   c.Metadata,
		Created:    c.Created,
	}
}

func customerFailure(err error) CustomerResult {
	return CustomerResult{Status: fail(err)}
}

// CustomerListResult is the envelope for customer listings.
type CustomerListResult struct {
	Status
	Customers []*model.Customer `json:"customers,omitempty"`
}

// InvoiceResult is the envelope for invoice creation. AmountDue is in
// decimal dollars; the minor-unit value never leaves the facade.
type InvoiceResult struct {
	Status
	InvoiceID     string              `json:"invoice_id,omitempty"`
	InvoiceNumber string              `json:"invoice_number,omitempty"`
	AmountDue     decimal.Decimal     `json:"amount_due,omitempty"`
	Currency      string              `json:"currency,omitempty"`
	PaymentLink   string              `json:"payment_link,omitempty"`
	PDFLink       string              `json:"pdf_link,omitempty"`
	InvoiceStatus model.InvoiceStatus `json:"status,omitempty"`
	CustomerEmail string              `json:"customer_email,omitempty"`
	LineItemCount int                 `json:"line_items_count,omitempty"`
}

func invoiceFailure(err error) InvoiceResult {
	return InvoiceResult{Status: fail(err)}
}

// InvoiceSummary is one row of an invoice listing.
type InvoiceSummary struct {
	ID            string              `json:"id"`
	Number        string              `json:"number"`
	CustomerEmail string              `json:"customer_email,omitempty"`
	Amount        decimal.Decimal     `json:"amount"`
	Status        model.InvoiceStatus `json:"status"`
	PaymentLink   string              `json:"payment_link,omitempty"`
	Created       time.Time           `json:"created"`
}

// InvoiceListResult is the envelope for invoice listings.
type InvoiceListResult struct {
	Status
	Invoices []InvoiceSummary `json:"invoices,omitempty"`
}

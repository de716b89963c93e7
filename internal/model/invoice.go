package model

import "time"

// InvoiceStatus is the provider-defined invoice lifecycle state. The provider
// owns transitions; this system only ever drives draft -> open -> sent.
type InvoiceStatus string

const (
	StatusDraft         InvoiceStatus = "draft"
	StatusOpen          InvoiceStatus = "open"
	StatusPaid          InvoiceStatus = "paid"
	StatusVoid          InvoiceStatus = "void"
	StatusUncollectible InvoiceStatus = "uncollectible"
)

// DefaultCurrency is used whenever a line item does not name one.
const DefaultCurrency = "usd"

// LineItem is a transient invoice line. Amount is in minor currency units
// (cents for USD); Quantity defaults to 1 when zero.
type LineItem struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Quantity    int64  `json:"quantity,omitempty"`
	Currency    string `json:"currency,omitempty"`
}

// Normalize fills in the quantity and currency defaults.
func (li LineItem) Normalize() LineItem {
	if li.Quantity == 0 {
		li.Quantity = 1
	}
	if li.Currency == "" {
		li.Currency = DefaultCurrency
	}
	return li
}

// Validate checks the line item before it is sent to the provider.
func (li LineItem) Validate() error {
	if li.Description == "" {
		return NewValidationError("description", nil, "required", "line item description is empty")
	}
	if li.Amount <= 0 {
		return NewValidationError("amount", li.Amount, "positive", "line item amount must be positive")
	}
	if li.Quantity < 0 {
		return NewValidationError("quantity", li.Quantity, "non-negative", "line item quantity must not be negative")
	}
	return nil
}

// CustomField is a provider-rendered header field on the hosted invoice.
// The provider accepts at most four.
type CustomField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MaxCustomFields is the provider's limit on invoice custom fields.
const MaxCustomFields = 4

// Invoice is the normalized view of a provider invoice. AmountDue is in
// minor currency units.
type Invoice struct {
	ID            string        `json:"invoice_id"`
	Number        string        `json:"invoice_number"`
	AmountDue     int64         `json:"amount_due"`
	Currency      string        `json:"currency"`
	Status        InvoiceStatus `json:"status"`
	CustomerID    string        `json:"customer_id"`
	CustomerEmail string        `json:"customer_email,omitempty"`
	PaymentLink   string        `json:"payment_link,omitempty"`
	PDFLink       string        `json:"pdf_link,omitempty"`
	Description   string        `json:"description,omitempty"`
	Created       time.Time     `json:"created,omitempty"`
}

package invoicing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/stripe-invoicer/pkg/invoicing"
)

func TestNew(t *testing.T) {
	client := invoicing.New("rk_test_123")
	require.NotNil(t, client)
	assert.NotNil(t, client.Customers)
	assert.NotNil(t, client.Invoices)
}

func TestNew_WithOptions(t *testing.T) {
	client := invoicing.New("rk_test_123",
		invoicing.WithBaseURL("http://localhost:12111"),
		invoicing.WithTimeout(5*time.Second),
	)
	require.NotNil(t, client)
}

func TestReexportedTypes(t *testing.T) {
	// Request types from the billing layer are usable directly.
	req := invoicing.QuickInvoiceRequest{
		CustomerEmail: "client@example.com",
		AmountDollars: decimal.NewFromFloat(250.00),
		Description:   "Consulting services",
	}
	assert.Equal(t, "client@example.com", req.CustomerEmail)

	item := invoicing.LineItem{Description: "Design work", Amount: 120000}
	assert.Empty(t, item.Currency)
	assert.Equal(t, "usd", item.Normalize().Currency)
}

func TestErrorKinds(t *testing.T) {
	kinds := []invoicing.ErrorKind{
		invoicing.ErrorKindValidation,
		invoicing.ErrorKindNotFound,
		invoicing.ErrorKindProvider,
	}
	for _, k := range kinds {
		assert.NotEmpty(t, k)
	}
}

package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/stripe-invoicer/internal/model"
	"github.com/rezonia/stripe-invoicer/internal/provider"
)

// apiServer fakes the provider's REST API for one handler.
func apiServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *provider.StripeClient) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, provider.NewStripeClient("rk_test_123", provider.WithBaseURL(srv.URL))
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestGetCustomer_WithAddress(t *testing.T) {
	_, client := apiServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/customers/cus_123", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"id":      "cus_123",
			"object":  "customer",
			"email":   "alice@example.com",
			"name":    "Alice",
			"created": 1700000000,
			"address": map[string]any{
				"line1":       "1 Main St",
				"city":        "Springfield",
				"postal_code": "62704",
				"country":     "US",
			},
		})
	})

	c, err := client.GetCustomer(context.Background(), "cus_123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", c.Email)
	require.NotNil(t, c.Address)
	assert.Equal(t, "1 Main St", c.Address.Line1)
	assert.Equal(t, "Springfield", c.Address.City)
}

func TestGetCustomer_WithoutAddress(t *testing.T) {
	_, client := apiServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"id":      "cus_456",
			"object":  "customer",
			"email":   "bob@example.com",
			"created": 1700000000,
			"address": nil,
		})
	})

	c, err := client.GetCustomer(context.Background(), "cus_456")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", c.Email)
	assert.Nil(t, c.Address)
}

func TestGetCustomer_Missing(t *testing.T) {
	_, client := apiServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]any{
			"error": map[string]any{
				"type":    "invalid_request_error",
				"code":    "resource_missing",
				"message": "No such customer: 'cus_missing'",
			},
		})
	})

	_, err := client.GetCustomer(context.Background(), "cus_missing")
	require.Error(t, err)
	var nferr *model.NotFoundError
	require.ErrorAs(t, err, &nferr)
	assert.Equal(t, "customer", nferr.Resource)
}

func TestCreateInvoice_DraftParams(t *testing.T) {
	var form map[string][]string
	_, client := apiServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/invoices", r.URL.Path)
		require.NoError(t, r.ParseForm())
		form = r.PostForm

		writeJSON(t, w, http.StatusOK, map[string]any{
			"id":         "in_123",
			"object":     "invoice",
			"number":     "INV-0001",
			"amount_due": 25000,
			"currency":   "usd",
			"status":     "draft",
			"created":    1700000000,
			"customer":   map[string]any{"id": "cus_123", "email": "alice@example.com"},
		})
	})

	inv, err := client.CreateInvoice(context.Background(), provider.InvoiceParams{
		CustomerID:   "cus_123",
		Description:  "Consulting",
		DaysUntilDue: 15,
		Number:       "INV-0001",
		Footer:       "Thank you",
	})
	require.NoError(t, err)
	assert.Equal(t, "in_123", inv.ID)
	assert.Equal(t, model.StatusDraft, inv.Status)
	assert.Equal(t, int64(25000), inv.AmountDue)

	// The draft request sweeps pending items and stays manual.
	assert.Equal(t, []string{"cus_123"}, form["customer"])
	assert.Equal(t, []string{"include"}, form["pending_invoice_items_behavior"])
	assert.Equal(t, []string{"send_invoice"}, form["collection_method"])
	assert.Equal(t, []string{"false"}, form["auto_advance"])
	assert.Equal(t, []string{"15"}, form["days_until_due"])
	assert.Equal(t, []string{"INV-0001"}, form["number"])
	assert.Equal(t, []string{"Thank you"}, form["footer"])
}

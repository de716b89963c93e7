package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/stripe-invoicer/internal/provider"
	"github.com/rezonia/stripe-invoicer/internal/provider/providertest"
	"github.com/rezonia/stripe-invoicer/internal/server"
)

func newTestServer(t *testing.T) (*server.Server, *providertest.Fake) {
	t.Helper()
	fake := providertest.New()
	srv := server.NewServer(&server.Config{Address: ":0"}, server.WithProviderClient(fake))
	return srv, fake
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var payload map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	}
	return w, payload
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	w, payload := doJSON(t, srv.Handler(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", payload["status"])
	assert.NotEmpty(t, payload["time"])
}

func TestQuickInvoiceEndpoint(t *testing.T) {
	srv, fake := newTestServer(t)

	w, payload := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/invoices/quick", `{
		"customer_email": "alice@example.com",
		"amount": "250.00",
		"description": "Consulting services"
	}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "250", payload["amount_due"])
	assert.Equal(t, "open", payload["status"])
	assert.NotEmpty(t, payload["payment_link"])
	assert.Contains(t, fake.Calls(), "invoice.send")
}

func TestQuickInvoiceEndpoint_ValidationError(t *testing.T) {
	srv, fake := newTestServer(t)

	w, payload := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/invoices/quick", `{
		"customer_email": "not-an-email",
		"amount": "10.00",
		"description": "Work"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "validation", payload["error_kind"])
	assert.Zero(t, fake.CallCount())
}

func TestQuickInvoiceEndpoint_MalformedBody(t *testing.T) {
	srv, fake := newTestServer(t)

	w, _ := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/invoices/quick", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, fake.CallCount())
}

func TestCreateInvoiceEndpoint(t *testing.T) {
	srv, fake := newTestServer(t)

	cust, err := fake.CreateCustomer(t.Context(), provider.CustomerParams{Email: "bob@example.com"})
	require.NoError(t, err)

	w, payload := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/invoices", `{
		"customer_id": "`+cust.ID+`",
		"items": [
			{"description": "Design work", "amount": 120000},
			{"description": "Hosting", "amount": 2500, "quantity": 2}
		],
		"due_days": 15,
		"no_send": true
	}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "1250", payload["amount_due"])
	assert.Equal(t, float64(2), payload["line_items_count"])
	assert.NotContains(t, fake.Calls(), "invoice.send")
}

func TestCreateInvoiceEndpoint_EmptyItems(t *testing.T) {
	srv, fake := newTestServer(t)

	w, payload := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/invoices", `{
		"customer_id": "cus_000001",
		"items": []
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", payload["error_kind"])
	assert.Zero(t, fake.CallCount())
}

func TestListInvoicesEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		w, _ := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/invoices/quick", `{
			"customer_email": "`+email+`",
			"amount": "10.00",
			"description": "Work",
			"no_send": true
		}`)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, payload := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/invoices?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, payload["success"])
	assert.Len(t, payload["invoices"], 2)
}

func TestCustomerLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	// Create
	w, created := doJSON(t, h, http.MethodPost, "/api/v1/customers", `{
		"email": "carol@example.com",
		"name": "Carol"
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	id, _ := created["customer_id"].(string)
	require.NotEmpty(t, id)

	// Get
	w, got := doJSON(t, h, http.MethodGet, "/api/v1/customers/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "carol@example.com", got["email"])

	// Update
	w, updated := doJSON(t, h, http.MethodPatch, "/api/v1/customers/"+id, `{"name": "Carol Jones"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Carol Jones", updated["name"])

	// List
	w, listed := doJSON(t, h, http.MethodGet, "/api/v1/customers?email=carol@example.com", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, listed["customers"], 1)

	// Delete
	w, deleted := doJSON(t, h, http.MethodDelete, "/api/v1/customers/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, deleted["deleted"])

	// Gone
	w, _ = doJSON(t, h, http.MethodGet, "/api/v1/customers/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCustomer_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	w, payload := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/customers/cus_missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", payload["error_kind"])
}

func TestProviderFailure_MapsToBadGateway(t *testing.T) {
	srv, fake := newTestServer(t)
	fake.Fail["customer.create"] = assert.AnError

	w, payload := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/customers", `{
		"email": "dave@example.com"
	}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "provider", payload["error_kind"])
}

package billing

import (
	"context"
	"net/mail"

	"github.com/rezonia/stripe-invoicer/internal/model"
	"github.com/rezonia/stripe-invoicer/internal/provider"
)

// DefaultListLimit is used when a listing is requested without a limit.
const DefaultListLimit = 10

// CustomerManager maps customer lifecycle operations onto provider calls
// and normalizes every outcome into the result envelope. It holds no state
// beyond the provider client, so it is safe for concurrent use.
type CustomerManager struct {
	client provider.Client
}

// NewCustomerManager creates a customer facade over the given provider.
func NewCustomerManager(client provider.Client) *CustomerManager {
	return &CustomerManager{client: client}
}

// CreateCustomerRequest carries the fields for a new customer record.
type CreateCustomerRequest struct {
	Email    string            `json:"email"`
	Name     string            `json:"name,omitempty"`
	Phone    string            `json:"phone,omitempty"`
	Address  *model.Address    `json:"address,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func validateEmail(email string) error {
	if email == "" {
		return model.NewValidationError("email", nil, "required", "customer email is empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.NewValidationError("email", email, "format", "customer email is malformed")
	}
	return nil
}

// CreateCustomer creates a new customer record with the provider.
func (m *CustomerManager) CreateCustomer(ctx context.Context, req CreateCustomerRequest) CustomerResult {
	if err := validateEmail(req.Email); err != nil {
		return customerFailure(err)
	}

	c, err := m.client.CreateCustomer(ctx, provider.CustomerParams{
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		Metadata: req.Metadata,
	})
	if err != nil {
		return customerFailure(err)
	}
	return customerResult(c)
}

// GetOrCreateCustomer looks a customer up by email and creates one with the
// given name when none exists. When several customers share the email the
// provider's first match wins; the lookup is deterministic for a stable
// provider ordering, so calling twice returns the same id.
func (m *CustomerManager) GetOrCreateCustomer(ctx context.Context, email, name string) CustomerResult {
	if err := validateEmail(email); err != nil {
		return customerFailure(err)
	}

	matches, err := m.client.ListCustomers(ctx, 1, email)
	if err != nil {
		return customerFailure(err)
	}
	if len(matches) > 0 {
		res := customerResult(matches[0])
		res.Existing = true
		return res
	}

	res := m.CreateCustomer(ctx, CreateCustomerRequest{Email: email, Name: name})
	res.Existing = false
	return res
}

// UpdateCustomer applies a partial update. Unknown ids are reported as
// not-found failures.
func (m *CustomerManager) UpdateCustomer(ctx context.Context, customerID string, update model.CustomerUpdate) CustomerResult {
	if customerID == "" {
		return customerFailure(model.NewValidationError("customer_id", nil, "required", "customer id is empty"))
	}
	if update.IsEmpty() {
		return customerFailure(model.NewValidationError("update", nil, "non-empty", "no fields to update"))
	}
	if update.Email != nil {
		if err := validateEmail(*update.Email); err != nil {
			return customerFailure(err)
		}
	}

	c, err := m.client.UpdateCustomer(ctx, customerID, update)
	if err != nil {
		return customerFailure(err)
	}
	return customerResult(c)
}

// GetCustomer retrieves a single customer by id.
func (m *CustomerManager) GetCustomer(ctx context.Context, customerID string) CustomerResult {
	if customerID == "" {
		return customerFailure(model.NewValidationError("customer_id", nil, "required", "customer id is empty"))
	}

	c, err := m.client.GetCustomer(ctx, customerID)
	if err != nil {
		return customerFailure(err)
	}
	return customerResult(c)
}

// ListCustomers returns up to limit customers, optionally filtered by
// email. The sequence is finite and non-restartable; limit 0 means the
// default page size.
func (m *CustomerManager) ListCustomers(ctx context.Context, limit int64, email string) CustomerListResult {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	customers, err := m.client.ListCustomers(ctx, limit, email)
	if err != nil {
		return CustomerListResult{Status: fail(err)}
	}
	return CustomerListResult{Status: ok(), Customers: customers}
}

// DeleteCustomer removes a customer. Deleting an id the provider no longer
// knows reports not-found rather than silent success.
func (m *CustomerManager) DeleteCustomer(ctx context.Context, customerID string) CustomerResult {
	if customerID == "" {
		return customerFailure(model.NewValidationError("customer_id", nil, "required", "customer id is empty"))
	}

	c, err := m.client.DeleteCustomer(ctx, customerID)
	if err != nil {
		return customerFailure(err)
	}

	res := customerResult(c)
	res.Deleted = true
	return res
}

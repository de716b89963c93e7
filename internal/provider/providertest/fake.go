// Package providertest contains an in-memory provider.Client for tests.
// The fake records every call so tests can assert that validation failures
// never reach the network.
package providertest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rezonia/stripe-invoicer/internal/model"
	"github.com/rezonia/stripe-invoicer/internal/money"
	"github.com/rezonia/stripe-invoicer/internal/provider"
)

// Fake is a recording, in-memory payment provider. The zero value is not
// usable; create one with New.
type Fake struct {
	mu sync.Mutex

	customers    []*model.Customer
	invoices     []*model.Invoice
	pendingItems map[string][]model.LineItem
	sent         map[string]bool
	items        []model.LineItem
	lastParams   provider.InvoiceParams

	calls []string
	seq   int

	// Fail makes the named operation (e.g. "invoice.finalize") return the
	// given error.
	Fail map[string]error
}

// New creates an empty fake provider.
func New() *Fake {
	return &Fake{
		pendingItems: make(map[string][]model.LineItem),
		sent:         make(map[string]bool),
		Fail:         make(map[string]error),
	}
}

// Calls returns the operations invoked so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how many provider operations were issued.
func (f *Fake) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// Items returns every line item created so far, in order.
func (f *Fake) Items() []model.LineItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.LineItem(nil), f.items...)
}

// LastInvoiceParams returns the params of the most recent invoice draft.
func (f *Fake) LastInvoiceParams() provider.InvoiceParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastParams
}

// Sent reports whether a send was requested for the invoice id.
func (f *Fake) Sent(invoiceID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[invoiceID]
}

func (f *Fake) record(op string) error {
	f.calls = append(f.calls, op)
	if err, ok := f.Fail[op]; ok {
		return err
	}
	return nil
}

func (f *Fake) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s_%06d", prefix, f.seq)
}

func (f *Fake) CreateCustomer(ctx context.Context, params provider.CustomerParams) (*model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("customer.create"); err != nil {
		return nil, err
	}

	c := &model.Customer{
		ID:       f.nextID("cus"),
		Email:    params.Email,
		Name:     params.Name,
		Phone:    params.Phone,
		Address:  params.Address,
		Metadata: params.Metadata,
		Created:  time.Now().UTC(),
	}
	f.customers = append(f.customers, c)
	return clone(c), nil
}

func (f *Fake) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("customer.retrieve"); err != nil {
		return nil, err
	}

	for _, c := range f.customers {
		if c.ID == id {
			return clone(c), nil
		}
	}
	return nil, model.NewNotFoundError("customer", id)
}

func (f *Fake) UpdateCustomer(ctx context.Context, id string, update model.CustomerUpdate) (*model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("customer.update"); err != nil {
		return nil, err
	}

	for _, c := range f.customers {
		if c.ID != id {
			continue
		}
		if update.Email != nil {
			c.Email = *update.Email
		}
		if update.Name != nil {
			c.Name = *update.Name
		}
		if update.Phone != nil {
			c.Phone = *update.Phone
		}
		if update.Address != nil {
			c.Address = update.Address
		}
		for k, v := range update.Metadata {
			if c.Metadata == nil {
				c.Metadata = make(map[string]string)
			}
			c.Metadata[k] = v
		}
		return clone(c), nil
	}
	return nil, model.NewNotFoundError("customer", id)
}

func (f *Fake) DeleteCustomer(ctx context.Context, id string) (*model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("customer.delete"); err != nil {
		return nil, err
	}

	for i, c := range f.customers {
		if c.ID == id {
			f.customers = append(f.customers[:i], f.customers[i+1:]...)
			return clone(c), nil
		}
	}
	return nil, model.NewNotFoundError("customer", id)
}

func (f *Fake) ListCustomers(ctx context.Context, limit int64, email string) ([]*model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("customer.list"); err != nil {
		return nil, err
	}

	var out []*model.Customer
	for _, c := range f.customers {
		if email != "" && !strings.EqualFold(c.Email, email) {
			continue
		}
		out = append(out, clone(c))
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (f *Fake) CreateInvoiceItem(ctx context.Context, customerID string, item model.LineItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("invoiceitem.create"); err != nil {
		return err
	}

	if f.findCustomer(customerID) == nil {
		return model.NewNotFoundError("customer", customerID)
	}
	item = item.Normalize()
	f.pendingItems[customerID] = append(f.pendingItems[customerID], item)
	f.items = append(f.items, item)
	return nil
}

func (f *Fake) CreateInvoice(ctx context.Context, params provider.InvoiceParams) (*model.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("invoice.create"); err != nil {
		return nil, err
	}

	cust := f.findCustomer(params.CustomerID)
	if cust == nil {
		return nil, model.NewNotFoundError("customer", params.CustomerID)
	}
	f.lastParams = params

	// Drafting sweeps the customer's pending items, like the provider does.
	var amounts []int64
	currency := model.DefaultCurrency
	for _, item := range f.pendingItems[params.CustomerID] {
		amounts = append(amounts, item.Amount*item.Quantity)
		currency = item.Currency
	}
	delete(f.pendingItems, params.CustomerID)

	id := f.nextID("in")
	number := params.Number
	if number == "" {
		number = fmt.Sprintf("INV-%04d", f.seq)
	}

	inv := &model.Invoice{
		ID:            id,
		Number:        number,
		AmountDue:     money.Sum(amounts),
		Currency:      currency,
		Status:        model.StatusDraft,
		CustomerID:    cust.ID,
		CustomerEmail: cust.Email,
		Description:   params.Description,
		Created:       time.Now().UTC(),
	}
	f.invoices = append(f.invoices, inv)
	return cloneInvoice(inv), nil
}

func (f *Fake) FinalizeInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("invoice.finalize"); err != nil {
		return nil, err
	}

	inv := f.findInvoice(id)
	if inv == nil {
		return nil, model.NewNotFoundError("invoice", id)
	}
	inv.Status = model.StatusOpen
	inv.PaymentLink = "https://pay.example.com/" + inv.ID
	inv.PDFLink = "https://pay.example.com/" + inv.ID + "/pdf"
	return cloneInvoice(inv), nil
}

func (f *Fake) SendInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("invoice.send"); err != nil {
		return nil, err
	}

	inv := f.findInvoice(id)
	if inv == nil {
		return nil, model.NewNotFoundError("invoice", id)
	}
	f.sent[id] = true
	return cloneInvoice(inv), nil
}

func (f *Fake) ListInvoices(ctx context.Context, customerID string, limit int64) ([]*model.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("invoice.list"); err != nil {
		return nil, err
	}

	var out []*model.Invoice
	// Most recent first, like the provider.
	for i := len(f.invoices) - 1; i >= 0; i-- {
		inv := f.invoices[i]
		if customerID != "" && inv.CustomerID != customerID {
			continue
		}
		out = append(out, cloneInvoice(inv))
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (f *Fake) findCustomer(id string) *model.Customer {
	for _, c := range f.customers {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (f *Fake) findInvoice(id string) *model.Invoice {
	for _, inv := range f.invoices {
		if inv.ID == id {
			return inv
		}
	}
	return nil
}

func clone(c *model.Customer) *model.Customer {
	out := *c
	return &out
}

func cloneInvoice(inv *model.Invoice) *model.Invoice {
	out := *inv
	return &out
}

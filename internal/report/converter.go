package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/stripe-invoicer/internal/billing"
	"github.com/rezonia/stripe-invoicer/internal/model"
	"github.com/rezonia/stripe-invoicer/internal/money"
)

// DefaultHourlyRate is applied when a conversion request names no rate.
var DefaultHourlyRate = decimal.NewFromInt(40)

// descriptionLimit leaves room in the provider's 500-character line item
// description for the duration and completion lines.
const descriptionLimit = 350

// invoiceNumberBaseLen keeps the generated unique number under the
// provider's 26-character limit once the timestamp suffix is appended.
const invoiceNumberBaseLen = 19

// Enhancer rewrites a task description for client-facing invoices.
// Implementations must degrade gracefully: on failure they return the
// original description.
type Enhancer interface {
	Enhance(ctx context.Context, title, description string) string
}

// Converter turns parsed billing reports into detailed invoices through the
// billing facades.
type Converter struct {
	customers *billing.CustomerManager
	invoices  *billing.InvoiceCreator
	enhancer  Enhancer
	now       func() time.Time
}

// ConverterOption configures the converter
type ConverterOption func(*Converter)

// WithEnhancer enables LLM enhancement of task descriptions.
func WithEnhancer(e Enhancer) ConverterOption {
	return func(c *Converter) {
		c.enhancer = e
	}
}

// WithClock overrides the time source used for unique invoice numbers.
func WithClock(now func() time.Time) ConverterOption {
	return func(c *Converter) {
		c.now = now
	}
}

// NewConverter creates a report converter over the billing facades.
func NewConverter(customers *billing.CustomerManager, invoices *billing.InvoiceCreator, opts ...ConverterOption) *Converter {
	c := &Converter{
		customers: customers,
		invoices:  invoices,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InvoiceRequest carries the conversion parameters.
type InvoiceRequest struct {
	CustomerEmail string
	CustomerName  string
	HourlyRate    decimal.Decimal
	NoSend        bool
}

// CreateInvoiceFromFile parses a report file and invoices it.
func (c *Converter) CreateInvoiceFromFile(ctx context.Context, path string, req InvoiceRequest) billing.InvoiceResult {
	rep, err := ParseFile(path)
	if err != nil {
		return billing.InvoiceResult{Status: billing.Failure(model.NewValidationError("report", path, "parse", err.Error()))}
	}
	return c.CreateInvoice(ctx, rep, req)
}

// CreateInvoice builds one line item per task (hours times the hourly
// rate), resolves the customer by email, and issues a detailed invoice with
// custom header fields, a summary footer, and report metadata.
func (c *Converter) CreateInvoice(ctx context.Context, rep *Report, req InvoiceRequest) billing.InvoiceResult {
	if len(rep.Tasks) == 0 {
		return billing.InvoiceResult{Status: billing.Failure(model.NewValidationError("report", rep.Project, "non-empty", "billing report has no tasks"))}
	}

	rate := req.HourlyRate
	if !money.IsPositive(rate) {
		rate = DefaultHourlyRate
	}

	customer := c.customers.GetOrCreateCustomer(ctx, req.CustomerEmail, req.CustomerName)
	if !customer.Success {
		return billing.InvoiceResult{Status: customer.Status}
	}

	items := make([]model.LineItem, 0, len(rep.Tasks))
	for i, task := range rep.Tasks {
		description := task.Description
		if c.enhancer != nil {
			description = c.enhancer.Enhance(ctx, task.Title, description)
		}
		items = append(items, model.LineItem{
			Description: taskDescription(i+1, task, description),
			Amount:      money.HoursToMinorUnits(task.DurationHours, rate),
		})
	}

	totalDue := rep.TotalHours.Mul(rate).Round(2)

	return c.invoices.CreateInvoice(ctx, billing.InvoiceRequest{
		CustomerID: customer.CustomerID,
		Items:      items,
		Description: fmt.Sprintf("BILLING REPORT: %s | Period: %s | Tasks: %d",
			rep.Project, rep.BillingPeriod, rep.TotalTasks),
		InvoiceNumber: c.uniqueInvoiceNumber(rep.InvoiceNumber),
		CustomFields: []model.CustomField{
			{Name: "Project", Value: rep.Project},
			{Name: "Billing Period", Value: rep.BillingPeriod},
			{Name: "Total Hours", Value: fmt.Sprintf("%s hours", rep.TotalHours)},
			{Name: "Tasks Completed", Value: strconv.Itoa(rep.TotalTasks)},
		},
		Footer: summaryFooter(rep, rate, totalDue),
		Metadata: map[string]string{
			"project":                 rep.Project,
			"billing_period":          rep.BillingPeriod,
			"total_tasks":             strconv.Itoa(rep.TotalTasks),
			"total_hours":             rep.TotalHours.String(),
			"hourly_rate":             rate.String(),
			"original_invoice_number": rep.InvoiceNumber,
		},
		NoSend: req.NoSend,
	})
}

// taskDescription formats a line item description matching the report
// layout, truncating long descriptions to stay under the provider limit.
func taskDescription(number int, task Task, description string) string {
	if runes := []rune(description); len(runes) > descriptionLimit {
		description = string(runes[:descriptionLimit]) + "..."
	}
	return fmt.Sprintf("%d. %s\n   Duration: %d mins\n   Completed: %s\n   \n   Description: %s",
		number, task.Title, task.DurationMinutes, task.CompletedDate, description)
}

func summaryFooter(rep *Report, rate, totalDue decimal.Decimal) string {
	return fmt.Sprintf(`SUMMARY:
- Total tasks completed: %d
- Project: %s
- Total hours: %s
- Rate: $%s/hr
- Amount due: $%s
- Report generated: %s`,
		rep.TotalTasks, rep.Project, rep.TotalHours, rate, totalDue.StringFixed(2), rep.GeneratedDate)
}

// uniqueInvoiceNumber suffixes the report's number with the last six digits
// of the current unix timestamp so re-converting a report cannot collide.
func (c *Converter) uniqueInvoiceNumber(base string) string {
	if base == "" {
		return ""
	}
	if runes := []rune(base); len(runes) > invoiceNumberBaseLen {
		base = string(runes[:invoiceNumberBaseLen])
	}
	ts := strconv.FormatInt(c.now().Unix(), 10)
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}
	return base + "-" + ts
}

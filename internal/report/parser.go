// Package report parses plain-text billing reports and converts them into
// detailed provider invoices, one line item per completed task.
package report

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Task is one completed task from a billing report.
type Task struct {
	Number          int             `json:"number"`
	Title           string          `json:"title"`
	DurationMinutes int             `json:"duration_minutes"`
	DurationHours   decimal.Decimal `json:"duration_hours"`
	CompletedDate   string          `json:"completed_date"`
	Description     string          `json:"description"`
}

// Report is the structured form of a billing report text file.
type Report struct {
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	GeneratedDate string          `json:"generated_date,omitempty"`
	BillingPeriod string          `json:"billing_period,omitempty"`
	Project       string          `json:"project,omitempty"`
	TotalTasks    int             `json:"total_tasks"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	Tasks         []Task          `json:"tasks"`
}

// Regex patterns for the billing report format
var (
	projectPattern    = regexp.MustCompile(`BILLING REPORT: (.*)`)
	invoiceNumPattern = regexp.MustCompile(`Invoice Number: (.*)`)
	generatedPattern  = regexp.MustCompile(`Generated: (.*)`)
	periodPattern     = regexp.MustCompile(`Billing Period: (.*)`)
	totalTasksPattern = regexp.MustCompile(`Total Completed Tasks: (\d+)`)
	totalHoursPattern = regexp.MustCompile(`Total hours: ([\d.]+)`)
	amountDuePattern  = regexp.MustCompile(`Amount due: \$([\d.]+)`)

	taskSeparatorPattern = regexp.MustCompile(`\n\s*-{40}\s*\n`)
	taskPattern          = regexp.MustCompile(`(?s)(\d+)\.\s+(.+?)\n\s+Duration: (\d+) mins\n\s+Completed: ([\d/]+)\n\s+\n\s+Description: (.+?)(?:\n|$)`)
)

var sixty = decimal.NewFromInt(60)

// Parse reads a billing report from r.
func Parse(r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	content := string(data)

	rep := &Report{}
	rep.Project = firstMatch(projectPattern, content)
	rep.InvoiceNumber = firstMatch(invoiceNumPattern, content)
	rep.GeneratedDate = firstMatch(generatedPattern, content)
	rep.BillingPeriod = firstMatch(periodPattern, content)

	if m := totalTasksPattern.FindStringSubmatch(content); len(m) > 1 {
		rep.TotalTasks, _ = strconv.Atoi(m[1])
	}
	if m := totalHoursPattern.FindStringSubmatch(content); len(m) > 1 {
		rep.TotalHours, _ = decimal.NewFromString(m[1])
	}
	if m := amountDuePattern.FindStringSubmatch(content); len(m) > 1 {
		rep.AmountDue, _ = decimal.NewFromString(m[1])
	}

	for _, block := range taskSeparatorPattern.Split(content, -1) {
		m := taskPattern.FindStringSubmatch(strings.TrimSpace(block))
		if m == nil {
			continue
		}

		number, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[3])
		description := strings.TrimSpace(m[5])
		description = strings.ReplaceAll(description, "\n", " ")

		rep.Tasks = append(rep.Tasks, Task{
			Number:          number,
			Title:           strings.TrimSpace(m[2]),
			DurationMinutes: minutes,
			DurationHours:   decimal.NewFromInt(int64(minutes)).Div(sixty).Round(2),
			CompletedDate:   strings.TrimSpace(m[4]),
			Description:     description,
		})
	}

	if rep.Project == "" && len(rep.Tasks) == 0 {
		return nil, fmt.Errorf("not a billing report: no header or task blocks found")
	}
	return rep, nil
}

// ParseFile reads and parses a billing report file.
func ParseFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func firstMatch(p *regexp.Regexp, content string) string {
	if m := p.FindStringSubmatch(content); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

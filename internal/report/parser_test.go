package report_test

import (
	"strings"
	"testing"

	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/stripe-invoicer/internal/report"
)

const sampleReport = `BILLING REPORT: Website Redesign
Invoice Number: INV-2025-001
Generated: 2025-01-31
Billing Period: January 2025
Total Completed Tasks: 2

COMPLETED TASKS:

1.  Fix deployment pipeline
    Duration: 90 mins
    Completed: 1/15/2025

    Description: Repaired the CI pipeline after the runner upgrade broke artifact uploads.
    ----------------------------------------
2.  Write onboarding docs
    Duration: 30 mins
    Completed: 1/20/2025

    Description: Drafted onboarding documentation for new contributors.
    ----------------------------------------

SUMMARY:
- Total tasks completed: 2
- Total hours: 2.0
- Amount due: $80.00
`

func TestParse(t *testing.T) {
	rep, err := report.Parse(strings.NewReader(sampleReport))
	require.NoError(t, err)

	assert.Equal(t, "Website Redesign", rep.Project)
	assert.Equal(t, "INV-2025-001", rep.InvoiceNumber)
	assert.Equal(t, "2025-01-31", rep.GeneratedDate)
	assert.Equal(t, "January 2025", rep.BillingPeriod)
	assert.Equal(t, 2, rep.TotalTasks)
	assert.True(t, rep.TotalHours.Equal(dec.RequireFromString("2.0")))
	assert.True(t, rep.AmountDue.Equal(dec.RequireFromString("80.00")))

	require.Len(t, rep.Tasks, 2)

	first := rep.Tasks[0]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, "Fix deployment pipeline", first.Title)
	assert.Equal(t, 90, first.DurationMinutes)
	assert.True(t, first.DurationHours.Equal(dec.RequireFromString("1.5")))
	assert.Equal(t, "1/15/2025", first.CompletedDate)
	assert.Contains(t, first.Description, "Repaired the CI pipeline")

	second := rep.Tasks[1]
	assert.Equal(t, 2, second.Number)
	assert.Equal(t, 30, second.DurationMinutes)
	assert.True(t, second.DurationHours.Equal(dec.RequireFromString("0.5")))
}

func TestParse_HeaderOnly(t *testing.T) {
	rep, err := report.Parse(strings.NewReader("BILLING REPORT: Empty Project\nTotal Completed Tasks: 0\n"))
	require.NoError(t, err)

	assert.Equal(t, "Empty Project", rep.Project)
	assert.Empty(t, rep.Tasks)
}

func TestParse_NotAReport(t *testing.T) {
	_, err := report.Parse(strings.NewReader("just some random text"))
	require.Error(t, err)
}

func TestParse_DurationRounding(t *testing.T) {
	input := `BILLING REPORT: Rounding
1.  Quick call
    Duration: 25 mins
    Completed: 2/1/2025

    Description: Short sync.
`
	rep, err := report.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rep.Tasks, 1)
	// 25/60 rounds to 0.42 hours
	assert.True(t, rep.Tasks[0].DurationHours.Equal(dec.RequireFromString("0.42")))
}

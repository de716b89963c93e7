package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rezonia/stripe-invoicer/internal/llm"
	"github.com/rezonia/stripe-invoicer/internal/report"
)

var (
	reportEmail   string
	reportName    string
	reportRate    string
	reportEnhance bool
	reportNoSend  bool
	reportTimeout time.Duration
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Convert a billing report into a detailed invoice",
	Long: `Parse a plain-text billing report and issue an itemized invoice.

Each task becomes a line item billed at the hourly rate. The invoice
carries the project, billing period, and hour totals as custom header
fields, and a per-task summary in the footer.

With --enhance, task descriptions are rewritten into client-facing
prose by an LLM (requires --llm-api-key or LLM_API_KEY). Enhancement
is best-effort: parsing and invoicing proceed even when the LLM is
unreachable.

Examples:
  stripe-invoicer report march.txt --email client@example.com
  stripe-invoicer report march.txt --email client@example.com --rate 85
  stripe-invoicer report march.txt --email client@example.com --enhance`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportEmail, "email", "", "Customer email (required)")
	reportCmd.Flags().StringVar(&reportName, "name", "", "Customer name when creating a new customer")
	reportCmd.Flags().StringVar(&reportRate, "rate", "", "Hourly rate in dollars (default 40)")
	reportCmd.Flags().BoolVar(&reportEnhance, "enhance", false, "Rewrite task descriptions with an LLM")
	reportCmd.Flags().BoolVar(&reportNoSend, "no-send", false, "Finalize the invoice without emailing it")
	reportCmd.Flags().DurationVar(&reportTimeout, "timeout", 2*time.Minute, "Operation timeout")

	_ = reportCmd.MarkFlagRequired("email")
}

func runReport(cmd *cobra.Command, args []string) error {
	var rate decimal.Decimal
	if reportRate != "" {
		parsed, err := decimal.NewFromString(reportRate)
		if err != nil {
			return fmt.Errorf("invalid rate %q: %w", reportRate, err)
		}
		rate = parsed
	}

	customers, invoices, err := newFacades()
	if err != nil {
		return err
	}

	var opts []report.ConverterOption
	if reportEnhance {
		if llmAPIKey == "" {
			return fmt.Errorf("--enhance needs an LLM API key: pass --llm-api-key or set LLM_API_KEY")
		}
		var clientOpts []llm.ClientOption
		if llmBaseURL != "" {
			clientOpts = append(clientOpts, llm.WithBaseURL(llmBaseURL))
		}
		client := llm.NewClient(llmAPIKey, clientOpts...)
		opts = append(opts, report.WithEnhancer(llm.NewEnhancer(client, llmModel)))
		printVerbose("LLM enhancement enabled (model: %s)\n", llmModel)
	}

	converter := report.NewConverter(customers, invoices, opts...)

	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	printVerbose("Converting report: %s\n", args[0])

	result := converter.CreateInvoiceFromFile(ctx, args[0], report.InvoiceRequest{
		CustomerEmail: reportEmail,
		CustomerName:  reportName,
		HourlyRate:    rate,
		NoSend:        reportNoSend,
	})
	return emit(result, result.Status)
}

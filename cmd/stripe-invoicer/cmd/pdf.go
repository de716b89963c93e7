package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/stripe-invoicer/internal/pdfcheck"
)

var (
	pdfOutput  string
	pdfTimeout time.Duration
)

var pdfCmd = &cobra.Command{
	Use:   "pdf <url>",
	Short: "Download and validate an invoice PDF",
	Long: `Download the invoice PDF at the given URL and verify it is a
well-formed document before saving it.

The URL comes from the pdf_link field of a created invoice.

Examples:
  stripe-invoicer pdf https://pay.stripe.com/invoice/.../pdf -o invoice.pdf
  stripe-invoicer pdf https://pay.stripe.com/invoice/.../pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runPDF,
}

func init() {
	rootCmd.AddCommand(pdfCmd)

	pdfCmd.Flags().StringVarP(&pdfOutput, "output", "o", "invoice.pdf", "Output file")
	pdfCmd.Flags().DurationVar(&pdfTimeout, "timeout", pdfcheck.DefaultTimeout, "Download timeout")
}

func runPDF(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), pdfTimeout)
	defer cancel()

	fetcher := pdfcheck.NewFetcher(pdfcheck.WithTimeout(pdfTimeout))

	printVerbose("Downloading: %s\n", args[0])

	data, err := fetcher.FetchAndValidate(ctx, args[0])
	if err != nil {
		return err
	}

	pages, err := pdfcheck.PageCount(data)
	if err != nil {
		return err
	}

	if err := pdfcheck.Save(pdfOutput, data); err != nil {
		return err
	}

	fmt.Printf("Saved %s (%d bytes, %d pages)\n", pdfOutput, len(data), pages)
	return nil
}

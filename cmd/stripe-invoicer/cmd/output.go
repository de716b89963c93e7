package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rezonia/stripe-invoicer/internal/billing"
)

// printResult renders an operation result in the selected output format.
func printResult(v any) error {
	switch outputFormat {
	case "json":
		return outputJSON(v)
	case "table":
		return outputTable(v)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func outputTable(v any) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	switch r := v.(type) {
	case billing.InvoiceResult:
		fmt.Fprintln(tw, "ID\tNUMBER\tAMOUNT\tSTATUS\tCUSTOMER\tPAYMENT LINK")
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.InvoiceID, r.InvoiceNumber, r.AmountDue.StringFixed(2),
			r.InvoiceStatus, r.CustomerEmail, r.PaymentLink)

	case billing.InvoiceListResult:
		fmt.Fprintln(tw, "ID\tNUMBER\tAMOUNT\tSTATUS\tCUSTOMER\tCREATED")
		for _, inv := range r.Invoices {
			created := ""
			if !inv.Created.IsZero() {
				created = inv.Created.Format("2006-01-02")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				inv.ID, inv.Number, inv.Amount.StringFixed(2),
				inv.Status, inv.CustomerEmail, created)
		}

	case billing.CustomerResult:
		fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tPHONE")
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.CustomerID, r.Email, r.Name, r.Phone)

	case billing.CustomerListResult:
		fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tPHONE")
		for _, c := range r.Customers {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Email, c.Name, c.Phone)
		}

	default:
		return outputJSON(v)
	}

	return tw.Flush()
}

// failureErr turns a failed envelope into a command error so the process
// exits non-zero. Successful envelopes return nil.
func failureErr(st billing.Status) error {
	if st.Success {
		return nil
	}
	return fmt.Errorf("%s error: %s", st.ErrorKind, st.Error)
}

// emit prints the result and signals failure through the exit code.
func emit(v any, st billing.Status) error {
	if err := printResult(v); err != nil {
		return err
	}
	return failureErr(st)
}

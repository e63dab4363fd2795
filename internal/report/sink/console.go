package sink

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/affistack/brandledger/internal/report/domain"
)

// Console writes the report as an aligned table.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (s *Console) Name() string { return "console" }

func (s *Console) Write(_ context.Context, report *domain.Report) error {
	fmt.Fprintf(s.w, "Brand Report %s\n", report.Range.Label())

	tw := tabwriter.NewWriter(s.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BRAND\tORDERS\tSALES\tCOMMISSION")
	for _, b := range report.Summaries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
			b.Brand, b.Orders, b.Sales.StringFixed(2), b.Commission.StringFixed(2))
	}
	fmt.Fprintf(tw, "TOTAL\t%d\t%s\t%s\n",
		report.Totals.Orders, report.Totals.Sales.StringFixed(2), report.Totals.Commission.StringFixed(2))
	if err := tw.Flush(); err != nil {
		return err
	}

	if report.Unmapped > 0 {
		fmt.Fprintf(s.w, "warning: %d rows without a brand mapping fell into the Unknown bucket\n", report.Unmapped)
	}
	if report.Malformed > 0 {
		fmt.Fprintf(s.w, "warning: %d rows had malformed amounts summed as zero\n", report.Malformed)
	}
	return nil
}

package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/affistack/brandledger/internal/report/domain"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// PDF writes a printable report per range into the output directory.
type PDF struct {
	dir string
}

func NewPDF(dir string) *PDF {
	return &PDF{dir: dir}
}

func (s *PDF) Name() string { return "pdf" }

func (s *PDF) Write(_ context.Context, report *domain.Report) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(20,
		text.NewCol(8, "Brand Commission Report", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, report.Range.Label(), props.Text{
			Size:  10,
			Align: align.Right,
			Top:   4,
		}),
	)

	m.AddRow(12,
		text.NewCol(4, fmt.Sprintf("Total orders: %d", report.Totals.Orders), props.Text{Size: 10}),
		text.NewCol(4, "Total sales: "+report.Totals.Sales.StringFixed(2), props.Text{Size: 10}),
		text.NewCol(4, "Total commission: "+report.Totals.Commission.StringFixed(2), props.Text{Size: 10}),
	)

	m.AddRow(10,
		text.NewCol(6, "Brand", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Orders", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Sales", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Commission", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, b := range report.Summaries {
		m.AddRow(8,
			text.NewCol(6, b.Brand, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", b.Orders), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, b.Sales.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, b.Commission.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
		)
	}

	if report.Unmapped > 0 {
		m.AddRow(10,
			col.New(12).Add(
				text.New(fmt.Sprintf("%d rows without a brand mapping are included under Unknown.", report.Unmapped), props.Text{Size: 8}),
			),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generate pdf: %w", err)
	}

	path := filepath.Join(s.dir, report.Range.FileBase()+".pdf")
	return os.WriteFile(path, doc.GetBytes(), 0o644)
}

package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/affistack/brandledger/internal/report/domain"
)

// CSV writes one file per report range into the output directory.
type CSV struct {
	dir string
}

func NewCSV(dir string) *CSV {
	return &CSV{dir: dir}
}

func (s *CSV) Name() string { return "csv" }

func (s *CSV) Write(_ context.Context, report *domain.Report) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(s.dir, report.Range.FileBase()+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	records := [][]string{{"brand", "orders", "sales", "commission"}}
	for _, b := range report.Summaries {
		records = append(records, []string{
			b.Brand,
			strconv.FormatInt(b.Orders, 10),
			b.Sales.StringFixed(2),
			b.Commission.StringFixed(2),
		})
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

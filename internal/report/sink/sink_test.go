package sink

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/affistack/brandledger/internal/report/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	assert.NoError(t, err)
	return d
}

func sampleReport(t *testing.T) *domain.Report {
	t.Helper()
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	return &domain.Report{
		Range:       domain.Range{Start: day, End: day, Key: domain.RangeSingle},
		Source:      domain.SourceAmazon,
		GeneratedAt: time.Date(2026, 8, 25, 6, 0, 0, 0, time.UTC),
		Summaries: []domain.BrandTotals{
			{Brand: "Acme", Orders: 3, Sales: dec(t, "150"), Commission: dec(t, "7.5")},
			{Brand: "Globex", Orders: 3, Sales: dec(t, "300"), Commission: dec(t, "15")},
		},
		Totals:   domain.BrandTotals{Orders: 6, Sales: dec(t, "450"), Commission: dec(t, "22.5")},
		RowCount: 6,
	}
}

func TestConsoleWritesTableAndWarnings(t *testing.T) {
	report := sampleReport(t)
	report.Unmapped = 2
	report.Malformed = 1

	var buf bytes.Buffer
	s := NewConsole(&buf)
	assert.NoError(t, s.Write(context.Background(), report))

	out := buf.String()
	assert.Contains(t, out, "Brand Report 2026-08-24")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "150.00")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "2 rows without a brand mapping")
	assert.Contains(t, out, "1 rows had malformed amounts")
}

func TestCSVWritesOneFilePerRange(t *testing.T) {
	dir := t.TempDir()
	s := NewCSV(dir)
	assert.NoError(t, s.Write(context.Background(), sampleReport(t)))

	raw, err := os.ReadFile(filepath.Join(dir, "brand_report_2026-08-24.csv"))
	assert.NoError(t, err)

	out := string(raw)
	assert.Contains(t, out, "brand,orders,sales,commission")
	assert.Contains(t, out, "Acme,3,150.00,7.50")
	assert.Contains(t, out, "Globex,3,300.00,15.00")
}

func TestHTMLRendersReportPage(t *testing.T) {
	dir := t.TempDir()
	s := NewHTML(dir)
	assert.NoError(t, s.Write(context.Background(), sampleReport(t)))

	raw, err := os.ReadFile(filepath.Join(dir, "brand_report_2026-08-24.html"))
	assert.NoError(t, err)

	out := string(raw)
	assert.Contains(t, out, "Brand Commission Report")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "450.00")
	assert.Contains(t, out, "2026-08-24")
}

func TestDBSinkReplacesRangeOnRerun(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:sink_db?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&domain.BrandSummary{}))

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	s := NewDB(db, node)
	report := sampleReport(t)
	assert.NoError(t, s.Write(context.Background(), report))

	// Re-running the same range replaces rows instead of duplicating them.
	report.Summaries[0].Commission = dec(t, "9.9")
	assert.NoError(t, s.Write(context.Background(), report))

	var count int64
	assert.NoError(t, db.Model(&domain.BrandSummary{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var row domain.BrandSummary
	assert.NoError(t, db.Where("brand = ?", "Acme").First(&row).Error)
	assert.Equal(t, "2026-08-24", row.StartDate)
	assert.Equal(t, int64(3), row.Orders)
	assert.True(t, row.Commission.Equal(dec(t, "9.9")))
}

func TestDBSinkRemovesStaleBrands(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:sink_db_stale?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&domain.BrandSummary{}))

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	s := NewDB(db, node)
	assert.NoError(t, s.Write(context.Background(), sampleReport(t)))

	// Second run for the same range has only one brand; the other's row
	// must not survive.
	report := sampleReport(t)
	report.Summaries = report.Summaries[:1]
	assert.NoError(t, s.Write(context.Background(), report))

	var brands []string
	assert.NoError(t, db.Model(&domain.BrandSummary{}).Pluck("brand", &brands).Error)
	assert.Equal(t, []string{"Acme"}, brands)
}

func TestDBSinkClearsRangeOnEmptyReport(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:sink_db_empty?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&domain.BrandSummary{}))

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	s := NewDB(db, node)
	assert.NoError(t, s.Write(context.Background(), sampleReport(t)))

	report := sampleReport(t)
	report.Summaries = nil
	assert.NoError(t, s.Write(context.Background(), report))

	var count int64
	assert.NoError(t, db.Model(&domain.BrandSummary{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

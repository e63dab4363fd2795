package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Row is one report row after brand resolution, ready for aggregation.
type Row struct {
	Brand      string
	Orders     int64
	Sales      decimal.Decimal
	Commission decimal.Decimal
}

// BrandTotals is the aggregate for one brand over the report range.
type BrandTotals struct {
	Brand      string
	Orders     int64
	Sales      decimal.Decimal
	Commission decimal.Decimal
}

// Report is what sinks receive: ordered per-brand totals plus run metadata.
type Report struct {
	Range       Range
	Source      string
	GeneratedAt time.Time
	Summaries   []BrandTotals
	Totals      BrandTotals
	RowCount    int
	Unmapped    int
	Malformed   int
}

// BrandSummary is the persisted form of one brand's totals for a range.
// Single-day reports store the same date in both columns.
type BrandSummary struct {
	ID         int64           `json:"id" gorm:"primaryKey"`
	StartDate  string          `json:"start_date" gorm:"type:text;not null;uniqueIndex:ux_brand_summaries_range,priority:1"`
	EndDate    string          `json:"end_date" gorm:"type:text;not null;uniqueIndex:ux_brand_summaries_range,priority:2"`
	Brand      string          `json:"brand" gorm:"type:text;not null;uniqueIndex:ux_brand_summaries_range,priority:3"`
	Orders     int64           `json:"orders" gorm:"not null"`
	Sales      decimal.Decimal `json:"sales" gorm:"type:decimal(20,4);not null"`
	Commission decimal.Decimal `json:"commission" gorm:"type:decimal(20,4);not null"`
	CreatedAt  time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt  time.Time       `json:"updated_at" gorm:"not null"`
}

func (BrandSummary) TableName() string { return "brand_daily_summaries" }

// Result is the end-of-run summary for logging and the job-run record.
type Result struct {
	Rows       int
	Brands     int
	Unmapped   int
	Malformed  int
	Orders     int64
	Sales      decimal.Decimal
	Commission decimal.Decimal
}

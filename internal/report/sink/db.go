package sink

import (
	"context"
	"time"

	"github.com/affistack/brandledger/internal/report/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// DB persists summary rows keyed by (range, brand). Re-running a range
// replaces all of its rows, so brands absent from the new run don't linger.
type DB struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func NewDB(db *gorm.DB, genID *snowflake.Node) *DB {
	return &DB{db: db, genID: genID}
}

func (s *DB) Name() string { return "db" }

func (s *DB) Write(ctx context.Context, report *domain.Report) error {
	now := time.Now().UTC()
	rows := make([]domain.BrandSummary, 0, len(report.Summaries))
	for _, b := range report.Summaries {
		rows = append(rows, domain.BrandSummary{
			ID:         s.genID.Generate().Int64(),
			StartDate:  report.Range.StartYMD(),
			EndDate:    report.Range.EndYMD(),
			Brand:      b.Brand,
			Orders:     b.Orders,
			Sales:      b.Sales,
			Commission: b.Commission,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("start_date = ? AND end_date = ?", report.Range.StartYMD(), report.Range.EndYMD()).
			Delete(&domain.BrandSummary{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

package repository

import (
	"context"

	"github.com/affistack/brandledger/internal/catalog/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// upsert conflict target and the columns replaced on conflict. The ASIN is
// the primary key; everything descriptive is last-write-wins.
var upsertClause = clause.OnConflict{
	Columns: []clause.Column{{Name: "asin"}},
	DoUpdates: clause.AssignmentColumns([]string{
		"brand_id",
		"brand_name",
		"title",
		"country_code",
		"attributes",
		"updated_at",
	}),
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Clauses(upsertClause).Create(product).Error
}

func (r *repo) UpsertBatch(ctx context.Context, db *gorm.DB, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	return db.WithContext(ctx).Clauses(upsertClause).Create(&products).Error
}

func (r *repo) FindByASIN(ctx context.Context, db *gorm.DB, asin string) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT asin, brand_id, brand_name, title, country_code, attributes, created_at, updated_at
		 FROM products WHERE asin = ?`,
		asin,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ASIN == "" {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) BrandMap(ctx context.Context, db *gorm.DB) (map[string]string, error) {
	rows, err := db.WithContext(ctx).Raw(
		`SELECT asin, brand_name FROM products`,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brands := make(map[string]string)
	for rows.Next() {
		var asin, brand string
		if err := rows.Scan(&asin, &brand); err != nil {
			return nil, err
		}
		brands[asin] = brand
	}
	return brands, rows.Err()
}

func (r *repo) Stats(ctx context.Context, db *gorm.DB) (domain.Stats, error) {
	var stats domain.Stats
	if err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM products`,
	).Scan(&stats.Products).Error; err != nil {
		return stats, err
	}
	if err := db.WithContext(ctx).Raw(
		`SELECT COUNT(DISTINCT brand_id) FROM products`,
	).Scan(&stats.DistinctBrandIDs).Error; err != nil {
		return stats, err
	}
	if err := db.WithContext(ctx).Raw(
		`SELECT COUNT(DISTINCT brand_name) FROM products`,
	).Scan(&stats.DistinctBrandNames).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

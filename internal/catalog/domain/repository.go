package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Upsert(ctx context.Context, db *gorm.DB, product *Product) error
	UpsertBatch(ctx context.Context, db *gorm.DB, products []Product) error
	FindByASIN(ctx context.Context, db *gorm.DB, asin string) (*Product, error)
	BrandMap(ctx context.Context, db *gorm.DB) (map[string]string, error)
	Stats(ctx context.Context, db *gorm.DB) (Stats, error)
}

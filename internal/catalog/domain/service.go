package domain

import (
	"context"
	"errors"
)

// UnknownBrand is the reserved bucket for products without a resolvable brand.
const UnknownBrand = "Unknown"

type Service interface {
	Upsert(ctx context.Context, product *Product) error
	UpsertBatch(ctx context.Context, products []Product) error
	LookupBrand(ctx context.Context, asin string) (string, error)
	BrandMap(ctx context.Context) (map[string]string, error)
	Stats(ctx context.Context) (Stats, error)
}

var (
	ErrInvalidASIN = errors.New("invalid_asin")
	ErrNotFound    = errors.New("not_found")
)

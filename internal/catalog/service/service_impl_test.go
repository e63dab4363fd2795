package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/affistack/brandledger/internal/catalog/domain"
	"github.com/affistack/brandledger/internal/catalog/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupCatalog(t *testing.T, name string) domain.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&domain.Product{}))
	return New(Params{DB: db, Log: zap.NewNop(), Repo: repository.Provide()})
}

func TestUpsertIsIdempotentPerASIN(t *testing.T) {
	svc := setupCatalog(t, "catalog_upsert")
	ctx := context.Background()

	assert.NoError(t, svc.Upsert(ctx, &domain.Product{
		ASIN:      "B001",
		BrandID:   "10",
		BrandName: "Acme",
		Title:     "Widget",
	}))
	assert.NoError(t, svc.Upsert(ctx, &domain.Product{
		ASIN:      "B001",
		BrandID:   "10",
		BrandName: "Acme Corp",
		Title:     "Widget v2",
	}))

	brand, err := svc.LookupBrand(ctx, "B001")
	assert.NoError(t, err)
	assert.Equal(t, "Acme Corp", brand)

	stats, err := svc.Stats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), stats.Products)
}

func TestUpsertRejectsEmptyASIN(t *testing.T) {
	svc := setupCatalog(t, "catalog_empty_asin")

	err := svc.Upsert(context.Background(), &domain.Product{ASIN: "  ", BrandName: "Acme"})
	assert.ErrorIs(t, err, domain.ErrInvalidASIN)
}

func TestUpsertBatchKeepsAttributes(t *testing.T) {
	svc := setupCatalog(t, "catalog_batch")
	ctx := context.Background()

	err := svc.UpsertBatch(ctx, []domain.Product{
		{ASIN: "B001", BrandID: "10", BrandName: "Acme", Attributes: datatypes.JSONMap{"color": "red"}},
		{ASIN: "B002", BrandID: "11", BrandName: "Globex"},
	})
	assert.NoError(t, err)

	brands, err := svc.BrandMap(ctx)
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"B001": "Acme", "B002": "Globex"}, brands)
}

func TestLookupBrandFallsBackToUnknown(t *testing.T) {
	svc := setupCatalog(t, "catalog_unknown")
	ctx := context.Background()

	brand, err := svc.LookupBrand(ctx, "B404")
	assert.NoError(t, err)
	assert.Equal(t, domain.UnknownBrand, brand)

	// A stored product with a blank brand name is still unmapped.
	assert.NoError(t, svc.Upsert(ctx, &domain.Product{ASIN: "B002", Title: "No brand"}))
	brand, err = svc.LookupBrand(ctx, "B002")
	assert.NoError(t, err)
	assert.Equal(t, domain.UnknownBrand, brand)

	_, err = svc.LookupBrand(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidASIN)
}

func TestStatsCountsDistinctBrands(t *testing.T) {
	svc := setupCatalog(t, "catalog_stats")
	ctx := context.Background()

	err := svc.UpsertBatch(ctx, []domain.Product{
		{ASIN: "B001", BrandID: "10", BrandName: "Acme"},
		{ASIN: "B002", BrandID: "10", BrandName: "Acme"},
		{ASIN: "B003", BrandID: "11", BrandName: "Globex"},
	})
	assert.NoError(t, err)

	stats, err := svc.Stats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.Products)
	assert.Equal(t, int64(2), stats.DistinctBrandIDs)
	assert.Equal(t, int64(2), stats.DistinctBrandNames)
}

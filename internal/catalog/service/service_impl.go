package service

import (
	"context"
	"strings"
	"time"

	"github.com/affistack/brandledger/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("catalog.service"),
		repo: p.Repo,
	}
}

func (s *Service) Upsert(ctx context.Context, product *domain.Product) error {
	if err := normalize(product); err != nil {
		return err
	}
	return s.repo.Upsert(ctx, s.db, product)
}

func (s *Service) UpsertBatch(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	for i := range products {
		if err := normalize(&products[i]); err != nil {
			return err
		}
	}
	// One transaction per batch so a failed page leaves no half-written page
	// behind; committed pages from earlier iterations stay, re-running is the
	// recovery path.
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.repo.UpsertBatch(ctx, tx, products)
	})
}

func (s *Service) LookupBrand(ctx context.Context, asin string) (string, error) {
	asin = strings.TrimSpace(asin)
	if asin == "" {
		return "", domain.ErrInvalidASIN
	}

	p, err := s.repo.FindByASIN(ctx, s.db, asin)
	if err != nil {
		return "", err
	}
	if p == nil || p.BrandName == "" {
		return domain.UnknownBrand, nil
	}
	return p.BrandName, nil
}

func (s *Service) BrandMap(ctx context.Context) (map[string]string, error) {
	return s.repo.BrandMap(ctx, s.db)
}

func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	return s.repo.Stats(ctx, s.db)
}

func normalize(p *domain.Product) error {
	p.ASIN = strings.TrimSpace(p.ASIN)
	if p.ASIN == "" {
		return domain.ErrInvalidASIN
	}
	p.BrandName = strings.TrimSpace(p.BrandName)
	p.Title = strings.TrimSpace(p.Title)

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return nil
}

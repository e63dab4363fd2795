package sync

import (
	"context"
	"fmt"
	"strconv"

	catalogdomain "github.com/affistack/brandledger/internal/catalog/domain"
	"github.com/affistack/brandledger/internal/config"
	"github.com/affistack/brandledger/internal/jobrun"
	"github.com/affistack/brandledger/internal/partnerboost"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const jobName = "product_sync"

type Params struct {
	fx.In

	Log     *zap.Logger
	Client  *partnerboost.Client
	Catalog catalogdomain.Service
	Runs    *jobrun.Recorder
	Config  config.Config
}

// Job pulls the full product datafeed page by page and upserts it into the
// catalog store.
type Job struct {
	log      *zap.Logger
	client   *partnerboost.Client
	catalog  catalogdomain.Service
	runs     *jobrun.Recorder
	pageSize int
	maxPages int
}

// Result is the end-of-run summary.
type Result struct {
	Pages    int
	Fetched  int
	Upserted int
	Skipped  int
}

func New(p Params) (*Job, error) {
	if err := validateMapping(); err != nil {
		return nil, err
	}

	pageSize := p.Config.SyncPageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	return &Job{
		log:      p.Log.Named("sync"),
		client:   p.Client,
		catalog:  p.Catalog,
		runs:     p.Runs,
		pageSize: pageSize,
		maxPages: p.Config.MaxPages,
	}, nil
}

// Run executes one sync. Pages already committed before a failure stay in
// the store; upserts are idempotent and re-running is the recovery path.
func (j *Job) Run(ctx context.Context) (Result, error) {
	run := j.runs.Begin(jobName)
	res, err := j.run(ctx)
	j.runs.Finish(ctx, run, map[string]any{
		"pages":    res.Pages,
		"fetched":  res.Fetched,
		"upserted": res.Upserted,
		"skipped":  res.Skipped,
	}, err)
	return res, err
}

func (j *Job) run(ctx context.Context) (Result, error) {
	var res Result
	j.log.Info("product sync started", zap.Int("page_size", j.pageSize))

	page := 1
	for {
		p, err := j.client.FetchProductsPage(ctx, page, j.pageSize)
		if err != nil {
			return res, fmt.Errorf("fetch products page %d: %w", page, err)
		}
		if len(p.Records) == 0 {
			break
		}
		res.Pages++
		res.Fetched += len(p.Records)

		products := make([]catalogdomain.Product, 0, len(p.Records))
		for _, rec := range p.Records {
			product, err := mapProduct(rec)
			if err != nil {
				res.Skipped++
				j.log.Warn("skipping malformed product record", zap.Error(err))
				continue
			}
			products = append(products, product)
		}

		if err := j.catalog.UpsertBatch(ctx, products); err != nil {
			return res, fmt.Errorf("upsert page %d: %w", page, err)
		}
		res.Upserted += len(products)

		j.log.Info("page synced",
			zap.Int("page", page),
			zap.Int("records", len(p.Records)),
			zap.Int("accumulated", res.Upserted),
		)

		// Stop on an explicit has_more=false or a short page. A full page
		// with the flag absent keeps paging; treating absence as false would
		// silently truncate the catalog.
		if (p.HasMore != nil && !*p.HasMore) || len(p.Records) < j.pageSize {
			break
		}
		if j.maxPages > 0 && page >= j.maxPages {
			j.log.Warn("page ceiling reached, stopping early", zap.Int("max_pages", j.maxPages))
			break
		}
		page++
	}

	stats, err := j.catalog.Stats(ctx)
	if err != nil {
		return res, fmt.Errorf("catalog stats: %w", err)
	}

	j.log.Info("product sync completed",
		zap.Int("pages", res.Pages),
		zap.Int("fetched", res.Fetched),
		zap.Int("upserted", res.Upserted),
		zap.Int("skipped", res.Skipped),
		zap.Int64("products_total", stats.Products),
		zap.Int64("distinct_brand_ids", stats.DistinctBrandIDs),
		zap.Int64("distinct_brand_names", stats.DistinctBrandNames),
	)
	return res, nil
}

func stringField(rec map[string]any, keys ...string) string {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		case int64:
			return strconv.FormatInt(t, 10)
		}
	}
	return ""
}

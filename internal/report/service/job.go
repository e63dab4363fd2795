package service

import (
	"context"
	"fmt"

	catalogdomain "github.com/affistack/brandledger/internal/catalog/domain"
	"github.com/affistack/brandledger/internal/clock"
	"github.com/affistack/brandledger/internal/config"
	"github.com/affistack/brandledger/internal/jobrun"
	"github.com/affistack/brandledger/internal/partnerboost"
	"github.com/affistack/brandledger/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const jobName = "brand_report"

type Params struct {
	fx.In

	Log          *zap.Logger
	Client       *partnerboost.Client
	Catalog      catalogdomain.Service
	Clock        clock.Clock
	Runs         *jobrun.Recorder
	Sinks        []domain.Sink
	Config       config.Config
	ReportConfig config.ReportConfig
}

// Job builds the per-brand commission summary for a date range and hands it
// to every configured sink.
type Job struct {
	log       *zap.Logger
	client    *partnerboost.Client
	catalog   catalogdomain.Service
	clock     clock.Clock
	runs      *jobrun.Recorder
	sinks     []domain.Sink
	pageSize  int
	pageLimit int
	maxPages  int
	sortBy    string
}

func New(p Params) *Job {
	pageSize := p.Config.ReportPageSize
	if pageSize <= 0 {
		pageSize = 500
	}
	pageLimit := p.Config.TransactionPage
	if pageLimit <= 0 {
		pageLimit = 1000
	}

	return &Job{
		log:       p.Log.Named("report"),
		client:    p.Client,
		catalog:   p.Catalog,
		clock:     p.Clock,
		runs:      p.Runs,
		sinks:     p.Sinks,
		pageSize:  pageSize,
		pageLimit: pageLimit,
		maxPages:  p.Config.MaxPages,
		sortBy:    p.ReportConfig.SortBy,
	}
}

// Run executes one report. Any API or sink failure is fatal: emitting a
// partial report would silently under-count a day's commissions.
func (j *Job) Run(ctx context.Context, rangeArg, source string) (*domain.Result, error) {
	run := j.runs.Begin(jobName)
	res, err := j.run(ctx, rangeArg, source)

	counters := map[string]any{"range": rangeArg, "source": source}
	if res != nil {
		counters["rows"] = res.Rows
		counters["brands"] = res.Brands
		counters["unmapped"] = res.Unmapped
		counters["malformed"] = res.Malformed
		counters["orders"] = res.Orders
		counters["sales"] = res.Sales.String()
		counters["commission"] = res.Commission.String()
	}
	j.runs.Finish(ctx, run, counters, err)
	return res, err
}

func (j *Job) run(ctx context.Context, rangeArg, source string) (*domain.Result, error) {
	rng, err := domain.ResolveRange(rangeArg, j.clock)
	if err != nil {
		return nil, err
	}

	if source == "" {
		source = domain.SourceAmazon
	}
	if source != domain.SourceAmazon && source != domain.SourceTransactions {
		return nil, fmt.Errorf("unknown report source %q", source)
	}

	j.log.Info("brand report started",
		zap.String("start", rng.StartYMD()),
		zap.String("end", rng.EndYMD()),
		zap.String("source", source),
	)

	var (
		rows                []domain.Row
		unmapped, malformed int
	)
	switch source {
	case domain.SourceAmazon:
		rows, unmapped, malformed, err = j.amazonRows(ctx, rng)
	case domain.SourceTransactions:
		rows, unmapped, malformed, err = j.transactionRows(ctx, rng)
	}
	if err != nil {
		return nil, err
	}

	agg := newAggregator()
	for _, row := range rows {
		agg.Add(row)
	}
	summaries := agg.Summaries(j.sortBy)
	totals := agg.Totals()

	report := &domain.Report{
		Range:       rng,
		Source:      source,
		GeneratedAt: j.clock.Now(),
		Summaries:   summaries,
		Totals:      totals,
		RowCount:    len(rows),
		Unmapped:    unmapped,
		Malformed:   malformed,
	}

	for _, sink := range j.sinks {
		if err := sink.Write(ctx, report); err != nil {
			return nil, fmt.Errorf("sink %s: %w", sink.Name(), err)
		}
		j.log.Info("report written", zap.String("sink", sink.Name()))
	}

	res := &domain.Result{
		Rows:       len(rows),
		Brands:     len(summaries),
		Unmapped:   unmapped,
		Malformed:  malformed,
		Orders:     totals.Orders,
		Sales:      totals.Sales,
		Commission: totals.Commission,
	}

	j.log.Info("brand report completed",
		zap.Int("rows", res.Rows),
		zap.Int("brands", res.Brands),
		zap.Int("unmapped", res.Unmapped),
		zap.Int("malformed", res.Malformed),
		zap.Int64("orders", res.Orders),
		zap.String("sales", res.Sales.String()),
		zap.String("commission", res.Commission.String()),
	)
	return res, nil
}

// amazonRows fetches the per-ASIN Amazon report and resolves brands through
// the catalog store. A missing or empty catalog degrades to the Unknown
// bucket with a warning instead of failing the run.
func (j *Job) amazonRows(ctx context.Context, rng domain.Range) ([]domain.Row, int, int, error) {
	brands, err := j.catalog.BrandMap(ctx)
	if err != nil {
		j.log.Warn("catalog unavailable, grouping all rows under Unknown", zap.Error(err))
		brands = nil
	} else if len(brands) == 0 {
		j.log.Warn("catalog is empty, all rows will fall into the Unknown bucket")
	}

	var (
		rows                []domain.Row
		unmapped, malformed int
	)
	page := 1
	for {
		p, err := j.client.FetchReportPage(ctx, rng.StartCompact(), rng.EndCompact(), page, j.pageSize)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("fetch report page %d: %w", page, err)
		}

		for _, r := range p.Rows {
			brand := catalogdomain.UnknownBrand
			if r.ASIN != "" {
				if name, ok := brands[r.ASIN]; ok && name != "" {
					brand = name
				} else {
					unmapped++
				}
			} else {
				unmapped++
			}
			if r.Sales.Malformed || r.EstCommission.Malformed {
				malformed++
				j.log.Warn("report row has malformed amount, summing as zero", zap.String("asin", r.ASIN))
			}

			var orders int64
			if r.Quantity > 0 {
				orders = 1
			}
			rows = append(rows, domain.Row{
				Brand:      brand,
				Orders:     orders,
				Sales:      r.Sales.Decimal,
				Commission: r.EstCommission.Decimal,
			})
		}

		if !p.HasMore || len(p.Rows) == 0 {
			break
		}
		if j.maxPages > 0 && page >= j.maxPages {
			j.log.Warn("page ceiling reached, stopping early", zap.Int("max_pages", j.maxPages))
			break
		}
		page++
	}

	return rows, unmapped, malformed, nil
}

// transactionRows fetches the transaction listing, where each row is one
// order and the brand arrives pre-resolved as the merchant name.
func (j *Job) transactionRows(ctx context.Context, rng domain.Range) ([]domain.Row, int, int, error) {
	var (
		rows                []domain.Row
		unmapped, malformed int
	)
	page := 1
	for {
		p, err := j.client.FetchTransactionsPage(ctx, rng.StartYMD(), rng.EndYMD(), page, j.pageLimit)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("fetch transactions page %d: %w", page, err)
		}
		if len(p.Rows) == 0 {
			break
		}

		for _, t := range p.Rows {
			brand := t.MerchantName
			if brand == "" {
				brand = catalogdomain.UnknownBrand
				unmapped++
			}
			if t.SaleAmount.Malformed || t.SaleComm.Malformed {
				malformed++
				j.log.Warn("transaction has malformed amount, summing as zero", zap.String("brand", brand))
			}
			rows = append(rows, domain.Row{
				Brand:      brand,
				Orders:     1,
				Sales:      t.SaleAmount.Decimal,
				Commission: t.SaleComm.Decimal,
			})
		}

		if page >= p.TotalPage {
			break
		}
		if j.maxPages > 0 && page >= j.maxPages {
			j.log.Warn("page ceiling reached, stopping early", zap.Int("max_pages", j.maxPages))
			break
		}
		page++
	}

	return rows, unmapped, malformed, nil
}

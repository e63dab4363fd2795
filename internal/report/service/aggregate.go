package service

import (
	"sort"
	"strings"

	"github.com/affistack/brandledger/internal/config"
	"github.com/affistack/brandledger/internal/report/domain"
)

// aggregator accumulates per-brand totals. Decimal sums keep summation exact
// and independent of input ordering.
type aggregator struct {
	byBrand map[string]*domain.BrandTotals
}

func newAggregator() *aggregator {
	return &aggregator{byBrand: make(map[string]*domain.BrandTotals)}
}

func (a *aggregator) Add(row domain.Row) {
	totals, ok := a.byBrand[row.Brand]
	if !ok {
		totals = &domain.BrandTotals{Brand: row.Brand}
		a.byBrand[row.Brand] = totals
	}
	totals.Orders += row.Orders
	totals.Sales = totals.Sales.Add(row.Sales)
	totals.Commission = totals.Commission.Add(row.Commission)
}

// Summaries returns the aggregated brands in a stable order: brand name
// ascending (case-insensitive) or commission descending, per config.
func (a *aggregator) Summaries(sortBy string) []domain.BrandTotals {
	out := make([]domain.BrandTotals, 0, len(a.byBrand))
	for _, totals := range a.byBrand {
		out = append(out, *totals)
	}

	byBrand := func(i, j int) bool {
		li, lj := strings.ToLower(out[i].Brand), strings.ToLower(out[j].Brand)
		if li != lj {
			return li < lj
		}
		return out[i].Brand < out[j].Brand
	}

	switch sortBy {
	case config.SortByCommission:
		sort.Slice(out, func(i, j int) bool {
			if !out[i].Commission.Equal(out[j].Commission) {
				return out[i].Commission.GreaterThan(out[j].Commission)
			}
			return byBrand(i, j)
		})
	default:
		sort.Slice(out, byBrand)
	}
	return out
}

// Totals sums every brand into one row for report footers.
func (a *aggregator) Totals() domain.BrandTotals {
	var totals domain.BrandTotals
	for _, t := range a.byBrand {
		totals.Orders += t.Orders
		totals.Sales = totals.Sales.Add(t.Sales)
		totals.Commission = totals.Commission.Add(t.Commission)
	}
	return totals
}

package sync

import (
	"fmt"

	catalogdomain "github.com/affistack/brandledger/internal/catalog/domain"
	"gorm.io/datatypes"
)

// productFieldMapping declares how datafeed fields map onto the product
// record. Candidates are tried in order; the API has renamed fields before,
// so the older names stay as fallbacks.
var productFieldMapping = map[string][]string{
	"asin":         {"asin"},
	"brand_id":     {"brand_id"},
	"brand_name":   {"brand_name", "brand"},
	"title":        {"title", "name"},
	"country_code": {"country_code"},
}

var requiredMappingFields = []string{"asin", "brand_id", "brand_name", "title", "country_code"}

func validateMapping() error {
	for _, field := range requiredMappingFields {
		candidates, ok := productFieldMapping[field]
		if !ok || len(candidates) == 0 {
			return fmt.Errorf("product field mapping is missing %q", field)
		}
	}
	return nil
}

// mapProduct maps one raw datafeed record onto a product row. A record
// without an ASIN cannot be keyed and is rejected. Fields outside the
// declared mapping are kept as attributes rather than silently dropped.
func mapProduct(rec map[string]any) (catalogdomain.Product, error) {
	asin := stringField(rec, productFieldMapping["asin"]...)
	if asin == "" {
		return catalogdomain.Product{}, fmt.Errorf("record has no asin: %v", rec)
	}

	product := catalogdomain.Product{
		ASIN:        asin,
		BrandID:     stringField(rec, productFieldMapping["brand_id"]...),
		BrandName:   stringField(rec, productFieldMapping["brand_name"]...),
		Title:       stringField(rec, productFieldMapping["title"]...),
		CountryCode: stringField(rec, productFieldMapping["country_code"]...),
	}

	consumed := make(map[string]bool)
	for _, candidates := range productFieldMapping {
		for _, key := range candidates {
			consumed[key] = true
		}
	}

	var extra datatypes.JSONMap
	for key, value := range rec {
		if consumed[key] || value == nil {
			continue
		}
		if extra == nil {
			extra = datatypes.JSONMap{}
		}
		extra[key] = value
	}
	product.Attributes = extra

	return product, nil
}

package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Product is one row of the catalog store, keyed by ASIN. The brand name is
// the join target for report aggregation; everything else is descriptive.
type Product struct {
	ASIN        string            `json:"asin" gorm:"primaryKey;type:text"`
	BrandID     string            `json:"brand_id" gorm:"type:text;index"`
	BrandName   string            `json:"brand_name" gorm:"type:text;index"`
	Title       string            `json:"title" gorm:"type:text"`
	CountryCode string            `json:"country_code" gorm:"type:text"`
	Attributes  datatypes.JSONMap `json:"attributes,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time         `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"not null"`
}

func (Product) TableName() string { return "products" }

// Stats summarizes the catalog after a sync run.
type Stats struct {
	Products           int64
	DistinctBrandIDs   int64
	DistinctBrandNames int64
}

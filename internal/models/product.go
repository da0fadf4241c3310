package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the normalized catalog row. WebflowID is the natural key used
// for idempotent upserts; ID is the surrogate key assigned on first insert.
type Product struct {
	ID               string                 `json:"id" gorm:"type:uuid;primary_key"`
	WebflowID        string                 `json:"webflow_id" gorm:"uniqueIndex;not null"`
	Slug             string                 `json:"slug"`
	Name             string                 `json:"name" gorm:"not null"`
	Brand            *string                `json:"brand"`
	Price            decimal.NullDecimal    `json:"price" gorm:"type:decimal(12,2)"`
	Currency         string                 `json:"currency"`
	Description      *string                `json:"description"`
	ShortDescription *string                `json:"short_description"`
	SEOTitle         *string                `json:"seo_title"`
	SEODescription   *string                `json:"seo_description"`
	URL              string                 `json:"url"`
	Payload          map[string]interface{} `json:"payload" gorm:"serializer:json"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// ProductVariant is one purchasable SKU of a product. WebflowSKUID is the
// natural key; ProductID references the parent's surrogate id.
type ProductVariant struct {
	ID               string                 `json:"id" gorm:"type:uuid;primary_key"`
	WebflowSKUID     string                 `json:"webflow_sku_id" gorm:"column:webflow_sku_id;uniqueIndex;not null"`
	WebflowProductID string                 `json:"webflow_product_id" gorm:"index;not null"`
	ProductID        string                 `json:"product_id" gorm:"type:uuid;index;not null"`
	SKU              string                 `json:"sku"`
	Name             string                 `json:"name"`
	Slug             string                 `json:"slug"`
	Price            decimal.NullDecimal    `json:"price" gorm:"type:decimal(12,2)"`
	Currency         string                 `json:"currency"`
	SKUValues        map[string]string      `json:"sku_values" gorm:"serializer:json"`
	Payload          map[string]interface{} `json:"payload" gorm:"serializer:json"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// OptionLookup maps a (field slug, option id) pair to the option's display
// name. Rows are only ever upserted, never deleted.
type OptionLookup struct {
	FieldSlug string    `json:"field_slug" gorm:"primaryKey"`
	OptionID  string    `json:"option_id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (OptionLookup) TableName() string {
	return "option_lookup"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

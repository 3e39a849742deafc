// Package composer orchestrates creation and update of a product with its
// full object graph against a backend that only exposes single-entity
// endpoints. There is no cross-entity transaction; the saga makes partial
// failure observable and attributable per sub-entity instead.
package composer

import (
	"github.com/shopspring/decimal"

	"github.com/sayeedajmal/saudimart-core/pkg/catalog"
	"github.com/sayeedajmal/saudimart-core/pkg/enums"
)

// ProductDraft is the submitted composition input. A nil ID means create; a
// set ID means update. The same convention applies to every nested draft, so
// one submission can mix existing sub-entities with new ones.
type ProductDraft struct {
	ID          *string          `json:"id,omitempty"`
	SKU         string           `json:"sku" validate:"required"`
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	BasePrice   *decimal.Decimal `json:"base_price,omitempty"`
	MOQ         int              `json:"minimum_order_quantity" validate:"gte=1"`
	IsActive    bool             `json:"is_active"`
	CategoryID  *string          `json:"category_id,omitempty"`
	Weight      *decimal.Decimal `json:"weight,omitempty"`
	WeightUnit  *string          `json:"weight_unit,omitempty"`
	Dimensions  *string          `json:"dimensions,omitempty"`

	Variants       []VariantDraft       `json:"variants" validate:"min=1,dive"`
	Specifications []SpecificationDraft `json:"specifications" validate:"min=1,dive"`
}

// VariantDraft carries one variant with its tiers and images.
type VariantDraft struct {
	ID              *string          `json:"id,omitempty"`
	SKU             string           `json:"sku" validate:"required"`
	Name            *string          `json:"name,omitempty"`
	BasePrice       *decimal.Decimal `json:"base_price,omitempty"`
	AdditionalPrice *decimal.Decimal `json:"additional_price,omitempty"`
	IsActive        bool             `json:"is_active"`

	PriceTiers []PriceTierDraft `json:"price_tiers" validate:"min=1,dive"`
	Images     []ImageDraft     `json:"images" validate:"dive"`
}

// PriceTierDraft carries one quantity bracket.
type PriceTierDraft struct {
	ID           *string         `json:"id,omitempty"`
	MinQuantity  int             `json:"min_quantity" validate:"gte=1"`
	MaxQuantity  *int            `json:"max_quantity,omitempty"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	IsActive     bool            `json:"is_active"`
}

// ImageDraft carries one media entry.
type ImageDraft struct {
	ID           *string `json:"id,omitempty"`
	URL          string  `json:"url" validate:"required,url"`
	AltText      *string `json:"alt_text,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	IsPrimary    bool    `json:"is_primary"`
}

// SpecificationDraft carries one display attribute.
type SpecificationDraft struct {
	ID           *string `json:"id,omitempty"`
	Name         string  `json:"name" validate:"required"`
	Value        string  `json:"value" validate:"required"`
	Unit         *string `json:"unit,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
}

// Mode derives create-vs-update from the draft's identity.
func (d ProductDraft) Mode() enums.CompositionMode {
	if d.ID == nil || *d.ID == "" {
		return enums.CompositionModeCreate
	}
	return enums.CompositionModeUpdate
}

// toProduct projects the draft onto the catalog aggregate so the shared
// entity validators can run before any remote call.
func (d ProductDraft) toProduct() catalog.Product {
	product := catalog.Product{
		SKU:         d.SKU,
		Name:        d.Name,
		Description: d.Description,
		BasePrice:   d.BasePrice,
		MOQ:         d.MOQ,
		IsActive:    d.IsActive,
		CategoryID:  d.CategoryID,
		Weight:      d.Weight,
		WeightUnit:  d.WeightUnit,
		Dimensions:  d.Dimensions,
	}
	if d.ID != nil {
		product.ID = *d.ID
	}

	for _, v := range d.Variants {
		variant := catalog.Variant{
			SKU:             v.SKU,
			Name:            v.Name,
			BasePrice:       v.BasePrice,
			AdditionalPrice: v.AdditionalPrice,
			IsActive:        v.IsActive,
		}
		if v.ID != nil {
			variant.ID = *v.ID
		}
		for _, tier := range v.PriceTiers {
			variant.PriceTiers = append(variant.PriceTiers, catalog.PriceTier{
				MinQuantity:  tier.MinQuantity,
				MaxQuantity:  tier.MaxQuantity,
				PricePerUnit: tier.PricePerUnit,
				IsActive:     tier.IsActive,
			})
		}
		for _, img := range v.Images {
			variant.Images = append(variant.Images, catalog.Image{
				URL:          img.URL,
				AltText:      img.AltText,
				DisplayOrder: img.DisplayOrder,
				IsPrimary:    img.IsPrimary,
			})
		}
		product.Variants = append(product.Variants, variant)
	}

	for _, spec := range d.Specifications {
		product.Specifications = append(product.Specifications, catalog.Specification{
			Name:         spec.Name,
			Value:        spec.Value,
			Unit:         spec.Unit,
			DisplayOrder: spec.DisplayOrder,
		})
	}
	return product
}

package catalog

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Product is the canonical seller listing as served by the backend API.
// Identifiers are opaque strings owned by the backend.
type Product struct {
	ID          string           `json:"id"`
	SellerID    string           `json:"seller_id"`
	SKU         string           `json:"sku"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	BasePrice   *decimal.Decimal `json:"base_price,omitempty"`
	MOQ         int              `json:"minimum_order_quantity"`
	IsActive    bool             `json:"is_active"`
	CategoryID  *string          `json:"category_id,omitempty"`

	Weight     *decimal.Decimal `json:"weight,omitempty"`
	WeightUnit *string          `json:"weight_unit,omitempty"`
	Dimensions *string          `json:"dimensions,omitempty"`

	Variants       []Variant       `json:"variants"`
	Specifications []Specification `json:"specifications"`
}

// Variant is one purchasable configuration of a product.
type Variant struct {
	ID              string           `json:"id"`
	ProductID       string           `json:"product_id"`
	SKU             string           `json:"sku"`
	Name            *string          `json:"name,omitempty"`
	BasePrice       *decimal.Decimal `json:"base_price,omitempty"`
	AdditionalPrice *decimal.Decimal `json:"additional_price,omitempty"`
	IsActive        bool             `json:"is_active"`

	PriceTiers []PriceTier `json:"price_tiers"`
	Images     []Image     `json:"images"`
}

// PriceTier maps a quantity range to a per-unit price. A nil MaxQuantity
// means the range is unbounded above.
type PriceTier struct {
	ID           string          `json:"id"`
	VariantID    string          `json:"variant_id"`
	MinQuantity  int             `json:"min_quantity"`
	MaxQuantity  *int            `json:"max_quantity,omitempty"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	IsActive     bool            `json:"is_active"`
}

// Specification is a display attribute attached to a product.
type Specification struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Value        string  `json:"value"`
	Unit         *string `json:"unit,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
}

// Image is a media entry owned by a variant.
type Image struct {
	ID           string  `json:"id"`
	VariantID    string  `json:"variant_id"`
	URL          string  `json:"url"`
	AltText      *string `json:"alt_text,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	IsPrimary    bool    `json:"is_primary"`
}

// Contains reports whether the tier's range covers the quantity.
func (t PriceTier) Contains(quantity int) bool {
	if quantity < t.MinQuantity {
		return false
	}
	if t.MaxQuantity != nil && quantity > *t.MaxQuantity {
		return false
	}
	return true
}

// ActiveTiers returns the variant's active tiers ordered by MinQuantity
// ascending. Storage order never influences resolution.
func (v Variant) ActiveTiers() []PriceTier {
	tiers := make([]PriceTier, 0, len(v.PriceTiers))
	for _, tier := range v.PriceTiers {
		if tier.IsActive {
			tiers = append(tiers, tier)
		}
	}
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].MinQuantity < tiers[j].MinQuantity
	})
	return tiers
}

// PrimaryImage returns the flagged primary image, or by convention the first
// image when none is flagged. The second return is false for variants with no
// images at all.
func (v Variant) PrimaryImage() (Image, bool) {
	for _, img := range v.Images {
		if img.IsPrimary {
			return img, true
		}
	}
	if len(v.Images) > 0 {
		return v.Images[0], true
	}
	return Image{}, false
}

// FindVariant returns the variant with the given id.
func (p Product) FindVariant(variantID string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == variantID {
			return v, true
		}
	}
	return Variant{}, false
}

// ImageCount counts images across all variants.
func (p Product) ImageCount() int {
	total := 0
	for _, v := range p.Variants {
		total += len(v.Images)
	}
	return total
}

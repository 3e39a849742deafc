package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/sayeedajmal/saudimart-core/pkg/errors"
)

// NewPriceTier builds a tier after checking its quantity and price invariants.
func NewPriceTier(minQty int, maxQty *int, pricePerUnit string) (PriceTier, error) {
	tier := PriceTier{MinQuantity: minQty, MaxQuantity: maxQty, IsActive: true}
	if minQty < 1 {
		return PriceTier{}, pkgerrors.New(pkgerrors.CodeValidation, "tier minimum quantity must be at least 1")
	}
	if maxQty != nil && *maxQty < minQty {
		return PriceTier{}, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("tier maximum quantity %d is below minimum quantity %d", *maxQty, minQty))
	}
	price, err := decimal.NewFromString(pricePerUnit)
	if err != nil {
		return PriceTier{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "tier price per unit is not a number")
	}
	if !price.IsPositive() {
		return PriceTier{}, pkgerrors.New(pkgerrors.CodeValidation, "tier price per unit must be positive")
	}
	tier.PricePerUnit = price
	return tier, nil
}

// ValidateProduct applies the standalone product invariants: MOQ at least 1,
// non-negative prices, at least one variant, every variant with at least one
// tier.
func ValidateProduct(p Product) error {
	if p.SKU == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product sku is required")
	}
	if p.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if p.MOQ < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "minimum order quantity must be at least 1")
	}
	if p.BasePrice != nil && p.BasePrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "product base price must not be negative")
	}
	if len(p.Variants) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product requires at least one variant")
	}
	for _, v := range p.Variants {
		if err := ValidateVariant(v); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVariant checks the variant invariants, including tier ranges.
func ValidateVariant(v Variant) error {
	if v.SKU == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "variant sku is required")
	}
	if v.BasePrice != nil && v.BasePrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("variant %s base price must not be negative", v.SKU))
	}
	if len(v.PriceTiers) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("variant %s requires at least one price tier", v.SKU))
	}
	for _, tier := range v.PriceTiers {
		if tier.MinQuantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("variant %s has a tier with minimum quantity below 1", v.SKU))
		}
		if tier.MaxQuantity != nil && *tier.MaxQuantity < tier.MinQuantity {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("variant %s has a tier with inverted quantity range", v.SKU))
		}
		if tier.PricePerUnit.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("variant %s has a tier with negative price", v.SKU))
		}
	}
	primaries := 0
	for _, img := range v.Images {
		if img.URL == "" {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("variant %s has an image without url", v.SKU))
		}
		if img.IsPrimary {
			primaries++
		}
	}
	if primaries > 1 {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("variant %s flags more than one primary image", v.SKU))
	}
	return nil
}

// ValidateForComposition is the "complete" gate the saga applies before any
// remote call: on top of ValidateProduct it requires at least one
// specification and at least one image somewhere in the variant set.
func ValidateForComposition(p Product) error {
	if err := ValidateProduct(p); err != nil {
		return err
	}
	if len(p.Specifications) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product requires at least one specification")
	}
	for _, spec := range p.Specifications {
		if spec.Name == "" || spec.Value == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "specifications require both name and value")
		}
	}
	if p.ImageCount() == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product requires at least one image")
	}
	return nil
}

// Package pricing holds the pure quantity-pricing rules: tier resolution and
// minimum-order-quantity checks. Nothing in this package performs I/O, so every
// function is safe for unlimited concurrent use.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sayeedajmal/saudimart-core/pkg/catalog"
	pkgerrors "github.com/sayeedajmal/saudimart-core/pkg/errors"
)

// ResolveUnitPrice returns the per-unit price for ordering the given quantity
// of the variant.
//
// Active tiers whose range contains the quantity take precedence. When
// overlapping tier data matches more than once, the tier with the highest
// MinQuantity wins, so the largest-quantity bracket decides bulk pricing
// deterministically. With no matching tier the price falls back to the
// variant's base price, then to the product's base price adjusted by the
// variant's additional-price delta, and finally fails with PRICE_UNAVAILABLE.
func ResolveUnitPrice(variant catalog.Variant, product catalog.Product, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("quantity must be positive, got %d", quantity))
	}

	var (
		matched bool
		best    catalog.PriceTier
	)
	for _, tier := range variant.ActiveTiers() {
		if !tier.Contains(quantity) {
			continue
		}
		if !matched || tier.MinQuantity > best.MinQuantity {
			best = tier
			matched = true
		}
	}
	if matched {
		return best.PricePerUnit, nil
	}

	if variant.BasePrice != nil {
		return *variant.BasePrice, nil
	}
	if product.BasePrice != nil {
		price := *product.BasePrice
		if variant.AdditionalPrice != nil {
			price = price.Add(*variant.AdditionalPrice)
		}
		return price, nil
	}

	return decimal.Zero, pkgerrors.New(pkgerrors.CodePriceUnavailable,
		fmt.Sprintf("no tier or base price covers quantity %d for variant %s", quantity, variant.SKU)).
		WithDetails(map[string]any{
			"variant_id": variant.ID,
			"product_id": product.ID,
			"quantity":   quantity,
		})
}

package quotes

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sayeedajmal/saudimart-core/internal/pricing"
	"github.com/sayeedajmal/saudimart-core/pkg/catalog"
	"github.com/sayeedajmal/saudimart-core/pkg/enums"
	pkgerrors "github.com/sayeedajmal/saudimart-core/pkg/errors"
)

func ensureEditable(quote catalog.Quote) error {
	if quote.Status == enums.QuoteStatusDraft {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeQuoteNotEditable,
		fmt.Sprintf("line items can only change while the quote is a draft, status is %s", quote.Status)).
		WithDetails(map[string]any{"status": quote.Status.String()})
}

// recomputeTotals derives subtotal, tax and total from the line items. The
// engine never trusts stored totals; they are overwritten on every mutation.
func recomputeTotals(quote *catalog.Quote, taxRate decimal.Decimal) {
	subtotal := decimal.Zero
	for _, item := range quote.LineItems {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	quote.Subtotal = subtotal
	quote.TaxAmount = subtotal.Mul(taxRate)
	quote.TotalAmount = subtotal.Add(quote.TaxAmount)
}

// AddLineItem prices and appends one product/variant/quantity entry. The unit
// price is resolved once, here; the line item keeps that snapshot even if the
// variant's tiers change later. Quantity goes through the minimum-order check
// first and is never clamped on the quote path.
func AddLineItem(quote *catalog.Quote, product catalog.Product, variantID string, quantity int, taxRate decimal.Decimal) (catalog.QuoteLineItem, error) {
	if err := ensureEditable(*quote); err != nil {
		return catalog.QuoteLineItem{}, err
	}

	variant, ok := product.FindVariant(variantID)
	if !ok {
		return catalog.QuoteLineItem{}, pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("variant %s does not belong to product %s", variantID, product.ID))
	}

	if _, err := pricing.ValidateQuantity(quantity, product.MOQ); err != nil {
		return catalog.QuoteLineItem{}, err
	}

	unitPrice, err := pricing.ResolveUnitPrice(variant, product, quantity)
	if err != nil {
		return catalog.QuoteLineItem{}, err
	}

	item := catalog.QuoteLineItem{
		ID:          uuid.NewString(),
		QuoteID:     quote.ID,
		ProductID:   product.ID,
		VariantID:   variant.ID,
		Quantity:    quantity,
		QuotedPrice: unitPrice,
		TotalPrice:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
	quote.LineItems = append(quote.LineItems, item)
	recomputeTotals(quote, taxRate)
	return item, nil
}

// RemoveLineItem drops one entry and rederives the totals.
func RemoveLineItem(quote *catalog.Quote, itemID string, taxRate decimal.Decimal) error {
	if err := ensureEditable(*quote); err != nil {
		return err
	}

	for i, item := range quote.LineItems {
		if item.ID != itemID {
			continue
		}
		quote.LineItems = append(quote.LineItems[:i], quote.LineItems[i+1:]...)
		recomputeTotals(quote, taxRate)
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeNotFound,
		fmt.Sprintf("quote %s has no line item %s", quote.ID, itemID))
}

// ChangeQuantity adjusts one entry's quantity. The snapshot unit price is
// kept; only the extended total and the derived quote totals move.
func ChangeQuantity(quote *catalog.Quote, itemID string, quantity, moq int, taxRate decimal.Decimal) error {
	if err := ensureEditable(*quote); err != nil {
		return err
	}

	if _, err := pricing.ValidateQuantity(quantity, moq); err != nil {
		return err
	}

	for i := range quote.LineItems {
		if quote.LineItems[i].ID != itemID {
			continue
		}
		quote.LineItems[i].Quantity = quantity
		quote.LineItems[i].TotalPrice = quote.LineItems[i].QuotedPrice.Mul(decimal.NewFromInt(int64(quantity)))
		recomputeTotals(quote, taxRate)
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeNotFound,
		fmt.Sprintf("quote %s has no line item %s", quote.ID, itemID))
}

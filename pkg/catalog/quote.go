package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sayeedajmal/saudimart-core/pkg/enums"
)

// Quote is a priced offer document. Subtotal, tax and total are derived from
// the line items and never set independently.
type Quote struct {
	ID          string            `json:"id"`
	QuoteNumber string            `json:"quote_number"`
	BuyerID     string            `json:"buyer_id"`
	SellerID    string            `json:"seller_id"`
	Status      enums.QuoteStatus `json:"status"`
	ValidUntil  time.Time         `json:"valid_until"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	TaxAmount   decimal.Decimal   `json:"tax_amount"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Notes       *string           `json:"notes,omitempty"`

	LineItems []QuoteLineItem `json:"line_items"`
}

// QuoteLineItem snapshots one product/variant/quantity entry. QuotedPrice is
// captured when the item is added; later tier changes never alter it.
type QuoteLineItem struct {
	ID          string          `json:"id"`
	QuoteID     string          `json:"quote_id"`
	ProductID   string          `json:"product_id"`
	VariantID   string          `json:"variant_id"`
	Quantity    int             `json:"quantity"`
	QuotedPrice decimal.Decimal `json:"quoted_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// FindLineItem returns the line item with the given id.
func (q Quote) FindLineItem(itemID string) (QuoteLineItem, bool) {
	for _, item := range q.LineItems {
		if item.ID == itemID {
			return item, true
		}
	}
	return QuoteLineItem{}, false
}

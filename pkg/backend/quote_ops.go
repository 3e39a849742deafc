package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sayeedajmal/saudimart-core/pkg/catalog"
	"github.com/sayeedajmal/saudimart-core/pkg/enums"
)

// QuoteFilter narrows a quote listing. Zero values are omitted.
type QuoteFilter struct {
	BuyerID  string
	SellerID string
	Status   enums.QuoteStatus
	Limit    int
}

// CreateQuote persists a new quote document with its line items.
func (c *Client) CreateQuote(ctx context.Context, quote catalog.Quote) (*catalog.Quote, error) {
	var stored catalog.Quote
	if err := c.do(ctx, http.MethodPost, "quotes", quote, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// UpdateQuote replaces an existing quote document.
func (c *Client) UpdateQuote(ctx context.Context, quoteID string, quote catalog.Quote) (*catalog.Quote, error) {
	var stored catalog.Quote
	if err := c.do(ctx, http.MethodPut, "quotes/"+escape(quoteID), quote, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// GetQuote fetches one quote by id.
func (c *Client) GetQuote(ctx context.Context, quoteID string) (*catalog.Quote, error) {
	var stored catalog.Quote
	if err := c.do(ctx, http.MethodGet, "quotes/"+escape(quoteID), nil, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListQuotes returns quotes matching the filter.
func (c *Client) ListQuotes(ctx context.Context, filter QuoteFilter) ([]catalog.Quote, error) {
	query := url.Values{}
	if filter.BuyerID != "" {
		query.Set("buyer_id", filter.BuyerID)
	}
	if filter.SellerID != "" {
		query.Set("seller_id", filter.SellerID)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status.String())
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	path := "quotes"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var quotes []catalog.Quote
	if err := c.do(ctx, http.MethodGet, path, nil, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

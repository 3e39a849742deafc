package quotes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sayeedajmal/saudimart-core/pkg/backend"
	"github.com/sayeedajmal/saudimart-core/pkg/catalog"
	"github.com/sayeedajmal/saudimart-core/pkg/config"
	"github.com/sayeedajmal/saudimart-core/pkg/enums"
	pkgerrors "github.com/sayeedajmal/saudimart-core/pkg/errors"
	"github.com/sayeedajmal/saudimart-core/pkg/logger"
)

// ProductSource supplies product aggregates for pricing. The cache-aside
// loader satisfies this in production.
type ProductSource interface {
	GetProduct(ctx context.Context, productID string) (*catalog.Product, error)
}

// Store persists quote documents. The backend client satisfies this.
type Store interface {
	CreateQuote(ctx context.Context, quote catalog.Quote) (*catalog.Quote, error)
	UpdateQuote(ctx context.Context, quoteID string, quote catalog.Quote) (*catalog.Quote, error)
	GetQuote(ctx context.Context, quoteID string) (*catalog.Quote, error)
	ListQuotes(ctx context.Context, filter backend.QuoteFilter) ([]catalog.Quote, error)
}

// ItemInput is one requested product/variant/quantity entry.
type ItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateInput opens a new draft quote.
type CreateInput struct {
	BuyerID  string      `json:"-"`
	SellerID string      `json:"seller_id" validate:"required"`
	Notes    *string     `json:"notes,omitempty"`
	Items    []ItemInput `json:"items" validate:"min=1,dive"`
}

// Service wires the pure quote rules to product loading and persistence.
type Service struct {
	store    Store
	products ProductSource
	log      *logger.Logger
	taxRate  decimal.Decimal
	validity time.Duration
	now      func() time.Time
}

// NewService builds the quote service. The tax rate comes from configuration;
// the engine itself has no opinion on it.
func NewService(store Store, products ProductSource, cfg config.QuoteConfig, log *logger.Logger) (*Service, error) {
	taxRate, err := cfg.TaxRateDecimal()
	if err != nil {
		return nil, err
	}
	return &Service{
		store:    store,
		products: products,
		log:      log,
		taxRate:  taxRate,
		validity: cfg.Validity(),
		now:      time.Now,
	}, nil
}

// newQuoteNumber builds a human-readable reference like Q-20260831-1f2a9c3d.
func newQuoteNumber(now time.Time) string {
	short := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("Q-%s-%s", now.UTC().Format("20060102"), short)
}

// Create opens a draft quote, prices every requested item, and persists the
// document. Any item that fails pricing or the minimum-order check aborts the
// whole creation before the remote call.
func (s *Service) Create(ctx context.Context, input CreateInput) (*catalog.Quote, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a quote needs at least one line item")
	}

	now := s.now()
	quote := catalog.Quote{
		QuoteNumber: newQuoteNumber(now),
		BuyerID:     input.BuyerID,
		SellerID:    input.SellerID,
		Status:      enums.QuoteStatusDraft,
		Notes:       input.Notes,
		Subtotal:    decimal.Zero,
		TaxAmount:   decimal.Zero,
		TotalAmount: decimal.Zero,
	}
	if s.validity > 0 {
		quote.ValidUntil = now.Add(s.validity)
	}

	for _, item := range input.Items {
		product, err := s.products.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if _, err := AddLineItem(&quote, *product, item.VariantID, item.Quantity, s.taxRate); err != nil {
			return nil, err
		}
	}

	stored, err := s.store.CreateQuote(ctx, quote)
	if err != nil {
		return nil, err
	}

	ctx = s.log.WithQuoteID(ctx, stored.ID)
	s.log.Info(ctx, fmt.Sprintf("quote %s created with %d items", stored.QuoteNumber, len(stored.LineItems)))
	return stored, nil
}

// Get fetches one quote, expiring it lazily when its validity window has
// elapsed. The expiry is persisted before the quote is returned.
func (s *Service) Get(ctx context.Context, quoteID string) (*catalog.Quote, error) {
	quote, err := s.store.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if ExpireIfDue(quote, s.now()) {
		return s.persist(ctx, quote)
	}
	return quote, nil
}

// List returns quotes matching the filter.
func (s *Service) List(ctx context.Context, filter backend.QuoteFilter) ([]catalog.Quote, error) {
	return s.store.ListQuotes(ctx, filter)
}

// AddItem prices and appends one line item to a draft quote.
func (s *Service) AddItem(ctx context.Context, quoteID string, item ItemInput) (*catalog.Quote, error) {
	quote, err := s.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.GetProduct(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if _, err := AddLineItem(quote, *product, item.VariantID, item.Quantity, s.taxRate); err != nil {
		return nil, err
	}
	return s.persist(ctx, quote)
}

// RemoveItem drops one line item from a draft quote.
func (s *Service) RemoveItem(ctx context.Context, quoteID, itemID string) (*catalog.Quote, error) {
	quote, err := s.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if err := RemoveLineItem(quote, itemID, s.taxRate); err != nil {
		return nil, err
	}
	return s.persist(ctx, quote)
}

// ChangeItemQuantity adjusts one line item's quantity on a draft quote. The
// minimum-order check uses the product's current minimum; the captured unit
// price is untouched.
func (s *Service) ChangeItemQuantity(ctx context.Context, quoteID, itemID string, quantity int) (*catalog.Quote, error) {
	quote, err := s.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	item, ok := quote.FindLineItem(itemID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("quote %s has no line item %s", quoteID, itemID))
	}

	product, err := s.products.GetProduct(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if err := ChangeQuantity(quote, itemID, quantity, product.MOQ, s.taxRate); err != nil {
		return nil, err
	}
	return s.persist(ctx, quote)
}

// ChangeStatus applies a lifecycle transition and persists the result.
func (s *Service) ChangeStatus(ctx context.Context, quoteID string, to enums.QuoteStatus) (*catalog.Quote, error) {
	quote, err := s.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if err := Transition(quote, to); err != nil {
		return nil, err
	}

	stored, err := s.persist(ctx, quote)
	if err != nil {
		return nil, err
	}

	ctx = s.log.WithQuoteID(ctx, stored.ID)
	s.log.Info(ctx, fmt.Sprintf("quote %s moved to %s", stored.QuoteNumber, stored.Status))
	return stored, nil
}

func (s *Service) persist(ctx context.Context, quote *catalog.Quote) (*catalog.Quote, error) {
	return s.store.UpdateQuote(ctx, quote.ID, *quote)
}

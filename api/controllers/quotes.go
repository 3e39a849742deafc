package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sayeedajmal/saudimart-core/api/responses"
	"github.com/sayeedajmal/saudimart-core/api/validators"
	"github.com/sayeedajmal/saudimart-core/internal/quotes"
	"github.com/sayeedajmal/saudimart-core/pkg/auth"
	"github.com/sayeedajmal/saudimart-core/pkg/backend"
	"github.com/sayeedajmal/saudimart-core/pkg/catalog"
	"github.com/sayeedajmal/saudimart-core/pkg/enums"
	pkgerrors "github.com/sayeedajmal/saudimart-core/pkg/errors"
	"github.com/sayeedajmal/saudimart-core/pkg/logger"
)

// QuoteService is the quotation surface the controllers drive.
type QuoteService interface {
	Create(ctx context.Context, input quotes.CreateInput) (*catalog.Quote, error)
	Get(ctx context.Context, quoteID string) (*catalog.Quote, error)
	List(ctx context.Context, filter backend.QuoteFilter) ([]catalog.Quote, error)
	AddItem(ctx context.Context, quoteID string, item quotes.ItemInput) (*catalog.Quote, error)
	RemoveItem(ctx context.Context, quoteID, itemID string) (*catalog.Quote, error)
	ChangeItemQuantity(ctx context.Context, quoteID, itemID string, quantity int) (*catalog.Quote, error)
	ChangeStatus(ctx context.Context, quoteID string, to enums.QuoteStatus) (*catalog.Quote, error)
}

// CreateQuote handles POST /api/v1/quotes. The buyer identity comes from the
// verified token, never from the body.
func CreateQuote(svc QuoteService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var input quotes.CreateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.BuyerID = identity.UserID
		if input.Notes != nil {
			trimmed := validators.SanitizeString(*input.Notes, 2000)
			input.Notes = &trimmed
		}

		quote, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, quote)
	}
}

// GetQuote handles GET /api/v1/quotes/{quoteID}.
func GetQuote(svc QuoteService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quote, err := svc.Get(r.Context(), chi.URLParam(r, "quoteID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// ListQuotes handles GET /api/v1/quotes. Buyers see their own quotes and
// sellers theirs; an admin may filter freely via buyer_id/seller_id.
func ListQuotes(svc QuoteService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		filter := backend.QuoteFilter{
			BuyerID:  strings.TrimSpace(r.URL.Query().Get("buyer_id")),
			SellerID: strings.TrimSpace(r.URL.Query().Get("seller_id")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseQuoteStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filter.Status = status
		}
		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.Limit = limit

		switch identity.Role {
		case enums.ActorRoleBuyer:
			filter.BuyerID = identity.UserID
		case enums.ActorRoleSeller:
			filter.SellerID = identity.UserID
		}

		listed, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// AddQuoteItem handles POST /api/v1/quotes/{quoteID}/items.
func AddQuoteItem(svc QuoteService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.AddItem(r.Context(), chi.URLParam(r, "quoteID"), quotes.ItemInput{
			ProductID: req.ProductID,
			VariantID: req.VariantID,
			Quantity:  req.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// RemoveQuoteItem handles DELETE /api/v1/quotes/{quoteID}/items/{itemID}.
func RemoveQuoteItem(svc QuoteService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quote, err := svc.RemoveItem(r.Context(), chi.URLParam(r, "quoteID"), chi.URLParam(r, "itemID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

type changeQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// ChangeQuoteItemQuantity handles PATCH /api/v1/quotes/{quoteID}/items/{itemID}.
func ChangeQuoteItemQuantity(svc QuoteService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req changeQuantityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.ChangeItemQuantity(r.Context(),
			chi.URLParam(r, "quoteID"), chi.URLParam(r, "itemID"), req.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

type changeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ChangeQuoteStatus handles POST /api/v1/quotes/{quoteID}/status.
func ChangeQuoteStatus(svc QuoteService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req changeStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseQuoteStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target status"))
			return
		}

		quote, err := svc.ChangeStatus(r.Context(), chi.URLParam(r, "quoteID"), status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

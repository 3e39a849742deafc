package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sayeedajmal/saudimart-core/api/responses"
	"github.com/sayeedajmal/saudimart-core/api/validators"
	"github.com/sayeedajmal/saudimart-core/internal/composer"
	"github.com/sayeedajmal/saudimart-core/pkg/catalog"
	"github.com/sayeedajmal/saudimart-core/pkg/enums"
	pkgerrors "github.com/sayeedajmal/saudimart-core/pkg/errors"
	"github.com/sayeedajmal/saudimart-core/pkg/logger"
)

// ComposeService runs product composition sagas.
type ComposeService interface {
	Compose(ctx context.Context, draft composer.ProductDraft) (*composer.Result, error)
}

// ProductReader serves product aggregates.
type ProductReader interface {
	GetProduct(ctx context.Context, productID string) (*catalog.Product, error)
}

type subResultView struct {
	EntityType string `json:"entity_type"`
	Label      string `json:"label"`
	EntityID   string `json:"entity_id,omitempty"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

type composeView struct {
	Mode       string          `json:"mode"`
	Outcome    string          `json:"outcome"`
	ProductID  string          `json:"product_id"`
	SubResults []subResultView `json:"sub_results"`
}

func newComposeView(result *composer.Result) composeView {
	view := composeView{
		Mode:       result.Mode.String(),
		Outcome:    result.Outcome.String(),
		ProductID:  result.ProductID,
		SubResults: make([]subResultView, 0, len(result.SubResults)),
	}
	for _, sub := range result.SubResults {
		item := subResultView{
			EntityType: sub.EntityType.String(),
			Label:      sub.Label,
			EntityID:   sub.EntityID,
			Success:    sub.Succeeded(),
		}
		if sub.Err != nil {
			item.Error = sub.Err.Error()
		}
		view.SubResults = append(view.SubResults, item)
	}
	return view
}

// ComposeProduct handles POST /api/v1/products/compose. A partial success
// still answers 207 with every sub-entity outcome, so the caller can retry
// exactly the failed ones.
func ComposeProduct(svc ComposeService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft composer.ProductDraft
		if err := validators.DecodeJSONBody(r, &draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Compose(r.Context(), draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		switch result.Outcome {
		case enums.CompositionOutcomeTotalFailure:
			responses.WriteError(r.Context(), logg, w, result.ProductErr)
		case enums.CompositionOutcomePartialSuccess:
			responses.WriteSuccessStatus(w, http.StatusMultiStatus, newComposeView(result))
		default:
			status := http.StatusCreated
			if result.Mode == enums.CompositionModeUpdate {
				status = http.StatusOK
			}
			responses.WriteSuccessStatus(w, status, newComposeView(result))
		}
	}
}

// GetProduct handles GET /api/v1/products/{productID}.
func GetProduct(reader ProductReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productID")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		product, err := reader.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

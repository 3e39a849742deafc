package composer

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/sayeedajmal/saudimart-core/pkg/backend"
	"github.com/sayeedajmal/saudimart-core/pkg/catalog"
	"github.com/sayeedajmal/saudimart-core/pkg/enums"
	pkgerrors "github.com/sayeedajmal/saudimart-core/pkg/errors"
)

// Backend is the slice of the persistence client the saga drives. Each call
// addresses exactly one entity and carries its own timeout.
type Backend interface {
	CreateProduct(ctx context.Context, payload backend.ProductPayload) (*catalog.Product, error)
	UpdateProduct(ctx context.Context, productID string, payload backend.ProductPayload) (*catalog.Product, error)
	CreateVariant(ctx context.Context, payload backend.VariantPayload) (*catalog.Variant, error)
	UpdateVariant(ctx context.Context, variantID string, payload backend.VariantPayload) (*catalog.Variant, error)
	CreateImage(ctx context.Context, payload backend.ImagePayload) (*catalog.Image, error)
	UpdateImage(ctx context.Context, imageID string, payload backend.ImagePayload) (*catalog.Image, error)
	CreateSpecification(ctx context.Context, payload backend.SpecificationPayload) (*catalog.Specification, error)
	UpdateSpecification(ctx context.Context, specID string, payload backend.SpecificationPayload) (*catalog.Specification, error)
	CreatePriceTier(ctx context.Context, payload backend.PriceTierPayload) (*catalog.PriceTier, error)
	UpdatePriceTier(ctx context.Context, tierID string, payload backend.PriceTierPayload) (*catalog.PriceTier, error)
}

// SubResult is the settled outcome of one sub-entity submission.
type SubResult struct {
	EntityType enums.CatalogEntityType `json:"entity_type"`
	Label      string                  `json:"label"`
	EntityID   string                  `json:"entity_id,omitempty"`
	Err        error                   `json:"-"`
}

// Succeeded reports whether the submission settled without error.
func (r SubResult) Succeeded() bool {
	return r.Err == nil
}

// Result is the full classification of one composition run. SubResults keeps
// the draft's input order regardless of completion timing.
type Result struct {
	Mode       enums.CompositionMode    `json:"mode"`
	Outcome    enums.CompositionOutcome `json:"outcome"`
	ProductID  string                   `json:"product_id,omitempty"`
	ProductErr error                    `json:"-"`
	SubResults []SubResult              `json:"sub_results"`
}

// FailedSubResults returns only the failed submissions, preserving order.
func (r *Result) FailedSubResults() []SubResult {
	var failed []SubResult
	for _, sub := range r.SubResults {
		if sub.Err != nil {
			failed = append(failed, sub)
		}
	}
	return failed
}

// CombinedError folds every failure into one error, or nil on full success.
// Independent failures are combined rather than shadowing each other.
func (r *Result) CombinedError() error {
	errs := make([]error, 0, len(r.SubResults)+1)
	if r.ProductErr != nil {
		errs = append(errs, r.ProductErr)
	}
	for _, sub := range r.SubResults {
		if sub.Err != nil {
			errs = append(errs, sub.Err)
		}
	}
	return multierr.Combine(errs...)
}

// Saga runs product compositions against the backend.
type Saga struct {
	backend Backend
}

// NewSaga builds a composition saga over the given backend.
func NewSaga(b Backend) *Saga {
	return &Saga{backend: b}
}

// Compose creates or updates the product with its full graph.
//
// The product record goes first; if it fails, nothing else is attempted and
// the run classifies as total failure. On success every variant group and
// specification is submitted concurrently and independently, and the saga
// waits for all of them to settle before classifying. A tier or image whose
// parent variant was not saved is reported failed without being submitted.
// Malformed drafts are rejected before any remote call.
func (s *Saga) Compose(ctx context.Context, draft ProductDraft) (*Result, error) {
	if err := catalog.ValidateForComposition(draft.toProduct()); err != nil {
		return nil, err
	}

	result := &Result{Mode: draft.Mode()}

	productID, err := s.submitProduct(ctx, draft)
	if err != nil {
		result.Outcome = enums.CompositionOutcomeTotalFailure
		result.ProductErr = pkgerrors.Wrap(pkgerrors.CodeProductCreation, err,
			fmt.Sprintf("product %s was not saved", draft.SKU))
		return result, nil
	}
	result.ProductID = productID

	result.SubResults = s.submitGraph(ctx, draft, productID)

	result.Outcome = enums.CompositionOutcomeFullSuccess
	for _, sub := range result.SubResults {
		if sub.Err != nil {
			result.Outcome = enums.CompositionOutcomePartialSuccess
			break
		}
	}
	return result, nil
}

func (s *Saga) submitProduct(ctx context.Context, draft ProductDraft) (string, error) {
	payload := backend.ProductPayload{
		SKU:         draft.SKU,
		Name:        draft.Name,
		Description: draft.Description,
		BasePrice:   draft.BasePrice,
		MOQ:         draft.MOQ,
		IsActive:    draft.IsActive,
		CategoryID:  draft.CategoryID,
		Weight:      draft.Weight,
		WeightUnit:  draft.WeightUnit,
		Dimensions:  draft.Dimensions,
	}

	if draft.Mode() == enums.CompositionModeUpdate {
		product, err := s.backend.UpdateProduct(ctx, *draft.ID, payload)
		if err != nil {
			return "", err
		}
		return product.ID, nil
	}

	product, err := s.backend.CreateProduct(ctx, payload)
	if err != nil {
		return "", err
	}
	return product.ID, nil
}

// graphPlan pre-assigns one result slot per sub-entity in draft order, so the
// final report never depends on completion timing.
type graphPlan struct {
	results []SubResult
	next    int
}

func (p *graphPlan) slot(entityType enums.CatalogEntityType, label string) int {
	p.results = append(p.results, SubResult{EntityType: entityType, Label: label})
	p.next++
	return p.next - 1
}

func (p *graphPlan) settle(idx int, entityID string, err error) {
	p.results[idx].EntityID = entityID
	p.results[idx].Err = err
}

func (s *Saga) submitGraph(ctx context.Context, draft ProductDraft, productID string) []SubResult {
	plan := &graphPlan{}

	type variantGroup struct {
		draft      VariantDraft
		variantIdx int
		tierIdxs   []int
		imageIdxs  []int
	}

	groups := make([]variantGroup, 0, len(draft.Variants))
	for _, v := range draft.Variants {
		group := variantGroup{
			draft:      v,
			variantIdx: plan.slot(enums.CatalogEntityVariant, fmt.Sprintf("variant %s", v.SKU)),
		}
		for _, tier := range v.PriceTiers {
			group.tierIdxs = append(group.tierIdxs, plan.slot(enums.CatalogEntityPriceTier,
				fmt.Sprintf("price tier %d+ of variant %s", tier.MinQuantity, v.SKU)))
		}
		for _, img := range v.Images {
			group.imageIdxs = append(group.imageIdxs, plan.slot(enums.CatalogEntityImage,
				fmt.Sprintf("image %s of variant %s", img.URL, v.SKU)))
		}
		groups = append(groups, group)
	}

	specIdxs := make([]int, 0, len(draft.Specifications))
	for _, spec := range draft.Specifications {
		specIdxs = append(specIdxs, plan.slot(enums.CatalogEntitySpecification,
			fmt.Sprintf("specification %s", spec.Name)))
	}

	var wg sync.WaitGroup

	for _, group := range groups {
		wg.Add(1)
		go func(group variantGroup) {
			defer wg.Done()
			s.submitVariantGroup(ctx, plan, group.draft, productID,
				group.variantIdx, group.tierIdxs, group.imageIdxs)
		}(group)
	}

	for i, spec := range draft.Specifications {
		wg.Add(1)
		go func(idx int, spec SpecificationDraft) {
			defer wg.Done()
			id, err := s.submitSpecification(ctx, spec, productID)
			plan.settle(idx, id, subError(err, plan.results[idx].Label))
		}(specIdxs[i], spec)
	}

	wg.Wait()
	return plan.results
}

// submitVariantGroup saves one variant, then fans out its tiers and images.
// Tiers and images need the variant's identity, so a failed variant settles
// its dependents as failed without submitting them.
func (s *Saga) submitVariantGroup(ctx context.Context, plan *graphPlan, v VariantDraft, productID string, variantIdx int, tierIdxs, imageIdxs []int) {
	variantID, err := s.submitVariant(ctx, v, productID)
	plan.settle(variantIdx, variantID, subError(err, plan.results[variantIdx].Label))

	if err != nil {
		dependency := pkgerrors.New(pkgerrors.CodeSubEntityCreation,
			fmt.Sprintf("variant %s was not saved, dependent entity skipped", v.SKU))
		for _, idx := range tierIdxs {
			plan.settle(idx, "", dependency)
		}
		for _, idx := range imageIdxs {
			plan.settle(idx, "", dependency)
		}
		return
	}

	var wg sync.WaitGroup
	for i, tier := range v.PriceTiers {
		wg.Add(1)
		go func(idx int, tier PriceTierDraft) {
			defer wg.Done()
			id, err := s.submitPriceTier(ctx, tier, variantID)
			plan.settle(idx, id, subError(err, plan.results[idx].Label))
		}(tierIdxs[i], tier)
	}
	for i, img := range v.Images {
		wg.Add(1)
		go func(idx int, img ImageDraft) {
			defer wg.Done()
			id, err := s.submitImage(ctx, img, variantID)
			plan.settle(idx, id, subError(err, plan.results[idx].Label))
		}(imageIdxs[i], img)
	}
	wg.Wait()
}

func (s *Saga) submitVariant(ctx context.Context, v VariantDraft, productID string) (string, error) {
	payload := backend.VariantPayload{
		ProductID:       productID,
		SKU:             v.SKU,
		Name:            v.Name,
		BasePrice:       v.BasePrice,
		AdditionalPrice: v.AdditionalPrice,
		IsActive:        v.IsActive,
	}
	if v.ID != nil && *v.ID != "" {
		variant, err := s.backend.UpdateVariant(ctx, *v.ID, payload)
		if err != nil {
			return "", err
		}
		return variant.ID, nil
	}
	variant, err := s.backend.CreateVariant(ctx, payload)
	if err != nil {
		return "", err
	}
	return variant.ID, nil
}

func (s *Saga) submitPriceTier(ctx context.Context, tier PriceTierDraft, variantID string) (string, error) {
	payload := backend.PriceTierPayload{
		VariantID:    variantID,
		MinQuantity:  tier.MinQuantity,
		MaxQuantity:  tier.MaxQuantity,
		PricePerUnit: tier.PricePerUnit,
		IsActive:     tier.IsActive,
	}
	if tier.ID != nil && *tier.ID != "" {
		stored, err := s.backend.UpdatePriceTier(ctx, *tier.ID, payload)
		if err != nil {
			return "", err
		}
		return stored.ID, nil
	}
	stored, err := s.backend.CreatePriceTier(ctx, payload)
	if err != nil {
		return "", err
	}
	return stored.ID, nil
}

func (s *Saga) submitImage(ctx context.Context, img ImageDraft, variantID string) (string, error) {
	payload := backend.ImagePayload{
		VariantID:    variantID,
		URL:          img.URL,
		AltText:      img.AltText,
		DisplayOrder: img.DisplayOrder,
		IsPrimary:    img.IsPrimary,
	}
	if img.ID != nil && *img.ID != "" {
		stored, err := s.backend.UpdateImage(ctx, *img.ID, payload)
		if err != nil {
			return "", err
		}
		return stored.ID, nil
	}
	stored, err := s.backend.CreateImage(ctx, payload)
	if err != nil {
		return "", err
	}
	return stored.ID, nil
}

func (s *Saga) submitSpecification(ctx context.Context, spec SpecificationDraft, productID string) (string, error) {
	payload := backend.SpecificationPayload{
		ProductID:    productID,
		Name:         spec.Name,
		Value:        spec.Value,
		Unit:         spec.Unit,
		DisplayOrder: spec.DisplayOrder,
	}
	if spec.ID != nil && *spec.ID != "" {
		stored, err := s.backend.UpdateSpecification(ctx, *spec.ID, payload)
		if err != nil {
			return "", err
		}
		return stored.ID, nil
	}
	stored, err := s.backend.CreateSpecification(ctx, payload)
	if err != nil {
		return "", err
	}
	return stored.ID, nil
}

func subError(err error, label string) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrap(pkgerrors.CodeSubEntityCreation, err,
		fmt.Sprintf("%s was not saved", label))
}

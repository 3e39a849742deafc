package composer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sayeedajmal/saudimart-core/pkg/backend"
	"github.com/sayeedajmal/saudimart-core/pkg/catalog"
	"github.com/sayeedajmal/saudimart-core/pkg/enums"
	pkgerrors "github.com/sayeedajmal/saudimart-core/pkg/errors"
	"github.com/sayeedajmal/saudimart-core/pkg/types"
)

type stubBackend struct {
	mu      sync.Mutex
	counter int
	calls   []string

	failProduct  bool
	failVariants map[string]bool
	failTiers    map[int]bool
	failImages   map[string]bool
	failSpecs    map[string]bool

	maxDelay time.Duration
}

func (s *stubBackend) record(call string) string {
	if s.maxDelay > 0 {
		time.Sleep(time.Duration(rand.Int63n(int64(s.maxDelay))))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	s.calls = append(s.calls, call)
	return fmt.Sprintf("id-%d", s.counter)
}

func (s *stubBackend) callLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *stubBackend) CreateProduct(_ context.Context, payload backend.ProductPayload) (*catalog.Product, error) {
	id := s.record("create product " + payload.SKU)
	if s.failProduct {
		return nil, errors.New("duplicate sku")
	}
	return &catalog.Product{ID: id, SKU: payload.SKU}, nil
}

func (s *stubBackend) UpdateProduct(_ context.Context, productID string, payload backend.ProductPayload) (*catalog.Product, error) {
	s.record("update product " + productID)
	if s.failProduct {
		return nil, errors.New("conflict")
	}
	return &catalog.Product{ID: productID, SKU: payload.SKU}, nil
}

func (s *stubBackend) CreateVariant(_ context.Context, payload backend.VariantPayload) (*catalog.Variant, error) {
	id := s.record(fmt.Sprintf("create variant %s parent=%s", payload.SKU, payload.ProductID))
	if s.failVariants[payload.SKU] {
		return nil, errors.New("variant rejected")
	}
	return &catalog.Variant{ID: id, SKU: payload.SKU, ProductID: payload.ProductID}, nil
}

func (s *stubBackend) UpdateVariant(_ context.Context, variantID string, payload backend.VariantPayload) (*catalog.Variant, error) {
	s.record(fmt.Sprintf("update variant %s parent=%s", variantID, payload.ProductID))
	if s.failVariants[payload.SKU] {
		return nil, errors.New("variant rejected")
	}
	return &catalog.Variant{ID: variantID, SKU: payload.SKU, ProductID: payload.ProductID}, nil
}

func (s *stubBackend) CreateImage(_ context.Context, payload backend.ImagePayload) (*catalog.Image, error) {
	id := s.record(fmt.Sprintf("create image %s parent=%s", payload.URL, payload.VariantID))
	if s.failImages[payload.URL] {
		return nil, errors.New("image rejected")
	}
	return &catalog.Image{ID: id, URL: payload.URL, VariantID: payload.VariantID}, nil
}

func (s *stubBackend) UpdateImage(_ context.Context, imageID string, payload backend.ImagePayload) (*catalog.Image, error) {
	s.record("update image " + imageID)
	if s.failImages[payload.URL] {
		return nil, errors.New("image rejected")
	}
	return &catalog.Image{ID: imageID, URL: payload.URL, VariantID: payload.VariantID}, nil
}

func (s *stubBackend) CreateSpecification(_ context.Context, payload backend.SpecificationPayload) (*catalog.Specification, error) {
	id := s.record(fmt.Sprintf("create specification %s parent=%s", payload.Name, payload.ProductID))
	if s.failSpecs[payload.Name] {
		return nil, errors.New("specification rejected")
	}
	return &catalog.Specification{ID: id, Name: payload.Name, ProductID: payload.ProductID}, nil
}

func (s *stubBackend) UpdateSpecification(_ context.Context, specID string, payload backend.SpecificationPayload) (*catalog.Specification, error) {
	s.record("update specification " + specID)
	if s.failSpecs[payload.Name] {
		return nil, errors.New("specification rejected")
	}
	return &catalog.Specification{ID: specID, Name: payload.Name, ProductID: payload.ProductID}, nil
}

func (s *stubBackend) CreatePriceTier(_ context.Context, payload backend.PriceTierPayload) (*catalog.PriceTier, error) {
	id := s.record(fmt.Sprintf("create tier %d parent=%s", payload.MinQuantity, payload.VariantID))
	if s.failTiers[payload.MinQuantity] {
		return nil, errors.New("tier rejected")
	}
	return &catalog.PriceTier{ID: id, MinQuantity: payload.MinQuantity, VariantID: payload.VariantID}, nil
}

func (s *stubBackend) UpdatePriceTier(_ context.Context, tierID string, payload backend.PriceTierPayload) (*catalog.PriceTier, error) {
	s.record("update tier " + tierID)
	if s.failTiers[payload.MinQuantity] {
		return nil, errors.New("tier rejected")
	}
	return &catalog.PriceTier{ID: tierID, MinQuantity: payload.MinQuantity, VariantID: payload.VariantID}, nil
}

func completeDraft() ProductDraft {
	return ProductDraft{
		SKU:  "SKU-1",
		Name: "Industrial Pump",
		MOQ:  1,
		Variants: []VariantDraft{{
			SKU: "SKU-1-A",
			PriceTiers: []PriceTierDraft{
				{MinQuantity: 1, PricePerUnit: decimal.RequireFromString("10"), IsActive: true},
				{MinQuantity: 50, PricePerUnit: decimal.RequireFromString("8"), IsActive: true},
			},
			Images: []ImageDraft{{URL: "https://img/1", IsPrimary: true}},
		}},
		Specifications: []SpecificationDraft{{Name: "material", Value: "steel"}},
	}
}

func TestComposeFullSuccess(t *testing.T) {
	t.Parallel()

	stub := &stubBackend{}
	result, err := NewSaga(stub).Compose(context.Background(), completeDraft())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if result.Outcome != enums.CompositionOutcomeFullSuccess {
		t.Fatalf("expected full success, got %s", result.Outcome)
	}
	if result.Mode != enums.CompositionModeCreate {
		t.Fatalf("a draft without an id composes in create mode, got %s", result.Mode)
	}
	if result.ProductID == "" {
		t.Fatal("product id missing from the result")
	}
	if len(result.SubResults) != 5 {
		t.Fatalf("expected 5 sub-results for 1 variant, 2 tiers, 1 image and 1 specification, got %d", len(result.SubResults))
	}
	for _, sub := range result.SubResults {
		if !sub.Succeeded() || sub.EntityID == "" {
			t.Fatalf("sub-entity %s did not settle successfully: %+v", sub.Label, sub)
		}
	}
	if result.CombinedError() != nil {
		t.Fatalf("full success must combine to nil, got %v", result.CombinedError())
	}
}

func TestComposeTagsParentIdentities(t *testing.T) {
	t.Parallel()

	stub := &stubBackend{}
	result, err := NewSaga(stub).Compose(context.Background(), completeDraft())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	var variantID string
	for _, sub := range result.SubResults {
		if sub.EntityType == enums.CatalogEntityVariant {
			variantID = sub.EntityID
		}
	}

	for _, call := range stub.callLog() {
		switch {
		case strings.Contains(call, "create variant"), strings.Contains(call, "create specification"):
			if !strings.Contains(call, "parent="+result.ProductID) {
				t.Fatalf("call not tagged with the product identity: %s", call)
			}
		case strings.Contains(call, "create tier"), strings.Contains(call, "create image"):
			if !strings.Contains(call, "parent="+variantID) {
				t.Fatalf("call not tagged with the variant identity: %s", call)
			}
		}
	}
}

func TestComposePartialSuccessNamesTheFailure(t *testing.T) {
	t.Parallel()

	stub := &stubBackend{failSpecs: map[string]bool{"material": true}}
	result, err := NewSaga(stub).Compose(context.Background(), completeDraft())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if result.Outcome != enums.CompositionOutcomePartialSuccess {
		t.Fatalf("expected partial success, got %s", result.Outcome)
	}
	failed := result.FailedSubResults()
	if len(failed) != 1 {
		t.Fatalf("exactly one failure expected, got %d", len(failed))
	}
	if failed[0].Label != "specification material" {
		t.Fatalf("failure not attributed to the right entity: %q", failed[0].Label)
	}
	if !pkgerrors.HasCode(failed[0].Err, pkgerrors.CodeSubEntityCreation) {
		t.Fatalf("expected SUB_ENTITY_CREATION_FAILED, got %v", failed[0].Err)
	}

	succeeded := 0
	for _, sub := range result.SubResults {
		if sub.Succeeded() {
			succeeded++
		}
	}
	if succeeded != 4 {
		t.Fatalf("the other 4 sub-entities must be reported succeeded, got %d", succeeded)
	}
}

func TestComposeProductFailureAttemptsNothingElse(t *testing.T) {
	t.Parallel()

	stub := &stubBackend{failProduct: true}
	result, err := NewSaga(stub).Compose(context.Background(), completeDraft())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if result.Outcome != enums.CompositionOutcomeTotalFailure {
		t.Fatalf("expected total failure, got %s", result.Outcome)
	}
	if !pkgerrors.HasCode(result.ProductErr, pkgerrors.CodeProductCreation) {
		t.Fatalf("expected PRODUCT_CREATION_FAILED, got %v", result.ProductErr)
	}
	if len(result.SubResults) != 0 {
		t.Fatalf("no sub-entity may be attempted after a product failure, got %d results", len(result.SubResults))
	}
	if calls := stub.callLog(); len(calls) != 1 {
		t.Fatalf("only the product call may reach the backend, got %v", calls)
	}
}

func TestComposeRejectsIncompleteDraftLocally(t *testing.T) {
	t.Parallel()

	stub := &stubBackend{}
	draft := completeDraft()
	draft.Specifications = nil

	_, err := NewSaga(stub).Compose(context.Background(), draft)
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if calls := stub.callLog(); len(calls) != 0 {
		t.Fatalf("a malformed draft must never reach the backend, got %v", calls)
	}
}

func TestComposeFailedVariantSkipsDependents(t *testing.T) {
	t.Parallel()

	stub := &stubBackend{failVariants: map[string]bool{"SKU-1-A": true}}
	result, err := NewSaga(stub).Compose(context.Background(), completeDraft())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if result.Outcome != enums.CompositionOutcomePartialSuccess {
		t.Fatalf("the specification still succeeds, expected partial success, got %s", result.Outcome)
	}
	for _, sub := range result.SubResults {
		switch sub.EntityType {
		case enums.CatalogEntityVariant, enums.CatalogEntityPriceTier, enums.CatalogEntityImage:
			if sub.Succeeded() {
				t.Fatalf("%s must fail with its parent variant", sub.Label)
			}
		case enums.CatalogEntitySpecification:
			if !sub.Succeeded() {
				t.Fatalf("specification must not be blocked by an unrelated variant failure")
			}
		}
	}

	for _, call := range stub.callLog() {
		if strings.Contains(call, "create tier") || strings.Contains(call, "create image") {
			t.Fatalf("dependent of a failed variant was submitted: %s", call)
		}
	}
}

func TestComposeResultOrderIsInputOrder(t *testing.T) {
	t.Parallel()

	draft := completeDraft()
	draft.Variants = append(draft.Variants, VariantDraft{
		SKU: "SKU-1-B",
		PriceTiers: []PriceTierDraft{
			{MinQuantity: 1, PricePerUnit: decimal.RequireFromString("4"), IsActive: true},
		},
		Images: []ImageDraft{{URL: "https://img/2"}},
	})
	draft.Specifications = append(draft.Specifications, SpecificationDraft{Name: "finish", Value: "matte"})

	wantLabels := []string{
		"variant SKU-1-A",
		"price tier 1+ of variant SKU-1-A",
		"price tier 50+ of variant SKU-1-A",
		"image https://img/1 of variant SKU-1-A",
		"variant SKU-1-B",
		"price tier 1+ of variant SKU-1-B",
		"image https://img/2 of variant SKU-1-B",
		"specification material",
		"specification finish",
	}

	// Randomized per-call delays shuffle completion order; the report must
	// not move.
	for run := 0; run < 5; run++ {
		stub := &stubBackend{maxDelay: 3 * time.Millisecond}
		result, err := NewSaga(stub).Compose(context.Background(), draft)
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		if len(result.SubResults) != len(wantLabels) {
			t.Fatalf("expected %d sub-results, got %d", len(wantLabels), len(result.SubResults))
		}
		for i, sub := range result.SubResults {
			if sub.Label != wantLabels[i] {
				t.Fatalf("run %d: slot %d is %q, want %q", run, i, sub.Label, wantLabels[i])
			}
		}
	}
}

func TestComposeUpdateModePreservesIdentities(t *testing.T) {
	t.Parallel()

	draft := completeDraft()
	draft.ID = types.Ptr("prod-9")
	draft.Variants[0].ID = types.Ptr("var-9")
	draft.Variants[0].PriceTiers[0].ID = types.Ptr("tier-9")

	stub := &stubBackend{}
	result, err := NewSaga(stub).Compose(context.Background(), draft)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if result.Mode != enums.CompositionModeUpdate {
		t.Fatalf("a draft with an id composes in update mode, got %s", result.Mode)
	}
	if result.ProductID != "prod-9" {
		t.Fatalf("update must keep the product identity, got %s", result.ProductID)
	}

	calls := stub.callLog()
	assertCall := func(want string) {
		t.Helper()
		for _, call := range calls {
			if strings.Contains(call, want) {
				return
			}
		}
		t.Fatalf("missing backend call %q in %v", want, calls)
	}
	assertCall("update product prod-9")
	assertCall("update variant var-9")
	assertCall("update tier tier-9")
	// Entities submitted without an id are fresh creates even in update mode.
	assertCall("create tier 50")
	assertCall("create image https://img/1")
	assertCall("create specification material")
}

package backend

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sayeedajmal/saudimart-core/pkg/catalog"
)

// ProductPayload is the single-entity product record, without its graph.
type ProductPayload struct {
	SKU         string           `json:"sku"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	BasePrice   *decimal.Decimal `json:"base_price,omitempty"`
	MOQ         int              `json:"minimum_order_quantity"`
	IsActive    bool             `json:"is_active"`
	CategoryID  *string          `json:"category_id,omitempty"`
	Weight      *decimal.Decimal `json:"weight,omitempty"`
	WeightUnit  *string          `json:"weight_unit,omitempty"`
	Dimensions  *string          `json:"dimensions,omitempty"`
}

// VariantPayload references its parent product by id.
type VariantPayload struct {
	ProductID       string           `json:"product_id"`
	SKU             string           `json:"sku"`
	Name            *string          `json:"name,omitempty"`
	BasePrice       *decimal.Decimal `json:"base_price,omitempty"`
	AdditionalPrice *decimal.Decimal `json:"additional_price,omitempty"`
	IsActive        bool             `json:"is_active"`
}

// ImagePayload references its parent variant by id.
type ImagePayload struct {
	VariantID    string  `json:"variant_id"`
	URL          string  `json:"url"`
	AltText      *string `json:"alt_text,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	IsPrimary    bool    `json:"is_primary"`
}

// SpecificationPayload references its parent product by id.
type SpecificationPayload struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Value        string  `json:"value"`
	Unit         *string `json:"unit,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
}

// PriceTierPayload references its parent variant by id.
type PriceTierPayload struct {
	VariantID    string          `json:"variant_id"`
	MinQuantity  int             `json:"min_quantity"`
	MaxQuantity  *int            `json:"max_quantity,omitempty"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	IsActive     bool            `json:"is_active"`
}

// CreateProduct submits the bare product record and returns the stored copy,
// including the backend-assigned id.
func (c *Client) CreateProduct(ctx context.Context, payload ProductPayload) (*catalog.Product, error) {
	var product catalog.Product
	if err := c.do(ctx, http.MethodPost, "products", payload, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces the bare product record.
func (c *Client) UpdateProduct(ctx context.Context, productID string, payload ProductPayload) (*catalog.Product, error) {
	var product catalog.Product
	if err := c.do(ctx, http.MethodPut, "products/"+escape(productID), payload, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct issues the delete request; the backend owns the semantics.
func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "products/"+escape(productID), nil, nil)
}

// GetProduct fetches a product with its nested variants, images,
// specifications, and price tiers.
func (c *Client) GetProduct(ctx context.Context, productID string) (*catalog.Product, error) {
	var product catalog.Product
	if err := c.do(ctx, http.MethodGet, "products/"+escape(productID), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateVariant submits one variant for the given product.
func (c *Client) CreateVariant(ctx context.Context, payload VariantPayload) (*catalog.Variant, error) {
	var variant catalog.Variant
	if err := c.do(ctx, http.MethodPost, "variants", payload, &variant); err != nil {
		return nil, err
	}
	return &variant, nil
}

// UpdateVariant replaces an existing variant record.
func (c *Client) UpdateVariant(ctx context.Context, variantID string, payload VariantPayload) (*catalog.Variant, error) {
	var variant catalog.Variant
	if err := c.do(ctx, http.MethodPut, "variants/"+escape(variantID), payload, &variant); err != nil {
		return nil, err
	}
	return &variant, nil
}

// CreateImage submits one image for the given variant.
func (c *Client) CreateImage(ctx context.Context, payload ImagePayload) (*catalog.Image, error) {
	var image catalog.Image
	if err := c.do(ctx, http.MethodPost, "images", payload, &image); err != nil {
		return nil, err
	}
	return &image, nil
}

// UpdateImage replaces an existing image record.
func (c *Client) UpdateImage(ctx context.Context, imageID string, payload ImagePayload) (*catalog.Image, error) {
	var image catalog.Image
	if err := c.do(ctx, http.MethodPut, "images/"+escape(imageID), payload, &image); err != nil {
		return nil, err
	}
	return &image, nil
}

// CreateSpecification submits one specification for the given product.
func (c *Client) CreateSpecification(ctx context.Context, payload SpecificationPayload) (*catalog.Specification, error) {
	var spec catalog.Specification
	if err := c.do(ctx, http.MethodPost, "specifications", payload, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// UpdateSpecification replaces an existing specification record.
func (c *Client) UpdateSpecification(ctx context.Context, specID string, payload SpecificationPayload) (*catalog.Specification, error) {
	var spec catalog.Specification
	if err := c.do(ctx, http.MethodPut, "specifications/"+escape(specID), payload, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// CreatePriceTier submits one price tier for the given variant.
func (c *Client) CreatePriceTier(ctx context.Context, payload PriceTierPayload) (*catalog.PriceTier, error) {
	var tier catalog.PriceTier
	if err := c.do(ctx, http.MethodPost, "price-tiers", payload, &tier); err != nil {
		return nil, err
	}
	return &tier, nil
}

// UpdatePriceTier replaces an existing price tier record.
func (c *Client) UpdatePriceTier(ctx context.Context, tierID string, payload PriceTierPayload) (*catalog.PriceTier, error) {
	var tier catalog.PriceTier
	if err := c.do(ctx, http.MethodPut, "price-tiers/"+escape(tierID), payload, &tier); err != nil {
		return nil, err
	}
	return &tier, nil
}

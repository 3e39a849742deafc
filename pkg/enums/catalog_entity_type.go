package enums

import "fmt"

// CatalogEntityType names the sub-entity kinds the composition saga submits.
type CatalogEntityType string

const (
	CatalogEntityVariant       CatalogEntityType = "variant"
	CatalogEntityImage         CatalogEntityType = "image"
	CatalogEntitySpecification CatalogEntityType = "specification"
	CatalogEntityPriceTier     CatalogEntityType = "price_tier"
)

var validCatalogEntityTypes = []CatalogEntityType{
	CatalogEntityVariant,
	CatalogEntityImage,
	CatalogEntitySpecification,
	CatalogEntityPriceTier,
}

// String implements fmt.Stringer.
func (c CatalogEntityType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CatalogEntityType.
func (c CatalogEntityType) IsValid() bool {
	for _, candidate := range validCatalogEntityTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCatalogEntityType converts raw input into a CatalogEntityType.
func ParseCatalogEntityType(value string) (CatalogEntityType, error) {
	for _, candidate := range validCatalogEntityTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid catalog entity type %q", value)
}

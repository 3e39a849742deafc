package pricing

import (
	"fmt"

	pkgerrors "github.com/sayeedajmal/saudimart-core/pkg/errors"
)

// Decision is the outcome of a minimum-order-quantity check. When the
// requested quantity is rejected, Suggested carries the smallest quantity the
// seller will accept.
type Decision struct {
	Accepted  bool `json:"accepted"`
	Quantity  int  `json:"quantity"`
	Suggested int  `json:"suggested,omitempty"`
}

// ValidateQuantity checks a requested order quantity against the minimum.
// Quantities at or above the minimum are accepted unchanged. Quantities below
// it are never raised silently; the caller gets BELOW_MINIMUM_ORDER plus the
// minimum as a suggestion, and decides whether to clamp with the buyer's
// consent.
func ValidateQuantity(requested, moq int) (Decision, error) {
	if requested <= 0 {
		return Decision{}, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("quantity must be positive, got %d", requested))
	}
	if moq < 1 {
		moq = 1
	}

	if requested >= moq {
		return Decision{Accepted: true, Quantity: requested}, nil
	}

	return Decision{Accepted: false, Quantity: requested, Suggested: moq},
		pkgerrors.New(pkgerrors.CodeBelowMinimumOrder,
			fmt.Sprintf("quantity %d is below the minimum order of %d", requested, moq)).
			WithDetails(map[string]any{
				"requested": requested,
				"minimum":   moq,
				"suggested": moq,
			})
}

// ClampForStepper raises a quantity to the minimum. Only interactive quantity
// steppers call this; order submission goes through ValidateQuantity instead.
func ClampForStepper(requested, moq int) int {
	if moq < 1 {
		moq = 1
	}
	if requested < moq {
		return moq
	}
	return requested
}

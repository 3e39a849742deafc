package enums

import "fmt"

// CompositionOutcome classifies a finished composition run.
type CompositionOutcome string

const (
	CompositionOutcomeFullSuccess    CompositionOutcome = "full_success"
	CompositionOutcomePartialSuccess CompositionOutcome = "partial_success"
	CompositionOutcomeTotalFailure   CompositionOutcome = "total_failure"
)

var validCompositionOutcomes = []CompositionOutcome{
	CompositionOutcomeFullSuccess,
	CompositionOutcomePartialSuccess,
	CompositionOutcomeTotalFailure,
}

// String implements fmt.Stringer.
func (c CompositionOutcome) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CompositionOutcome.
func (c CompositionOutcome) IsValid() bool {
	for _, candidate := range validCompositionOutcomes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCompositionOutcome converts raw input into a CompositionOutcome.
func ParseCompositionOutcome(value string) (CompositionOutcome, error) {
	for _, candidate := range validCompositionOutcomes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid composition outcome %q", value)
}

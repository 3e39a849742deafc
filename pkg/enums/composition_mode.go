package enums

import "fmt"

// CompositionMode selects create-vs-update behavior for the saga.
type CompositionMode string

const (
	CompositionModeCreate CompositionMode = "create"
	CompositionModeUpdate CompositionMode = "update"
)

var validCompositionModes = []CompositionMode{
	CompositionModeCreate,
	CompositionModeUpdate,
}

// String implements fmt.Stringer.
func (c CompositionMode) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CompositionMode.
func (c CompositionMode) IsValid() bool {
	for _, candidate := range validCompositionModes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCompositionMode converts raw input into a CompositionMode.
func ParseCompositionMode(value string) (CompositionMode, error) {
	for _, candidate := range validCompositionModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid composition mode %q", value)
}

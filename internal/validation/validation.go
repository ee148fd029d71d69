// Package validation holds the input limits shared by the point-award
// and discount endpoints.
package validation

import (
	"fmt"
	"strings"
)

// Limits for admin-entered purchase amounts and concepts.
const (
	MinAmount        = 100
	MaxAmount        = 1000000
	ConceptMinLength = 3
	ConceptMaxLength = 100

	// DefaultConcept is used when staff leave the concept blank.
	DefaultConcept = "Compra en el local"
)

// ValidateAmount checks a purchase amount in pesos against the allowed range.
func ValidateAmount(amount int) error {
	if amount < MinAmount {
		return fmt.Errorf("amount must be at least $%d", MinAmount)
	}
	if amount > MaxAmount {
		return fmt.Errorf("amount must not exceed $%d", MaxAmount)
	}
	return nil
}

// ValidateConcept trims the concept and checks its length, returning the
// trimmed value.
func ValidateConcept(concept string) (string, error) {
	trimmed := strings.TrimSpace(concept)
	if len(trimmed) < ConceptMinLength {
		return "", fmt.Errorf("concept must have at least %d characters", ConceptMinLength)
	}
	if len(trimmed) > ConceptMaxLength {
		return "", fmt.Errorf("concept must not exceed %d characters", ConceptMaxLength)
	}
	return trimmed, nil
}

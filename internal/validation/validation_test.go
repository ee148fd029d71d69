package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(100))
	assert.NoError(t, ValidateAmount(1000000))
	assert.Error(t, ValidateAmount(99))
	assert.Error(t, ValidateAmount(0))
	assert.Error(t, ValidateAmount(1000001))
}

func TestValidateConcept(t *testing.T) {
	concept, err := ValidateConcept("  Compra en el local  ")
	require.NoError(t, err)
	assert.Equal(t, "Compra en el local", concept)

	_, err = ValidateConcept("ab")
	assert.Error(t, err)

	_, err = ValidateConcept("   a   ")
	assert.Error(t, err)

	_, err = ValidateConcept(strings.Repeat("x", ConceptMaxLength+1))
	assert.Error(t, err)

	concept, err = ValidateConcept(strings.Repeat("x", ConceptMaxLength))
	require.NoError(t, err)
	assert.Len(t, concept, ConceptMaxLength)
}

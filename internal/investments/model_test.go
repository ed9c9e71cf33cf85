package investments

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateCreate(t *testing.T) {
	assert.NoError(t, ValidateCreate(decimal.NewFromInt(100), "https://cdn.example/proof.png"))
	assert.NoError(t, ValidateCreate(decimal.NewFromInt(2500), "https://cdn.example/proof.png"))
}

func TestValidateCreateBelowMinimum(t *testing.T) {
	err := ValidateCreate(decimal.NewFromFloat(99.99), "https://cdn.example/proof.png")
	assert.ErrorIs(t, err, ErrBelowMinimum)
}

func TestValidateCreateRequiresProof(t *testing.T) {
	err := ValidateCreate(decimal.NewFromInt(500), "")
	assert.ErrorIs(t, err, ErrNoProof)
}

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderCarriesCategoryAndContext(t *testing.T) {
	t.Parallel()

	base := NewStd("disk full")
	err := New(base).
		Category(CategoryDatabase).
		Priority(PriorityHigh).
		Context("operation", "save_odontogram").
		Build()

	assert.Equal(t, "disk full", err.Error())
	assert.Equal(t, CategoryDatabase, err.Category)
	assert.Equal(t, PriorityHigh, err.Priority)
	assert.Equal(t, "save_odontogram", err.GetContext()["operation"])
	assert.True(t, Is(err, base), "wrapped error must unwrap to the original")
}

func TestNewfFormatsMessage(t *testing.T) {
	t.Parallel()

	err := Newf("invalid tooth number %d", 99).
		Category(CategoryValidation).
		Build()
	assert.Equal(t, "invalid tooth number 99", err.Error())
	assert.True(t, IsValidation(err))
}

func TestNotFoundError(t *testing.T) {
	t.Parallel()

	err := NotFoundError("odontogram", 42)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.Contains(t, err.Error(), "odontogram")
	assert.Equal(t, "odontogram", err.GetContext()["resource"])
}

func TestIsCategorySeesThroughWrapping(t *testing.T) {
	t.Parallel()

	inner := ValidationError("seleccione un diente para continuar")
	wrapped := fmt.Errorf("wizard step failed: %w", inner)

	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsNotFound(wrapped))
}

func TestToothContext(t *testing.T) {
	t.Parallel()

	err := Newf("duplicate finding").
		Category(CategoryConflict).
		ToothContext(16, "corona").
		Build()

	ctx := err.GetContext()
	assert.Equal(t, 16, ctx["tooth_number"])
	assert.Equal(t, "corona", ctx["surface"])
}

func TestComponentDetection(t *testing.T) {
	t.Parallel()

	// built from inside the errors package itself, the component falls back
	err := Newf("boom").Build()
	assert.NotEmpty(t, err.GetComponent())

	// an explicit component wins over detection
	explicit := Newf("boom").Component("datastore").Build()
	assert.Equal(t, "datastore", explicit.GetComponent())
}

func TestGetContextReturnsCopy(t *testing.T) {
	t.Parallel()

	err := Newf("boom").Context("key", "value").Build()
	ctx := err.GetContext()
	require.NotNil(t, ctx)
	ctx["key"] = "mutated"
	assert.Equal(t, "value", err.GetContext()["key"])
}

package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderGID(t *testing.T) {
	t.Run("normalizes_bare_numeric_id", func(t *testing.T) {
		// When
		id, err := kernel.NewOrderGID("5551212")

		// Then
		require.NoError(t, err)
		assert.Equal(t, "gid://shopify/Order/5551212", id.String())
	})

	t.Run("passes_through_global_id_unchanged", func(t *testing.T) {
		// When
		id, err := kernel.NewOrderGID("gid://shopify/Order/42")

		// Then
		require.NoError(t, err)
		assert.Equal(t, "gid://shopify/Order/42", id.String())
	})

	t.Run("trims_surrounding_whitespace", func(t *testing.T) {
		// When
		id, err := kernel.NewOrderGID("  42  ")

		// Then
		require.NoError(t, err)
		assert.Equal(t, "gid://shopify/Order/42", id.String())
	})

	t.Run("rejects_empty_id", func(t *testing.T) {
		// When
		_, err := kernel.NewOrderGID("")

		// Then
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewFulfillmentOrderGID(t *testing.T) {
	t.Run("normalizes_bare_numeric_id", func(t *testing.T) {
		// When
		id, err := kernel.NewFulfillmentOrderGID("6876830302323")

		// Then
		require.NoError(t, err)
		assert.Equal(t, "gid://shopify/FulfillmentOrder/6876830302323", id.String())
	})

	t.Run("passes_through_global_id_unchanged", func(t *testing.T) {
		// When
		id, err := kernel.NewFulfillmentOrderGID("gid://shopify/FulfillmentOrder/99")

		// Then
		require.NoError(t, err)
		assert.Equal(t, "gid://shopify/FulfillmentOrder/99", id.String())
	})

	t.Run("rejects_empty_id", func(t *testing.T) {
		// When
		_, err := kernel.NewFulfillmentOrderGID("   ")

		// Then
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestGID_IsEqual(t *testing.T) {
	t.Run("equal_after_normalization", func(t *testing.T) {
		// Given
		bare, _ := kernel.NewOrderGID("42")
		global, _ := kernel.NewOrderGID("gid://shopify/Order/42")

		// Then
		assert.True(t, bare.IsEqual(global))
	})

	t.Run("different_ids_are_not_equal", func(t *testing.T) {
		// Given
		first, _ := kernel.NewOrderGID("42")
		second, _ := kernel.NewOrderGID("43")

		// Then
		assert.False(t, first.IsEqual(second))
	})

	t.Run("same_id_of_different_resources_is_not_equal", func(t *testing.T) {
		// Given
		orderID, _ := kernel.NewOrderGID("42")
		fulfillmentOrderID, _ := kernel.NewFulfillmentOrderGID("42")

		// Then
		assert.False(t, orderID.IsEqual(fulfillmentOrderID))
	})
}

func TestGID_Validate(t *testing.T) {
	t.Run("constructed_gid_is_valid", func(t *testing.T) {
		// Given
		id, err := kernel.NewFulfillmentOrderGID("1")
		require.NoError(t, err)

		// Then
		require.NoError(t, id.Validate())
	})

	t.Run("zero_value_gid_is_invalid", func(t *testing.T) {
		// Given
		var id kernel.GID

		// Then
		require.Error(t, id.Validate())
		assert.Equal(t, kernel.ErrGIDIsNotConstructed, id.Validate())
	})
}

package catalog_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantSnapshot(t *testing.T) {
	snapshot := catalog.VariantSnapshot{
		VariantID:  kernel.NewUUID(),
		ProductID:  kernel.NewUUID(),
		CategoryID: kernel.NewUUID(),
		BrandID:    kernel.NewUUID(),
		Stock:      5,
	}

	t.Run("should expose its classification as the promotion matching context", func(t *testing.T) {
		ctx := snapshot.TargetContext()

		assert.True(t, ctx.VariantID.IsEqual(snapshot.VariantID))
		assert.True(t, ctx.ProductID.IsEqual(snapshot.ProductID))
		assert.True(t, ctx.CategoryID.IsEqual(snapshot.CategoryID))
		assert.True(t, ctx.BrandID.IsEqual(snapshot.BrandID))
	})

	t.Run("should accept a quantity the stock covers", func(t *testing.T) {
		require.NoError(t, snapshot.CheckStock(5))
	})

	t.Run("should reject a quantity above the stock", func(t *testing.T) {
		assert.ErrorIs(t, snapshot.CheckStock(6), catalog.ErrInsufficientStock)
	})
}

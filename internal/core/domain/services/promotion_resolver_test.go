package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/promotion"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPromotion(
	t *testing.T,
	scope promotion.Scope,
	targetIDs []kernel.UUID,
	percent, priority int,
	active bool,
	startsAt, endsAt time.Time,
) *promotion.Promotion {
	t.Helper()
	p, err := promotion.NewPromotion(
		kernel.NewUUID(), "test promotion", scope, percent, priority, active, startsAt, endsAt, targetIDs)
	require.NoError(t, err)
	return p
}

func TestPromotionResolverResolve(t *testing.T) {
	now := time.Now()
	windowStart := now.Add(-time.Hour)
	windowEnd := now.Add(time.Hour)
	resolver := services.NewPromotionResolver()

	variantID := kernel.NewUUID()
	ctx := promotion.TargetContext{
		VariantID:  variantID,
		ProductID:  kernel.NewUUID(),
		CategoryID: kernel.NewUUID(),
		BrandID:    kernel.NewUUID(),
	}

	t.Run("should pick the candidate with the lowest priority", func(t *testing.T) {
		low := newTestPromotion(t, promotion.ScopeAll, nil, 5, 1, true, windowStart, windowEnd)
		high := newTestPromotion(t, promotion.ScopeAll, nil, 50, 10, true, windowStart, windowEnd)

		best, err := resolver.Resolve(ctx, []*promotion.Promotion{high, low}, now)

		require.NoError(t, err)
		require.NotNil(t, best)
		assert.True(t, best.ID().IsEqual(low.ID()))
	})

	t.Run("should break priority ties by the larger discount", func(t *testing.T) {
		small := newTestPromotion(t, promotion.ScopeAll, nil, 10, 5, true, windowStart, windowEnd)
		large := newTestPromotion(t, promotion.ScopeAll, nil, 30, 5, true, windowStart, windowEnd)

		best, err := resolver.Resolve(ctx, []*promotion.Promotion{small, large}, now)

		require.NoError(t, err)
		require.NotNil(t, best)
		assert.True(t, best.ID().IsEqual(large.ID()))
	})

	t.Run("should pick the same winner regardless of candidate order", func(t *testing.T) {
		a := newTestPromotion(t, promotion.ScopeAll, nil, 10, 3, true, windowStart, windowEnd)
		b := newTestPromotion(t, promotion.ScopeAll, nil, 25, 3, true, windowStart, windowEnd)
		c := newTestPromotion(t, promotion.ScopeAll, nil, 40, 7, true, windowStart, windowEnd)

		forward, err := resolver.Resolve(ctx, []*promotion.Promotion{a, b, c}, now)
		require.NoError(t, err)
		backward, err := resolver.Resolve(ctx, []*promotion.Promotion{c, b, a}, now)
		require.NoError(t, err)

		require.NotNil(t, forward)
		require.NotNil(t, backward)
		assert.True(t, forward.ID().IsEqual(b.ID()))
		assert.True(t, backward.ID().IsEqual(b.ID()))
	})

	t.Run("should deduplicate candidates matching through several target rows", func(t *testing.T) {
		p := newTestPromotion(t, promotion.ScopeVariant, []kernel.UUID{variantID}, 15, 1, true, windowStart, windowEnd)

		best, err := resolver.Resolve(ctx, []*promotion.Promotion{p, p, p}, now)

		require.NoError(t, err)
		require.NotNil(t, best)
		assert.True(t, best.ID().IsEqual(p.ID()))
	})

	t.Run("should skip inactive candidates", func(t *testing.T) {
		inactive := newTestPromotion(t, promotion.ScopeAll, nil, 90, 1, false, windowStart, windowEnd)
		active := newTestPromotion(t, promotion.ScopeAll, nil, 5, 9, true, windowStart, windowEnd)

		best, err := resolver.Resolve(ctx, []*promotion.Promotion{inactive, active}, now)

		require.NoError(t, err)
		require.NotNil(t, best)
		assert.True(t, best.ID().IsEqual(active.ID()))
	})

	t.Run("should skip candidates outside their validity window", func(t *testing.T) {
		expired := newTestPromotion(t, promotion.ScopeAll, nil, 90, 1, true,
			now.Add(-48*time.Hour), now.Add(-24*time.Hour))
		upcoming := newTestPromotion(t, promotion.ScopeAll, nil, 90, 1, true,
			now.Add(24*time.Hour), now.Add(48*time.Hour))

		best, err := resolver.Resolve(ctx, []*promotion.Promotion{expired, upcoming}, now)

		require.NoError(t, err)
		assert.Nil(t, best)
	})

	t.Run("should skip candidates targeting a different part of the catalog", func(t *testing.T) {
		other := newTestPromotion(t, promotion.ScopeVariant, []kernel.UUID{kernel.NewUUID()},
			90, 1, true, windowStart, windowEnd)

		best, err := resolver.Resolve(ctx, []*promotion.Promotion{other}, now)

		require.NoError(t, err)
		assert.Nil(t, best)
	})

	t.Run("should match through product, category and brand scopes", func(t *testing.T) {
		byProduct := newTestPromotion(t, promotion.ScopeProduct, []kernel.UUID{ctx.ProductID},
			10, 2, true, windowStart, windowEnd)
		byCategory := newTestPromotion(t, promotion.ScopeCategory, []kernel.UUID{ctx.CategoryID},
			10, 3, true, windowStart, windowEnd)
		byBrand := newTestPromotion(t, promotion.ScopeBrand, []kernel.UUID{ctx.BrandID},
			10, 1, true, windowStart, windowEnd)

		best, err := resolver.Resolve(ctx, []*promotion.Promotion{byProduct, byCategory, byBrand}, now)

		require.NoError(t, err)
		require.NotNil(t, best)
		assert.True(t, best.ID().IsEqual(byBrand.ID()))
	})

	t.Run("should return nil when no candidates are given", func(t *testing.T) {
		best, err := resolver.Resolve(ctx, nil, now)

		require.NoError(t, err)
		assert.Nil(t, best)
	})

	t.Run("should reject a candidate not built through its constructor", func(t *testing.T) {
		best, err := resolver.Resolve(ctx, []*promotion.Promotion{{}}, now)

		assert.ErrorIs(t, err, promotion.ErrPromotionIsNotConstructed)
		assert.Nil(t, best)
	})
}

package promotion_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/promotion"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, v int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromInt(v)
	require.NoError(t, err)
	return m
}

func TestNewPromotion(t *testing.T) {
	now := time.Now()
	windowStart := now.Add(-time.Hour)
	windowEnd := now.Add(time.Hour)

	t.Run("should create valid catalog-wide promotion", func(t *testing.T) {
		id := kernel.NewUUID()

		p, err := promotion.NewPromotion(id, "summer sale", promotion.ScopeAll,
			20, 1, true, windowStart, windowEnd, nil)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(id))
		assert.Equal(t, "summer sale", p.Name())
		assert.Equal(t, promotion.ScopeAll, p.Scope())
		assert.Equal(t, 20, p.Percent())
		assert.Equal(t, 1, p.Priority())
		assert.True(t, p.Active())
	})

	t.Run("should create targeted promotion with its targets", func(t *testing.T) {
		targets := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}

		p, err := promotion.NewPromotion(kernel.NewUUID(), "brand push", promotion.ScopeBrand,
			15, 2, true, windowStart, windowEnd, targets)

		require.NoError(t, err)
		assert.Equal(t, promotion.ScopeBrand, p.Scope())
		assert.Len(t, p.TargetIDs(), 2)
	})

	t.Run("should fail on catalog-wide promotion carrying targets", func(t *testing.T) {
		p, err := promotion.NewPromotion(kernel.NewUUID(), "summer sale", promotion.ScopeAll,
			20, 1, true, windowStart, windowEnd, []kernel.UUID{kernel.NewUUID()})

		require.Error(t, err)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail on targeted promotion without targets", func(t *testing.T) {
		p, err := promotion.NewPromotion(kernel.NewUUID(), "brand push", promotion.ScopeBrand,
			15, 2, true, windowStart, windowEnd, nil)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with percent outside 1..100", func(t *testing.T) {
		for _, percent := range []int{0, -5, 101} {
			p, err := promotion.NewPromotion(kernel.NewUUID(), "bad", promotion.ScopeAll,
				percent, 1, true, windowStart, windowEnd, nil)

			require.Error(t, err)
			assert.Nil(t, p)
		}
	})

	t.Run("should fail with unknown scope", func(t *testing.T) {
		p, err := promotion.NewPromotion(kernel.NewUUID(), "bad", promotion.ScopeUnknown,
			10, 1, true, windowStart, windowEnd, nil)

		require.Error(t, err)
		assert.Nil(t, p)
	})
}

func TestPromotionMatches(t *testing.T) {
	now := time.Now()
	windowStart := now.Add(-time.Hour)
	windowEnd := now.Add(time.Hour)

	ctx := promotion.TargetContext{
		VariantID:  kernel.NewUUID(),
		ProductID:  kernel.NewUUID(),
		CategoryID: kernel.NewUUID(),
		BrandID:    kernel.NewUUID(),
	}

	newPromotion := func(t *testing.T, scope promotion.Scope, targets []kernel.UUID) *promotion.Promotion {
		t.Helper()
		p, err := promotion.NewPromotion(kernel.NewUUID(), "match", scope,
			10, 1, true, windowStart, windowEnd, targets)
		require.NoError(t, err)
		return p
	}

	t.Run("should match everything with the catalog-wide scope", func(t *testing.T) {
		p := newPromotion(t, promotion.ScopeAll, nil)

		assert.True(t, p.Matches(ctx))
	})

	t.Run("should match each scope against its context id", func(t *testing.T) {
		cases := map[promotion.Scope]kernel.UUID{
			promotion.ScopeVariant:  ctx.VariantID,
			promotion.ScopeProduct:  ctx.ProductID,
			promotion.ScopeCategory: ctx.CategoryID,
			promotion.ScopeBrand:    ctx.BrandID,
		}

		for scope, target := range cases {
			p := newPromotion(t, scope, []kernel.UUID{kernel.NewUUID(), target})

			assert.True(t, p.Matches(ctx), scope.String())
		}
	})

	t.Run("should not match a foreign target", func(t *testing.T) {
		p := newPromotion(t, promotion.ScopeVariant, []kernel.UUID{kernel.NewUUID()})

		assert.False(t, p.Matches(ctx))
	})
}

func TestPromotionApply(t *testing.T) {
	now := time.Now()

	t.Run("should discount the price by the percentage", func(t *testing.T) {
		p, err := promotion.NewPromotion(kernel.NewUUID(), "sale", promotion.ScopeAll,
			20, 1, true, now.Add(-time.Hour), now.Add(time.Hour), nil)
		require.NoError(t, err)

		assert.True(t, p.Apply(money(t, 100_000)).IsEqual(money(t, 80_000)))
	})

	t.Run("should zero the price at one hundred percent", func(t *testing.T) {
		p, err := promotion.NewPromotion(kernel.NewUUID(), "free", promotion.ScopeAll,
			100, 1, true, now.Add(-time.Hour), now.Add(time.Hour), nil)
		require.NoError(t, err)

		assert.True(t, p.Apply(money(t, 100_000)).IsZero())
	})
}

func TestPromotionIsApplicableOn(t *testing.T) {
	now := time.Now()

	newPromotion := func(t *testing.T, active bool, startsAt, endsAt time.Time) *promotion.Promotion {
		t.Helper()
		p, err := promotion.NewPromotion(kernel.NewUUID(), "window", promotion.ScopeAll,
			10, 1, active, startsAt, endsAt, nil)
		require.NoError(t, err)
		return p
	}

	t.Run("should apply inside the window", func(t *testing.T) {
		p := newPromotion(t, true, now.Add(-time.Hour), now.Add(time.Hour))

		assert.True(t, p.IsApplicableOn(now))
	})

	t.Run("should apply on the window bounds", func(t *testing.T) {
		p := newPromotion(t, true, now, now.Add(time.Hour))

		assert.True(t, p.IsApplicableOn(now))
		assert.True(t, p.IsApplicableOn(now.Add(time.Hour)))
	})

	t.Run("should not apply when inactive or outside the window", func(t *testing.T) {
		inactive := newPromotion(t, false, now.Add(-time.Hour), now.Add(time.Hour))
		upcoming := newPromotion(t, true, now.Add(time.Hour), now.Add(2*time.Hour))
		past := newPromotion(t, true, now.Add(-2*time.Hour), now.Add(-time.Hour))

		assert.False(t, inactive.IsApplicableOn(now))
		assert.False(t, upcoming.IsApplicableOn(now))
		assert.False(t, past.IsApplicableOn(now))
	})
}

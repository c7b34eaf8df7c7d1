package voucher_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/voucher"
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

func TestNewVoucher(t *testing.T) {
	now := time.Now()
	windowStart := now.Add(-time.Hour)
	windowEnd := now.Add(time.Hour)

	t.Run("should create valid public voucher", func(t *testing.T) {
		id := kernel.NewUUID()

		v, err := voucher.NewVoucher(id, "WELCOME", voucher.KindAll,
			money(t, 10_000), money(t, 50_000), true, windowStart, windowEnd, nil)

		require.NoError(t, err)
		require.NoError(t, v.Validate())
		assert.True(t, v.ID().IsEqual(id))
		assert.Equal(t, "WELCOME", v.Code())
		assert.Equal(t, voucher.KindAll, v.Kind())
		assert.True(t, v.Discount().IsEqual(money(t, 10_000)))
		assert.True(t, v.MinOrder().IsEqual(money(t, 50_000)))
		assert.True(t, v.Active())
		assert.Nil(t, v.RankingID())
	})

	t.Run("should create rank voucher bound to its band", func(t *testing.T) {
		rankingID := kernel.NewUUID()

		v, err := voucher.NewVoucher(kernel.NewUUID(), "GOLD10", voucher.KindRank,
			money(t, 10_000), kernel.ZeroMoney(), true, windowStart, windowEnd, &rankingID)

		require.NoError(t, err)
		require.NotNil(t, v.RankingID())
		assert.True(t, v.RankingID().IsEqual(rankingID))
	})

	t.Run("should fail on rank voucher without a band", func(t *testing.T) {
		v, err := voucher.NewVoucher(kernel.NewUUID(), "GOLD10", voucher.KindRank,
			money(t, 10_000), kernel.ZeroMoney(), true, windowStart, windowEnd, nil)

		require.Error(t, err)
		assert.Nil(t, v)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail on public voucher carrying a band", func(t *testing.T) {
		rankingID := kernel.NewUUID()

		v, err := voucher.NewVoucher(kernel.NewUUID(), "WELCOME", voucher.KindAll,
			money(t, 10_000), kernel.ZeroMoney(), true, windowStart, windowEnd, &rankingID)

		require.Error(t, err)
		assert.Nil(t, v)
	})

	t.Run("should fail without a code", func(t *testing.T) {
		v, err := voucher.NewVoucher(kernel.NewUUID(), "", voucher.KindAll,
			money(t, 10_000), kernel.ZeroMoney(), true, windowStart, windowEnd, nil)

		require.Error(t, err)
		assert.Nil(t, v)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with unknown kind", func(t *testing.T) {
		v, err := voucher.NewVoucher(kernel.NewUUID(), "WELCOME", voucher.KindUnknown,
			money(t, 10_000), kernel.ZeroMoney(), true, windowStart, windowEnd, nil)

		require.Error(t, err)
		assert.Nil(t, v)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail when the window ends before it starts", func(t *testing.T) {
		v, err := voucher.NewVoucher(kernel.NewUUID(), "WELCOME", voucher.KindAll,
			money(t, 10_000), kernel.ZeroMoney(), true, windowEnd, windowStart, nil)

		require.Error(t, err)
		assert.Nil(t, v)
	})
}

func TestVoucherKind(t *testing.T) {
	t.Run("should mark group and rank vouchers single use per customer", func(t *testing.T) {
		assert.False(t, voucher.KindAll.SingleUsePerCustomer())
		assert.True(t, voucher.KindGroup.SingleUsePerCustomer())
		assert.True(t, voucher.KindRank.SingleUsePerCustomer())
	})
}

func TestVoucherCheckRedeemable(t *testing.T) {
	now := time.Now()

	newVoucher := func(t *testing.T, active bool, startsAt, endsAt time.Time, minOrder int64) *voucher.Voucher {
		t.Helper()
		v, err := voucher.NewVoucher(kernel.NewUUID(), "CHECK", voucher.KindAll,
			money(t, 5_000), money(t, minOrder), active, startsAt, endsAt, nil)
		require.NoError(t, err)
		return v
	}

	t.Run("should redeem inside the window above the minimum", func(t *testing.T) {
		v := newVoucher(t, true, now.Add(-time.Hour), now.Add(time.Hour), 50_000)

		assert.NoError(t, v.CheckRedeemable(now, money(t, 50_000)))
	})

	t.Run("should reject an inactive voucher", func(t *testing.T) {
		v := newVoucher(t, false, now.Add(-time.Hour), now.Add(time.Hour), 0)

		assert.ErrorIs(t, v.CheckRedeemable(now, money(t, 100_000)), voucher.ErrVoucherExpired)
	})

	t.Run("should reject before the window opens", func(t *testing.T) {
		v := newVoucher(t, true, now.Add(time.Hour), now.Add(2*time.Hour), 0)

		assert.ErrorIs(t, v.CheckRedeemable(now, money(t, 100_000)), voucher.ErrVoucherExpired)
	})

	t.Run("should reject after the window closes", func(t *testing.T) {
		v := newVoucher(t, true, now.Add(-2*time.Hour), now.Add(-time.Hour), 0)

		assert.ErrorIs(t, v.CheckRedeemable(now, money(t, 100_000)), voucher.ErrVoucherExpired)
	})

	t.Run("should reject a subtotal below the minimum", func(t *testing.T) {
		v := newVoucher(t, true, now.Add(-time.Hour), now.Add(time.Hour), 50_000)

		assert.ErrorIs(t, v.CheckRedeemable(now, money(t, 49_999)), voucher.ErrVoucherMinimumAmountNotMet)
	})
}

func TestVoucherApply(t *testing.T) {
	now := time.Now()

	t.Run("should subtract the discount from the subtotal", func(t *testing.T) {
		v, err := voucher.NewVoucher(kernel.NewUUID(), "SAVE", voucher.KindAll,
			money(t, 10_000), kernel.ZeroMoney(), true, now.Add(-time.Hour), now.Add(time.Hour), nil)
		require.NoError(t, err)

		assert.True(t, v.Apply(money(t, 80_000)).IsEqual(money(t, 70_000)))
	})

	t.Run("should clamp at zero when the discount exceeds the subtotal", func(t *testing.T) {
		v, err := voucher.NewVoucher(kernel.NewUUID(), "SAVE", voucher.KindAll,
			money(t, 10_000), kernel.ZeroMoney(), true, now.Add(-time.Hour), now.Add(time.Hour), nil)
		require.NoError(t, err)

		assert.True(t, v.Apply(money(t, 4_000)).IsZero())
	})
}

func TestIssue(t *testing.T) {
	t.Run("should create a draft issue for one customer", func(t *testing.T) {
		customerID := kernel.NewUUID()

		issue, err := voucher.NewIssue(kernel.NewUUID(), kernel.NewUUID(), customerID, "GRP-123")

		require.NoError(t, err)
		require.NoError(t, issue.Validate())
		assert.Equal(t, voucher.IssueStatusDraft, issue.Status())
		assert.Equal(t, "GRP-123", issue.Code())
		assert.True(t, issue.BelongsTo(customerID))
		assert.False(t, issue.BelongsTo(kernel.NewUUID()))
	})

	t.Run("should mark an issue sent", func(t *testing.T) {
		issue, err := voucher.NewIssue(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "GRP-123")
		require.NoError(t, err)

		issue.MarkSent()

		assert.Equal(t, voucher.IssueStatusSent, issue.Status())

		issue.MarkSent()
		assert.Equal(t, voucher.IssueStatusSent, issue.Status())
	})

	t.Run("should fail without a code", func(t *testing.T) {
		issue, err := voucher.NewIssue(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "")

		require.Error(t, err)
		assert.Nil(t, issue)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

package services

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/voucher"
)

// VoucherSource is the lookup surface the ledger needs to resolve a code.
// Satisfied by the voucher repository. All lookups return (nil, nil) when
// nothing matches; infrastructure failures come back as errors.
type VoucherSource interface {
	// FindIssueByCode finds an individually issued GROUP code together with
	// its voucher, regardless of which customer it was issued to.
	FindIssueByCode(ctx context.Context, code string) (*voucher.Issue, *voucher.Voucher, error)

	// FindPublicByCode finds an ALL voucher by its public code.
	FindPublicByCode(ctx context.Context, code string) (*voucher.Voucher, error)

	// FindRankByCode finds a RANK voucher by its code, regardless of rank.
	FindRankByCode(ctx context.Context, code string) (*voucher.Voucher, error)

	// HasCustomerUsage reports whether the customer already redeemed the
	// voucher on any order.
	HasCustomerUsage(ctx context.Context, voucherID, customerID kernel.UUID) (bool, error)
}

// VoucherLedger validates voucher redemption. A code is resolved in a fixed
// order (an individually issued GROUP code, then a public ALL code, then a
// RANK voucher) and the first match decides the outcome. Validation alone
// performs no accounting; the usage row is written by the order-creation
// transaction, where the storage uniqueness constraints are the authoritative
// double-spend guard.
type VoucherLedger struct {
	source VoucherSource
}

// NewVoucherLedger creates a ledger over the given lookup source.
func NewVoucherLedger(source VoucherSource) VoucherLedger {
	return VoucherLedger{source: source}
}

// Validate resolves the code for the customer and checks it against the
// order subtotal. On success it returns the redeemable voucher; otherwise
// one of the voucher package's sentinel failures.
func (l VoucherLedger) Validate(
	ctx context.Context,
	code string,
	cust *customer.Customer,
	subtotal kernel.Money,
	now time.Time,
) (*voucher.Voucher, error) {
	if err := cust.Validate(); err != nil {
		return nil, err
	}

	v, err := l.resolve(ctx, code, cust)
	if err != nil {
		return nil, err
	}

	if err = v.CheckRedeemable(now, subtotal); err != nil {
		return nil, err
	}

	if v.Kind().SingleUsePerCustomer() {
		used, usageErr := l.source.HasCustomerUsage(ctx, v.ID(), cust.ID())
		if usageErr != nil {
			return nil, usageErr
		}
		if used {
			return nil, voucher.ErrVoucherAlreadyUsed
		}
	}

	return v, nil
}

func (l VoucherLedger) resolve(ctx context.Context, code string, cust *customer.Customer) (*voucher.Voucher, error) {
	issue, issued, err := l.source.FindIssueByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if issue != nil {
		if !issue.BelongsTo(cust.ID()) || issue.Status() != voucher.IssueStatusSent {
			return nil, voucher.ErrVoucherNotAssigned
		}
		return issued, nil
	}

	public, err := l.source.FindPublicByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if public != nil {
		return public, nil
	}

	ranked, err := l.source.FindRankByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if ranked != nil {
		rankingID := ranked.RankingID()
		if rankingID == nil || !rankingID.IsEqual(cust.RankingID()) {
			return nil, voucher.ErrVoucherNotAssigned
		}
		return ranked, nil
	}

	return nil, voucher.ErrVoucherNotFound
}

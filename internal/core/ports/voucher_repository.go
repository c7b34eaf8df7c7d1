package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/voucher"
)

// VoucherRepository defines the persistence contract for vouchers, their
// individual issues, and the redemption ledger. The lookup methods satisfy
// the voucher ledger's source interface.
type VoucherRepository interface {
	// FindIssueByCode finds an individually issued GROUP code with its
	// voucher. Returns (nil, nil, nil) when no issue carries the code.
	FindIssueByCode(ctx context.Context, code string) (*voucher.Issue, *voucher.Voucher, error)

	// FindPublicByCode finds an active-or-not ALL voucher by public code.
	// Returns (nil, nil) when none matches.
	FindPublicByCode(ctx context.Context, code string) (*voucher.Voucher, error)

	// FindRankByCode finds a RANK voucher by code regardless of rank.
	// Returns (nil, nil) when none matches.
	FindRankByCode(ctx context.Context, code string) (*voucher.Voucher, error)

	// HasCustomerUsage reports whether the customer already redeemed the
	// voucher on any order.
	HasCustomerUsage(ctx context.Context, voucherID, customerID kernel.UUID) (bool, error)

	// AddUsage appends a redemption row. A conflicting row, same
	// (voucher, customer) for single-use-per-customer kinds or same
	// (voucher, order) for ALL vouchers, fails with
	// voucher.ErrVoucherAlreadyUsed.
	AddUsage(ctx context.Context, usage *voucher.Usage) error

	// DeleteUsagesByOrder removes the redemption rows of a cancelled order.
	// Usage of the same code by other customers is untouched.
	DeleteUsagesByOrder(ctx context.Context, orderID kernel.UUID) error
}

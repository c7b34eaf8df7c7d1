// Package voucherrepo persists vouchers, their individual issues, and the
// redemption ledger. The single-use guarantees live in this package's
// unique indexes: one redemption per (voucher, order) always, and one per
// (voucher, customer) for the single-use-per-customer kinds, enforced
// through the kind denormalized onto the usage row.
package voucherrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/voucher"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoucherDTO represents the database structure for vouchers.
type VoucherDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code      string          `gorm:"uniqueIndex"`
	Kind      int             `gorm:"index"`
	Discount  decimal.Decimal `gorm:"type:decimal(18,2)"`
	MinOrder  decimal.Decimal `gorm:"type:decimal(18,2)"`
	Active    bool
	StartsAt  time.Time
	EndsAt    time.Time
	RankingID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName overrides GORM's default naming to use "vouchers".
func (VoucherDTO) TableName() string {
	return "vouchers"
}

// IssueDTO links a GROUP voucher to one customer through an individually
// generated code.
type IssueDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	VoucherID  uuid.UUID `gorm:"type:uuid;index"`
	CustomerID uuid.UUID `gorm:"type:uuid;index"`
	Code       string    `gorm:"uniqueIndex"`
	Status     int
}

// TableName overrides GORM's default naming to use "voucher_issues".
func (IssueDTO) TableName() string {
	return "voucher_issues"
}

// UsageDTO is one row of the redemption ledger. Kind is denormalized from
// the voucher so the per-customer unique index can be partial: it covers
// GROUP and RANK redemptions and leaves ALL vouchers constrained only per
// order.
type UsageDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	VoucherID  uuid.UUID `gorm:"type:uuid;uniqueIndex:udx_voucher_usages_order;uniqueIndex:udx_voucher_usages_customer,where:kind <> 1"`
	OrderID    uuid.UUID `gorm:"type:uuid;uniqueIndex:udx_voucher_usages_order;index"`
	CustomerID uuid.UUID `gorm:"type:uuid;uniqueIndex:udx_voucher_usages_customer,where:kind <> 1"`
	Kind       int
	Discount   decimal.Decimal `gorm:"type:decimal(18,2)"`
}

// TableName overrides GORM's default naming to use "voucher_usages".
func (UsageDTO) TableName() string {
	return "voucher_usages"
}

func voucherToDomain(dto VoucherDTO) (*voucher.Voucher, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var rankingID *kernel.UUID
	if dto.RankingID != nil {
		rID, rankErr := kernel.UUIDFromBytes((*dto.RankingID)[:])
		if rankErr != nil {
			return nil, rankErr
		}
		rankingID = &rID
	}

	discount, err := kernel.NewMoney(dto.Discount)
	if err != nil {
		return nil, err
	}
	minOrder, err := kernel.NewMoney(dto.MinOrder)
	if err != nil {
		return nil, err
	}

	return voucher.RestoreVoucher(
		id, dto.Code, voucher.Kind(dto.Kind),
		discount, minOrder, dto.Active,
		dto.StartsAt, dto.EndsAt,
		rankingID,
	)
}

func issueToDomain(dto IssueDTO) (*voucher.Issue, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	voucherID, err := kernel.UUIDFromBytes(dto.VoucherID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	return voucher.RestoreIssue(id, voucherID, customerID, dto.Code, voucher.IssueStatus(dto.Status))
}

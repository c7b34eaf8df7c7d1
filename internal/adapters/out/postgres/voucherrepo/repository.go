package voucherrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/voucher"

	"gorm.io/gorm"
)

// GormVoucherRepository implements VoucherRepository using GORM. Vouchers
// and issues are reference data maintained by the back office; the engine
// reads them and appends to the redemption ledger.
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewGormVoucherRepository creates a new GORM voucher repository.
func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// FindIssueByCode finds an individually issued GROUP code with its voucher.
func (r *GormVoucherRepository) FindIssueByCode(
	ctx context.Context,
	code string,
) (*voucher.Issue, *voucher.Voucher, error) {
	var issueDTO IssueDTO
	err := r.db.WithContext(ctx).First(&issueDTO, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var voucherDTO VoucherDTO
	if err = r.db.WithContext(ctx).First(&voucherDTO, "id = ?", issueDTO.VoucherID).Error; err != nil {
		return nil, nil, err
	}

	issue, err := issueToDomain(issueDTO)
	if err != nil {
		return nil, nil, err
	}
	v, err := voucherToDomain(voucherDTO)
	if err != nil {
		return nil, nil, err
	}

	return issue, v, nil
}

// FindPublicByCode finds an ALL voucher by its public code.
func (r *GormVoucherRepository) FindPublicByCode(ctx context.Context, code string) (*voucher.Voucher, error) {
	return r.findByCodeAndKind(ctx, code, voucher.KindAll)
}

// FindRankByCode finds a RANK voucher by its code.
func (r *GormVoucherRepository) FindRankByCode(ctx context.Context, code string) (*voucher.Voucher, error) {
	return r.findByCodeAndKind(ctx, code, voucher.KindRank)
}

func (r *GormVoucherRepository) findByCodeAndKind(
	ctx context.Context,
	code string,
	kind voucher.Kind,
) (*voucher.Voucher, error) {
	var dto VoucherDTO
	err := r.db.WithContext(ctx).First(&dto, "code = ? AND kind = ?", code, int(kind)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return voucherToDomain(dto)
}

// HasCustomerUsage reports whether the customer already redeemed the voucher
// on any order.
func (r *GormVoucherRepository) HasCustomerUsage(
	ctx context.Context,
	voucherID, customerID kernel.UUID,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&UsageDTO{}).
		Where("voucher_id = ? AND customer_id = ?", voucherID.Bytes(), customerID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// AddUsage appends a redemption row. The voucher's kind is denormalized
// onto the row so the partial per-customer unique index applies; a
// conflicting row fails with voucher.ErrVoucherAlreadyUsed.
func (r *GormVoucherRepository) AddUsage(ctx context.Context, usage *voucher.Usage) error {
	if err := usage.Validate(); err != nil {
		return err
	}

	var kind int
	err := r.db.WithContext(ctx).
		Model(&VoucherDTO{}).
		Select("kind").
		Where("id = ?", usage.VoucherID().Bytes()).
		Scan(&kind).Error
	if err != nil {
		return err
	}

	dto := UsageDTO{
		ID:         usage.ID().Bytes(),
		VoucherID:  usage.VoucherID().Bytes(),
		OrderID:    usage.OrderID().Bytes(),
		CustomerID: usage.CustomerID().Bytes(),
		Kind:       kind,
		Discount:   usage.Discount().Decimal(),
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return voucher.ErrVoucherAlreadyUsed
		}
		return err
	}

	return nil
}

// DeleteUsagesByOrder removes the redemption rows of a cancelled order.
func (r *GormVoucherRepository) DeleteUsagesByOrder(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Delete(&UsageDTO{}).Error
}

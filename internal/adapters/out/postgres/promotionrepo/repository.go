package promotionrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/promotion"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPromotionRepository implements PromotionRepository using GORM.
// Promotions are reference data written by the back office; the engine only
// reads them and appends to the usage ledger.
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewGormPromotionRepository creates a new GORM promotion repository.
func NewGormPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// GetCandidates retrieves active promotions that either cover the whole
// catalog or target one of the context's ids. Deduplication and window
// filtering belong to the resolver.
func (r *GormPromotionRepository) GetCandidates(
	ctx context.Context,
	target promotion.TargetContext,
) ([]*promotion.Promotion, error) {
	contextIDs := []uuid.UUID{
		target.VariantID.Bytes(),
		target.ProductID.Bytes(),
		target.CategoryID.Bytes(),
		target.BrandID.Bytes(),
	}

	var dtos []PromotionDTO
	err := r.db.WithContext(ctx).
		Preload("Targets").
		Where("active").
		Where(
			"scope = ? OR EXISTS (SELECT 1 FROM promotion_targets"+
				" WHERE promotion_targets.promotion_id = promotions.id"+
				" AND promotion_targets.target_id IN ?)",
			int(promotion.ScopeAll), contextIDs,
		).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]*promotion.Promotion, 0, len(dtos))
	for _, dto := range dtos {
		promo, buildErr := toDomain(dto)
		if buildErr != nil {
			return nil, buildErr
		}
		candidates = append(candidates, promo)
	}

	return candidates, nil
}

// AddUsage appends a usage row. A duplicate (promotion, order line) pair
// fails with promotion.ErrPromotionAlreadyApplied.
func (r *GormPromotionRepository) AddUsage(ctx context.Context, usage *promotion.Usage) error {
	if err := usage.Validate(); err != nil {
		return err
	}

	dto := usageFromDomain(usage)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return promotion.ErrPromotionAlreadyApplied
		}
		return err
	}

	return nil
}

// DeleteUsagesByOrder removes the usage rows of a cancelled order.
func (r *GormPromotionRepository) DeleteUsagesByOrder(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Delete(&UsageDTO{}).Error
}

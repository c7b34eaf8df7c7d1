// Package promotionrepo persists promotions, their catalog targets, and the
// append-only usage ledger. The ledger's unique index on (promotion, order
// line) is the storage-level guard against double application.
package promotionrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/promotion"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PromotionDTO represents the database structure for promotions.
type PromotionDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string
	Scope    int `gorm:"index"`
	Percent  int
	Priority int
	Active   bool `gorm:"index"`
	StartsAt time.Time
	EndsAt   time.Time

	Targets []TargetDTO `gorm:"foreignKey:PromotionID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "promotions".
func (PromotionDTO) TableName() string {
	return "promotions"
}

// TargetDTO links a promotion to one catalog id (variant, product, category
// or brand, depending on the promotion's scope).
type TargetDTO struct {
	PromotionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TargetID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName overrides GORM's default naming to use "promotion_targets".
func (TargetDTO) TableName() string {
	return "promotion_targets"
}

// UsageDTO is one row of the promotion usage ledger. The unique index
// rejects a second application of the same promotion to the same line.
type UsageDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PromotionID uuid.UUID       `gorm:"type:uuid;uniqueIndex:udx_promotion_usages_line"`
	OrderLineID uuid.UUID       `gorm:"type:uuid;uniqueIndex:udx_promotion_usages_line"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index"`
	Discount    decimal.Decimal `gorm:"type:decimal(18,2)"`
}

// TableName overrides GORM's default naming to use "promotion_usages".
func (UsageDTO) TableName() string {
	return "promotion_usages"
}

func usageFromDomain(usage *promotion.Usage) UsageDTO {
	return UsageDTO{
		ID:          usage.ID().Bytes(),
		PromotionID: usage.PromotionID().Bytes(),
		OrderLineID: usage.OrderLineID().Bytes(),
		OrderID:     usage.OrderID().Bytes(),
		Discount:    usage.Discount().Decimal(),
	}
}

func toDomain(dto PromotionDTO) (*promotion.Promotion, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	targetIDs := make([]kernel.UUID, 0, len(dto.Targets))
	for _, target := range dto.Targets {
		targetID, targetErr := kernel.UUIDFromBytes(target.TargetID[:])
		if targetErr != nil {
			return nil, targetErr
		}
		targetIDs = append(targetIDs, targetID)
	}

	return promotion.RestorePromotion(
		id, dto.Name, promotion.Scope(dto.Scope),
		dto.Percent, dto.Priority, dto.Active,
		dto.StartsAt, dto.EndsAt,
		targetIDs,
	)
}

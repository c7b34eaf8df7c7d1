package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/promotion"
)

// PromotionRepository defines the persistence contract for promotions and
// their usage ledger.
type PromotionRepository interface {
	// GetCandidates retrieves the promotions whose targets intersect the
	// given context ids, plus all catalog-wide promotions. The result may
	// contain a promotion several times when it matches through multiple
	// target rows; resolution deduplicates.
	GetCandidates(ctx context.Context, target promotion.TargetContext) ([]*promotion.Promotion, error)

	// AddUsage appends the proof that a promotion was applied to an order
	// line. A conflicting row for the same (promotion, order line) fails
	// with promotion.ErrPromotionAlreadyApplied.
	AddUsage(ctx context.Context, usage *promotion.Usage) error

	// DeleteUsagesByOrder removes the usage rows of a cancelled order.
	DeleteUsagesByOrder(ctx context.Context, orderID kernel.UUID) error
}

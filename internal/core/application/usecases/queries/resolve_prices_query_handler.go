package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/promotion"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResolvePricesQueryHandler resolves effective prices for a batch of
// variants. Active promotions and their targets are read once per query and
// matched in memory, so a listing of N variants costs three reads, not N.
type ResolvePricesQueryHandler struct {
	db       *gorm.DB
	resolver services.PromotionResolver
}

// NewResolvePricesQueryHandler creates a handler for batch price resolution.
func NewResolvePricesQueryHandler(db *gorm.DB, resolver services.PromotionResolver) ResolvePricesQueryHandler {
	return ResolvePricesQueryHandler{db: db, resolver: resolver}
}

// Handle resolves the price of every requested variant. Unknown variant ids
// fail the whole query with errs.ErrObjectNotFound.
func (h ResolvePricesQueryHandler) Handle(
	ctx context.Context,
	query ResolvePricesQuery,
) ([]ResolvePricesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snapshots, err := h.readSnapshots(ctx, query.VariantIDs())
	if err != nil {
		return nil, err
	}

	candidates, err := h.readActivePromotions(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	results := make([]ResolvePricesQueryResponse, 0, len(query.VariantIDs()))

	for _, variantID := range query.VariantIDs() {
		snapshot, ok := snapshots[variantID.String()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("variant", variantID)
		}

		best, resolveErr := h.resolver.Resolve(snapshot.TargetContext(), candidates, now)
		if resolveErr != nil {
			return nil, resolveErr
		}

		item := ResolvePricesQueryResponse{
			VariantID:  snapshot.VariantID,
			BasePrice:  snapshot.Price,
			FinalPrice: snapshot.Price,
		}
		if best != nil {
			id := best.ID()
			item.PromotionID = &id
			item.PromotionName = best.Name()
			item.PromotionPercent = best.Percent()
			item.FinalPrice = best.Apply(snapshot.Price)
		}

		results = append(results, item)
	}

	return results, nil
}

func (h ResolvePricesQueryHandler) readSnapshots(
	ctx context.Context,
	variantIDs []kernel.UUID,
) (map[string]catalog.VariantSnapshot, error) {
	ids := make([]uuid.UUID, 0, len(variantIDs))
	for _, id := range variantIDs {
		ids = append(ids, id.Bytes())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			variant_id,
			product_id,
			category_id,
			brand_id,
			price,
			stock
		FROM variants
		WHERE variant_id IN ?
	`, ids).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make(map[string]catalog.VariantSnapshot, len(variantIDs))
	for rows.Next() {
		var (
			variantID, productID   uuid.UUID
			categoryID, brandID    uuid.UUID
			price                  decimal.Decimal
			stock                  int
		)

		if err = rows.Scan(&variantID, &productID, &categoryID, &brandID, &price, &stock); err != nil {
			return nil, err
		}

		snapshot, buildErr := buildSnapshot(variantID, productID, categoryID, brandID, price, stock)
		if buildErr != nil {
			return nil, buildErr
		}
		snapshots[snapshot.VariantID.String()] = snapshot
	}

	return snapshots, rows.Err()
}

func buildSnapshot(
	variantID, productID, categoryID, brandID uuid.UUID,
	price decimal.Decimal,
	stock int,
) (catalog.VariantSnapshot, error) {
	var snapshot catalog.VariantSnapshot
	var err error

	if snapshot.VariantID, err = kernel.UUIDFromBytes(variantID[:]); err != nil {
		return catalog.VariantSnapshot{}, err
	}
	if snapshot.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
		return catalog.VariantSnapshot{}, err
	}
	if snapshot.CategoryID, err = kernel.UUIDFromBytes(categoryID[:]); err != nil {
		return catalog.VariantSnapshot{}, err
	}
	if snapshot.BrandID, err = kernel.UUIDFromBytes(brandID[:]); err != nil {
		return catalog.VariantSnapshot{}, err
	}
	if snapshot.Price, err = kernel.NewMoney(price); err != nil {
		return catalog.VariantSnapshot{}, err
	}
	snapshot.Stock = stock
	return snapshot, nil
}

func (h ResolvePricesQueryHandler) readActivePromotions(ctx context.Context) ([]*promotion.Promotion, error) {
	targets, err := h.readTargets(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			scope,
			percent,
			priority,
			active,
			starts_at,
			ends_at
		FROM promotions
		WHERE active
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	promotions := make([]*promotion.Promotion, 0)
	for rows.Next() {
		var (
			id               uuid.UUID
			name             string
			scope            int
			percent          int
			priority         int
			active           bool
			startsAt, endsAt time.Time
		)

		if err = rows.Scan(&id, &name, &scope, &percent, &priority, &active, &startsAt, &endsAt); err != nil {
			return nil, err
		}

		promoID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		promo, buildErr := promotion.RestorePromotion(
			promoID, name, promotion.Scope(scope),
			percent, priority, active,
			startsAt, endsAt,
			targets[promoID.String()],
		)
		if buildErr != nil {
			return nil, buildErr
		}
		promotions = append(promotions, promo)
	}

	return promotions, rows.Err()
}

func (h ResolvePricesQueryHandler) readTargets(ctx context.Context) (map[string][]kernel.UUID, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT promotion_id, target_id FROM promotion_targets
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	targets := make(map[string][]kernel.UUID)
	for rows.Next() {
		var promotionID, targetID uuid.UUID

		if err = rows.Scan(&promotionID, &targetID); err != nil {
			return nil, err
		}

		promoID, idErr := kernel.UUIDFromBytes(promotionID[:])
		if idErr != nil {
			return nil, idErr
		}
		target, idErr := kernel.UUIDFromBytes(targetID[:])
		if idErr != nil {
			return nil, idErr
		}

		targets[promoID.String()] = append(targets[promoID.String()], target)
	}

	return targets, rows.Err()
}

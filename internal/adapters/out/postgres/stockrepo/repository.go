package stockrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStockRepository implements ports.StockRepository using GORM.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository instance.
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// GetSnapshot retrieves the variant snapshot by variant id.
func (r *GormStockRepository) GetSnapshot(ctx context.Context, variantID kernel.UUID) (catalog.VariantSnapshot, error) {
	var dto VariantDTO
	result := r.db.WithContext(ctx).First(&dto, "variant_id = ?", variantID.Bytes())
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return catalog.VariantSnapshot{}, errs.NewObjectNotFoundError("variant", variantID.String())
		}
		return catalog.VariantSnapshot{}, result.Error
	}
	return toDomain(dto)
}

// Decrement atomically subtracts quantity from the variant's stock. The
// availability check lives in the WHERE clause, so a concurrent order that
// claimed the last units makes this a zero-row update rather than a negative
// counter.
func (r *GormStockRepository) Decrement(ctx context.Context, variantID kernel.UUID, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&VariantDTO{}).
		Where("variant_id = ? AND stock >= ?", variantID.Bytes(), quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("variant %s: %w", variantID.String(), catalog.ErrInsufficientStock)
	}
	return nil
}

// Restore adds quantity back to the variant's stock.
func (r *GormStockRepository) Restore(ctx context.Context, variantID kernel.UUID, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&VariantDTO{}).
		Where("variant_id = ?", variantID.Bytes()).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("variant %s: %w", variantID.String(), gorm.ErrRecordNotFound)
	}
	return nil
}

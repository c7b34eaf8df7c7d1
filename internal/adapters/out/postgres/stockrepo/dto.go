// Package stockrepo persists the catalog read snapshot and the stock counter
// the fulfillment engine owns on it.
package stockrepo

import (
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VariantDTO represents the database structure of the catalog snapshot. The
// classification and price columns are consumed read-only; stock is the one
// column the engine writes.
type VariantDTO struct {
	VariantID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"type:uuid;index"`
	CategoryID uuid.UUID `gorm:"type:uuid;index"`
	BrandID    uuid.UUID `gorm:"type:uuid;index"`
	Price      decimal.Decimal `gorm:"type:decimal(18,2)"`
	Stock      int
}

// TableName overrides GORM's default naming to use "variants".
func (VariantDTO) TableName() string {
	return "variants"
}

func toDomain(dto VariantDTO) (catalog.VariantSnapshot, error) {
	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return catalog.VariantSnapshot{}, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return catalog.VariantSnapshot{}, err
	}
	categoryID, err := kernel.UUIDFromBytes(dto.CategoryID[:])
	if err != nil {
		return catalog.VariantSnapshot{}, err
	}
	brandID, err := kernel.UUIDFromBytes(dto.BrandID[:])
	if err != nil {
		return catalog.VariantSnapshot{}, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return catalog.VariantSnapshot{}, err
	}

	return catalog.VariantSnapshot{
		VariantID:  variantID,
		ProductID:  productID,
		CategoryID: categoryID,
		BrandID:    brandID,
		Price:      price,
		Stock:      dto.Stock,
	}, nil
}

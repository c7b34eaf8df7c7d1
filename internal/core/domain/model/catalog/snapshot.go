// Package catalog holds the read snapshot consumed from the catalog
// collaborator at order-creation time. The fulfillment engine owns the stock
// counter on this snapshot; everything else about the catalog is external.
package catalog

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/promotion"
)

// ErrInsufficientStock indicates that a requested quantity exceeds the
// variant's available stock. A shortfall on any line aborts the whole order.
var ErrInsufficientStock = errors.New("insufficient stock")

// VariantSnapshot is the catalog state of one variant as read at order
// creation: its classification (used for promotion matching), its current
// price, and its available stock.
type VariantSnapshot struct {
	VariantID  kernel.UUID
	ProductID  kernel.UUID
	CategoryID kernel.UUID
	BrandID    kernel.UUID
	Price      kernel.Money
	Stock      int
}

// TargetContext returns the promotion matching context of the variant.
func (s VariantSnapshot) TargetContext() promotion.TargetContext {
	return promotion.TargetContext{
		VariantID:  s.VariantID,
		ProductID:  s.ProductID,
		CategoryID: s.CategoryID,
		BrandID:    s.BrandID,
	}
}

// CheckStock rejects a requested quantity the current stock cannot cover.
// The authoritative check is the conditional decrement in storage; this one
// exists to fail fast before any mutation.
func (s VariantSnapshot) CheckStock(quantity int) error {
	if quantity > s.Stock {
		return ErrInsufficientStock
	}
	return nil
}

package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
)

// StockRepository defines the contract over the catalog snapshot the engine
// consumes: variant classification and price for pricing, and the stock
// counter the engine owns. Decrement is a conditional write, not a
// read-then-write: two concurrent orders can never drive stock negative.
type StockRepository interface {
	// GetSnapshot retrieves the variant snapshot by variant id.
	GetSnapshot(ctx context.Context, variantID kernel.UUID) (catalog.VariantSnapshot, error)

	// Decrement atomically subtracts quantity from the variant's stock.
	// Fails with catalog.ErrInsufficientStock when the remaining stock
	// cannot cover the quantity; in that case nothing is written.
	Decrement(ctx context.Context, variantID kernel.UUID, quantity int) error

	// Restore adds quantity back to the variant's stock. Used by the
	// cancellation compensating transaction.
	Restore(ctx context.Context, variantID kernel.UUID, quantity int) error
}

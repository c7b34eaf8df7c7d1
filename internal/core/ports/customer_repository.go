package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for the loyalty state
// of customers.
type CustomerRepository interface {
	// Get retrieves a customer's loyalty state by id.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// Update persists a re-ranked customer.
	Update(ctx context.Context, aggregate *customer.Customer) error
}

// RankingRepository loads the static ranking band reference data. It is read
// once at startup into the immutable band table.
type RankingRepository interface {
	// GetAllBands retrieves every ranking band.
	GetAllBands(ctx context.Context) ([]customer.Band, error)
}

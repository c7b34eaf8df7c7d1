package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrResolvePricesQueryIsNotConstructed = errors.New(
	"ResolvePricesQuery must be created via NewResolvePricesQuery constructor",
)

// ResolvePricesQuery resolves the effective unit price of a batch of
// variants: the catalog price and the best currently applicable promotion.
// Used by listing pages, so the resolution runs per variant against live
// promotion state without touching any order.
type ResolvePricesQuery struct { //nolint:recvcheck //using for validation
	variantIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewResolvePricesQuery creates a price resolution query for the given
// variants.
func NewResolvePricesQuery(variantIDs []kernel.UUID) (ResolvePricesQuery, error) {
	if len(variantIDs) == 0 {
		return ResolvePricesQuery{}, errs.NewValueIsRequiredError("variantIDs")
	}
	for _, id := range variantIDs {
		if err := id.Validate(); err != nil {
			return ResolvePricesQuery{}, err
		}
	}

	q := ResolvePricesQuery{
		variantIDs: make([]kernel.UUID, len(variantIDs)),
		guard:      guard.NewConstructorGuard(),
	}
	copy(q.variantIDs, variantIDs)
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ResolvePricesQuery) Validate() error {
	return q.guard.Validate(ErrResolvePricesQueryIsNotConstructed)
}

// VariantIDs returns the variants to price.
func (q ResolvePricesQuery) VariantIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(q.variantIDs))
	copy(ids, q.variantIDs)
	return ids
}

// ResolvePricesQueryResponse is the effective price of one variant. When no
// promotion applies, FinalPrice equals BasePrice and the promotion fields
// are zero.
type ResolvePricesQueryResponse struct {
	VariantID  kernel.UUID
	BasePrice  kernel.Money
	FinalPrice kernel.Money

	PromotionID      *kernel.UUID
	PromotionName    string
	PromotionPercent int
}

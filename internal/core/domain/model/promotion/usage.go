package promotion

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrUsageIsNotConstructed is returned when a Usage instance was not created
// through NewUsage or RestoreUsage.
var ErrUsageIsNotConstructed = errors.New("Usage must be created via NewUsage constructor")

// ErrPromotionAlreadyApplied indicates that a usage row for the same
// (promotion, order line) pair already exists. At most one promotion
// application is recorded per line.
var ErrPromotionAlreadyApplied = errors.New("promotion already applied to this order line")

// Usage is the append-only proof that a promotion was applied to one order
// line. Usage rows enforce single application per line and support audit and
// cancellation compensations.
type Usage struct {
	id          kernel.UUID
	promotionID kernel.UUID
	orderLineID kernel.UUID
	orderID     kernel.UUID
	discount    kernel.Money

	isConstructed bool
}

// NewUsage creates a usage row for a promotion applied to an order line.
// The discount is the absolute amount the promotion removed from the line.
func NewUsage(id, promotionID, orderID, orderLineID kernel.UUID, discount kernel.Money) (*Usage, error) {
	u := &Usage{
		discount:      discount,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		promotionID.Validate(),
		orderID.Validate(),
		orderLineID.Validate(),
	); err != nil {
		return nil, err
	}

	u.id = id
	u.promotionID = promotionID
	u.orderID = orderID
	u.orderLineID = orderLineID
	return u, nil
}

// RestoreUsage reconstructs a usage row from persistence.
func RestoreUsage(id, promotionID, orderID, orderLineID kernel.UUID, discount kernel.Money) (*Usage, error) {
	return NewUsage(id, promotionID, orderID, orderLineID, discount)
}

// Validate ensures the Usage was created through its constructor.
func (u *Usage) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUsageIsNotConstructed
	}
	return nil
}

// ID returns the usage row identifier.
func (u *Usage) ID() kernel.UUID { return u.id }

// PromotionID returns the applied promotion's identifier.
func (u *Usage) PromotionID() kernel.UUID { return u.promotionID }

// OrderID returns the order the line belongs to.
func (u *Usage) OrderID() kernel.UUID { return u.orderID }

// OrderLineID returns the order line the promotion was applied to.
func (u *Usage) OrderLineID() kernel.UUID { return u.orderLineID }

// Discount returns the absolute amount removed from the line.
func (u *Usage) Discount() kernel.Money { return u.discount }

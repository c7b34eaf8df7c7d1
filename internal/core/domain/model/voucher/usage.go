package voucher

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrUsageIsNotConstructed is returned when a Usage instance was not created
// through NewUsage or RestoreUsage.
var ErrUsageIsNotConstructed = errors.New("Usage must be created via NewUsage constructor")

// Usage is the append-only proof that a voucher was redeemed against an
// order. The uniqueness rules backing the single-use guarantees live in
// storage: one row per (voucher, customer) for GROUP/RANK vouchers and one
// row per (voucher, order) for ALL vouchers.
type Usage struct {
	id         kernel.UUID
	voucherID  kernel.UUID
	orderID    kernel.UUID
	customerID kernel.UUID
	discount   kernel.Money

	isConstructed bool
}

// NewUsage creates a redemption row.
func NewUsage(id, voucherID, orderID, customerID kernel.UUID, discount kernel.Money) (*Usage, error) {
	if err := errors.Join(
		id.Validate(),
		voucherID.Validate(),
		orderID.Validate(),
		customerID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Usage{
		id:            id,
		voucherID:     voucherID,
		orderID:       orderID,
		customerID:    customerID,
		discount:      discount,
		isConstructed: true,
	}, nil
}

// RestoreUsage reconstructs a redemption row from persistence.
func RestoreUsage(id, voucherID, orderID, customerID kernel.UUID, discount kernel.Money) (*Usage, error) {
	return NewUsage(id, voucherID, orderID, customerID, discount)
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

// VoucherID returns the redeemed voucher's identifier.
func (u *Usage) VoucherID() kernel.UUID { return u.voucherID }

// OrderID returns the order the voucher was redeemed against.
func (u *Usage) OrderID() kernel.UUID { return u.orderID }

// CustomerID returns the redeeming customer.
func (u *Usage) CustomerID() kernel.UUID { return u.customerID }

// Discount returns the amount the voucher removed from the order subtotal.
func (u *Usage) Discount() kernel.Money { return u.discount }

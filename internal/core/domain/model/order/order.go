package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrNoValidItems indicates an order creation request with no lines.
	ErrNoValidItems = errors.New("order has no valid items")
)

// Order is the aggregate root of the fulfillment lifecycle. It owns its
// lines, its totals, and its status machine.
//
// Invariants:
//   - at least one line
//   - finalTotal = total − discount, and finalTotal is never negative
//   - status transitions follow the rules in Status
//
// Totals are produced by the pricing engine at creation time and are
// immutable afterwards; transitions only move the status.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	status     Status
	lines      []*Line
	total      kernel.Money
	discount   kernel.Money
	finalTotal kernel.Money
	voucherID  *kernel.UUID

	isConstructed bool
}

// NewOrder creates a Pending order with priced lines and totals.
// voucherID is nil when no voucher was redeemed.
func NewOrder(
	id, customerID kernel.UUID,
	lines []*Line,
	total, discount, finalTotal kernel.Money,
	voucherID *kernel.UUID,
) (*Order, error) {
	return newOrder(id, customerID, Pending, lines, total, discount, finalTotal, voucherID)
}

// RestoreOrder reconstructs an order from persistence with its stored status.
func RestoreOrder(
	id, customerID kernel.UUID,
	status Status,
	lines []*Line,
	total, discount, finalTotal kernel.Money,
	voucherID *kernel.UUID,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return newOrder(id, customerID, status, lines, total, discount, finalTotal, voucherID)
}

func newOrder(
	id, customerID kernel.UUID,
	status Status,
	lines []*Line,
	total, discount, finalTotal kernel.Money,
	voucherID *kernel.UUID,
) (*Order, error) {
	o := &Order{
		status:        status,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setIDs(id, customerID, voucherID),
		o.setLines(lines),
		o.setTotals(total, discount, finalTotal),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created through its constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// CustomerID returns the ordering customer.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// Lines returns the priced order lines.
func (o *Order) Lines() []*Line {
	lines := make([]*Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Total returns the pre-discount order total.
func (o *Order) Total() kernel.Money { return o.total }

// Discount returns the summed promotion and voucher discount.
func (o *Order) Discount() kernel.Money { return o.discount }

// FinalTotal returns the amount actually charged.
func (o *Order) FinalTotal() kernel.Money { return o.finalTotal }

// VoucherID returns the redeemed voucher, nil if none was used.
func (o *Order) VoucherID() *kernel.UUID { return o.voucherID }

// Confirm moves the order from Pending to Confirmed.
func (o *Order) Confirm() error {
	return o.transition(o.status.Confirm)
}

// Process moves the order from Confirmed to Processing.
func (o *Order) Process() error {
	return o.transition(o.status.Process)
}

// Ship moves the order from Processing to Shipped, making it eligible for a
// delivery assignment.
func (o *Order) Ship() error {
	return o.transition(o.status.Ship)
}

// Complete moves the order from Shipped to Completed.
func (o *Order) Complete() error {
	return o.transition(o.status.Complete)
}

// Cancel moves a pre-shipment order to Cancelled. A second cancel on the
// same order fails with ErrInvalidStatus.
func (o *Order) Cancel() error {
	return o.transition(o.status.Cancel)
}

func (o *Order) transition(step func() (Status, error)) error {
	newStatus, err := step()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

func (o *Order) setIDs(id, customerID kernel.UUID, voucherID *kernel.UUID) error {
	if err := errors.Join(id.Validate(), customerID.Validate()); err != nil {
		return err
	}
	if voucherID != nil {
		if err := voucherID.Validate(); err != nil {
			return err
		}
		v := *voucherID
		o.voucherID = &v
	}
	o.id = id
	o.customerID = customerID
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return ErrNoValidItems
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	o.lines = make([]*Line, len(lines))
	copy(o.lines, lines)
	return nil
}

func (o *Order) setTotals(total, discount, finalTotal kernel.Money) error {
	if !total.SubFloor(discount).IsEqual(finalTotal) {
		return errs.NewValueIsInvalidErrorWithCause(
			"finalTotal",
			fmt.Errorf("%s does not equal total %s minus discount %s", finalTotal, total, discount))
	}
	o.total = total
	o.discount = discount
	o.finalTotal = finalTotal
	return nil
}

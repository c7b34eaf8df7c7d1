package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrLineIsNotConstructed is returned when a Line instance was not created
// through NewLine or RestoreLine.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is one priced position of an order: a variant, a quantity, the unit
// price snapshotted from the catalog at creation time, and the final price
// after the line's promotion discount.
//
// Invariant: finalPrice never exceeds unitPrice × quantity.
type Line struct {
	id         kernel.UUID
	variantID  kernel.UUID
	quantity   int
	unitPrice  kernel.Money
	finalPrice kernel.Money

	isConstructed bool
}

// NewLine creates a validated order line.
func NewLine(id, variantID kernel.UUID, quantity int, unitPrice, finalPrice kernel.Money) (*Line, error) {
	l := &Line{isConstructed: true}

	if err := errors.Join(
		l.setIDs(id, variantID),
		l.setQuantity(quantity),
		l.setPrices(unitPrice, finalPrice, quantity),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreLine reconstructs an order line from persistence.
func RestoreLine(id, variantID kernel.UUID, quantity int, unitPrice, finalPrice kernel.Money) (*Line, error) {
	return NewLine(id, variantID, quantity, unitPrice, finalPrice)
}

// Validate ensures the Line was created through its constructor.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

// ID returns the line identifier.
func (l *Line) ID() kernel.UUID { return l.id }

// VariantID returns the purchased variant.
func (l *Line) VariantID() kernel.UUID { return l.variantID }

// Quantity returns the purchased quantity.
func (l *Line) Quantity() int { return l.quantity }

// UnitPrice returns the catalog price per unit at creation time.
func (l *Line) UnitPrice() kernel.Money { return l.unitPrice }

// FinalPrice returns the line total after its promotion discount.
func (l *Line) FinalPrice() kernel.Money { return l.finalPrice }

// GrossPrice returns the line total before any discount.
func (l *Line) GrossPrice() kernel.Money {
	return l.unitPrice.MulInt(l.quantity)
}

func (l *Line) setIDs(id, variantID kernel.UUID) error {
	if err := errors.Join(id.Validate(), variantID.Validate()); err != nil {
		return err
	}
	l.id = id
	l.variantID = variantID
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}

func (l *Line) setPrices(unitPrice, finalPrice kernel.Money, quantity int) error {
	if quantity > 0 {
		gross := unitPrice.MulInt(quantity)
		if gross.LessThan(finalPrice) {
			return errs.NewValueIsInvalidErrorWithCause(
				"finalPrice", fmt.Errorf("%s exceeds the gross line price %s", finalPrice, gross))
		}
	}
	l.unitPrice = unitPrice
	l.finalPrice = finalPrice
	return nil
}

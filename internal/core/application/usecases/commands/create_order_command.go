package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when a CreateOrderCommand
// was not created via NewCreateOrderCommand.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CartItem is one requested position of the cart: a variant and a quantity.
type CartItem struct {
	VariantID kernel.UUID
	Quantity  int
}

// CreateOrderCommand represents a request to create a priced order from cart
// lines, optionally redeeming a voucher code.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID, items, "SUMMER10")
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	customerID  kernel.UUID
	items       []CartItem
	voucherCode string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// voucherCode may be empty when the customer redeems nothing.
func NewCreateOrderCommand(
	orderID, customerID kernel.UUID,
	items []CartItem,
	voucherCode string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		voucherCode: voucherCode,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Items returns the requested cart lines.
func (c CreateOrderCommand) Items() []CartItem {
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// VoucherCode returns the redeemed code, empty when none was supplied.
func (c CreateOrderCommand) VoucherCode() string {
	return c.voucherCode
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []CartItem) error {
	if len(items) == 0 {
		return order.ErrNoValidItems
	}
	for _, item := range items {
		if err := item.VariantID.Validate(); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return order.ErrNoValidItems
		}
	}
	c.items = make([]CartItem, len(items))
	copy(c.items, items)
	return nil
}

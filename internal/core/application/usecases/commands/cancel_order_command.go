package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrCancelOrderCommandIsNotConstructed is returned when a
// CancelOrderCommand was not created via NewCancelOrderCommand.
var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel a pre-shipment order.
// Customers may cancel their own orders; staff may cancel any.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	callerID kernel.UUID
	role     account.Role

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order. callerID
// identifies the account behind the request; for customers it must match
// the order's customer.
func NewCancelOrderCommand(
	orderID, callerID kernel.UUID,
	role account.Role,
) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCallerID(callerID),
		cmd.setRole(role),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CallerID returns the account behind the request.
func (c CancelOrderCommand) CallerID() kernel.UUID {
	return c.callerID
}

// Role returns the caller's role.
func (c CancelOrderCommand) Role() account.Role {
	return c.role
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}
	c.callerID = callerID
	return nil
}

func (c *CancelOrderCommand) setRole(role account.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}

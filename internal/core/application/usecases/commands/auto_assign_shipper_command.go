package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrAutoAssignShipperCommandIsNotConstructed = errors.New(
	"AutoAssignShipperCommand must be created via NewAutoAssignShipperCommand constructor",
)

// AutoAssignShipperCommand triggers one round of automatic shipper
// assignment: the oldest shipped order without an assignment is bound to a
// free shipper. It is a parameterless command fired by the scheduler.
//
// Example:
//
//	cmd := NewAutoAssignShipperCommand()
//	handler := NewAutoAssignShipperCommandHandler(uowFactory, publisher)
//	err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("No orders to assign or no free shippers: %v", err)
//	}
type AutoAssignShipperCommand struct {
	guard guard.ConstructorGuard
}

// NewAutoAssignShipperCommand creates a new command to trigger one
// assignment round.
func NewAutoAssignShipperCommand() AutoAssignShipperCommand {
	return AutoAssignShipperCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrAutoAssignShipperCommandIsNotConstructed if validation fails.
func (c *AutoAssignShipperCommand) Validate() error {
	return c.guard.Validate(
		ErrAutoAssignShipperCommandIsNotConstructed,
	)
}

package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrAssignShipperCommandIsNotConstructed is returned when an
// AssignShipperCommand was not created via NewAssignShipperCommand.
var ErrAssignShipperCommandIsNotConstructed = errors.New(
	"AssignShipperCommand must be created via NewAssignShipperCommand constructor",
)

// AssignShipperCommand represents a request to bind a shipped order to a
// shipper. Issued by a team leader, or by the system through the
// auto-assignment job.
type AssignShipperCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	orderID      kernel.UUID
	shipperID    kernel.UUID
	role         account.Role

	guard guard.ConstructorGuard
}

// NewAssignShipperCommand creates a command to assign a shipper to an order.
// The caller supplies the identifier the new assignment will carry, so the
// id can be returned to the caller before the handler runs.
func NewAssignShipperCommand(
	assignmentID, orderID, shipperID kernel.UUID,
	role account.Role,
) (AssignShipperCommand, error) {
	cmd := AssignShipperCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAssignmentID(assignmentID),
		cmd.setOrderID(orderID),
		cmd.setShipperID(shipperID),
		cmd.setRole(role),
	); err != nil {
		return AssignShipperCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignShipperCommand) Validate() error {
	return c.guard.Validate(ErrAssignShipperCommandIsNotConstructed)
}

// AssignmentID returns the identifier the new assignment will carry.
func (c AssignShipperCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// OrderID returns the order to assign.
func (c AssignShipperCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShipperID returns the shipper to bind.
func (c AssignShipperCommand) ShipperID() kernel.UUID {
	return c.shipperID
}

// Role returns the caller's role.
func (c AssignShipperCommand) Role() account.Role {
	return c.role
}

func (c *AssignShipperCommand) setAssignmentID(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}
	c.assignmentID = assignmentID
	return nil
}

func (c *AssignShipperCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignShipperCommand) setShipperID(shipperID kernel.UUID) error {
	if err := shipperID.Validate(); err != nil {
		return err
	}
	c.shipperID = shipperID
	return nil
}

func (c *AssignShipperCommand) setRole(role account.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}

package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrStartDeliveryCommandIsNotConstructed is returned when a
// StartDeliveryCommand was not created via NewStartDeliveryCommand.
var ErrStartDeliveryCommandIsNotConstructed = errors.New(
	"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
)

// StartDeliveryCommand represents a shipper picking up an assigned order.
type StartDeliveryCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	callerID     kernel.UUID
	role         account.Role

	guard guard.ConstructorGuard
}

// NewStartDeliveryCommand creates a command to start a delivery. callerID
// identifies the account behind the request; for shippers it must match the
// assignment's shipper.
func NewStartDeliveryCommand(
	assignmentID, callerID kernel.UUID,
	role account.Role,
) (StartDeliveryCommand, error) {
	cmd := StartDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAssignmentID(assignmentID),
		cmd.setCallerID(callerID),
		cmd.setRole(role),
	); err != nil {
		return StartDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

// AssignmentID returns the assignment to start.
func (c StartDeliveryCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// CallerID returns the account behind the request.
func (c StartDeliveryCommand) CallerID() kernel.UUID {
	return c.callerID
}

// Role returns the caller's role.
func (c StartDeliveryCommand) Role() account.Role {
	return c.role
}

func (c *StartDeliveryCommand) setAssignmentID(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}
	c.assignmentID = assignmentID
	return nil
}

func (c *StartDeliveryCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}
	c.callerID = callerID
	return nil
}

func (c *StartDeliveryCommand) setRole(role account.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}

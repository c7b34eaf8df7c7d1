package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrFailDeliveryCommandIsNotConstructed is returned when a
// FailDeliveryCommand was not created via NewFailDeliveryCommand.
var ErrFailDeliveryCommandIsNotConstructed = errors.New(
	"FailDeliveryCommand must be created via NewFailDeliveryCommand constructor",
)

// FailDeliveryCommand represents a shipper reporting that a delivery in
// progress cannot be completed.
type FailDeliveryCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	callerID     kernel.UUID
	role         account.Role
	reason       string

	guard guard.ConstructorGuard
}

// NewFailDeliveryCommand creates a command to fail a delivery. reason is
// required.
func NewFailDeliveryCommand(
	assignmentID, callerID kernel.UUID,
	role account.Role,
	reason string,
) (FailDeliveryCommand, error) {
	cmd := FailDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAssignmentID(assignmentID),
		cmd.setCallerID(callerID),
		cmd.setRole(role),
		cmd.setReason(reason),
	); err != nil {
		return FailDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FailDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrFailDeliveryCommandIsNotConstructed)
}

// AssignmentID returns the assignment to fail.
func (c FailDeliveryCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// CallerID returns the account behind the request.
func (c FailDeliveryCommand) CallerID() kernel.UUID {
	return c.callerID
}

// Role returns the caller's role.
func (c FailDeliveryCommand) Role() account.Role {
	return c.role
}

// Reason returns why the delivery failed.
func (c FailDeliveryCommand) Reason() string {
	return c.reason
}

func (c *FailDeliveryCommand) setAssignmentID(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}
	c.assignmentID = assignmentID
	return nil
}

func (c *FailDeliveryCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}
	c.callerID = callerID
	return nil
}

func (c *FailDeliveryCommand) setRole(role account.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}

func (c *FailDeliveryCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}

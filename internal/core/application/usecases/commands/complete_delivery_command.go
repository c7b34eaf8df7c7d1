package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrCompleteDeliveryCommandIsNotConstructed is returned when a
// CompleteDeliveryCommand was not created via NewCompleteDeliveryCommand.
var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents a shipper handing over the order, with
// optional proof images.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	callerID     kernel.UUID
	role         account.Role
	proofImages  []string

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to complete a delivery.
func NewCompleteDeliveryCommand(
	assignmentID, callerID kernel.UUID,
	role account.Role,
	proofImages []string,
) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		proofImages: append([]string(nil), proofImages...),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAssignmentID(assignmentID),
		cmd.setCallerID(callerID),
		cmd.setRole(role),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// AssignmentID returns the assignment to complete.
func (c CompleteDeliveryCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// CallerID returns the account behind the request.
func (c CompleteDeliveryCommand) CallerID() kernel.UUID {
	return c.callerID
}

// Role returns the caller's role.
func (c CompleteDeliveryCommand) Role() account.Role {
	return c.role
}

// ProofImages returns the handed-in delivery proof, possibly empty.
func (c CompleteDeliveryCommand) ProofImages() []string {
	return append([]string(nil), c.proofImages...)
}

func (c *CompleteDeliveryCommand) setAssignmentID(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}
	c.assignmentID = assignmentID
	return nil
}

func (c *CompleteDeliveryCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}
	c.callerID = callerID
	return nil
}

func (c *CompleteDeliveryCommand) setRole(role account.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}

package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrTransitionOrderCommandIsNotConstructed is returned when a
// TransitionOrderCommand was not created via NewTransitionOrderCommand.
var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionAction names a forward step of the order lifecycle that staff
// drive manually.
type TransitionAction int

const (
	ActionUnknown TransitionAction = iota
	ActionConfirm
	ActionProcess
	ActionShip
)

// TransitionActionFromString parses an action name.
func TransitionActionFromString(s string) (TransitionAction, error) {
	switch s {
	case "confirm":
		return ActionConfirm, nil
	case "process":
		return ActionProcess, nil
	case "ship":
		return ActionShip, nil
	default:
		return ActionUnknown, errs.NewValueIsInvalidErrorWithCause(
			"action", fmt.Errorf("unknown order action %q", s))
	}
}

// String returns the action name.
func (a TransitionAction) String() string {
	switch a {
	case ActionConfirm:
		return "confirm"
	case ActionProcess:
		return "process"
	case ActionShip:
		return "ship"
	default:
		return "unknown"
	}
}

// TransitionOrderCommand represents a staff request to move an order one
// step forward: confirm, process, or ship.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	action  TransitionAction
	role    account.Role

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to advance an order's status.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	action TransitionAction,
	role account.Role,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAction(action),
		cmd.setRole(role),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Action returns the requested lifecycle step.
func (c TransitionOrderCommand) Action() TransitionAction {
	return c.action
}

// Role returns the caller's role.
func (c TransitionOrderCommand) Role() account.Role {
	return c.role
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setAction(action TransitionAction) error {
	switch action {
	case ActionConfirm, ActionProcess, ActionShip:
		c.action = action
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"action", fmt.Errorf("unknown order action %d", action))
	}
}

func (c *TransitionOrderCommand) setRole(role account.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}

package delivery

import (
	"errors"
	"fmt"
)

// Transition failures of the assignment state machine. These mirror how the
// conflicts surface to callers: an assignment that already exists, a shipper
// already out on a delivery, and transitions from the wrong state.
var (
	// ErrAlreadyAssigned indicates an assignment already exists for the order.
	ErrAlreadyAssigned = errors.New("delivery already assigned for this order")

	// ErrShipperBusy indicates the shipper already has a delivery in progress
	// at assignment time.
	ErrShipperBusy = errors.New("shipper is busy")

	// ErrAnotherOrderInProgress indicates the shipper tried to start a second
	// delivery while one is already in progress.
	ErrAnotherOrderInProgress = errors.New("shipper has another order in progress")

	// ErrInvalidStatus indicates a transition the assignment state machine
	// does not allow from the current status.
	ErrInvalidStatus = errors.New("assignment status does not allow this transition")
)

// Status represents the state of a delivery assignment.
//
// State transitions:
//
//	Assigned ──> Delivering ──┬──> Delivered
//	                          └──> Failed
//
// Delivered and Failed are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Assigned is the initial status: the order is bound to a shipper but
	// the shipper has not picked it up yet.
	Assigned

	// Delivering indicates the shipper is out with the order. A shipper can
	// hold at most one assignment in this status at any instant.
	Delivering

	// Delivered indicates a successful handover. Terminal.
	Delivered

	// Failed indicates the delivery could not be completed. Terminal.
	Failed
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Assigned:   "Assigned",
		Delivering: "Delivering",
		Delivered:  "Delivered",
		Failed:     "Failed",
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusStrings()[s]; !ok || s == Unknown {
		return fmt.Errorf("%w: %d is not a valid status", ErrInvalidStatus, s)
	}
	return nil
}

// Start transitions Assigned to Delivering.
func (s Status) Start() (Status, error) {
	if s != Assigned {
		return 0, fmt.Errorf("%w: cannot start a %s assignment", ErrInvalidStatus, s)
	}
	return Delivering, nil
}

// Complete transitions Delivering to Delivered. Terminal.
func (s Status) Complete() (Status, error) {
	if s != Delivering {
		return 0, fmt.Errorf("%w: cannot complete a %s assignment", ErrInvalidStatus, s)
	}
	return Delivered, nil
}

// Fail transitions Delivering to Failed. Terminal.
func (s Status) Fail() (Status, error) {
	if s != Delivering {
		return 0, fmt.Errorf("%w: cannot fail a %s assignment", ErrInvalidStatus, s)
	}
	return Failed, nil
}

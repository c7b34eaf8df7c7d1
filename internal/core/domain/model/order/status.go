package order

import (
	"errors"
	"fmt"
)

// ErrInvalidStatus indicates a transition that the order state machine does
// not allow from the current status.
var ErrInvalidStatus = errors.New("order status does not allow this transition")

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Processing ──> Shipped ──> Completed
//	   │            │              │
//	   └────────────┴──────────────┴──> Cancelled
//
// Orders advance strictly forward. Cancellation is allowed from any state
// before Shipped. Completed and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of a freshly created order.
	Pending

	// Confirmed indicates staff accepted the order.
	Confirmed

	// Processing indicates the order is being picked and packed.
	Processing

	// Shipped indicates the order left the warehouse and is eligible for a
	// delivery assignment.
	Shipped

	// Completed indicates the order was delivered and closed. Terminal.
	Completed

	// Cancelled indicates the order was abandoned before shipping. Terminal.
	Cancelled
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Confirmed:  "Confirmed",
		Processing: "Processing",
		Shipped:    "Shipped",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
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

func (s Status) invalidTransition(action string) error {
	return fmt.Errorf("%w: cannot %s a %s order", ErrInvalidStatus, action, s)
}

// Confirm transitions Pending to Confirmed.
func (s Status) Confirm() (Status, error) {
	if s != Pending {
		return 0, s.invalidTransition("confirm")
	}
	return Confirmed, nil
}

// Process transitions Confirmed to Processing.
func (s Status) Process() (Status, error) {
	if s != Confirmed {
		return 0, s.invalidTransition("process")
	}
	return Processing, nil
}

// Ship transitions Processing to Shipped.
func (s Status) Ship() (Status, error) {
	if s != Processing {
		return 0, s.invalidTransition("ship")
	}
	return Shipped, nil
}

// Complete transitions Shipped to Completed. Terminal.
func (s Status) Complete() (Status, error) {
	if s != Shipped {
		return 0, s.invalidTransition("complete")
	}
	return Completed, nil
}

// Cancel transitions any pre-shipment status to Cancelled. Terminal.
// Cancelling an already cancelled order is rejected, not ignored.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Confirmed && s != Processing {
		return 0, s.invalidTransition("cancel")
	}
	return Cancelled, nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

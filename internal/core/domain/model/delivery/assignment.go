// Package delivery contains the Assignment aggregate binding one shipped
// order to one shipper, with its own completion state machine. The
// exclusivity rules (one assignment per order, one delivery in progress per
// shipper) are enforced in storage; the aggregate enforces the transitions.
package delivery

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment instance was
// not created through NewAssignment or RestoreAssignment.
var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

// Assignment binds one order to one shipper and tracks the delivery through
// Assigned, Delivering, and a terminal Delivered or Failed state. Completion
// stamps deliveredAt and records the proof images handed in by the shipper.
type Assignment struct {
	id            kernel.UUID
	orderID       kernel.UUID
	shipperID     kernel.UUID
	status        Status
	deliveredAt   *time.Time
	proofImages   []string
	failureReason string

	isConstructed bool
}

// NewAssignment creates an Assigned row binding the order to the shipper.
func NewAssignment(id, orderID, shipperID kernel.UUID) (*Assignment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		shipperID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Assignment{
		id:            id,
		orderID:       orderID,
		shipperID:     shipperID,
		status:        Assigned,
		isConstructed: true,
	}, nil
}

// RestoreAssignment reconstructs an assignment from persistence.
func RestoreAssignment(
	id, orderID, shipperID kernel.UUID,
	status Status,
	deliveredAt *time.Time,
	proofImages []string,
	failureReason string,
) (*Assignment, error) {
	a, err := NewAssignment(id, orderID, shipperID)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	a.status = status
	if deliveredAt != nil {
		t := *deliveredAt
		a.deliveredAt = &t
	}
	a.proofImages = append([]string(nil), proofImages...)
	a.failureReason = failureReason
	return a, nil
}

// Validate ensures the Assignment was created through its constructor.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// ID returns the assignment identifier.
func (a *Assignment) ID() kernel.UUID { return a.id }

// OrderID returns the assigned order.
func (a *Assignment) OrderID() kernel.UUID { return a.orderID }

// ShipperID returns the shipper carrying the order.
func (a *Assignment) ShipperID() kernel.UUID { return a.shipperID }

// Status returns the current assignment status.
func (a *Assignment) Status() Status { return a.status }

// DeliveredAt returns the completion timestamp, nil before completion.
func (a *Assignment) DeliveredAt() *time.Time {
	if a.deliveredAt == nil {
		return nil
	}
	t := *a.deliveredAt
	return &t
}

// ProofImages returns the delivery proof handed in on completion.
func (a *Assignment) ProofImages() []string {
	return append([]string(nil), a.proofImages...)
}

// FailureReason returns why the delivery failed, empty otherwise.
func (a *Assignment) FailureReason() string { return a.failureReason }

// Start moves the assignment from Assigned to Delivering.
func (a *Assignment) Start() error {
	newStatus, err := a.status.Start()
	if err != nil {
		return err
	}
	a.status = newStatus
	return nil
}

// Complete moves the assignment from Delivering to Delivered, stamping the
// delivery time and recording the proof images.
func (a *Assignment) Complete(deliveredAt time.Time, proofImages []string) error {
	newStatus, err := a.status.Complete()
	if err != nil {
		return err
	}
	if deliveredAt.IsZero() {
		return errs.NewValueIsRequiredError("deliveredAt")
	}

	a.status = newStatus
	a.deliveredAt = &deliveredAt
	a.proofImages = append([]string(nil), proofImages...)
	return nil
}

// Fail moves the assignment from Delivering to Failed with a reason.
func (a *Assignment) Fail(reason string) error {
	newStatus, err := a.status.Fail()
	if err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	a.status = newStatus
	a.failureReason = reason
	return nil
}

package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// AssignShipperCommandHandler binds a shipped order to a shipper. The
// one-assignment-per-order rule is closed by the storage constraint behind
// DeliveryRepository.Add, not by the pre-check: under a concurrent race the
// loser's insert fails with delivery.ErrAlreadyAssigned and rolls back. The
// shipper-availability pre-check is advisory in the same way; the binding
// exclusivity check fires when the shipper starts delivering.
type AssignShipperCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
}

// NewAssignShipperCommandHandler creates a handler for shipper assignment.
func NewAssignShipperCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
) AssignShipperCommandHandler {
	return AssignShipperCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle assigns the shipper and publishes the delivery status event after
// the transaction committed.
func (h *AssignShipperCommandHandler) Handle(ctx context.Context, cmd AssignShipperCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Role().CanAssignShippers() {
		return ErrForbidden
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if aggregate.Status() != order.Shipped {
		return fmt.Errorf("%w: only a Shipped order can be assigned, got %s",
			order.ErrInvalidStatus, aggregate.Status())
	}

	deliveryRepo := uow.DeliveryRepository()

	existing, err := deliveryRepo.GetByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if existing != nil {
		return delivery.ErrAlreadyAssigned
	}

	busy, err := deliveryRepo.CountDeliveringByShipper(ctx, cmd.ShipperID())
	if err != nil {
		return err
	}
	if busy > 0 {
		return delivery.ErrShipperBusy
	}

	assignment, err := delivery.NewAssignment(cmd.AssignmentID(), cmd.OrderID(), cmd.ShipperID())
	if err != nil {
		return err
	}

	if err = deliveryRepo.Add(ctx, assignment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.DeliveryStatusChanged(ctx, assignment.ID(), assignment.OrderID(), assignment.Status())
	return nil
}

package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// StartDeliveryCommandHandler moves an assignment to Delivering. The
// one-delivery-in-progress-per-shipper rule is closed by the storage
// constraint behind DeliveryRepository.Update: when the shipper already has
// a Delivering row, the update fails with
// delivery.ErrAnotherOrderInProgress and rolls back.
type StartDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
}

// NewStartDeliveryCommandHandler creates a handler for delivery pickup.
func NewStartDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle starts the delivery and publishes the status event after commit.
func (h *StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Role().CanOperateDeliveries() {
		return ErrForbidden
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	assignment, err := deliveryRepo.Get(ctx, cmd.AssignmentID())
	if err != nil {
		return err
	}

	if err = authorizeShipper(cmd.Role(), cmd.CallerID(), assignment); err != nil {
		return err
	}

	if err = assignment.Start(); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, assignment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.DeliveryStatusChanged(ctx, assignment.ID(), assignment.OrderID(), assignment.Status())
	return nil
}

// authorizeShipper lets a shipper act only on their own assignment.
// Supervisory roles pass through.
func authorizeShipper(role account.Role, callerID kernel.UUID, assignment *delivery.Assignment) error {
	if role == account.RoleShipper && !callerID.IsEqual(assignment.ShipperID()) {
		return ErrForbidden
	}
	return nil
}

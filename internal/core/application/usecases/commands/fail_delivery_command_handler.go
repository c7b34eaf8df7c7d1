package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// FailDeliveryCommandHandler marks a delivery in progress as failed. The
// order stays Shipped; operations decide manually whether to re-assign it.
type FailDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
}

// NewFailDeliveryCommandHandler creates a handler for delivery failure.
func NewFailDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
) FailDeliveryCommandHandler {
	return FailDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle fails the delivery and publishes the status event after commit.
func (h *FailDeliveryCommandHandler) Handle(ctx context.Context, cmd FailDeliveryCommand) error {
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

	if err = assignment.Fail(cmd.Reason()); err != nil {
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

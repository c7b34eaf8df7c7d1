package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// CompleteDeliveryCommandHandler finishes a delivery. After the transaction
// committed, the completion policy decides whether the order itself is
// completed; a policy failure is the policy's to report, the delivery stays
// Delivered either way.
type CompleteDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	policy     ports.CompletionPolicy
	publisher  ports.EventPublisher
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery handover.
func NewCompleteDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	policy ports.CompletionPolicy,
	publisher ports.EventPublisher,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle completes the delivery, publishes the status event, and invokes the
// completion policy with the delivered order.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	if err = assignment.Complete(time.Now(), cmd.ProofImages()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, assignment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.DeliveryStatusChanged(ctx, assignment.ID(), assignment.OrderID(), assignment.Status())

	// The delivery committed; a policy failure must not surface as a failed
	// handover. The policy logs its own errors.
	_ = h.policy.OrderDelivered(ctx, assignment.OrderID())

	return nil
}

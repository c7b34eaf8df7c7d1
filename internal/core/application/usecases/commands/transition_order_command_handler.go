package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// TransitionOrderCommandHandler advances an order one lifecycle step. Only
// staff-level roles may drive these transitions; the order's status machine
// rejects out-of-sequence steps.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewTransitionOrderCommandHandler creates a handler for the manual order
// lifecycle steps.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle moves the order through the requested step and publishes the status
// event after the transaction committed.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Role().CanTransitionOrders() {
		return ErrForbidden
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	from := aggregate.Status()
	if err = h.apply(aggregate, cmd.Action()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate, from); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.OrderStatusChanged(ctx, aggregate.ID(), aggregate.Status())
	return nil
}

func (h *TransitionOrderCommandHandler) apply(aggregate *order.Order, action TransitionAction) error {
	switch action {
	case ActionConfirm:
		return aggregate.Confirm()
	case ActionProcess:
		return aggregate.Process()
	case ActionShip:
		return aggregate.Ship()
	default:
		return order.ErrInvalidStatus
	}
}

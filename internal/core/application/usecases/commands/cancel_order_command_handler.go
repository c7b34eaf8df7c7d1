package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CancelOrderCommandHandler cancels a pre-shipment order and compensates
// everything its creation reserved: stock goes back, the promotion and
// voucher usage rows are deleted. Deleting the voucher usage makes the code
// redeemable again for that customer. All compensations and the status
// change commit as one transaction.
type CancelOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	publisher ports.EventPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle cancels the order. Cancelling an already cancelled or shipped
// order fails with order.ErrInvalidStatus; nothing is compensated twice.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
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

	if err = h.authorize(cmd, aggregate); err != nil {
		return err
	}

	// The status machine rejects a second cancel seen by this transaction;
	// the conditional Update rejects one racing on the same snapshot. Either
	// way the loser rolls back before any compensation runs.
	from := aggregate.Status()
	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate, from); err != nil {
		return err
	}

	if err = h.compensate(ctx, uow, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.OrderStatusChanged(ctx, aggregate.ID(), aggregate.Status())
	return nil
}

func (h *CancelOrderCommandHandler) authorize(cmd CancelOrderCommand, aggregate *order.Order) error {
	if cmd.Role() == account.RoleCustomer {
		if !cmd.CallerID().IsEqual(aggregate.CustomerID()) {
			return ErrForbidden
		}
		return nil
	}
	if !cmd.Role().CanTransitionOrders() {
		return ErrForbidden
	}
	return nil
}

func (h *CancelOrderCommandHandler) compensate(ctx context.Context, uow CheckoutUoW, aggregate *order.Order) error {
	stockRepo := uow.StockRepository()
	for _, line := range aggregate.Lines() {
		if err := stockRepo.Restore(ctx, line.VariantID(), line.Quantity()); err != nil {
			return err
		}
	}

	if err := uow.PromotionRepository().DeleteUsagesByOrder(ctx, aggregate.ID()); err != nil {
		return err
	}

	return uow.VoucherRepository().DeleteUsagesByOrder(ctx, aggregate.ID())
}

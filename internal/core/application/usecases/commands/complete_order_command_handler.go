package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CompleteOrderCommandHandler completes a shipped order and re-ranks the
// customer in the same transaction. The spend driving the re-ranking is
// summed from the order store inside the transaction, so the new completion
// is always included and concurrent completions converge on the same sum.
type CompleteOrderCommandHandler struct {
	uowFactory CompletionUoWFactory
	ranking    services.RankingEngine
	publisher  ports.EventPublisher
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(
	uowFactory CompletionUoWFactory,
	ranking services.RankingEngine,
	publisher ports.EventPublisher,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		ranking:    ranking,
		publisher:  publisher,
	}
}

// Handle completes the order, recomputes the customer's ranking from their
// completed-order spend, and publishes the status event after commit.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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
	if err = aggregate.Complete(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate, from); err != nil {
		return err
	}

	if err = h.rerankCustomer(ctx, uow, aggregate.CustomerID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.OrderStatusChanged(ctx, aggregate.ID(), aggregate.Status())
	return nil
}

func (h *CompleteOrderCommandHandler) rerankCustomer(
	ctx context.Context,
	uow CompletionUoW,
	customerID kernel.UUID,
) error {
	customerRepo := uow.CustomerRepository()
	cust, err := customerRepo.Get(ctx, customerID)
	if err != nil {
		return err
	}

	spend, err := uow.OrderRepository().SumCompletedTotals(ctx, customerID)
	if err != nil {
		return err
	}

	if _, err = h.ranking.Recompute(cust, spend); err != nil {
		return err
	}

	return customerRepo.Update(ctx, cust)
}

package notify

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
)

// NoOpCompletionPolicy leaves a shipped order for a staff member to complete
// manually after its delivery finished.
type NoOpCompletionPolicy struct{}

// NewNoOpCompletionPolicy creates the manual-completion policy.
func NewNoOpCompletionPolicy() *NoOpCompletionPolicy {
	return &NoOpCompletionPolicy{}
}

// OrderDelivered does nothing.
func (p *NoOpCompletionPolicy) OrderDelivered(context.Context, kernel.UUID) error {
	return nil
}

// AutoCompletePolicy completes the order as the system actor as soon as its
// delivery finished. The completion runs in its own transaction after the
// delivery one committed: if it fails, the delivery stays completed and the
// order is left for manual completion.
type AutoCompletePolicy struct {
	handler commands.CompleteOrderCommandHandler
	logger  *slog.Logger
}

// NewAutoCompletePolicy creates the auto-completion policy.
func NewAutoCompletePolicy(handler commands.CompleteOrderCommandHandler, logger *slog.Logger) *AutoCompletePolicy {
	return &AutoCompletePolicy{
		handler: handler,
		logger:  logger.With("component", "auto_complete_policy"),
	}
}

// OrderDelivered completes the delivered order with system authority.
func (p *AutoCompletePolicy) OrderDelivered(ctx context.Context, orderID kernel.UUID) error {
	cmd, err := commands.NewCompleteOrderCommand(orderID, account.RoleSystem)
	if err != nil {
		return err
	}

	if err = p.handler.Handle(ctx, cmd); err != nil {
		p.logger.ErrorContext(ctx, "auto-completion after delivery failed",
			"order_id", orderID.String(), "error", err)
		return err
	}
	return nil
}

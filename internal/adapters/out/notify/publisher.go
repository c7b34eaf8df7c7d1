// Package notify contains the outbound adapters behind the notification
// seam: the status event publisher and the delivery-completion policy.
package notify

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// SlogEventPublisher implements ports.EventPublisher by writing structured
// log records. The notification collaborator consumes these events from the
// log pipeline; the engine itself only guarantees they are emitted after
// the transition committed.
type SlogEventPublisher struct {
	logger *slog.Logger
}

// NewSlogEventPublisher creates a publisher writing to the given logger.
func NewSlogEventPublisher(logger *slog.Logger) *SlogEventPublisher {
	return &SlogEventPublisher{
		logger: logger.With("component", "event_publisher"),
	}
}

// OrderStatusChanged announces that an order reached a new status.
func (p *SlogEventPublisher) OrderStatusChanged(ctx context.Context, orderID kernel.UUID, status order.Status) {
	p.logger.InfoContext(ctx, "order status changed",
		"event", "order.status_changed",
		"order_id", orderID.String(),
		"status", status.String(),
	)
}

// DeliveryStatusChanged announces that a delivery assignment reached a new
// status.
func (p *SlogEventPublisher) DeliveryStatusChanged(
	ctx context.Context, assignmentID, orderID kernel.UUID, status delivery.Status,
) {
	p.logger.InfoContext(ctx, "delivery status changed",
		"event", "delivery.status_changed",
		"assignment_id", assignmentID.String(),
		"order_id", orderID.String(),
		"status", status.String(),
	)
}

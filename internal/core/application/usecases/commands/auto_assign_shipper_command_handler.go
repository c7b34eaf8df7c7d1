package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var (
	ErrNoShippedOrderFound = errors.New("no shipped order awaiting assignment")
	ErrNoFreeShippersFound = errors.New("no free shippers found")
)

// AutoAssignShipperCommandHandler performs one assignment round for the
// scheduler: oldest shipped unassigned order, first free shipper on the
// roster. The no-work cases are distinct sentinels so the caller can treat
// them as routine rather than as failures.
type AutoAssignShipperCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
}

// NewAutoAssignShipperCommandHandler creates a handler for automatic
// shipper assignment rounds.
func NewAutoAssignShipperCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
) AutoAssignShipperCommandHandler {
	return AutoAssignShipperCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle picks the order and the shipper and creates the assignment.
// Returns ErrNoShippedOrderFound when no order is waiting and
// ErrNoFreeShippersFound when the roster has no idle active shipper.
func (h *AutoAssignShipperCommandHandler) Handle(ctx context.Context, cmd AutoAssignShipperCommand) error {
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

	aggregate, err := uow.OrderRepository().GetFirstShippedUnassigned(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoShippedOrderFound
	}
	if err != nil {
		return err
	}

	deliveryRepo := uow.DeliveryRepository()

	shippers, err := deliveryRepo.GetFreeShippers(ctx)
	if err != nil {
		return err
	}
	if len(shippers) == 0 {
		return ErrNoFreeShippersFound
	}

	assignment, err := delivery.NewAssignment(kernel.NewUUID(), aggregate.ID(), shippers[0])
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

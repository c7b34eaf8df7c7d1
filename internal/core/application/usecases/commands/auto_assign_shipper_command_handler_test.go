package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAutoAssignShipperCommandHandler_Handle_AssignsFirstFreeShipper(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	firstShipper := kernel.NewUUID()
	secondShipper := kernel.NewUUID()
	aggregate := restoreTestOrder(t, orderID, order.Shipped)

	cmd := commands.NewAutoAssignShipperCommand()

	orderRepo := new(OrderRepoMock)
	deliveryRepo := new(DeliveryRepoMock)
	uow := new(DeliveryUoWMock)
	factory := new(DeliveryUoWFactoryMock)
	publisher := new(PublisherMock)

	factory.On("Create").Return(uow).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DeliveryRepository").Return(deliveryRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("GetFirstShippedUnassigned", ctx).Return(aggregate, nil).Once(),
		deliveryRepo.On("GetFreeShippers", ctx).
			Return([]kernel.UUID{firstShipper, secondShipper}, nil).Once(),
		deliveryRepo.On("Add", ctx, mock.MatchedBy(func(a *delivery.Assignment) bool {
			return a.OrderID().IsEqual(orderID) &&
				a.ShipperID().IsEqual(firstShipper) &&
				a.Status() == delivery.Assigned
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	publisher.On("DeliveryStatusChanged", ctx, mock.Anything, orderID, delivery.Assigned).Once()

	handler := commands.NewAutoAssignShipperCommandHandler(factory, publisher)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestAutoAssignShipperCommandHandler_Handle_NoOrderWaiting(t *testing.T) {
	ctx := t.Context()

	cmd := commands.NewAutoAssignShipperCommand()

	orderRepo := new(OrderRepoMock)
	uow := new(DeliveryUoWMock)
	factory := new(DeliveryUoWFactoryMock)

	factory.On("Create").Return(uow).Once()
	uow.On("OrderRepository").Return(orderRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("GetFirstShippedUnassigned", ctx).
			Return(nil, errs.NewObjectNotFoundError("order", "shipped unassigned")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAutoAssignShipperCommandHandler(factory, new(PublisherMock))
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoShippedOrderFound)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestAutoAssignShipperCommandHandler_Handle_NoFreeShippers(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	aggregate := restoreTestOrder(t, orderID, order.Shipped)

	cmd := commands.NewAutoAssignShipperCommand()

	orderRepo := new(OrderRepoMock)
	deliveryRepo := new(DeliveryRepoMock)
	uow := new(DeliveryUoWMock)
	factory := new(DeliveryUoWFactoryMock)

	factory.On("Create").Return(uow).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DeliveryRepository").Return(deliveryRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("GetFirstShippedUnassigned", ctx).Return(aggregate, nil).Once(),
		deliveryRepo.On("GetFreeShippers", ctx).Return(nil, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAutoAssignShipperCommandHandler(factory, new(PublisherMock))
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoFreeShippersFound)
	uow.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
}

func TestAutoAssignShipperCommandHandler_Handle_RaceLoserRollsBack(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	aggregate := restoreTestOrder(t, orderID, order.Shipped)

	cmd := commands.NewAutoAssignShipperCommand()

	orderRepo := new(OrderRepoMock)
	deliveryRepo := new(DeliveryRepoMock)
	uow := new(DeliveryUoWMock)
	factory := new(DeliveryUoWFactoryMock)

	factory.On("Create").Return(uow).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DeliveryRepository").Return(deliveryRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("GetFirstShippedUnassigned", ctx).Return(aggregate, nil).Once(),
		deliveryRepo.On("GetFreeShippers", ctx).Return([]kernel.UUID{kernel.NewUUID()}, nil).Once(),
		deliveryRepo.On("Add", ctx, mock.Anything).Return(delivery.ErrAlreadyAssigned).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAutoAssignShipperCommandHandler(factory, new(PublisherMock))
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrAlreadyAssigned)
	uow.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
}

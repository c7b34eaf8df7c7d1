package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewFailDeliveryCommand_RequiresReason(t *testing.T) {
	_, err := commands.NewFailDeliveryCommand(
		kernel.NewUUID(), kernel.NewUUID(), account.RoleShipper, "")

	require.Error(t, err)
}

func TestFailDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	shipperID := kernel.NewUUID()
	assignment := deliveringAssignment(t, orderID, shipperID)

	cmd, err := commands.NewFailDeliveryCommand(
		assignment.ID(), shipperID, account.RoleShipper, "recipient unreachable")
	require.NoError(t, err)

	deliveryRepo := new(DeliveryRepoMock)
	uow := new(DeliveryUoWMock)
	factory := new(DeliveryUoWFactoryMock)
	publisher := new(PublisherMock)

	factory.On("Create").Return(uow).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		deliveryRepo.On("Get", ctx, assignment.ID()).Return(assignment, nil).Once(),
		deliveryRepo.On("Update", ctx, assignment).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	publisher.On("DeliveryStatusChanged", ctx, assignment.ID(), orderID, delivery.Failed).Once()

	handler := commands.NewFailDeliveryCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.Failed, assignment.Status())
	assert.Equal(t, "recipient unreachable", assignment.FailureReason())
	publisher.AssertExpectations(t)
}

func TestFailDeliveryCommandHandler_Handle_NotDelivering(t *testing.T) {
	ctx := t.Context()

	shipperID := kernel.NewUUID()
	assignment, err := delivery.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), shipperID)
	require.NoError(t, err)

	cmd, err := commands.NewFailDeliveryCommand(
		assignment.ID(), shipperID, account.RoleShipper, "damaged parcel")
	require.NoError(t, err)

	deliveryRepo := new(DeliveryRepoMock)
	uow := new(DeliveryUoWMock)
	factory := new(DeliveryUoWFactoryMock)

	factory.On("Create").Return(uow).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		deliveryRepo.On("Get", ctx, assignment.ID()).Return(assignment, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewFailDeliveryCommandHandler(factory, new(PublisherMock))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrInvalidStatus)
}

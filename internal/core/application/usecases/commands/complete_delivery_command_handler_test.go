package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func deliveringAssignment(t *testing.T, orderID, shipperID kernel.UUID) *delivery.Assignment {
	t.Helper()

	assignment, err := delivery.NewAssignment(kernel.NewUUID(), orderID, shipperID)
	require.NoError(t, err)
	require.NoError(t, assignment.Start())
	return assignment
}

func TestCompleteDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	shipperID := kernel.NewUUID()
	assignment := deliveringAssignment(t, orderID, shipperID)
	proof := []string{"https://cdn.example.com/proof/1.jpg"}

	cmd, err := commands.NewCompleteDeliveryCommand(assignment.ID(), shipperID, account.RoleShipper, proof)
	require.NoError(t, err)

	deliveryRepo := new(DeliveryRepoMock)
	uow := new(DeliveryUoWMock)
	factory := new(DeliveryUoWFactoryMock)
	publisher := new(PublisherMock)
	policy := new(PolicyMock)

	factory.On("Create").Return(uow).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		deliveryRepo.On("Get", ctx, assignment.ID()).Return(assignment, nil).Once(),
		deliveryRepo.On("Update", ctx, assignment).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	publisher.On("DeliveryStatusChanged", ctx, assignment.ID(), orderID, delivery.Delivered).Once()
	policy.On("OrderDelivered", ctx, orderID).Return(nil).Once()

	handler := commands.NewCompleteDeliveryCommandHandler(factory, policy, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.Delivered, assignment.Status())
	require.NotNil(t, assignment.DeliveredAt())
	assert.Equal(t, proof, assignment.ProofImages())
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	policy.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_NotDelivering(t *testing.T) {
	ctx := t.Context()

	shipperID := kernel.NewUUID()
	assignment, err := delivery.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), shipperID)
	require.NoError(t, err)

	cmd, err := commands.NewCompleteDeliveryCommand(assignment.ID(), shipperID, account.RoleShipper, nil)
	require.NoError(t, err)

	deliveryRepo := new(DeliveryRepoMock)
	uow := new(DeliveryUoWMock)
	factory := new(DeliveryUoWFactoryMock)
	policy := new(PolicyMock)

	factory.On("Create").Return(uow).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		deliveryRepo.On("Get", ctx, assignment.ID()).Return(assignment, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCompleteDeliveryCommandHandler(factory, policy, new(PublisherMock))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrInvalidStatus)
	policy.AssertNotCalled(t, "OrderDelivered", mock.Anything, mock.Anything)
}

func TestCompleteDeliveryCommandHandler_Handle_PolicyErrorDoesNotFailHandover(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	shipperID := kernel.NewUUID()
	assignment := deliveringAssignment(t, orderID, shipperID)

	cmd, err := commands.NewCompleteDeliveryCommand(assignment.ID(), shipperID, account.RoleShipper, nil)
	require.NoError(t, err)

	deliveryRepo := new(DeliveryRepoMock)
	uow := new(DeliveryUoWMock)
	factory := new(DeliveryUoWFactoryMock)
	publisher := new(PublisherMock)
	policy := new(PolicyMock)

	factory.On("Create").Return(uow).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		deliveryRepo.On("Get", ctx, assignment.ID()).Return(assignment, nil).Once(),
		deliveryRepo.On("Update", ctx, assignment).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	publisher.On("DeliveryStatusChanged", ctx, assignment.ID(), orderID, delivery.Delivered).Once()
	policy.On("OrderDelivered", ctx, orderID).Return(errors.New("policy error")).Once()

	handler := commands.NewCompleteDeliveryCommandHandler(factory, policy, publisher)
	err = handler.Handle(ctx, cmd)

	// The delivery committed; the policy failure stays with the policy.
	require.NoError(t, err)
	assert.Equal(t, delivery.Delivered, assignment.Status())
	policy.AssertExpectations(t)
}

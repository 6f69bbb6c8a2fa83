package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmReceiptCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	o := restoreOrder(t, order.Delivered, clientID, kernel.NewUUID())

	cmd, err := commands.NewConfirmReceiptCommand(o.ID(), clientID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o, order.Delivered).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	err = commands.NewConfirmReceiptCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	assert.Equal(t, order.Received, o.Status())
}

func TestConfirmReceiptCommandHandler_Handle_SecondConfirmConflicts(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	o := restoreOrder(t, order.Received, clientID, kernel.NewUUID())

	cmd, err := commands.NewConfirmReceiptCommand(o.ID(), clientID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	err = commands.NewConfirmReceiptCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestConfirmReceiptCommandHandler_Handle_OtherClient(t *testing.T) {
	ctx := t.Context()
	o := restoreOrder(t, order.Delivered, kernel.NewUUID(), kernel.NewUUID())

	cmd, err := commands.NewConfirmReceiptCommand(o.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	err = commands.NewConfirmReceiptCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAccessDenied)
	assert.Equal(t, order.Delivered, o.Status())
}

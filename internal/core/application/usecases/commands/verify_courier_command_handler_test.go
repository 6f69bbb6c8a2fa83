package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVerifyCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	courier := newCourier(t, false)
	cmd, err := commands.NewVerifyCourierCommand(courier.ID())
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	factory := new(MockUserUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, courier.ID()).Return(courier, nil).Once(),
		userRepo.On("Update", ctx, courier).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	err = commands.NewVerifyCourierCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	assert.True(t, courier.IsVerified())
}

func TestVerifyCourierCommandHandler_Handle_AlreadyVerified(t *testing.T) {
	ctx := t.Context()
	courier := newCourier(t, true)
	cmd, err := commands.NewVerifyCourierCommand(courier.ID())
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	factory := new(MockUserUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(userRepo).Once()
	userRepo.On("Get", ctx, courier.ID()).Return(courier, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	err = commands.NewVerifyCourierCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestVerifyCourierCommandHandler_Handle_Errors(t *testing.T) {
	t.Run("unknown user", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, err := commands.NewVerifyCourierCommand(id)
		require.NoError(t, err)

		userRepo := new(MockUserRepository)
		uow := new(MockUoW)
		factory := new(MockUserUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("UserRepository").Return(userRepo).Once()
		userRepo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("user", id)).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		err = commands.NewVerifyCourierCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("client account", func(t *testing.T) {
		ctx := t.Context()
		client, err := user.NewUser(kernel.NewUUID(), "Client", "", "+1", user.RoleClient)
		require.NoError(t, err)
		cmd, err := commands.NewVerifyCourierCommand(client.ID())
		require.NoError(t, err)

		userRepo := new(MockUserRepository)
		uow := new(MockUoW)
		factory := new(MockUserUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("UserRepository").Return(userRepo).Once()
		userRepo.On("Get", ctx, client.ID()).Return(client, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		err = commands.NewVerifyCourierCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.False(t, client.IsVerified())
	})
}

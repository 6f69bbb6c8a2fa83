package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptOrderCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		verified   bool
		strict     bool
		wantErr    error
		wantStatus order.Status
	}{
		{"verified courier", true, false, nil, order.Assigned},
		{"unverified courier with lenient policy", false, false, nil, order.Assigned},
		{"unverified courier with strict policy", false, true, services.ErrCourierIsNotEligible, order.Pending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			courier := newCourier(t, tt.verified)
			o := restoreOrder(t, order.Pending, kernel.NewUUID(), kernel.UUID{})
			cmd, err := commands.NewAcceptOrderCommand(o.ID(), courier.ID())
			require.NoError(t, err)

			userRepo := new(MockUserRepository)
			orderRepo := new(MockOrderRepository)
			uow := new(MockUoW)
			factory := new(MockAssignmentUoWFactory)

			factory.On("Create").Return(uow).Once()
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("UserRepository").Return(userRepo).Once()
			userRepo.On("Get", ctx, courier.ID()).Return(courier, nil).Once()
			uow.On("OrderRepository").Return(orderRepo).Once()
			orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
			if tt.wantErr == nil {
				orderRepo.On("Update", ctx, o, order.Pending).Return(nil).Once()
				uow.On("Commit", ctx).Return(nil).Once()
			}
			uow.On("Rollback", ctx).Return(nil).Once()

			handler := commands.NewAcceptOrderCommandHandler(factory, services.NewAssignmentPolicy(tt.strict))
			err = handler.Handle(ctx, cmd)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.True(t, o.IsAssignedTo(courier.ID()))
			}
			assert.Equal(t, tt.wantStatus, o.Status())
			uow.AssertExpectations(t)
			orderRepo.AssertExpectations(t)
		})
	}
}

func TestAcceptOrderCommandHandler_Handle_ClientIsDenied(t *testing.T) {
	ctx := t.Context()
	client, err := user.NewUser(kernel.NewUUID(), "Fatou Ndiaye", "", "+221760000000", user.RoleClient)
	require.NoError(t, err)
	o := restoreOrder(t, order.Pending, kernel.NewUUID(), kernel.UUID{})
	cmd, err := commands.NewAcceptOrderCommand(o.ID(), client.ID())
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockAssignmentUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(userRepo).Once()
	userRepo.On("Get", ctx, client.ID()).Return(client, nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	err = commands.NewAcceptOrderCommandHandler(factory, services.NewAssignmentPolicy(false)).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAccessDenied)
	assert.Equal(t, order.Pending, o.Status())
}

package commands_test

import (
	"errors"
	"testing"

	"cargolink/internal/core/application/usecases/commands"
	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/localrequest"
	"cargolink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testOrigin() kernel.Address {
	return kernel.MustNewAddress("1 Warehouse Way", "Springfield", "IL", "62701")
}

func TestCreateRequestCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateRequestCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		localrequest.ServiceLocalDelivery,
		testOrigin(), testDestination(),
		localrequest.WeightTierUpTo70, 0,
		localrequest.VolumeTierHalf,
	)
	require.NoError(t, err)

	distance := new(MockDistanceService)
	distance.On("DistanceMiles", ctx, testOrigin(), testDestination()).Return(14.0, nil).Once()

	repo := new(MockRequestRepository)
	uow := new(MockRequestUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*localrequest.Request")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateRequestCommandHandler(factory, distance)
	require.NoError(t, h.Handle(ctx, cmd))
	distance.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateRequestCommandHandler_Handle_DistanceOutageRecordsZeroMiles(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateRequestCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		localrequest.ServiceWarehousePickup,
		testOrigin(), testDestination(),
		localrequest.WeightTierUpTo40, 0,
		localrequest.VolumeTierQuarter,
	)
	require.NoError(t, err)

	distance := new(MockDistanceService)
	distance.On("DistanceMiles", ctx, testOrigin(), testDestination()).
		Return(0.0, errs.NewExternalServiceError("distance", errors.New("timeout"))).Once()

	var stored *localrequest.Request
	repo := new(MockRequestRepository)
	uow := new(MockRequestUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*localrequest.Request")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*localrequest.Request)
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateRequestCommandHandler(factory, distance)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, stored)
	assert.Zero(t, stored.DistanceMiles())
}

func TestNewCreateRequestCommand_HeavyTierNeedsExactWeight(t *testing.T) {
	cmd, err := commands.NewCreateRequestCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		localrequest.ServiceLocalDelivery,
		testOrigin(), testDestination(),
		localrequest.WeightTierHeavy, 0,
		localrequest.VolumeTierFull,
	)
	require.NoError(t, err) // the aggregate enforces the exact weight

	distance := new(MockDistanceService)
	distance.On("DistanceMiles", mock.Anything, mock.Anything, mock.Anything).Return(5.0, nil).Once()

	uow := new(MockRequestUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateRequestCommandHandler(factory, distance)
	err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

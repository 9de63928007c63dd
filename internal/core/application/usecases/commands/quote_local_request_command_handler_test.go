package commands_test

import (
	"testing"

	"cargolink/internal/core/application/usecases/commands"
	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/localrequest"
	"cargolink/internal/core/domain/services"
	"cargolink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// acceptedRequest builds a 45lb half-volume local delivery 14 miles out:
// volume price 55 beats weight price 45, 4 billable miles at 1.50.
func acceptedRequest(t *testing.T, customerID kernel.UUID) *localrequest.Request {
	t.Helper()

	r, err := localrequest.NewRequest(
		kernel.NewUUID(), customerID,
		localrequest.ServiceLocalDelivery,
		testOrigin(), testDestination(),
		localrequest.WeightTierUpTo70, 0,
		localrequest.VolumeTierHalf,
		14,
	)
	require.NoError(t, err)
	return r
}

func TestQuoteLocalRequestCommandHandler_Handle_PricesFrozenInputs(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	r := acceptedRequest(t, customerID)

	cmd, err := commands.NewQuoteLocalRequestCommand(r.ID(), false)
	require.NoError(t, err)

	repo := new(MockRequestRepository)
	uow := new(MockRequestUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, r.ID()).Return(r, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewQuoteLocalRequestCommandHandler(factory, flatFee)
	quote, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.InDelta(t, 55.0, quote.BaseFare, 0.001)
	assert.Equal(t, services.StrategyVolume, quote.Strategy)
	assert.InDelta(t, 6.0, quote.DistanceSurcharge, 0.001)
	assert.InDelta(t, 5.0, quote.ProcessingFee, 0.001)
	assert.InDelta(t, 66.0, quote.Total, 0.001)
	uow.AssertExpectations(t)
}

func TestQuoteLocalRequestCommandHandler_Handle_RejectsCanceledRequest(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	r := acceptedRequest(t, customerID)
	require.NoError(t, r.Cancel())

	cmd, err := commands.NewQuoteLocalRequestCommand(r.ID(), false)
	require.NoError(t, err)

	repo := new(MockRequestRepository)
	uow := new(MockRequestUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, r.ID()).Return(r, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewQuoteLocalRequestCommandHandler(factory, flatFee)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStateConflict)
}

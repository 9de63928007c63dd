package commands_test

import (
	"testing"
	"time"

	"cargolink/internal/core/application/usecases/commands"
	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFlagStorageDebtsCommandHandler_Handle_ReportsIndebtedParcels(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	indebted := quotableParcel(t, customerID, 40*24*time.Hour) // 10 days past the free window
	fresh := quotableParcel(t, customerID, 24*time.Hour)

	cmd := commands.NewFlagStorageDebtsCommand()

	repo := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(repo).Once(),
		repo.On("GetAllStored", mock.Anything).Return([]*parcel.Parcel{indebted, fresh}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewFlagStorageDebtsCommandHandler(factory, testStoragePolicy)
	notices, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Len(t, notices, 1)
	assert.Equal(t, indebted.ID(), notices[0].ParcelID)
	assert.Equal(t, customerID, notices[0].CustomerID)
	assert.Equal(t, indebted.TrackingCode(), notices[0].TrackingCode)
	assert.InDelta(t, 10.0, notices[0].Amount, 0.5)
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestFlagStorageDebtsCommandHandler_Handle_EmptyWarehouse(t *testing.T) {
	ctx := t.Context()

	cmd := commands.NewFlagStorageDebtsCommand()

	repo := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(repo).Once(),
		repo.On("GetAllStored", mock.Anything).Return([]*parcel.Parcel{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewFlagStorageDebtsCommandHandler(factory, testStoragePolicy)
	notices, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Empty(t, notices)
	uow.AssertExpectations(t)
}

func TestFlagStorageDebtsCommandHandler_Handle_InvalidCommand(t *testing.T) {
	factory := new(MockParcelUoWFactory)
	h := commands.NewFlagStorageDebtsCommandHandler(factory, testStoragePolicy)

	notices, err := h.Handle(t.Context(), commands.FlagStorageDebtsCommand{})

	require.Error(t, err)
	assert.Nil(t, notices)
	assert.Contains(t, err.Error(), "must be created via NewFlagStorageDebtsCommand constructor")
	factory.AssertNotCalled(t, "Create")
}

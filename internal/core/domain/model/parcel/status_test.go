package parcel_test

import (
	"testing"

	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTable(t *testing.T) {
	t.Run("allows_the_main_lifecycle_chain", func(t *testing.T) {
		chain := []parcel.Status{
			parcel.PreAlerted,
			parcel.Receiving,
			parcel.InWarehouse,
			parcel.EnRouteToShip,
			parcel.Paid,
			parcel.Dispatched,
			parcel.InTransit,
			parcel.OutForDelivery,
			parcel.Delivered,
		}

		for i := range len(chain) - 1 {
			next, err := chain[i].TransitionTo(chain[i+1])
			require.NoError(t, err, "from %s to %s", chain[i], chain[i+1])
			assert.Equal(t, chain[i+1], next)
		}
	})

	t.Run("allows_the_consolidation_branch", func(t *testing.T) {
		assert.True(t, parcel.InWarehouse.CanTransitionTo(parcel.SolicitedForConsolidation))
		assert.True(t, parcel.SolicitedForConsolidation.CanTransitionTo(parcel.ConsolidationInProgress))
		assert.True(t, parcel.SolicitedForConsolidation.CanTransitionTo(parcel.InWarehouse))
		assert.True(t, parcel.ConsolidationInProgress.CanTransitionTo(parcel.Paid))
	})

	t.Run("rejects_skipping_states", func(t *testing.T) {
		cases := []struct {
			from, to parcel.Status
		}{
			{parcel.PreAlerted, parcel.InWarehouse},
			{parcel.Receiving, parcel.Paid},
			{parcel.InWarehouse, parcel.Delivered},
			{parcel.Paid, parcel.Delivered},
			{parcel.Delivered, parcel.Paid},
		}

		for _, tc := range cases {
			_, err := tc.from.TransitionTo(tc.to)
			require.Error(t, err, "from %s to %s", tc.from, tc.to)
			assert.ErrorIs(t, err, errs.ErrStateConflict)
		}
	})

	t.Run("rejects_double_payment_structurally", func(t *testing.T) {
		_, err := parcel.Paid.TransitionTo(parcel.Paid)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("allowed_from_every_pre_payment_state", func(t *testing.T) {
		prePayment := []parcel.Status{
			parcel.PreAlerted,
			parcel.Receiving,
			parcel.InWarehouse,
			parcel.EnRouteToShip,
			parcel.SolicitedForConsolidation,
			parcel.PendingStorePickup,
			parcel.ConsolidationInProgress,
		}

		for _, s := range prePayment {
			next, err := s.Cancel()
			require.NoError(t, err, "from %s", s)
			assert.Equal(t, parcel.Canceled, next)
		}
	})

	t.Run("rejected_at_or_after_payment", func(t *testing.T) {
		postPayment := []parcel.Status{
			parcel.Paid,
			parcel.Dispatched,
			parcel.InTransit,
			parcel.OutForDelivery,
			parcel.Delivered,
			parcel.Canceled,
		}

		for _, s := range postPayment {
			_, err := s.Cancel()
			require.Error(t, err, "from %s", s)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("rejects_unknown", func(t *testing.T) {
		require.Error(t, parcel.Unknown.Validate())
	})

	t.Run("accepts_defined_statuses", func(t *testing.T) {
		require.NoError(t, parcel.InWarehouse.Validate())
		require.NoError(t, parcel.Canceled.Validate())
	})

	t.Run("rejects_out_of_range_values", func(t *testing.T) {
		require.Error(t, parcel.Status(99).Validate())
	})
}

func TestStatus_IsActiveDelivery(t *testing.T) {
	assert.True(t, parcel.Dispatched.IsActiveDelivery())
	assert.True(t, parcel.InTransit.IsActiveDelivery())
	assert.True(t, parcel.OutForDelivery.IsActiveDelivery())
	assert.False(t, parcel.Delivered.IsActiveDelivery())
	assert.False(t, parcel.InWarehouse.IsActiveDelivery())
}

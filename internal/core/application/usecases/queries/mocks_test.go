package queries_test

import (
	"cargolink/internal/core/domain/model/kernel"
)

// mockAggregateTracker is a no-op tracker for seeding test data through the
// GORM repositories outside a unit of work.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

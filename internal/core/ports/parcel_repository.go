// Package ports defines the repository and external-service interfaces for
// the forwarding domain. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
// Provides methods for storing, retrieving, and querying parcels with their
// complete lifecycle state.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	// The parcel must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate.
	// The parcel must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingCode retrieves a parcel by its internal tracking code.
	// Used by warehouse intake and customer-facing lookups.
	GetByTrackingCode(ctx context.Context, code string) (*parcel.Parcel, error)

	// GetAllByShipmentID retrieves every member parcel of a consolidated
	// shipment. Delivery confirmation updates all members in one
	// transaction.
	GetAllByShipmentID(ctx context.Context, shipmentID kernel.UUID) ([]*parcel.Parcel, error)

	// GetAllStored retrieves all parcels physically held at the warehouse.
	// A parcel is considered stored from intake until it is dispatched,
	// picked up, or canceled. Used by the storage fee accrual job.
	//
	// Business Rules:
	//   - PreAlerted parcels: Not stored (not yet on site)
	//   - InWarehouse and consolidation-track parcels: Stored
	//   - Dispatched, Delivered, Canceled parcels: Not stored
	GetAllStored(ctx context.Context) ([]*parcel.Parcel, error)
}

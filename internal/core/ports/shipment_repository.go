package ports

import (
	"context"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetAllUndelivered retrieves shipments that have left the warehouse
	// but are not yet delivered. Used to resolve driver task lists.
	GetAllUndelivered(ctx context.Context) ([]*shipment.Shipment, error)
}

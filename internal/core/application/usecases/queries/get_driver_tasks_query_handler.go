package queries

import (
	"context"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/domain/model/shipment"
	"cargolink/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriverTasksQueryHandler builds the dispatch view from the database.
// Active parcels and their shipments are rehydrated just enough for the
// task grouper to fold consolidations into single task units.
type GetDriverTasksQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverTasksQueryHandler creates a handler for dispatch view queries.
// Requires a GORM database connection for query execution.
func NewGetDriverTasksQueryHandler(db *gorm.DB) GetDriverTasksQueryHandler {
	return GetDriverTasksQueryHandler{db: db}
}

// Handle executes the query.
// Parcels in dispatched, in-transit, or out-for-delivery status are
// grouped by live shipment; delivered shipments are dropped even when
// stale parcel rows still reference them.
func (h GetDriverTasksQueryHandler) Handle(
	ctx context.Context,
	query GetDriverTasksQuery,
) ([]GetDriverTasksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	parcels, shipmentMembers, err := h.loadActiveParcels(ctx)
	if err != nil {
		return nil, err
	}

	shipments, err := h.loadShipments(ctx, shipmentMembers)
	if err != nil {
		return nil, err
	}

	tasks := services.NewTaskGrouper().GroupTasks(parcels, shipments)

	responses := make([]GetDriverTasksQueryResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, GetDriverTasksQueryResponse{
			ShipmentID:    task.ShipmentID,
			ShipmentCode:  task.ShipmentCode,
			TrackingCodes: task.TrackingCodes,
			Count:         task.Count,
		})
	}

	return responses, nil
}

func (h GetDriverTasksQueryHandler) loadActiveParcels(
	ctx context.Context,
) ([]*parcel.Parcel, map[kernel.UUID][]kernel.UUID, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			tracking_code,
			shipment_id,
			status
		FROM parcels
		WHERE status IN (?, ?, ?)
		ORDER BY tracking_code
	`, parcel.Dispatched, parcel.InTransit, parcel.OutForDelivery).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	parcels := make([]*parcel.Parcel, 0)
	members := make(map[kernel.UUID][]kernel.UUID)

	for rows.Next() {
		var id, customerID uuid.UUID
		var trackingCode string
		var rawShipmentID *uuid.UUID
		var status int

		if err = rows.Scan(&id, &customerID, &trackingCode, &rawShipmentID, &status); err != nil {
			return nil, nil, err
		}

		parcelID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, nil, idErr
		}
		ownerID, idErr := kernel.UUIDFromBytes(customerID[:])
		if idErr != nil {
			return nil, nil, idErr
		}

		var shipmentID *kernel.UUID
		if rawShipmentID != nil {
			sid, sidErr := kernel.UUIDFromBytes((*rawShipmentID)[:])
			if sidErr != nil {
				return nil, nil, sidErr
			}
			shipmentID = &sid
			members[sid] = append(members[sid], parcelID)
		}

		p, restoreErr := parcel.RestoreParcel(
			parcelID, ownerID,
			trackingCode, "",
			0, parcel.Dimensions{},
			0, false,
			"", "", "",
			nil, nil,
			shipmentID,
			parcel.Status(status),
		)
		if restoreErr != nil {
			return nil, nil, restoreErr
		}
		parcels = append(parcels, p)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	return parcels, members, nil
}

func (h GetDriverTasksQueryHandler) loadShipments(
	ctx context.Context,
	members map[kernel.UUID][]kernel.UUID,
) ([]*shipment.Shipment, error) {
	if len(members) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(members))
	for id := range members {
		ids = append(ids, id.Bytes())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			code,
			status
		FROM shipments
		WHERE id IN ?
	`, ids).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := make([]*shipment.Shipment, 0, len(members))
	for rows.Next() {
		var id, customerID uuid.UUID
		var code string
		var status int

		if err = rows.Scan(&id, &customerID, &code, &status); err != nil {
			return nil, err
		}

		shipmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ownerID, idErr := kernel.UUIDFromBytes(customerID[:])
		if idErr != nil {
			return nil, idErr
		}

		sh, restoreErr := shipment.RestoreShipment(
			shipmentID, ownerID,
			code,
			members[shipmentID],
			0, parcel.Dimensions{}, false,
			nil, nil,
			"", "",
			shipment.Status(status),
		)
		if restoreErr != nil {
			return nil, restoreErr
		}
		shipments = append(shipments, sh)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}

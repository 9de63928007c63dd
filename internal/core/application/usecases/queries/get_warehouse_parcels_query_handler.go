package queries

import (
	"context"
	"time"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetWarehouseParcelsQueryHandler reads the consolidation picker view.
type GetWarehouseParcelsQueryHandler struct {
	db *gorm.DB
}

// NewGetWarehouseParcelsQueryHandler creates a handler for warehouse parcel queries.
func NewGetWarehouseParcelsQueryHandler(db *gorm.DB) GetWarehouseParcelsQueryHandler {
	return GetWarehouseParcelsQueryHandler{db: db}
}

// Handle executes the query.
// Returns only parcels in warehouse status, sorted by intake time so the
// oldest parcels (closest to storage fees) surface first.
func (h GetWarehouseParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetWarehouseParcelsQuery,
) ([]GetWarehouseParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_code,
			weight_lb,
			declared_value,
			invoice_doc_ref,
			value_verified,
			received_at
		FROM parcels
		WHERE customer_id = ? AND status = ?
		ORDER BY received_at
	`, query.CustomerID().Bytes(), parcel.InWarehouse).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetWarehouseParcelsQueryResponse, 0)
	for rows.Next() {
		var id uuid.UUID
		var trackingCode, invoiceDocRef string
		var weightLb, declaredValue float64
		var valueVerified bool
		var receivedAt time.Time

		err = rows.Scan(
			&id,
			&trackingCode,
			&weightLb,
			&declaredValue,
			&invoiceDocRef,
			&valueVerified,
			&receivedAt,
		)
		if err != nil {
			return nil, err
		}

		parcelID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		responses = append(responses, GetWarehouseParcelsQueryResponse{
			ID:            parcelID,
			TrackingCode:  trackingCode,
			WeightLb:      weightLb,
			DeclaredValue: declaredValue,
			HasInvoice:    invoiceDocRef != "",
			ValueVerified: valueVerified,
			ReceivedAt:    receivedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

package queries

import (
	"context"
	"database/sql"
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/shipment"
	"cargolink/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentQueryHandler reads the customer-facing shipment summary.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for shipment summary queries.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle executes the query.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			status,
			final_weight_lb,
			carrier_name,
			charge_total,
			master_tracking_code
		FROM shipments
		WHERE id = ?
	`, query.ShipmentID().Bytes()).Row()

	var id uuid.UUID
	var code, carrierName, masterTrackingCode string
	var status int
	var finalWeightLb, chargeTotal float64

	err := row.Scan(&id, &code, &status, &finalWeightLb, &carrierName, &chargeTotal, &masterTrackingCode)
	if errors.Is(err, sql.ErrNoRows) {
		return GetShipmentQueryResponse{}, errs.NewObjectNotFoundError("shipment", query.ShipmentID().String())
	}
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	shipmentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	memberCodes, err := h.loadMemberTrackingCodes(ctx, query.ShipmentID())
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	return GetShipmentQueryResponse{
		ID:                  shipmentID,
		Code:                code,
		Status:              shipment.Status(status).String(),
		FinalWeightLb:       finalWeightLb,
		CarrierName:         carrierName,
		Total:               chargeTotal,
		MasterTrackingCode:  masterTrackingCode,
		MemberTrackingCodes: memberCodes,
	}, nil
}

func (h GetShipmentQueryHandler) loadMemberTrackingCodes(
	ctx context.Context,
	shipmentID kernel.UUID,
) ([]string, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT p.tracking_code
		FROM shipment_members m
		JOIN parcels p ON p.id = m.parcel_id
		WHERE m.shipment_id = ?
		ORDER BY p.tracking_code
	`, shipmentID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	codes := make([]string, 0)
	for rows.Next() {
		var code string
		if err = rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return codes, nil
}

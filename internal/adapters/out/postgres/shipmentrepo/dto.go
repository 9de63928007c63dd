// Package shipmentrepo provides data transfer objects and mapping functions for shipment persistence.
// This package implements the repository pattern for the shipment domain aggregate, handling
// the conversion between domain entities and database representations.
package shipmentrepo

import (
	"cargolink/internal/core/domain/model/carrier"
	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment aggregates.
// Member parcels live in a child table so that driver task resolution can join
// on shipment membership without loading full parcel rows.
type ShipmentDTO struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey"`
	CustomerID         uuid.UUID           `gorm:"type:uuid;not null;index"`
	Code               string              `gorm:"type:varchar(32);not null;uniqueIndex"`
	Members            []ShipmentMemberDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	FinalWeightLb      float64
	FinalDims          DimensionsDTO `gorm:"embedded;embeddedPrefix:final_dims_"`
	Measured           bool
	Carrier            CarrierDTO `gorm:"embedded;embeddedPrefix:carrier_"`
	Charges            ChargesDTO `gorm:"embedded;embeddedPrefix:charge_"`
	PaymentID          string     `gorm:"type:varchar(64)"`
	MasterTrackingCode string     `gorm:"type:varchar(64)"`
	Status             int        `gorm:"index"`
}

// TableName specifies the database table name for shipment entities.
// Overrides GORM's default naming convention to use "shipments".
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// ShipmentMemberDTO links a shipment to one of its member parcels.
type ShipmentMemberDTO struct {
	ShipmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID   uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName specifies the database table name for shipment membership rows.
func (ShipmentMemberDTO) TableName() string {
	return "shipment_members"
}

// DimensionsDTO represents the embedded final box size within the shipment table.
type DimensionsDTO struct {
	LengthIn float64
	WidthIn  float64
	HeightIn float64
}

// CarrierDTO represents the embedded selected carrier within the shipment table.
// An empty code means no carrier has been selected yet.
type CarrierDTO struct {
	Code         string `gorm:"type:varchar(32)"`
	Name         string `gorm:"type:varchar(255)"`
	ServiceLevel string `gorm:"type:varchar(64)"`
	Internal     bool
}

// ChargesDTO represents the embedded captured charge breakdown within the
// shipment table. Populated only once payment has been captured.
type ChargesDTO struct {
	Subtotal      float64
	HandlingFee   float64
	Insurance     float64
	ProcessingFee float64
	Discount      float64
	Total         float64
}

// fromDomain converts a shipment domain aggregate to its database representation.
// Maps all aggregate attributes including membership rows and the optional
// carrier selection and charge breakdown.
func fromDomain(s *shipment.Shipment) ShipmentDTO {
	shipmentID := s.ID().Bytes()
	members := make([]ShipmentMemberDTO, 0, s.MemberCount())
	for _, parcelID := range s.MemberParcelIDs() {
		members = append(members, ShipmentMemberDTO{
			ShipmentID: shipmentID,
			ParcelID:   parcelID.Bytes(),
		})
	}

	var carrierDTO CarrierDTO
	if c := s.SelectedCarrier(); c != nil {
		carrierDTO = CarrierDTO{
			Code:         c.Code(),
			Name:         c.Name(),
			ServiceLevel: c.ServiceLevel(),
			Internal:     c.IsInternal(),
		}
	}

	var chargesDTO ChargesDTO
	if ch := s.Charges(); ch != nil {
		chargesDTO = ChargesDTO{
			Subtotal:      ch.Subtotal,
			HandlingFee:   ch.HandlingFee,
			Insurance:     ch.Insurance,
			ProcessingFee: ch.ProcessingFee,
			Discount:      ch.Discount,
			Total:         ch.Total,
		}
	}

	return ShipmentDTO{
		ID:            shipmentID,
		CustomerID:    s.CustomerID().Bytes(),
		Code:          s.Code(),
		Members:       members,
		FinalWeightLb: s.FinalWeightLb(),
		FinalDims: DimensionsDTO{
			LengthIn: s.FinalDims().LengthIn,
			WidthIn:  s.FinalDims().WidthIn,
			HeightIn: s.FinalDims().HeightIn,
		},
		Measured:           s.IsMeasured(),
		Carrier:            carrierDTO,
		Charges:            chargesDTO,
		PaymentID:          s.PaymentID(),
		MasterTrackingCode: s.MasterTrackingCode(),
		Status:             int(s.Status()),
	}
}

// toDomain converts a database DTO to a shipment domain aggregate.
// Reconstructs the complete aggregate including membership using RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	memberIDs := make([]kernel.UUID, 0, len(dto.Members))
	for _, member := range dto.Members {
		parcelID, memberErr := kernel.UUIDFromBytes(member.ParcelID[:])
		if memberErr != nil {
			return nil, memberErr
		}
		memberIDs = append(memberIDs, parcelID)
	}

	var selectedCarrier *carrier.Carrier
	if dto.Carrier.Code != "" {
		c, carrierErr := carrier.NewCarrier(
			dto.Carrier.Code,
			dto.Carrier.Name,
			dto.Carrier.ServiceLevel,
			dto.Carrier.Internal,
		)
		if carrierErr != nil {
			return nil, carrierErr
		}
		selectedCarrier = &c
	}

	// Charges exist only after payment capture, which always records a
	// payment identifier alongside them.
	var charges *shipment.Charges
	if dto.PaymentID != "" {
		charges = &shipment.Charges{
			Subtotal:      dto.Charges.Subtotal,
			HandlingFee:   dto.Charges.HandlingFee,
			Insurance:     dto.Charges.Insurance,
			ProcessingFee: dto.Charges.ProcessingFee,
			Discount:      dto.Charges.Discount,
			Total:         dto.Charges.Total,
		}
	}

	return shipment.RestoreShipment(
		id, customerID,
		dto.Code,
		memberIDs,
		dto.FinalWeightLb,
		parcel.Dimensions{
			LengthIn: dto.FinalDims.LengthIn,
			WidthIn:  dto.FinalDims.WidthIn,
			HeightIn: dto.FinalDims.HeightIn,
		},
		dto.Measured,
		selectedCarrier,
		charges,
		dto.PaymentID,
		dto.MasterTrackingCode,
		shipment.Status(dto.Status),
	)
}

// Package parcelrepo provides data transfer objects and mapping functions for parcel persistence.
// This package implements the repository pattern for the parcel domain aggregate, handling
// the conversion between domain entities and database representations.
package parcelrepo

import (
	"time"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// Maps parcel domain entities to relational database tables with indexes for
// the tracking-code lookup and the shipment-membership scan.
type ParcelDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID          uuid.UUID `gorm:"type:uuid;not null;index"`
	TrackingCode        string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	CarrierTrackingCode string    `gorm:"type:varchar(64)"`
	WeightLb            float64
	Dims                DimensionsDTO `gorm:"embedded;embeddedPrefix:dims_"`
	DeclaredValue       float64
	ValueVerified       bool
	InvoiceDocRef       string `gorm:"type:varchar(255)"`
	WarehousePhotoRef   string `gorm:"type:varchar(255)"`
	DeliveryProofRef    string `gorm:"type:varchar(255)"`
	ReceivedAt          *time.Time
	StorageSettledThru  *time.Time
	ShipmentID          *uuid.UUID `gorm:"type:uuid;index"`
	Status              int        `gorm:"index"`
}

// TableName specifies the database table name for parcel entities.
// Overrides GORM's default naming convention to use "parcels".
func (ParcelDTO) TableName() string {
	return "parcels"
}

// DimensionsDTO represents the embedded measured size within the parcel table.
// All dimensions are stored in inches.
type DimensionsDTO struct {
	LengthIn float64
	WidthIn  float64
	HeightIn float64
}

// fromDomain converts a parcel domain aggregate to its database representation.
// Maps all aggregate attributes including optional shipment membership.
func fromDomain(p *parcel.Parcel) ParcelDTO {
	var shipmentID *uuid.UUID
	if id := p.ShipmentID(); id != nil {
		raw := id.Bytes()
		shipmentID = &raw
	}

	return ParcelDTO{
		ID:                  p.ID().Bytes(),
		CustomerID:          p.CustomerID().Bytes(),
		TrackingCode:        p.TrackingCode(),
		CarrierTrackingCode: p.CarrierTrackingCode(),
		WeightLb:            p.WeightLb(),
		Dims: DimensionsDTO{
			LengthIn: p.Dims().LengthIn,
			WidthIn:  p.Dims().WidthIn,
			HeightIn: p.Dims().HeightIn,
		},
		DeclaredValue:      p.DeclaredValue(),
		ValueVerified:      p.IsValueVerified(),
		InvoiceDocRef:      p.InvoiceDocRef(),
		WarehousePhotoRef:  p.WarehousePhotoRef(),
		DeliveryProofRef:   p.DeliveryProofRef(),
		ReceivedAt:         p.ReceivedAt(),
		StorageSettledThru: p.StorageSettledThru(),
		ShipmentID:         shipmentID,
		Status:             int(p.Status()),
	}
}

// toDomain converts a database DTO to a parcel domain aggregate.
// Reconstructs the complete aggregate including lifecycle state using RestoreParcel.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var shipmentID *kernel.UUID
	if dto.ShipmentID != nil {
		sID, shipmentErr := kernel.UUIDFromBytes((*dto.ShipmentID)[:])
		if shipmentErr != nil {
			return nil, shipmentErr
		}

		shipmentID = &sID
	}

	return parcel.RestoreParcel(
		id, customerID,
		dto.TrackingCode, dto.CarrierTrackingCode,
		dto.WeightLb,
		parcel.Dimensions{
			LengthIn: dto.Dims.LengthIn,
			WidthIn:  dto.Dims.WidthIn,
			HeightIn: dto.Dims.HeightIn,
		},
		dto.DeclaredValue,
		dto.ValueVerified,
		dto.InvoiceDocRef, dto.WarehousePhotoRef, dto.DeliveryProofRef,
		dto.ReceivedAt, dto.StorageSettledThru,
		shipmentID,
		parcel.Status(dto.Status),
	)
}

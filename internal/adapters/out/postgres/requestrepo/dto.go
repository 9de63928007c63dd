// Package requestrepo provides data transfer objects and mapping functions for
// local service request persistence. This package implements the repository
// pattern for the request domain aggregate, handling the conversion between
// domain entities and database representations.
package requestrepo

import (
	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/localrequest"

	"github.com/google/uuid"
)

// RequestDTO represents the database structure for persisting local service
// request aggregates. Origin and destination addresses are embedded with
// column prefixes.
type RequestDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ServiceType      int        `gorm:"not null"`
	Origin           AddressDTO `gorm:"embedded;embeddedPrefix:origin_"`
	Destination      AddressDTO `gorm:"embedded;embeddedPrefix:destination_"`
	WeightTier       int
	ExactWeightLb    float64
	VolumeTier       int
	DistanceMiles    float64
	DriverID         *uuid.UUID `gorm:"type:uuid;index"`
	PickupPhotoRef   string     `gorm:"type:varchar(255)"`
	DeliveryPhotoRef string     `gorm:"type:varchar(255)"`
	SignatureRef     string     `gorm:"type:varchar(255)"`
	TotalPaid        float64
	PaymentID        string `gorm:"type:varchar(128)"`
	Status           int    `gorm:"index"`
}

// TableName specifies the database table name for request entities.
// Overrides GORM's default naming convention to use "local_requests".
func (RequestDTO) TableName() string {
	return "local_requests"
}

// AddressDTO represents an embedded street address within the request table.
type AddressDTO struct {
	Line       string `gorm:"type:varchar(255)"`
	City       string `gorm:"type:varchar(128)"`
	Region     string `gorm:"type:varchar(128)"`
	PostalCode string `gorm:"type:varchar(32)"`
}

// fromDomain converts a request domain aggregate to its database representation.
func fromDomain(r *localrequest.Request) RequestDTO {
	var driverID *uuid.UUID
	if id := r.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return RequestDTO{
		ID:               r.ID().Bytes(),
		CustomerID:       r.CustomerID().Bytes(),
		ServiceType:      int(r.ServiceType()),
		Origin:           addressFromDomain(r.Origin()),
		Destination:      addressFromDomain(r.Destination()),
		WeightTier:       int(r.WeightTier()),
		ExactWeightLb:    r.ExactWeightLb(),
		VolumeTier:       int(r.VolumeTier()),
		DistanceMiles:    r.DistanceMiles(),
		DriverID:         driverID,
		PickupPhotoRef:   r.PickupPhotoRef(),
		DeliveryPhotoRef: r.DeliveryPhotoRef(),
		SignatureRef:     r.SignatureRef(),
		TotalPaid:        r.TotalPaid(),
		PaymentID:        r.PaymentID(),
		Status:           int(r.Status()),
	}
}

func addressFromDomain(a kernel.Address) AddressDTO {
	return AddressDTO{
		Line:       a.Line(),
		City:       a.City(),
		Region:     a.Region(),
		PostalCode: a.PostalCode(),
	}
}

// toDomain converts a database DTO to a request domain aggregate.
// Reconstructs the complete aggregate including driver assignment using RestoreRequest.
func toDomain(dto RequestDTO) (*localrequest.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	origin, err := addressToDomain(dto.Origin)
	if err != nil {
		return nil, err
	}

	destination, err := addressToDomain(dto.Destination)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}

		driverID = &dID
	}

	return localrequest.RestoreRequest(
		id, customerID,
		localrequest.ServiceType(dto.ServiceType),
		origin, destination,
		localrequest.WeightTier(dto.WeightTier),
		dto.ExactWeightLb,
		localrequest.VolumeTier(dto.VolumeTier),
		dto.DistanceMiles,
		driverID,
		dto.PickupPhotoRef, dto.DeliveryPhotoRef, dto.SignatureRef,
		dto.TotalPaid, dto.PaymentID,
		localrequest.Status(dto.Status),
	)
}

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	return kernel.NewAddress(dto.Line, dto.City, dto.Region, dto.PostalCode)
}

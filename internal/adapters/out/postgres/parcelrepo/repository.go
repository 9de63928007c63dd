package parcelrepo

import (
	"context"
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel to the database.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing parcel to the database.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingCode retrieves a parcel by its internal tracking code.
func (r *GormParcelRepository) GetByTrackingCode(ctx context.Context, code string) (*parcel.Parcel, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("tracking code")
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByShipmentID retrieves every member parcel of a consolidated shipment.
func (r *GormParcelRepository) GetAllByShipmentID(ctx context.Context, shipmentID kernel.UUID) ([]*parcel.Parcel, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "shipment_id = ?", shipmentID.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllStored retrieves all parcels physically held at the warehouse.
// A parcel counts as stored from intake until it is dispatched, picked up,
// or canceled. The storage fee accrual job scans this set daily.
func (r *GormParcelRepository) GetAllStored(ctx context.Context) ([]*parcel.Parcel, error) {
	stored := []int{
		int(parcel.Receiving),
		int(parcel.InWarehouse),
		int(parcel.EnRouteToShip),
		int(parcel.SolicitedForConsolidation),
		int(parcel.PendingStorePickup),
		int(parcel.ConsolidationInProgress),
		int(parcel.Paid),
	}

	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "status IN ?", stored).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []ParcelDTO) ([]*parcel.Parcel, error) {
	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}

package ports

import (
	"context"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
)

// RateOption is one carrier quote returned by the rate aggregator.
type RateOption struct {
	CarrierCode   string
	CarrierName   string
	ServiceLevel  string
	Price         float64
	EstimatedDays int
	// Internal marks the house fleet, which waives the handling fee.
	Internal bool
}

// RateService aggregates carrier rates for a measured shipment.
//
// Implementations must degrade gracefully: when the upstream aggregator is
// unavailable they return at least the house-fleet fallback option together
// with an ExternalServiceError so callers can surface the degradation.
type RateService interface {
	GetRates(ctx context.Context, weightLb float64, dims parcel.Dimensions, destination kernel.Address) ([]RateOption, error)
}

package ports

import (
	"context"

	"cargolink/internal/core/domain/model/kernel"
)

// DistanceService resolves the road distance in miles between two street
// addresses.
//
// Implementations return 0 miles with an ExternalServiceError when the
// resolver is unavailable. Callers treat 0 as "no distance surcharge" and
// record the degradation instead of failing the quote.
type DistanceService interface {
	DistanceMiles(ctx context.Context, origin, destination kernel.Address) (float64, error)
}

package ports

import (
	"context"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/localrequest"
)

// RequestRepository defines the persistence contract for local service
// request aggregates.
type RequestRepository interface {
	// Add persists a new request aggregate to storage.
	Add(ctx context.Context, aggregate *localrequest.Request) error

	// Update persists changes to an existing request aggregate.
	Update(ctx context.Context, aggregate *localrequest.Request) error

	// Get retrieves a request aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*localrequest.Request, error)
}

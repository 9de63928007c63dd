// Package queries contains read-only operations for the forwarding domain.
// Implements the query side of the CQRS architecture: handlers read
// directly from the database and return plain response structs, bypassing
// repositories and the unit of work.
package queries

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var ErrGetDriverTasksQueryIsNotConstructed = errors.New(
	"GetDriverTasksQuery must be created via NewGetDriverTasksQuery constructor",
)

// GetDriverTasksQuery retrieves the dispatch view of all parcels on the
// active delivery track, folded into routable task units.
//
// Example:
//
//	query := NewGetDriverTasksQuery()
//	handler := NewGetDriverTasksQueryHandler(db)
//
//	tasks, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get driver tasks: %w", err)
//	}
//	for _, task := range tasks {
//	    fmt.Printf("%s: %d parcels\n", task.ShipmentCode, task.Count)
//	}
type GetDriverTasksQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDriverTasksQuery creates a query to retrieve the dispatch view.
func NewGetDriverTasksQuery() GetDriverTasksQuery {
	return GetDriverTasksQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDriverTasksQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverTasksQueryIsNotConstructed)
}

// GetDriverTasksQueryResponse is one routable task unit. A consolidated
// shipment shows up once with every member tracking code; a standalone
// parcel is its own entry.
type GetDriverTasksQueryResponse struct {
	ShipmentID    *kernel.UUID
	ShipmentCode  string
	TrackingCodes []string
	Count         int
}

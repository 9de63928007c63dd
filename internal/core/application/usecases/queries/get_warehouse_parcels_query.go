package queries

import (
	"errors"
	"time"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var ErrGetWarehouseParcelsQueryIsNotConstructed = errors.New(
	"GetWarehouseParcelsQuery must be created via NewGetWarehouseParcelsQuery constructor",
)

// GetWarehouseParcelsQuery retrieves a customer's parcels currently held
// in the warehouse. This is the consolidation picker view: it surfaces the
// attributes the customer needs to assemble a valid selection.
type GetWarehouseParcelsQuery struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetWarehouseParcelsQuery creates a query scoped to one customer.
func NewGetWarehouseParcelsQuery(customerID kernel.UUID) (GetWarehouseParcelsQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetWarehouseParcelsQuery{}, err
	}

	return GetWarehouseParcelsQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWarehouseParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetWarehouseParcelsQueryIsNotConstructed)
}

// CustomerID returns the owning customer.
func (q GetWarehouseParcelsQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// GetWarehouseParcelsQueryResponse is one warehouse parcel row in the
// consolidation picker.
type GetWarehouseParcelsQueryResponse struct {
	ID            kernel.UUID
	TrackingCode  string
	WeightLb      float64
	DeclaredValue float64
	HasInvoice    bool
	ValueVerified bool
	ReceivedAt    time.Time
}

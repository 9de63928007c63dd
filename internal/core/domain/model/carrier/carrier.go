// Package carrier contains the outbound carrier value object.
package carrier

import (
	"cargolink/internal/pkg/errs"
	"cargolink/internal/pkg/guard"
)

// ErrCarrierIsNotConstructed is returned when validating a Carrier that was
// not created via NewCarrier.
var ErrCarrierIsNotConstructed = errs.NewValueIsRequiredError(
	"carrier must be created via NewCarrier constructor")

// Carrier identifies an outbound carrier and service level selected for a
// shipment.
//
// Whether a carrier is the operator's own internal fleet is an explicit flag,
// never inferred from the display name. The flag drives two pricing rules:
// the handling fee is waived for the internal carrier, and dispatch tracking
// numbers are auto-generated for it instead of operator-entered.
type Carrier struct { //nolint:recvcheck //using for validation
	code         string
	name         string
	serviceLevel string
	internal     bool

	guard guard.ConstructorGuard
}

// NewCarrier creates a Carrier. Code and name are required; serviceLevel may
// be empty for carriers with a single service.
func NewCarrier(code, name, serviceLevel string, internal bool) (Carrier, error) {
	if code == "" {
		return Carrier{}, errs.NewValueIsRequiredError("carrier code")
	}
	if name == "" {
		return Carrier{}, errs.NewValueIsRequiredError("carrier name")
	}

	return Carrier{
		code:         code,
		name:         name,
		serviceLevel: serviceLevel,
		internal:     internal,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Carrier was created via NewCarrier.
func (c Carrier) Validate() error {
	return c.guard.Validate(ErrCarrierIsNotConstructed)
}

// Code returns the stable carrier identifier used in persistence.
func (c Carrier) Code() string {
	return c.code
}

// Name returns the display name.
func (c Carrier) Name() string {
	return c.name
}

// ServiceLevel returns the selected service level, if any.
func (c Carrier) ServiceLevel() string {
	return c.serviceLevel
}

// IsInternal reports whether this is the operator's own fleet.
func (c Carrier) IsInternal() bool {
	return c.internal
}

// IsEqual compares carriers by code and service level.
func (c Carrier) IsEqual(other Carrier) bool {
	return c.code == other.code && c.serviceLevel == other.serviceLevel
}

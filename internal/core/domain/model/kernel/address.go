package kernel

import (
	"fmt"
	"strings"

	"cargolink/internal/pkg/errs"
	"cargolink/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when validating an Address that was
// not created via NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is an immutable street address value object.
//
// A complete address (street line, city, and postal code all present) is a
// precondition for quoting and paying a shipment. Customer profiles may carry
// partially filled addresses, so completeness is checked separately from
// construction: NewAddress only requires that the address is not entirely
// empty, while IsComplete reports whether it can receive a shipment.
type Address struct { //nolint:recvcheck //using for validation
	line       string
	city       string
	region     string
	postalCode string

	guard guard.ConstructorGuard
}

// NewAddress creates an Address. At least one field must be non-empty.
func NewAddress(line, city, region, postalCode string) (Address, error) {
	if line == "" && city == "" && region == "" && postalCode == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}

	return Address{
		line:       strings.TrimSpace(line),
		city:       strings.TrimSpace(city),
		region:     strings.TrimSpace(region),
		postalCode: strings.TrimSpace(postalCode),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Address was created via NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Line returns the street line.
func (a Address) Line() string {
	return a.line
}

// City returns the city.
func (a Address) City() string {
	return a.city
}

// Region returns the state or region.
func (a Address) Region() string {
	return a.region
}

// PostalCode returns the postal code.
func (a Address) PostalCode() string {
	return a.postalCode
}

// IsComplete reports whether the address has every field required to
// receive a shipment: street line, city, and postal code.
func (a Address) IsComplete() bool {
	return a.line != "" && a.city != "" && a.postalCode != ""
}

// String returns a single-line rendering used for distance lookups and logs.
func (a Address) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.line, a.city, a.region, a.postalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// IsEqual compares two addresses field by field.
func (a Address) IsEqual(other Address) bool {
	return a.line == other.line &&
		a.city == other.city &&
		a.region == other.region &&
		a.postalCode == other.postalCode
}

// MustNewAddress is a test helper that panics on construction failure.
func MustNewAddress(line, city, region, postalCode string) Address {
	a, err := NewAddress(line, city, region, postalCode)
	if err != nil {
		panic(fmt.Sprintf("MustNewAddress: %v", err))
	}
	return a
}

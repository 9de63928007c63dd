// Package localrequest contains the Pickup/Delivery Request aggregate: a
// local-logistics order (warehouse self-pickup, local delivery, or export
// hand-off) priced by weight/volume tier and road distance, independent of
// international parcel shipping.
package localrequest

import (
	"errors"
	"fmt"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/errs"
)

// ErrRequestIsNotConstructed is returned when a Request instance was not
// created through NewRequest or RestoreRequest.
var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")

// ServiceType distinguishes the three local-logistics services.
type ServiceType int

const (
	// ServiceUnknown represents an invalid or undefined service type.
	ServiceUnknown ServiceType = iota

	// ServiceWarehousePickup is customer self-pickup at the warehouse.
	ServiceWarehousePickup

	// ServiceLocalDelivery is door delivery within the operating zone.
	ServiceLocalDelivery

	// ServiceExportHandoff is transfer to an export facility.
	ServiceExportHandoff
)

func serviceTypeStrings() map[ServiceType]string {
	return map[ServiceType]string{
		ServiceUnknown:         "Unknown",
		ServiceWarehousePickup: "WarehousePickup",
		ServiceLocalDelivery:   "LocalDelivery",
		ServiceExportHandoff:   "ExportHandoff",
	}
}

// Validate checks that the service type is one of the defined values.
func (st ServiceType) Validate() error {
	if st == ServiceUnknown {
		return errs.NewValueIsInvalidErrorWithCause("service type",
			fmt.Errorf("%d is not a valid service type", st))
	}
	if _, ok := serviceTypeStrings()[st]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("service type",
			fmt.Errorf("%d is not a valid service type", st))
	}
	return nil
}

// String returns the human-readable name of the service type.
func (st ServiceType) String() string {
	if s, ok := serviceTypeStrings()[st]; ok {
		return s
	}
	return "Unknown"
}

// Request is the aggregate root for one local logistics order.
//
// The two-phase protocol is authoritative here: ConfirmPickup demands photo
// evidence, and ConfirmDelivery is rejected outright if no pickup
// confirmation exists, regardless of what any client shows.
type Request struct {
	id         kernel.UUID
	customerID kernel.UUID

	serviceType ServiceType
	origin      kernel.Address
	destination kernel.Address

	weightTier    WeightTier
	exactWeightLb float64
	volumeTier    VolumeTier

	distanceMiles float64

	driverID *kernel.UUID

	pickupPhotoRef   string
	deliveryPhotoRef string
	signatureRef     string

	totalPaid float64
	paymentID string

	status Status

	isConstructed bool
}

// NewRequest creates a local logistics order in Accepted status. The heavy
// weight tier requires the exact weight; other tiers ignore it.
func NewRequest(
	id, customerID kernel.UUID,
	serviceType ServiceType,
	origin, destination kernel.Address,
	weightTier WeightTier,
	exactWeightLb float64,
	volumeTier VolumeTier,
	distanceMiles float64,
) (*Request, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		serviceType.Validate(),
		origin.Validate(),
		destination.Validate(),
		weightTier.Validate(),
		volumeTier.Validate(),
	); err != nil {
		return nil, err
	}
	if weightTier == WeightTierHeavy && exactWeightLb <= 0 {
		return nil, errs.NewValueIsRequiredError("exact weight for heavy tier")
	}
	if distanceMiles < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("distance",
			fmt.Errorf("%.1f is negative", distanceMiles))
	}

	return &Request{
		id:            id,
		customerID:    customerID,
		serviceType:   serviceType,
		origin:        origin,
		destination:   destination,
		weightTier:    weightTier,
		exactWeightLb: exactWeightLb,
		volumeTier:    volumeTier,
		distanceMiles: distanceMiles,
		status:        Accepted,
		isConstructed: true,
	}, nil
}

// RestoreRequest reconstructs a Request from persistence.
func RestoreRequest(
	id, customerID kernel.UUID,
	serviceType ServiceType,
	origin, destination kernel.Address,
	weightTier WeightTier,
	exactWeightLb float64,
	volumeTier VolumeTier,
	distanceMiles float64,
	driverID *kernel.UUID,
	pickupPhotoRef, deliveryPhotoRef, signatureRef string,
	totalPaid float64,
	paymentID string,
	status Status,
) (*Request, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Request{
		id:               id,
		customerID:       customerID,
		serviceType:      serviceType,
		origin:           origin,
		destination:      destination,
		weightTier:       weightTier,
		exactWeightLb:    exactWeightLb,
		volumeTier:       volumeTier,
		distanceMiles:    distanceMiles,
		driverID:         driverID,
		pickupPhotoRef:   pickupPhotoRef,
		deliveryPhotoRef: deliveryPhotoRef,
		signatureRef:     signatureRef,
		totalPaid:        totalPaid,
		paymentID:        paymentID,
		status:           status,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Request was created through a constructor.
func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

// ID returns the request's unique identifier.
func (r *Request) ID() kernel.UUID { return r.id }

// CustomerID returns the owning customer's identifier.
func (r *Request) CustomerID() kernel.UUID { return r.customerID }

// ServiceType returns the local service kind.
func (r *Request) ServiceType() ServiceType { return r.serviceType }

// Origin returns the pickup address.
func (r *Request) Origin() kernel.Address { return r.origin }

// Destination returns the drop-off address.
func (r *Request) Destination() kernel.Address { return r.destination }

// WeightTier returns the priced weight bracket.
func (r *Request) WeightTier() WeightTier { return r.weightTier }

// ExactWeightLb returns the exact weight, meaningful for the heavy tier.
func (r *Request) ExactWeightLb() float64 { return r.exactWeightLb }

// VolumeTier returns the priced space bracket.
func (r *Request) VolumeTier() VolumeTier { return r.volumeTier }

// DistanceMiles returns the computed road distance.
func (r *Request) DistanceMiles() float64 { return r.distanceMiles }

// DriverID returns the assigned driver, if any.
func (r *Request) DriverID() *kernel.UUID { return r.driverID }

// PickupPhotoRef returns the pickup evidence handle.
func (r *Request) PickupPhotoRef() string { return r.pickupPhotoRef }

// DeliveryPhotoRef returns the delivery evidence handle.
func (r *Request) DeliveryPhotoRef() string { return r.deliveryPhotoRef }

// SignatureRef returns the recipient signature handle.
func (r *Request) SignatureRef() string { return r.signatureRef }

// TotalPaid returns the charged fare, zero until payment is recorded.
func (r *Request) TotalPaid() float64 { return r.totalPaid }

// PaymentID returns the gateway payment identifier, empty until payment.
func (r *Request) PaymentID() string { return r.paymentID }

// Status returns the current lifecycle state.
func (r *Request) Status() Status { return r.status }

// HasPickupConfirmation reports whether pickup evidence is on file.
func (r *Request) HasPickupConfirmation() bool { return r.pickupPhotoRef != "" }

// AssignDriver assigns or reassigns the driver before completion.
func (r *Request) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if r.status == Completed || r.status == Canceled {
		return errs.NewStateConflictError("assign driver", r.status.String(),
			"request is already closed")
	}

	r.driverID = &driverID
	return nil
}

// ConfirmPickup records pickup with photo evidence.
// Moves Accepted -> PickedUp.
func (r *Request) ConfirmPickup(photoRef string) error {
	if photoRef == "" {
		return errs.NewValidationError("confirm pickup", "pickup photo is required")
	}
	if r.status != Accepted {
		return errs.NewStateConflictError("confirm pickup", r.status.String(),
			"pickup can only be confirmed once, from the accepted phase")
	}

	r.status = PickedUp
	r.pickupPhotoRef = photoRef
	return nil
}

// ConfirmDelivery records delivery with photo and signature evidence.
// Rejected if no pickup confirmation exists; the delivery phase cannot start
// before the pickup phase completed. Moves PickedUp -> Completed.
func (r *Request) ConfirmDelivery(photoRef, signatureRef string) error {
	if !r.HasPickupConfirmation() || r.status != PickedUp {
		return errs.NewStateConflictError("confirm delivery", r.status.String(),
			"no pickup confirmation on file")
	}

	var details []string
	if photoRef == "" {
		details = append(details, "delivery photo is required")
	}
	if signatureRef == "" {
		details = append(details, "recipient signature is required")
	}
	if len(details) > 0 {
		return errs.NewValidationError("confirm delivery", details...)
	}

	r.status = Completed
	r.deliveryPhotoRef = photoRef
	r.signatureRef = signatureRef
	return nil
}

// RecordPayment freezes the charged fare after a successful capture. The
// fare is computed from the frozen tier and distance inputs at completion,
// so only a completed order can carry a payment.
func (r *Request) RecordPayment(total float64, paymentID string) error {
	if paymentID == "" {
		return errs.NewValueIsRequiredError("payment id")
	}
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("paid total",
			fmt.Errorf("%.2f is negative", total))
	}
	if r.status != Completed {
		return errs.NewStateConflictError("record payment", r.status.String(),
			"only a completed request can be charged")
	}

	r.totalPaid = total
	r.paymentID = paymentID
	return nil
}

// Cancel abandons the order. Only allowed before pickup.
func (r *Request) Cancel() error {
	if r.status != Accepted {
		return errs.NewStateConflictError("cancel request", r.status.String(),
			"request cannot be canceled after pickup")
	}

	r.status = Canceled
	return nil
}

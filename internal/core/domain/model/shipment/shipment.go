// Package shipment contains the Consolidated Shipment aggregate: a container
// grouping member parcels (or a single-parcel individual shipment) priced and
// dispatched as one outbound unit.
package shipment

import (
	"errors"
	"fmt"

	"cargolink/internal/core/domain/model/carrier"
	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/pkg/errs"
)

// Consolidation limits. MaxMemberParcels and MinMemberParcels bound a
// consolidation selection; MaxTotalWeightLb caps the combined box weight.
const (
	MinMemberParcels = 2
	MaxMemberParcels = 7
	MaxTotalWeightLb = 100.0
)

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through NewShipment, NewIndividualShipment, or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// Charges is the frozen money breakdown written at payment time. Quotes are
// never persisted; the payment flow recomputes the price from canonical
// inputs and freezes the result here.
type Charges struct {
	Subtotal      float64
	HandlingFee   float64
	Insurance     float64
	ProcessingFee float64
	Discount      float64
	Total         float64
}

// Shipment is the aggregate root for one outbound movement.
//
// Invariants:
//   - Member list is fixed at construction: 1 parcel for the individual
//     flow, 2..MaxMemberParcels for consolidations.
//   - Final weight is recorded once by staff and must not exceed
//     MaxTotalWeightLb.
//   - Payment requires a processed (measured) shipment and a carrier
//     selection; it is the only irreversible transition.
//   - Dispatch requires a master tracking number.
//   - A delivered shipment implies all member parcels delivered; command
//     handlers transition members inside the same unit of work.
type Shipment struct {
	id         kernel.UUID
	customerID kernel.UUID
	code       string

	memberParcelIDs []kernel.UUID

	finalWeightLb float64
	finalDims     parcel.Dimensions
	measured      bool

	selectedCarrier *carrier.Carrier
	charges         *Charges
	paymentID       string

	masterTrackingCode string

	status Status

	isConstructed bool
}

// NewShipment creates a consolidated shipment over the selected member
// parcels. The selection size must already satisfy the consolidation rules;
// this constructor enforces the structural bounds.
func NewShipment(id, customerID kernel.UUID, memberParcelIDs []kernel.UUID) (*Shipment, error) {
	if err := errors.Join(id.Validate(), customerID.Validate()); err != nil {
		return nil, err
	}
	if len(memberParcelIDs) < MinMemberParcels || len(memberParcelIDs) > MaxMemberParcels {
		return nil, errs.NewValueIsOutOfRangeError("member parcels",
			len(memberParcelIDs), MinMemberParcels, MaxMemberParcels)
	}
	for _, pid := range memberParcelIDs {
		if err := pid.Validate(); err != nil {
			return nil, err
		}
	}

	return &Shipment{
		id:              id,
		customerID:      customerID,
		code:            kernel.NewShipmentTrackingCode(),
		memberParcelIDs: append([]kernel.UUID(nil), memberParcelIDs...),
		status:          Requested,
		isConstructed:   true,
	}, nil
}

// NewIndividualShipment creates a single-parcel shipment record for the
// individual shipping flow.
func NewIndividualShipment(id, customerID, parcelID kernel.UUID) (*Shipment, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), parcelID.Validate()); err != nil {
		return nil, err
	}

	return &Shipment{
		id:              id,
		customerID:      customerID,
		code:            kernel.NewShipmentTrackingCode(),
		memberParcelIDs: []kernel.UUID{parcelID},
		status:          Requested,
		isConstructed:   true,
	}, nil
}

// RestoreShipment reconstructs a Shipment from persistence.
func RestoreShipment(
	id, customerID kernel.UUID,
	code string,
	memberParcelIDs []kernel.UUID,
	finalWeightLb float64,
	finalDims parcel.Dimensions,
	measured bool,
	selectedCarrier *carrier.Carrier,
	charges *Charges,
	paymentID string,
	masterTrackingCode string,
	status Status,
) (*Shipment, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("shipment code")
	}
	if len(memberParcelIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("member parcels")
	}

	return &Shipment{
		id:                 id,
		customerID:         customerID,
		code:               code,
		memberParcelIDs:    append([]kernel.UUID(nil), memberParcelIDs...),
		finalWeightLb:      finalWeightLb,
		finalDims:          finalDims,
		measured:           measured,
		selectedCarrier:    selectedCarrier,
		charges:            charges,
		paymentID:          paymentID,
		masterTrackingCode: masterTrackingCode,
		status:             status,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Shipment was created through a constructor.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID { return s.id }

// CustomerID returns the owning customer's identifier.
func (s *Shipment) CustomerID() kernel.UUID { return s.customerID }

// Code returns the internal shipment code.
func (s *Shipment) Code() string { return s.code }

// MemberParcelIDs returns the member parcels in selection order.
func (s *Shipment) MemberParcelIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), s.memberParcelIDs...)
}

// MemberCount returns the number of member parcels.
func (s *Shipment) MemberCount() int { return len(s.memberParcelIDs) }

// IsIndividual reports whether this is a single-parcel shipment record.
func (s *Shipment) IsIndividual() bool { return len(s.memberParcelIDs) == 1 }

// ContainsParcel reports whether the given parcel belongs to this shipment.
func (s *Shipment) ContainsParcel(parcelID kernel.UUID) bool {
	for _, pid := range s.memberParcelIDs {
		if pid.IsEqual(parcelID) {
			return true
		}
	}
	return false
}

// FinalWeightLb returns the staff-recorded combined weight. Zero until processed.
func (s *Shipment) FinalWeightLb() float64 { return s.finalWeightLb }

// FinalDims returns the staff-recorded combined dimensions.
func (s *Shipment) FinalDims() parcel.Dimensions { return s.finalDims }

// IsMeasured reports whether staff recorded the final weight/dimensions.
func (s *Shipment) IsMeasured() bool { return s.measured }

// SelectedCarrier returns the selected carrier, or nil before selection.
func (s *Shipment) SelectedCarrier() *carrier.Carrier { return s.selectedCarrier }

// Charges returns the frozen money breakdown, or nil before payment.
func (s *Shipment) Charges() *Charges { return s.charges }

// PaymentID returns the external gateway's payment identifier.
func (s *Shipment) PaymentID() string { return s.paymentID }

// MasterTrackingCode returns the outbound tracking number assigned at dispatch.
func (s *Shipment) MasterTrackingCode() string { return s.masterTrackingCode }

// Status returns the current lifecycle state.
func (s *Shipment) Status() Status { return s.status }

// IsEqual compares shipments by identifier.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ProcessConsolidation is the staff step recording the final combined
// weight/dimensions after physical consolidation. It activates the shipment
// for pricing and payment. Moves Requested -> Processing.
func (s *Shipment) ProcessConsolidation(weightLb float64, dims parcel.Dimensions) error {
	if weightLb <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("final weight",
			fmt.Errorf("%.2f is not greater than 0", weightLb))
	}
	if weightLb > MaxTotalWeightLb {
		return errs.NewValueIsOutOfRangeError("final weight", weightLb, 0, MaxTotalWeightLb)
	}

	next, err := s.status.TransitionTo(Processing)
	if err != nil {
		return err
	}

	s.status = next
	s.finalWeightLb = weightLb
	s.finalDims = dims
	s.measured = true
	return nil
}

// SelectCarrier records the carrier choice. Selection may change freely until
// payment; every change forces a re-quote because the handling fee depends on
// the selected carrier.
func (s *Shipment) SelectCarrier(c carrier.Carrier) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if s.status != Requested && s.status != Processing {
		return errs.NewStateConflictError("select carrier", s.status.String(),
			"carrier cannot change at or after payment")
	}

	s.selectedCarrier = &c
	return nil
}

// MarkPaid freezes the recomputed charges and records the external payment
// capture. Requires a processed shipment and a non-empty carrier selection.
// This is the only irreversible transition without an explicit refund path.
func (s *Shipment) MarkPaid(charges Charges, paymentID string) error {
	if s.selectedCarrier == nil {
		return errs.NewValidationError("pay shipment", "no carrier selected")
	}
	if !s.measured {
		return errs.NewStateConflictError("pay shipment", s.status.String(),
			"final weight and dimensions are not recorded")
	}
	if paymentID == "" {
		return errs.NewValueIsRequiredError("payment id")
	}

	next, err := s.status.TransitionTo(Paid)
	if err != nil {
		return err
	}

	s.status = next
	s.charges = &charges
	s.paymentID = paymentID
	return nil
}

// MarkDispatched assigns the master tracking number and moves Paid ->
// Dispatched. For the internal carrier the number is auto-generated by the
// caller; for external carriers the operator enters it.
func (s *Shipment) MarkDispatched(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("dispatch tracking number")
	}

	next, err := s.status.TransitionTo(Dispatched)
	if err != nil {
		return err
	}

	s.status = next
	s.masterTrackingCode = trackingNumber
	return nil
}

// MarkInTransit records carrier movement.
func (s *Shipment) MarkInTransit() error {
	next, err := s.status.TransitionTo(InTransit)
	if err != nil {
		return err
	}

	s.status = next
	return nil
}

// MarkDelivered records delivery. Proof-of-delivery evidence is enforced at
// the boundary. The caller must deliver every member parcel in the same unit
// of work to keep the member-consistency invariant.
func (s *Shipment) MarkDelivered(proofPhotoRef string) error {
	if proofPhotoRef == "" {
		return errs.NewValidationError("deliver shipment",
			fmt.Sprintf("shipment %s has no proof-of-delivery photo", s.code))
	}

	next, err := s.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}

	s.status = next
	return nil
}

// Cancel abandons the shipment before payment.
func (s *Shipment) Cancel() error {
	next, err := s.status.TransitionTo(Canceled)
	if err != nil {
		return errs.NewStateConflictError("cancel shipment", s.status.String(),
			"shipment cannot be canceled at or after payment")
	}

	s.status = next
	return nil
}

// Package parcel contains the Parcel aggregate: one physical item received at
// the warehouse under a customer account, together with its lifecycle state
// machine and storage-debt accrual.
package parcel

import (
	"errors"
	"fmt"
	"math"
	"time"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/errs"
)

// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
// through NewParcel or RestoreParcel.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

// StoragePolicy defines how storage debt accrues: days held beyond FreeDays
// are charged at DailyRate each. The policy is passed explicitly wherever
// debt is computed; there is no global default.
type StoragePolicy struct {
	FreeDays  int
	DailyRate float64
}

// Dimensions holds the measured size of a parcel in inches.
type Dimensions struct {
	LengthIn float64
	WidthIn  float64
	HeightIn float64
}

// Parcel is the aggregate root for one physical item in the warehouse.
//
// Invariants:
//   - Identity and owner are set at construction and never change.
//   - Status transitions follow the static table in Status.
//   - A parcel cannot reach a payable state without an attached invoice,
//     a staff-verified declared value, and a complete shipping address
//     (the address lives on the customer profile and is checked by
//     EnsureQuotable).
//   - Outstanding storage debt blocks quoting and payment.
//   - Membership in a consolidated shipment is at most one, and only while
//     the shipment is alive.
type Parcel struct {
	id           kernel.UUID
	customerID   kernel.UUID
	trackingCode string

	// carrierTrackingCode is the inbound carrier's code, captured at pre-alert.
	carrierTrackingCode string

	weightLb      float64
	dims          Dimensions
	declaredValue float64
	valueVerified bool

	invoiceDocRef   string
	warehousePhotoRef string
	deliveryProofRef  string

	receivedAt         *time.Time
	storageSettledThru *time.Time

	shipmentID *kernel.UUID

	status Status

	isConstructed bool
}

// NewParcel registers a pre-alerted parcel for a customer. The internal
// tracking code is generated here; the carrier tracking code is whatever the
// inbound carrier issued and may be empty for walk-in drop-offs.
func NewParcel(id, customerID kernel.UUID, carrierTrackingCode string, declaredValue float64) (*Parcel, error) {
	if err := errors.Join(id.Validate(), customerID.Validate()); err != nil {
		return nil, err
	}
	if declaredValue < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("declared value",
			fmt.Errorf("%.2f is negative", declaredValue))
	}

	return &Parcel{
		id:                  id,
		customerID:          customerID,
		trackingCode:        kernel.NewParcelTrackingCode(),
		carrierTrackingCode: carrierTrackingCode,
		declaredValue:       declaredValue,
		status:              PreAlerted,
		isConstructed:       true,
	}, nil
}

// RestoreParcel reconstructs a Parcel from persistence without replaying its
// lifecycle. The stored status must be valid.
func RestoreParcel(
	id, customerID kernel.UUID,
	trackingCode, carrierTrackingCode string,
	weightLb float64,
	dims Dimensions,
	declaredValue float64,
	valueVerified bool,
	invoiceDocRef, warehousePhotoRef, deliveryProofRef string,
	receivedAt, storageSettledThru *time.Time,
	shipmentID *kernel.UUID,
	status Status,
) (*Parcel, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if trackingCode == "" {
		return nil, errs.NewValueIsRequiredError("tracking code")
	}

	return &Parcel{
		id:                  id,
		customerID:          customerID,
		trackingCode:        trackingCode,
		carrierTrackingCode: carrierTrackingCode,
		weightLb:            weightLb,
		dims:                dims,
		declaredValue:       declaredValue,
		valueVerified:       valueVerified,
		invoiceDocRef:       invoiceDocRef,
		warehousePhotoRef:   warehousePhotoRef,
		deliveryProofRef:    deliveryProofRef,
		receivedAt:          receivedAt,
		storageSettledThru:  storageSettledThru,
		shipmentID:          shipmentID,
		status:              status,
		isConstructed:       true,
	}, nil
}

// Validate ensures the Parcel was created through a constructor.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID { return p.id }

// CustomerID returns the owning customer's identifier.
func (p *Parcel) CustomerID() kernel.UUID { return p.customerID }

// TrackingCode returns the internal tracking code.
func (p *Parcel) TrackingCode() string { return p.trackingCode }

// CarrierTrackingCode returns the inbound carrier's tracking code.
func (p *Parcel) CarrierTrackingCode() string { return p.carrierTrackingCode }

// WeightLb returns the measured weight in pounds. Zero until measured.
func (p *Parcel) WeightLb() float64 { return p.weightLb }

// Dims returns the measured dimensions in inches.
func (p *Parcel) Dims() Dimensions { return p.dims }

// DeclaredValue returns the customer-stated value of the contents.
func (p *Parcel) DeclaredValue() float64 { return p.declaredValue }

// IsValueVerified reports whether staff verified the declared value.
func (p *Parcel) IsValueVerified() bool { return p.valueVerified }

// HasInvoice reports whether a commercial-invoice document is attached.
func (p *Parcel) HasInvoice() bool { return p.invoiceDocRef != "" }

// InvoiceDocRef returns the document-store handle of the invoice.
func (p *Parcel) InvoiceDocRef() string { return p.invoiceDocRef }

// WarehousePhotoRef returns the intake photo handle.
func (p *Parcel) WarehousePhotoRef() string { return p.warehousePhotoRef }

// DeliveryProofRef returns the proof-of-delivery photo handle.
func (p *Parcel) DeliveryProofRef() string { return p.deliveryProofRef }

// ReceivedAt returns when the parcel physically arrived, if it has.
func (p *Parcel) ReceivedAt() *time.Time { return p.receivedAt }

// StorageSettledThru returns the instant storage fees were last settled
// through, if a settlement has been made.
func (p *Parcel) StorageSettledThru() *time.Time { return p.storageSettledThru }

// ShipmentID returns the parent consolidated shipment, if any.
func (p *Parcel) ShipmentID() *kernel.UUID { return p.shipmentID }

// Status returns the current lifecycle state.
func (p *Parcel) Status() Status { return p.status }

// IsEqual compares parcels by identifier.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// Receive records physical arrival at the warehouse and an intake photo.
// Moves PreAlerted -> Receiving.
func (p *Parcel) Receive(at time.Time, warehousePhotoRef string) error {
	next, err := p.status.TransitionTo(Receiving)
	if err != nil {
		return err
	}

	p.status = next
	p.receivedAt = &at
	p.warehousePhotoRef = warehousePhotoRef
	return nil
}

// RecordMeasurement stores staff-measured weight and dimensions and shelves
// the parcel. Moves Receiving -> InWarehouse.
func (p *Parcel) RecordMeasurement(weightLb float64, dims Dimensions) error {
	if weightLb <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%.2f is not greater than 0", weightLb))
	}
	if dims.LengthIn <= 0 || dims.WidthIn <= 0 || dims.HeightIn <= 0 {
		return errs.NewValueIsInvalidError("dimensions")
	}

	next, err := p.status.TransitionTo(InWarehouse)
	if err != nil {
		return err
	}

	p.status = next
	p.weightLb = weightLb
	p.dims = dims
	return nil
}

// AttachInvoice stores the commercial-invoice document handle. Allowed any
// time before payment.
func (p *Parcel) AttachInvoice(docRef string) error {
	if docRef == "" {
		return errs.NewValueIsRequiredError("invoice document")
	}
	if !p.status.CanCancel() {
		// Same pre-payment window as cancellation.
		return errs.NewStateConflictError("attach invoice", p.status.String(),
			"invoice cannot change at or after payment")
	}

	p.invoiceDocRef = docRef
	return nil
}

// UpdateDeclaredValue lets the customer restate the value before staff
// verification. Once verified, the value is frozen.
func (p *Parcel) UpdateDeclaredValue(value float64) error {
	if value < 0 {
		return errs.NewValueIsInvalidErrorWithCause("declared value",
			fmt.Errorf("%.2f is negative", value))
	}
	if p.valueVerified {
		return errs.NewStateConflictError("update declared value", p.status.String(),
			"declared value is already staff-verified")
	}

	p.declaredValue = value
	return nil
}

// VerifyDeclaredValue is the staff gate confirming the declared value.
// The gate is one-way: a verified parcel cannot be un-verified, and a parcel
// cannot be quoted against until this has happened.
func (p *Parcel) VerifyDeclaredValue() error {
	if p.valueVerified {
		return errs.NewStateConflictError("verify declared value", p.status.String(),
			"declared value is already verified")
	}

	p.valueVerified = true
	return nil
}

// StorageDebt returns the accrued storage fee at the given time under the
// given policy: whole days held beyond the free window at the daily rate,
// minus any settled period. Never negative.
func (p *Parcel) StorageDebt(now time.Time, policy StoragePolicy) float64 {
	if p.receivedAt == nil || p.status.IsTerminal() {
		return 0
	}

	accrualStart := p.receivedAt.Add(time.Duration(policy.FreeDays) * 24 * time.Hour)
	if p.storageSettledThru != nil && p.storageSettledThru.After(accrualStart) {
		accrualStart = *p.storageSettledThru
	}
	if !now.After(accrualStart) {
		return 0
	}

	days := math.Floor(now.Sub(accrualStart).Hours() / 24)
	return days * policy.DailyRate
}

// SettleStorageDebt records that storage fees are paid through the given time.
func (p *Parcel) SettleStorageDebt(through time.Time) {
	p.storageSettledThru = &through
}

// EnsureQuotable checks every precondition for quoting or charging this
// parcel: measured and in a payable track, invoice attached, declared value
// verified, complete shipping address, and no outstanding storage debt.
// All unmet preconditions except the debt block are reported together.
func (p *Parcel) EnsureQuotable(address kernel.Address, now time.Time, policy StoragePolicy) error {
	if debt := p.StorageDebt(now, policy); debt > 0 {
		return errs.NewBlockedAccountError(p.trackingCode, debt)
	}

	var details []string
	if !p.HasInvoice() {
		details = append(details, fmt.Sprintf("parcel %s has no invoice attached", p.trackingCode))
	}
	if !p.valueVerified {
		details = append(details, fmt.Sprintf("parcel %s declared value is not staff-verified", p.trackingCode))
	}
	if !address.IsComplete() {
		details = append(details, "shipping address is incomplete")
	}
	if len(details) > 0 {
		return errs.NewValidationError("quote parcel", details...)
	}

	return nil
}

// RequestIndividualShipping moves the parcel onto the individual shipping
// track and links it to its single-member shipment. The parcel must already
// carry an invoice and a staff-verified declared value; the address is
// checked later at quote time. Moves InWarehouse -> EnRouteToShip.
func (p *Parcel) RequestIndividualShipping(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	var details []string
	if !p.HasInvoice() {
		details = append(details, fmt.Sprintf("parcel %s has no invoice attached", p.trackingCode))
	}
	if !p.valueVerified {
		details = append(details, fmt.Sprintf("parcel %s declared value is not staff-verified", p.trackingCode))
	}
	if len(details) > 0 {
		return errs.NewValidationError("request individual shipping", details...)
	}

	next, err := p.status.TransitionTo(EnRouteToShip)
	if err != nil {
		return err
	}

	p.status = next
	p.shipmentID = &shipmentID
	return nil
}

// RequestStorePickup moves the parcel onto the self-pickup track.
func (p *Parcel) RequestStorePickup() error {
	return p.transition(PendingStorePickup)
}

// SolicitForConsolidation marks the parcel as part of a submitted
// consolidation selection and links it to the shipment.
// Moves InWarehouse -> SolicitedForConsolidation.
func (p *Parcel) SolicitForConsolidation(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	next, err := p.status.TransitionTo(SolicitedForConsolidation)
	if err != nil {
		return err
	}

	p.status = next
	p.shipmentID = &shipmentID
	return nil
}

// BeginConsolidation marks the start of physical consolidation by staff.
func (p *Parcel) BeginConsolidation() error {
	return p.transition(ConsolidationInProgress)
}

// ReturnToWarehouse backs the parcel out of its current track, e.g. when
// its shipment is canceled or staff recall it. Moves any pre-payment track
// state back to InWarehouse and clears the shipment link.
func (p *Parcel) ReturnToWarehouse() error {
	next, err := p.status.TransitionTo(InWarehouse)
	if err != nil {
		return err
	}

	p.status = next
	p.shipmentID = nil
	return nil
}

// MarkPaid records a successful payment capture.
func (p *Parcel) MarkPaid() error {
	return p.transition(Paid)
}

// MarkDispatched records that the parcel left the warehouse. A tracking
// number is required; for internal-carrier shipments it is auto-generated
// upstream, for external carriers the operator enters it.
func (p *Parcel) MarkDispatched(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("dispatch tracking number")
	}
	return p.transition(Dispatched)
}

// MarkInTransit records carrier movement.
func (p *Parcel) MarkInTransit() error {
	return p.transition(InTransit)
}

// MarkOutForDelivery records the parcel on the final delivery vehicle.
func (p *Parcel) MarkOutForDelivery() error {
	return p.transition(OutForDelivery)
}

// MarkDelivered records delivery. Proof-of-delivery evidence is enforced at
// this boundary, not merely recommended.
func (p *Parcel) MarkDelivered(proofPhotoRef string) error {
	if proofPhotoRef == "" {
		return errs.NewValidationError("deliver parcel",
			fmt.Sprintf("parcel %s has no proof-of-delivery photo", p.trackingCode))
	}

	next, err := p.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}

	p.status = next
	p.deliveryProofRef = proofPhotoRef
	return nil
}

// Cancel abandons the parcel. Only allowed before payment.
func (p *Parcel) Cancel() error {
	next, err := p.status.Cancel()
	if err != nil {
		return err
	}

	p.status = next
	p.shipmentID = nil
	return nil
}

func (p *Parcel) transition(next Status) error {
	newStatus, err := p.status.TransitionTo(next)
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

package parcel

import (
	"fmt"

	"cargolink/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel from warehouse intake to
// final delivery.
//
// State transitions:
//
//	PreAlerted ──> Receiving ──> InWarehouse ──┬──> EnRouteToShip ─────────────┐
//	                                           ├──> SolicitedForConsolidation ─┴─> ConsolidationInProgress
//	                                           └──> PendingStorePickup             │
//	                                                      │                        │
//	                EnRouteToShip / ConsolidationInProgress / PendingStorePickup ──┴──> Paid
//	                Paid ──> Dispatched ──> InTransit ──> OutForDelivery ──> Delivered
//
// Every pre-payment track state (EnRouteToShip, SolicitedForConsolidation,
// ConsolidationInProgress, PendingStorePickup) can back out to InWarehouse,
// e.g. when the customer changes track or a shipment is canceled.
//
// Canceled is reachable from every state before Paid. Payment is the point of
// no return: from Paid onward the only way forward is the delivery track.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// PreAlerted means the customer announced the parcel before it arrived.
	PreAlerted

	// Receiving means the parcel arrived and staff measurement is pending.
	Receiving

	// InWarehouse means the parcel is measured, shelved, and eligible for
	// shipping or consolidation selection.
	InWarehouse

	// EnRouteToShip means the customer requested individual shipping.
	EnRouteToShip

	// SolicitedForConsolidation means the parcel is part of a submitted
	// consolidation selection.
	SolicitedForConsolidation

	// PendingStorePickup means the customer will collect at the warehouse.
	PendingStorePickup

	// ConsolidationInProgress means staff are physically consolidating the
	// parcel into its outbound box.
	ConsolidationInProgress

	// Paid means the shipping charge was captured.
	Paid

	// Dispatched means a tracking number was assigned and the parcel left
	// the warehouse.
	Dispatched

	// InTransit means the parcel is moving with the outbound carrier.
	InTransit

	// OutForDelivery means the parcel is on the final delivery vehicle.
	OutForDelivery

	// Delivered is the terminal success state.
	Delivered

	// Canceled is the terminal state for parcels abandoned before payment.
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                   "Unknown",
		PreAlerted:                "PreAlerted",
		Receiving:                 "Receiving",
		InWarehouse:               "InWarehouse",
		EnRouteToShip:             "EnRouteToShip",
		SolicitedForConsolidation: "SolicitedForConsolidation",
		PendingStorePickup:        "PendingStorePickup",
		ConsolidationInProgress:   "ConsolidationInProgress",
		Paid:                      "Paid",
		Dispatched:                "Dispatched",
		InTransit:                 "InTransit",
		OutForDelivery:            "OutForDelivery",
		Delivered:                 "Delivered",
		Canceled:                  "Canceled",
	}
}

// transitions is the static transition-validity table. A transition is legal
// only if the target appears in the source's entry; everything else is a
// state conflict. Cancellation is handled separately by canCancel.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		PreAlerted:  {Receiving},
		Receiving:   {InWarehouse},
		InWarehouse: {EnRouteToShip, SolicitedForConsolidation, PendingStorePickup},
		EnRouteToShip:             {Paid, InWarehouse},
		SolicitedForConsolidation: {ConsolidationInProgress, InWarehouse},
		PendingStorePickup:        {Paid, InWarehouse},
		ConsolidationInProgress:   {Paid, InWarehouse},
		Paid:                      {Dispatched},
		Dispatched:                {InTransit},
		InTransit:                 {OutForDelivery},
		OutForDelivery:            {Delivered},
		Delivered:                 nil,
		Canceled:                  nil,
	}
}

// Validate checks that the Status is one of the defined values.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("parcel status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("parcel status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CanTransitionTo reports whether moving to next is legal from s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next if the move is legal, or a StateConflictError.
// Transitions are all-or-nothing: callers only mutate state when this
// succeeds.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewStateConflictError(
			"parcel status transition",
			s.String(),
			fmt.Sprintf("cannot move from %s to %s", s, next),
		)
	}
	return next, nil
}

// CanCancel reports whether the parcel can still be canceled.
// Cancellation is allowed from any state before payment.
func (s Status) CanCancel() bool {
	switch s {
	case PreAlerted, Receiving, InWarehouse, EnRouteToShip,
		SolicitedForConsolidation, PendingStorePickup, ConsolidationInProgress:
		return true
	default:
		return false
	}
}

// Cancel transitions to Canceled, or returns a StateConflictError for
// parcels at or past payment.
func (s Status) Cancel() (Status, error) {
	if !s.CanCancel() {
		return Unknown, errs.NewStateConflictError(
			"cancel parcel",
			s.String(),
			"parcel cannot be canceled at or after payment",
		)
	}
	return Canceled, nil
}

// IsActiveDelivery reports whether the parcel is on the delivery track and
// still undelivered. Used by driver task grouping.
func (s Status) IsActiveDelivery() bool {
	switch s {
	case Dispatched, InTransit, OutForDelivery:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled
}

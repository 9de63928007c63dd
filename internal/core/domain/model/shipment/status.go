package shipment

import (
	"fmt"

	"cargolink/internal/pkg/errs"
)

// Status represents the lifecycle state of a consolidated shipment. It is the
// post-consolidation mirror of the parcel track:
//
//	Requested ──> Processing ──> Paid ──> Dispatched ──> InTransit ──> Delivered
//
// Canceled is reachable from Requested and Processing only; Paid is the point
// of no return.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Requested means the customer confirmed a consolidation selection and
	// staff have not yet processed it.
	Requested

	// Processing means staff recorded the final combined weight/dimensions;
	// the shipment is payable.
	Processing

	// Paid means the shipping charge was captured.
	Paid

	// Dispatched means a master tracking number was assigned.
	Dispatched

	// InTransit means the shipment is moving with the outbound carrier.
	InTransit

	// Delivered is the terminal success state.
	Delivered

	// Canceled is the terminal state for shipments abandoned before payment.
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Requested:  "Requested",
		Processing: "Processing",
		Paid:       "Paid",
		Dispatched: "Dispatched",
		InTransit:  "InTransit",
		Delivered:  "Delivered",
		Canceled:   "Canceled",
	}
}

func transitions() map[Status][]Status {
	return map[Status][]Status{
		Requested:  {Processing, Canceled},
		Processing: {Paid, Canceled},
		Paid:       {Dispatched},
		Dispatched: {InTransit},
		InTransit:  {Delivered},
		Delivered:  nil,
		Canceled:   nil,
	}
}

// Validate checks that the Status is one of the defined values.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("shipment status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("shipment status",
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
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewStateConflictError(
			"shipment status transition",
			s.String(),
			fmt.Sprintf("cannot move from %s to %s", s, next),
		)
	}
	return next, nil
}

// IsDelivered reports the terminal delivered state. Driver task grouping
// skips shipments in this state even if stale parcel rows still reference
// them.
func (s Status) IsDelivered() bool {
	return s == Delivered
}

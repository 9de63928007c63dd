package localrequest

import (
	"fmt"

	"cargolink/internal/pkg/errs"
)

// Status represents the two-phase lifecycle of a local logistics order:
//
//	Accepted ──> PickedUp ──> Completed
//
// Canceled is reachable only before pickup. The pickup and delivery phases
// are independently gated by evidence; the authoritative gates live on the
// Request aggregate, not in any client.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Accepted means a driver holds the task but has not picked up yet.
	Accepted

	// PickedUp means pickup was confirmed with photo evidence.
	PickedUp

	// Completed means delivery was confirmed with photo and signature.
	Completed

	// Canceled is the terminal state for orders abandoned before pickup.
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Accepted:  "Accepted",
		PickedUp:  "PickedUp",
		Completed: "Completed",
		Canceled:  "Canceled",
	}
}

// Validate checks that the Status is one of the defined values.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("request status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("request status",
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

package services

import (
	"fmt"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/domain/model/shipment"
	"cargolink/internal/pkg/errs"

	"github.com/hashicorp/go-multierror"
)

// ConsolidationEngine validates and executes the grouping of eligible parcels
// into one consolidated shipment.
//
// Business rules:
//   - Selection size must be 2..7 parcels; a single parcel belongs in the
//     individual shipment flow.
//   - Every selected parcel needs an attached invoice; offenders are named.
//   - Combined weight must not exceed the consolidated-box cap.
//   - Every selected parcel must still be in the warehouse at submission
//     time; a client's cached view counts for nothing.
//   - Execution is all-or-nothing: the shipment is created and every member
//     transitioned, or nothing changes.
type ConsolidationEngine struct{}

// NewConsolidationEngine creates a ConsolidationEngine.
func NewConsolidationEngine() ConsolidationEngine {
	return ConsolidationEngine{}
}

// CombinedWeightLb returns the summed measured weight of the selection.
func (ConsolidationEngine) CombinedWeightLb(parcels []*parcel.Parcel) float64 {
	var total float64
	for _, p := range parcels {
		total += p.WeightLb()
	}
	return total
}

// WeightUtilization returns the selection's combined weight as a percentage
// of the consolidated-box cap, for continuous display while the customer
// edits the selection.
func (e ConsolidationEngine) WeightUtilization(parcels []*parcel.Parcel) float64 {
	return e.CombinedWeightLb(parcels) / shipment.MaxTotalWeightLb * 100
}

// ValidateSelection checks the business rules against a selection and
// reports every violation, not just the first.
func (e ConsolidationEngine) ValidateSelection(parcels []*parcel.Parcel) error {
	var merr *multierror.Error
	var details []string

	switch n := len(parcels); {
	case n == 1:
		d := "a single parcel cannot be consolidated, use the individual shipment flow instead"
		details = append(details, d)
		merr = multierror.Append(merr, errs.NewValueIsOutOfRangeError(
			"selection size", n, shipment.MinMemberParcels, shipment.MaxMemberParcels))
	case n < shipment.MinMemberParcels || n > shipment.MaxMemberParcels:
		d := fmt.Sprintf("selection holds %d parcels, allowed range is %d to %d",
			n, shipment.MinMemberParcels, shipment.MaxMemberParcels)
		details = append(details, d)
		merr = multierror.Append(merr, errs.NewValueIsOutOfRangeError(
			"selection size", n, shipment.MinMemberParcels, shipment.MaxMemberParcels))
	}

	for _, p := range parcels {
		if !p.HasInvoice() {
			d := fmt.Sprintf("parcel %s has no invoice attached", p.TrackingCode())
			details = append(details, d)
			merr = multierror.Append(merr, errs.NewValueIsRequiredError("invoice for "+p.TrackingCode()))
		}
	}

	if combined := e.CombinedWeightLb(parcels); combined > shipment.MaxTotalWeightLb {
		d := fmt.Sprintf("combined weight %.1f lb exceeds the %.0f lb consolidated-box limit",
			combined, shipment.MaxTotalWeightLb)
		details = append(details, d)
		merr = multierror.Append(merr, errs.NewValueIsOutOfRangeError(
			"combined weight", combined, 0, shipment.MaxTotalWeightLb))
	}

	if merr.ErrorOrNil() == nil {
		return nil
	}
	return errs.NewValidationErrorWithCause("consolidate parcels", merr, details...)
}

// EnsureEligible re-validates at submission time that every selected parcel
// is still in the warehouse. A parcel moved by another actor since the
// customer assembled the selection makes the whole selection stale.
func (ConsolidationEngine) EnsureEligible(parcels []*parcel.Parcel) error {
	var stale []string
	for _, p := range parcels {
		if p.Status() != parcel.InWarehouse {
			stale = append(stale, fmt.Sprintf("%s is %s", p.TrackingCode(), p.Status()))
		}
	}

	if len(stale) == 0 {
		return nil
	}
	return errs.NewStateConflictError("consolidate parcels", parcel.InWarehouse.String(),
		fmt.Sprintf("selection is stale, parcels are no longer in the warehouse: %v", stale))
}

// Consolidate validates the selection, creates the shipment, and transitions
// every member parcel out of the warehouse. No state is mutated unless every
// check passes; parcel transitions cannot fail after EnsureEligible because
// InWarehouse -> SolicitedForConsolidation is always legal.
func (e ConsolidationEngine) Consolidate(
	shipmentID, customerID kernel.UUID,
	parcels []*parcel.Parcel,
) (*shipment.Shipment, error) {
	for _, p := range parcels {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	if err := e.EnsureEligible(parcels); err != nil {
		return nil, err
	}
	if err := e.ValidateSelection(parcels); err != nil {
		return nil, err
	}

	memberIDs := make([]kernel.UUID, 0, len(parcels))
	for _, p := range parcels {
		memberIDs = append(memberIDs, p.ID())
	}

	sh, err := shipment.NewShipment(shipmentID, customerID, memberIDs)
	if err != nil {
		return nil, err
	}

	for _, p := range parcels {
		if err := p.SolicitForConsolidation(sh.ID()); err != nil {
			return nil, err
		}
	}

	return sh, nil
}

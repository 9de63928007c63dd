package services

import (
	"fmt"
	"math"

	"cargolink/internal/core/domain/model/carrier"
	"cargolink/internal/core/domain/model/localrequest"
)

// Pricing policy constants. All currency values are in the operator's billing
// currency; weights are pounds, distances are road miles.
const (
	// FreeRadiusMiles is the distance included in every local base fare.
	FreeRadiusMiles = 10.0

	// PerMileSurcharge is charged for each mile beyond the free radius.
	PerMileSurcharge = 1.50

	// HeavyPerLbRate prices heavy-tier loads per pound of exact weight.
	HeavyPerLbRate = 0.55

	// HeavyWeightFloorLb is the minimum billable weight on the heavy tier.
	HeavyWeightFloorLb = 151.0

	// InsuranceThreshold is the declared value above which insurance applies.
	InsuranceThreshold = 100.0

	// InsuranceRate is the insurance charge as a fraction of declared value.
	InsuranceRate = 0.03

	// StandardHandlingFee applies per shipment on non-internal carriers.
	StandardHandlingFee = 10.00

	// PromoCredit is the flat promotional credit amount.
	PromoCredit = 25.00

	// PromoCarrierMinimum is the minimum carrier portion for the credit to
	// apply. A cheaper carrier selection auto-removes the credit.
	PromoCarrierMinimum = 100.0
)

// FareStrategy reports which tier won the base-fare comparison, surfaced to
// the caller for transparency on quote screens.
type FareStrategy string

const (
	// StrategyWeight means the weight-tier price set the base fare.
	StrategyWeight FareStrategy = "WEIGHT"

	// StrategyVolume means the volume-tier price set the base fare.
	// Exact ties resolve to VOLUME.
	StrategyVolume FareStrategy = "VOLUME"
)

// FeeScheduleFunc computes the additive payment-processing surcharge for a
// net amount, so that after the processor's cut the merchant still nets the
// original amount. It is external policy; the calculator treats it as a
// black box and only ever adds its result.
type FeeScheduleFunc func(netAmount float64) float64

// Quote is an ephemeral pricing breakdown. It is never persisted; the
// payment flow recomputes it from canonical inputs and freezes only the
// total.
type Quote struct {
	BaseFare          float64
	Strategy          FareStrategy
	DistanceSurcharge float64
	HandlingFee       float64
	Insurance         float64
	ProcessingFee     float64
	Discount          float64
	Total             float64

	// Notices carries human-readable messages about automatic adjustments,
	// e.g. a promotional credit removed because the carrier charge fell
	// below the minimum.
	Notices []string
}

// LocalQuoteInput is the declared input for pricing a local logistics order.
type LocalQuoteInput struct {
	WeightTier     localrequest.WeightTier
	ExactWeightLb  float64
	VolumeTier     localrequest.VolumeTier
	DistanceMiles  float64
	PromoRequested bool
}

// ShipmentQuoteInput is the declared input for pricing an outbound shipment.
// CarrierPrice is the carrier portion obtained from the rate service (or the
// fallback default rate). MemberDeclaredValues holds one declared value per
// member parcel; insurance is assessed per parcel, not on the aggregate.
type ShipmentQuoteInput struct {
	CarrierPrice         float64
	Carrier              carrier.Carrier
	MemberDeclaredValues []float64
	PromoRequested       bool
}

// PricingCalculator is a stateless domain service computing tiered rates and
// fees. All methods are pure functions of their declared inputs: no clock,
// no configuration lookups, no side effects. Out-of-range numeric input is
// clamped, never rejected.
type PricingCalculator struct{}

// NewPricingCalculator creates a PricingCalculator.
func NewPricingCalculator() PricingCalculator {
	return PricingCalculator{}
}

// WeightTierPrice returns the fixed price for a weight tier. The heavy tier
// is priced per pound of exact weight with a floor of HeavyWeightFloorLb.
func (PricingCalculator) WeightTierPrice(tier localrequest.WeightTier, exactWeightLb float64) float64 {
	switch tier {
	case localrequest.WeightTierUpTo40:
		return 30
	case localrequest.WeightTierUpTo70:
		return 45
	case localrequest.WeightTierUpTo110:
		return 65
	case localrequest.WeightTierUpTo150:
		return 85
	case localrequest.WeightTierHeavy:
		return math.Max(exactWeightLb, HeavyWeightFloorLb) * HeavyPerLbRate
	default:
		return 0
	}
}

// VolumeTierPrice returns the fixed price for a declared volume tier.
func (PricingCalculator) VolumeTierPrice(tier localrequest.VolumeTier) float64 {
	switch tier {
	case localrequest.VolumeTierQuarter:
		return 30
	case localrequest.VolumeTierHalf:
		return 55
	case localrequest.VolumeTierThreeQuarters:
		return 75
	case localrequest.VolumeTierFull:
		return 100
	default:
		return 0
	}
}

// BaseFare returns the larger of the weight-tier and volume-tier prices with
// the winning strategy. The comparison is strict > on the weight side, so an
// exact tie resolves to VOLUME.
func (c PricingCalculator) BaseFare(
	weightTier localrequest.WeightTier,
	exactWeightLb float64,
	volumeTier localrequest.VolumeTier,
) (float64, FareStrategy) {
	weightPrice := c.WeightTierPrice(weightTier, exactWeightLb)
	volumePrice := c.VolumeTierPrice(volumeTier)

	if weightPrice > volumePrice {
		return weightPrice, StrategyWeight
	}
	return volumePrice, StrategyVolume
}

// DistanceSurcharge returns the charge for road distance beyond the free
// radius. Distances at or under the radius, and negative inputs, cost 0.
func (PricingCalculator) DistanceSurcharge(miles float64) float64 {
	if miles <= FreeRadiusMiles {
		return 0
	}
	return (miles - FreeRadiusMiles) * PerMileSurcharge
}

// Insurance returns the insurance charge for a declared value. Values at or
// under the threshold are not insured.
func (PricingCalculator) Insurance(declaredValue float64) float64 {
	if declaredValue <= InsuranceThreshold {
		return 0
	}
	return declaredValue * InsuranceRate
}

// HandlingFee returns the flat handling fee for the selected carrier. The
// operator's internal fleet waives it. Evaluated strictly on the carrier
// selected at quote time, so changing carrier forces a re-quote.
func (PricingCalculator) HandlingFee(c carrier.Carrier) float64 {
	if c.IsInternal() {
		return 0
	}
	return StandardHandlingFee
}

// QuoteLocal prices a local pickup/delivery order: tiered base fare, distance
// surcharge, processing fee, and optional promotional credit. Local orders
// run on the operator's own vehicles, so handling and insurance do not apply.
func (c PricingCalculator) QuoteLocal(in LocalQuoteInput, feeFor FeeScheduleFunc) Quote {
	baseFare, strategy := c.BaseFare(in.WeightTier, in.ExactWeightLb, in.VolumeTier)
	surcharge := c.DistanceSurcharge(in.DistanceMiles)

	q := Quote{
		BaseFare:          baseFare,
		Strategy:          strategy,
		DistanceSurcharge: surcharge,
	}

	return c.finalize(q, baseFare+surcharge, in.PromoRequested, feeFor)
}

// QuoteShipment prices an outbound shipment: the carrier portion from the
// rate service plus handling, insurance, processing fee, and optional
// promotional credit. Insurance is computed per member parcel on its own
// declared value and summed, so consolidating parcels that individually sit
// under the threshold never creates an insurance charge.
func (c PricingCalculator) QuoteShipment(in ShipmentQuoteInput, feeFor FeeScheduleFunc) Quote {
	var insurance float64
	for _, v := range in.MemberDeclaredValues {
		insurance += c.Insurance(v)
	}

	q := Quote{
		BaseFare:    in.CarrierPrice,
		HandlingFee: c.HandlingFee(in.Carrier),
		Insurance:   insurance,
	}

	return c.finalize(q, in.CarrierPrice, in.PromoRequested, feeFor)
}

// finalize applies the carrier-portion promo rule, the processing surcharge
// on the taxable amount (base fare + handling + insurance), and the
// never-negative total clamp.
func (PricingCalculator) finalize(q Quote, carrierPortion float64, promoRequested bool, feeFor FeeScheduleFunc) Quote {
	if promoRequested {
		if carrierPortion >= PromoCarrierMinimum {
			q.Discount = PromoCredit
		} else {
			q.Notices = append(q.Notices, fmt.Sprintf(
				"promotional credit removed: carrier charge %.2f is below the %.2f minimum",
				carrierPortion, PromoCarrierMinimum))
		}
	}

	if feeFor != nil {
		q.ProcessingFee = feeFor(q.BaseFare + q.HandlingFee + q.Insurance)
	}

	q.Total = math.Max(0,
		q.BaseFare+q.DistanceSurcharge+q.HandlingFee+q.Insurance+q.ProcessingFee-q.Discount)
	return q
}

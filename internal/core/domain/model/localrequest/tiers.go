package localrequest

import (
	"fmt"

	"cargolink/internal/pkg/errs"
)

// WeightTier is a fixed-price weight bracket for local logistics orders.
// The Heavy tier has no fixed price; it is charged per pound of exact weight.
type WeightTier int

const (
	// WeightTierUnknown represents an invalid or undefined tier.
	WeightTierUnknown WeightTier = iota

	// WeightTierUpTo40 covers loads up to 40 lb inclusive.
	WeightTierUpTo40

	// WeightTierUpTo70 covers 41-70 lb.
	WeightTierUpTo70

	// WeightTierUpTo110 covers 71-110 lb.
	WeightTierUpTo110

	// WeightTierUpTo150 covers 111-150 lb.
	WeightTierUpTo150

	// WeightTierHeavy covers loads above 150 lb, priced by exact weight.
	WeightTierHeavy
)

// WeightTierForWeight maps an exact weight in pounds to its tier.
func WeightTierForWeight(lb float64) WeightTier {
	switch {
	case lb <= 40:
		return WeightTierUpTo40
	case lb <= 70:
		return WeightTierUpTo70
	case lb <= 110:
		return WeightTierUpTo110
	case lb <= 150:
		return WeightTierUpTo150
	default:
		return WeightTierHeavy
	}
}

func weightTierStrings() map[WeightTier]string {
	return map[WeightTier]string{
		WeightTierUnknown: "Unknown",
		WeightTierUpTo40:  "UpTo40",
		WeightTierUpTo70:  "UpTo70",
		WeightTierUpTo110: "UpTo110",
		WeightTierUpTo150: "UpTo150",
		WeightTierHeavy:   "Heavy",
	}
}

// Validate checks that the tier is one of the defined values.
func (w WeightTier) Validate() error {
	if w == WeightTierUnknown {
		return errs.NewValueIsInvalidErrorWithCause("weight tier",
			fmt.Errorf("%d is not a valid weight tier", w))
	}
	if _, ok := weightTierStrings()[w]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("weight tier",
			fmt.Errorf("%d is not a valid weight tier", w))
	}
	return nil
}

// String returns the human-readable name of the tier.
func (w WeightTier) String() string {
	if s, ok := weightTierStrings()[w]; ok {
		return s
	}
	return "Unknown"
}

// VolumeTier is a fixed-price bracket for the fraction of vehicle space a
// load occupies.
type VolumeTier int

const (
	// VolumeTierUnknown represents an invalid or undefined tier.
	VolumeTierUnknown VolumeTier = iota

	// VolumeTierQuarter is a quarter of the vehicle.
	VolumeTierQuarter

	// VolumeTierHalf is half of the vehicle.
	VolumeTierHalf

	// VolumeTierThreeQuarters is three quarters of the vehicle.
	VolumeTierThreeQuarters

	// VolumeTierFull is exclusive use of the vehicle.
	VolumeTierFull
)

func volumeTierStrings() map[VolumeTier]string {
	return map[VolumeTier]string{
		VolumeTierUnknown:       "Unknown",
		VolumeTierQuarter:       "Quarter",
		VolumeTierHalf:          "Half",
		VolumeTierThreeQuarters: "ThreeQuarters",
		VolumeTierFull:          "Full",
	}
}

// Validate checks that the tier is one of the defined values.
func (v VolumeTier) Validate() error {
	if v == VolumeTierUnknown {
		return errs.NewValueIsInvalidErrorWithCause("volume tier",
			fmt.Errorf("%d is not a valid volume tier", v))
	}
	if _, ok := volumeTierStrings()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("volume tier",
			fmt.Errorf("%d is not a valid volume tier", v))
	}
	return nil
}

// String returns the human-readable name of the tier.
func (v VolumeTier) String() string {
	if s, ok := volumeTierStrings()[v]; ok {
		return s
	}
	return "Unknown"
}

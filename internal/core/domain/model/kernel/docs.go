// Package kernel contains shared value objects used across all aggregates:
// UUID identity, street addresses, and tracking-code generation.
//
// Value objects in this package are immutable and validate themselves on
// construction. Zero values are invalid and fail Validate, which makes
// objects reconstructed from persistence or external input detectable.
package kernel

// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the freight-forwarding
// system. It implements business workflows that don't naturally belong to a
// single aggregate root.
//
// The package includes:
//   - PricingCalculator: pure tiered rate and fee computation
//   - ConsolidationEngine: validation and execution of parcel consolidation
//   - TaskGrouper: folding of parcels into routable driver work units
//
// Every service here takes explicit inputs and returns values; nothing holds
// shared mutable state, so all of them are safe to call concurrently for
// different shipments.
package services

// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the dispatch system. It
// implements workflows that don't naturally belong to a single aggregate
// root.
//
// The package includes:
//   - RequestDispatcher: deterministic courier selection for a request
//   - PricingEngine: itemized price computation with discount application
//
// Both services are pure: they operate on snapshots supplied by the
// caller and keep no state between invocations.
package services

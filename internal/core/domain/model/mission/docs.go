// Package mission contains the Mission aggregate: the operational unit
// binding one courier to one assigned delivery request, with a state machine
// from Pending through InProgress to Completed or Cancelled.
//
// The package owns the single-active-mission invariant: for any courier, at
// most one mission may be Pending or InProgress at a time.
package mission

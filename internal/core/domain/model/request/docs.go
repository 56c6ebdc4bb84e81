// Package request contains the DeliveryRequest aggregate and its supporting
// value objects (Waypoint, Load) together with the request status state
// machine.
//
// A Request is created Pending, bound to a courier by the assignment engine
// (Pending -> Assigned) and then driven to completion by the mission
// lifecycle (Assigned -> InProgress -> Completed). Cancellation is allowed
// from Pending or Assigned only.
package request

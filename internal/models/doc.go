// Package models defines the core domain models for garage.
//
// # Models
//
//   - Owner: a named person who owns zero or more cars
//   - Car: a vehicle that belongs to exactly one owner
//
// # Lifecycle
//
// Both models are plain values. An ID of zero means the value has not been
// persisted yet (transient); the store assigns the ID on first save and the
// service layer resets it to zero on delete. Values returned by queries are
// fresh snapshots of rows, never shared between calls.
//
// # Validation
//
// Constructors (NewOwner, NewCar) trim text fields and validate before
// returning, so an invalid model is never handed to the store. Callers that
// mutate exported fields directly must call Validate again before saving.
//
// # Relationships
//
// Cars reference their owner by OwnerID rather than by pointer. The reverse
// direction (an owner's cars) is an explicit query in the service layer.
package models

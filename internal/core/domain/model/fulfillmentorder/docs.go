// Package fulfillmentorder provides the domain model for remote fulfillment
// order snapshots. It implements immutable value objects describing what a
// fulfillment order looked like at one fetch of remote state.
//
// The package includes:
//   - LineItem: a single order line with normalized routing metadata
//     (availability locations, length-transport flag, coupling-piece flag)
//   - Details: a whole-order snapshot with lookup helpers used by the
//     split orchestration
//
// Key business rules:
//   - Fulfillment line identifiers are only valid within the snapshot they
//     were read from; splits re-key the remaining lines
//   - Raw metadata strings are normalized into typed fields exactly once,
//     at the fetch boundary, before these objects are constructed
//   - A snapshot with zero line items is valid and terminal
package fulfillmentorder

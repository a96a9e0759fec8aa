// Package services provides domain services that implement the routing rules
// of the fulfillment system: pure business logic that operates on whole
// snapshots and doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - ItemClassifier: partitions a snapshot's line items into routing buckets
//   - LocationGrouper: assigns externally-routed items to destination groups
//     against the current remaining-items snapshot
//
// Both services are pure: they issue no remote calls and mutate none of their
// inputs, which keeps the orchestration's re-fetch/recompute cycle easy to
// reason about.
package services

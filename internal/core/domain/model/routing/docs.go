// Package routing provides the domain model for fulfillment order routing
// decisions: the classification of line items into pick/ship categories, the
// grouping of externally-routed items by destination location, the audit
// trail of committed splits and tags, and the stage state machine that the
// orchestration advances through.
//
// The package includes:
//   - Classification: five disjoint buckets plus a derived Summary
//   - LocationGroups: deterministic, insertion-ordered destination groups
//   - SplitRecord / Result: the append-only audit trail of a run
//   - Stage: a state machine with declared transitions for the decision tree
//   - Location constants and the location-to-tag mapping
//
// Key business rules:
//   - Every line item lands in exactly one classification bucket, with
//     coupling-piece-at-home taking precedence over the length buckets
//   - Splits and tags committed before a failure stay in the result
//   - Tagging is best-effort and never fails a run
package routing

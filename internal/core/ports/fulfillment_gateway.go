// Package ports defines the outbound contracts between the application core
// and the remote order-management API. Adapters implement these interfaces;
// command and query handlers depend only on them.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/fulfillmentorder"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/routing"
)

// FulfillmentOrderReader fetches the current remote state of a fulfillment order.
type FulfillmentOrderReader interface {
	// GetFulfillmentOrder retrieves the order's line items with their routing
	// metadata normalized into typed fields. Returns an error satisfying
	// errs.ErrObjectNotFound when the order does not exist remotely.
	GetFulfillmentOrder(ctx context.Context, id kernel.GID) (*fulfillmentorder.Details, error)
}

// FulfillmentOrderSplitter issues split mutations against a fulfillment order.
type FulfillmentOrderSplitter interface {
	// Split moves the given {id, quantity} pairs out of the fulfillment order
	// into a newly created sibling order. User/validation errors reported by
	// the remote API are returned as errors; they are not retried, because
	// retrying a semantically-rejected mutation rarely helps.
	Split(ctx context.Context, id kernel.GID, items []routing.SplitItem) (*routing.SplitOutcome, error)
}

// OrderTagger attaches routing tags to the parent customer order.
type OrderTagger interface {
	// AddTag adds a single tag to the order. Callers treat failures as
	// best-effort: a failed tag is logged, never escalated.
	AddTag(ctx context.Context, orderID kernel.GID, tag string) error
}

// FulfillmentGateway is the full outbound surface the orchestration needs.
type FulfillmentGateway interface {
	FulfillmentOrderReader
	FulfillmentOrderSplitter
	OrderTagger
}

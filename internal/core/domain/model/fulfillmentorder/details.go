package fulfillmentorder

import (
	"errors"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrDetailsIsNotConstructed is returned when a Details instance was not created
// through the NewDetails factory method.
var ErrDetailsIsNotConstructed = errors.New("Details must be created via NewDetails constructor")

// Details is an immutable snapshot of a fulfillment order's remote state: its
// status and the line items it currently holds. A Details value is recomputed
// from scratch on every fetch; there is no incremental update. Each successful
// split invalidates all previously observed fulfillment line identifiers for
// moved items, so any decision that depends on "what remains" must be made
// against a fresh snapshot.
//
// A snapshot with zero line items is valid and terminal: there is nothing to
// classify or split.
type Details struct {
	// fulfillmentOrderID identifies the fulfillment order this snapshot was read from.
	fulfillmentOrderID kernel.GID

	// status is the remote lifecycle status as reported by the provider
	// (for example "OPEN"). It is informational and not interpreted here.
	status string

	// lineItems are the lines present in the order at fetch time.
	lineItems []LineItem

	// isConstructed ensures the snapshot was created via NewDetails
	isConstructed bool
}

// NewDetails creates a validated snapshot of a fulfillment order.
//
// Parameters:
//   - fulfillmentOrderID: the order's global identifier (must be valid)
//   - status: the remote status string
//   - lineItems: the lines present at fetch time (each must be constructed
//     via NewLineItem; the slice may be empty)
//
// The line item slice is copied so the snapshot cannot be mutated afterwards.
func NewDetails(fulfillmentOrderID kernel.GID, status string, lineItems []LineItem) (*Details, error) {
	if err := fulfillmentOrderID.Validate(); err != nil {
		return nil, err
	}

	for _, item := range lineItems {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Details{
		fulfillmentOrderID: fulfillmentOrderID,
		status:             status,
		lineItems:          slices.Clone(lineItems),
		isConstructed:      true,
	}, nil
}

// Validate ensures the Details instance was properly constructed through NewDetails.
func (d *Details) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDetailsIsNotConstructed
	}
	return nil
}

// ID returns the fulfillment order's global identifier.
func (d *Details) ID() kernel.GID {
	return d.fulfillmentOrderID
}

// Status returns the remote lifecycle status as reported by the provider.
func (d *Details) Status() string {
	return d.status
}

// LineItems returns a copy of the line items present at fetch time.
func (d *Details) LineItems() []LineItem {
	return slices.Clone(d.lineItems)
}

// IsEmpty reports whether the snapshot holds no line items.
func (d *Details) IsEmpty() bool {
	return len(d.lineItems) == 0
}

// RemainingLineItems returns the snapshot's lines keyed by fulfillment line id.
// The orchestrator rebuilds this index after every successful split to decide
// which classified items are still part of the parent order.
func (d *Details) RemainingLineItems() map[string]LineItem {
	remaining := make(map[string]LineItem, len(d.lineItems))
	for _, item := range d.lineItems {
		remaining[item.FulfillmentLineID()] = item
	}
	return remaining
}

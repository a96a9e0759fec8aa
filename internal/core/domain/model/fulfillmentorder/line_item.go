package fulfillmentorder

import (
	"errors"
	"fmt"
	"slices"

	"fulfillment/internal/pkg/errs"
)

// ErrLineItemIsNotConstructed is returned when a LineItem instance was not created
// through the NewLineItem factory method. This ensures all line items carry
// normalized, validated routing metadata.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is an immutable snapshot of a single fulfillment order line as seen
// in one fetch of remote state. The fulfillment line id is only valid for the
// snapshot it was read from: every successful split re-keys the remaining
// lines, so stale ids must never be carried across a mutation.
//
// LineItem follows these invariants:
//   - Must have a fulfillment line identifier
//   - Quantity must be zero or positive
//   - Routing metadata (locations, transport flags) is already normalized
//     into typed fields; no raw metadata strings leak past construction
//   - Can only be created through the NewLineItem constructor
type LineItem struct {
	// fulfillmentLineID identifies the line within its fulfillment order.
	fulfillmentLineID string

	// catalogLineID identifies the underlying catalog (order) line item.
	catalogLineID string

	// name is the human-readable product name.
	name string

	// sku is the stock keeping unit, may be empty.
	sku string

	// quantity is the number of units on this line (zero or positive).
	quantity int

	// availableLocations is the set of destination-location names where the
	// item can be fulfilled, in the order the remote system reported them.
	availableLocations []string

	// isLengthTransport marks items that need special long-goods transport.
	isLengthTransport bool

	// isCouplingPiece marks companion parts that must ship together with
	// length-transport items when both are at the home location.
	isCouplingPiece bool

	// isConstructed ensures the line item was created via NewLineItem
	isConstructed bool
}

// NewLineItem creates a validated, immutable LineItem snapshot.
//
// Parameters:
//   - fulfillmentLineID: identifier of the line within the fulfillment order (required)
//   - catalogLineID: identifier of the underlying catalog line item
//   - name: product name
//   - sku: stock keeping unit (may be empty)
//   - quantity: number of units (must be zero or positive)
//   - availableLocations: normalized destination-location names (may be empty)
//   - isLengthTransport: normalized long-goods transport flag
//   - isCouplingPiece: normalized coupling-piece flag
//
// The locations slice is copied so later mutation of the caller's slice cannot
// change the snapshot.
func NewLineItem(
	fulfillmentLineID string,
	catalogLineID string,
	name string,
	sku string,
	quantity int,
	availableLocations []string,
	isLengthTransport bool,
	isCouplingPiece bool,
) (LineItem, error) {
	item := LineItem{
		catalogLineID:     catalogLineID,
		name:              name,
		sku:               sku,
		isLengthTransport: isLengthTransport,
		isCouplingPiece:   isCouplingPiece,
		isConstructed:     true,
	}

	if err := errors.Join(
		item.setFulfillmentLineID(fulfillmentLineID),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	item.availableLocations = slices.Clone(availableLocations)
	return item, nil
}

// Validate ensures the LineItem instance was properly constructed through NewLineItem.
func (l LineItem) Validate() error {
	if !l.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

// FulfillmentLineID returns the identifier of the line within its fulfillment order.
func (l LineItem) FulfillmentLineID() string {
	return l.fulfillmentLineID
}

// CatalogLineID returns the identifier of the underlying catalog line item.
func (l LineItem) CatalogLineID() string {
	return l.catalogLineID
}

// Name returns the product name.
func (l LineItem) Name() string {
	return l.name
}

// SKU returns the stock keeping unit, possibly empty.
func (l LineItem) SKU() string {
	return l.sku
}

// Quantity returns the number of units on this line.
func (l LineItem) Quantity() int {
	return l.quantity
}

// AvailableLocations returns a copy of the destination-location names for the
// item, preserving the order the remote system reported them in. The order is
// significant: the location grouper assigns an item to the first non-home
// location in this list.
func (l LineItem) AvailableLocations() []string {
	return slices.Clone(l.availableLocations)
}

// IsAvailableAt reports whether the given location name is in the item's
// available locations.
func (l LineItem) IsAvailableAt(location string) bool {
	return slices.Contains(l.availableLocations, location)
}

// IsLengthTransport reports whether the item needs long-goods transport handling.
func (l LineItem) IsLengthTransport() bool {
	return l.isLengthTransport
}

// IsCouplingPiece reports whether the item is a coupling-piece companion part.
func (l LineItem) IsCouplingPiece() bool {
	return l.isCouplingPiece
}

func (l *LineItem) setFulfillmentLineID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("fulfillmentLineId")
	}
	l.fulfillmentLineID = id
	return nil
}

func (l *LineItem) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is negative", quantity))
	}
	l.quantity = quantity
	return nil
}

package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// gidPrefix is the scheme prefix of a provider global id.
const gidPrefix = "gid://"

// Resource names used when normalizing bare numeric ids into global-id form.
const (
	// ResourceOrder is the provider resource name for customer orders.
	ResourceOrder = "Order"

	// ResourceFulfillmentOrder is the provider resource name for fulfillment orders.
	ResourceFulfillmentOrder = "FulfillmentOrder"
)

// ErrGIDIsNotConstructed indicates that a GID was not properly initialized through
// one of the constructor functions. This error is returned when validating a
// zero-value GID.
var ErrGIDIsNotConstructed = errs.NewValueIsRequiredError(
	"GID must be created via NewOrderGID or NewFulfillmentOrderGID")

// GID is a value object that represents a provider global identifier in the
// form "gid://shopify/{Resource}/{id}". The order-management API only accepts
// identifiers in this form, while inbound requests may carry bare numeric ids,
// so every identifier is normalized exactly once at the boundary.
//
// The zero value of GID is invalid and must be constructed using one of the
// provided factory functions: NewOrderGID or NewFulfillmentOrderGID.
//
// GID is immutable and thread-safe, making it suitable for concurrent use.
//
// Example usage:
//
//	// From a bare numeric id
//	id, err := kernel.NewFulfillmentOrderGID("6876830302323")
//	// id.String() == "gid://shopify/FulfillmentOrder/6876830302323"
//
//	// An already-global id passes through unchanged
//	id, err = kernel.NewOrderGID("gid://shopify/Order/42")
type GID struct {
	value string
}

// NewOrderGID creates a GID for a customer order from either a bare numeric id
// or an already-global id. Returns an error if the raw value is empty.
//
// Example:
//
//	orderID, err := kernel.NewOrderGID("5551212")
//	if err != nil {
//	    // handle missing id
//	}
//	fmt.Println(orderID.String()) // "gid://shopify/Order/5551212"
func NewOrderGID(raw string) (GID, error) {
	return newGID("orderId", ResourceOrder, raw)
}

// NewFulfillmentOrderGID creates a GID for a fulfillment order from either a
// bare numeric id or an already-global id. Returns an error if the raw value
// is empty.
func NewFulfillmentOrderGID(raw string) (GID, error) {
	return newGID("fulfillmentOrderId", ResourceFulfillmentOrder, raw)
}

// newGID normalizes a raw identifier into global-id form. A value that already
// carries the gid:// prefix is trusted as-is; anything else is treated as a
// bare id of the given resource.
func newGID(paramName, resource, raw string) (GID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return GID{}, errs.NewValueIsRequiredError(paramName)
	}

	if strings.HasPrefix(raw, gidPrefix) {
		return GID{value: raw}, nil
	}

	return GID{value: fmt.Sprintf("%sshopify/%s/%s", gidPrefix, resource, raw)}, nil
}

// String returns the global-id form of the identifier, for example
// "gid://shopify/FulfillmentOrder/6876830302323". For a zero value GID this
// returns the empty string.
func (g GID) String() string {
	return g.value
}

// IsEqual compares two GIDs for equality. Returns true if both identifiers
// normalize to the same global-id string.
func (g GID) IsEqual(other GID) bool {
	return g.value == other.value
}

// Validate checks if the GID is properly constructed.
// Returns ErrGIDIsNotConstructed if the GID is a zero value.
//
// This method is useful for validating domain objects during construction
// or when receiving data from external sources.
func (g GID) Validate() error {
	if g.value == "" {
		return ErrGIDIsNotConstructed
	}
	return nil
}

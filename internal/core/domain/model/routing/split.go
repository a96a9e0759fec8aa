package routing

// SplitItem is the {id, quantity} pair forwarded to the remote split mutation.
// Routing metadata is deliberately absent: the remote operation does not need it.
type SplitItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// Split type names recorded in the audit trail.
const (
	// SplitTypeHomeLengthWithCoupling is the split moving length-at-home items
	// together with their coupling pieces into a dedicated sub-order.
	SplitTypeHomeLengthWithCoupling = "length_home_with_coupling"

	// SplitTypeExternal is a split moving items bound for one external
	// destination location into a dedicated sub-order.
	SplitTypeExternal = "external"
)

// SplitRecord is one append-only audit trail entry describing a committed
// split. Records are never removed: a split that succeeded before a later
// failure is real, already-applied remote state and must stay visible in the
// result.
type SplitRecord struct {
	// Type names the kind of split, one of the SplitType constants.
	Type string `json:"type"`

	// NewFulfillmentOrderID identifies the sub-order created by the split.
	NewFulfillmentOrderID string `json:"newFulfillmentOrderId"`

	// Status is the remote status of the new sub-order.
	Status string `json:"status"`

	// Items lists the {id, quantity} pairs that were moved.
	Items []SplitItem `json:"items"`

	// Location is the destination location for external splits, empty otherwise.
	Location string `json:"location,omitempty"`
}

// SplitOutcome is what a successful split mutation reports back: the identity
// and status of the newly created sibling fulfillment order.
type SplitOutcome struct {
	NewFulfillmentOrderID string
	Status                string
}

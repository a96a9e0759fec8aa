package routing

// ClassifiedItem is the classifier's view of one line item: just enough to
// drive splitting decisions. ID is the fulfillment line id from the snapshot
// the classification was computed over.
type ClassifiedItem struct {
	ID                string
	Quantity          int
	Locations         []string
	IsLengthTransport bool
	IsCouplingPiece   bool
}

// Summary is derived bookkeeping over a Classification, used by the
// orchestrator's pre-step tagging and branch selection.
type Summary struct {
	// HasLengthItems is true iff either length bucket is non-empty.
	HasLengthItems bool

	// HasCouplingPieceItems is true iff the coupling-piece-at-home bucket is non-empty.
	HasCouplingPieceItems bool

	// AllItemsAtHome is true iff both external buckets are empty.
	AllItemsAtHome bool

	// AllNonLengthAtHome is true iff the non-length external bucket is empty.
	AllNonLengthAtHome bool

	// ExternalLocations lists the distinct non-home locations seen across
	// items that are not available at home, in first-seen order.
	ExternalLocations []string
}

// Classification partitions the line items of one fulfillment order snapshot
// into five disjoint buckets. Every input item appears in exactly one bucket;
// coupling-piece-at-home takes precedence over the length/non-length buckets
// when both conditions hold at the home location, because a coupling piece
// must travel with the length split it accompanies.
type Classification struct {
	// LengthAtHome holds length-transport items available at the home warehouse.
	LengthAtHome []ClassifiedItem

	// NonLengthAtHome holds regular items available at the home warehouse.
	NonLengthAtHome []ClassifiedItem

	// LengthExternal holds length-transport items not available at home.
	LengthExternal []ClassifiedItem

	// NonLengthExternal holds regular items not available at home.
	NonLengthExternal []ClassifiedItem

	// CouplingPieceAtHome holds coupling-piece items available at home.
	CouplingPieceAtHome []ClassifiedItem

	// Summary carries derived facts about the partition.
	Summary Summary
}

// TotalItems returns the number of items across all five buckets.
func (c Classification) TotalItems() int {
	return len(c.LengthAtHome) +
		len(c.NonLengthAtHome) +
		len(c.LengthExternal) +
		len(c.NonLengthExternal) +
		len(c.CouplingPieceAtHome)
}

// ExternalItems returns the union of both external buckets, length items
// first. This is the candidate set for splitting by destination location.
func (c Classification) ExternalItems() []ClassifiedItem {
	items := make([]ClassifiedItem, 0, len(c.LengthExternal)+len(c.NonLengthExternal))
	items = append(items, c.LengthExternal...)
	items = append(items, c.NonLengthExternal...)
	return items
}

// ItemsAtHomeCount returns how many items are available at the home warehouse,
// coupling pieces included. The single-external-location pre-step tag only
// applies when this is zero.
func (c Classification) ItemsAtHomeCount() int {
	return len(c.LengthAtHome) + len(c.NonLengthAtHome) + len(c.CouplingPieceAtHome)
}

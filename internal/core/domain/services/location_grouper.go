package services

import (
	"fulfillment/internal/core/domain/model/fulfillmentorder"
	"fulfillment/internal/core/domain/model/routing"
)

// LocationGrouper is a domain service that assigns externally-routed items to
// destination-location buckets ahead of a split mutation.
//
// Grouping is always computed fresh against the current remote snapshot:
// candidate items that are no longer present in the remaining line items were
// moved by a prior split and belong to a different sub-order now, so they are
// silently skipped. For each surviving item the current location list from the
// snapshot is scanned in order and the item is assigned to the first location
// that is not the home warehouse. Items whose list yields no usable external
// destination are filed under routing.UnknownLocation.
//
// Only {id, quantity} pairs are forwarded; the remote split operation does not
// need routing metadata.
type LocationGrouper struct {
	homeLocation string
}

// NewLocationGrouper creates a LocationGrouper for the given home warehouse
// name. An empty name falls back to routing.HomeLocation.
func NewLocationGrouper(homeLocation string) LocationGrouper {
	if homeLocation == "" {
		homeLocation = routing.HomeLocation
	}
	return LocationGrouper{homeLocation: homeLocation}
}

// GroupByLocation buckets the candidate items by their first non-home location
// as recorded in the current remaining-line-items snapshot. The returned
// groups preserve first-seen order, making the subsequent split sequence
// deterministic.
func (g LocationGrouper) GroupByLocation(
	items []routing.ClassifiedItem,
	remaining map[string]fulfillmentorder.LineItem,
) *routing.LocationGroups {
	groups := routing.NewLocationGroups()

	for _, item := range items {
		line, present := remaining[item.ID]
		if !present {
			// Moved by a prior split; no longer ours to route.
			continue
		}

		splitItem := routing.SplitItem{ID: item.ID, Quantity: item.Quantity}

		assigned := false
		for _, location := range line.AvailableLocations() {
			if location == g.homeLocation {
				continue
			}
			groups.Add(location, splitItem)
			assigned = true
			break
		}

		if !assigned {
			groups.Add(routing.UnknownLocation, splitItem)
		}
	}

	return groups
}

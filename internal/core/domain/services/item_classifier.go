package services

import (
	"fulfillment/internal/core/domain/model/fulfillmentorder"
	"fulfillment/internal/core/domain/model/routing"
)

// ItemClassifier is a domain service that partitions the line items of a
// fulfillment order snapshot into the five routing buckets.
//
// Key responsibilities:
//   - Deciding per item whether it is available at the home warehouse
//   - Applying the bucket precedence rules (coupling-piece first)
//   - Deriving the summary facts used for branch selection and pre-step tagging
//
// Business rules:
//   - Every input item lands in exactly one bucket (partition)
//   - A coupling-piece item at home is filed under coupling-piece even when it
//     is also a length-transport item, because it must travel with the length
//     split it accompanies
//   - Distinct non-home locations of items missing from home are tracked for
//     the summary regardless of the item's final bucket
//
// Example usage:
//
//	classifier := services.NewItemClassifier(routing.HomeLocation)
//	classification, err := classifier.Classify(details)
//	if err != nil {
//	    // snapshot was not properly constructed
//	}
//	if classification.Summary.HasLengthItems {
//	    // follow the length branch of the decision tree
//	}
type ItemClassifier struct {
	homeLocation string
}

// NewItemClassifier creates an ItemClassifier for the given home warehouse
// name. An empty name falls back to routing.HomeLocation.
func NewItemClassifier(homeLocation string) ItemClassifier {
	if homeLocation == "" {
		homeLocation = routing.HomeLocation
	}
	return ItemClassifier{homeLocation: homeLocation}
}

// Classify partitions the snapshot's line items into routing buckets and
// derives the summary. It is a pure function of the snapshot: no remote calls,
// no mutation of the input.
func (c ItemClassifier) Classify(details *fulfillmentorder.Details) (routing.Classification, error) {
	if err := details.Validate(); err != nil {
		return routing.Classification{}, err
	}

	var classification routing.Classification

	seenExternal := make(map[string]bool)
	externalLocations := make([]string, 0)

	for _, item := range details.LineItems() {
		atHome := item.IsAvailableAt(c.homeLocation)
		locations := item.AvailableLocations()

		if !atHome {
			for _, location := range locations {
				if location == c.homeLocation || seenExternal[location] {
					continue
				}
				seenExternal[location] = true
				externalLocations = append(externalLocations, location)
			}
		}

		classified := routing.ClassifiedItem{
			ID:                item.FulfillmentLineID(),
			Quantity:          item.Quantity(),
			Locations:         locations,
			IsLengthTransport: item.IsLengthTransport(),
			IsCouplingPiece:   item.IsCouplingPiece(),
		}

		// Bucket precedence: coupling-piece-at-home wins over the length buckets.
		switch {
		case classified.IsCouplingPiece && atHome:
			classification.CouplingPieceAtHome = append(classification.CouplingPieceAtHome, classified)
		case classified.IsLengthTransport && atHome:
			classification.LengthAtHome = append(classification.LengthAtHome, classified)
		case classified.IsLengthTransport:
			classification.LengthExternal = append(classification.LengthExternal, classified)
		case atHome:
			classification.NonLengthAtHome = append(classification.NonLengthAtHome, classified)
		default:
			classification.NonLengthExternal = append(classification.NonLengthExternal, classified)
		}
	}

	classification.Summary = routing.Summary{
		HasLengthItems:        len(classification.LengthAtHome)+len(classification.LengthExternal) > 0,
		HasCouplingPieceItems: len(classification.CouplingPieceAtHome) > 0,
		AllItemsAtHome:        len(classification.LengthExternal)+len(classification.NonLengthExternal) == 0,
		AllNonLengthAtHome:    len(classification.NonLengthExternal) == 0,
		ExternalLocations:     externalLocations,
	}

	return classification, nil
}

package routing

import "fmt"

// HomeLocation is the primary warehouse where default fulfillment occurs.
// Items available here are picked in-house; everything else is routed to an
// external fulfiller.
const HomeLocation = "Rooftopshop Magazijn"

// UnknownLocation is the sentinel group for items whose location list yields
// no usable external destination.
const UnknownLocation = "unknown"

// LengthFulfillmentTag marks the parent order as containing a long-goods
// (daktrim) pick at the home warehouse.
const LengthFulfillmentTag = "daktrimFulfillment"

// locationTags maps external location names with bespoke short tags.
// Every other location gets the default "{location}Fulfillment" form.
var locationTags = map[string]string{
	"Compri Aluminium": "compriFulfillment",
	"Redfox EPDM":      "redfoxFulfillment",
}

// LocationTag returns the order tag for a destination location.
//
// Example:
//
//	LocationTag("Compri Aluminium") // "compriFulfillment"
//	LocationTag("Redfox EPDM")      // "redfoxFulfillment"
//	LocationTag("Dakpannen Direct") // "Dakpannen DirectFulfillment"
func LocationTag(location string) string {
	if tag, ok := locationTags[location]; ok {
		return tag
	}
	return fmt.Sprintf("%sFulfillment", location)
}

// Package fulfillmentorderrepo provides the Shopify-backed implementation of
// the fulfillment gateway ports. It owns the GraphQL documents for fetching,
// splitting, and tagging, and maps the wire shapes into domain snapshots,
// normalizing the loosely typed variant metafields exactly once at fetch time.
package fulfillmentorderrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"fulfillment/internal/core/domain/model/fulfillmentorder"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/routing"
)

// Variant metafield keys in the fulfillment_system namespace.
const (
	metafieldKeyAvailabilityLocation = "availability_location"
	metafieldKeyLengthTransport      = "length_transport"
	metafieldKeyCouplingPiece        = "daktrim_koppelstukje"
)

type fulfillmentOrderDataDTO struct {
	FulfillmentOrder *fulfillmentOrderDTO `json:"fulfillmentOrder"`
}

type fulfillmentOrderDTO struct {
	ID        string                `json:"id"`
	Status    string                `json:"status"`
	LineItems lineItemConnectionDTO `json:"lineItems"`
}

type lineItemConnectionDTO struct {
	Edges []lineItemEdgeDTO `json:"edges"`
}

type lineItemEdgeDTO struct {
	Node lineItemNodeDTO `json:"node"`
}

type lineItemNodeDTO struct {
	ID       string             `json:"id"`
	LineItem catalogLineItemDTO `json:"lineItem"`
}

type catalogLineItemDTO struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	SKU      string      `json:"sku"`
	Quantity int         `json:"quantity"`
	Variant  *variantDTO `json:"variant"`
}

type variantDTO struct {
	Metafields metafieldConnectionDTO `json:"metafields"`
}

type metafieldConnectionDTO struct {
	Nodes []metafieldDTO `json:"nodes"`
}

type metafieldDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type splitDataDTO struct {
	FulfillmentOrderSplit *fulfillmentOrderSplitDTO `json:"fulfillmentOrderSplit"`
}

type fulfillmentOrderSplitDTO struct {
	FulfillmentOrderSplits []splitResultDTO `json:"fulfillmentOrderSplits"`
	UserErrors             []userErrorDTO   `json:"userErrors"`
}

type splitResultDTO struct {
	FulfillmentOrder          *splitOrderDTO `json:"fulfillmentOrder"`
	RemainingFulfillmentOrder *splitOrderDTO `json:"remainingFulfillmentOrder"`
}

type splitOrderDTO struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type userErrorDTO struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type tagsAddDataDTO struct {
	TagsAdd *tagsAddDTO `json:"tagsAdd"`
}

type tagsAddDTO struct {
	UserErrors []userErrorDTO `json:"userErrors"`
}

// outcome extracts the identity of the freshly created fulfillment order.
// The remaining order is preferred when present; it carries the items that
// were moved out.
func (d fulfillmentOrderSplitDTO) outcome() (*routing.SplitOutcome, error) {
	if len(d.FulfillmentOrderSplits) == 0 {
		return nil, fmt.Errorf("no splits returned from split mutation")
	}

	split := d.FulfillmentOrderSplits[0]

	var order *splitOrderDTO
	switch {
	case split.RemainingFulfillmentOrder != nil && split.RemainingFulfillmentOrder.ID != "":
		order = split.RemainingFulfillmentOrder
	case split.FulfillmentOrder != nil && split.FulfillmentOrder.ID != "":
		order = split.FulfillmentOrder
	default:
		return nil, fmt.Errorf("split succeeded but response carries no new fulfillment order id")
	}

	status := order.Status
	if status == "" {
		status = "UNKNOWN"
	}

	return &routing.SplitOutcome{
		NewFulfillmentOrderID: order.ID,
		Status:                status,
	}, nil
}

func joinUserErrors(userErrors []userErrorDTO) string {
	messages := make([]string, 0, len(userErrors))
	for _, e := range userErrors {
		if len(e.Field) > 0 {
			messages = append(messages, fmt.Sprintf("%s: %s", strings.Join(e.Field, "."), e.Message))
			continue
		}
		messages = append(messages, e.Message)
	}
	return strings.Join(messages, "; ")
}

// toDomain maps the wire representation into a domain snapshot, normalizing
// each line item's metafields into typed attributes.
func toDomain(ctx context.Context, logger *slog.Logger, dto fulfillmentOrderDTO) (*fulfillmentorder.Details, error) {
	id, err := kernel.NewFulfillmentOrderGID(dto.ID)
	if err != nil {
		return nil, err
	}

	lineItems := make([]fulfillmentorder.LineItem, 0, len(dto.LineItems.Edges))
	for _, edge := range dto.LineItems.Edges {
		node := edge.Node

		var locations []string
		var isLengthTransport, isCouplingPiece bool
		if node.LineItem.Variant != nil {
			for _, metafield := range node.LineItem.Variant.Metafields.Nodes {
				switch metafield.Key {
				case metafieldKeyAvailabilityLocation:
					locations = parseLocations(ctx, logger, metafield.Value)
				case metafieldKeyLengthTransport:
					isLengthTransport = parseFlag(metafield.Value)
				case metafieldKeyCouplingPiece:
					isCouplingPiece = parseFlag(metafield.Value)
				}
			}
		}

		item, err := fulfillmentorder.NewLineItem(
			node.ID,
			node.LineItem.ID,
			node.LineItem.Name,
			node.LineItem.SKU,
			node.LineItem.Quantity,
			locations,
			isLengthTransport,
			isCouplingPiece,
		)
		if err != nil {
			return nil, fmt.Errorf("invalid line item %s: %w", node.ID, err)
		}
		lineItems = append(lineItems, item)
	}

	return fulfillmentorder.NewDetails(id, dto.Status, lineItems)
}

// parseLocations normalizes the availability_location metafield into a list
// of location names. The value is expected to be a JSON list; a scalar value
// degrades to a single-element list and an unparseable one to the raw string.
// Parse failures are logged but never fatal, the item just ends up with no
// known location.
func parseLocations(ctx context.Context, logger *slog.Logger, raw string) []string {
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		logger.WarnContext(ctx, "failed to parse locations from metafield", "error", err)
		if strings.TrimSpace(raw) == "" {
			return nil
		}
		return []string{raw}
	}

	switch value := parsed.(type) {
	case []any:
		locations := make([]string, 0, len(value))
		for _, entry := range value {
			if name, ok := entry.(string); ok {
				locations = append(locations, name)
				continue
			}
			locations = append(locations, fmt.Sprint(entry))
		}
		return locations
	case string:
		if value == "" {
			return nil
		}
		return []string{value}
	case bool:
		if !value {
			return nil
		}
		return []string{"true"}
	case float64:
		if value == 0 {
			return nil
		}
		return []string{strconv.FormatFloat(value, 'f', -1, 64)}
	default:
		return nil
	}
}

// parseFlag normalizes a tri-state string metafield into a strict boolean.
// Anything but a case-insensitive "true" is false.
func parseFlag(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "true")
}

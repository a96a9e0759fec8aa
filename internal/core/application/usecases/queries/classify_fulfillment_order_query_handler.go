package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/fulfillmentorder"
	"fulfillment/internal/core/domain/model/routing"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ClassifyFulfillmentOrderQueryHandler resolves routing previews against live
// remote state. It reuses the same classifier the command side runs, so the
// preview always matches what routing would actually do.
type ClassifyFulfillmentOrderQueryHandler struct {
	reader     ports.FulfillmentOrderReader
	classifier services.ItemClassifier
}

// NewClassifyFulfillmentOrderQueryHandler creates a handler for routing
// preview queries.
func NewClassifyFulfillmentOrderQueryHandler(reader ports.FulfillmentOrderReader) ClassifyFulfillmentOrderQueryHandler {
	return ClassifyFulfillmentOrderQueryHandler{
		reader:     reader,
		classifier: services.NewItemClassifier(routing.HomeLocation),
	}
}

// Handle fetches the fulfillment order and returns its classification.
// No remote mutation is performed.
func (h ClassifyFulfillmentOrderQueryHandler) Handle(
	ctx context.Context,
	query ClassifyFulfillmentOrderQuery,
) (ClassifyFulfillmentOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ClassifyFulfillmentOrderQueryResponse{}, err
	}

	details, err := h.reader.GetFulfillmentOrder(ctx, query.FulfillmentOrderID())
	if err != nil {
		return ClassifyFulfillmentOrderQueryResponse{}, err
	}

	response := ClassifyFulfillmentOrderQueryResponse{
		FulfillmentOrderID: details.ID().String(),
		Status:             details.Status(),
		LineItemsCount:     len(details.LineItems()),
		Items:              make([]ClassifiedLineItem, 0, len(details.LineItems())),
		ExternalLocations:  make([]string, 0),
	}
	if details.IsEmpty() {
		response.AllItemsAtHome = true
		return response, nil
	}

	classification, err := h.classifier.Classify(details)
	if err != nil {
		return ClassifyFulfillmentOrderQueryResponse{}, err
	}

	lines := details.RemainingLineItems()
	appendItems := func(category string, items []routing.ClassifiedItem) {
		for _, item := range items {
			response.Items = append(response.Items, toClassifiedLineItem(category, item, lines))
		}
	}
	appendItems(CategoryLengthAtHome, classification.LengthAtHome)
	appendItems(CategoryNonLengthAtHome, classification.NonLengthAtHome)
	appendItems(CategoryLengthExternal, classification.LengthExternal)
	appendItems(CategoryNonLengthExternal, classification.NonLengthExternal)
	appendItems(CategoryCouplingPieceAtHome, classification.CouplingPieceAtHome)

	response.HasLengthItems = classification.Summary.HasLengthItems
	response.AllItemsAtHome = classification.Summary.AllItemsAtHome
	response.ExternalLocations = append(response.ExternalLocations, classification.Summary.ExternalLocations...)

	return response, nil
}

func toClassifiedLineItem(
	category string,
	item routing.ClassifiedItem,
	lines map[string]fulfillmentorder.LineItem,
) ClassifiedLineItem {
	classified := ClassifiedLineItem{
		FulfillmentLineID: item.ID,
		Quantity:          item.Quantity,
		Category:          category,
		Locations:         item.Locations,
	}
	if line, ok := lines[item.ID]; ok {
		classified.Name = line.Name()
		classified.SKU = line.SKU()
	}
	return classified
}

package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrClassifyFulfillmentOrderQueryIsNotConstructed = errors.New(
		"ClassifyFulfillmentOrderQuery must be created via NewClassifyFulfillmentOrderQuery constructor",
	)
)

// ClassifyFulfillmentOrderQuery previews how a fulfillment order would be
// routed. It fetches current remote state and runs the classification without
// performing any split or tag mutation, so operators can inspect routing
// decisions before triggering them.
//
// Example:
//
//	query, err := NewClassifyFulfillmentOrderQuery("6789")
//	if err != nil {
//	    return err
//	}
//
//	preview, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to preview routing: %w", err)
//	}
//
//	fmt.Printf("%d items, external locations: %v\n",
//	    preview.LineItemsCount, preview.ExternalLocations)
type ClassifyFulfillmentOrderQuery struct {
	fulfillmentOrderID kernel.GID

	guard guard.ConstructorGuard
}

// NewClassifyFulfillmentOrderQuery creates a classification preview query for
// the given fulfillment order. The id may be a bare numeric id or a full
// global id; bare ids are normalized.
func NewClassifyFulfillmentOrderQuery(rawFulfillmentOrderID string) (ClassifyFulfillmentOrderQuery, error) {
	id, err := kernel.NewFulfillmentOrderGID(strings.TrimSpace(rawFulfillmentOrderID))
	if err != nil {
		return ClassifyFulfillmentOrderQuery{}, err
	}

	return ClassifyFulfillmentOrderQuery{
		fulfillmentOrderID: id,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrClassifyFulfillmentOrderQueryIsNotConstructed if validation fails.
func (q ClassifyFulfillmentOrderQuery) Validate() error {
	return q.guard.Validate(ErrClassifyFulfillmentOrderQueryIsNotConstructed)
}

// FulfillmentOrderID returns the normalized fulfillment order global id.
func (q ClassifyFulfillmentOrderQuery) FulfillmentOrderID() kernel.GID {
	return q.fulfillmentOrderID
}

// ClassifiedLineItem describes one line item's routing classification in a
// preview response.
type ClassifiedLineItem struct {
	FulfillmentLineID string   `json:"fulfillmentLineId"`
	Name              string   `json:"name"`
	SKU               string   `json:"sku"`
	Quantity          int      `json:"quantity"`
	Category          string   `json:"category"`
	Locations         []string `json:"locations"`
}

// Classification category names reported in preview responses.
const (
	CategoryLengthAtHome        = "lengthAtHome"
	CategoryNonLengthAtHome     = "nonLengthAtHome"
	CategoryLengthExternal      = "lengthExternal"
	CategoryNonLengthExternal   = "nonLengthExternal"
	CategoryCouplingPieceAtHome = "couplingPieceAtHome"
)

// ClassifyFulfillmentOrderQueryResponse is the routing preview: per-item
// categories plus the aggregate facts the split/tag procedure branches on.
type ClassifyFulfillmentOrderQueryResponse struct {
	FulfillmentOrderID string               `json:"fulfillmentOrderId"`
	Status             string               `json:"status"`
	LineItemsCount     int                  `json:"lineItemsCount"`
	Items              []ClassifiedLineItem `json:"items"`
	HasLengthItems     bool                 `json:"hasLengthItems"`
	AllItemsAtHome     bool                 `json:"allItemsAtHome"`
	ExternalLocations  []string             `json:"externalLocations"`
}

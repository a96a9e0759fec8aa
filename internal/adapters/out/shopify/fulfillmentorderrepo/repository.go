package fulfillmentorderrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"fulfillment/internal/adapters/out/shopify"
	"fulfillment/internal/core/domain/model/fulfillmentorder"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/routing"
	"fulfillment/internal/pkg/errs"
)

const getFulfillmentOrderQuery = `
query getFulfillmentOrder($id: ID!) {
  fulfillmentOrder(id: $id) {
    id
    status
    lineItems(first: 50) {
      edges {
        node {
          id
          lineItem {
            quantity
            id
            name
            sku
            variant {
              metafields(namespace: "fulfillment_system", first: 10) {
                nodes {
                  key
                  value
                }
              }
            }
          }
        }
      }
    }
  }
}`

const splitFulfillmentOrderMutation = `
mutation splitFulfillmentOrder($fulfillmentOrderId: ID!, $lineItems: [FulfillmentOrderLineItemInput!]!) {
  fulfillmentOrderSplit(
    fulfillmentOrderSplits: [
      {
        fulfillmentOrderId: $fulfillmentOrderId,
        fulfillmentOrderLineItems: $lineItems
      }
    ]
  ) {
    fulfillmentOrderSplits {
      fulfillmentOrder {
        id
        status
      }
      remainingFulfillmentOrder {
        id
        status
      }
    }
    userErrors {
      field
      message
    }
  }
}`

const addTagsMutation = `
mutation addTags($id: ID!, $tags: [String!]!) {
  tagsAdd(id: $id, tags: $tags) {
    node {
      id
    }
    userErrors {
      message
    }
  }
}`

// GraphQLFulfillmentOrderRepository implements the fulfillment gateway ports
// against the Shopify Admin GraphQL API.
type GraphQLFulfillmentOrderRepository struct {
	client *shopify.Client
	logger *slog.Logger
}

// NewGraphQLFulfillmentOrderRepository creates a repository backed by the
// given Shopify client.
func NewGraphQLFulfillmentOrderRepository(client *shopify.Client, logger *slog.Logger) *GraphQLFulfillmentOrderRepository {
	return &GraphQLFulfillmentOrderRepository{
		client: client,
		logger: logger.With("component", "fulfillment_order_repository"),
	}
}

// GetFulfillmentOrder fetches the fulfillment order with its line items and
// normalizes the variant metafields into typed line-item attributes.
func (r *GraphQLFulfillmentOrderRepository) GetFulfillmentOrder(
	ctx context.Context,
	id kernel.GID,
) (*fulfillmentorder.Details, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "fetching fulfillment order details", "fulfillmentOrderId", id.String())

	response, err := r.client.Execute(ctx, getFulfillmentOrderQuery, map[string]any{
		"id": id.String(),
	})
	if err != nil {
		return nil, err
	}
	if response.HasErrors() {
		return nil, fmt.Errorf("graphql errors fetching fulfillment order: %s", response.ErrorMessages())
	}

	var data fulfillmentOrderDataDTO
	if err := json.Unmarshal(response.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode fulfillment order response: %w", err)
	}
	if data.FulfillmentOrder == nil {
		return nil, errs.NewObjectNotFoundError("fulfillmentOrderId", id.String())
	}

	details, err := toDomain(ctx, r.logger, *data.FulfillmentOrder)
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "fulfillment order fetched",
		"fulfillmentOrderId", id.String(), "lineItems", len(details.LineItems()))
	return details, nil
}

// Split moves the given line items out of the fulfillment order into a new
// one and returns the new order's identity.
func (r *GraphQLFulfillmentOrderRepository) Split(
	ctx context.Context,
	id kernel.GID,
	items []routing.SplitItem,
) (*routing.SplitOutcome, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("lineItems")
	}

	r.logger.InfoContext(ctx, "executing split mutation",
		"fulfillmentOrderId", id.String(), "items", len(items))

	response, err := r.client.Execute(ctx, splitFulfillmentOrderMutation, map[string]any{
		"fulfillmentOrderId": id.String(),
		"lineItems":          items,
	})
	if err != nil {
		return nil, err
	}
	if response.HasErrors() {
		return nil, fmt.Errorf("graphql errors from split mutation: %s", response.ErrorMessages())
	}

	var data splitDataDTO
	if err := json.Unmarshal(response.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode split response: %w", err)
	}
	if data.FulfillmentOrderSplit == nil {
		return nil, fmt.Errorf("split response is missing fulfillmentOrderSplit payload")
	}
	if len(data.FulfillmentOrderSplit.UserErrors) > 0 {
		return nil, fmt.Errorf("user errors from split mutation: %s",
			joinUserErrors(data.FulfillmentOrderSplit.UserErrors))
	}

	outcome, err := data.FulfillmentOrderSplit.outcome()
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "split succeeded",
		"fulfillmentOrderId", id.String(), "newFulfillmentOrderId", outcome.NewFulfillmentOrderID)
	return outcome, nil
}

// AddTag adds a single tag to the parent order.
func (r *GraphQLFulfillmentOrderRepository) AddTag(ctx context.Context, id kernel.GID, tag string) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if tag == "" {
		return errs.NewValueIsRequiredError("tag")
	}

	r.logger.InfoContext(ctx, "adding tag to order", "orderId", id.String(), "tag", tag)

	response, err := r.client.Execute(ctx, addTagsMutation, map[string]any{
		"id":   id.String(),
		"tags": []string{tag},
	})
	if err != nil {
		return err
	}
	if response.HasErrors() {
		return fmt.Errorf("graphql errors from tags mutation: %s", response.ErrorMessages())
	}

	var data tagsAddDataDTO
	if err := json.Unmarshal(response.Data, &data); err != nil {
		return fmt.Errorf("failed to decode tags response: %w", err)
	}
	if data.TagsAdd != nil && len(data.TagsAdd.UserErrors) > 0 {
		return fmt.Errorf("user errors from tags mutation: %s", joinUserErrors(data.TagsAdd.UserErrors))
	}

	return nil
}

package cmd

import (
	"log/slog"
	"os"
	"time"

	adapterhttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/shopify"
	"fulfillment/internal/adapters/out/shopify/fulfillmentorderrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
)

type CompositionRoot struct {
	logger     *slog.Logger
	repository *fulfillmentorderrepo.GraphQLFulfillmentOrderRepository
	delays     commands.Delays
}

func NewCompositionRoot(configs Config) (CompositionRoot, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	client, err := shopify.NewClient(shopify.Config{
		ShopName:    configs.ShopifyShopName,
		AccessToken: configs.ShopifyAccessToken,
		APIVersion:  configs.ShopifyAPIVersion,
		MaxRetries:  configs.ShopifyMaxRetries,
	}, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	delays := commands.DefaultDelays()
	if configs.DelayAfterHomeLengthSplitSeconds > 0 {
		delays.AfterHomeLengthSplit = time.Duration(configs.DelayAfterHomeLengthSplitSeconds) * time.Second
	}
	if configs.DelayAfterExternalSplitSeconds > 0 {
		delays.AfterExternalSplit = time.Duration(configs.DelayAfterExternalSplitSeconds) * time.Second
	}
	if configs.DelayAfterTagSeconds > 0 {
		delays.AfterTag = time.Duration(configs.DelayAfterTagSeconds) * time.Second
	}

	return CompositionRoot{
		logger:     logger,
		repository: fulfillmentorderrepo.NewGraphQLFulfillmentOrderRepository(client, logger),
		delays:     delays,
	}, nil
}

func (c *CompositionRoot) CreateRouteFulfillmentCommandHandler() commands.RouteFulfillmentCommandHandler {
	return commands.NewRouteFulfillmentCommandHandler(
		c.repository,
		commands.NewSleepPauser(),
		c.delays,
		c.logger,
	)
}

func (c *CompositionRoot) CreateClassifyFulfillmentOrderQueryHandler() queries.ClassifyFulfillmentOrderQueryHandler {
	return queries.NewClassifyFulfillmentOrderQueryHandler(c.repository)
}

func (c *CompositionRoot) CreateHTTPServer() *adapterhttp.Server {
	routeHandler := c.CreateRouteFulfillmentCommandHandler()
	return adapterhttp.NewServer(&routeHandler, c.CreateClassifyFulfillmentOrderQueryHandler())
}

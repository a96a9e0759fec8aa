package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/routing"

	"github.com/labstack/echo/v4"
)

// Server exposes the routing use cases over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	routeFulfillmentHandler *commands.RouteFulfillmentCommandHandler
	classifyHandler         queries.ClassifyFulfillmentOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	routeFulfillmentHandler *commands.RouteFulfillmentCommandHandler,
	classifyHandler queries.ClassifyFulfillmentOrderQueryHandler,
) *Server {
	return &Server{
		routeFulfillmentHandler: routeFulfillmentHandler,
		classifyHandler:         classifyHandler,
	}
}

// RegisterRoutes attaches all handlers to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/fulfillment-orders/route", s.RouteFulfillmentOrder)
	e.GET("/api/v1/fulfillment-orders/:id/classification", s.ClassifyFulfillmentOrder)
}

// RouteFulfillmentRequest is the inbound payload. JSON field matching is
// case-insensitive, so OrderId/orderId and FulfillmentOrderId variants all
// bind; a bare "id" is accepted as the fulfillment order id for webhook-style
// callers.
type RouteFulfillmentRequest struct {
	OrderID            string `json:"orderId"`
	FulfillmentOrderID string `json:"fulfillmentOrderId"`
	ID                 string `json:"id"`
}

// RouteFulfillmentResponse mirrors the orchestration result for API callers.
type RouteFulfillmentResponse struct {
	Success               bool                           `json:"success"`
	Message               string                         `json:"message,omitempty"`
	FulfillmentOrderID    string                         `json:"fulfillmentOrderId"`
	OrderID               string                         `json:"orderId,omitempty"`
	LineItemsCount        int                            `json:"lineItemsCount"`
	Splits                []routing.SplitRecord          `json:"splits"`
	TagsAdded             []string                       `json:"tagsAdded"`
	ItemCategoriesSummary commands.ItemCategoriesSummary `json:"itemCategoriesSummary"`
	Error                 string                         `json:"error,omitempty"`
}

// ErrorResponse is the generic failure payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RouteFulfillmentOrder handles POST /api/v1/fulfillment-orders/route.
// It runs the split/tag decision procedure for one fulfillment order and
// reports the outcome, including partial progress when a step failed.
func (s *Server) RouteFulfillmentOrder(ctx echo.Context) error {
	var request RouteFulfillmentRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	fulfillmentOrderID := request.FulfillmentOrderID
	if fulfillmentOrderID == "" {
		fulfillmentOrderID = request.ID
	}
	if fulfillmentOrderID == "" {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "FulfillmentOrderId is required"})
	}

	cmd, err := commands.NewRouteFulfillmentCommand(request.OrderID, fulfillmentOrderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid identifiers: " + err.Error()})
	}

	result, err := s.routeFulfillmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	response := RouteFulfillmentResponse{
		Success:               result.Result.Success,
		FulfillmentOrderID:    result.FulfillmentOrderID,
		OrderID:               result.OrderID,
		LineItemsCount:        result.LineItemsCount,
		Splits:                result.Result.Splits,
		TagsAdded:             result.Result.TagsAdded,
		ItemCategoriesSummary: result.ItemCategories,
		Error:                 result.Result.Error,
	}
	if result.LineItemsCount == 0 && result.Result.Success {
		response.Message = "fulfillment order has no line items to process"
	}

	status := http.StatusOK
	if !result.Result.Success {
		status = http.StatusInternalServerError
	}
	return ctx.JSON(status, response)
}

// ClassifyFulfillmentOrder handles GET /api/v1/fulfillment-orders/:id/classification.
// It returns a read-only routing preview without performing any mutation.
func (s *Server) ClassifyFulfillmentOrder(ctx echo.Context) error {
	query, err := queries.NewClassifyFulfillmentOrderQuery(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid fulfillment order id: " + err.Error()})
	}

	preview, err := s.classifyHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to classify fulfillment order"})
	}

	return ctx.JSON(http.StatusOK, preview)
}

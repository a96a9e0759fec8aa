package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrRouteFulfillmentCommandIsNotConstructed is returned when a
// RouteFulfillmentCommand was not created via its constructor.
var ErrRouteFulfillmentCommandIsNotConstructed = errors.New(
	"RouteFulfillmentCommand must be created via NewRouteFulfillmentCommand constructor",
)

// RouteFulfillmentCommand represents a request to route one fulfillment order:
// classify its line items, split them to their destinations, and tag the
// parent order accordingly.
//
// The parent order id is optional. Without it the routing still runs, but all
// tagging is skipped (tags attach to the parent order, not the fulfillment
// order).
//
// Example:
//
//	cmd, err := NewRouteFulfillmentCommand("5551212", "6876830302323")
//	if err != nil {
//	    return fmt.Errorf("invalid routing request: %w", err)
//	}
//
//	handler := NewRouteFulfillmentCommandHandler(gateway, pauser, DefaultDelays(), logger)
//	response, err := handler.Handle(ctx, cmd)
type RouteFulfillmentCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.GID
	hasOrderID         bool
	fulfillmentOrderID kernel.GID

	guard guard.ConstructorGuard
}

// NewRouteFulfillmentCommand creates a routing command from raw identifiers.
// Both ids may be bare numbers or already in global-id form; they are
// normalized here, once, at the boundary. The fulfillment order id is
// required; the order id may be empty.
func NewRouteFulfillmentCommand(rawOrderID, rawFulfillmentOrderID string) (RouteFulfillmentCommand, error) {
	cmd := RouteFulfillmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(rawOrderID),
		cmd.setFulfillmentOrderID(rawFulfillmentOrderID),
	); err != nil {
		return RouteFulfillmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RouteFulfillmentCommand) Validate() error {
	return c.guard.Validate(ErrRouteFulfillmentCommandIsNotConstructed)
}

// OrderID returns the parent order's global id. Only meaningful when
// HasOrderID reports true.
func (c RouteFulfillmentCommand) OrderID() kernel.GID {
	return c.orderID
}

// HasOrderID reports whether a parent order id was supplied.
func (c RouteFulfillmentCommand) HasOrderID() bool {
	return c.hasOrderID
}

// FulfillmentOrderID returns the fulfillment order's global id.
func (c RouteFulfillmentCommand) FulfillmentOrderID() kernel.GID {
	return c.fulfillmentOrderID
}

func (c *RouteFulfillmentCommand) setOrderID(raw string) error {
	if raw == "" {
		return nil
	}

	orderID, err := kernel.NewOrderGID(raw)
	if err != nil {
		return err
	}

	c.orderID = orderID
	c.hasOrderID = true
	return nil
}

func (c *RouteFulfillmentCommand) setFulfillmentOrderID(raw string) error {
	fulfillmentOrderID, err := kernel.NewFulfillmentOrderGID(raw)
	if err != nil {
		return err
	}

	c.fulfillmentOrderID = fulfillmentOrderID
	return nil
}

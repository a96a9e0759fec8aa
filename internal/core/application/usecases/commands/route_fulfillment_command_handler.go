package commands

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"fulfillment/internal/core/domain/model/fulfillmentorder"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/routing"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
)

// ItemCategoriesSummary reports how the order's line items were classified.
// It is derived from the pre-split classification and returned to the caller
// for routing/reporting visibility.
type ItemCategoriesSummary struct {
	LengthItems        int `json:"lengthItemsCount"`
	NonLengthItems     int `json:"nonLengthItemsCount"`
	CouplingPieceItems int `json:"couplingPieceItemsCount"`
	ItemsAtHome        int `json:"itemsAtHome"`
	ItemsExternal      int `json:"itemsAtExternal"`
}

// RouteFulfillmentResponse is the outcome of one routing run: the identifiers
// the run operated on, the classification summary, and the aggregated
// split/tag result including partial progress on failure.
type RouteFulfillmentResponse struct {
	FulfillmentOrderID string
	OrderID            string
	LineItemsCount     int
	ItemCategories     ItemCategoriesSummary
	Result             routing.Result
}

// RouteFulfillmentCommandHandler orchestrates the split/tag decision procedure
// for one fulfillment order.
//
// The handler walks an explicit stage state machine (routing.Stage) instead of
// nested conditionals, so the abort semantics of every step are declared once.
// State carried across steps: the latest remote snapshot, the remaining
// line-item index derived from it, and the accumulated routing.Result.
//
// The whole procedure is fully sequential and blocking. Mandatory inter-step
// delays are injected via Pauser; the remote system is eventually consistent
// and a re-fetch issued too soon can corrupt the next grouping step. Running
// two orchestrations concurrently for the same fulfillment order is unsafe
// and must be prevented by the caller.
type RouteFulfillmentCommandHandler struct {
	gateway    ports.FulfillmentGateway
	classifier services.ItemClassifier
	grouper    services.LocationGrouper
	pauser     Pauser
	delays     Delays
	logger     *slog.Logger
}

// NewRouteFulfillmentCommandHandler creates the orchestration handler.
// The gateway provides all remote operations; pauser and delays control the
// mandatory inter-step waits.
func NewRouteFulfillmentCommandHandler(
	gateway ports.FulfillmentGateway,
	pauser Pauser,
	delays Delays,
	logger *slog.Logger,
) RouteFulfillmentCommandHandler {
	return RouteFulfillmentCommandHandler{
		gateway:    gateway,
		classifier: services.NewItemClassifier(routing.HomeLocation),
		grouper:    services.NewLocationGrouper(routing.HomeLocation),
		pauser:     pauser,
		delays:     delays,
		logger:     logger,
	}
}

// Handle runs the decision procedure to a terminal state.
//
// An error is returned only for an invalid command. Every orchestration
// failure, including partial failure after committed splits, is reported
// inside the response's Result: fetch/classification failures abort before
// any mutation; mutation failures abort remaining steps but preserve
// everything already committed, because prior splits and tags are real,
// already-applied remote state.
func (h *RouteFulfillmentCommandHandler) Handle(
	ctx context.Context,
	cmd RouteFulfillmentCommand,
) (RouteFulfillmentResponse, error) {
	if err := cmd.Validate(); err != nil {
		return RouteFulfillmentResponse{}, err
	}

	log := h.logger.With(
		"component", "route_fulfillment",
		"runId", uuid.NewString(),
		"fulfillmentOrderId", cmd.FulfillmentOrderID().String(),
	)
	if cmd.HasOrderID() {
		log = log.With("orderId", cmd.OrderID().String())
	}

	response := RouteFulfillmentResponse{
		FulfillmentOrderID: cmd.FulfillmentOrderID().String(),
		Result:             routing.NewResult(),
	}
	if cmd.HasOrderID() {
		response.OrderID = cmd.OrderID().String()
	}

	details, err := h.gateway.GetFulfillmentOrder(ctx, cmd.FulfillmentOrderID())
	if err != nil {
		log.ErrorContext(ctx, "failed to fetch fulfillment order", "error", err)
		response.Result.Fail(fmt.Sprintf(
			"failed to get details for fulfillment order %s: %v", cmd.FulfillmentOrderID(), err))
		return response, nil
	}

	response.LineItemsCount = len(details.LineItems())
	if details.IsEmpty() {
		log.InfoContext(ctx, "fulfillment order has no line items to process")
		return response, nil
	}

	classification, err := h.classifier.Classify(details)
	if err != nil {
		log.ErrorContext(ctx, "classification failed", "error", err)
		response.Result.Fail(fmt.Sprintf("failed to classify line items: %v", err))
		return response, nil
	}
	response.ItemCategories = summarizeCategories(classification)

	log.InfoContext(ctx, "line items classified",
		"lengthAtHome", len(classification.LengthAtHome),
		"nonLengthAtHome", len(classification.NonLengthAtHome),
		"lengthExternal", len(classification.LengthExternal),
		"nonLengthExternal", len(classification.NonLengthExternal),
		"couplingPieceAtHome", len(classification.CouplingPieceAtHome),
		"externalLocations", classification.Summary.ExternalLocations,
	)

	run := &routingRun{
		gateway:            h.gateway,
		grouper:            h.grouper,
		pauser:             h.pauser,
		delays:             h.delays,
		log:                log,
		orderID:            cmd.OrderID(),
		hasOrderID:         cmd.HasOrderID(),
		fulfillmentOrderID: cmd.FulfillmentOrderID(),
		classification:     classification,
		snapshot:           details,
		remaining:          details.RemainingLineItems(),
		result:             routing.NewResult(),
	}
	run.execute(ctx)

	response.Result = run.result
	return response, nil
}

func summarizeCategories(c routing.Classification) ItemCategoriesSummary {
	return ItemCategoriesSummary{
		LengthItems:        len(c.LengthAtHome) + len(c.LengthExternal),
		NonLengthItems:     len(c.NonLengthAtHome) + len(c.NonLengthExternal),
		CouplingPieceItems: len(c.CouplingPieceAtHome),
		ItemsAtHome:        len(c.LengthAtHome) + len(c.NonLengthAtHome),
		ItemsExternal:      len(c.LengthExternal) + len(c.NonLengthExternal),
	}
}

// routingRun carries the mutable state of one orchestration: the stage the
// state machine is in, the latest remote snapshot with its remaining-items
// index, and the accumulated result.
type routingRun struct {
	gateway ports.FulfillmentGateway
	grouper services.LocationGrouper
	pauser  Pauser
	delays  Delays
	log     *slog.Logger

	orderID            kernel.GID
	hasOrderID         bool
	fulfillmentOrderID kernel.GID

	classification routing.Classification

	// snapshot and remaining are refreshed after every successful split so
	// later stages never act on pre-split state.
	snapshot  *fulfillmentorder.Details
	remaining map[string]fulfillmentorder.LineItem

	// wholeOrderExternal is set when pre-step tagging established that the
	// entire order belongs to a single external fulfiller; the order is then
	// tagged instead of split.
	wholeOrderExternal bool

	result routing.Result
	stage  routing.Stage
}

// execute advances the stage state machine to a terminal stage.
func (r *routingRun) execute(ctx context.Context) {
	r.stage = routing.StageClassifyDone
	r.preStepTagging(ctx)

	for !r.stage.IsTerminal() {
		var next routing.Stage

		switch r.stage {
		case routing.StageClassifyDone:
			next = r.selectBranch(ctx)
		case routing.StageSplitHomeLength:
			next = r.splitHomeLength(ctx)
		case routing.StageSplitExternalCombined:
			next = r.splitExternalCombined(ctx)
		case routing.StageSplitExternalNonLength:
			next = r.splitExternalNonLength(ctx)
		default:
			r.failStep(ctx, fmt.Sprintf("orchestration reached unexpected stage %s", r.stage))
			next = routing.StageFailed
		}

		r.advance(ctx, next)
	}
}

// advance moves the state machine to the next stage, enforcing the declared
// transition table.
func (r *routingRun) advance(ctx context.Context, next routing.Stage) {
	stage, err := r.stage.Transition(next)
	if err != nil {
		r.log.ErrorContext(ctx, "invalid stage transition",
			"from", r.stage.String(), "to", next.String(), "error", err)
		r.result.Fail(err.Error())
		r.stage = routing.StageFailed
		return
	}

	r.log.DebugContext(ctx, "stage transition",
		"from", r.stage.String(), "to", stage.String())
	r.stage = stage
}

// preStepTagging applies tags that are due regardless of downstream splitting.
// It runs once, before branch selection, and is order-independent of the tree.
func (r *routingRun) preStepTagging(ctx context.Context) {
	summary := r.classification.Summary

	if summary.HasLengthItems && len(r.classification.LengthExternal) == 0 {
		r.log.InfoContext(ctx, "order has length items at home warehouse, tagging length fulfillment")
		r.applyTag(ctx, routing.LengthFulfillmentTag)
	}

	externalCount := len(r.classification.LengthExternal) + len(r.classification.NonLengthExternal)
	if externalCount > 0 && len(summary.ExternalLocations) == 1 && r.classification.ItemsAtHomeCount() == 0 {
		location := summary.ExternalLocations[0]
		tag := routing.LocationTag(location)
		r.log.InfoContext(ctx, "entire order belongs to one external fulfiller, tagging instead of splitting",
			"location", location, "tag", tag)
		r.applyTag(ctx, tag)
		r.wholeOrderExternal = true
	}
}

// selectBranch chooses the first split stage of the decision tree, or ends the
// run when no mutation is needed.
func (r *routingRun) selectBranch(ctx context.Context) routing.Stage {
	if r.wholeOrderExternal {
		return routing.StageDone
	}

	if r.classification.Summary.HasLengthItems {
		r.log.InfoContext(ctx, "order has length items, following length branch")

		if len(r.classification.LengthAtHome) > 0 {
			homePick := len(r.classification.LengthAtHome) + len(r.classification.CouplingPieceAtHome)
			if homePick == r.classification.TotalItems() {
				// The whole order is the length pick; there is nothing to
				// separate it from.
				r.log.InfoContext(ctx, "entire order is the length pick, no split needed")
				return routing.StageDone
			}
			return routing.StageSplitHomeLength
		}

		if !r.classification.Summary.AllItemsAtHome {
			return routing.StageSplitExternalCombined
		}
		return routing.StageDone
	}

	r.log.InfoContext(ctx, "order has no length items, following non-length branch")

	// Without length context, coupling pieces need no special handling and
	// travel with the regular non-length items at home.
	if r.classification.Summary.AllNonLengthAtHome {
		r.log.InfoContext(ctx, "all non-length items are at home warehouse, ready for picking")
		return routing.StageDone
	}
	return routing.StageSplitExternalNonLength
}

// splitHomeLength moves length-at-home items together with all
// coupling-piece-at-home items into one sub-order. Coupling pieces must
// travel with the length split they accompany.
func (r *routingRun) splitHomeLength(ctx context.Context) routing.Stage {
	items := make([]routing.SplitItem, 0,
		len(r.classification.LengthAtHome)+len(r.classification.CouplingPieceAtHome))
	for _, item := range r.classification.LengthAtHome {
		items = append(items, routing.SplitItem{ID: item.ID, Quantity: item.Quantity})
	}
	for _, item := range r.classification.CouplingPieceAtHome {
		items = append(items, routing.SplitItem{ID: item.ID, Quantity: item.Quantity})
	}

	r.log.InfoContext(ctx, "splitting length items at home with coupling pieces",
		"lengthItems", len(r.classification.LengthAtHome),
		"couplingPieces", len(r.classification.CouplingPieceAtHome))

	outcome, err := r.gateway.Split(ctx, r.fulfillmentOrderID, items)
	if err != nil {
		r.failStep(ctx, fmt.Sprintf("failed to split length items at home: %v", err))
		return routing.StageFailed
	}

	r.result.RecordSplit(routing.SplitRecord{
		Type:                  routing.SplitTypeHomeLengthWithCoupling,
		NewFulfillmentOrderID: outcome.NewFulfillmentOrderID,
		Status:                outcome.Status,
		Items:                 items,
	})
	r.applyTag(ctx, routing.LengthFulfillmentTag)

	r.pauser.Pause(ctx, r.delays.AfterHomeLengthSplit)

	// This fetch becomes the baseline for external processing.
	if !r.refreshSnapshot(ctx,
		"failed to get updated fulfillment order details after splitting length items at home") {
		return routing.StageFailed
	}

	if !r.classification.Summary.AllItemsAtHome {
		return routing.StageSplitExternalCombined
	}
	return routing.StageDone
}

// splitExternalCombined unions all external length and non-length items,
// re-filtered against the latest remaining-items snapshot, groups them by
// destination location, and splits one location at a time. Length and
// non-length items bound for the same location travel in one call.
func (r *routingRun) splitExternalCombined(ctx context.Context) routing.Stage {
	if r.snapshot == nil {
		if !r.refreshSnapshot(ctx, "failed to get fulfillment order details before splitting external items") {
			return routing.StageFailed
		}
	}

	groups := r.grouper.GroupByLocation(r.classification.ExternalItems(), r.remaining)
	r.log.InfoContext(ctx, "processing external items by location",
		"locations", groups.Locations(), "remainingItems", len(r.remaining))

	return r.processLocationGroups(ctx, groups)
}

// splitExternalNonLength groups the external non-length items by destination
// location against a fresh snapshot and splits one location at a time.
func (r *routingRun) splitExternalNonLength(ctx context.Context) routing.Stage {
	if !r.refreshSnapshot(ctx,
		"failed to get fulfillment order details before splitting external non-length items") {
		return routing.StageFailed
	}

	groups := r.grouper.GroupByLocation(r.classification.NonLengthExternal, r.remaining)
	r.log.InfoContext(ctx, "processing external non-length items by location",
		"locations", groups.Locations(), "remainingItems", len(r.remaining))

	return r.processLocationGroups(ctx, groups)
}

// processLocationGroups issues one split per location group, in first-seen
// order. After each successful split the order state is re-fetched and the
// remaining-items index recomputed before the next group is processed. The
// first hard failure stops processing; everything committed before it stays
// in the result.
func (r *routingRun) processLocationGroups(ctx context.Context, groups *routing.LocationGroups) routing.Stage {
	for _, location := range groups.Locations() {
		items := groups.Items(location)

		r.log.InfoContext(ctx, "splitting items for external location",
			"location", location, "items", len(items))

		outcome, err := r.gateway.Split(ctx, r.fulfillmentOrderID, items)

		// The remote system needs time to settle even before the outcome is
		// acted upon.
		r.pauser.Pause(ctx, r.delays.AfterExternalSplit)

		if err != nil {
			r.failStep(ctx, fmt.Sprintf("failed to split items for %s: %v", location, err))
			return routing.StageFailed
		}

		r.result.RecordSplit(routing.SplitRecord{
			Type:                  routing.SplitTypeExternal,
			NewFulfillmentOrderID: outcome.NewFulfillmentOrderID,
			Status:                outcome.Status,
			Items:                 items,
			Location:              location,
		})
		r.applyTag(ctx, routing.LocationTag(location))

		r.pauser.Pause(ctx, r.delays.AfterTag)

		if !r.refreshSnapshot(ctx, fmt.Sprintf(
			"failed to get updated fulfillment order details after splitting items at %s", location)) {
			return routing.StageFailed
		}
	}

	return routing.StageDone
}

// refreshSnapshot re-fetches order state and recomputes the remaining-items
// index. Returns false after marking the run failed when the fetch does not
// produce a usable snapshot.
func (r *routingRun) refreshSnapshot(ctx context.Context, failReason string) bool {
	details, err := r.gateway.GetFulfillmentOrder(ctx, r.fulfillmentOrderID)
	if err != nil {
		r.failStep(ctx, fmt.Sprintf("%s: %v", failReason, err))
		return false
	}

	r.snapshot = details
	r.remaining = details.RemainingLineItems()
	r.log.InfoContext(ctx, "refreshed fulfillment order state", "remainingItems", len(r.remaining))
	return true
}

// applyTag adds a tag to the parent order. Tagging is best-effort: failures
// are logged and never fail the run. Tags already applied in this run are not
// re-sent.
func (r *routingRun) applyTag(ctx context.Context, tag string) {
	if !r.hasOrderID {
		r.log.WarnContext(ctx, "skipping tag, no parent order id supplied", "tag", tag)
		return
	}

	if slices.Contains(r.result.TagsAdded, tag) {
		r.log.DebugContext(ctx, "tag already applied in this run", "tag", tag)
		return
	}

	if err := r.gateway.AddTag(ctx, r.orderID, tag); err != nil {
		r.log.WarnContext(ctx, "failed to add tag", "tag", tag, "error", err)
		return
	}

	r.log.InfoContext(ctx, "tag added", "tag", tag)
	r.result.RecordTag(tag)
}

// failStep records the first hard failure of the run.
func (r *routingRun) failStep(ctx context.Context, reason string) {
	r.log.ErrorContext(ctx, "routing step failed", "stage", r.stage.String(), "reason", reason)
	r.result.Fail(reason)
}

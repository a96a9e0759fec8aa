package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/fulfillmentorder"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/routing"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLineItem(t *testing.T, id string, quantity int, locations []string, length, coupling bool) fulfillmentorder.LineItem {
	t.Helper()
	item, err := fulfillmentorder.NewLineItem(id, "catalog-"+id, "item "+id, "SKU-"+id, quantity, locations, length, coupling)
	require.NoError(t, err)
	return item
}

func newDetails(t *testing.T, items ...fulfillmentorder.LineItem) *fulfillmentorder.Details {
	t.Helper()
	id, err := kernel.NewFulfillmentOrderGID("1001")
	require.NoError(t, err)
	details, err := fulfillmentorder.NewDetails(id, "OPEN", items)
	require.NoError(t, err)
	return details
}

func TestItemClassifier_Classify(t *testing.T) {
	classifier := services.NewItemClassifier(routing.HomeLocation)

	t.Run("partitions_every_item_into_exactly_one_bucket", func(t *testing.T) {
		// Given
		details := newDetails(t,
			newLineItem(t, "l-home", 1, []string{routing.HomeLocation}, true, false),
			newLineItem(t, "n-home", 2, []string{routing.HomeLocation}, false, false),
			newLineItem(t, "l-ext", 3, []string{"Compri Aluminium"}, true, false),
			newLineItem(t, "n-ext", 4, []string{"Redfox EPDM"}, false, false),
			newLineItem(t, "c-home", 5, []string{routing.HomeLocation}, false, true),
		)

		// When
		classification, err := classifier.Classify(details)

		// Then
		require.NoError(t, err)
		assert.Equal(t, 5, classification.TotalItems())

		seen := make(map[string]int)
		for _, bucket := range [][]routing.ClassifiedItem{
			classification.LengthAtHome,
			classification.NonLengthAtHome,
			classification.LengthExternal,
			classification.NonLengthExternal,
			classification.CouplingPieceAtHome,
		} {
			for _, item := range bucket {
				seen[item.ID]++
			}
		}
		for id, count := range seen {
			assert.Equal(t, 1, count, "item %s appears in %d buckets", id, count)
		}
		assert.Len(t, seen, 5)
	})

	t.Run("coupling_piece_precedence_over_length_at_home", func(t *testing.T) {
		// Given an item that is both a coupling piece and a length item, at home
		details := newDetails(t,
			newLineItem(t, "both", 1, []string{routing.HomeLocation}, true, true),
		)

		// When
		classification, err := classifier.Classify(details)

		// Then
		require.NoError(t, err)
		require.Len(t, classification.CouplingPieceAtHome, 1)
		assert.Empty(t, classification.LengthAtHome)
		assert.Equal(t, "both", classification.CouplingPieceAtHome[0].ID)
	})

	t.Run("coupling_piece_away_from_home_follows_length_rules", func(t *testing.T) {
		details := newDetails(t,
			newLineItem(t, "cp-ext-length", 1, []string{"Compri Aluminium"}, true, true),
			newLineItem(t, "cp-ext", 1, []string{"Compri Aluminium"}, false, true),
		)

		classification, err := classifier.Classify(details)

		require.NoError(t, err)
		assert.Empty(t, classification.CouplingPieceAtHome)
		require.Len(t, classification.LengthExternal, 1)
		assert.Equal(t, "cp-ext-length", classification.LengthExternal[0].ID)
		require.Len(t, classification.NonLengthExternal, 1)
		assert.Equal(t, "cp-ext", classification.NonLengthExternal[0].ID)
	})

	t.Run("summary_all_items_at_home_iff_external_buckets_empty", func(t *testing.T) {
		atHome := newDetails(t,
			newLineItem(t, "a", 1, []string{routing.HomeLocation}, true, false),
			newLineItem(t, "b", 1, []string{routing.HomeLocation}, false, false),
		)
		classification, err := classifier.Classify(atHome)
		require.NoError(t, err)
		assert.True(t, classification.Summary.AllItemsAtHome)
		assert.True(t, classification.Summary.AllNonLengthAtHome)
		assert.True(t, classification.Summary.HasLengthItems)

		mixed := newDetails(t,
			newLineItem(t, "a", 1, []string{routing.HomeLocation}, false, false),
			newLineItem(t, "b", 1, []string{"Redfox EPDM"}, false, false),
		)
		classification, err = classifier.Classify(mixed)
		require.NoError(t, err)
		assert.False(t, classification.Summary.AllItemsAtHome)
		assert.False(t, classification.Summary.AllNonLengthAtHome)
		assert.False(t, classification.Summary.HasLengthItems)
	})

	t.Run("summary_tracks_distinct_external_locations_in_first_seen_order", func(t *testing.T) {
		details := newDetails(t,
			newLineItem(t, "a", 1, []string{"Redfox EPDM", "Compri Aluminium"}, false, false),
			newLineItem(t, "b", 1, []string{"Compri Aluminium"}, true, false),
			newLineItem(t, "c", 1, []string{routing.HomeLocation, "Dakpannen Direct"}, false, false),
		)

		classification, err := classifier.Classify(details)

		require.NoError(t, err)
		// Item c is at home, so its extra location is not tracked.
		assert.Equal(t, []string{"Redfox EPDM", "Compri Aluminium"}, classification.Summary.ExternalLocations)
	})

	t.Run("item_with_no_locations_is_external_with_no_tracked_location", func(t *testing.T) {
		details := newDetails(t,
			newLineItem(t, "nowhere", 1, nil, false, false),
		)

		classification, err := classifier.Classify(details)

		require.NoError(t, err)
		require.Len(t, classification.NonLengthExternal, 1)
		assert.Empty(t, classification.Summary.ExternalLocations)
		assert.False(t, classification.Summary.AllItemsAtHome)
	})

	t.Run("empty_snapshot_yields_empty_classification", func(t *testing.T) {
		classification, err := classifier.Classify(newDetails(t))

		require.NoError(t, err)
		assert.Equal(t, 0, classification.TotalItems())
		assert.True(t, classification.Summary.AllItemsAtHome)
		assert.False(t, classification.Summary.HasLengthItems)
	})

	t.Run("rejects_unconstructed_snapshot", func(t *testing.T) {
		_, err := classifier.Classify(&fulfillmentorder.Details{})
		require.Error(t, err)
	})
}

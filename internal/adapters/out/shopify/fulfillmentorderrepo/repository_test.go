package fulfillmentorderrepo_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/shopify"
	"fulfillment/internal/adapters/out/shopify/fulfillmentorderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/routing"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeShopify answers GraphQL requests with canned payloads keyed by the
// operation present in the request document.
type fakeShopify struct {
	fetchResponse string
	splitResponse string
	tagResponse   string

	lastVariables map[string]any
}

func (f *fakeShopify) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request shopify.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		f.lastVariables = request.Variables

		switch {
		case strings.Contains(request.Query, "fulfillmentOrderSplit"):
			_, _ = w.Write([]byte(f.splitResponse))
		case strings.Contains(request.Query, "tagsAdd"):
			_, _ = w.Write([]byte(f.tagResponse))
		default:
			_, _ = w.Write([]byte(f.fetchResponse))
		}
	}
}

func newRepository(t *testing.T, fake *fakeShopify) (*fulfillmentorderrepo.GraphQLFulfillmentOrderRepository, func()) {
	t.Helper()
	server := httptest.NewServer(fake.handler(t))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := shopify.NewClient(shopify.Config{
		AccessToken:      "test-token",
		MaxRetries:       1,
		RetryDelay:       time.Millisecond,
		PostSuccessDelay: time.Millisecond,
		Endpoint:         server.URL,
	}, logger)
	require.NoError(t, err)

	return fulfillmentorderrepo.NewGraphQLFulfillmentOrderRepository(client, logger), server.Close
}

func fulfillmentOrderID(t *testing.T) kernel.GID {
	t.Helper()
	id, err := kernel.NewFulfillmentOrderGID("6789")
	require.NoError(t, err)
	return id
}

func orderID(t *testing.T) kernel.GID {
	t.Helper()
	id, err := kernel.NewOrderGID("55")
	require.NoError(t, err)
	return id
}

func TestGetFulfillmentOrder_NormalizesMetafields(t *testing.T) {
	fake := &fakeShopify{fetchResponse: `{"data":{"fulfillmentOrder":{
		"id":"gid://shopify/FulfillmentOrder/6789",
		"status":"OPEN",
		"lineItems":{"edges":[
			{"node":{"id":"gid://shopify/FulfillmentOrderLineItem/1","lineItem":{
				"id":"gid://shopify/LineItem/10","name":"Daktrim 250cm","sku":"DT-250","quantity":2,
				"variant":{"metafields":{"nodes":[
					{"key":"availability_location","value":"[\"Rooftopshop Magazijn\",\"Redfox EPDM\"]"},
					{"key":"length_transport","value":"TRUE"},
					{"key":"daktrim_koppelstukje","value":"false"}
				]}}}}},
			{"node":{"id":"gid://shopify/FulfillmentOrderLineItem/2","lineItem":{
				"id":"gid://shopify/LineItem/11","name":"Schroeven","sku":"SCH-1","quantity":1,
				"variant":null}}}
		]}}}}`}

	repo, closeServer := newRepository(t, fake)
	defer closeServer()

	details, err := repo.GetFulfillmentOrder(t.Context(), fulfillmentOrderID(t))

	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/FulfillmentOrder/6789", details.ID().String())
	assert.Equal(t, "OPEN", details.Status())
	require.Len(t, details.LineItems(), 2)

	first := details.LineItems()[0]
	assert.Equal(t, "gid://shopify/FulfillmentOrderLineItem/1", first.FulfillmentLineID())
	assert.Equal(t, "Daktrim 250cm", first.Name())
	assert.Equal(t, "DT-250", first.SKU())
	assert.Equal(t, 2, first.Quantity())
	assert.Equal(t, []string{"Rooftopshop Magazijn", "Redfox EPDM"}, first.AvailableLocations())
	assert.True(t, first.IsLengthTransport())
	assert.False(t, first.IsCouplingPiece())

	second := details.LineItems()[1]
	assert.Empty(t, second.AvailableLocations())
	assert.False(t, second.IsLengthTransport())

	assert.Equal(t, "gid://shopify/FulfillmentOrder/6789", fake.lastVariables["id"])
}

func TestGetFulfillmentOrder_LocationFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{"json_list", `["Compri Aluminium"]`, []string{"Compri Aluminium"}},
		{"json_scalar_string", `"Compri Aluminium"`, []string{"Compri Aluminium"}},
		{"unparseable_raw", `Compri Aluminium`, []string{"Compri Aluminium"}},
		{"empty_value", ``, nil},
		{"json_null", `null`, nil},
		{"json_false", `false`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := json.Marshal(tt.value)
			require.NoError(t, err)

			fake := &fakeShopify{fetchResponse: `{"data":{"fulfillmentOrder":{
				"id":"gid://shopify/FulfillmentOrder/6789","status":"OPEN",
				"lineItems":{"edges":[{"node":{"id":"gid://shopify/FulfillmentOrderLineItem/1","lineItem":{
					"id":"gid://shopify/LineItem/10","name":"item","sku":"","quantity":1,
					"variant":{"metafields":{"nodes":[
						{"key":"availability_location","value":` + string(payload) + `}
					]}}}}}]}}}}`}

			repo, closeServer := newRepository(t, fake)
			defer closeServer()

			details, err := repo.GetFulfillmentOrder(t.Context(), fulfillmentOrderID(t))

			require.NoError(t, err)
			require.Len(t, details.LineItems(), 1)
			if tt.expected == nil {
				assert.Empty(t, details.LineItems()[0].AvailableLocations())
				return
			}
			assert.Equal(t, tt.expected, details.LineItems()[0].AvailableLocations())
		})
	}
}

func TestGetFulfillmentOrder_NotFound(t *testing.T) {
	fake := &fakeShopify{fetchResponse: `{"data":{"fulfillmentOrder":null}}`}
	repo, closeServer := newRepository(t, fake)
	defer closeServer()

	_, err := repo.GetFulfillmentOrder(t.Context(), fulfillmentOrderID(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetFulfillmentOrder_GraphQLErrors(t *testing.T) {
	fake := &fakeShopify{fetchResponse: `{"errors":[{"message":"Throttled"}]}`}
	repo, closeServer := newRepository(t, fake)
	defer closeServer()

	_, err := repo.GetFulfillmentOrder(t.Context(), fulfillmentOrderID(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Throttled")
}

func TestSplit_PrefersRemainingFulfillmentOrder(t *testing.T) {
	fake := &fakeShopify{splitResponse: `{"data":{"fulfillmentOrderSplit":{
		"fulfillmentOrderSplits":[{
			"fulfillmentOrder":{"id":"gid://shopify/FulfillmentOrder/6789","status":"OPEN"},
			"remainingFulfillmentOrder":{"id":"gid://shopify/FulfillmentOrder/9000","status":"OPEN"}
		}],
		"userErrors":[]}}}`}
	repo, closeServer := newRepository(t, fake)
	defer closeServer()

	outcome, err := repo.Split(t.Context(), fulfillmentOrderID(t),
		[]routing.SplitItem{{ID: "gid://shopify/FulfillmentOrderLineItem/1", Quantity: 2}})

	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/FulfillmentOrder/9000", outcome.NewFulfillmentOrderID)
	assert.Equal(t, "OPEN", outcome.Status)
	assert.Equal(t, "gid://shopify/FulfillmentOrder/6789", fake.lastVariables["fulfillmentOrderId"])
}

func TestSplit_FallsBackToFulfillmentOrderID(t *testing.T) {
	fake := &fakeShopify{splitResponse: `{"data":{"fulfillmentOrderSplit":{
		"fulfillmentOrderSplits":[{
			"fulfillmentOrder":{"id":"gid://shopify/FulfillmentOrder/9001"},
			"remainingFulfillmentOrder":null
		}],
		"userErrors":[]}}}`}
	repo, closeServer := newRepository(t, fake)
	defer closeServer()

	outcome, err := repo.Split(t.Context(), fulfillmentOrderID(t),
		[]routing.SplitItem{{ID: "gid://shopify/FulfillmentOrderLineItem/1", Quantity: 1}})

	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/FulfillmentOrder/9001", outcome.NewFulfillmentOrderID)
	assert.Equal(t, "UNKNOWN", outcome.Status)
}

func TestSplit_UserErrors(t *testing.T) {
	fake := &fakeShopify{splitResponse: `{"data":{"fulfillmentOrderSplit":{
		"fulfillmentOrderSplits":[],
		"userErrors":[{"field":["fulfillmentOrderSplits","0"],"message":"cannot split these items"}]}}}`}
	repo, closeServer := newRepository(t, fake)
	defer closeServer()

	_, err := repo.Split(t.Context(), fulfillmentOrderID(t),
		[]routing.SplitItem{{ID: "gid://shopify/FulfillmentOrderLineItem/1", Quantity: 1}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot split these items")
}

func TestSplit_RequiresItems(t *testing.T) {
	fake := &fakeShopify{}
	repo, closeServer := newRepository(t, fake)
	defer closeServer()

	_, err := repo.Split(t.Context(), fulfillmentOrderID(t), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Nil(t, fake.lastVariables)
}

func TestAddTag_Success(t *testing.T) {
	fake := &fakeShopify{tagResponse: `{"data":{"tagsAdd":{"node":{"id":"gid://shopify/Order/55"},"userErrors":[]}}}`}
	repo, closeServer := newRepository(t, fake)
	defer closeServer()

	err := repo.AddTag(t.Context(), orderID(t), "daktrimFulfillment")

	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/Order/55", fake.lastVariables["id"])
	assert.Equal(t, []any{"daktrimFulfillment"}, fake.lastVariables["tags"])
}

func TestAddTag_UserErrors(t *testing.T) {
	fake := &fakeShopify{tagResponse: `{"data":{"tagsAdd":{"node":null,"userErrors":[{"message":"tag limit reached"}]}}}`}
	repo, closeServer := newRepository(t, fake)
	defer closeServer()

	err := repo.AddTag(t.Context(), orderID(t), "daktrimFulfillment")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag limit reached")
}

func TestAddTag_RequiresTag(t *testing.T) {
	fake := &fakeShopify{}
	repo, closeServer := newRepository(t, fake)
	defer closeServer()

	err := repo.AddTag(t.Context(), orderID(t), "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
}

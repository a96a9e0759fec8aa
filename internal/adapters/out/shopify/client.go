package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
)

const (
	defaultAPIVersion       = "2024-10"
	defaultMaxRetries       = 3
	defaultRetryDelay       = 2 * time.Second
	defaultPostSuccessDelay = 500 * time.Millisecond
	defaultRequestTimeout   = 10 * time.Second

	maxRetriesLimit = 10

	accessTokenHeader = "X-Shopify-Access-Token"
)

// Config holds the connection settings for the Shopify Admin GraphQL API.
type Config struct {
	// ShopName is the shop's subdomain, e.g. "roof-top-shop" for
	// roof-top-shop.myshopify.com.
	ShopName string

	// AccessToken is the Admin API access token sent with every request.
	AccessToken string

	// APIVersion selects the Admin API version. Defaults to 2024-10.
	APIVersion string

	// MaxRetries bounds the attempts per request, including the first one.
	// Defaults to 3, capped at 10.
	MaxRetries int

	// RetryDelay is the base delay between attempts; the actual wait grows
	// linearly with the attempt number.
	RetryDelay time.Duration

	// PostSuccessDelay is the pause after every successful request so
	// consecutive calls do not overload the API.
	PostSuccessDelay time.Duration

	// RequestTimeout bounds a single HTTP round trip.
	RequestTimeout time.Duration

	// Endpoint overrides the URL derived from ShopName and APIVersion.
	// Used in tests.
	Endpoint string
}

// Request is one GraphQL document with its variables.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// ResponseError is a GraphQL-level error returned inside a 200 response.
type ResponseError struct {
	Message string `json:"message"`
}

// Response is the parsed GraphQL envelope. Data stays raw so callers decode
// it into their own operation-specific shapes. A response may carry Errors
// alongside partial Data; interpreting that is the caller's job.
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors []ResponseError `json:"errors"`
}

// HasErrors reports whether the response carries GraphQL-level errors.
func (r *Response) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorMessages joins all GraphQL error messages into one string.
func (r *Response) ErrorMessages() string {
	messages := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		messages = append(messages, e.Message)
	}
	return strings.Join(messages, "; ")
}

// Client executes GraphQL documents against the Shopify Admin API with
// retry-aware transport handling.
//
// Transport failures and non-200 statuses are retried with linearly growing
// backoff. GraphQL-level errors inside a 200 response are never retried: the
// request was received and evaluated, and resending it could repeat a
// mutation.
type Client struct {
	endpoint         string
	accessToken      string
	maxRetries       int
	retryDelay       time.Duration
	postSuccessDelay time.Duration
	httpClient       *http.Client
	logger           *slog.Logger
}

// NewClient validates the configuration, applies defaults, and builds a
// ready-to-use client.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.Endpoint == "" && strings.TrimSpace(cfg.ShopName) == "" {
		return nil, errs.NewValueIsRequiredError("shopName")
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, errs.NewValueIsRequiredError("accessToken")
	}
	if cfg.MaxRetries < 0 || cfg.MaxRetries > maxRetriesLimit {
		return nil, errs.NewValueIsOutOfRangeError("maxRetries", cfg.MaxRetries, 0, maxRetriesLimit)
	}

	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.myshopify.com/admin/api/%s/graphql.json",
			cfg.ShopName, apiVersion)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	retryDelay := cfg.RetryDelay
	if retryDelay == 0 {
		retryDelay = defaultRetryDelay
	}
	postSuccessDelay := cfg.PostSuccessDelay
	if postSuccessDelay == 0 {
		postSuccessDelay = defaultPostSuccessDelay
	}
	requestTimeout := cfg.RequestTimeout
	if requestTimeout == 0 {
		requestTimeout = defaultRequestTimeout
	}

	return &Client{
		endpoint:         endpoint,
		accessToken:      cfg.AccessToken,
		maxRetries:       maxRetries,
		retryDelay:       retryDelay,
		postSuccessDelay: postSuccessDelay,
		httpClient:       &http.Client{Timeout: requestTimeout},
		logger:           logger.With("component", "shopify_client"),
	}, nil
}

// Execute sends one GraphQL request and returns the parsed envelope.
//
// Each failed attempt waits retryDelay multiplied by the attempt number
// before the next one. After a successful request the client pauses for
// PostSuccessDelay before returning, which spaces out back-to-back calls.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (*Response, error) {
	body, err := json.Marshal(Request{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode graphql request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		c.logger.DebugContext(ctx, "sending graphql request",
			"attempt", attempt, "maxRetries", c.maxRetries)

		response, postErr := c.post(ctx, body)
		if postErr == nil {
			if response.HasErrors() {
				c.logger.WarnContext(ctx, "graphql errors in response",
					"errors", response.ErrorMessages())
			}
			if waitErr := wait(ctx, c.postSuccessDelay); waitErr != nil {
				return nil, waitErr
			}
			return response, nil
		}

		lastErr = postErr
		c.logger.WarnContext(ctx, "graphql request attempt failed",
			"attempt", attempt, "error", postErr)

		if attempt < c.maxRetries {
			if waitErr := wait(ctx, c.retryDelay*time.Duration(attempt)); waitErr != nil {
				return nil, waitErr
			}
		}
	}

	return nil, fmt.Errorf("all %d attempts failed: %w", c.maxRetries, lastErr)
}

func (c *Client) post(ctx context.Context, body []byte) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(accessTokenHeader, c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(payload, 512))
	}

	var response Response
	if err := json.Unmarshal(payload, &response); err != nil {
		return nil, fmt.Errorf("failed to decode graphql response: %w", err)
	}
	return &response, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func truncate(payload []byte, limit int) string {
	if len(payload) <= limit {
		return string(payload)
	}
	return string(payload[:limit]) + "..."
}

package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client wraps the TMDB v3 API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client
func NewClient(baseURL, apiKey string, logger zerolog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	// Ensure base URL ends without slash
	baseURL = strings.TrimRight(baseURL, "/")

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}, nil
}

// get performs an authenticated GET request and decodes the JSON response.
// Transport errors propagate unmodified; non-200 responses become APIErrors.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())
	c.logger.Debug().Str("endpoint", endpoint).Msg("Making TMDB API request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// Discover fetches one page of discover results for a provider
func (c *Client) Discover(ctx context.Context, q DiscoverQuery) (*DiscoverPage, error) {
	params := url.Values{}
	params.Set("with_watch_providers", strconv.FormatInt(q.ProviderID, 10))
	params.Set("watch_region", q.Region)
	params.Set("with_watch_monetization_types", "flatrate")
	params.Set("sort_by", "popularity.desc")
	params.Set("page", strconv.Itoa(q.Page))

	var page DiscoverPage
	if err := c.get(ctx, "/discover/"+q.MediaType, params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// WatchProviders lists the watch providers available in a region
func (c *Client) WatchProviders(ctx context.Context, mediaType, region string) ([]ProviderInfo, error) {
	params := url.Values{}
	params.Set("watch_region", region)

	var resp watchProvidersResponse
	if err := c.get(ctx, "/watch/providers/"+mediaType, params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

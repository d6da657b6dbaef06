package mealapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxResponseSize is the maximum allowed response size from the catalog API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Meal is a raw record from the remote catalog. Field names follow the
// TheMealDB wire format (strMeal, strInstructions, strIngredient1..20).
type Meal map[string]any

// Str returns the named field as a trimmed-nothing string. Null and
// missing fields come back empty.
func (m Meal) Str(key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// mealsResponse is the envelope both endpoints share. "meals" is null
// when nothing matches.
type mealsResponse struct {
	Meals []Meal `json:"meals"`
}

// Client is an HTTP client for the remote recipe catalog
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new catalog API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FilterByCategory returns the summary records for a category. An empty
// result is not an error.
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]Meal, error) {
	endpoint := fmt.Sprintf("%s/filter.php?c=%s", c.baseURL, url.QueryEscape(category))
	response, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return response.Meals, nil
}

// LookupByID returns the full record for a meal id, or nil when the id is
// unknown
func (c *Client) LookupByID(ctx context.Context, id string) (Meal, error) {
	endpoint := fmt.Sprintf("%s/lookup.php?i=%s", c.baseURL, url.QueryEscape(id))
	response, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if len(response.Meals) == 0 {
		return nil, nil
	}
	return response.Meals[0], nil
}

func (c *Client) get(ctx context.Context, endpoint string) (*mealsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("mealapi: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mealapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("mealapi: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("mealapi: HTTP %d from %s", resp.StatusCode, endpoint)
	}

	var response mealsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("mealapi: failed to decode response: %w", err)
	}
	return &response, nil
}

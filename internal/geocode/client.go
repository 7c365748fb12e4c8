package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mfreitas/clima-api/internal/config"
	"github.com/mfreitas/clima-api/internal/model"
)

const userAgent = "clima-api/1.0"

// Client talks to the geocoding provider. Forward searches are restricted
// to a single country and capped at a fixed number of results.
type Client struct {
	baseURL string
	country string
	limit   int
	http    *http.Client
}

// NewClient creates a geocoding client from configuration
func NewClient(cfg config.GeocodeConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		country: cfg.CountryCode,
		limit:   cfg.Limit,
		http:    &http.Client{},
	}
}

// Search performs a forward geocode of a free-text query, requesting
// address details so results can be filtered and formatted downstream.
func (c *Client) Search(ctx context.Context, query string) ([]model.Suggestion, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("countrycodes", c.country)
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(c.limit))
	params.Set("format", "json")

	var results []struct {
		PlaceID     int64         `json:"place_id"`
		DisplayName string        `json:"display_name"`
		Address     model.Address `json:"address"`
	}
	if err := c.get(ctx, "/search", params, &results); err != nil {
		return nil, err
	}

	suggestions := make([]model.Suggestion, 0, len(results))
	for _, r := range results {
		suggestions = append(suggestions, model.Suggestion{
			PlaceID:     r.PlaceID,
			DisplayName: r.DisplayName,
			Address:     r.Address,
		})
	}
	return suggestions, nil
}

// Reverse converts a coordinate pair into a structured address
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*model.Address, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("addressdetails", "1")
	params.Set("format", "json")

	var result struct {
		Address model.Address `json:"address"`
	}
	if err := c.get(ctx, "/reverse", params, &result); err != nil {
		return nil, err
	}
	return &result.Address, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoding provider returned %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid geocoding response: %w", err)
	}
	return nil
}

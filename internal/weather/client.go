package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"

	"github.com/mfreitas/clima-api/internal/config"
	"github.com/mfreitas/clima-api/internal/model"
)

// maxHourly caps the forecast at one day of hourly points
const maxHourly = 24

// Client talks to the weather provider's timeline endpoint
type Client struct {
	baseURL string
	apiKey  string
	lang    string
	http    *http.Client
}

// NewClient creates a weather client. The API key is required and passed
// explicitly rather than read from ambient environment state.
func NewClient(cfg config.WeatherConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		lang:    cfg.Lang,
		http:    &http.Client{},
	}
}

// Fetch queries current conditions plus the hourly forecast for a resolved
// location string and converts them into a Snapshot.
func (c *Client) Fetch(ctx context.Context, location string) (*model.Snapshot, error) {
	params := url.Values{}
	params.Set("unitGroup", "metric")
	params.Set("include", "current,hours")
	params.Set("lang", c.lang)
	params.Set("key", c.apiKey)
	params.Set("contentType", "json")

	apiURL := c.baseURL + "/timeline/" + url.PathEscape(location) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider returned %d", resp.StatusCode)
	}

	var apiResp struct {
		ResolvedAddress   string `json:"resolvedAddress"`
		CurrentConditions struct {
			Temp       float64 `json:"temp"`
			WindSpeed  float64 `json:"windspeed"`
			PrecipProb float64 `json:"precipprob"`
			Humidity   float64 `json:"humidity"`
			Conditions string  `json:"conditions"`
		} `json:"currentConditions"`
		Days []struct {
			Hours []struct {
				Datetime   string  `json:"datetime"`
				Temp       float64 `json:"temp"`
				Conditions string  `json:"conditions"`
			} `json:"hours"`
		} `json:"days"`
	}
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("invalid weather response: %w", err)
	}

	snapshot := &model.Snapshot{
		Address:       apiResp.ResolvedAddress,
		Temperature:   round(apiResp.CurrentConditions.Temp),
		WindSpeed:     round(apiResp.CurrentConditions.WindSpeed),
		Precipitation: round(apiResp.CurrentConditions.PrecipProb),
		Humidity:      round(apiResp.CurrentConditions.Humidity),
		Condition:     apiResp.CurrentConditions.Conditions,
	}

	for _, day := range apiResp.Days {
		for _, hour := range day.Hours {
			if len(snapshot.Hourly) == maxHourly {
				return snapshot, nil
			}
			snapshot.Hourly = append(snapshot.Hourly, model.HourPoint{
				Time:        hour.Datetime,
				Temperature: round(hour.Temp),
				Condition:   hour.Conditions,
			})
		}
	}
	return snapshot, nil
}

func round(v float64) int {
	return int(math.Round(v))
}

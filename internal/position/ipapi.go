package position

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mfreitas/clima-api/internal/config"
	"github.com/mfreitas/clima-api/internal/model"
)

// IPSource resolves the device position from its public IP address.
// Accuracy is city-level, which is enough to reverse-geocode a
// "city, state" pair.
type IPSource struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// NewIPSource creates an IP-based position source
func NewIPSource(cfg config.PositionConfig) *IPSource {
	return &IPSource{
		baseURL: cfg.BaseURL,
		timeout: cfg.Timeout,
		http:    &http.Client{},
	}
}

// Current performs a one-shot position request with the configured timeout
func (s *IPSource) Current(ctx context.Context) (model.Coordinate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/json", nil)
	if err != nil {
		return model.Coordinate{}, &Error{Code: CodeUnavailable, Message: err.Error()}
	}

	resp, err := s.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return model.Coordinate{}, &Error{Code: CodeTimeout, Message: "position request timed out"}
		}
		return model.Coordinate{}, &Error{Code: CodeUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return model.Coordinate{}, &Error{Code: CodePermissionDenied, Message: "position provider refused the request"}
	case resp.StatusCode != http.StatusOK:
		return model.Coordinate{}, &Error{
			Code:    CodeUnavailable,
			Message: fmt.Sprintf("position provider returned %d", resp.StatusCode),
		}
	}

	var apiResp struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return model.Coordinate{}, &Error{Code: CodeUnavailable, Message: "invalid position response"}
	}

	if apiResp.Status != "success" {
		return model.Coordinate{}, &Error{Code: CodeUnavailable, Message: apiResp.Message}
	}

	return model.Coordinate{Lat: apiResp.Lat, Lon: apiResp.Lon}, nil
}

package envmon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Reading is the normalized environmental sample used by the collector.
type Reading struct {
	AQI          float64
	PM25         float64
	TemperatureC float64
	WeatherLabel string
}

// Client fetches air quality and weather readings from the environmental
// service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch retrieves the current environmental reading.
func (c *Client) Fetch(ctx context.Context) (Reading, error) {
	endpoint := c.baseURL + "/v1/environment"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Reading{}, fmt.Errorf("build environment request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Reading{}, fmt.Errorf("environment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return Reading{}, fmt.Errorf("environment request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Reading{}, fmt.Errorf("decode environment response: %w", err)
	}

	return Reading{
		AQI:          raw.AQI,
		PM25:         raw.PM25,
		TemperatureC: raw.TemperatureC,
		WeatherLabel: raw.WeatherLabel,
	}, nil
}

type apiResponse struct {
	AQI          float64 `json:"aqi"`
	PM25         float64 `json:"pm25"`
	TemperatureC float64 `json:"temperatureC"`
	WeatherLabel string  `json:"weatherLabel"`
}

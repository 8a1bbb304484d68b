package epidemics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Surveillance is the normalized epidemic picture used by the collector.
type Surveillance struct {
	TotalCases      int
	ActiveOutbreaks []string
}

// Client fetches outbreak surveillance data.
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

// Fetch retrieves the current surveillance summary.
func (c *Client) Fetch(ctx context.Context) (Surveillance, error) {
	endpoint := c.baseURL + "/v1/surveillance"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Surveillance{}, fmt.Errorf("build surveillance request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Surveillance{}, fmt.Errorf("surveillance request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return Surveillance{}, fmt.Errorf("surveillance request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Surveillance{}, fmt.Errorf("decode surveillance response: %w", err)
	}

	return Surveillance{
		TotalCases:      raw.TotalCases,
		ActiveOutbreaks: raw.ActiveOutbreaks,
	}, nil
}

type apiResponse struct {
	TotalCases      int      `json:"totalCases"`
	ActiveOutbreaks []string `json:"activeOutbreaks"`
}

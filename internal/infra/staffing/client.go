package staffing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kiranraj/surgesight/internal/domain/assessment"
)

// Requirement pairs a required headcount with the currently available one.
type Requirement struct {
	Required  int `json:"required"`
	Available int `json:"available"`
}

// Resources is the normalized staffing and supply picture.
type Resources struct {
	Doctors             Requirement
	Nurses              Requirement
	CapacityUtilization float64
	Supplies            []assessment.SupplyState
}

// Client fetches staffing levels and supply status.
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

// Fetch retrieves the current resource position.
func (c *Client) Fetch(ctx context.Context) (Resources, error) {
	endpoint := c.baseURL + "/v1/resources"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Resources{}, fmt.Errorf("build resources request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Resources{}, fmt.Errorf("resources request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return Resources{}, fmt.Errorf("resources request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Resources{}, fmt.Errorf("decode resources response: %w", err)
	}

	supplies := make([]assessment.SupplyState, 0, len(raw.Supplies))
	for _, s := range raw.Supplies {
		supplies = append(supplies, assessment.SupplyState{
			Name:      s.Name,
			Status:    parseStatus(s.Status),
			Available: s.Available,
			Required:  s.Required,
		})
	}

	return Resources{
		Doctors:             raw.Doctors,
		Nurses:              raw.Nurses,
		CapacityUtilization: raw.CapacityUtilization,
		Supplies:            supplies,
	}, nil
}

type apiResponse struct {
	Doctors             Requirement `json:"doctors"`
	Nurses              Requirement `json:"nurses"`
	CapacityUtilization float64     `json:"capacityUtilization"`
	Supplies            []supply    `json:"supplies"`
}

type supply struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	Available int    `json:"available"`
	Required  int    `json:"required"`
}

func parseStatus(value string) assessment.SupplyStatus {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "CRITICAL":
		return assessment.SupplyCritical
	case "LOW":
		return assessment.SupplyLow
	default:
		return assessment.SupplyOK
	}
}

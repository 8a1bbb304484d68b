package festivals

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/kiranraj/surgesight/internal/domain/assessment"
)

// Client fetches upcoming festival entries from the calendar service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient builds an API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		now: time.Now,
	}
}

// Fetch retrieves festivals within the lookahead window, nearest first.
func (c *Client) Fetch(ctx context.Context, lookaheadDays int) ([]assessment.FestivalSignal, error) {
	endpoint := fmt.Sprintf("%s/v1/festivals?days=%d", c.baseURL, lookaheadDays)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build festivals request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("festivals request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("festivals request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode festivals response: %w", err)
	}

	return normalizeEntries(raw.Festivals, lookaheadDays, c.now().UTC()), nil
}

type apiResponse struct {
	Festivals []entry `json:"festivals"`
}

type entry struct {
	ID                      string   `json:"id"`
	Name                    string   `json:"name"`
	Date                    string   `json:"date"`
	DaysUntil               *int     `json:"daysUntil,omitempty"`
	ExpectedSurgeMultiplier float64  `json:"expectedSurgeMultiplier"`
	DepartmentsAffected     []string `json:"departmentsAffected"`
	RiskLevel               string   `json:"riskLevel"`
	IsTomorrow              *bool    `json:"isTomorrow,omitempty"`
}

// normalizeEntries converts wire entries into domain signals. Entries with an
// unparseable date and no explicit daysUntil are dropped; entries outside the
// lookahead window are filtered out.
func normalizeEntries(entries []entry, lookaheadDays int, now time.Time) []assessment.FestivalSignal {
	signals := make([]assessment.FestivalSignal, 0, len(entries))
	today := now.Truncate(24 * time.Hour)

	for _, e := range entries {
		daysUntil, ok := resolveDaysUntil(e, today)
		if !ok || daysUntil < 0 || daysUntil > lookaheadDays {
			continue
		}

		isTomorrow := daysUntil == 1
		if e.IsTomorrow != nil {
			isTomorrow = *e.IsTomorrow
		}

		signals = append(signals, assessment.FestivalSignal{
			Name:                    e.Name,
			DaysUntil:               daysUntil,
			ExpectedSurgeMultiplier: e.ExpectedSurgeMultiplier,
			DepartmentsAffected:     e.DepartmentsAffected,
			RiskLevel:               parseRisk(e.RiskLevel),
			IsTomorrow:              isTomorrow,
		})
	}

	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].DaysUntil < signals[j].DaysUntil
	})
	return signals
}

func resolveDaysUntil(e entry, today time.Time) (int, bool) {
	if e.DaysUntil != nil {
		return *e.DaysUntil, true
	}
	if e.Date == "" {
		return 0, false
	}
	date, err := time.Parse("2006-01-02", e.Date)
	if err != nil {
		return 0, false
	}
	return int(date.Sub(today).Hours() / 24), true
}

func parseRisk(value string) assessment.FestivalRisk {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "CRITICAL":
		return assessment.FestivalRiskCritical
	case "HIGH":
		return assessment.FestivalRiskHigh
	case "MODERATE":
		return assessment.FestivalRiskModerate
	default:
		return assessment.FestivalRiskLow
	}
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/flusk-cnc/flusk-admin-api/config"
)

// RateFetcher defines anything that can fetch a EUR-based exchange rate table.
type RateFetcher interface {
	FetchRates(ctx context.Context) (map[string]float64, error)
}

// rateResponse represents the rate provider's response for a base currency
type rateResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// RateService fetches EUR-based exchange rates from the configured provider
type RateService struct {
	baseURL    string
	httpClient *http.Client
}

// NewRateService creates a new rate service instance
func NewRateService(cfg *config.Config) *RateService {
	return &RateService{
		baseURL: cfg.RateServiceURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchRates fetches the latest EUR-based rate table from the provider
func (s *RateService) FetchRates(ctx context.Context) (map[string]float64, error) {
	url := fmt.Sprintf("%s/latest/EUR", s.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call rate provider: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("rate provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var rates rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		return nil, fmt.Errorf("failed to decode rate response: %w", err)
	}

	if len(rates.Rates) == 0 {
		return nil, fmt.Errorf("rate provider returned an empty rate table")
	}

	return rates.Rates, nil
}

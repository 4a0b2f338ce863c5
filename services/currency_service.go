package services

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// FallbackRates returns the hard-coded rate table used when the provider is
// unreachable. Callers always receive usable numbers; a display-only
// estimate favors availability over accuracy.
func FallbackRates() map[string]float64 {
	return map[string]float64{
		"USD": 1.07,
		"PLN": 4.35,
		"EUR": 1,
	}
}

// CurrencyService caches EUR-based exchange rates and converts EUR amounts
// into a target display currency. The cache holds one rate table plus its
// fetch time; a table older than the configured duration is refetched.
// Fetch failures fall back to FallbackRates without touching the cache, so
// the next call retries the provider instead of serving a cached fallback.
type CurrencyService struct {
	fetcher RateFetcher
	ttl     time.Duration
	now     func() time.Time // injectable clock for tests

	mu        sync.Mutex
	rates     map[string]float64 // treated as immutable once stored
	fetchedAt time.Time

	group singleflight.Group // de-duplicates concurrent cache-miss fetches
}

var currencyServiceInstance *CurrencyService

// NewCurrencyService creates a currency service backed by the given fetcher.
// ttl is how long a fetched rate table stays fresh.
func NewCurrencyService(fetcher RateFetcher, ttl time.Duration) *CurrencyService {
	return &CurrencyService{
		fetcher: fetcher,
		ttl:     ttl,
		now:     time.Now,
	}
}

// InitCurrencyService initializes the package-level currency service instance
func InitCurrencyService(fetcher RateFetcher, ttl time.Duration) *CurrencyService {
	currencyServiceInstance = NewCurrencyService(fetcher, ttl)
	return currencyServiceInstance
}

// GetCurrencyService returns the initialized currency service instance
func GetCurrencyService() *CurrencyService {
	return currencyServiceInstance
}

// SetCurrencyService sets the currency service instance (primarily for testing)
func SetCurrencyService(s *CurrencyService) {
	currencyServiceInstance = s
}

// GetRates returns the cached EUR-based rate table, fetching a fresh one
// when the cache is empty or stale. It never fails: if the provider cannot
// be reached the hard-coded fallback table is returned instead, and the
// cache is left untouched so the next call retries the fetch.
func (s *CurrencyService) GetRates(ctx context.Context) map[string]float64 {
	s.mu.Lock()
	if s.rates != nil && s.now().Sub(s.fetchedAt) < s.ttl {
		rates := s.rates
		s.mu.Unlock()
		return rates
	}
	s.mu.Unlock()

	// Concurrent cache misses share a single in-flight fetch
	table, _, _ := s.group.Do("rates", func() (interface{}, error) {
		fetched, err := s.fetcher.FetchRates(ctx)
		if err != nil {
			log.Printf("Rate fetch failed, using fallback rates: %v", err)
			return FallbackRates(), nil
		}

		s.mu.Lock()
		s.rates = fetched
		s.fetchedAt = s.now()
		s.mu.Unlock()
		return fetched, nil
	})

	return table.(map[string]float64)
}

// Convert converts an EUR amount into the target currency using the given
// rate table, rounded to two decimals. EUR passes through unchanged, as
// does any currency missing from the table; the unknown-currency
// passthrough is a documented fallback, not an error.
func Convert(amountEUR float64, toCurrency string, rates map[string]float64) float64 {
	if toCurrency == "EUR" {
		return amountEUR
	}
	rate, ok := rates[toCurrency]
	if !ok {
		return amountEUR
	}
	return math.Round(amountEUR*rate*100) / 100
}

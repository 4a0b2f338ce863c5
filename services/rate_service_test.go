package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flusk-cnc/flusk-admin-api/config"
	"github.com/stretchr/testify/assert"
)

func newTestRateService(baseURL string) *RateService {
	return NewRateService(&config.Config{RateServiceURL: baseURL})
}

func TestFetchRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest/EUR", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base":"EUR","rates":{"USD":1.07,"PLN":4.35,"EUR":1}}`))
	}))
	defer server.Close()

	rates, err := newTestRateService(server.URL).FetchRates(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1.07, rates["USD"])
	assert.Equal(t, 4.35, rates["PLN"])
	assert.Equal(t, 1.0, rates["EUR"])
}

func TestFetchRatesNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	rates, err := newTestRateService(server.URL).FetchRates(context.Background())
	assert.Error(t, err)
	assert.Nil(t, rates)
	assert.Contains(t, err.Error(), "503")
}

func TestFetchRatesInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	rates, err := newTestRateService(server.URL).FetchRates(context.Background())
	assert.Error(t, err)
	assert.Nil(t, rates)
}

func TestFetchRatesEmptyTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"EUR","rates":{}}`))
	}))
	defer server.Close()

	rates, err := newTestRateService(server.URL).FetchRates(context.Background())
	assert.Error(t, err)
	assert.Nil(t, rates)
}

func TestFetchRatesConnectionRefused(t *testing.T) {
	// A server that is already closed refuses connections
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	rates, err := newTestRateService(url).FetchRates(context.Background())
	assert.Error(t, err)
	assert.Nil(t, rates)
}

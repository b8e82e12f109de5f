package polygon

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/onetrade/internal/provider"
)

func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(apiKey, provider.WithBaseURL(server.URL), provider.WithRateLimit(0))
}

func TestFetchCompanyProfile(t *testing.T) {
	client := newTestClient(t, "pk", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/reference/tickers/AAPL", r.URL.Path)
		assert.Equal(t, "pk", r.URL.Query().Get("apiKey"))
		w.Write([]byte(`{
			"status": "OK",
			"request_id": "abc",
			"results": {
				"ticker": "AAPL",
				"name": "Apple Inc.",
				"market": "stocks",
				"locale": "us",
				"primary_exchange": "XNAS",
				"currency_name": "usd",
				"market_cap": 3000000000000,
				"description": "Apple designs smartphones.",
				"sic_description": "ELECTRONIC COMPUTERS",
				"homepage_url": "https://www.apple.com",
				"total_employees": 161000,
				"address": {"address1": "One Apple Park Way", "city": "Cupertino", "state": "CA", "postal_code": "95014"}
			}
		}`))
	})

	profile, err := client.FetchCompanyProfile(context.Background(), "aapl")

	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", profile.Name)
	assert.Equal(t, "XNAS", profile.Exchange)
	assert.Equal(t, "USD", profile.Currency)
	assert.Equal(t, "Apple designs smartphones.", profile.Description)
	assert.Equal(t, "ELECTRONIC COMPUTERS", profile.Industry)
	assert.Equal(t, "Cupertino", profile.Address.City)
	require.NotNil(t, profile.MarketCap)
	assert.Equal(t, 3e12, *profile.MarketCap)
	require.NotNil(t, profile.Employees)
	assert.Equal(t, int64(161000), *profile.Employees)
	assert.Equal(t, Name, profile.Source)
	assert.True(t, profile.Usable())
}

func TestFetchCompanyProfile_WithoutDescriptionIsReturnedButUnusable(t *testing.T) {
	client := newTestClient(t, "pk", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "OK", "results": {"ticker": "ZZZ", "name": "Zed Corp"}}`))
	})

	profile, err := client.FetchCompanyProfile(context.Background(), "ZZZ")

	require.NoError(t, err)
	assert.Equal(t, "Zed Corp", profile.Name)
	assert.False(t, profile.Usable())
}

func TestFetchCompanyProfile_WhitespaceDescriptionIsUnusable(t *testing.T) {
	client := newTestClient(t, "pk", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "OK", "results": {"ticker": "ZZZ", "name": "Zed Corp", "description": " \n\t "}}`))
	})

	profile, err := client.FetchCompanyProfile(context.Background(), "ZZZ")

	require.NoError(t, err)
	assert.Empty(t, profile.Description)
	assert.False(t, profile.Usable())
}

func TestFetchCompanyProfile_NotFound(t *testing.T) {
	client := newTestClient(t, "pk", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status": "NOT_FOUND", "message": "Ticker not found."}`))
	})

	_, err := client.FetchCompanyProfile(context.Background(), "NOPE")

	var pErr *provider.Error
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, provider.KindTransportFailure, pErr.Kind)
	assert.Equal(t, http.StatusNotFound, pErr.StatusCode)
}

func TestFetchCompanyProfile_StatusWithoutResultsIsEmpty(t *testing.T) {
	client := newTestClient(t, "pk", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "OK"}`))
	})

	_, err := client.FetchCompanyProfile(context.Background(), "AAPL")

	assert.True(t, errors.Is(err, provider.ErrEmptyResult))
}

func TestFetchCompanyProfile_RateLimited(t *testing.T) {
	client := newTestClient(t, "pk", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.FetchCompanyProfile(context.Background(), "AAPL")

	assert.True(t, errors.Is(err, provider.ErrRateLimited))
}

func TestFetchCompanyProfile_MissingCredential(t *testing.T) {
	var calls int32
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := client.FetchCompanyProfile(context.Background(), "AAPL")

	assert.True(t, errors.Is(err, provider.ErrMissingCredential))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestFetchCurrentPrice(t *testing.T) {
	client := newTestClient(t, "pk", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/trades/MSFT/latest", r.URL.Path)
		w.Write([]byte(`{"status": "OK", "results": {"T": "MSFT", "p": 415.5, "s": 100, "t": 1700000000000}}`))
	})

	price, err := client.FetchCurrentPrice(context.Background(), "msft")

	require.NoError(t, err)
	assert.Equal(t, 415.5, price)
}

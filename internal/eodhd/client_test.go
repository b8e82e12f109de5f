package eodhd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/onetrade/internal/provider"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("eod", "", provider.WithBaseURL(server.URL), provider.WithRateLimit(0))
}

func TestSymbol(t *testing.T) {
	client := NewClient("k", "")
	assert.Equal(t, "AAPL.US", client.Symbol("aapl"))
	assert.Equal(t, "BHP.AU", client.Symbol("BHP.AU"))

	asx := NewClient("k", "au")
	assert.Equal(t, "BHP.AU", asx.Symbol("bhp"))
}

func TestFetchDailySeries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/eod/AAPL.US", r.URL.Path)
		assert.Equal(t, "eod", q.Get("api_token"))
		assert.Equal(t, "json", q.Get("fmt"))
		assert.Equal(t, "d", q.Get("period"))
		assert.Equal(t, "d", q.Get("order"))
		assert.Equal(t, "2024-06-01", q.Get("to"))
		assert.Equal(t, "2024-02-02", q.Get("from"))
		w.Write([]byte(`[
			{"date": "2024-05-30", "open": 190.1, "high": 192.2, "low": 189.9, "close": 191.29, "adjusted_close": 191.29, "volume": 49947900},
			{"date": "2024-05-31", "open": 191.4, "high": 192.6, "low": 188.9, "close": 192.25, "adjusted_close": 192.25, "volume": 75158300}
		]`))
	})
	client.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	series, err := client.FetchDailySeries(context.Background(), "aapl")

	require.NoError(t, err)
	require.Equal(t, 2, series.Len())
	assert.Equal(t, "2024-05-31", series.Bars[0].DateStr)
	assert.Equal(t, "192.25", series.Bars[0].Close)
	assert.Equal(t, "75158300", series.Bars[0].Volume)
}

func TestFetchCompanyProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fundamentals/AAPL.US", r.URL.Path)
		assert.Equal(t, "General,Highlights", r.URL.Query().Get("filter"))
		w.Write([]byte(`{
			"General": {
				"Code": "AAPL", "Type": "Common Stock", "Name": "Apple Inc", "Exchange": "NASDAQ",
				"CurrencyCode": "USD", "CountryISO": "US", "Sector": "Technology",
				"Industry": "Consumer Electronics", "Description": "Apple Inc. designs phones.",
				"WebURL": "https://www.apple.com", "FullTimeEmployees": 161000
			},
			"Highlights": {"MarketCapitalization": 2900000000000}
		}`))
	})

	profile, err := client.FetchCompanyProfile(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, "Apple Inc", profile.Name)
	assert.Equal(t, "Apple Inc. designs phones.", profile.Description)
	require.NotNil(t, profile.MarketCap)
	assert.Equal(t, 2.9e12, *profile.MarketCap)
	require.NotNil(t, profile.Employees)
	assert.Equal(t, int64(161000), *profile.Employees)
}

func TestFetchCompanyProfile_NoGeneralSection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.FetchCompanyProfile(context.Background(), "AAPL")

	assert.True(t, errors.Is(err, provider.ErrEmptyResult))
}

func TestFetchCurrentPrice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/real-time/AAPL.US", r.URL.Path)
		w.Write([]byte(`{"code": "AAPL.US", "timestamp": 1717185600, "close": 192.25, "previousClose": 191.29}`))
	})

	price, err := client.FetchCurrentPrice(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.InDelta(t, 192.25, price, 1e-9)
}

func TestFetchCurrentPrice_NA(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": "AAPL.US", "close": "NA"}`))
	})

	_, err := client.FetchCurrentPrice(context.Background(), "AAPL")

	assert.True(t, errors.Is(err, provider.ErrMalformedResponse))
}

func TestFetchNews(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/news", r.URL.Path)
		assert.Equal(t, "AAPL.US", q.Get("s"))
		assert.Equal(t, "2024-03-01", q.Get("from"))
		assert.Equal(t, "2024-05-30", q.Get("to"))
		assert.Equal(t, "50", q.Get("limit"))
		w.Write([]byte(`[
			{"date": "2024-05-29T13:00:00+00:00", "title": " Apple beats ", "content": "Revenue rose.", "link": "https://example.com/a"},
			{"date": "garbage", "title": "Undated", "content": ""}
		]`))
	})

	articles, err := client.FetchNews(context.Background(), "AAPL", from, to)

	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Apple beats", articles[0].Headline)
	assert.Equal(t, time.Date(2024, 5, 29, 13, 0, 0, 0, time.UTC).Unix(), articles[0].Datetime)
	assert.Equal(t, int64(0), articles[1].Datetime)
}

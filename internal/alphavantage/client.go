// Package alphavantage provides a client for the Alpha Vantage query API.
package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ternarybob/onetrade/internal/models"
	"github.com/ternarybob/onetrade/internal/provider"
)

const (
	// Name identifies this provider in configuration, errors and logs.
	Name = "alphavantage"

	// DefaultBaseURL is the base URL for the Alpha Vantage API.
	DefaultBaseURL = "https://www.alphavantage.co"

	// Free tier allows 5 requests per minute.
	DefaultRateLimit = 5.0 / 60.0
)

// Client is an Alpha Vantage API client.
type Client struct {
	http *provider.Client
}

// NewClient creates a new Alpha Vantage client.
func NewClient(apiKey string, opts ...provider.Option) *Client {
	opts = append([]provider.Option{provider.WithRateLimit(DefaultRateLimit)}, opts...)
	return &Client{
		http: provider.NewClient(Name, DefaultBaseURL, apiKey, "apikey", opts...),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return Name
}

// FetchCompanyProfile retrieves the OVERVIEW record.
func (c *Client) FetchCompanyProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error) {
	var resp overviewResponse
	if err := c.query(ctx, "OVERVIEW", symbol, &resp); err != nil {
		return nil, err
	}

	profile := resp.toProfile()
	if profile.Name == "" {
		return nil, provider.Empty(Name, "company name is empty")
	}
	return profile, nil
}

// FetchDailySeries retrieves TIME_SERIES_DAILY and normalizes the date-keyed
// map into bars sorted newest first.
func (c *Client) FetchDailySeries(ctx context.Context, symbol string) (*models.PriceSeries, error) {
	var resp dailySeriesResponse
	if err := c.query(ctx, "TIME_SERIES_DAILY", symbol, &resp); err != nil {
		return nil, err
	}
	if len(resp.Series) == 0 {
		return nil, provider.Empty(Name, "no daily series in response")
	}

	series := &models.PriceSeries{
		Ticker: strings.ToUpper(symbol),
		Bars:   make([]models.PriceBar, 0, len(resp.Series)),
		Source: Name,
	}
	for date, bar := range resp.Series {
		series.Bars = append(series.Bars, models.PriceBar{
			Date:    models.ParseBarDate(date),
			DateStr: date,
			Open:    bar.Open,
			High:    bar.High,
			Low:     bar.Low,
			Close:   bar.Close,
			Volume:  bar.Volume,
		})
	}
	series.SortDescending()
	return series, nil
}

// FetchCurrentPrice retrieves GLOBAL_QUOTE.
func (c *Client) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	var resp globalQuoteResponse
	if err := c.query(ctx, "GLOBAL_QUOTE", symbol, &resp); err != nil {
		return 0, err
	}

	if resp.Quote.Symbol == "" && resp.Quote.Price == "" {
		return 0, provider.Empty(Name, "empty global quote")
	}
	price, ok := models.ParseNumber(resp.Quote.Price)
	if !ok {
		return 0, provider.Malformed(Name, fmt.Errorf("price %q is not numeric", resp.Quote.Price))
	}
	return price.InexactFloat64(), nil
}

// query issues a function call and decodes the body after checking for the
// notice keys Alpha Vantage returns with HTTP 200.
func (c *Client) query(ctx context.Context, function, symbol string, result interface{}) error {
	params := url.Values{}
	params.Set("function", function)
	params.Set("symbol", strings.ToUpper(symbol))

	body, err := c.http.Get(ctx, "/query", params)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return provider.Empty(Name, "empty response body")
	}

	var envelope noticeEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return provider.Malformed(Name, fmt.Errorf("failed to decode response: %w", err))
	}
	if err := envelope.err(); err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return provider.Malformed(Name, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func (n noticeEnvelope) err() error {
	switch {
	case n.Note != "":
		return provider.NewError(Name, provider.KindRateLimited, errors.New(n.Note))
	case n.Information != "":
		return provider.NewError(Name, provider.KindRateLimited, errors.New(n.Information))
	case n.ErrorMessage != "":
		return provider.Empty(Name, n.ErrorMessage)
	}
	return nil
}

func (o *overviewResponse) toProfile() *models.CompanyProfile {
	return &models.CompanyProfile{
		Ticker:      o.Symbol,
		Name:        absent(o.Name),
		Exchange:    absent(o.Exchange),
		Market:      absent(o.AssetType),
		Currency:    absent(o.Currency),
		Locale:      absent(o.Country),
		Description: absent(o.Description),
		Industry:    absent(o.Industry),
		Sector:      absent(o.Sector),
		Address:     models.Address{Street: absent(o.Address)},
		HomepageURL: absent(o.OfficialSite),
		MarketCap:   models.ParseOptionalFloat(o.MarketCapitalization),
		Employees:   models.ParseOptionalInt(o.FullTimeEmployees),
		Source:      Name,
	}
}

// absent maps the "None" placeholder to an empty string.
func absent(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "none") || s == "-" {
		return ""
	}
	return s
}

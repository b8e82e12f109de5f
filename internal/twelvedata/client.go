// Package twelvedata provides a client for the Twelve Data company, time series and price APIs.
package twelvedata

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ternarybob/onetrade/internal/models"
	"github.com/ternarybob/onetrade/internal/provider"
)

const (
	// Name identifies this provider in configuration, errors and logs.
	Name = "twelvedata"

	// DefaultBaseURL is the base URL for the Twelve Data API.
	DefaultBaseURL = "https://api.twelvedata.com"

	// DefaultOutputSize is the number of daily bars requested; enough for a 63-day look-back.
	DefaultOutputSize = 100
)

// Client is a Twelve Data API client.
type Client struct {
	http *provider.Client
}

// NewClient creates a new Twelve Data client.
func NewClient(apiKey string, opts ...provider.Option) *Client {
	return &Client{
		http: provider.NewClient(Name, DefaultBaseURL, apiKey, "apikey", opts...),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return Name
}

// FetchCompanyProfile retrieves company details.
func (c *Client) FetchCompanyProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error) {
	var resp companyResponse
	if err := c.http.GetJSON(ctx, "/company", symbolParams(symbol), &resp); err != nil {
		return nil, err
	}
	if err := resp.statusError(); err != nil {
		return nil, err
	}

	profile := resp.toProfile()
	if profile.Name == "" {
		return nil, provider.Empty(Name, "company name is empty")
	}
	return profile, nil
}

// FetchDailySeries retrieves daily bars, newest first as returned by the API.
func (c *Client) FetchDailySeries(ctx context.Context, symbol string) (*models.PriceSeries, error) {
	params := symbolParams(symbol)
	params.Set("interval", "1day")
	params.Set("outputsize", fmt.Sprintf("%d", DefaultOutputSize))

	var resp timeSeriesResponse
	if err := c.http.GetJSON(ctx, "/time_series", params, &resp); err != nil {
		return nil, err
	}
	if err := resp.statusError(); err != nil {
		return nil, err
	}

	series := &models.PriceSeries{
		Ticker: strings.ToUpper(symbol),
		Bars:   make([]models.PriceBar, 0, len(resp.Values)),
		Source: Name,
	}
	for _, v := range resp.Values {
		series.Bars = append(series.Bars, models.PriceBar{
			Date:    models.ParseBarDate(v.Datetime),
			DateStr: v.Datetime,
			Open:    v.Open.String(),
			High:    v.High.String(),
			Low:     v.Low.String(),
			Close:   v.Close.String(),
			Volume:  v.Volume.String(),
		})
	}
	return series, nil
}

// FetchCurrentPrice retrieves the latest price.
func (c *Client) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	var resp priceResponse
	if err := c.http.GetJSON(ctx, "/price", symbolParams(symbol), &resp); err != nil {
		return 0, err
	}
	if err := resp.statusError(); err != nil {
		return 0, err
	}

	price, ok := models.ParseNumber(resp.Price.String())
	if !ok {
		return 0, provider.Malformed(Name, fmt.Errorf("price %q is not numeric", resp.Price))
	}
	return price.InexactFloat64(), nil
}

func symbolParams(symbol string) url.Values {
	params := url.Values{}
	params.Set("symbol", strings.ToUpper(symbol))
	return params
}

// statusError maps Twelve Data's in-body error envelope, which is sent with HTTP 200.
func (s apiStatus) statusError() error {
	if !strings.EqualFold(s.Status, "error") {
		return nil
	}
	if s.Code == 429 {
		return &provider.Error{Provider: Name, Kind: provider.KindRateLimited, StatusCode: s.Code, Err: errors.New(s.Message)}
	}
	return provider.Empty(Name, s.Message)
}

func (r *companyResponse) toProfile() *models.CompanyProfile {
	return &models.CompanyProfile{
		Ticker:      r.Symbol,
		Name:        strings.TrimSpace(r.Name),
		Exchange:    r.Exchange,
		Market:      r.Exchange,
		Currency:    r.Currency,
		Locale:      r.Country,
		Description: strings.TrimSpace(r.Description),
		Industry:    r.Industry,
		Sector:      r.Sector,
		Address: models.Address{
			Street:     r.Address,
			City:       r.City,
			State:      r.State,
			PostalCode: r.PostalCode.String(),
		},
		HomepageURL: r.Website,
		MarketCap:   models.ParseOptionalFloat(r.MarketCap.String()),
		Employees:   models.ParseOptionalInt(r.Employees.String()),
		Source:      Name,
	}
}

// Package polygon provides a client for the Polygon.io reference and trades APIs.
package polygon

import (
	"context"
	"net/url"
	"strings"

	"github.com/ternarybob/onetrade/internal/models"
	"github.com/ternarybob/onetrade/internal/provider"
)

const (
	// Name identifies this provider in configuration, errors and logs.
	Name = "polygon"

	// DefaultBaseURL is the base URL for the Polygon API.
	DefaultBaseURL = "https://api.polygon.io"
)

// Client is a Polygon API client.
type Client struct {
	http *provider.Client
}

// NewClient creates a new Polygon client.
func NewClient(apiKey string, opts ...provider.Option) *Client {
	return &Client{
		http: provider.NewClient(Name, DefaultBaseURL, apiKey, "apiKey", opts...),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return Name
}

// FetchCompanyProfile retrieves ticker reference details.
func (c *Client) FetchCompanyProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error) {
	var resp tickerDetailsResponse
	path := "/v3/reference/tickers/" + url.PathEscape(strings.ToUpper(symbol))
	if err := c.http.GetJSON(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	if resp.Status != "OK" || resp.Results == nil {
		return nil, provider.Empty(Name, "status "+resp.Status+" without results")
	}

	profile := resp.Results.toProfile()
	if profile.Name == "" {
		return nil, provider.Empty(Name, "company name is empty")
	}

	return profile, nil
}

// FetchCurrentPrice retrieves the price of the latest trade.
func (c *Client) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	var resp lastTradeResponse
	path := "/v3/trades/" + url.PathEscape(strings.ToUpper(symbol)) + "/latest"
	if err := c.http.GetJSON(ctx, path, nil, &resp); err != nil {
		return 0, err
	}

	if resp.Status != "OK" || resp.Results == nil {
		return 0, provider.Empty(Name, "status "+resp.Status+" without trade")
	}

	return resp.Results.Price, nil
}

func (t *tickerDetails) toProfile() *models.CompanyProfile {
	profile := &models.CompanyProfile{
		Ticker:      t.Ticker,
		Name:        strings.TrimSpace(t.Name),
		Exchange:    t.PrimaryExchange,
		Market:      t.Market,
		Currency:    strings.ToUpper(t.CurrencyName),
		Locale:      t.Locale,
		Description: strings.TrimSpace(t.Description),
		Industry:    t.SICDescription,
		HomepageURL: t.HomepageURL,
		MarketCap:   t.MarketCap,
		Employees:   t.TotalEmployees,
		Source:      Name,
	}
	if t.Address != nil {
		profile.Address = models.Address{
			Street:     t.Address.Address1,
			City:       t.Address.City,
			State:      t.Address.State,
			PostalCode: t.Address.PostalCode,
		}
	}
	return profile
}

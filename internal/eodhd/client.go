package eodhd

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ternarybob/onetrade/internal/models"
	"github.com/ternarybob/onetrade/internal/provider"
)

const (
	// Name identifies this provider in configuration, errors and logs.
	Name = "eodhd"

	// DefaultBaseURL is the base URL for the EODHD API.
	DefaultBaseURL = "https://eodhd.com/api"

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 10

	// DefaultExchange is appended to bare tickers.
	DefaultExchange = "US"

	// seriesLookback covers more than 63 trading days.
	seriesLookback = 120 * 24 * time.Hour
)

// Client is an EODHD API client.
type Client struct {
	http     *provider.Client
	exchange string
	now      func() time.Time
}

// NewClient creates a new EODHD API client. exchange is the suffix appended to
// bare tickers; empty selects DefaultExchange.
func NewClient(apiKey, exchange string, opts ...provider.Option) *Client {
	opts = append([]provider.Option{provider.WithRateLimit(DefaultRateLimit)}, opts...)
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Client{
		http:     provider.NewClient(Name, DefaultBaseURL, apiKey, "api_token", opts...),
		exchange: strings.ToUpper(exchange),
		now:      time.Now,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return Name
}

// Symbol formats a ticker as TICKER.EXCHANGE. Tickers that already carry an
// exchange are left alone.
func (c *Client) Symbol(ticker string) string {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if strings.Contains(ticker, ".") {
		return ticker
	}
	return ticker + "." + c.exchange
}

// get performs a GET request to the API.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("fmt", "json")
	return c.http.GetJSON(ctx, path, params, result)
}

// FetchCompanyProfile maps the General section of the fundamentals payload.
func (c *Client) FetchCompanyProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error) {
	params := url.Values{}
	params.Set("filter", "General,Highlights")

	var result fundamentalsResponse
	if err := c.get(ctx, "/fundamentals/"+url.PathEscape(c.Symbol(symbol)), params, &result); err != nil {
		return nil, err
	}
	if result.General == nil || strings.TrimSpace(result.General.Name) == "" {
		return nil, provider.Empty(Name, "fundamentals without general section")
	}

	return result.toProfile(), nil
}

// FetchDailySeries retrieves end-of-day bars for roughly the last four months.
func (c *Client) FetchDailySeries(ctx context.Context, symbol string) (*models.PriceSeries, error) {
	now := c.now()
	q := &queryParams{
		From:   now.Add(-seriesLookback),
		To:     now,
		Period: "d",
		Order:  "d",
	}

	var result eodResponse
	if err := c.get(ctx, "/eod/"+url.PathEscape(c.Symbol(symbol)), q.values(), &result); err != nil {
		return nil, err
	}

	series := &models.PriceSeries{
		Ticker: strings.ToUpper(symbol),
		Bars:   make([]models.PriceBar, 0, len(result)),
		Source: Name,
	}
	for _, d := range result {
		series.Bars = append(series.Bars, models.PriceBar{
			Date:    models.ParseBarDate(d.DateStr),
			DateStr: d.DateStr,
			Open:    d.Open.String(),
			High:    d.High.String(),
			Low:     d.Low.String(),
			Close:   d.Close.String(),
			Volume:  d.Volume.String(),
		})
	}
	series.SortDescending()
	return series, nil
}

// FetchCurrentPrice retrieves the real-time (delayed) quote.
// Note: This may require a higher tier subscription.
func (c *Client) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	var result realTimeQuote
	if err := c.get(ctx, "/real-time/"+url.PathEscape(c.Symbol(symbol)), nil, &result); err != nil {
		return 0, err
	}

	price, ok := models.ParseNumber(result.Close.String())
	if !ok {
		return 0, provider.Malformed(Name, fmt.Errorf("close %q is not numeric", result.Close))
	}
	return price.InexactFloat64(), nil
}

// FetchNews retrieves news articles tagged with the symbol.
func (c *Client) FetchNews(ctx context.Context, symbol string, from, to time.Time) ([]models.NewsArticle, error) {
	q := &queryParams{From: from, To: to, Limit: 50}
	params := q.values()
	params.Set("s", c.Symbol(symbol))

	var result newsResponse
	if err := c.get(ctx, "/news", params, &result); err != nil {
		return nil, err
	}

	articles := make([]models.NewsArticle, 0, len(result))
	for _, item := range result {
		published := models.ParseBarDate(item.DateStr)
		if published.IsZero() {
			if t, err := time.Parse(time.RFC3339, item.DateStr); err == nil {
				published = t
			}
		}
		var datetime int64
		if !published.IsZero() {
			datetime = published.Unix()
		}
		articles = append(articles, models.NewsArticle{
			Headline: strings.TrimSpace(item.Title),
			Summary:  strings.TrimSpace(item.Content),
			Datetime: datetime,
			URL:      item.Link,
			Source:   Name,
		})
	}
	return articles, nil
}

func (f *fundamentalsResponse) toProfile() *models.CompanyProfile {
	g := f.General
	profile := &models.CompanyProfile{
		Ticker:      g.Code,
		Name:        strings.TrimSpace(g.Name),
		Exchange:    g.Exchange,
		Market:      g.Type,
		Currency:    g.CurrencyCode,
		Locale:      g.CountryISO,
		Description: strings.TrimSpace(g.Description),
		Industry:    g.Industry,
		Sector:      g.Sector,
		Address:     models.Address{Street: g.Address},
		HomepageURL: g.WebURL,
		Employees:   models.ParseOptionalInt(g.FullTimeEmployees.String()),
		Source:      Name,
	}
	if f.Highlights != nil {
		profile.MarketCap = models.ParseOptionalFloat(f.Highlights.MarketCapitalization.String())
	}
	return profile
}

// queryParams holds optional query parameters.
type queryParams struct {
	From   time.Time
	To     time.Time
	Period string // d, w, m
	Order  string // a (asc), d (desc)
	Limit  int
}

func (p *queryParams) values() url.Values {
	v := url.Values{}
	if !p.From.IsZero() {
		v.Set("from", p.From.Format(models.DateLayout))
	}
	if !p.To.IsZero() {
		v.Set("to", p.To.Format(models.DateLayout))
	}
	if p.Period != "" {
		v.Set("period", p.Period)
	}
	if p.Order != "" {
		v.Set("order", p.Order)
	}
	if p.Limit > 0 {
		v.Set("limit", fmt.Sprintf("%d", p.Limit))
	}
	return v
}

// Package finnhub provides a client for the Finnhub company news and quote APIs.
package finnhub

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/onetrade/internal/models"
	"github.com/ternarybob/onetrade/internal/provider"
)

const (
	// Name identifies this provider in configuration, errors and logs.
	Name = "finnhub"

	// DefaultBaseURL is the base URL for the Finnhub API.
	DefaultBaseURL = "https://finnhub.io/api/v1"
)

// Client is a Finnhub API client.
type Client struct {
	http *provider.Client
}

// NewClient creates a new Finnhub client.
func NewClient(apiKey string, opts ...provider.Option) *Client {
	return &Client{
		http: provider.NewClient(Name, DefaultBaseURL, apiKey, "token", opts...),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return Name
}

// FetchNews retrieves company news published between from and to (inclusive dates).
func (c *Client) FetchNews(ctx context.Context, symbol string, from, to time.Time) ([]models.NewsArticle, error) {
	params := url.Values{}
	params.Set("symbol", strings.ToUpper(symbol))
	params.Set("from", from.Format(models.DateLayout))
	params.Set("to", to.Format(models.DateLayout))

	var resp []newsItem
	if err := c.http.GetJSON(ctx, "/company-news", params, &resp); err != nil {
		return nil, err
	}

	articles := make([]models.NewsArticle, 0, len(resp))
	for _, item := range resp {
		headline := strings.TrimSpace(item.Headline)
		if headline == "" {
			continue
		}
		articles = append(articles, models.NewsArticle{
			Headline: PlainText(headline),
			Summary:  PlainText(item.Summary),
			Datetime: item.Datetime,
			URL:      item.URL,
			Source:   item.Source,
		})
	}
	return articles, nil
}

// FetchCurrentPrice retrieves the current price from the quote endpoint.
func (c *Client) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	params := url.Values{}
	params.Set("symbol", strings.ToUpper(symbol))

	var resp quoteResponse
	if err := c.http.GetJSON(ctx, "/quote", params, &resp); err != nil {
		return 0, err
	}
	// Unknown symbols come back as an all-zero quote.
	if resp.Current == 0 && resp.Timestamp == 0 {
		return 0, provider.Empty(Name, "no quote for symbol")
	}
	return resp.Current, nil
}

// PlainText reduces an HTML fragment to whitespace-normalized text. Input that
// does not parse is returned trimmed.
func PlainText(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" || !strings.ContainsAny(fragment, "<&") {
		return fragment
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

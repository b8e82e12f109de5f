package interfaces

import (
	"context"
	"time"

	"github.com/ternarybob/onetrade/internal/models"
)

// CompanyInfoProvider fetches a normalized company profile for a ticker.
type CompanyInfoProvider interface {
	Name() string
	FetchCompanyProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error)
}

// TimeSeriesProvider fetches daily price history for a ticker.
type TimeSeriesProvider interface {
	Name() string
	FetchDailySeries(ctx context.Context, symbol string) (*models.PriceSeries, error)
}

// PriceProvider fetches the latest traded price for a ticker.
type PriceProvider interface {
	Name() string
	FetchCurrentPrice(ctx context.Context, symbol string) (float64, error)
}

// NewsProvider fetches articles about a ticker published between from and to (inclusive dates).
type NewsProvider interface {
	Name() string
	FetchNews(ctx context.Context, symbol string, from, to time.Time) ([]models.NewsArticle, error)
}

// TextGenerator produces free text for a prompt.
type TextGenerator interface {
	Name() string
	GenerateText(ctx context.Context, prompt string) (string, error)
}

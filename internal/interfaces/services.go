package interfaces

import (
	"context"

	"github.com/ternarybob/onetrade/internal/models"
)

// CompanyInfoResolver resolves company information through a fallback chain.
type CompanyInfoResolver interface {
	Resolve(ctx context.Context, ticker string) (*models.Resolution, error)
}

// TrendLoader loads price trends for a ticker.
type TrendLoader interface {
	Load(ctx context.Context, ticker string) (models.TrendSet, error)
}

// SentimentSynthesizer produces a Buy/Wait/Sell verdict from recent news.
type SentimentSynthesizer interface {
	Synthesize(ctx context.Context, ticker string) (*models.SentimentVerdict, error)
}
